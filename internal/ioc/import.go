package ioc

import (
	"fmt"
	"os"

	"coursemanagement/internal/config"
	"coursemanagement/internal/handler"
	"coursemanagement/internal/pkg/logger"
	"coursemanagement/internal/scheduler"
	"coursemanagement/internal/service"

	"gorm.io/gorm"
)

func InitImportService(cfg *config.Config, db *gorm.DB, store service.ProgressStore, l logger.Logger) *service.ImportService {
	return service.NewImportService(db, store, l, cfg.Import.BatchSize)
}

// InitImportHandler makes sure the upload directory exists.
func InitImportHandler(cfg *config.Config, importer handler.Importer, l logger.Logger) (*handler.ImportHandler, error) {
	if err := os.MkdirAll(cfg.Import.Dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return handler.NewImportHandler(importer, cfg.Import.Dir, l), nil
}

func InitScheduler(cfg *config.Config, pruner scheduler.Pruner, l logger.Logger) (*scheduler.Scheduler, error) {
	s := scheduler.NewScheduler(l)
	if err := s.SchedulePrune(cfg.Import.PruneSpec, pruner, cfg.Import.Retention); err != nil {
		return nil, fmt.Errorf("schedule progress pruning: %w", err)
	}
	return s, nil
}
