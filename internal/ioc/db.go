package ioc

import (
	"coursemanagement/internal/config"
	"coursemanagement/internal/database"

	"gorm.io/gorm"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	return database.Open(cfg.DB)
}
