package scheduler

import (
	"context"
	"time"

	"coursemanagement/internal/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Pruner drops finished import progress older than a retention window.
type Pruner interface {
	Prune(ctx context.Context, olderThan time.Duration) (int, error)
}

// Scheduler runs the API's housekeeping jobs.
type Scheduler struct {
	cron *cron.Cron
	l    logger.Logger
}

func NewScheduler(l logger.Logger) *Scheduler {
	return &Scheduler{cron: cron.New(), l: l}
}

// AddFunc registers fn under a cron spec such as "@every 10m".
func (s *Scheduler) AddFunc(spec, name string, fn func()) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.l.Debug("running job", logger.String("job", name))
		fn()
	})
	return err
}

// SchedulePrune drops finished import progress older than retention on
// every tick of spec.
func (s *Scheduler) SchedulePrune(spec string, p Pruner, retention time.Duration) error {
	return s.AddFunc(spec, "prune-import-progress", func() {
		n, err := p.Prune(context.Background(), retention)
		if err != nil {
			s.l.Error("pruning import progress", logger.Error(err))
			return
		}
		if n > 0 {
			s.l.Info("pruned import progress", logger.Int("entries", n))
		}
	})
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
