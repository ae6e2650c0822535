package backup

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler writes periodic backup files and prunes old ones.
type Scheduler struct {
	cron    *cron.Cron
	gateway *Gateway
	spec    string
	dir     string
	keep    int
	logger  *zap.Logger
}

// NewScheduler uses the standard five field cron syntax.
func NewScheduler(gateway *Gateway, spec, dir string, keep int, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:    cron.New(),
		gateway: gateway,
		spec:    spec,
		dir:     dir,
		keep:    keep,
		logger:  logger,
	}
}

// Start registers the backup job and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.run); err != nil {
		return fmt.Errorf("schedule backups %q: %w", s.spec, err)
	}
	s.logger.Info("starting backup scheduler", zap.String("spec", s.spec), zap.String("dir", s.dir))
	s.cron.Start()
	return nil
}

// Stop waits for a running backup to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping backup scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := s.RunOnce(ctx); err != nil {
		s.logger.Error("scheduled backup failed", zap.Error(err))
	}
}

// RunOnce writes one backup and applies retention.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	if _, err := s.gateway.WriteFile(ctx, s.dir); err != nil {
		return err
	}
	_, err := s.gateway.Prune(s.dir, s.keep)
	return err
}
