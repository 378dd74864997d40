package service

import (
	"context"
	"fmt"
	"time"

	"trading-journal/config"
	"trading-journal/pkg/logger"

	"github.com/robfig/cron/v3"
)

const defaultPurgeCron = "0 3 * * *"

type SchedulerService interface {
	Start() error
	// Stop halts the schedule and waits for a running purge to finish or ctx to expire.
	Stop(ctx context.Context)
}

type schedulerService struct {
	cfg   *config.Config
	log   *logger.Logger
	cron  *cron.Cron
	purge PurgeService
}

func NewSchedulerService(cfg *config.Config, log *logger.Logger, purge PurgeService) SchedulerService {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	return &schedulerService{
		cfg:   cfg,
		log:   log,
		cron:  cron.New(cron.WithParser(parser), cron.WithLocation(cfg.Journal.Location())),
		purge: purge,
	}
}

func (s *schedulerService) Start() error {
	expr := s.cfg.Scheduler.PurgeCron
	if expr == "" {
		expr = defaultPurgeCron
	}

	if _, err := s.cron.AddFunc(expr, s.runPurge); err != nil {
		s.log.Error("Failed to parse cron expression", logger.ErrorField(err), logger.StringField("cron", expr))
		return fmt.Errorf("failed to schedule purge %q: %w", expr, err)
	}

	s.cron.Start()
	s.log.Info("Scheduler started", logger.StringField("purge_cron", expr))
	return nil
}

func (s *schedulerService) runPurge() {
	timeout := s.cfg.Scheduler.TimeoutDuration
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if _, err := s.purge.Purge(ctx); err != nil {
		s.log.ErrorContext(ctx, "Scheduled purge failed", logger.ErrorField(err))
	}
}

func (s *schedulerService) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.log.Info("Scheduler stopped")
	case <-ctx.Done():
		s.log.Warn("Timeout while stopping scheduler")
	}
}
