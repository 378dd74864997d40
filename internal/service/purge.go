package service

import (
	"context"
	"fmt"
	"time"

	"trading-journal/config"
	"trading-journal/internal/repository"
	"trading-journal/pkg/logger"
)

const defaultTrashRetentionDays = 30

type PurgeService interface {
	// Purge permanently removes trades that have been in the trash longer than the retention period.
	Purge(ctx context.Context) (int64, error)
}

type purgeService struct {
	cfg       *config.Config
	log       *logger.Logger
	tradeRepo repository.TradeRepository
	now       func() time.Time
}

func NewPurgeService(cfg *config.Config, log *logger.Logger, tradeRepo repository.TradeRepository) PurgeService {
	return &purgeService{
		cfg:       cfg,
		log:       log,
		tradeRepo: tradeRepo,
		now:       time.Now,
	}
}

func (s *purgeService) Purge(ctx context.Context) (int64, error) {
	days := s.cfg.Journal.TrashRetentionDays
	if days <= 0 {
		days = defaultTrashRetentionDays
	}
	before := s.now().AddDate(0, 0, -days)

	s.log.InfoContext(ctx, "Starting trash purge", logger.IntField("retention_days", days))
	total, err := s.tradeRepo.PurgeDeletedBefore(ctx, before)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to purge trash", logger.ErrorField(err))
		return 0, fmt.Errorf("failed to purge trades deleted before %s: %w", before.Format(time.DateOnly), err)
	}

	s.log.InfoContext(ctx, "Trash purge completed", logger.IntField("purged", int(total)))
	return total, nil
}
