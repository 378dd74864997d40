package service

import (
	"context"
	"fmt"
	"time"

	"trading-journal/config"
	"trading-journal/internal/calculator"
	"trading-journal/internal/dto"
	"trading-journal/internal/model"
	"trading-journal/internal/repository"
	"trading-journal/pkg/logger"
	"trading-journal/pkg/utils"
)

type AnalyticsService interface {
	Dashboard(ctx context.Context, q dto.StatsQuery) (*dto.DashboardResult, error)
	Breakdown(ctx context.Context, q dto.BreakdownQuery) ([]dto.GroupedResult, error)
	Journal(ctx context.Context, q dto.StatsQuery) ([]model.Trade, error)
}

type analyticsService struct {
	cfg       *config.Config
	log       *logger.Logger
	tradeRepo repository.TradeRepository
}

func NewAnalyticsService(cfg *config.Config, log *logger.Logger, tradeRepo repository.TradeRepository) AnalyticsService {
	return &analyticsService{
		cfg:       cfg,
		log:       log,
		tradeRepo: tradeRepo,
	}
}

// Journal returns the user's trades narrowed by the query filter, oldest first.
func (s *analyticsService) Journal(ctx context.Context, q dto.StatsQuery) ([]model.Trade, error) {
	filter, err := s.buildFilter(q)
	if err != nil {
		return nil, err
	}

	trades, err := s.tradeRepo.List(ctx, dto.TradeQueryParam{UserID: q.UserID})
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to list trades", logger.ErrorField(err), logger.UintField("user_id", q.UserID))
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	return calculator.Apply(trades, filter), nil
}

func (s *analyticsService) Dashboard(ctx context.Context, q dto.StatsQuery) (*dto.DashboardResult, error) {
	trades, err := s.Journal(ctx, q)
	if err != nil {
		return nil, err
	}

	loc := s.cfg.Journal.Location()
	equity := calculator.EquityCurve(trades)
	return &dto.DashboardResult{
		Stats:      calculator.Aggregate(trades),
		Equity:     equity,
		Daily:      calculator.DailyPnL(trades, loc),
		Hourly:     calculator.HourlyPnL(trades, loc),
		Strategies: calculator.BreakdownBy(trades, dto.DimensionSetup, s.cfg.Journal.BreakdownTopN, loc),
	}, nil
}

func (s *analyticsService) Breakdown(ctx context.Context, q dto.BreakdownQuery) ([]dto.GroupedResult, error) {
	trades, err := s.Journal(ctx, q.StatsQuery)
	if err != nil {
		return nil, err
	}

	topN := q.TopN
	if topN == 0 {
		topN = s.cfg.Journal.BreakdownTopN
	}
	dim := q.Dimension
	if dim == "" {
		dim = dto.DimensionSetup
	}
	return calculator.BreakdownBy(trades, dim, topN, s.cfg.Journal.Location()), nil
}

func (s *analyticsService) buildFilter(q dto.StatsQuery) (calculator.Filter, error) {
	loc := s.cfg.Journal.Location()
	filter := calculator.Filter{
		AccountID: q.AccountID,
		Tags:      utils.SplitList(q.Tags),
		Assets:    utils.SplitList(q.Assets),
		Trash:     q.Trash,
		Location:  loc,
	}

	parse := func(value string) (*time.Time, error) {
		if value == "" {
			return nil, nil
		}
		t, err := utils.ParseDate(value, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", value, err)
		}
		return &t, nil
	}

	var err error
	if filter.Start, err = parse(q.Start); err != nil {
		return filter, err
	}
	if filter.End, err = parse(q.End); err != nil {
		return filter, err
	}
	return filter, nil
}
