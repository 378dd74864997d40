package service

import (
	"trading-journal/config"
	"trading-journal/internal/asset"
	"trading-journal/internal/repository"
	"trading-journal/pkg/cache"
	"trading-journal/pkg/logger"
)

type Service struct {
	RiskService      RiskService
	AnalyticsService AnalyticsService
	CurrencyService  CurrencyService
	SettingsService  SettingsService
	TradeService     TradeService
	PurgeService     PurgeService
	SchedulerService SchedulerService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
	inmemoryCache cache.Cache,
	catalog *asset.Catalog,
) *Service {
	analyticsService := NewAnalyticsService(cfg, log, repo.TradeRepo)
	currencyService := NewCurrencyService(cfg, log, inmemoryCache, repo.ExchangeRateRepo)
	purgeService := NewPurgeService(cfg, log, repo.TradeRepo)

	return &Service{
		RiskService:      NewRiskService(log, catalog),
		AnalyticsService: analyticsService,
		CurrencyService:  currencyService,
		SettingsService:  NewSettingsService(cfg, log, inmemoryCache, repo.UserSettingRepo),
		TradeService:     NewTradeService(cfg, log, repo.TradeRepo, repo.AccountRepo, repo.UnitOfWork, analyticsService, currencyService),
		PurgeService:     purgeService,
		SchedulerService: NewSchedulerService(cfg, log, purgeService),
	}
}
