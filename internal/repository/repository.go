package repository

import (
	"trading-journal/config"
	"trading-journal/pkg/logger"

	"gorm.io/gorm"
)

type Repository struct {
	TradeRepo        TradeRepository
	AccountRepo      AccountRepository
	UserSettingRepo  UserSettingRepository
	ExchangeRateRepo ExchangeRateRepository
	UnitOfWork       UnitOfWork
}

func NewRepository(cfg *config.Config, db *gorm.DB, log *logger.Logger) *Repository {
	return &Repository{
		TradeRepo:        NewTradeRepository(db),
		AccountRepo:      NewAccountRepository(db),
		UserSettingRepo:  NewUserSettingRepository(db),
		ExchangeRateRepo: NewExchangeRateRepository(cfg, log),
		UnitOfWork:       NewUnitOfWork(db),
	}
}
