package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"trading-journal/config"
	"trading-journal/internal/dto"
	"trading-journal/internal/repository"
	"trading-journal/pkg/cache"
	"trading-journal/pkg/common"
	"trading-journal/pkg/logger"
	"trading-journal/pkg/utils"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// resolveTimeout bounds background lookups when no timeout is configured.
const resolveTimeout = 10 * time.Second

type CurrencyService interface {
	// Convert expresses amount in the reporting currency using a cached rate. When the rate is
	// not known yet the result is pending and a background resolution is started.
	Convert(ctx context.Context, amount float64, code string) dto.ConvertedAmount
	// Resolve returns the rate for code, fetching it once no matter how many callers wait on it.
	Resolve(ctx context.Context, code string) (float64, error)
	ReportingCurrency() string
}

type currencyService struct {
	cfg              *config.Config
	log              *logger.Logger
	cache            cache.Cache
	exchangeRateRepo repository.ExchangeRateRepository
	group            singleflight.Group
}

func NewCurrencyService(cfg *config.Config, log *logger.Logger, inmemoryCache cache.Cache, exchangeRateRepo repository.ExchangeRateRepository) CurrencyService {
	return &currencyService{
		cfg:              cfg,
		log:              log,
		cache:            inmemoryCache,
		exchangeRateRepo: exchangeRateRepo,
	}
}

func (s *currencyService) ReportingCurrency() string {
	if s.cfg.ExchangeRate.ReportingCurrency == "" {
		return dto.DefaultReportingCurrency
	}
	return strings.ToUpper(s.cfg.ExchangeRate.ReportingCurrency)
}

func (s *currencyService) Convert(ctx context.Context, amount float64, code string) dto.ConvertedAmount {
	code = strings.ToUpper(strings.TrimSpace(code))
	reporting := s.ReportingCurrency()
	if code == "" || code == reporting {
		return converted(amount, 1, reporting)
	}

	if rate, ok := cache.GetFromCache[float64](s.cache, cacheKey(code)); ok {
		return converted(amount, rate, reporting)
	}

	timeout := s.cfg.ExchangeRate.Timeout
	if timeout <= 0 {
		timeout = resolveTimeout
	}
	utils.GoSafe(func() {
		bgCtx, cancel := context.WithTimeout(logger.NewContext(context.Background(), s.log.FromContext(ctx)), timeout)
		defer cancel()
		if _, err := s.Resolve(bgCtx, code); err != nil {
			s.log.WarnContext(bgCtx, "Failed to resolve exchange rate", logger.ErrorField(err), logger.StringField("currency", code))
		}
	})

	return dto.ConvertedAmount{
		Currency: reporting,
		Pending:  true,
		Display:  dto.PendingPlaceholder,
	}
}

func (s *currencyService) Resolve(ctx context.Context, code string) (float64, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return 0, fmt.Errorf("empty currency code: %w", dto.ErrRateUnavailable)
	}
	if code == s.ReportingCurrency() {
		return 1, nil
	}

	key := cacheKey(code)
	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		if rate, ok := cache.GetFromCache[float64](s.cache, key); ok {
			return rate, nil
		}
		rate, err := s.exchangeRateRepo.GetRateToUSD(ctx, code)
		if err != nil {
			return 0.0, err
		}
		s.cache.Set(key, rate, cache.NoExpiration)
		s.log.DebugContext(ctx, "Exchange rate resolved", logger.StringField("currency", code), logger.FloatField("rate", rate))
		return rate, nil
	})
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			s.log.ErrorContext(ctx, "Exchange rate lookup failed", logger.ErrorField(err), logger.StringField("currency", code))
		}
		return 0, fmt.Errorf("failed to resolve %s rate: %w", code, err)
	}
	if shared {
		s.log.DebugContext(ctx, "Exchange rate lookup shared", logger.StringField("currency", code))
	}
	return v.(float64), nil
}

func cacheKey(code string) string {
	return fmt.Sprintf(common.KEY_FX_RATE, code)
}

func converted(amount, rate float64, currency string) dto.ConvertedAmount {
	value := decimal.NewFromFloat(amount).Mul(decimal.NewFromFloat(rate)).Round(2)
	f, _ := value.Float64()
	return dto.ConvertedAmount{
		Amount:   f,
		Currency: currency,
		Rate:     rate,
		Display:  value.StringFixed(2),
	}
}
