package repository

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"trading-journal/config"
	"trading-journal/internal/dto"
	"trading-journal/pkg/httpclient"
	"trading-journal/pkg/logger"

	"golang.org/x/time/rate"
)

type ExchangeRateRepository interface {
	// GetRateToUSD returns how many units of the reporting currency one unit of code buys.
	GetRateToUSD(ctx context.Context, code string) (float64, error)
}

type exchangeRateResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

type exchangeRateRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	log            *logger.Logger
	requestLimiter *rate.Limiter
}

func NewExchangeRateRepository(cfg *config.Config, log *logger.Logger) ExchangeRateRepository {
	return newExchangeRateRepository(cfg, log, httpclient.New(cfg.ExchangeRate.BaseURL, cfg.ExchangeRate.Timeout))
}

func newExchangeRateRepository(cfg *config.Config, log *logger.Logger, client httpclient.HTTPClient) *exchangeRateRepository {
	perMinute := cfg.ExchangeRate.MaxRequestPerMin
	if perMinute <= 0 {
		perMinute = 30
	}
	return &exchangeRateRepository{
		httpClient:     client,
		cfg:            cfg,
		log:            log,
		requestLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
	}
}

func (r *exchangeRateRepository) GetRateToUSD(ctx context.Context, code string) (float64, error) {
	code = strings.ToUpper(code)
	target := r.reportingCurrency()

	if !r.requestLimiter.Allow() {
		r.log.WarnContext(ctx, "Exchange rate request limit reached, waiting",
			logger.IntField("max_request_per_min", r.cfg.ExchangeRate.MaxRequestPerMin),
		)
		if err := r.requestLimiter.Wait(ctx); err != nil {
			return 0, err
		}
	}

	var resp exchangeRateResponse
	base, err := r.httpClient.Get(ctx, "/latest", map[string]string{
		"from": code,
		"to":   target,
	}, nil, &resp)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch exchange rate %s/%s: %w", code, target, err)
	}
	if base.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("exchange rate provider returned status %d for %s: %w", base.StatusCode, code, dto.ErrRateUnavailable)
	}

	value, ok := resp.Rates[target]
	if !ok || value <= 0 {
		return 0, fmt.Errorf("no %s rate for %s: %w", target, code, dto.ErrRateUnavailable)
	}
	return value, nil
}

func (r *exchangeRateRepository) reportingCurrency() string {
	if r.cfg.ExchangeRate.ReportingCurrency == "" {
		return dto.DefaultReportingCurrency
	}
	return strings.ToUpper(r.cfg.ExchangeRate.ReportingCurrency)
}
