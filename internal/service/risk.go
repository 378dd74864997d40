package service

import (
	"context"

	"trading-journal/internal/asset"
	"trading-journal/internal/calculator"
	"trading-journal/internal/dto"
	"trading-journal/pkg/logger"
	"trading-journal/pkg/utils"
)

type RiskService interface {
	Calculate(ctx context.Context, req dto.RiskCalculateRequest) dto.RiskCalculateResponse
	SolveLots(ctx context.Context, draft dto.TradeDraft) dto.SolveResponse
	SolveRiskPercentage(ctx context.Context, draft dto.TradeDraft) dto.SolveResponse
	Assets() []asset.Asset
}

type riskService struct {
	log     *logger.Logger
	catalog *asset.Catalog
}

func NewRiskService(log *logger.Logger, catalog *asset.Catalog) RiskService {
	return &riskService{
		log:     log,
		catalog: catalog,
	}
}

func (s *riskService) resolve(ctx context.Context, symbol string) *asset.Asset {
	a, ok := s.catalog.Find(symbol)
	if !ok {
		s.log.DebugContext(ctx, "Asset not in catalog", logger.StringField("symbol", symbol))
		return nil
	}
	return &a
}

// Calculate recomputes the driven field of the draft and returns metrics for the result.
// An unknown symbol is reported through Available=false rather than an error.
func (s *riskService) Calculate(ctx context.Context, req dto.RiskCalculateRequest) dto.RiskCalculateResponse {
	a := s.resolve(ctx, req.Draft.Symbol)
	if a == nil {
		return dto.RiskCalculateResponse{Draft: req.Draft}
	}

	draft := calculator.ApplyDrivingField(req.Draft, a, req.Driving)
	return dto.RiskCalculateResponse{
		Available:        true,
		CalculatorActive: calculator.CalculatorActive(draft),
		Draft:            draft,
		Metrics:          calculator.ComputeDerivedMetrics(draft, a),
	}
}

func (s *riskService) SolveLots(ctx context.Context, draft dto.TradeDraft) dto.SolveResponse {
	a := s.resolve(ctx, draft.Symbol)
	if a == nil {
		return dto.SolveResponse{}
	}
	resp := dto.SolveResponse{Available: true}
	if lots, ok := calculator.SolveLotsFromRisk(draft, a); ok {
		resp.Value = utils.ToPointer(lots)
	}
	return resp
}

func (s *riskService) SolveRiskPercentage(ctx context.Context, draft dto.TradeDraft) dto.SolveResponse {
	a := s.resolve(ctx, draft.Symbol)
	if a == nil {
		return dto.SolveResponse{}
	}
	resp := dto.SolveResponse{Available: true}
	if pct, ok := calculator.SolveRiskFromLots(draft, a); ok {
		resp.Value = utils.ToPointer(pct)
	}
	return resp
}

func (s *riskService) Assets() []asset.Asset {
	return s.catalog.List()
}
