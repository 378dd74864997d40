package service

import (
	"context"
	"testing"

	"trading-journal/internal/asset"
	"trading-journal/internal/dto"
	"trading-journal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRiskService() RiskService {
	return NewRiskService(logger.NewNop(), asset.NewDefaultCatalog())
}

func TestRiskService_Calculate(t *testing.T) {
	svc := newTestRiskService()
	ctx := context.Background()

	resp := svc.Calculate(ctx, dto.RiskCalculateRequest{
		Draft: dto.TradeDraft{
			Symbol:         "xauusd",
			EntryPrice:     dto.NewInput(2000),
			StopLoss:       dto.NewInput(1990),
			TakeProfit:     dto.NewInput(2030),
			Balance:        dto.NewInput(10000),
			RiskPercentage: dto.NewInput(1),
		},
		Driving: dto.DrivingRiskPercentage,
	})

	assert.True(t, resp.Available)
	assert.True(t, resp.CalculatorActive)
	require.NotNil(t, resp.Draft.Quantity)
	assert.Equal(t, dto.Input("0.10"), *resp.Draft.Quantity)
	require.NotNil(t, resp.Metrics)
	assert.InDelta(t, 100, resp.Metrics.RiskAmount, 1e-9)
	assert.InDelta(t, 3.0, resp.Metrics.RewardToRisk, 1e-9)
}

func TestRiskService_UnknownSymbol(t *testing.T) {
	svc := newTestRiskService()
	ctx := context.Background()
	draft := dto.TradeDraft{Symbol: "NOPE", EntryPrice: dto.NewInput(1), StopLoss: dto.NewInput(0.9)}

	resp := svc.Calculate(ctx, dto.RiskCalculateRequest{Draft: draft})
	assert.False(t, resp.Available)
	assert.Nil(t, resp.Metrics)
	assert.Equal(t, draft, resp.Draft)

	lots := svc.SolveLots(ctx, draft)
	assert.False(t, lots.Available)
	assert.Nil(t, lots.Value)
}

func TestRiskService_Solve(t *testing.T) {
	svc := newTestRiskService()
	ctx := context.Background()
	draft := dto.TradeDraft{
		Symbol:         "XAUUSD",
		EntryPrice:     dto.NewInput(2000),
		StopLoss:       dto.NewInput(1990),
		Balance:        dto.NewInput(10000),
		RiskPercentage: dto.NewInput(1),
		Quantity:       dto.NewInput(0.5),
	}

	lots := svc.SolveLots(ctx, draft)
	require.NotNil(t, lots.Value)
	assert.InDelta(t, 0.1, *lots.Value, 1e-12)

	pct := svc.SolveRiskPercentage(ctx, draft)
	require.NotNil(t, pct.Value)
	assert.InDelta(t, 5, *pct.Value, 1e-12)

	draft.StopLoss = dto.NewInput(2000)
	lots = svc.SolveLots(ctx, draft)
	assert.True(t, lots.Available)
	assert.Nil(t, lots.Value)
}

func TestRiskService_Assets(t *testing.T) {
	assets := newTestRiskService().Assets()
	assert.NotEmpty(t, assets)
	for i := 1; i < len(assets); i++ {
		assert.Less(t, assets[i-1].Pair, assets[i].Pair)
	}
}
