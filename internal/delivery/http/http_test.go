package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"trading-journal/internal/asset"
	"trading-journal/internal/dto"
	"trading-journal/internal/model"
	"trading-journal/internal/service"
	"trading-journal/pkg/logger"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalytics struct {
	service.AnalyticsService
	lastQuery dto.StatsQuery
}

func (f *fakeAnalytics) Dashboard(_ context.Context, q dto.StatsQuery) (*dto.DashboardResult, error) {
	f.lastQuery = q
	return &dto.DashboardResult{Stats: dto.StatsSnapshot{TotalTrades: 3}}, nil
}

func (f *fakeAnalytics) Breakdown(_ context.Context, q dto.BreakdownQuery) ([]dto.GroupedResult, error) {
	f.lastQuery = q.StatsQuery
	return []dto.GroupedResult{{Key: string(q.Dimension), Count: q.TopN}}, nil
}

type fakeTrades struct {
	service.TradeService
	closeErr error
}

func (f *fakeTrades) Close(_ context.Context, id uint, req dto.CloseTradeRequest) (*model.Trade, error) {
	if f.closeErr != nil {
		return nil, f.closeErr
	}
	return &model.Trade{ID: id, PnL: req.PnL, Outcome: model.TradeOutcomeClosed}, nil
}

func newTestServer(analytics service.AnalyticsService, trades service.TradeService) *echo.Echo {
	e := echo.New()
	svc := &service.Service{
		RiskService:      service.NewRiskService(logger.NewNop(), asset.NewDefaultCatalog()),
		AnalyticsService: analytics,
		TradeService:     trades,
	}
	NewHttpAPIHandler(context.Background(), e, goValidator.New(), logger.NewNop(), svc).SetupRoutes()
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func TestCalculateRisk(t *testing.T) {
	e := newTestServer(&fakeAnalytics{}, &fakeTrades{})

	rec := do(e, http.MethodPost, "/api/v1/risk/calculate",
		`{"draft":{"symbol":"XAUUSD","entry_price":"2000","stop_loss":1990,"take_profit":"2030","quantity":"1","balance":"10000"}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.RiskCalculateResponse
	decodeData(t, rec, &resp)
	assert.True(t, resp.Available)
	require.NotNil(t, resp.Metrics)
	assert.InDelta(t, 1000, resp.Metrics.RiskAmount, 1e-9)
	assert.Equal(t, dto.DirectionLong, resp.Metrics.Direction)
}

func TestCalculateRisk_UnknownSymbolIsNotAnError(t *testing.T) {
	e := newTestServer(&fakeAnalytics{}, &fakeTrades{})

	rec := do(e, http.MethodPost, "/api/v1/risk/calculate", `{"draft":{"symbol":"FOO","entry_price":"1"}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.RiskCalculateResponse
	decodeData(t, rec, &resp)
	assert.False(t, resp.Available)
	assert.Nil(t, resp.Metrics)
}

func TestCalculateRisk_BadDrivingField(t *testing.T) {
	e := newTestServer(&fakeAnalytics{}, &fakeTrades{})
	rec := do(e, http.MethodPost, "/api/v1/risk/calculate", `{"draft":{"symbol":"XAUUSD"},"driving":"leverage"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDashboard_BindsQuery(t *testing.T) {
	analytics := &fakeAnalytics{}
	e := newTestServer(analytics, &fakeTrades{})

	rec := do(e, http.MethodGet, "/api/v1/stats/dashboard?user_id=7&account_id=2&start=2024-03-01&tags=london,a%2B&trash=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, dto.StatsQuery{UserID: 7, AccountID: 2, Start: "2024-03-01", Tags: "london,a+", Trash: true}, analytics.lastQuery)

	rec = do(e, http.MethodGet, "/api/v1/stats/dashboard?user_id=7&start=03-01-2024", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodGet, "/api/v1/stats/dashboard", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBreakdown_BindsDimension(t *testing.T) {
	analytics := &fakeAnalytics{}
	e := newTestServer(analytics, &fakeTrades{})

	rec := do(e, http.MethodGet, "/api/v1/stats/breakdown?user_id=7&dimension=symbol&top=3", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var groups []dto.GroupedResult
	decodeData(t, rec, &groups)
	require.Len(t, groups, 1)
	assert.Equal(t, "symbol", groups[0].Key)
	assert.Equal(t, 3, groups[0].Count)
	assert.Equal(t, uint(7), analytics.lastQuery.UserID)

	rec = do(e, http.MethodGet, "/api/v1/stats/breakdown?user_id=7&dimension=color", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCloseTrade_MapsErrors(t *testing.T) {
	trades := &fakeTrades{}
	e := newTestServer(&fakeAnalytics{}, trades)

	rec := do(e, http.MethodPost, "/api/v1/trades/5/close", `{"exit_price":2010,"pnl":100}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	trades.closeErr = dto.ErrTradeClosed
	rec = do(e, http.MethodPost, "/api/v1/trades/5/close", `{"exit_price":2010,"pnl":100}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	trades.closeErr = dto.ErrTradeNotFound
	rec = do(e, http.MethodPost, "/api/v1/trades/5/close", `{"exit_price":2010,"pnl":100}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(e, http.MethodPost, "/api/v1/trades/abc/close", `{"exit_price":2010}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListAssets(t *testing.T) {
	e := newTestServer(&fakeAnalytics{}, &fakeTrades{})
	rec := do(e, http.MethodGet, "/api/v1/assets", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var assets []asset.Asset
	decodeData(t, rec, &assets)
	assert.NotEmpty(t, assets)
}
