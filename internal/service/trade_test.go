package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"trading-journal/internal/dto"
	"trading-journal/internal/model"
	"trading-journal/pkg/cache"
	"trading-journal/pkg/logger"
	"trading-journal/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tradeFixture struct {
	svc      TradeService
	trades   *fakeTradeRepo
	accounts *fakeAccountRepo
	uow      *fakeUnitOfWork
}

func newTradeFixture(trades ...model.Trade) tradeFixture {
	cfg := testConfig()
	log := logger.NewNop()
	tradeRepo := newFakeTradeRepo(trades...)
	accountRepo := newFakeAccountRepo(model.Account{ID: 1, UserID: 7, Currency: "EUR", Balance: 1000})
	uow := &fakeUnitOfWork{}
	currency := NewCurrencyService(cfg, log, cache.NewCache(time.Minute, time.Minute), newFakeRateRepo(map[string]float64{"EUR": 1.1}))

	return tradeFixture{
		svc:      NewTradeService(cfg, log, tradeRepo, accountRepo, uow, NewAnalyticsService(cfg, log, tradeRepo), currency),
		trades:   tradeRepo,
		accounts: accountRepo,
		uow:      uow,
	}
}

func openTrade(id uint) model.Trade {
	return model.Trade{
		ID: id, UserID: 7, AccountID: 1, Symbol: "XAUUSD", Type: model.TradeTypeLong,
		Status: model.TradeStatusOpen, Outcome: model.TradeOutcomeOpen, EntryPrice: 2000, Quantity: 1,
		Currency: "USD", CreatedAt: time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC),
	}
}

func TestTradeService_Create(t *testing.T) {
	f := newTradeFixture()
	ctx := context.Background()

	trade, err := f.svc.Create(ctx, dto.CreateTradeRequest{
		UserID: 7, AccountID: 1, Symbol: " xauusd ", Type: "LONG", EntryPrice: 2000, Quantity: 1,
		Tags: []string{"london"},
	})
	require.NoError(t, err)
	assert.Equal(t, "XAUUSD", trade.Symbol)
	assert.Equal(t, "EUR", trade.Currency, "defaults to the account currency")
	assert.Equal(t, model.TradeOutcomeOpen, trade.Outcome)

	_, err = f.svc.Create(ctx, dto.CreateTradeRequest{UserID: 8, AccountID: 1, Symbol: "X", Type: "LONG", EntryPrice: 1, Quantity: 1})
	assert.ErrorIs(t, err, dto.ErrAccountNotFound)
}

func TestTradeService_CloseCreditsAccount(t *testing.T) {
	f := newTradeFixture(openTrade(1))
	ctx := context.Background()

	closed, err := f.svc.Close(ctx, 1, dto.CloseTradeRequest{ExitPrice: 2010, PnL: 1000})
	require.NoError(t, err)
	assert.Equal(t, model.TradeStatusWin, closed.Status)
	assert.True(t, closed.IsClosed())
	require.NotNil(t, closed.ExitDate)
	assert.Equal(t, 1000.0, f.accounts.adjusted[1])
	assert.Equal(t, 1, f.uow.runs)

	_, err = f.svc.Close(ctx, 1, dto.CloseTradeRequest{ExitPrice: 2010})
	assert.ErrorIs(t, err, dto.ErrTradeClosed)
	assert.Equal(t, 1000.0, f.accounts.adjusted[1])
}

func TestTradeService_CloseFlushesPendingEdits(t *testing.T) {
	f := newTradeFixture(openTrade(1))
	ctx := context.Background()

	_, err := f.svc.Edit(ctx, 1, dto.UpdateTradeRequest{Notes: utils.ToPointer("held through news")})
	require.NoError(t, err)

	_, err = f.svc.Close(ctx, 1, dto.CloseTradeRequest{ExitPrice: 1990, PnL: -50})
	require.NoError(t, err)

	stored := f.trades.stored(1)
	assert.Equal(t, "held through news", stored.Notes)
	assert.Equal(t, model.TradeStatusLoss, stored.Status)
}

func TestTradeService_EditDuringCloseDoesNotReopen(t *testing.T) {
	f := newTradeFixture(openTrade(1))
	ctx := context.Background()

	var fired atomic.Bool
	f.trades.afterGet = func(id uint, locked bool) {
		if locked && fired.CompareAndSwap(false, true) {
			_, err := f.svc.Edit(ctx, id, dto.UpdateTradeRequest{Notes: utils.ToPointer("late note")})
			assert.NoError(t, err)
		}
	}

	_, err := f.svc.Close(ctx, 1, dto.CloseTradeRequest{ExitPrice: 2010, PnL: 1000})
	require.NoError(t, err)
	require.True(t, fired.Load())

	sessions := f.svc.(*tradeService).sessions
	require.Eventually(t, func() bool {
		_, open := sessions.Get(1)
		return !open
	}, time.Second, 5*time.Millisecond, "the stale session is dropped")

	stored := f.trades.stored(1)
	assert.Equal(t, model.TradeOutcomeClosed, stored.Outcome)
	assert.Equal(t, model.TradeStatusWin, stored.Status)
	assert.Equal(t, 1000.0, stored.PnL)
	assert.Empty(t, stored.Notes)

	_, err = f.svc.Close(ctx, 1, dto.CloseTradeRequest{ExitPrice: 2010, PnL: 1000})
	assert.ErrorIs(t, err, dto.ErrTradeClosed)
	assert.Equal(t, 1000.0, f.accounts.adjusted[1])
}

func TestTradeService_EditClosedTradeKeepsOutcome(t *testing.T) {
	closed := openTrade(1)
	closed.Outcome = model.TradeOutcomeClosed
	closed.Status = model.TradeStatusLoss
	closed.PnL = -40
	f := newTradeFixture(closed)
	ctx := context.Background()

	_, err := f.svc.Edit(ctx, 1, dto.UpdateTradeRequest{Notes: utils.ToPointer("review: moved stop")})
	require.NoError(t, err)
	_, err = f.svc.Flush(ctx, 1)
	require.NoError(t, err)

	stored := f.trades.stored(1)
	assert.Equal(t, "review: moved stop", stored.Notes)
	assert.Equal(t, model.TradeOutcomeClosed, stored.Outcome)
	assert.Equal(t, -40.0, stored.PnL)
}

func TestTradeService_SavedSessionFallsBackToStore(t *testing.T) {
	f := newTradeFixture(openTrade(1))
	ctx := context.Background()

	_, err := f.svc.Edit(ctx, 1, dto.UpdateTradeRequest{Setup: utils.ToPointer("Range")})
	require.NoError(t, err)
	_, err = f.svc.Flush(ctx, 1)
	require.NoError(t, err)

	_, open := f.svc.(*tradeService).sessions.Get(1)
	assert.False(t, open)

	f.trades.mu.Lock()
	row := f.trades.trades[1]
	row.Setup = "Edited elsewhere"
	f.trades.trades[1] = row
	f.trades.mu.Unlock()

	got, err := f.svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Edited elsewhere", got.Setup)
}

func TestTradeService_EditAndFlush(t *testing.T) {
	f := newTradeFixture(openTrade(1))
	ctx := context.Background()

	status, err := f.svc.Edit(ctx, 1, dto.UpdateTradeRequest{
		Setup: utils.ToPointer("Breakout"),
		Tags:  []string{"a+"},
	})
	require.NoError(t, err)
	assert.Equal(t, string(SessionDebounced), status.State)

	got, err := f.svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Breakout", got.Setup, "reads see pending edits")

	status, err = f.svc.Flush(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, string(SessionClean), status.State)
	assert.Equal(t, []string{"a+"}, []string(f.trades.stored(1).Tags))

	_, err = f.svc.Edit(ctx, 99, dto.UpdateTradeRequest{})
	assert.ErrorIs(t, err, dto.ErrTradeNotFound)
}

func TestTradeService_AutosaveAfterDebounce(t *testing.T) {
	f := newTradeFixture(openTrade(1))
	ctx := context.Background()

	_, err := f.svc.Edit(ctx, 1, dto.UpdateTradeRequest{Quantity: utils.ToPointer(2.0)})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return f.trades.stored(1).Quantity == 2
	}, time.Second, 5*time.Millisecond)
}

func TestTradeService_DeleteRestore(t *testing.T) {
	f := newTradeFixture(openTrade(1))
	ctx := context.Background()

	require.NoError(t, f.svc.Delete(ctx, 1))
	views, err := f.svc.List(ctx, dto.StatsQuery{UserID: 7})
	require.NoError(t, err)
	assert.Empty(t, views)

	trash, err := f.svc.List(ctx, dto.StatsQuery{UserID: 7, Trash: true})
	require.NoError(t, err)
	require.Len(t, trash, 1)
	assert.True(t, trash[0].IsDeleted)

	require.NoError(t, f.svc.Restore(ctx, 1))
	assert.ErrorIs(t, f.svc.Restore(ctx, 1), dto.ErrTradeNotFound)
}

func TestTradeService_ListConvertsPnL(t *testing.T) {
	usd := openTrade(1)
	usd.PnL = 12.5
	eur := openTrade(2)
	eur.Currency = "EUR"
	eur.PnL = 10
	f := newTradeFixture(usd, eur)

	views, err := f.svc.List(context.Background(), dto.StatsQuery{UserID: 7})
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "12.50", views[0].ReportingPnL.Display)
	assert.False(t, views[0].ReportingPnL.Pending)
	assert.True(t, views[1].ReportingPnL.Pending, "first sight of a currency waits for its rate")
}
