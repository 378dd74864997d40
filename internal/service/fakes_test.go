package service

import (
	"context"
	"sync"
	"time"

	"trading-journal/config"
	"trading-journal/internal/dto"
	"trading-journal/internal/model"
	"trading-journal/pkg/utils"
)

func testConfig() *config.Config {
	return &config.Config{
		Cache: config.Cache{SettingsExpDuration: time.Hour},
		ExchangeRate: config.ExchangeRate{
			Timeout:           time.Second,
			ReportingCurrency: "USD",
		},
		Journal: config.Journal{
			TrashRetentionDays: 30,
			AutosaveDebounce:   20 * time.Millisecond,
			TimeZone:           "UTC",
			BreakdownTopN:      5,
		},
	}
}

type fakeTradeRepo struct {
	mu      sync.Mutex
	trades  map[uint]model.Trade
	nextID  uint
	updates int
	listErr error
	saveErr error
	purged  time.Time
	// afterGet runs outside the lock once Get has read the row; locked is true for row-locking reads.
	afterGet func(id uint, locked bool)
}

func newFakeTradeRepo(trades ...model.Trade) *fakeTradeRepo {
	r := &fakeTradeRepo{trades: make(map[uint]model.Trade), nextID: 100}
	for _, t := range trades {
		r.trades[t.ID] = t
	}
	return r
}

func (r *fakeTradeRepo) List(_ context.Context, param dto.TradeQueryParam) ([]model.Trade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []model.Trade
	for id := uint(0); id <= r.nextID; id++ {
		t, ok := r.trades[id]
		if ok && t.UserID == param.UserID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTradeRepo) Get(_ context.Context, id uint, opts ...utils.DBOption) (*model.Trade, error) {
	r.mu.Lock()
	t, ok := r.trades[id]
	hook := r.afterGet
	r.mu.Unlock()
	if !ok {
		return nil, dto.ErrTradeNotFound
	}
	if hook != nil {
		hook(id, len(opts) > 0)
	}
	return &t, nil
}

func (r *fakeTradeRepo) Create(_ context.Context, trade *model.Trade, _ ...utils.DBOption) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	trade.ID = r.nextID
	trade.CreatedAt = time.Now()
	r.trades[trade.ID] = *trade
	return nil
}

func (r *fakeTradeRepo) Update(_ context.Context, trade *model.Trade, _ ...utils.DBOption) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.updates++
	r.trades[trade.ID] = *trade
	return nil
}

func (r *fakeTradeRepo) UpdateEdits(_ context.Context, trade *model.Trade) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	stored, ok := r.trades[trade.ID]
	if !ok || stored.IsDeleted || stored.Outcome != trade.Outcome {
		return dto.ErrTradeChanged
	}
	r.updates++
	stored.StopLoss = trade.StopLoss
	stored.TakeProfit = trade.TakeProfit
	stored.Quantity = trade.Quantity
	stored.Fees = trade.Fees
	stored.Setup = trade.Setup
	stored.Tags = trade.Tags
	stored.Notes = trade.Notes
	stored.EntryDate = trade.EntryDate
	r.trades[trade.ID] = stored
	return nil
}

func (r *fakeTradeRepo) SoftDelete(_ context.Context, id uint, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trades[id]
	if !ok {
		return dto.ErrTradeNotFound
	}
	t.IsDeleted = true
	t.DeletedAt = &at
	r.trades[id] = t
	return nil
}

func (r *fakeTradeRepo) Restore(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trades[id]
	if !ok || !t.IsDeleted {
		return dto.ErrTradeNotFound
	}
	t.IsDeleted = false
	t.DeletedAt = nil
	r.trades[id] = t
	return nil
}

func (r *fakeTradeRepo) PurgeDeletedBefore(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.purged = before
	var n int64
	for id, t := range r.trades {
		if t.IsDeleted && t.DeletedAt != nil && t.DeletedAt.Before(before) {
			delete(r.trades, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeTradeRepo) stored(id uint) model.Trade {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.trades[id]
}

type fakeAccountRepo struct {
	accounts map[uint]model.Account
	adjusted map[uint]float64
}

func newFakeAccountRepo(accounts ...model.Account) *fakeAccountRepo {
	r := &fakeAccountRepo{accounts: make(map[uint]model.Account), adjusted: make(map[uint]float64)}
	for _, a := range accounts {
		r.accounts[a.ID] = a
	}
	return r
}

func (r *fakeAccountRepo) List(_ context.Context, userID uint) ([]model.Account, error) {
	var out []model.Account
	for _, a := range r.accounts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAccountRepo) Get(_ context.Context, id uint, _ ...utils.DBOption) (*model.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, dto.ErrAccountNotFound
	}
	return &a, nil
}

func (r *fakeAccountRepo) AdjustBalance(_ context.Context, id uint, delta float64, _ ...utils.DBOption) error {
	a, ok := r.accounts[id]
	if !ok {
		return dto.ErrAccountNotFound
	}
	a.Balance += delta
	r.accounts[id] = a
	r.adjusted[id] += delta
	return nil
}

// fakeUnitOfWork runs fn directly; it does not roll back.
type fakeUnitOfWork struct{ runs int }

func (u *fakeUnitOfWork) Run(fn func(opts ...utils.DBOption) error) error {
	u.runs++
	return fn()
}

type fakeSettingRepo struct {
	settings map[uint]model.UserSetting
	saveErr  error
	gets     int
}

func newFakeSettingRepo() *fakeSettingRepo {
	return &fakeSettingRepo{settings: make(map[uint]model.UserSetting)}
}

func (r *fakeSettingRepo) Get(_ context.Context, userID uint) (*model.UserSetting, error) {
	r.gets++
	s, ok := r.settings[userID]
	if !ok {
		return &model.UserSetting{UserID: userID}, nil
	}
	return &s, nil
}

func (r *fakeSettingRepo) Save(_ context.Context, setting *model.UserSetting) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.settings[setting.UserID] = *setting
	return nil
}

type fakeRateRepo struct {
	mu    sync.Mutex
	rates map[string]float64
	calls map[string]int
	err   error
	gate  chan struct{}
}

func newFakeRateRepo(rates map[string]float64) *fakeRateRepo {
	return &fakeRateRepo{rates: rates, calls: make(map[string]int)}
}

func (r *fakeRateRepo) GetRateToUSD(ctx context.Context, code string) (float64, error) {
	r.mu.Lock()
	r.calls[code]++
	gate := r.gate
	r.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	if r.err != nil {
		return 0, r.err
	}
	rate, ok := r.rates[code]
	if !ok {
		return 0, dto.ErrRateUnavailable
	}
	return rate, nil
}

func (r *fakeRateRepo) callCount(code string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[code]
}
