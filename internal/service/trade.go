package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"trading-journal/config"
	"trading-journal/internal/dto"
	"trading-journal/internal/model"
	"trading-journal/internal/repository"
	"trading-journal/pkg/logger"
	"trading-journal/pkg/utils"
)

type TradeService interface {
	List(ctx context.Context, q dto.StatsQuery) ([]dto.TradeView, error)
	Get(ctx context.Context, id uint) (*model.Trade, error)
	Create(ctx context.Context, req dto.CreateTradeRequest) (*model.Trade, error)
	// Edit queues a partial update on the trade's edit session; it is written after the
	// autosave debounce or on Flush.
	Edit(ctx context.Context, id uint, req dto.UpdateTradeRequest) (*dto.SessionStatus, error)
	Flush(ctx context.Context, id uint) (*dto.SessionStatus, error)
	Close(ctx context.Context, id uint, req dto.CloseTradeRequest) (*model.Trade, error)
	Delete(ctx context.Context, id uint) error
	Restore(ctx context.Context, id uint) error
	Accounts(ctx context.Context, userID uint) ([]model.Account, error)
	Shutdown(ctx context.Context)
}

type tradeService struct {
	cfg         *config.Config
	log         *logger.Logger
	tradeRepo   repository.TradeRepository
	accountRepo repository.AccountRepository
	unitOfWork  repository.UnitOfWork
	analytics   AnalyticsService
	currency    CurrencyService
	sessions    *SessionManager
}

func NewTradeService(
	cfg *config.Config,
	log *logger.Logger,
	tradeRepo repository.TradeRepository,
	accountRepo repository.AccountRepository,
	unitOfWork repository.UnitOfWork,
	analytics AnalyticsService,
	currency CurrencyService,
) TradeService {
	s := &tradeService{
		cfg:         cfg,
		log:         log,
		tradeRepo:   tradeRepo,
		accountRepo: accountRepo,
		unitOfWork:  unitOfWork,
		analytics:   analytics,
		currency:    currency,
	}
	s.sessions = NewSessionManager(log, cfg.Journal.AutosaveDebounce, s.saveTrade)
	return s
}

// saveTrade writes the editable columns of a session snapshot. A trade closed or deleted
// since the session loaded it rejects the write and the session is dropped.
func (s *tradeService) saveTrade(ctx context.Context, trade model.Trade) error {
	err := s.tradeRepo.UpdateEdits(ctx, &trade)
	if errors.Is(err, dto.ErrTradeChanged) {
		s.log.WarnContext(ctx, "Discarding edits of a trade changed elsewhere", logger.UintField("trade_id", trade.ID))
		s.sessions.Discard(trade.ID)
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to save trade %d: %w", trade.ID, err)
	}
	return nil
}

func (s *tradeService) List(ctx context.Context, q dto.StatsQuery) ([]dto.TradeView, error) {
	trades, err := s.analytics.Journal(ctx, q)
	if err != nil {
		return nil, err
	}

	views := make([]dto.TradeView, 0, len(trades))
	for _, t := range trades {
		if session, ok := s.sessions.Get(t.ID); ok {
			t = session.Snapshot()
		}
		views = append(views, dto.TradeView{
			ID:           t.ID,
			Symbol:       t.Symbol,
			Type:         string(t.Type),
			Status:       string(t.Status),
			Outcome:      string(t.Outcome),
			EntryPrice:   t.EntryPrice,
			ExitPrice:    t.ExitPrice,
			Quantity:     t.Quantity,
			PnL:          t.PnL,
			Currency:     t.Currency,
			ReportingPnL: s.currency.Convert(ctx, t.PnL, t.Currency),
			Setup:        t.Setup,
			Tags:         t.Tags,
			TradeTime:    t.TradeTime(),
			IsDeleted:    t.IsDeleted,
		})
	}
	return views, nil
}

func (s *tradeService) Get(ctx context.Context, id uint) (*model.Trade, error) {
	if session, ok := s.sessions.Get(id); ok {
		t := session.Snapshot()
		return &t, nil
	}
	return s.tradeRepo.Get(ctx, id)
}

func (s *tradeService) Create(ctx context.Context, req dto.CreateTradeRequest) (*model.Trade, error) {
	account, err := s.accountRepo.Get(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != req.UserID {
		return nil, dto.ErrAccountNotFound
	}

	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = account.Currency
	}

	trade := &model.Trade{
		UserID:     req.UserID,
		AccountID:  req.AccountID,
		Symbol:     strings.ToUpper(strings.TrimSpace(req.Symbol)),
		Type:       model.TradeType(req.Type),
		Status:     model.TradeStatusOpen,
		Outcome:    model.TradeOutcomeOpen,
		EntryPrice: req.EntryPrice,
		StopLoss:   req.StopLoss,
		TakeProfit: req.TakeProfit,
		Quantity:   req.Quantity,
		Fees:       req.Fees,
		Currency:   currency,
		Setup:      strings.TrimSpace(req.Setup),
		Tags:       req.Tags,
		Notes:      req.Notes,
		EntryDate:  req.EntryDate,
	}
	if err := s.tradeRepo.Create(ctx, trade); err != nil {
		s.log.ErrorContext(ctx, "Failed to create trade", logger.ErrorField(err), logger.UintField("user_id", req.UserID))
		return nil, fmt.Errorf("failed to create trade: %w", err)
	}

	s.log.InfoContext(ctx, "Trade created",
		logger.UintField("trade_id", trade.ID),
		logger.StringField("symbol", trade.Symbol),
	)
	return trade, nil
}

func (s *tradeService) Edit(ctx context.Context, id uint, req dto.UpdateTradeRequest) (*dto.SessionStatus, error) {
	for {
		session, err := s.sessions.Open(ctx, id, func(ctx context.Context) (*model.Trade, error) {
			return s.tradeRepo.Get(ctx, id)
		})
		if err != nil {
			return nil, err
		}
		if session.Snapshot().IsDeleted {
			s.sessions.Discard(id)
			return nil, dto.ErrTradeNotFound
		}

		// A session evicted between Open and Edit is retired; load a fresh one.
		if session.Edit(func(t *model.Trade) { applyUpdate(t, req) }) {
			return sessionStatus(id, session), nil
		}
	}
}

func (s *tradeService) Flush(ctx context.Context, id uint) (*dto.SessionStatus, error) {
	session, ok := s.sessions.Get(id)
	if !ok {
		return &dto.SessionStatus{TradeID: id, State: string(SessionClean)}, nil
	}
	if err := session.Flush(ctx); err != nil {
		s.log.ErrorContext(ctx, "Failed to flush trade edits", logger.ErrorField(err), logger.UintField("trade_id", id))
		return sessionStatus(id, session), err
	}
	return sessionStatus(id, session), nil
}

// Close records the exit, derives the final status from pnl and credits the account
// balance in one transaction.
func (s *tradeService) Close(ctx context.Context, id uint, req dto.CloseTradeRequest) (*model.Trade, error) {
	if err := s.sessions.Close(ctx, id); err != nil {
		s.log.ErrorContext(ctx, "Failed to flush edits before close", logger.ErrorField(err), logger.UintField("trade_id", id))
		return nil, fmt.Errorf("failed to flush pending edits: %w", err)
	}

	var closed *model.Trade
	err := s.unitOfWork.Run(func(opts ...utils.DBOption) error {
		trade, err := s.tradeRepo.Get(ctx, id, append(opts, utils.WithForUpdate())...)
		if err != nil {
			return err
		}
		if trade.IsDeleted {
			return dto.ErrTradeNotFound
		}
		if trade.IsClosed() {
			return dto.ErrTradeClosed
		}

		exitDate := req.ExitDate
		if exitDate == nil {
			exitDate = utils.ToPointer(time.Now())
		}
		trade.ExitPrice = utils.ToPointer(req.ExitPrice)
		trade.ExitDate = exitDate
		trade.PnL = req.PnL
		if req.Fees != nil {
			trade.Fees = *req.Fees
		}
		trade.Outcome = model.TradeOutcomeClosed
		trade.Status = model.StatusFromPnL(trade.PnL)

		if err := s.tradeRepo.Update(ctx, trade, opts...); err != nil {
			return fmt.Errorf("failed to update trade: %w", err)
		}
		if err := s.accountRepo.AdjustBalance(ctx, trade.AccountID, trade.PnL, opts...); err != nil {
			return fmt.Errorf("failed to adjust account balance: %w", err)
		}
		closed = trade
		return nil
	})
	if err != nil {
		if !errors.Is(err, dto.ErrTradeClosed) && !errors.Is(err, dto.ErrTradeNotFound) {
			s.log.ErrorContext(ctx, "Failed to close trade", logger.ErrorField(err), logger.UintField("trade_id", id))
		}
		return nil, err
	}

	s.log.InfoContext(ctx, "Trade closed",
		logger.UintField("trade_id", closed.ID),
		logger.StringField("status", string(closed.Status)),
		logger.FloatField("pnl", closed.PnL),
	)
	return closed, nil
}

func (s *tradeService) Delete(ctx context.Context, id uint) error {
	s.sessions.Discard(id)
	if err := s.tradeRepo.SoftDelete(ctx, id, time.Now()); err != nil {
		if !errors.Is(err, dto.ErrTradeNotFound) {
			s.log.ErrorContext(ctx, "Failed to delete trade", logger.ErrorField(err), logger.UintField("trade_id", id))
		}
		return err
	}
	return nil
}

func (s *tradeService) Restore(ctx context.Context, id uint) error {
	if err := s.tradeRepo.Restore(ctx, id); err != nil {
		if !errors.Is(err, dto.ErrTradeNotFound) {
			s.log.ErrorContext(ctx, "Failed to restore trade", logger.ErrorField(err), logger.UintField("trade_id", id))
		}
		return err
	}
	return nil
}

func (s *tradeService) Accounts(ctx context.Context, userID uint) ([]model.Account, error) {
	accounts, err := s.accountRepo.List(ctx, userID)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to list accounts", logger.ErrorField(err), logger.UintField("user_id", userID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// Shutdown writes every pending edit.
func (s *tradeService) Shutdown(ctx context.Context) {
	s.sessions.FlushAll(ctx)
}

func applyUpdate(t *model.Trade, req dto.UpdateTradeRequest) {
	if req.StopLoss != nil {
		t.StopLoss = utils.ToPointer(*req.StopLoss)
	}
	if req.TakeProfit != nil {
		t.TakeProfit = utils.ToPointer(*req.TakeProfit)
	}
	if req.Quantity != nil {
		t.Quantity = *req.Quantity
	}
	if req.Fees != nil {
		t.Fees = *req.Fees
	}
	if req.Setup != nil {
		t.Setup = strings.TrimSpace(*req.Setup)
	}
	if req.Tags != nil {
		t.Tags = append([]string{}, req.Tags...)
	}
	if req.Notes != nil {
		t.Notes = *req.Notes
	}
	if req.EntryDate != nil {
		t.EntryDate = utils.ToPointer(*req.EntryDate)
	}
}

func sessionStatus(id uint, session *EditSession) *dto.SessionStatus {
	status := &dto.SessionStatus{TradeID: id, State: string(session.State())}
	if err := session.Err(); err != nil {
		status.Error = err.Error()
	}
	return status
}
