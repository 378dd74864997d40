package service

import (
	"context"
	"sync"
	"time"

	"trading-journal/internal/model"
	"trading-journal/pkg/logger"
)

type SessionState string

const (
	SessionClean     SessionState = "CLEAN"
	SessionDirty     SessionState = "DIRTY"
	SessionDebounced SessionState = "DEBOUNCED"
	SessionSaving    SessionState = "SAVING"
)

// TradeSaver persists a snapshot of an edited trade.
type TradeSaver func(ctx context.Context, trade model.Trade) error

// EditSession collects edits to one trade and writes them after a quiet period.
// It moves Clean -> Debounced on an edit, Debounced -> Saving when the timer fires and
// back to Clean once everything is written. Dirty holds edits with no timer armed, after
// a failed save or a cancelled timer. At most one save runs at a time; edits made during
// a save are picked up by the next one.
type EditSession struct {
	mu           sync.Mutex
	log          *logger.Logger
	saver        TradeSaver
	debounce     time.Duration
	saveTimeout  time.Duration
	pending      model.Trade
	state        SessionState
	version      uint64
	savedVersion uint64
	timer        *time.Timer
	saving       chan struct{}
	lastErr      error
	retired      bool
	onIdle       func(*EditSession)
}

func NewEditSession(log *logger.Logger, trade model.Trade, debounce time.Duration, saver TradeSaver) *EditSession {
	return &EditSession{
		log:         log,
		saver:       saver,
		debounce:    debounce,
		saveTimeout: 30 * time.Second,
		pending:     cloneTrade(trade),
		state:       SessionClean,
	}
}

// Edit applies fn to the pending trade and restarts the debounce timer. It returns false
// when the session has been retired, in which case the caller opens a new one.
func (s *EditSession) Edit(fn func(t *model.Trade)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.retired {
		return false
	}

	fn(&s.pending)
	s.version++
	if s.state != SessionSaving {
		s.state = SessionDebounced
	}

	if s.timer != nil {
		s.timer.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(s.debounce, func() {
		s.mu.Lock()
		if s.timer == timer {
			s.timer = nil
		}
		s.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), s.saveTimeout)
		defer cancel()
		if err := s.save(ctx); err != nil {
			s.log.WarnContext(ctx, "Autosave failed", logger.ErrorField(err), logger.UintField("trade_id", s.tradeID()))
		}
	})
	s.timer = timer
	return true
}

// Flush cancels the pending timer and saves immediately.
func (s *EditSession) Flush(ctx context.Context) error {
	s.mu.Lock()
	s.stopTimer()
	s.mu.Unlock()
	return s.save(ctx)
}

// Stop cancels the pending timer without saving.
func (s *EditSession) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimer()
}

func (s *EditSession) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.state == SessionDebounced {
		s.state = SessionDirty
	}
}

// idle reports whether everything edited has been saved. Callers hold s.mu.
func (s *EditSession) idle() bool {
	return s.saving == nil && s.timer == nil && s.version == s.savedVersion && s.lastErr == nil
}

func (s *EditSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err is the error of the last save, nil once a later save succeeds.
func (s *EditSession) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Snapshot returns a copy of the pending trade.
func (s *EditSession) Snapshot() model.Trade {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTrade(s.pending)
}

func (s *EditSession) tradeID() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending.ID
}

func (s *EditSession) save(ctx context.Context) error {
	s.mu.Lock()
	for s.saving != nil {
		inFlight := s.saving
		s.mu.Unlock()
		select {
		case <-inFlight:
		case <-ctx.Done():
			return ctx.Err()
		}
		s.mu.Lock()
	}

	if s.version == s.savedVersion && s.lastErr == nil {
		s.state = SessionClean
		s.mu.Unlock()
		s.notifyIdle()
		return nil
	}

	snapshot := cloneTrade(s.pending)
	version := s.version
	done := make(chan struct{})
	s.saving = done
	s.state = SessionSaving
	s.mu.Unlock()

	err := s.saver(ctx, snapshot)

	s.mu.Lock()
	s.saving = nil
	close(done)

	switch {
	case err != nil:
		s.lastErr = err
		s.state = s.unsavedState()
	case s.version == version:
		s.lastErr = nil
		s.savedVersion = version
		s.state = SessionClean
	default:
		s.lastErr = nil
		s.savedVersion = version
		s.state = s.unsavedState()
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.notifyIdle()
	return nil
}

// unsavedState is the state of a session holding unsaved edits. Callers hold s.mu.
func (s *EditSession) unsavedState() SessionState {
	if s.timer != nil {
		return SessionDebounced
	}
	return SessionDirty
}

func (s *EditSession) notifyIdle() {
	s.mu.Lock()
	onIdle, idle := s.onIdle, s.idle()
	s.mu.Unlock()
	if onIdle != nil && idle {
		onIdle(s)
	}
}

func cloneTrade(t model.Trade) model.Trade {
	out := t
	if t.Tags != nil {
		out.Tags = append([]string{}, t.Tags...)
	}
	return out
}

// SessionManager keeps one EditSession per trade.
type SessionManager struct {
	mu       sync.Mutex
	log      *logger.Logger
	debounce time.Duration
	saver    TradeSaver
	sessions map[uint]*EditSession
}

func NewSessionManager(log *logger.Logger, debounce time.Duration, saver TradeSaver) *SessionManager {
	return &SessionManager{
		log:      log,
		debounce: debounce,
		saver:    saver,
		sessions: make(map[uint]*EditSession),
	}
}

// Open returns the trade's session, creating it from load when none exists.
// load runs without the manager lock; when two callers race, the first session stored wins.
func (m *SessionManager) Open(ctx context.Context, tradeID uint, load func(ctx context.Context) (*model.Trade, error)) (*EditSession, error) {
	if s, ok := m.Get(tradeID); ok {
		return s, nil
	}
	trade, err := load(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[tradeID]; ok {
		return s, nil
	}
	s := NewEditSession(m.log, *trade, m.debounce, m.saver)
	s.onIdle = func(s *EditSession) { m.evict(tradeID, s) }
	m.sessions[tradeID] = s
	return s, nil
}

// evict forgets a session whose edits are all saved, so reads fall back to the stored row.
func (m *SessionManager) evict(tradeID uint, s *EditSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sessions[tradeID] != s {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.idle() {
		return
	}
	s.retired = true
	delete(m.sessions, tradeID)
}

func (m *SessionManager) Get(tradeID uint) (*EditSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[tradeID]
	return s, ok
}

// Close flushes the trade's session and forgets it. A failed flush keeps the session open.
func (m *SessionManager) Close(ctx context.Context, tradeID uint) error {
	s, ok := m.Get(tradeID)
	if !ok {
		return nil
	}
	if err := s.Flush(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sessions[tradeID] == s {
		s.mu.Lock()
		s.retired = true
		s.mu.Unlock()
		delete(m.sessions, tradeID)
	}
	return nil
}

// Discard drops the trade's session without saving.
func (m *SessionManager) Discard(tradeID uint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[tradeID]; ok {
		s.mu.Lock()
		s.stopTimer()
		s.retired = true
		s.mu.Unlock()
		delete(m.sessions, tradeID)
	}
}

// FlushAll saves every open session, used on shutdown.
func (m *SessionManager) FlushAll(ctx context.Context) {
	m.mu.Lock()
	sessions := make([]*EditSession, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.Unlock()

	for _, s := range sessions {
		if err := s.Flush(ctx); err != nil {
			m.log.ErrorContext(ctx, "Failed to flush edit session", logger.ErrorField(err), logger.UintField("trade_id", s.tradeID()))
		}
	}
}
