package service

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// DraftTicket identifies the draft state an asynchronous request was issued against.
type DraftTicket struct {
	ID         string
	Symbol     string
	Generation uint64
}

// DraftTracker discards results of requests issued before the draft's symbol changed.
type DraftTracker struct {
	mu         sync.Mutex
	symbol     string
	generation uint64
}

func NewDraftTracker(symbol string) *DraftTracker {
	return &DraftTracker{symbol: strings.ToUpper(symbol)}
}

// SetSymbol records a symbol edit. Changing the symbol invalidates every outstanding ticket.
func (t *DraftTracker) SetSymbol(symbol string) {
	symbol = strings.ToUpper(symbol)
	t.mu.Lock()
	defer t.mu.Unlock()
	if symbol != t.symbol {
		t.symbol = symbol
		t.generation++
	}
}

func (t *DraftTracker) Issue() DraftTicket {
	t.mu.Lock()
	defer t.mu.Unlock()
	return DraftTicket{
		ID:         uuid.NewString(),
		Symbol:     t.symbol,
		Generation: t.generation,
	}
}

// Accept reports whether a result tagged with ticket still applies to the current draft.
func (t *DraftTracker) Accept(ticket DraftTicket) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return ticket.Generation == t.generation && ticket.Symbol == t.symbol
}
