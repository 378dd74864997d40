package model

import (
	"time"

	"gorm.io/datatypes"
)

type TradeType string

const (
	TradeTypeLong  TradeType = "LONG"
	TradeTypeShort TradeType = "SHORT"
)

type TradeStatus string

const (
	TradeStatusOpen      TradeStatus = "OPEN"
	TradeStatusWin       TradeStatus = "WIN"
	TradeStatusLoss      TradeStatus = "LOSS"
	TradeStatusBreakEven TradeStatus = "BREAK_EVEN"
)

type TradeOutcome string

const (
	TradeOutcomeOpen   TradeOutcome = "OPEN"
	TradeOutcomeClosed TradeOutcome = "CLOSED"
)

type Trade struct {
	ID         uint                        `gorm:"primaryKey" json:"id"`
	UserID     uint                        `gorm:"not null;index" json:"user_id"`
	AccountID  uint                        `gorm:"not null;index" json:"account_id"`
	Symbol     string                      `gorm:"not null" json:"symbol"`
	Type       TradeType                   `gorm:"type:varchar(10);not null" json:"type"`
	Status     TradeStatus                 `gorm:"type:varchar(20);not null" json:"status"`
	Outcome    TradeOutcome                `gorm:"type:varchar(10);not null" json:"outcome"`
	EntryPrice float64                     `gorm:"not null" json:"entry_price"`
	ExitPrice  *float64                    `json:"exit_price"`
	StopLoss   *float64                    `json:"stop_loss"`
	TakeProfit *float64                    `json:"take_profit"`
	Quantity   float64                     `gorm:"not null" json:"quantity"`
	PnL        float64                     `gorm:"column:pnl;not null;default:0" json:"pnl"`
	Fees       float64                     `gorm:"not null;default:0" json:"fees"`
	Currency   string                      `gorm:"type:varchar(3);not null;default:USD" json:"currency"`
	Setup      string                      `json:"setup"`
	Tags       datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"tags"`
	Notes      string                      `gorm:"type:text" json:"notes"`
	EntryDate  *time.Time                  `json:"entry_date"`
	ExitDate   *time.Time                  `json:"exit_date"`
	IsDeleted  bool                        `gorm:"not null;default:false;index" json:"is_deleted"`
	DeletedAt  *time.Time                  `json:"deleted_at"`
	CreatedAt  time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Trade) TableName() string {
	return "trades"
}

// TradeTime is the timestamp every bucketing and date filter keys on:
// the entry date when recorded, otherwise the creation time.
func (t Trade) TradeTime() time.Time {
	if t.EntryDate != nil && !t.EntryDate.IsZero() {
		return *t.EntryDate
	}
	return t.CreatedAt
}

func (t Trade) IsClosed() bool {
	return t.Outcome == TradeOutcomeClosed
}

// StatusFromPnL maps a realized pnl to the stored closed status.
func StatusFromPnL(pnl float64) TradeStatus {
	switch {
	case pnl > 0:
		return TradeStatusWin
	case pnl < 0:
		return TradeStatusLoss
	default:
		return TradeStatusBreakEven
	}
}
