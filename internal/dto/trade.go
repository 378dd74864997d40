package dto

import "time"

type TradeQueryParam struct {
	UserID    uint
	AccountID *uint
}

type CreateTradeRequest struct {
	UserID     uint       `json:"user_id" validate:"required"`
	AccountID  uint       `json:"account_id" validate:"required"`
	Symbol     string     `json:"symbol" validate:"required"`
	Type       string     `json:"type" validate:"required,oneof=LONG SHORT"`
	EntryPrice float64    `json:"entry_price" validate:"gt=0"`
	StopLoss   *float64   `json:"stop_loss" validate:"omitempty,gt=0"`
	TakeProfit *float64   `json:"take_profit" validate:"omitempty,gt=0"`
	Quantity   float64    `json:"quantity" validate:"gt=0"`
	Fees       float64    `json:"fees" validate:"gte=0"`
	Currency   string     `json:"currency" validate:"omitempty,len=3"`
	Setup      string     `json:"setup"`
	Tags       []string   `json:"tags"`
	Notes      string     `json:"notes"`
	EntryDate  *time.Time `json:"entry_date"`
}

// UpdateTradeRequest is a partial edit; nil fields are left untouched.
type UpdateTradeRequest struct {
	StopLoss   *float64   `json:"stop_loss" validate:"omitempty,gt=0"`
	TakeProfit *float64   `json:"take_profit" validate:"omitempty,gt=0"`
	Quantity   *float64   `json:"quantity" validate:"omitempty,gt=0"`
	Fees       *float64   `json:"fees" validate:"omitempty,gte=0"`
	Setup      *string    `json:"setup"`
	Tags       []string   `json:"tags"`
	Notes      *string    `json:"notes"`
	EntryDate  *time.Time `json:"entry_date"`
}

type CloseTradeRequest struct {
	ExitPrice float64    `json:"exit_price" validate:"gt=0"`
	PnL       float64    `json:"pnl"`
	Fees      *float64   `json:"fees" validate:"omitempty,gte=0"`
	ExitDate  *time.Time `json:"exit_date"`
}

type TradeView struct {
	ID           uint            `json:"id"`
	Symbol       string          `json:"symbol"`
	Type         string          `json:"type"`
	Status       string          `json:"status"`
	Outcome      string          `json:"outcome"`
	EntryPrice   float64         `json:"entry_price"`
	ExitPrice    *float64        `json:"exit_price"`
	Quantity     float64         `json:"quantity"`
	PnL          float64         `json:"pnl"`
	Currency     string          `json:"currency"`
	ReportingPnL ConvertedAmount `json:"reporting_pnl"`
	Setup        string          `json:"setup"`
	Tags         []string        `json:"tags"`
	TradeTime    time.Time       `json:"trade_time"`
	IsDeleted    bool            `json:"is_deleted"`
}

type SessionStatus struct {
	TradeID uint   `json:"trade_id"`
	State   string `json:"state"`
	Error   string `json:"error,omitempty"`
}
