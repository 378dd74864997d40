package dto

import "time"

type StatsSnapshot struct {
	TotalTrades  int          `json:"total_trades"`
	OpenTrades   int          `json:"open_trades"`
	ClosedTrades int          `json:"closed_trades"`
	Wins         int          `json:"wins"`
	Losses       int          `json:"losses"`
	WinRate      float64      `json:"win_rate"`
	NetPnL       float64      `json:"net_pnl"`
	GrossProfit  float64      `json:"gross_profit"`
	GrossLoss    float64      `json:"gross_loss"`
	AvgWin       float64      `json:"avg_win"`
	AvgLoss      float64      `json:"avg_loss"`
	ProfitFactor float64      `json:"profit_factor"`
	Expectancy   float64      `json:"expectancy"`
	BestTrade    float64      `json:"best_trade"`
	WorstTrade   float64      `json:"worst_trade"`
	TotalFees    float64      `json:"total_fees"`
	MaxDrawdown  float64      `json:"max_drawdown"`
	Distribution Distribution `json:"distribution"`
}

// Distribution splits closed trades three ways; Losses here excludes break-even.
type Distribution struct {
	Wins      int `json:"wins"`
	Losses    int `json:"losses"`
	BreakEven int `json:"break_even"`
}

type EquityPoint struct {
	TradeID    uint      `json:"trade_id"`
	Time       time.Time `json:"time"`
	PnL        float64   `json:"pnl"`
	Cumulative float64   `json:"cumulative"`
}

type DailyBucket struct {
	Date  string  `json:"date"`
	PnL   float64 `json:"pnl"`
	Count int     `json:"count"`
	Wins  int     `json:"wins"`
}

type HourlyBucket struct {
	Hour  int     `json:"hour"`
	PnL   float64 `json:"pnl"`
	Count int     `json:"count"`
}

type GroupedResult struct {
	Key     string  `json:"key"`
	PnL     float64 `json:"pnl"`
	Count   int     `json:"count"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"win_rate"`
}

type DashboardResult struct {
	Stats      StatsSnapshot    `json:"stats"`
	Equity     []EquityPoint    `json:"equity"`
	Daily      []DailyBucket    `json:"daily"`
	Hourly     [24]HourlyBucket `json:"hourly"`
	Strategies []GroupedResult  `json:"strategies"`
}

// StatsQuery is bound from the query string of the journal, dashboard and calendar endpoints.
type StatsQuery struct {
	UserID    uint   `query:"user_id" validate:"required"`
	AccountID uint   `query:"account_id"`
	Start     string `query:"start" validate:"omitempty,datetime=2006-01-02"`
	End       string `query:"end" validate:"omitempty,datetime=2006-01-02"`
	Tags      string `query:"tags"`
	Assets    string `query:"assets"`
	Trash     bool   `query:"trash"`
}

type BreakdownQuery struct {
	StatsQuery
	Dimension Dimension `query:"dimension" validate:"omitempty,oneof=setup symbol type weekday tag"`
	TopN      int       `query:"top" validate:"gte=0"`
}
