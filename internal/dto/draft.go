package dto

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Input is a raw form value. It accepts JSON strings and numbers and is parsed lazily.
type Input string

func (i *Input) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*i = Input(s)
		return nil
	}
	*i = Input(data)
	return nil
}

// NewInput is a convenience for building drafts in code.
func NewInput(v float64) *Input {
	in := Input(strconv.FormatFloat(v, 'f', -1, 64))
	return &in
}

// ParseField returns the numeric value of a fully specified field, or nil when the field
// is absent, blank, non-numeric or not finite.
func ParseField(in *Input) *float64 {
	if in == nil {
		return nil
	}
	s := strings.TrimSpace(string(*in))
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// TradeDraft is the transient state of the trade-entry form.
type TradeDraft struct {
	Symbol         string `json:"symbol"`
	EntryPrice     *Input `json:"entry_price,omitempty"`
	CurrentPrice   *Input `json:"current_price,omitempty"`
	TakeProfit     *Input `json:"take_profit,omitempty"`
	StopLoss       *Input `json:"stop_loss,omitempty"`
	Quantity       *Input `json:"quantity,omitempty"`
	Leverage       *Input `json:"leverage,omitempty"`
	Balance        *Input `json:"balance,omitempty"`
	RiskPercentage *Input `json:"risk_percentage,omitempty"`
}

// DraftValues is a TradeDraft after parsing; nil means absent.
type DraftValues struct {
	EntryPrice     *float64
	CurrentPrice   *float64
	TakeProfit     *float64
	StopLoss       *float64
	Quantity       *float64
	Leverage       *float64
	Balance        *float64
	RiskPercentage *float64
}

func (d TradeDraft) Values() DraftValues {
	return DraftValues{
		EntryPrice:     ParseField(d.EntryPrice),
		CurrentPrice:   ParseField(d.CurrentPrice),
		TakeProfit:     ParseField(d.TakeProfit),
		StopLoss:       ParseField(d.StopLoss),
		Quantity:       ParseField(d.Quantity),
		Leverage:       ParseField(d.Leverage),
		Balance:        ParseField(d.Balance),
		RiskPercentage: ParseField(d.RiskPercentage),
	}
}
