package calculator

import (
	"math"
	"strconv"
	"strings"

	"trading-journal/internal/asset"
	"trading-journal/internal/dto"
	"trading-journal/pkg/utils"
)

// ClassifyDirection infers LONG/SHORT from the target first, then the stop, defaulting to LONG.
// A target and stop implying opposite directions are not rejected; the target wins.
func ClassifyDirection(entry, takeProfit, stopLoss *float64) dto.Direction {
	if entry == nil {
		return dto.DirectionLong
	}
	if takeProfit != nil {
		if *takeProfit > *entry {
			return dto.DirectionLong
		}
		return dto.DirectionShort
	}
	if stopLoss != nil {
		if *stopLoss < *entry {
			return dto.DirectionLong
		}
		return dto.DirectionShort
	}
	return dto.DirectionLong
}

// ClassifyOrderType maps the entry relative to the current price to a pending-order kind.
func ClassifyOrderType(direction dto.Direction, entry, current *float64) dto.OrderType {
	if entry == nil || current == nil {
		return dto.OrderTypeNone
	}
	e, c := *entry, *current
	if direction == dto.DirectionShort {
		switch {
		case e > c:
			return dto.OrderTypeSellLimit
		case e < c:
			return dto.OrderTypeSellStop
		default:
			return dto.OrderTypeMarketSell
		}
	}
	switch {
	case e < c:
		return dto.OrderTypeBuyLimit
	case e > c:
		return dto.OrderTypeBuyStop
	default:
		return dto.OrderTypeMarketBuy
	}
}

// Distance measures target from entry in points, pips and ticks. Absent prices yield zeros.
func Distance(target, entry *float64, a asset.Asset) dto.DistanceSet {
	if target == nil || entry == nil {
		return dto.DistanceSet{}
	}
	points := math.Abs(*target - *entry)
	return dto.DistanceSet{
		Points: points,
		Pips:   safeDiv(points, a.Pip),
		Ticks:  safeDiv(points, a.Tick),
	}
}

// CalculatorActive reports whether the risk solvers have every input they need.
func CalculatorActive(draft dto.TradeDraft) bool {
	v := draft.Values()
	return strings.TrimSpace(draft.Symbol) != "" &&
		v.EntryPrice != nil && v.StopLoss != nil && v.Balance != nil &&
		*v.EntryPrice != *v.StopLoss
}

// ComputeDerivedMetrics builds the metrics snapshot for a draft. It returns nil when the
// asset is unknown or there is no entry price to measure from.
func ComputeDerivedMetrics(draft dto.TradeDraft, a *asset.Asset) *dto.DerivedMetrics {
	if a == nil {
		return nil
	}
	v := draft.Values()
	if v.EntryPrice == nil {
		return nil
	}

	direction := ClassifyDirection(v.EntryPrice, v.TakeProfit, v.StopLoss)
	m := &dto.DerivedMetrics{
		Direction: direction,
		OrderType: ClassifyOrderType(direction, v.EntryPrice, v.CurrentPrice),
		TP:        Distance(v.TakeProfit, v.EntryPrice, *a),
		SL:        Distance(v.StopLoss, v.EntryPrice, *a),
	}

	if v.Quantity != nil {
		lots := *v.Quantity
		if v.StopLoss != nil {
			m.LotRiskAmount = finite(m.SL.Points * a.ContractSize * lots)
		}
		if v.TakeProfit != nil {
			m.PotentialProfit = finite(m.TP.Points * a.ContractSize * lots)
		}
		leverage := 1.0
		if v.Leverage != nil && *v.Leverage > 0 {
			leverage = *v.Leverage
		}
		m.RequiredMargin = finite(*v.EntryPrice * a.ContractSize * lots / leverage)
	}

	m.RiskAmount = reconcileRisk(m.LotRiskAmount, v.Balance, v.RiskPercentage)
	if m.RiskAmount > 0 {
		m.RewardToRisk = finite(m.PotentialProfit / m.RiskAmount)
	}
	return m
}

// reconcileRisk prefers the percentage-derived amount when the lot-derived one is within
// RiskReconcileTolerance of it. This only smooths lot-rounding noise for display; the
// 5% threshold is a product heuristic, not a correctness bound.
func reconcileRisk(lotRisk float64, balance, riskPct *float64) float64 {
	if balance == nil || riskPct == nil {
		return lotRisk
	}
	theoretical := *balance * *riskPct / 100
	if theoretical <= 0 || !utils.IsFinite(theoretical) {
		return lotRisk
	}
	if math.Abs(lotRisk-theoretical) <= dto.RiskReconcileTolerance*theoretical {
		return theoretical
	}
	return lotRisk
}

// SolveLotsFromRisk sizes the position so that hitting the stop loses riskPercentage of balance.
func SolveLotsFromRisk(draft dto.TradeDraft, a *asset.Asset) (float64, bool) {
	if a == nil {
		return 0, false
	}
	v := draft.Values()
	if v.RiskPercentage == nil || v.Balance == nil || v.EntryPrice == nil || v.StopLoss == nil {
		return 0, false
	}
	if *v.Balance <= 0 {
		return 0, false
	}
	perLot := math.Abs(*v.EntryPrice-*v.StopLoss) * a.ContractSize
	if perLot == 0 {
		return 0, false
	}
	riskAmount := *v.Balance * *v.RiskPercentage / 100
	lots := riskAmount / perLot
	if !utils.IsFinite(lots) {
		return 0, false
	}
	return lots, true
}

// SolveRiskFromLots returns the percentage of balance lost if the stop is hit at the given size.
func SolveRiskFromLots(draft dto.TradeDraft, a *asset.Asset) (float64, bool) {
	if a == nil {
		return 0, false
	}
	v := draft.Values()
	if v.Quantity == nil || v.Balance == nil || v.EntryPrice == nil || v.StopLoss == nil {
		return 0, false
	}
	if *v.Balance <= 0 || *v.EntryPrice == *v.StopLoss {
		return 0, false
	}
	riskAmount := math.Abs(*v.EntryPrice-*v.StopLoss) * a.ContractSize * *v.Quantity
	pct := riskAmount / *v.Balance * 100
	if !utils.IsFinite(pct) {
		return 0, false
	}
	return pct, true
}

// ApplyDrivingField recomputes the counterpart of the field the user just edited and
// writes it back to the draft as a 2-decimal form value. Drafts that are not complete
// enough for the solvers are returned unchanged.
func ApplyDrivingField(draft dto.TradeDraft, a *asset.Asset, driving dto.DrivingField) dto.TradeDraft {
	if a == nil || !CalculatorActive(draft) {
		return draft
	}
	switch driving {
	case dto.DrivingRiskPercentage:
		if lots, ok := SolveLotsFromRisk(draft, a); ok {
			draft.Quantity = formatInput(lots)
		}
	case dto.DrivingQuantity:
		if pct, ok := SolveRiskFromLots(draft, a); ok {
			draft.RiskPercentage = formatInput(pct)
		}
	}
	return draft
}

func formatInput(v float64) *dto.Input {
	in := dto.Input(strconv.FormatFloat(utils.RoundTo(v, 2), 'f', 2, 64))
	return &in
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return finite(a / b)
}

func finite(v float64) float64 {
	if !utils.IsFinite(v) {
		return 0
	}
	return v
}
