package calculator

import (
	"sort"
	"strings"
	"time"

	"trading-journal/internal/dto"
	"trading-journal/internal/model"
)

// BreakdownBy groups closed trades on dim and sorts groups by pnl, highest first.
// Groups with equal pnl keep first-seen order. topN <= 0 returns every group.
func BreakdownBy(trades []model.Trade, dim dto.Dimension, topN int, loc *time.Location) []dto.GroupedResult {
	if loc == nil {
		loc = time.Local
	}
	keyer := dimensionKeys(dim, loc)

	var order []string
	groups := make(map[string]*dto.GroupedResult)
	pnls := make(map[string][]float64)

	for _, t := range closedTrades(trades) {
		for _, key := range keyer(t) {
			g, ok := groups[key]
			if !ok {
				g = &dto.GroupedResult{Key: key}
				groups[key] = g
				order = append(order, key)
			}
			g.Count++
			if t.PnL > 0 {
				g.Wins++
			}
			pnls[key] = append(pnls[key], t.PnL)
		}
	}

	out := make([]dto.GroupedResult, 0, len(order))
	for _, key := range order {
		g := groups[key]
		g.PnL = sumCanonical(pnls[key])
		g.WinRate = float64(g.Wins) / float64(g.Count) * 100
		out = append(out, *g)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PnL > out[j].PnL
	})

	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

func dimensionKeys(dim dto.Dimension, loc *time.Location) func(model.Trade) []string {
	switch dim {
	case dto.DimensionSymbol:
		return func(t model.Trade) []string {
			return []string{strings.ToUpper(t.Symbol)}
		}
	case dto.DimensionType:
		return func(t model.Trade) []string {
			return []string{string(t.Type)}
		}
	case dto.DimensionWeekday:
		return func(t model.Trade) []string {
			return []string{t.TradeTime().In(loc).Weekday().String()}
		}
	case dto.DimensionTag:
		return func(t model.Trade) []string {
			if len(t.Tags) == 0 {
				return []string{dto.DefaultTagKey}
			}
			seen := make(map[string]struct{}, len(t.Tags))
			keys := make([]string, 0, len(t.Tags))
			for _, tag := range t.Tags {
				if _, dup := seen[tag]; dup || tag == "" {
					continue
				}
				seen[tag] = struct{}{}
				keys = append(keys, tag)
			}
			if len(keys) == 0 {
				return []string{dto.DefaultTagKey}
			}
			return keys
		}
	default:
		return func(t model.Trade) []string {
			setup := strings.TrimSpace(t.Setup)
			if setup == "" {
				return []string{dto.DefaultSetupKey}
			}
			return []string{setup}
		}
	}
}
