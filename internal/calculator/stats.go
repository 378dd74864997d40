package calculator

import (
	"math"
	"sort"
	"time"

	"trading-journal/internal/dto"
	"trading-journal/internal/model"
	"trading-journal/pkg/utils"
)

// Aggregate reduces trades to a StatsSnapshot. Deleted trades are ignored entirely, open
// trades only count toward TotalTrades/OpenTrades, and every pnl figure is over closed trades.
func Aggregate(trades []model.Trade) dto.StatsSnapshot {
	var (
		s         dto.StatsSnapshot
		winPnLs   []float64
		lossPnLs  []float64
		first     = true
		closedSet []model.Trade
	)

	for _, t := range trades {
		if t.IsDeleted {
			continue
		}
		s.TotalTrades++
		if !t.IsClosed() {
			s.OpenTrades++
			continue
		}
		closedSet = append(closedSet, t)
		s.ClosedTrades++
		s.TotalFees += t.Fees

		switch {
		case t.PnL > 0:
			winPnLs = append(winPnLs, t.PnL)
			s.Distribution.Wins++
		case t.PnL < 0:
			lossPnLs = append(lossPnLs, t.PnL)
			s.Distribution.Losses++
		default:
			lossPnLs = append(lossPnLs, t.PnL)
			s.Distribution.BreakEven++
		}

		if first || t.PnL > s.BestTrade {
			s.BestTrade = t.PnL
		}
		if first || t.PnL < s.WorstTrade {
			s.WorstTrade = t.PnL
		}
		first = false
	}

	if s.ClosedTrades == 0 {
		return s
	}

	s.Wins = len(winPnLs)
	s.Losses = len(lossPnLs)
	s.GrossProfit = sumCanonical(winPnLs)
	s.GrossLoss = math.Abs(sumCanonical(lossPnLs))
	s.NetPnL = s.GrossProfit - s.GrossLoss
	s.WinRate = float64(s.Wins) / float64(s.ClosedTrades) * 100
	if s.Wins > 0 {
		s.AvgWin = s.GrossProfit / float64(s.Wins)
	}
	if s.Losses > 0 {
		s.AvgLoss = s.GrossLoss / float64(s.Losses)
	}
	s.ProfitFactor = ProfitFactor(s.GrossProfit, s.GrossLoss)
	s.Expectancy = Expectancy(s.WinRate, s.AvgWin, s.AvgLoss)
	s.MaxDrawdown = MaxDrawdown(EquityCurve(closedSet))
	return s
}

// AggregateFiltered aggregates the trades matching f.
func AggregateFiltered(trades []model.Trade, f Filter) dto.StatsSnapshot {
	return Aggregate(Apply(trades, f))
}

// ProfitFactor is gross profit over gross loss magnitude, with ProfitFactorSentinel standing
// in for an undefined ratio when nothing was lost.
func ProfitFactor(grossProfit, grossLoss float64) float64 {
	grossLoss = math.Abs(grossLoss)
	if grossLoss == 0 {
		if grossProfit > 0 {
			return dto.ProfitFactorSentinel
		}
		return 0
	}
	return grossProfit / grossLoss
}

// Expectancy is the expected pnl per trade; avgLoss is a magnitude.
func Expectancy(winRate, avgWin, avgLoss float64) float64 {
	p := winRate / 100
	return p*avgWin - (1-p)*avgLoss
}

// EquityCurve accumulates closed-trade pnl in trade-time order. Trades sharing a timestamp
// keep their input order.
func EquityCurve(trades []model.Trade) []dto.EquityPoint {
	closed := closedTrades(trades)
	sort.SliceStable(closed, func(i, j int) bool {
		return closed[i].TradeTime().Before(closed[j].TradeTime())
	})

	points := make([]dto.EquityPoint, 0, len(closed))
	var cumulative float64
	for _, t := range closed {
		cumulative += t.PnL
		points = append(points, dto.EquityPoint{
			TradeID:    t.ID,
			Time:       t.TradeTime(),
			PnL:        t.PnL,
			Cumulative: cumulative,
		})
	}
	return points
}

// MaxDrawdown is the largest peak-to-trough fall of the cumulative pnl, starting from zero.
func MaxDrawdown(curve []dto.EquityPoint) float64 {
	var peak, maxDD float64
	for _, p := range curve {
		if p.Cumulative > peak {
			peak = p.Cumulative
		}
		if dd := peak - p.Cumulative; dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

// DailyPnL groups closed trades by local calendar day. Days without trades are omitted.
func DailyPnL(trades []model.Trade, loc *time.Location) []dto.DailyBucket {
	type acc struct {
		pnls []float64
		wins int
	}
	byDay := make(map[string]*acc)
	for _, t := range closedTrades(trades) {
		key := utils.DateKey(t.TradeTime(), loc)
		a, ok := byDay[key]
		if !ok {
			a = &acc{}
			byDay[key] = a
		}
		a.pnls = append(a.pnls, t.PnL)
		if t.PnL > 0 {
			a.wins++
		}
	}

	out := make([]dto.DailyBucket, 0, len(byDay))
	for key, a := range byDay {
		out = append(out, dto.DailyBucket{
			Date:  key,
			PnL:   sumCanonical(a.pnls),
			Count: len(a.pnls),
			Wins:  a.wins,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out
}

// HourlyPnL groups closed trades by local hour of day. All 24 hours are always present.
func HourlyPnL(trades []model.Trade, loc *time.Location) [24]dto.HourlyBucket {
	if loc == nil {
		loc = time.Local
	}
	var pnls [24][]float64
	for _, t := range closedTrades(trades) {
		h := t.TradeTime().In(loc).Hour()
		pnls[h] = append(pnls[h], t.PnL)
	}

	var out [24]dto.HourlyBucket
	for h := range out {
		out[h] = dto.HourlyBucket{
			Hour:  h,
			PnL:   sumCanonical(pnls[h]),
			Count: len(pnls[h]),
		}
	}
	return out
}

func closedTrades(trades []model.Trade) []model.Trade {
	out := make([]model.Trade, 0, len(trades))
	for _, t := range trades {
		if !t.IsDeleted && t.IsClosed() {
			out = append(out, t)
		}
	}
	return out
}

// sumCanonical adds values in sorted order so the result does not depend on input order.
func sumCanonical(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	var sum float64
	for _, v := range sorted {
		sum += v
	}
	return sum
}
