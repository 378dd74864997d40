package calculator

import (
	"time"

	"trading-journal/internal/model"
	"trading-journal/pkg/utils"
)

// Filter selects trades for the journal, dashboard and calendar. Zero-valued fields match
// everything on their dimension; set fields are AND-combined.
type Filter struct {
	Start     *time.Time
	End       *time.Time
	AccountID uint
	Tags      []string
	Assets    []string
	// Trash keeps only soft-deleted trades; otherwise they are dropped.
	Trash    bool
	Location *time.Location
}

func (f Filter) location() *time.Location {
	if f.Location == nil {
		return time.Local
	}
	return f.Location
}

// Predicate compiles the filter into a single match function. Range bounds are
// normalized once: start to local midnight, end to 23:59:59.999 local.
func (f Filter) Predicate() func(model.Trade) bool {
	loc := f.location()
	var start, end *time.Time
	if f.Start != nil {
		s := utils.StartOfDay(*f.Start, loc)
		start = &s
	}
	if f.End != nil {
		e := utils.EndOfDay(*f.End, loc)
		end = &e
	}

	return func(t model.Trade) bool {
		if t.IsDeleted != f.Trash {
			return false
		}
		if f.AccountID != 0 && t.AccountID != f.AccountID {
			return false
		}
		at := t.TradeTime()
		if start != nil && at.Before(*start) {
			return false
		}
		if end != nil && at.After(*end) {
			return false
		}
		if !hasAllTags(t.Tags, f.Tags) {
			return false
		}
		if len(f.Assets) > 0 && !utils.ContainsFold(f.Assets, t.Symbol) {
			return false
		}
		return true
	}
}

// Apply returns the matching trades in their original order. The input is not modified.
func Apply(trades []model.Trade, f Filter) []model.Trade {
	match := f.Predicate()
	out := make([]model.Trade, 0, len(trades))
	for _, t := range trades {
		if match(t) {
			out = append(out, t)
		}
	}
	return out
}

func hasAllTags(have, want []string) bool {
	if len(want) == 0 {
		return true
	}
	set := make(map[string]struct{}, len(have))
	for _, tag := range have {
		set[tag] = struct{}{}
	}
	for _, tag := range want {
		if _, ok := set[tag]; !ok {
			return false
		}
	}
	return true
}
