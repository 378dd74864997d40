package calculator

import (
	"testing"
	"time"

	"trading-journal/internal/model"

	"github.com/stretchr/testify/assert"
)

func ids(trades []model.Trade) []uint {
	out := make([]uint, 0, len(trades))
	for _, t := range trades {
		out = append(out, t.ID)
	}
	return out
}

func TestApply(t *testing.T) {
	loc := time.UTC
	mar1 := time.Date(2024, 3, 1, 10, 0, 0, 0, loc)
	mar5Late := time.Date(2024, 3, 5, 23, 59, 59, 500_000_000, loc)
	mar6 := time.Date(2024, 3, 6, 0, 0, 0, 0, loc)
	entryMar5 := time.Date(2024, 3, 5, 8, 0, 0, 0, loc)
	deletedAt := mar6

	trades := []model.Trade{
		{ID: 1, AccountID: 1, Symbol: "XAUUSD", Tags: []string{"london", "a+"}, CreatedAt: mar1},
		{ID: 2, AccountID: 2, Symbol: "EURUSD", Tags: []string{"london"}, CreatedAt: mar5Late},
		{ID: 3, AccountID: 1, Symbol: "eurusd", CreatedAt: mar6},
		{ID: 4, AccountID: 1, Symbol: "BTCUSD", CreatedAt: mar6, EntryDate: &entryMar5},
		{ID: 5, AccountID: 1, Symbol: "XAUUSD", CreatedAt: mar1, IsDeleted: true, DeletedAt: &deletedAt},
	}

	start := time.Date(2024, 3, 1, 15, 0, 0, 0, loc)
	end := time.Date(2024, 3, 5, 0, 0, 0, 0, loc)

	tests := []struct {
		name   string
		filter Filter
		want   []uint
	}{
		{name: "no filter drops deleted", filter: Filter{Location: loc}, want: []uint{1, 2, 3, 4}},
		{name: "trash view keeps only deleted", filter: Filter{Trash: true, Location: loc}, want: []uint{5}},
		{name: "inclusive range normalized to whole days", filter: Filter{Start: &start, End: &end, Location: loc}, want: []uint{1, 2, 4}},
		{name: "account", filter: Filter{AccountID: 2, Location: loc}, want: []uint{2}},
		{name: "all tags must match", filter: Filter{Tags: []string{"london", "a+"}, Location: loc}, want: []uint{1}},
		{name: "single tag", filter: Filter{Tags: []string{"london"}, Location: loc}, want: []uint{1, 2}},
		{name: "any asset matches ignoring case", filter: Filter{Assets: []string{"EURUSD", "BTCUSD"}, Location: loc}, want: []uint{2, 3, 4}},
		{name: "combined with AND", filter: Filter{AccountID: 1, Assets: []string{"eurusd"}, End: &end, Location: loc}, want: []uint{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Apply(trades, tt.filter)))
		})
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	trades := []model.Trade{{ID: 2}, {ID: 1, IsDeleted: true}, {ID: 3}}
	out := Apply(trades, Filter{})
	assert.Equal(t, []uint{2, 3}, ids(out))
	assert.Equal(t, []uint{2, 1, 3}, ids(trades))
}
