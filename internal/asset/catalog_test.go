package asset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalog_Find(t *testing.T) {
	c := NewDefaultCatalog()

	tests := []struct {
		name  string
		pair  string
		found bool
	}{
		{name: "exact", pair: "XAUUSD", found: true},
		{name: "lower case", pair: "xauusd", found: true},
		{name: "mixed case", pair: "XauUsd", found: true},
		{name: "prefix is not fuzzy matched", pair: "XAU", found: false},
		{name: "surrounding space is not trimmed", pair: " XAUUSD", found: false},
		{name: "empty", pair: "", found: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Find(tt.pair)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, "XAUUSD", got.Pair)
				assert.Equal(t, 0.1, got.Pip)
				assert.Equal(t, 0.01, got.Tick)
				assert.Equal(t, 100.0, got.ContractSize)
			}
		})
	}
}

func TestCatalog_ListSorted(t *testing.T) {
	c := NewCatalog([]Asset{{Pair: "USDJPY"}, {Pair: "AUDUSD"}, {Pair: "EURUSD"}})
	list := c.List()
	assert.Equal(t, []string{"AUDUSD", "EURUSD", "USDJPY"}, []string{list[0].Pair, list[1].Pair, list[2].Pair})
}
