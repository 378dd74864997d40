package asset

import (
	"sort"
	"strings"
)

// Asset describes a tradable instrument's price increments and lot notional.
type Asset struct {
	Pair         string  `json:"pair"`
	Pip          float64 `json:"pip"`
	Tick         float64 `json:"tick"`
	ContractSize float64 `json:"contract_size"`
}

// Catalog is a read-only lookup table keyed by upper-cased pair symbol.
type Catalog struct {
	assets map[string]Asset
}

func NewCatalog(assets []Asset) *Catalog {
	m := make(map[string]Asset, len(assets))
	for _, a := range assets {
		m[strings.ToUpper(a.Pair)] = a
	}
	return &Catalog{assets: m}
}

// NewDefaultCatalog loads the built-in instrument table.
func NewDefaultCatalog() *Catalog {
	return NewCatalog(defaultAssets)
}

// Find returns the asset whose pair equals pair ignoring case. No fuzzy matching.
func (c *Catalog) Find(pair string) (Asset, bool) {
	if pair == "" {
		return Asset{}, false
	}
	a, ok := c.assets[strings.ToUpper(pair)]
	return a, ok
}

// List returns every asset sorted by pair.
func (c *Catalog) List() []Asset {
	out := make([]Asset, 0, len(c.assets))
	for _, a := range c.assets {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Pair < out[j].Pair
	})
	return out
}

var defaultAssets = []Asset{
	// Forex majors and minors
	{Pair: "EURUSD", Pip: 0.0001, Tick: 0.00001, ContractSize: 100000},
	{Pair: "GBPUSD", Pip: 0.0001, Tick: 0.00001, ContractSize: 100000},
	{Pair: "AUDUSD", Pip: 0.0001, Tick: 0.00001, ContractSize: 100000},
	{Pair: "NZDUSD", Pip: 0.0001, Tick: 0.00001, ContractSize: 100000},
	{Pair: "USDCAD", Pip: 0.0001, Tick: 0.00001, ContractSize: 100000},
	{Pair: "USDCHF", Pip: 0.0001, Tick: 0.00001, ContractSize: 100000},
	{Pair: "EURGBP", Pip: 0.0001, Tick: 0.00001, ContractSize: 100000},
	{Pair: "EURAUD", Pip: 0.0001, Tick: 0.00001, ContractSize: 100000},
	{Pair: "GBPAUD", Pip: 0.0001, Tick: 0.00001, ContractSize: 100000},
	// JPY crosses
	{Pair: "USDJPY", Pip: 0.01, Tick: 0.001, ContractSize: 100000},
	{Pair: "EURJPY", Pip: 0.01, Tick: 0.001, ContractSize: 100000},
	{Pair: "GBPJPY", Pip: 0.01, Tick: 0.001, ContractSize: 100000},
	{Pair: "AUDJPY", Pip: 0.01, Tick: 0.001, ContractSize: 100000},
	// Metals
	{Pair: "XAUUSD", Pip: 0.1, Tick: 0.01, ContractSize: 100},
	{Pair: "XAGUSD", Pip: 0.01, Tick: 0.001, ContractSize: 5000},
	// Indices
	{Pair: "US30", Pip: 1, Tick: 0.1, ContractSize: 1},
	{Pair: "NAS100", Pip: 1, Tick: 0.1, ContractSize: 1},
	{Pair: "SPX500", Pip: 0.1, Tick: 0.01, ContractSize: 1},
	{Pair: "GER40", Pip: 1, Tick: 0.1, ContractSize: 1},
	// Energies
	{Pair: "USOIL", Pip: 0.01, Tick: 0.001, ContractSize: 1000},
	// Crypto
	{Pair: "BTCUSD", Pip: 1, Tick: 0.01, ContractSize: 1},
	{Pair: "ETHUSD", Pip: 0.1, Tick: 0.01, ContractSize: 1},
}
