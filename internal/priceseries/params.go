package priceseries

import (
	"sync"

	"go-pricechart/internal/config"
)

// Params drive the random walk for one pair.
type Params struct {
	BasePrice  float64
	Volatility float64
}

// FallbackParams apply to any pair without an entry, including the reverse of
// a listed pair. No inverse price is derived.
var FallbackParams = Params{BasePrice: 100, Volatility: 0.015}

type pairID struct {
	base  string
	quote string
}

// ParamTable maps base/quote pairs to generator parameters.
type ParamTable struct {
	mu      sync.RWMutex
	entries map[pairID]Params
}

// NewParamTable returns the built-in table with overrides applied on top.
func NewParamTable(overrides ...config.PairConfig) *ParamTable {
	t := &ParamTable{
		entries: map[pairID]Params{
			{"ethereum", "usd-coin"}: {BasePrice: 3500, Volatility: 0.01},
			{"bitcoin", "usd-coin"}:  {BasePrice: 65000, Volatility: 0.008},
			{"uiswap", "usd-coin"}:   {BasePrice: 2.5, Volatility: 0.02},
		},
	}
	for _, o := range overrides {
		t.Set(o.Base, o.Quote, Params{BasePrice: o.BasePrice, Volatility: o.Volatility})
	}
	return t
}

func (t *ParamTable) Set(baseID, quoteID string, p Params) {
	t.mu.Lock()
	t.entries[pairID{baseID, quoteID}] = p
	t.mu.Unlock()
}

// Lookup never fails; unknown pairs get FallbackParams.
func (t *ParamTable) Lookup(baseID, quoteID string) Params {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if p, ok := t.entries[pairID{baseID, quoteID}]; ok {
		return p
	}
	return FallbackParams
}
