package models

// PricePoint is a single sample of a pair's price. Timestamp is epoch millis.
type PricePoint struct {
	Timestamp int64   `json:"timestamp"`
	Price     float64 `json:"price"`
}

// PairSeries is a chronological (oldest first) price history for a base/quote pair.
type PairSeries struct {
	PairKey string       `json:"pairId"`
	BaseID  string       `json:"baseToken"`
	QuoteID string       `json:"quoteToken"`
	Points  []PricePoint `json:"data"`
}

type Token struct {
	ID      string  `json:"id" yaml:"id"`
	Name    string  `json:"name" yaml:"name"`
	Symbol  string  `json:"symbol" yaml:"symbol"`
	Balance float64 `json:"balance" yaml:"balance"`
	Price   float64 `json:"price" yaml:"price"`
}

type Quote struct {
	FromID     string  `json:"from"`
	ToID       string  `json:"to"`
	Rate       float64 `json:"rate"`
	FromAmount float64 `json:"fromAmount"`
	ToAmount   float64 `json:"toAmount"`
	FromUSD    float64 `json:"fromUsd"`
	ToUSD      float64 `json:"toUsd"`
}

// Tick is a live price update for a pair.
type Tick struct {
	PairKey string `json:"pair"`
	PricePoint
}
