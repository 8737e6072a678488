package rpc

import "go-pricechart/pkg/models"

type Pair struct {
	Base  string `json:"base"`
	Quote string `json:"quote"`
}

type SeriesRequest struct {
	Base   string `json:"base"`
	Quote  string `json:"quote"`
	Period string `json:"period,omitempty"`
}

type SeriesResponse struct {
	Series        *models.PairSeries `json:"series"`
	Labels        []string           `json:"labels"`
	ChangePercent float64            `json:"changePercent"`
	High          float64            `json:"high"`
	Low           float64            `json:"low"`
}

type QuoteRequest struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

type QuoteResponse struct {
	Quote models.Quote `json:"quote"`
}

type ListTokensRequest struct{}

type ListTokensResponse struct {
	Tokens []models.Token `json:"tokens"`
}

type SubscribeRequest struct {
	Pairs []Pair `json:"pairs"`
}

type TickResponse struct {
	Pair      string  `json:"pair"`
	Timestamp int64   `json:"timestamp"`
	Price     float64 `json:"price"`
}
