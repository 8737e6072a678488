package tokens

import (
	"fmt"

	"go-pricechart/pkg/models"
)

// Source yields uniform draws in [0, 1).
type Source interface {
	Float64() float64
}

// Quoter prices swaps from catalog spot prices with a ±10% random jitter.
// It performs no AMM or slippage math.
type Quoter struct {
	catalog *Catalog
	src     Source
}

func NewQuoter(catalog *Catalog, src Source) *Quoter {
	return &Quoter{catalog: catalog, src: src}
}

func (q *Quoter) Quote(fromID, toID string, amount float64) (models.Quote, error) {
	if amount <= 0 {
		return models.Quote{}, fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	from, err := q.catalog.Get(fromID)
	if err != nil {
		return models.Quote{}, err
	}
	to, err := q.catalog.Get(toID)
	if err != nil {
		return models.Quote{}, err
	}

	rate := from.Price / to.Price * (0.9 + q.src.Float64()*0.2)
	toAmount := amount * rate
	return models.Quote{
		FromID:     from.ID,
		ToID:       to.ID,
		Rate:       rate,
		FromAmount: amount,
		ToAmount:   toAmount,
		FromUSD:    amount * from.Price,
		ToUSD:      toAmount * to.Price,
	}, nil
}
