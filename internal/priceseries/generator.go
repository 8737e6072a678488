package priceseries

import (
	"math"
	"time"

	"go-pricechart/pkg/models"
)

// PriceFloor is the lowest price a walk step can produce.
const PriceFloor = 0.01

// Step advances a random walk by one draw.
func Step(prev, volatility float64, src Source) float64 {
	change := (src.Float64() - 0.5) * volatility * prev
	return math.Max(PriceFloor, prev+change)
}

// Generate walks backward from now so the final point (i == 0) is stamped at
// now; the returned slice is oldest first.
func Generate(p Params, period TimePeriod, now time.Time, src Source) []models.PricePoint {
	count, interval := period.Layout()
	nowMs := now.UnixMilli()
	stepMs := interval.Milliseconds()

	points := make([]models.PricePoint, 0, count)
	price := p.BasePrice
	for i := count - 1; i >= 0; i-- {
		price = Step(price, p.Volatility, src)
		points = append(points, models.PricePoint{
			Timestamp: nowMs - int64(i)*stepMs,
			Price:     price,
		})
	}
	return points
}
