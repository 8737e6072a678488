package priceseries

import "go-pricechart/pkg/models"

// CalculatePriceChange is the percent move from the first to the last point.
// Fewer than two points give 0.
func CalculatePriceChange(points []models.PricePoint) float64 {
	if len(points) < 2 {
		return 0
	}
	first := points[0].Price
	last := points[len(points)-1].Price
	return (last - first) / first * 100
}

type Summary struct {
	First         float64 `json:"first"`
	Last          float64 `json:"last"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	ChangePercent float64 `json:"changePercent"`
}

// Summarize reports the chart header figures; an empty series yields a zero Summary.
func Summarize(points []models.PricePoint) Summary {
	if len(points) == 0 {
		return Summary{}
	}
	sum := Summary{
		First:         points[0].Price,
		Last:          points[len(points)-1].Price,
		High:          points[0].Price,
		Low:           points[0].Price,
		ChangePercent: CalculatePriceChange(points),
	}
	for _, p := range points[1:] {
		sum.High = max(sum.High, p.Price)
		sum.Low = min(sum.Low, p.Price)
	}
	return sum
}
