package priceseries

import (
	"time"

	"go-pricechart/internal/common"
)

// TimePeriod names a chart window. Values outside the enumeration are
// accepted everywhere and behave like Period24h for generation.
type TimePeriod string

const (
	Period24h TimePeriod = "24h"
	Period7d  TimePeriod = "7d"
	Period30d TimePeriod = "30d"
	Period90d TimePeriod = "90d"
	Period1y  TimePeriod = "1y"

	DefaultPeriod = Period24h
)

// Periods lists the recognised windows, shortest first.
func Periods() []TimePeriod {
	return []TimePeriod{Period24h, Period7d, Period30d, Period90d, Period1y}
}

func (p TimePeriod) Valid() bool {
	switch p {
	case Period24h, Period7d, Period30d, Period90d, Period1y:
		return true
	}
	return false
}

// MetricLabel bounds the label values used for metrics: unrecognised periods
// share a single "other" label.
func (p TimePeriod) MetricLabel() string {
	if p.Valid() {
		return string(p)
	}
	return "other"
}

// Layout returns the number of points and their spacing for the period.
func (p TimePeriod) Layout() (int, time.Duration) {
	switch p {
	case Period24h:
		return 24, common.HourInterval
	case Period7d:
		return 7 * 24, common.HourInterval
	case Period30d:
		return 30, common.DayInterval
	case Period90d:
		return 90, common.DayInterval
	case Period1y:
		return 365, common.DayInterval
	default:
		return 24, common.HourInterval
	}
}
