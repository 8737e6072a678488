package priceseries

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const fullLayout = "2006-01-02 15:04:05"

// FormatTimestamp renders an epoch-millis timestamp as a chart label in the
// local time zone.
func FormatTimestamp(timestamp int64, period TimePeriod) string {
	return FormatTimestampIn(timestamp, period, time.Local)
}

// FormatTimestampIn is FormatTimestamp for an explicit location.
func FormatTimestampIn(timestamp int64, period TimePeriod, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	t := time.UnixMilli(timestamp).In(loc)

	switch period {
	case Period24h:
		return t.Format("15:04")
	case Period7d:
		return t.Format("Mon 15:04")
	case Period30d, Period90d:
		return t.Format("Jan 2")
	case Period1y:
		return t.Format("Jan 06")
	default:
		return t.Format(fullLayout)
	}
}

var printer = message.NewPrinter(language.English)

// FormatPrice groups thousands and keeps four decimals below one.
func FormatPrice(price float64) string {
	if price < 1 {
		return printer.Sprintf("%.4f", price)
	}
	return printer.Sprintf("%.2f", price)
}

// FormatChange renders a percentage with an explicit sign, e.g. "+10.00%".
func FormatChange(pct float64) string {
	sign := ""
	if pct >= 0 {
		sign = "+"
	}
	return sign + printer.Sprintf("%.2f", pct) + "%"
}
