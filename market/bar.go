package market

import "time"

// Bar is one trading day of OHLCV data for an instrument.
type Bar struct {
	Date   time.Time
	Open   Price
	High   Price
	Low    Price
	Close  Price
	Volume int64
}

// Day returns the bar date formatted as YYYY-MM-DD.
func (b Bar) Day() string {
	return b.Date.Format(DateLayout)
}

// DateLayout is the calendar date format used by bar files and reports.
const DateLayout = "2006-01-02"
