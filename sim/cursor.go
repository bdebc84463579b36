package sim

import (
	"github.com/rustyeddy/papertrader/market"
)

// Cursor walks a BarSeries one day at a time. The day index only moves
// forward and stops at the last bar.
type Cursor struct {
	series *market.BarSeries
	day    int
}

// NewCursor positions a cursor at start, clamped into the series. A
// start offset lets a session open with some history already visible.
func NewCursor(series *market.BarSeries, start int) (*Cursor, error) {
	if series == nil || series.Len() == 0 {
		return nil, market.ErrEmptySeries
	}
	if start < 0 {
		start = 0
	}
	if last := series.Len() - 1; start > last {
		start = last
	}
	return &Cursor{series: series, day: start}, nil
}

func (c *Cursor) Day() int   { return c.day }
func (c *Cursor) Total() int { return c.series.Len() }

// AtEnd reports whether the cursor sits on the last bar.
func (c *Cursor) AtEnd() bool { return c.day == c.series.Len()-1 }

// Current returns the bar under the cursor.
func (c *Cursor) Current() market.Bar { return c.series.Get(c.day) }

// Advance moves to the next day. At the last bar it returns
// ErrAlreadyAtEnd and leaves the cursor where it is, however many times
// it is called.
func (c *Cursor) Advance() error {
	if c.AtEnd() {
		return ErrAlreadyAtEnd
	}
	c.day++
	return nil
}

// Window returns up to width bars ending at the current day.
func (c *Cursor) Window(width int) []market.Bar {
	return c.series.Window(c.day, width)
}
