package market

import (
	"fmt"
	"time"
)

// BarSeries is an ordered, immutable sequence of daily bars for a single
// instrument. Dates are strictly increasing; gaps (weekends, holidays) are
// allowed.
type BarSeries struct {
	instrument string
	bars       []Bar
}

// NewBarSeries validates bars and takes a private copy of them.
func NewBarSeries(instrument string, bars []Bar) (*BarSeries, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("%s: %w", instrument, ErrEmptySeries)
	}

	for i, b := range bars {
		if !b.Close.IsPositive() {
			return nil, fmt.Errorf("bar %d (%s): close must be positive, got %s", i, b.Day(), b.Close)
		}
		if b.Volume < 0 {
			return nil, fmt.Errorf("bar %d (%s): negative volume %d", i, b.Day(), b.Volume)
		}
		if i > 0 && !b.Date.After(bars[i-1].Date) {
			return nil, fmt.Errorf("bar %d (%s): dates must be strictly increasing after %s",
				i, b.Day(), bars[i-1].Day())
		}
	}

	cp := make([]Bar, len(bars))
	copy(cp, bars)
	return &BarSeries{instrument: instrument, bars: cp}, nil
}

func (s *BarSeries) Instrument() string { return s.instrument }

// Len returns the number of bars. It is always at least one.
func (s *BarSeries) Len() int { return len(s.bars) }

// Get returns the bar at idx. It panics when idx is out of range, like a
// slice index would.
func (s *BarSeries) Get(idx int) Bar { return s.bars[idx] }

// Last returns the final bar of the series.
func (s *BarSeries) Last() Bar { return s.bars[len(s.bars)-1] }

func (s *BarSeries) Start() time.Time { return s.bars[0].Date }
func (s *BarSeries) End() time.Time   { return s.Last().Date }

// Window returns up to width bars ending at (and including) end. The
// returned slice is a copy and may be freely modified by the caller.
func (s *BarSeries) Window(end, width int) []Bar {
	if width <= 0 || end < 0 {
		return nil
	}
	if end >= len(s.bars) {
		end = len(s.bars) - 1
	}
	start := end + 1 - width
	if start < 0 {
		start = 0
	}
	out := make([]Bar, end+1-start)
	copy(out, s.bars[start:end+1])
	return out
}
