package sim

import (
	"fmt"
	"time"

	"github.com/rustyeddy/papertrader/market"
)

// Fill is the immutable record of an executed intent. Holds produce a
// Fill with zero quantity so the activity log sees every decision.
type Fill struct {
	ID       string
	Day      int
	Date     time.Time
	Intent   Intent
	Quantity market.Units
	Price    market.Price

	// Ledger state right after the fill.
	Cash   market.Cash
	Shares market.Units
}

// Describe renders the fill for an activity listing, e.g.
// "Day 3: buy full 100 shares at $99.00". Days are numbered from 1.
func (f Fill) Describe(currency string) string {
	if f.Intent == Hold {
		return fmt.Sprintf("Day %d: hold", f.Day+1)
	}
	return fmt.Sprintf("Day %d: %s %d shares at %s",
		f.Day+1, f.Intent.Label(), f.Quantity, market.FormatCash(f.Price, currency))
}
