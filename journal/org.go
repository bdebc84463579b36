package journal

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/papertrader/market"
)

// FormatFillOrg renders a FillRecord as an Org-mode heading with the
// structured facts in a PROPERTIES drawer.
func FormatFillOrg(f FillRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** Day %d: %s (%s)\n", f.Day+1, f.Action, shortID(f.FillID))
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":FILL_ID: %s\n", f.FillID)
	fmt.Fprintf(&b, ":SESSION_ID: %s\n", f.SessionID)
	fmt.Fprintf(&b, ":INSTRUMENT: %s\n", f.Instrument)
	fmt.Fprintf(&b, ":DATE: %s\n", f.Date.Format(market.DateLayout))
	fmt.Fprintf(&b, ":ACTION: %s\n", f.Action)
	fmt.Fprintf(&b, ":QUANTITY: %d\n", f.Quantity)
	fmt.Fprintf(&b, ":PRICE: %s\n", f.Price.StringFixed(2))
	fmt.Fprintf(&b, ":CASH: %s\n", f.Cash.StringFixed(2))
	fmt.Fprintf(&b, ":SHARES: %d\n", f.Shares)
	b.WriteString(":END:\n")
	if f.Description != "" {
		b.WriteString("- ")
		b.WriteString(f.Description)
		b.WriteString("\n")
	}
	return b.String()
}

// FormatFillsOrg renders multiple fills separated by blank lines.
func FormatFillsOrg(fills []FillRecord) string {
	var b strings.Builder
	for i, f := range fills {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(FormatFillOrg(f))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
