package sim

import (
	"fmt"
	"io"
	"time"

	"github.com/rustyeddy/papertrader/market"
	"github.com/rustyeddy/papertrader/portfolio"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Report summarizes a session's result marked at a closing price.
type Report struct {
	InitialCapital market.Cash
	FinalValuation market.Cash
	Profit         market.Cash
	// ROIPercent is Profit / InitialCapital * 100, unrounded.
	ROIPercent decimal.Decimal

	Cash   market.Cash
	Shares market.Units
	Price  market.Price
	Day    int
	Date   time.Time
	Fills  int
	// Complete is true when the report was taken on the last bar.
	Complete bool
}

// NewReport computes valuation, profit and return on investment. It has
// no side effects. A zero initial capital reports a zero ROI.
func NewReport(l *portfolio.Ledger, last market.Bar) Report {
	final := l.Valuation(last.Close)
	profit := final.Sub(l.InitialCapital())

	roi := decimal.Zero
	if !l.InitialCapital().IsZero() {
		roi = profit.Div(l.InitialCapital()).Mul(hundred)
	}

	return Report{
		InitialCapital: l.InitialCapital(),
		FinalValuation: final,
		Profit:         profit,
		ROIPercent:     roi,
		Cash:           l.Cash(),
		Shares:         l.Shares(),
		Price:          last.Close,
		Date:           last.Date,
	}
}

// PrintReport writes a plain text summary of r.
func PrintReport(w io.Writer, r Report, instrument, currency string) {
	fmt.Fprintln(w, "==================================================")
	if r.Complete {
		fmt.Fprintln(w, " Final Result")
	} else {
		fmt.Fprintln(w, " Interim Result")
	}
	fmt.Fprintln(w, "==================================================")

	if instrument != "" {
		fmt.Fprintf(w, "Instrument:      %s\n", instrument)
	}
	fmt.Fprintf(w, "Day:             %d (%s)\n", r.Day+1, r.Date.Format(market.DateLayout))
	fmt.Fprintf(w, "Close:           %s\n", market.FormatCash(r.Price, currency))
	fmt.Fprintf(w, "Decisions:       %d\n", r.Fills)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Account")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Cash:            %s\n", market.FormatCash(r.Cash, currency))
	fmt.Fprintf(w, "Shares:          %d\n", r.Shares)
	fmt.Fprintf(w, "Initial Capital: %s\n", market.FormatCash(r.InitialCapital, currency))
	fmt.Fprintf(w, "Final Value:     %s\n", market.FormatCash(r.FinalValuation, currency))
	fmt.Fprintf(w, "Profit:          %s\n", market.FormatCash(r.Profit, currency))
	fmt.Fprintf(w, "ROI:             %s%%\n", r.ROIPercent.StringFixed(2))
	fmt.Fprintln(w)
}
