package market

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Price is a per-share quote. Cash is an account amount. Both are exact
// decimals so that integer share sizing never drifts.
type Price = decimal.Decimal
type Cash = decimal.Decimal

// Units is a whole number of shares. Fractional shares are not supported.
type Units = int64

// P is a convenience constructor used mostly by tests and config loading.
func P(x float64) Price {
	return decimal.NewFromFloat(x)
}

// ParsePrice parses a decimal string such as "12.3400".
func ParsePrice(s string) (Price, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("bad price %q: %w", s, err)
	}
	return d, nil
}

// FormatCash renders an amount in the given ISO currency, e.g. "$10,000.00".
// Amounts are rounded to the currency's minor unit for display only.
func FormatCash(c Cash, currency string) string {
	cur := money.New(0, currency).Currency()
	minor := c.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// KnownCurrency reports whether code is an ISO currency go-money can format.
func KnownCurrency(code string) bool {
	return money.GetCurrency(code) != nil
}
