package sim

import (
	"fmt"
	"strings"
)

// Intent is the closed set of decisions a user can make on a given day.
type Intent int

const (
	Hold Intent = iota
	BuyFull
	BuyHalf
	SellFull
	SellHalf
)

var intentNames = [...]string{
	Hold:     "hold",
	BuyFull:  "buy",
	BuyHalf:  "buy-half",
	SellFull: "sell",
	SellHalf: "sell-half",
}

var intentLabels = [...]string{
	Hold:     "hold",
	BuyFull:  "buy full",
	BuyHalf:  "buy half",
	SellFull: "sell full",
	SellHalf: "sell half",
}

func (i Intent) valid() bool { return i >= Hold && i <= SellHalf }

// String returns the command name, e.g. "buy-half".
func (i Intent) String() string {
	if !i.valid() {
		return fmt.Sprintf("Intent(%d)", int(i))
	}
	return intentNames[i]
}

// Label is the human wording used in activity descriptions.
func (i Intent) Label() string {
	if !i.valid() {
		return i.String()
	}
	return intentLabels[i]
}

func (i Intent) IsBuy() bool  { return i == BuyFull || i == BuyHalf }
func (i Intent) IsSell() bool { return i == SellFull || i == SellHalf }

// ParseIntent accepts the command names plus a few common spellings.
func ParseIntent(s string) (Intent, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hold", "h", "pass", "noop":
		return Hold, nil
	case "buy", "b", "buy-full", "buyfull", "buy_full":
		return BuyFull, nil
	case "buy-half", "bh", "buyhalf", "buy_half":
		return BuyHalf, nil
	case "sell", "s", "sell-full", "sellfull", "sell_full":
		return SellFull, nil
	case "sell-half", "sh", "sellhalf", "sell_half":
		return SellHalf, nil
	}
	return Hold, fmt.Errorf("%w: %q (want hold, buy, buy-half, sell, sell-half)", ErrUnknownIntent, s)
}
