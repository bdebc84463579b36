// Package portfolio holds the cash-and-shares account a simulation trades
// against.
package portfolio

import (
	"errors"
	"fmt"

	"github.com/rustyeddy/papertrader/market"
	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInsufficientShares = errors.New("insufficient shares")
)

// Ledger tracks cash and a whole-share position in one instrument.
//
// Cash and shares only ever change together inside ApplyBuy or ApplySell,
// and neither can go negative.
type Ledger struct {
	initial market.Cash
	cash    market.Cash
	shares  market.Units
}

// NewLedger opens an all-cash ledger. A negative capital is treated as zero.
func NewLedger(initialCapital market.Cash) *Ledger {
	if initialCapital.IsNegative() {
		initialCapital = decimal.Zero
	}
	return &Ledger{initial: initialCapital, cash: initialCapital}
}

func (l *Ledger) InitialCapital() market.Cash { return l.initial }
func (l *Ledger) Cash() market.Cash           { return l.cash }
func (l *Ledger) Shares() market.Units        { return l.shares }

// Valuation is cash plus the position marked at price.
func (l *Ledger) Valuation(price market.Price) market.Cash {
	return l.cash.Add(price.Mul(decimal.NewFromInt(l.shares)))
}

// CostBasis approximates the average price paid per held share as the
// capital no longer held in cash divided by the share count. ok is false
// when no shares are held.
//
// The approximation is only exact when every purchase was made from the
// initial capital baseline; after a profitable partial sale it can even go
// negative. Callers use it for display.
func (l *Ledger) CostBasis() (basis market.Price, ok bool) {
	if l.shares == 0 {
		return decimal.Zero, false
	}
	deployed := l.initial.Sub(l.cash)
	return deployed.Div(decimal.NewFromInt(l.shares)), true
}

// UnrealizedPL is (price - cost basis) * shares, undefined without shares.
func (l *Ledger) UnrealizedPL(price market.Price) (market.Cash, bool) {
	basis, ok := l.CostBasis()
	if !ok {
		return decimal.Zero, false
	}
	return price.Sub(basis).Mul(decimal.NewFromInt(l.shares)), true
}

// ApplyBuy moves qty*price from cash into qty shares.
func (l *Ledger) ApplyBuy(qty market.Units, price market.Price) error {
	if qty < 0 {
		return fmt.Errorf("buy %d shares: negative quantity", qty)
	}
	cost := price.Mul(decimal.NewFromInt(qty))
	if cost.GreaterThan(l.cash) {
		return fmt.Errorf("buy %d @ %s costs %s with %s cash: %w",
			qty, price, cost, l.cash, ErrInsufficientFunds)
	}

	l.cash = l.cash.Sub(cost)
	l.shares += qty
	return nil
}

// ApplySell moves qty shares into qty*price of cash.
func (l *Ledger) ApplySell(qty market.Units, price market.Price) error {
	if qty < 0 {
		return fmt.Errorf("sell %d shares: negative quantity", qty)
	}
	if qty > l.shares {
		return fmt.Errorf("sell %d with %d held: %w", qty, l.shares, ErrInsufficientShares)
	}

	l.cash = l.cash.Add(price.Mul(decimal.NewFromInt(qty)))
	l.shares -= qty
	return nil
}

// Snapshot is a point-in-time view of the ledger marked at a price.
type Snapshot struct {
	Cash         market.Cash
	Shares       market.Units
	Price        market.Price
	Valuation    market.Cash
	CostBasis    market.Price
	UnrealizedPL market.Cash
	// HasBasis is false when no shares are held; CostBasis and
	// UnrealizedPL are zero and carry no meaning then.
	HasBasis bool
}

func (l *Ledger) Snapshot(price market.Price) Snapshot {
	s := Snapshot{
		Cash:      l.cash,
		Shares:    l.shares,
		Price:     price,
		Valuation: l.Valuation(price),
	}
	s.CostBasis, s.HasBasis = l.CostBasis()
	s.UnrealizedPL, _ = l.UnrealizedPL(price)
	return s
}
