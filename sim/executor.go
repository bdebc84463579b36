package sim

import (
	"fmt"

	"github.com/rustyeddy/papertrader/internal/id"
	"github.com/rustyeddy/papertrader/market"
	"github.com/rustyeddy/papertrader/portfolio"
	"github.com/shopspring/decimal"
)

// Executor sizes intents against a ledger and applies them.
type Executor struct {
	ledger *portfolio.Ledger
}

func NewExecutor(l *portfolio.Ledger) *Executor {
	return &Executor{ledger: l}
}

// Size returns the share quantity an intent would trade at price without
// touching the ledger.
//
//   - BuyFull buys floor(cash/price) and BuyHalf half of that, rounded
//     down. Both are rejected only when not even one share is affordable,
//     so BuyHalf with exactly one affordable share sizes to zero.
//   - SellFull sells every share and SellHalf floor(shares/2). Both are
//     rejected only when no shares are held.
//   - Hold always sizes to zero.
func (e *Executor) Size(intent Intent, price market.Price) (market.Units, error) {
	switch intent {
	case Hold:
		return 0, nil

	case BuyFull, BuyHalf:
		if !price.IsPositive() {
			return 0, fmt.Errorf("price must be positive, got %s", price)
		}
		cash := e.ledger.Cash()
		if cash.LessThan(price) {
			return 0, ErrInsufficientFunds
		}
		q, _ := cash.QuoRem(price, 0)
		full := q.IntPart()
		if intent == BuyHalf {
			return full / 2, nil
		}
		return full, nil

	case SellFull, SellHalf:
		shares := e.ledger.Shares()
		if shares == 0 {
			return 0, ErrInsufficientShares
		}
		if intent == SellHalf {
			return shares / 2, nil
		}
		return shares, nil
	}

	return 0, fmt.Errorf("%w: %d", ErrUnknownIntent, int(intent))
}

// Execute sizes and applies intent at bar's close. On rejection the
// ledger is untouched and a *RejectionError is returned.
func (e *Executor) Execute(intent Intent, day int, bar market.Bar) (Fill, error) {
	price := bar.Close

	qty, err := e.Size(intent, price)
	if err != nil {
		return Fill{}, &RejectionError{Intent: intent, Day: day, Price: price, Err: err}
	}

	switch {
	case intent.IsBuy():
		err = e.ledger.ApplyBuy(qty, price)
	case intent.IsSell():
		err = e.ledger.ApplySell(qty, price)
	}
	if err != nil {
		// Size already checked affordability; reaching here means the
		// ledger and sizing rules disagree.
		return Fill{}, &RejectionError{Intent: intent, Day: day, Price: price, Err: err}
	}

	return Fill{
		ID:       id.New(),
		Day:      day,
		Date:     bar.Date,
		Intent:   intent,
		Quantity: qty,
		Price:    price,
		Cash:     e.ledger.Cash(),
		Shares:   e.ledger.Shares(),
	}, nil
}

// notional is qty*price, the cash that changed hands in a fill.
func notional(f Fill) market.Cash {
	return f.Price.Mul(decimal.NewFromInt(f.Quantity))
}
