package sim

import (
	"errors"
	"fmt"

	"github.com/rustyeddy/papertrader/market"
	"github.com/rustyeddy/papertrader/portfolio"
)

var (
	ErrAlreadyAtEnd  = errors.New("already at last day")
	ErrUnknownIntent = errors.New("unknown intent")

	// Rejection reasons, re-exported so callers only need this package.
	ErrInsufficientFunds  = portfolio.ErrInsufficientFunds
	ErrInsufficientShares = portfolio.ErrInsufficientShares
)

// RejectionError reports an intent that could not be executed. The ledger
// is unchanged and nothing was logged. Use errors.Is with
// ErrInsufficientFunds or ErrInsufficientShares to tell the reasons apart.
type RejectionError struct {
	Intent Intent
	Day    int
	Price  market.Price
	Err    error
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("day %d: %s at %s rejected: %v", e.Day+1, e.Intent, e.Price, e.Err)
}

func (e *RejectionError) Unwrap() error { return e.Err }
