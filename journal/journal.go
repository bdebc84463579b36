// Package journal persists an audit trail of simulation sessions: every
// decision, the equity curve and the final result. Journals are write
// only from a session's point of view; nothing is ever read back into a
// running simulation.
package journal

import (
	"time"

	"github.com/shopspring/decimal"
)

// FillRecord is one accepted decision, holds included.
type FillRecord struct {
	FillID      string
	SessionID   string
	Instrument  string
	Day         int
	Date        time.Time
	Action      string
	Quantity    int64
	Price       decimal.Decimal
	Cash        decimal.Decimal
	Shares      int64
	Description string
}

// EquitySnapshot is the portfolio value at the close of a day.
type EquitySnapshot struct {
	SessionID string
	Day       int
	Date      time.Time
	Cash      decimal.Decimal
	Shares    int64
	Price     decimal.Decimal
	Valuation decimal.Decimal
}

// SessionRecord is the outcome of a finished session.
type SessionRecord struct {
	SessionID  string
	Instrument string
	Currency   string
	Created    time.Time

	// Series coverage
	Start       time.Time
	End         time.Time
	Days        int
	StartOffset int

	InitialCapital decimal.Decimal
	FinalValuation decimal.Decimal
	Profit         decimal.Decimal
	ROIPercent     decimal.Decimal
	Cash           decimal.Decimal
	Shares         int64
	Fills          int
}

type Journal interface {
	RecordFill(FillRecord) error
	RecordEquity(EquitySnapshot) error
	RecordSession(SessionRecord) error
	Close() error
}
