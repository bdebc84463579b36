package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)

	return j, path
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleFill(id, session string, day int) FillRecord {
	return FillRecord{
		FillID:      id,
		SessionID:   session,
		Instrument:  "AAPL",
		Day:         day,
		Date:        time.Date(2024, 1, 2+day, 0, 0, 0, 0, time.UTC),
		Action:      "buy",
		Quantity:    101,
		Price:       dec("99.01"),
		Cash:        dec("0.99"),
		Shares:      101,
		Description: "Day 1: buy full 101 shares at $99.01",
	}
}

func sampleSession(id string, created time.Time) SessionRecord {
	return SessionRecord{
		SessionID:      id,
		Instrument:     "AAPL",
		Currency:       "USD",
		Created:        created,
		Start:          time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		End:            time.Date(2024, 3, 28, 0, 0, 0, 0, time.UTC),
		Days:           60,
		StartOffset:    0,
		InitialCapital: dec("10000"),
		FinalValuation: dec("11000"),
		Profit:         dec("1000"),
		ROIPercent:     dec("10"),
		Cash:           dec("11000"),
		Shares:         0,
		Fills:          2,
	}
}
