package sim

import (
	"testing"
	"time"

	"github.com/rustyeddy/papertrader/journal"
	"github.com/rustyeddy/papertrader/market"
	"github.com/stretchr/testify/require"
)

type testJournal struct {
	fills    []journal.FillRecord
	equity   []journal.EquitySnapshot
	sessions []journal.SessionRecord
	closed   bool
	failWith error
}

func (j *testJournal) RecordFill(rec journal.FillRecord) error {
	if j.failWith != nil {
		return j.failWith
	}
	j.fills = append(j.fills, rec)
	return nil
}

func (j *testJournal) RecordEquity(rec journal.EquitySnapshot) error {
	if j.failWith != nil {
		return j.failWith
	}
	j.equity = append(j.equity, rec)
	return nil
}

func (j *testJournal) RecordSession(rec journal.SessionRecord) error {
	if j.failWith != nil {
		return j.failWith
	}
	j.sessions = append(j.sessions, rec)
	return nil
}

func (j *testJournal) Close() error {
	j.closed = true
	return nil
}

func testDay(n int) time.Time {
	return time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func newSeries(t *testing.T, closes ...float64) *market.BarSeries {
	t.Helper()
	bars := make([]market.Bar, len(closes))
	for i, c := range closes {
		p := market.P(c)
		bars[i] = market.Bar{Date: testDay(i), Open: p, High: p, Low: p, Close: p, Volume: 100}
	}
	s, err := market.NewBarSeries("TEST", bars)
	require.NoError(t, err)
	return s
}

func newSession(t *testing.T, capital float64, closes ...float64) (*Session, *testJournal) {
	t.Helper()
	j := &testJournal{}
	s, err := NewSession(newSeries(t, closes...), Options{
		InitialCapital: market.P(capital),
		Journal:        j,
	})
	require.NoError(t, err)
	return s, j
}

func decEq(want float64, got market.Cash) bool {
	return market.P(want).Equal(got)
}
