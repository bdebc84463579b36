package sim

import (
	"bytes"
	"testing"

	"github.com/rustyeddy/papertrader/market"
	"github.com/rustyeddy/papertrader/portfolio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReport(t *testing.T) {
	t.Parallel()

	l := portfolio.NewLedger(market.P(10000))
	require.NoError(t, l.ApplyBuy(100, market.P(100)))
	require.NoError(t, l.ApplySell(100, market.P(110)))

	r := NewReport(l, barAt(110))
	assert.True(t, decEq(11000, r.FinalValuation))
	assert.True(t, decEq(1000, r.Profit))
	assert.Equal(t, "10.00", r.ROIPercent.StringFixed(2))
	assert.True(t, decEq(10000, r.InitialCapital))
}

func TestNewReportLoss(t *testing.T) {
	t.Parallel()

	l := portfolio.NewLedger(market.P(10000))
	require.NoError(t, l.ApplyBuy(100, market.P(100)))

	r := NewReport(l, barAt(75))
	assert.True(t, decEq(7500, r.FinalValuation))
	assert.True(t, decEq(-2500, r.Profit))
	assert.Equal(t, "-25.00", r.ROIPercent.StringFixed(2))
	assert.Equal(t, int64(100), r.Shares)
}

func TestNewReportZeroCapital(t *testing.T) {
	t.Parallel()

	r := NewReport(portfolio.NewLedger(market.P(0)), barAt(10))
	assert.True(t, r.ROIPercent.IsZero())
}

func TestPrintReport(t *testing.T) {
	t.Parallel()

	l := portfolio.NewLedger(market.P(10000))
	r := NewReport(l, barAt(10))
	r.Complete = true
	r.Fills = 4

	var buf bytes.Buffer
	PrintReport(&buf, r, "AAPL", "USD")
	out := buf.String()

	assert.Contains(t, out, "Final Result")
	assert.Contains(t, out, "Instrument:      AAPL")
	assert.Contains(t, out, "Decisions:       4")
	assert.Contains(t, out, "Final Value:     $10,000.00")
	assert.Contains(t, out, "Profit:          $0.00")
	assert.Contains(t, out, "ROI:             0.00%")

	buf.Reset()
	r.Complete = false
	PrintReport(&buf, r, "", "USD")
	assert.Contains(t, buf.String(), "Interim Result")
	assert.NotContains(t, buf.String(), "Instrument:")
}
