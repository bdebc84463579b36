package journal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFillOrg(t *testing.T) {
	t.Parallel()

	result := FormatFillOrg(sampleFill("01HZY3ABCDEFGHJKMNPQRS", "S1", 0))

	assert.Contains(t, result, "** Day 1: buy (01HZY3AB)")
	assert.Contains(t, result, ":PROPERTIES:")
	assert.Contains(t, result, ":FILL_ID: 01HZY3ABCDEFGHJKMNPQRS")
	assert.Contains(t, result, ":SESSION_ID: S1")
	assert.Contains(t, result, ":INSTRUMENT: AAPL")
	assert.Contains(t, result, ":DATE: 2024-01-02")
	assert.Contains(t, result, ":QUANTITY: 101")
	assert.Contains(t, result, ":PRICE: 99.01")
	assert.Contains(t, result, ":CASH: 0.99")
	assert.Contains(t, result, ":END:")
	assert.Contains(t, result, "- Day 1: buy full 101 shares at $99.01")
}

func TestFormatFillOrgShortID(t *testing.T) {
	t.Parallel()

	f := sampleFill("short", "S1", 4)
	f.Action = "hold"
	f.Description = ""

	result := FormatFillOrg(f)
	assert.Contains(t, result, "** Day 5: hold (short)")
	assert.False(t, strings.Contains(result, "- "), "no description line expected")
}

func TestFormatFillsOrg(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", FormatFillsOrg(nil))

	out := FormatFillsOrg([]FillRecord{sampleFill("F1", "S1", 0), sampleFill("F2", "S1", 1)})
	assert.Equal(t, 2, strings.Count(out, ":PROPERTIES:"))
	assert.Contains(t, out, ":END:\n- Day 1: buy full 101 shares at $99.01\n\n** Day 2")
}

func TestFormatSessionOrg(t *testing.T) {
	t.Parallel()

	s := sampleSession("S1", time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC))
	fills := []FillRecord{sampleFill("F1", "S1", 0)}
	equity := []EquitySnapshot{{
		SessionID: "S1", Day: 1, Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
		Price: dec("101"), Valuation: dec("10201.99"),
	}}

	out, err := FormatSessionOrg(s, fills, equity)
	require.NoError(t, err)

	assert.Contains(t, out, "* SESSION: AAPL 2024-01-02 .. 2024-03-28")
	assert.Contains(t, out, ":SESSION_ID:   S1")
	assert.Contains(t, out, ":FINAL_VALUE:  11000.00")
	assert.Contains(t, out, ":ROI_PCT:      10.00")
	assert.Contains(t, out, ":FILLS:        2")
	assert.Contains(t, out, ":CREATED:      [2024-04-01 Mon 12:00]")
	assert.Contains(t, out, "- Return:       *10.00%*")
	assert.Contains(t, out, "| 1 | 2024-01-02 | buy | 101 | 99.01 | 0.99 | 101 |")
	assert.Contains(t, out, "| 2 | 2024-01-03 | 101.00 | 10201.99 |")
}

func TestFormatSessionOrgWithoutDetail(t *testing.T) {
	t.Parallel()

	out, err := FormatSessionOrg(sampleSession("S1", time.Time{}), nil, nil)
	require.NoError(t, err)
	assert.NotContains(t, out, "** Decisions")
	assert.NotContains(t, out, "** Equity Curve")
}

func TestWriteSessionOrg(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.org")
	require.NoError(t, WriteSessionOrg(path, sampleSession("S1", time.Now()), nil, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "* SESSION: AAPL"))
}
