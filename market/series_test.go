package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func bars(closes ...float64) []Bar {
	out := make([]Bar, len(closes))
	for i, c := range closes {
		out[i] = Bar{Date: day(i), Open: P(c), High: P(c), Low: P(c), Close: P(c), Volume: 1000}
	}
	return out
}

func TestNewBarSeries(t *testing.T) {
	t.Parallel()

	s, err := NewBarSeries("AAPL", bars(100, 101, 102))
	require.NoError(t, err)

	assert.Equal(t, "AAPL", s.Instrument())
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Get(1).Close.Equal(P(101)))
	assert.True(t, s.Last().Close.Equal(P(102)))
	assert.Equal(t, day(0), s.Start())
	assert.Equal(t, day(2), s.End())
}

func TestNewBarSeriesCopiesInput(t *testing.T) {
	t.Parallel()

	in := bars(100, 101)
	s, err := NewBarSeries("AAPL", in)
	require.NoError(t, err)

	in[0].Close = P(1)
	assert.True(t, s.Get(0).Close.Equal(P(100)))
}

func TestNewBarSeriesValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		bars   []Bar
		errMsg string
	}{
		{
			name:   "empty",
			bars:   nil,
			errMsg: "bar series is empty",
		},
		{
			name: "zero close",
			bars: []Bar{{Date: day(0), Close: P(0)}},
			errMsg: "close must be positive",
		},
		{
			name:   "negative volume",
			bars:   []Bar{{Date: day(0), Close: P(1), Volume: -1}},
			errMsg: "negative volume",
		},
		{
			name:   "duplicate date",
			bars:   []Bar{{Date: day(0), Close: P(1)}, {Date: day(0), Close: P(2)}},
			errMsg: "strictly increasing",
		},
		{
			name:   "out of order",
			bars:   []Bar{{Date: day(3), Close: P(1)}, {Date: day(1), Close: P(2)}},
			errMsg: "strictly increasing",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewBarSeries("X", tt.bars)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNewBarSeriesEmptyIsSentinel(t *testing.T) {
	t.Parallel()

	_, err := NewBarSeries("X", []Bar{})
	assert.ErrorIs(t, err, ErrEmptySeries)
}

func TestWindow(t *testing.T) {
	t.Parallel()

	s, err := NewBarSeries("X", bars(1, 2, 3, 4, 5))
	require.NoError(t, err)

	closes := func(bs []Bar) []string {
		out := make([]string, len(bs))
		for i, b := range bs {
			out[i] = b.Close.String()
		}
		return out
	}

	assert.Equal(t, []string{"1"}, closes(s.Window(0, 3)))
	assert.Equal(t, []string{"1", "2", "3"}, closes(s.Window(2, 3)))
	assert.Equal(t, []string{"3", "4", "5"}, closes(s.Window(4, 3)))
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, closes(s.Window(4, 50)))
	assert.Equal(t, []string{"3", "4", "5"}, closes(s.Window(99, 3)))
	assert.Nil(t, s.Window(2, 0))
	assert.Nil(t, s.Window(-1, 3))

	w := s.Window(1, 2)
	w[0].Close = P(42)
	assert.True(t, s.Get(0).Close.Equal(P(1)), "window must be a copy")
}

func TestFormatCash(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "$10,000.00", FormatCash(P(10000), "USD"))
	assert.Equal(t, "$99.00", FormatCash(P(99), "USD"))
	assert.Equal(t, "$0.13", FormatCash(P(0.125), "USD"))
	assert.True(t, KnownCurrency("USD"))
	assert.True(t, KnownCurrency("CNY"))
	assert.False(t, KnownCurrency("XXXX"))
}
