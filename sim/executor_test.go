package sim

import (
	"errors"
	"testing"

	"github.com/rustyeddy/papertrader/market"
	"github.com/rustyeddy/papertrader/portfolio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func barAt(price float64) market.Bar {
	p := market.P(price)
	return market.Bar{Date: testDay(0), Open: p, High: p, Low: p, Close: p}
}

func TestExecutorSizing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cash    float64
		shares  int64 // bought at price 1 before sizing
		intent  Intent
		price   float64
		wantQty int64
		wantErr error
	}{
		{name: "buy full even", cash: 10000, intent: BuyFull, price: 100, wantQty: 100},
		{name: "buy full truncates", cash: 10000, intent: BuyFull, price: 99, wantQty: 101},
		{name: "buy half", cash: 10000, intent: BuyHalf, price: 99, wantQty: 50},
		{name: "buy half one share affordable", cash: 150, intent: BuyHalf, price: 100, wantQty: 0},
		{name: "buy full exactly one", cash: 100, intent: BuyFull, price: 100, wantQty: 1},
		{name: "buy full unaffordable", cash: 50, intent: BuyFull, price: 100, wantErr: ErrInsufficientFunds},
		{name: "buy half unaffordable", cash: 50, intent: BuyHalf, price: 100, wantErr: ErrInsufficientFunds},
		{name: "sell full none", cash: 100, intent: SellFull, price: 10, wantErr: ErrInsufficientShares},
		{name: "sell half none", cash: 100, intent: SellHalf, price: 10, wantErr: ErrInsufficientShares},
		{name: "sell full", cash: 100, shares: 7, intent: SellFull, price: 10, wantQty: 7},
		{name: "sell half odd", cash: 100, shares: 7, intent: SellHalf, price: 10, wantQty: 3},
		{name: "sell half one share", cash: 100, shares: 1, intent: SellHalf, price: 10, wantQty: 0},
		{name: "hold", cash: 0, intent: Hold, price: 10, wantQty: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l := portfolio.NewLedger(market.P(tt.cash))
			if tt.shares > 0 {
				require.NoError(t, l.ApplyBuy(tt.shares, market.P(1)))
			}
			e := NewExecutor(l)

			qty, err := e.Size(tt.intent, market.P(tt.price))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantQty, qty)
		})
	}
}

func TestExecutorSizeExactDivision(t *testing.T) {
	t.Parallel()

	// 0.3 / 0.1 must size to exactly 3 shares, not 2 from float rounding.
	e := NewExecutor(portfolio.NewLedger(market.P(0.3)))
	qty, err := e.Size(BuyFull, market.P(0.1))
	require.NoError(t, err)
	assert.Equal(t, int64(3), qty)
}

func TestExecutorUnknownIntent(t *testing.T) {
	t.Parallel()

	e := NewExecutor(portfolio.NewLedger(market.P(100)))
	_, err := e.Size(Intent(99), market.P(1))
	assert.ErrorIs(t, err, ErrUnknownIntent)
}

func TestExecuteBuyFullScenario(t *testing.T) {
	t.Parallel()

	l := portfolio.NewLedger(market.P(10000))
	e := NewExecutor(l)

	fill, err := e.Execute(BuyFull, 3, barAt(100))
	require.NoError(t, err)

	assert.NotEmpty(t, fill.ID)
	assert.Equal(t, 3, fill.Day)
	assert.Equal(t, BuyFull, fill.Intent)
	assert.Equal(t, int64(100), fill.Quantity)
	assert.True(t, decEq(100, fill.Price))
	assert.True(t, decEq(0, fill.Cash))
	assert.Equal(t, int64(100), fill.Shares)
	assert.True(t, decEq(0, l.Cash()))
	assert.Equal(t, int64(100), l.Shares())
	assert.True(t, decEq(10000, notional(fill)))
}

func TestExecuteBuyHalfScenario(t *testing.T) {
	t.Parallel()

	l := portfolio.NewLedger(market.P(10000))
	fill, err := NewExecutor(l).Execute(BuyHalf, 0, barAt(99))
	require.NoError(t, err)

	assert.Equal(t, int64(50), fill.Quantity)
	assert.True(t, decEq(5050, l.Cash()))
	assert.Equal(t, int64(50), l.Shares())
}

func TestExecuteRejectionLeavesLedger(t *testing.T) {
	t.Parallel()

	l := portfolio.NewLedger(market.P(50))
	e := NewExecutor(l)

	for _, intent := range []Intent{BuyFull, BuyHalf} {
		_, err := e.Execute(intent, 2, barAt(100))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInsufficientFunds)

		var rej *RejectionError
		require.True(t, errors.As(err, &rej))
		assert.Equal(t, intent, rej.Intent)
		assert.Equal(t, 2, rej.Day)
		assert.True(t, decEq(100, rej.Price))
		assert.Contains(t, rej.Error(), "day 3")
	}
	for _, intent := range []Intent{SellFull, SellHalf} {
		_, err := e.Execute(intent, 2, barAt(100))
		assert.ErrorIs(t, err, ErrInsufficientShares)
	}

	assert.True(t, decEq(50, l.Cash()))
	assert.Equal(t, int64(0), l.Shares())
}

func TestExecuteRoundTrip(t *testing.T) {
	t.Parallel()

	for _, price := range []float64{100, 99, 7.3, 0.5, 3333.33} {
		l := portfolio.NewLedger(market.P(10000))
		e := NewExecutor(l)

		_, err := e.Execute(BuyFull, 0, barAt(price))
		require.NoError(t, err)
		_, err = e.Execute(SellFull, 0, barAt(price))
		require.NoError(t, err)

		assert.Truef(t, decEq(10000, l.Cash()), "price %v: cash %s", price, l.Cash())
		assert.Equal(t, int64(0), l.Shares())
	}
}

func TestExecuteHoldDoesNotMutate(t *testing.T) {
	t.Parallel()

	l := portfolio.NewLedger(market.P(1234))
	fill, err := NewExecutor(l).Execute(Hold, 0, barAt(10))
	require.NoError(t, err)

	assert.Equal(t, Hold, fill.Intent)
	assert.Equal(t, int64(0), fill.Quantity)
	assert.True(t, decEq(1234, l.Cash()))
	assert.Equal(t, int64(0), l.Shares())
}

func TestFillDescribe(t *testing.T) {
	t.Parallel()

	f := Fill{Day: 2, Intent: BuyHalf, Quantity: 50, Price: market.P(99)}
	assert.Equal(t, "Day 3: buy half 50 shares at $99.00", f.Describe("USD"))

	h := Fill{Day: 0, Intent: Hold}
	assert.Equal(t, "Day 1: hold", h.Describe("USD"))
}
