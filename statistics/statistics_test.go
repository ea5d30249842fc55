package statistics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/quantbox/quantbox/portfolio"
)

func equityCurve(values ...float64) []EquityPoint {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]EquityPoint, len(values))
	for i := range values {
		out[i] = EquityPoint{Date: day.AddDate(0, 0, i), Value: values[i]}
	}
	return out
}

func TestMaxDrawdown(t *testing.T) {
	assert.Zero(t, maxDrawdown(nil))
	assert.Zero(t, maxDrawdown(equityCurve(100, 100, 110, 120)), "monotone curve has no drawdown")

	// peak 120 to trough 90 is a 25% decline
	assert.InDelta(t, 25.0, maxDrawdown(equityCurve(100, 120, 90, 110)), 1e-9)

	// later deeper trough wins
	assert.InDelta(t, 50.0, maxDrawdown(equityCurve(100, 120, 90, 110, 60)), 1e-9)
}

func TestSharpeRatio(t *testing.T) {
	assert.Zero(t, sharpeRatio(nil))
	assert.Zero(t, sharpeRatio(equityCurve(100, 105)), "one return is not enough")
	assert.Zero(t, sharpeRatio(equityCurve(100, 105, 110.25)), "identical returns have zero deviation")

	got := sharpeRatio(equityCurve(100, 110, 104.5))
	// returns 0.1 and -0.05, mean 0.025, population stddev 0.075
	want := 0.025 / 0.075 * math.Sqrt(252)
	assert.InDelta(t, want, got, 1e-9)
}

func TestWinLossCounts(t *testing.T) {
	trade := func(side portfolio.Side, qty int64, price float64) portfolio.Trade {
		return portfolio.Trade{Side: side, Quantity: qty, Price: price}
	}

	wins, losses := winLossCounts(nil)
	assert.Zero(t, wins)
	assert.Zero(t, losses)

	// unpaired buy contributes nothing
	wins, losses = winLossCounts([]portfolio.Trade{trade(portfolio.Buy, 5, 100)})
	assert.Zero(t, wins)
	assert.Zero(t, losses)

	wins, losses = winLossCounts([]portfolio.Trade{
		trade(portfolio.Buy, 5, 100),
		trade(portfolio.Sell, 5, 110), // +50
		trade(portfolio.Buy, 5, 100),
		trade(portfolio.Sell, 5, 90), // -50
		trade(portfolio.Buy, 5, 100),
		trade(portfolio.Sell, 5, 100), // flat, counted neither way
	})
	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, losses)
}

func TestCalculate(t *testing.T) {
	m := Calculate(nil, nil)
	assert.Zero(t, m.FinalValue)
	assert.Zero(t, m.TotalReturn)
	assert.Zero(t, m.TotalTrades)

	trades := []portfolio.Trade{
		{Side: portfolio.Buy, Quantity: 5, Price: 100},
		{Side: portfolio.Sell, Quantity: 5, Price: 95},
	}
	m = Calculate(equityCurve(1000, 1025, 975), trades)
	assert.Equal(t, 975.0, m.FinalValue)
	assert.InDelta(t, -2.5, m.TotalReturn, 1e-9)
	assert.Equal(t, 2, m.TotalTrades)
	assert.Equal(t, 0, m.WinningTrades)
	assert.Equal(t, 1, m.LosingTrades)
	assert.Positive(t, m.MaxDrawdown)
}
