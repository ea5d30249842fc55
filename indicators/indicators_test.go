package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimpleMovingAverage(t *testing.T) {
	closes := []float64{100, 105, 95, 110, 120}

	assert.Zero(t, SimpleMovingAverage(nil, 3))
	assert.Zero(t, SimpleMovingAverage(closes[:2], 3), "insufficient history")
	assert.Zero(t, SimpleMovingAverage(closes, 0))
	assert.Zero(t, SimpleMovingAverage(closes, -1))

	// exactly period closes: mean of the first three
	assert.InDelta(t, 100.0, SimpleMovingAverage(closes[:3], 3), 1e-9)
	// trailing window only
	assert.InDelta(t, (95.0+110+120)/3, SimpleMovingAverage(closes, 3), 1e-9)
	assert.InDelta(t, 120.0, SimpleMovingAverage(closes, 1), 1e-9)
	assert.InDelta(t, 106.0, SimpleMovingAverage(closes, 5), 1e-9)
}

func TestExponentialMovingAverage(t *testing.T) {
	assert.Zero(t, ExponentialMovingAverage([]float64{100, 101}, 3))

	constant := []float64{50, 50, 50, 50, 50, 50}
	assert.InDelta(t, 50.0, ExponentialMovingAverage(constant, 3), 1e-9)

	rising := []float64{10, 20, 30, 40, 50}
	ema := ExponentialMovingAverage(rising, 3)
	assert.Greater(t, ema, 0.0)
	assert.Less(t, ema, 50.0)
	assert.Greater(t, ema, SimpleMovingAverage(rising, 5), "EMA weights recent closes more heavily")
}

func TestRelativeStrengthIndex(t *testing.T) {
	assert.Zero(t, RelativeStrengthIndex([]float64{100, 101, 102}, 3), "needs period+1 closes")

	rising := []float64{100, 101, 102, 103, 104, 105, 106, 107}
	rsi := RelativeStrengthIndex(rising, 5)
	assert.Greater(t, rsi, 50.0)
	assert.LessOrEqual(t, rsi, 100.0)

	falling := []float64{107, 106, 105, 104, 103, 102, 101, 100}
	rsi = RelativeStrengthIndex(falling, 5)
	assert.GreaterOrEqual(t, rsi, 0.0)
	assert.Less(t, rsi, 50.0)
}
