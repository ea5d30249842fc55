// Package indicators computes windowed statistics over closing-price
// history. Every function is stateless and recomputes from the supplied
// series on each call.
package indicators

import (
	"github.com/thrasher-corp/gct-ta/indicators"
)

// SimpleMovingAverage returns the arithmetic mean of the trailing period
// closes. Insufficient history returns 0 rather than an error so strategies
// can probe early bars without guarding.
func SimpleMovingAverage(closes []float64, period int) float64 {
	if period <= 0 || len(closes) < period {
		return 0
	}
	var sum float64
	for _, c := range closes[len(closes)-period:] {
		sum += c
	}
	return sum / float64(period)
}

// ExponentialMovingAverage returns the most recent EMA value over the
// series, 0 with insufficient history
func ExponentialMovingAverage(closes []float64, period int) float64 {
	if period <= 0 || len(closes) < period {
		return 0
	}
	return lastValue(indicators.EMA(closes, period))
}

// RelativeStrengthIndex returns the most recent RSI value over the series,
// 0 with insufficient history. RSI needs one bar beyond the period to seed
// its first change.
func RelativeStrengthIndex(closes []float64, period int) float64 {
	if period <= 0 || len(closes) < period+1 {
		return 0
	}
	return lastValue(indicators.RSI(closes, period))
}

func lastValue(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return values[len(values)-1]
}
