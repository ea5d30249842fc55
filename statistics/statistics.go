// Package statistics derives risk and return metrics from a finished run's
// equity curve and trade log
package statistics

import (
	"math"

	"github.com/quantbox/quantbox/portfolio"
)

// Calculate produces the full metric set for a run
func Calculate(equity []EquityPoint, trades []portfolio.Trade) Metrics {
	m := Metrics{TotalTrades: len(trades)}
	if len(equity) > 0 {
		first := equity[0].Value
		m.FinalValue = equity[len(equity)-1].Value
		if first != 0 {
			m.TotalReturn = (m.FinalValue - first) / first * 100
		}
	}
	m.MaxDrawdown = maxDrawdown(equity)
	m.SharpeRatio = sharpeRatio(equity)
	m.WinningTrades, m.LosingTrades = winLossCounts(trades)
	return m
}

// maxDrawdown reports the largest percentage decline from a running equity
// peak; 0 for a curve that never falls below its peak
func maxDrawdown(equity []EquityPoint) float64 {
	if len(equity) == 0 {
		return 0
	}
	peak := equity[0].Value
	var maxDD float64
	for i := range equity {
		if equity[i].Value > peak {
			peak = equity[i].Value
		}
		if peak == 0 {
			continue
		}
		if dd := (peak - equity[i].Value) / peak * 100; dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

// sharpeRatio annualizes mean daily return over its population standard
// deviation; defined as 0 when fewer than two returns exist or the curve is
// flat
func sharpeRatio(equity []EquityPoint) float64 {
	var returns []float64
	for i := 1; i < len(equity); i++ {
		prev := equity[i-1].Value
		if prev == 0 {
			continue
		}
		returns = append(returns, (equity[i].Value-prev)/prev)
	}
	if len(returns) < 2 {
		return 0
	}

	var mean float64
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	var variance float64
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns))

	stdDev := math.Sqrt(variance)
	if stdDev == 0 {
		return 0
	}
	return mean / stdDev * math.Sqrt(tradingDaysPerYear)
}

// winLossCounts pairs the i-th BUY with the i-th SELL by list position and
// scores the pair's profit at the sell quantity. The positional pairing is
// kept bug-for-bug compatible with the platform's historical results;
// interleaved lots are knowingly misattributed.
func winLossCounts(trades []portfolio.Trade) (wins, losses int) {
	var buys, sells []portfolio.Trade
	for i := range trades {
		switch trades[i].Side {
		case portfolio.Buy:
			buys = append(buys, trades[i])
		case portfolio.Sell:
			sells = append(sells, trades[i])
		}
	}

	pairs := len(buys)
	if len(sells) < pairs {
		pairs = len(sells)
	}
	for i := 0; i < pairs; i++ {
		profit := (sells[i].Price - buys[i].Price) * float64(sells[i].Quantity)
		switch {
		case profit > 0:
			wins++
		case profit < 0:
			losses++
		}
	}
	return wins, losses
}
