package statistics

import "time"

// tradingDaysPerYear annualizes daily returns for the Sharpe ratio
const tradingDaysPerYear = 252

// EquityPoint is the total portfolio value at one bar's close
type EquityPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Metrics summarizes a finished run, recomputed fresh from the equity curve
// and trade log
type Metrics struct {
	FinalValue    float64 `json:"finalValue"`
	TotalReturn   float64 `json:"totalReturn"`
	MaxDrawdown   float64 `json:"maxDrawdown"`
	SharpeRatio   float64 `json:"sharpeRatio"`
	TotalTrades   int     `json:"totalTrades"`
	WinningTrades int     `json:"winningTrades"`
	LosingTrades  int     `json:"losingTrades"`
}
