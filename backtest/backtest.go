// Package backtest replays one instrument's historical daily bars through a
// sandboxed strategy script, producing the trade ledger, equity curve and
// summary metrics for the run.
package backtest

import (
	"context"
	"sort"

	objects "github.com/d5/tengo/v2"

	"github.com/quantbox/quantbox/indicators"
	"github.com/quantbox/quantbox/log"
	"github.com/quantbox/quantbox/marketdata"
	"github.com/quantbox/quantbox/portfolio"
	"github.com/quantbox/quantbox/script/modules/strategy"
	"github.com/quantbox/quantbox/script/vm"
	"github.com/quantbox/quantbox/statistics"
)

// Run executes the simulation described by s over bars. Bars are processed
// strictly in date order; bar i+1 never begins before bar i's ledger
// mutations and equity point are committed. A script compile failure or an
// empty bar sequence is fatal, a per-bar invocation failure is logged and
// skipped.
func Run(ctx context.Context, s *Settings, bars []marketdata.Bar) (*Result, error) {
	if s == nil {
		return nil, ErrNoSettings
	}
	if len(bars) == 0 {
		return nil, ErrNoData
	}

	machine, err := vm.New(s.StrategyName, []byte(s.StrategySource), s.Script)
	if err != nil {
		return nil, err
	}
	if err := machine.Compile(); err != nil {
		return nil, err
	}

	ledger, err := portfolio.New(s.InitialCapital)
	if err != nil {
		return nil, err
	}

	bars = sortAndDedupe(bars)
	state := &runState{
		symbol: s.Symbol,
		ledger: ledger,
		bars:   bars,
		closes: make([]float64, 0, len(bars)),
	}

	log.Infof(log.BackTester, "Run %v: %s over %d bars with initial capital %.2f",
		machine.ID, s.Symbol, len(bars), s.InitialCapital)

	equity := make([]statistics.EquityPoint, 0, len(bars))
	history := make([]objects.Object, 0, len(bars))
	for i := range bars {
		state.index = i
		state.closes = append(state.closes, bars[i].Close)
		history = append(history, strategy.BarMap(bars[i]))

		date := bars[i].Date.Format(marketdata.DateFormat)
		strategyCtx := strategy.Context(state, s.Symbol, date, history)
		if err := machine.RunBar(ctx, strategyCtx); err != nil {
			// A failed invocation forfeits this bar's trading but never
			// aborts the run.
			log.Errorf(log.BackTester, "Run %v: strategy execution error on %s: %v",
				machine.ID, date, err)
		}

		equity = append(equity, statistics.EquityPoint{
			Date:  bars[i].Date,
			Value: ledger.Value(bars[i].Close),
		})
	}

	trades := ledger.Trades()
	result := &Result{
		RunID:       machine.ID.String(),
		Trades:      trades,
		EquityCurve: equity,
		Metrics:     statistics.Calculate(equity, trades),
	}
	log.Infof(log.BackTester, "Run %v complete: %d trades, final value %.2f",
		machine.ID, len(trades), result.Metrics.FinalValue)
	return result, nil
}

// sortAndDedupe stable-sorts a copy of the bars ascending by date and drops
// repeated calendar days, keeping the first occurrence
func sortAndDedupe(in []marketdata.Bar) []marketdata.Bar {
	bars := make([]marketdata.Bar, len(in))
	copy(bars, in)
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })

	out := bars[:0]
	for i := range bars {
		if len(out) > 0 && bars[i].Date.Equal(out[len(out)-1].Date) {
			continue
		}
		out = append(out, bars[i])
	}
	return out
}

// runState implements strategy.Controller for the bar at index; order fills
// close over that bar's closing price
type runState struct {
	symbol string
	ledger *portfolio.Portfolio
	bars   []marketdata.Bar
	closes []float64
	index  int
}

func (r *runState) Buy(symbol string, quantity int64) bool {
	if symbol != r.symbol {
		log.Warnf(log.PortfolioMgr, "BUY rejected: unknown symbol %q", symbol)
		return false
	}
	bar := r.bars[r.index]
	if _, err := r.ledger.Buy(symbol, quantity, bar.Close, bar.Date); err != nil {
		log.Warnf(log.PortfolioMgr, "BUY %d %s @ %.2f rejected: %v", quantity, symbol, bar.Close, err)
		return false
	}
	return true
}

func (r *runState) Sell(symbol string, quantity int64) bool {
	if symbol != r.symbol {
		log.Warnf(log.PortfolioMgr, "SELL rejected: unknown symbol %q", symbol)
		return false
	}
	bar := r.bars[r.index]
	if _, err := r.ledger.Sell(symbol, quantity, bar.Close, bar.Date); err != nil {
		log.Warnf(log.PortfolioMgr, "SELL %d %s @ %.2f rejected: %v", quantity, symbol, bar.Close, err)
		return false
	}
	return true
}

func (r *runState) Price(symbol string) float64 {
	if symbol != r.symbol {
		return 0
	}
	return r.bars[r.index].Close
}

func (r *runState) Position(symbol string) int64 {
	return r.ledger.Position(symbol).Quantity
}

func (r *runState) SMA(symbol string, period int) float64 {
	if symbol != r.symbol {
		return 0
	}
	return indicators.SimpleMovingAverage(r.closes, period)
}

func (r *runState) EMA(symbol string, period int) float64 {
	if symbol != r.symbol {
		return 0
	}
	return indicators.ExponentialMovingAverage(r.closes, period)
}

func (r *runState) RSI(symbol string, period int) float64 {
	if symbol != r.symbol {
		return 0
	}
	return indicators.RelativeStrengthIndex(r.closes, period)
}

func (r *runState) Cash() float64 {
	return r.ledger.Cash()
}
