package backtest

import (
	"errors"

	"github.com/quantbox/quantbox/portfolio"
	"github.com/quantbox/quantbox/script/vm"
	"github.com/quantbox/quantbox/statistics"
)

var (
	// ErrNoSettings is returned when a run is started without settings
	ErrNoSettings = errors.New("backtest settings are nil")
	// ErrNoData is returned when a run is started with an empty bar
	// sequence; an empty run is a caller precondition failure, not a
	// zero-trade result
	ErrNoData = errors.New("no market bars supplied")
)

// Settings configures a single simulation run
type Settings struct {
	Symbol         string
	InitialCapital float64
	StrategyName   string
	StrategySource string
	Script         *vm.Config
}

// Result is the serializable outcome of one run; it carries no engine
// internals
type Result struct {
	RunID       string                   `json:"runId"`
	Trades      []portfolio.Trade        `json:"trades"`
	EquityCurve []statistics.EquityPoint `json:"equityCurve"`
	Metrics     statistics.Metrics       `json:"metrics"`
}
