package backtest

import (
	"errors"
	"time"

	"github.com/volatiletech/null"

	"github.com/quantbox/quantbox/database"
	"github.com/quantbox/quantbox/portfolio"
)

var (
	// ErrRunNotFound is returned when the requested backtest id does not
	// exist
	ErrRunNotFound = errors.New("backtest run not found")

	errNilRun = errors.New("backtest run is nil")
)

// Run is one persisted backtest outcome. StrategyID is null for ad-hoc
// runs submitted with inline script code.
type Run struct {
	ID             int64             `json:"id"`
	StrategyID     null.Int64        `json:"strategyId"`
	Symbol         string            `json:"symbol"`
	InitialCapital float64           `json:"initialCapital"`
	StartDate      time.Time         `json:"startDate"`
	EndDate        time.Time         `json:"endDate"`
	FinalValue     float64           `json:"finalValue"`
	TotalReturn    float64           `json:"totalReturn"`
	MaxDrawdown    float64           `json:"maxDrawdown"`
	SharpeRatio    float64           `json:"sharpeRatio"`
	TotalTrades    int               `json:"totalTrades"`
	WinningTrades  int               `json:"winningTrades"`
	LosingTrades   int               `json:"losingTrades"`
	CreatedAt      time.Time         `json:"createdAt"`
	Trades         []portfolio.Trade `json:"trades,omitempty"`
}

// Repository persists finished backtest runs and their trade ledgers
type Repository struct {
	db *database.Instance
}
