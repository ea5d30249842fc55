package portfolio

import (
	"errors"
	"time"
)

// Side designates the direction of a filled trade
type Side string

// Trade sides
const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

var (
	// ErrInitialCapitalInvalid is returned when a portfolio is created
	// without positive starting cash
	ErrInitialCapitalInvalid = errors.New("initial capital must be positive")
	// ErrInvalidQuantity is returned when an order quantity is not a
	// positive whole number of shares
	ErrInvalidQuantity = errors.New("order quantity must be a positive integer")
	// ErrInvalidPrice is returned when a fill price is not positive
	ErrInvalidPrice = errors.New("fill price must be positive")
	// ErrInsufficientFunds is returned when a buy exceeds available cash
	ErrInsufficientFunds = errors.New("insufficient funds for purchase")
	// ErrInsufficientHoldings is returned when a sell exceeds the held
	// quantity
	ErrInsufficientHoldings = errors.New("insufficient position to sell")
)

// Position tracks an open holding for one symbol
type Position struct {
	Quantity    int64   `json:"quantity"`
	AverageCost float64 `json:"averageCost"`
}

// Trade is one executed fill, append-only once recorded
type Trade struct {
	SequenceID     int64     `json:"id"`
	Date           time.Time `json:"date"`
	Symbol         string    `json:"symbol"`
	Side           Side      `json:"action"`
	Quantity       int64     `json:"quantity"`
	Price          float64   `json:"price"`
	Total          float64   `json:"total"`
	PortfolioValue float64   `json:"portfolioValue"`
}

// Portfolio is the cash and holdings ledger for a single simulation run.
// It is exclusively owned by that run and is only mutated through Buy and
// Sell.
type Portfolio struct {
	cash      float64
	positions map[string]Position
	trades    []Trade
}
