package marketdata

import (
	"context"
	"errors"
	"time"
)

// DateFormat is the calendar-day format used across the platform
const DateFormat = "2006-01-02"

var (
	// ErrNoData is returned when a provider has no bars for the requested
	// symbol and range
	ErrNoData = errors.New("no market data for requested range")
	// ErrNoAPIKey is returned when a remote provider is used without
	// credentials configured
	ErrNoAPIKey = errors.New("market data API key is not configured")

	errRateLimited     = errors.New("market data provider rate limit reached")
	errProviderMessage = errors.New("market data provider returned an error")
	errBadStatus       = errors.New("unexpected HTTP status")
)

// Bar is one day's OHLCV record for a symbol
type Bar struct {
	Symbol string    `json:"symbol"`
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// Provider supplies historical daily bars for a single symbol
type Provider interface {
	Fetch(ctx context.Context, symbol string, start, end time.Time) ([]Bar, error)
	Ping(ctx context.Context) error
}
