package config

import (
	"errors"
	"time"

	"github.com/quantbox/quantbox/database"
	"github.com/quantbox/quantbox/log"
	"github.com/quantbox/quantbox/script/vm"
)

// Market data provider names accepted in MarketDataConfig.Provider
const (
	ProviderAlphaVantage = "alphavantage"
	ProviderSynthetic    = "synthetic"
)

// Defaults applied by CheckConfig for unset fields
const (
	DefaultName          = "quantbox"
	DefaultListenAddress = "localhost:9050"
	DefaultCacheDuration = 24 * time.Hour
	DefaultFileName      = "config.json"
)

var (
	errNilConfig       = errors.New("config is nil")
	errUnknownProvider = errors.New("unknown market data provider")
)

// APIConfig holds the REST server settings
type APIConfig struct {
	Enabled       bool   `json:"enabled"`
	ListenAddress string `json:"listenAddress"`
}

// MarketDataConfig selects and configures the bar provider
type MarketDataConfig struct {
	Provider      string        `json:"provider"`
	APIKey        string        `json:"apiKey"`
	APIURL        string        `json:"apiUrl,omitempty"`
	CacheDuration time.Duration `json:"cacheDuration"`
	Verbose       bool          `json:"verbose"`
}

// Config holds all user configurable settings
type Config struct {
	Name       string           `json:"name"`
	Logging    log.Config       `json:"logging"`
	API        APIConfig        `json:"api"`
	Database   database.Config  `json:"database"`
	MarketData MarketDataConfig `json:"marketData"`
	Script     vm.Config        `json:"script"`
}
