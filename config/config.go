// Package config loads, validates and saves the platform's JSON
// configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/quantbox/quantbox/database"
	"github.com/quantbox/quantbox/log"
	"github.com/quantbox/quantbox/script/vm"
)

// Environment variable overrides applied after the file is read
const (
	EnvAPIKey      = "ALPHA_VANTAGE_API_KEY"
	EnvDatabaseURL = "DATABASE_URL"
)

// GetConfig returns a configuration populated with defaults
func GetConfig() *Config {
	cfg := &Config{}
	cfg.CheckConfig()
	return cfg
}

// LoadConfig reads the file at path, applies defaults for unset fields,
// then applies environment overrides. A missing file is not an error;
// defaults are returned so a fresh install runs without any setup.
func (c *Config) LoadConfig(path string) error {
	if c == nil {
		return errNilConfig
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("unable to read config %s: %w", path, err)
		}
		// fresh install serves the API without any setup
		c.API.Enabled = true
	} else if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("unable to parse config %s: %w", path, err)
	}

	if key := os.Getenv(EnvAPIKey); key != "" {
		log.Debugf(log.ConfigMgr, "Applying %s override", EnvAPIKey)
		c.MarketData.APIKey = key
		if c.MarketData.Provider == "" {
			c.MarketData.Provider = ProviderAlphaVantage
		}
	}
	if dsn := os.Getenv(EnvDatabaseURL); dsn != "" {
		log.Debugf(log.ConfigMgr, "Applying %s override", EnvDatabaseURL)
		c.Database = database.Config{
			Enabled: true,
			Driver:  database.DBPostgres,
			DSN:     dsn,
		}
	}

	return c.CheckConfig()
}

// CheckConfig fills unset fields with defaults and validates the rest
func (c *Config) CheckConfig() error {
	if c.Name == "" {
		c.Name = DefaultName
	}
	if c.API.ListenAddress == "" {
		c.API.ListenAddress = DefaultListenAddress
	}
	switch c.MarketData.Provider {
	case "":
		// no API key configured means nothing external to call
		c.MarketData.Provider = ProviderSynthetic
		if c.MarketData.APIKey != "" {
			c.MarketData.Provider = ProviderAlphaVantage
		}
	case ProviderAlphaVantage, ProviderSynthetic:
	default:
		return fmt.Errorf("%w: %s", errUnknownProvider, c.MarketData.Provider)
	}
	if c.MarketData.CacheDuration <= 0 {
		c.MarketData.CacheDuration = DefaultCacheDuration
	}
	if c.Script.Timeout <= 0 {
		c.Script.Timeout = vm.DefaultTimeout
	}
	return nil
}

// SaveConfig writes the configuration to path as indented JSON
func (c *Config) SaveConfig(path string) error {
	if c == nil {
		return errNilConfig
	}
	data, err := json.MarshalIndent(c, "", " ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
