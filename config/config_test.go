package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantbox/quantbox/database"
	"github.com/quantbox/quantbox/script/vm"
)

func TestGetConfigDefaults(t *testing.T) {
	c := GetConfig()
	assert.Equal(t, DefaultName, c.Name)
	assert.Equal(t, DefaultListenAddress, c.API.ListenAddress)
	assert.Equal(t, ProviderSynthetic, c.MarketData.Provider)
	assert.Equal(t, DefaultCacheDuration, c.MarketData.CacheDuration)
	assert.Equal(t, vm.DefaultTimeout, c.Script.Timeout)
}

func TestCheckConfig(t *testing.T) {
	c := &Config{MarketData: MarketDataConfig{Provider: "bloomberg"}}
	assert.ErrorIs(t, c.CheckConfig(), errUnknownProvider)

	// a configured key flips the default provider to the live one
	c = &Config{MarketData: MarketDataConfig{APIKey: "demo"}}
	require.NoError(t, c.CheckConfig())
	assert.Equal(t, ProviderAlphaVantage, c.MarketData.Provider)
}

func TestLoadConfigMissingFile(t *testing.T) {
	c := &Config{}
	require.NoError(t, c.LoadConfig(filepath.Join(t.TempDir(), "missing.json")))
	assert.Equal(t, DefaultName, c.Name)
	assert.True(t, c.API.Enabled)
}

func TestLoadConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	saved := GetConfig()
	saved.Name = "quantbox-test"
	saved.MarketData.Provider = ProviderAlphaVantage
	saved.MarketData.APIKey = "demo"
	saved.MarketData.CacheDuration = time.Minute
	require.NoError(t, saved.SaveConfig(path))

	loaded := &Config{}
	require.NoError(t, loaded.LoadConfig(path))
	assert.Equal(t, "quantbox-test", loaded.Name)
	assert.Equal(t, ProviderAlphaVantage, loaded.MarketData.Provider)
	assert.Equal(t, time.Minute, loaded.MarketData.CacheDuration)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv(EnvAPIKey, "live-key")
	t.Setenv(EnvDatabaseURL, "postgres://qb:qb@localhost/quantbox")

	c := &Config{}
	require.NoError(t, c.LoadConfig(filepath.Join(t.TempDir(), "missing.json")))
	assert.Equal(t, "live-key", c.MarketData.APIKey)
	assert.Equal(t, ProviderAlphaVantage, c.MarketData.Provider)
	assert.True(t, c.Database.Enabled)
	assert.Equal(t, database.DBPostgres, c.Database.Driver)
	assert.Equal(t, "postgres://qb:qb@localhost/quantbox", c.Database.DSN)
}

func TestLoadConfigBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o644))
	assert.Error(t, (&Config{}).LoadConfig(path))
}
