package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/quantbox/quantbox/config"
	"github.com/quantbox/quantbox/database"
	btsql "github.com/quantbox/quantbox/database/repository/backtest"
	stratsql "github.com/quantbox/quantbox/database/repository/strategy"
	"github.com/quantbox/quantbox/log"
	"github.com/quantbox/quantbox/marketdata"
)

const banner = `
   ____                    __   ____
  / __ \ __  __ ____ _ ___/ /_ / __ ) ____  _  __
 / / / // / / // __  // __  __// __  |/ __ \| |/_/
/ /_/ // /_/ // /_/ // / / /_ / /_/ // /_/ />  <
\___\_\\__,_/ \__,_//_/  \__//_____/ \____/_/|_|
`

// Platform contains configuration, the market data provider and the
// optional persistence layer, and is the overarching type across this
// code base
type Platform struct {
	config     *config.Config
	configFile string
	provider   marketdata.Provider
	db         *database.Instance
	strategies *stratsql.Repository
	backtests  *btsql.Repository
}

var platform Platform

func main() {
	configFile := flag.String("config", config.DefaultFileName, "config file to load")
	verbose := flag.Bool("verbose", false, "increase logging verbosity to debug")
	flag.Parse()

	fmt.Print(banner)

	cfg := &config.Config{}
	if err := cfg.LoadConfig(*configFile); err != nil {
		fmt.Printf("Unable to load config: %v\n", err)
		os.Exit(1)
	}
	if *verbose {
		cfg.Logging.Level = "DEBUG|INFO|WARN|ERROR"
	}
	log.SetupGlobalLogger(&cfg.Logging)
	log.Infof(log.Global, "Loaded %s configuration from %s", cfg.Name, *configFile)

	platform.config = cfg
	platform.configFile = *configFile
	platform.provider = newProvider(&cfg.MarketData)

	if cfg.Database.Enabled {
		connectDatabase(&cfg.Database)
	} else {
		log.Infoln(log.DatabaseMgr, "Persistence disabled, results will not be saved")
	}

	if cfg.API.Enabled {
		go StartRESTServer()
	} else {
		log.Warnln(log.RESTSys, "REST server disabled, nothing to serve")
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, syscall.SIGTERM, os.Interrupt)
	sig := <-interrupt
	log.Infof(log.Global, "Captured %v, shutting down", sig)

	if platform.db.IsConnected() {
		if err := platform.db.CloseConnection(); err != nil {
			log.Errorf(log.DatabaseMgr, "Unable to close database: %v", err)
		}
	}
	log.Infoln(log.Global, "Exiting")
}

// newProvider selects the bar source; with no API key the platform still
// works end to end on generated data
func newProvider(c *config.MarketDataConfig) marketdata.Provider {
	if c.Provider == config.ProviderAlphaVantage {
		av := marketdata.NewAlphaVantage(c.APIKey)
		if c.APIURL != "" {
			av.APIURL = c.APIURL
		}
		av.Verbose = c.Verbose
		log.Infof(log.DataMgr, "Using Alpha Vantage market data, cached for %v", c.CacheDuration)
		return marketdata.NewCachedProvider(av, c.CacheDuration)
	}
	log.Warnln(log.DataMgr, "No market data API key configured, using synthetic data")
	return &marketdata.Synthetic{}
}

// connectDatabase attaches persistence; failure downgrades the platform
// rather than stopping it
func connectDatabase(c *database.Config) {
	db, err := database.Connect(c)
	if err != nil {
		log.Warnf(log.DatabaseMgr, "Database unavailable, persistence disabled: %v", err)
		return
	}
	platform.db = db
	platform.strategies, err = stratsql.NewRepository(db)
	if err != nil {
		log.Errorf(log.DatabaseMgr, "Unable to create strategy repository: %v", err)
		return
	}
	platform.backtests, err = btsql.NewRepository(db)
	if err != nil {
		log.Errorf(log.DatabaseMgr, "Unable to create backtest repository: %v", err)
	}
}
