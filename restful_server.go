package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/volatiletech/null"

	"github.com/quantbox/quantbox/backtest"
	"github.com/quantbox/quantbox/database"
	btsql "github.com/quantbox/quantbox/database/repository/backtest"
	stratsql "github.com/quantbox/quantbox/database/repository/strategy"
	"github.com/quantbox/quantbox/log"
	"github.com/quantbox/quantbox/marketdata"
	"github.com/quantbox/quantbox/script/vm"
	"github.com/quantbox/quantbox/strategies"
)

// StartRESTServer starts a REST server on the configured listen address
func StartRESTServer() {
	listenAddr := platform.config.API.ListenAddress
	log.Infof(log.RESTSys, "HTTP REST server listening on %s", listenAddr)
	err := http.ListenAndServe(listenAddr, NewRouter())
	if err != nil {
		log.Errorf(log.RESTSys, "HTTP REST server failed: %v", err)
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type backtestRequest struct {
	StrategyID     int64   `json:"strategyId,omitempty"`
	StrategyCode   string  `json:"strategyCode,omitempty"`
	Symbol         string  `json:"symbol"`
	StartDate      string  `json:"startDate"`
	EndDate        string  `json:"endDate"`
	InitialCapital float64 `json:"initialCapital"`
}

type backtestResponse struct {
	*backtest.Result
	BacktestID int64 `json:"backtestId,omitempty"`
}

type strategyRequest struct {
	Name        string      `json:"name"`
	Description null.String `json:"description"`
	Code        string      `json:"code"`
}

func writeJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Errorf(log.RESTSys, "Failed to send JSON response: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string, err error) {
	resp := errorResponse{Error: msg}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSONResponse(w, status, resp)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// RESTHealth reports component status so monitoring can tell a degraded
// install from a dead one. The market data provider is actively probed.
func RESTHealth(w http.ResponseWriter, r *http.Request) {
	type component struct {
		Configured bool `json:"configured"`
		Connected  bool `json:"connected"`
	}
	type providerComponent struct {
		Name      string `json:"name"`
		Connected bool   `json:"connected"`
	}

	provider := providerComponent{Name: platform.config.MarketData.Provider}
	if err := platform.provider.Ping(r.Context()); err != nil {
		log.Warnf(log.DataMgr, "Market data provider ping failed: %v", err)
	} else {
		provider.Connected = true
	}

	writeJSONResponse(w, http.StatusOK, struct {
		Status    string            `json:"status"`
		Name      string            `json:"name"`
		Database  component         `json:"database"`
		Provider  providerComponent `json:"marketDataProvider"`
		Timestamp time.Time         `json:"timestamp"`
	}{
		Status: "ok",
		Name:   platform.config.Name,
		Database: component{
			Configured: platform.config.Database.Enabled,
			Connected:  platform.db.IsConnected(),
		},
		Provider:  provider,
		Timestamp: time.Now().UTC(),
	})
}

// RESTDatabaseInit creates the database schema when it does not already
// exist
func RESTDatabaseInit(w http.ResponseWriter, r *http.Request) {
	if !platform.db.IsConnected() {
		writeJSONError(w, http.StatusServiceUnavailable, "database not configured", nil)
		return
	}
	if err := platform.db.Setup(r.Context()); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "database initialisation failed", err)
		return
	}
	writeJSONResponse(w, http.StatusOK, struct {
		Message string   `json:"message"`
		Tables  []string `json:"tables"`
	}{"database initialised", database.Tables()})
}

// RESTRunBacktest validates a submitted run, fetches the bar history and
// replays it through the strategy script. When persistence is available
// the outcome is saved and its id returned alongside the result.
func RESTRunBacktest(w http.ResponseWriter, r *http.Request) {
	var req backtestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Symbol == "" {
		writeJSONError(w, http.StatusBadRequest, "symbol is required", nil)
		return
	}
	if req.InitialCapital <= 0 {
		writeJSONError(w, http.StatusBadRequest, "initialCapital must be positive", nil)
		return
	}
	start, err := time.Parse(marketdata.DateFormat, req.StartDate)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid startDate", err)
		return
	}
	end, err := time.Parse(marketdata.DateFormat, req.EndDate)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid endDate", err)
		return
	}
	if start.After(end) {
		writeJSONError(w, http.StatusBadRequest, "startDate must not be after endDate", nil)
		return
	}

	name := "inline"
	code := req.StrategyCode
	var strategyID null.Int64
	if req.StrategyID > 0 {
		if platform.strategies == nil {
			writeJSONError(w, http.StatusServiceUnavailable, "database not configured", nil)
			return
		}
		saved, err := platform.strategies.GetByID(r.Context(), req.StrategyID)
		if errors.Is(err, stratsql.ErrStrategyNotFound) {
			writeJSONError(w, http.StatusNotFound, "strategy not found", err)
			return
		}
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, "strategy lookup failed", err)
			return
		}
		name = saved.Name
		code = saved.Code
		strategyID = null.Int64From(saved.ID)
	}
	if code == "" {
		writeJSONError(w, http.StatusBadRequest, "strategyCode or strategyId is required", nil)
		return
	}

	bars, err := platform.provider.Fetch(r.Context(), req.Symbol, start, end)
	if errors.Is(err, marketdata.ErrNoData) {
		writeJSONError(w, http.StatusNotFound, "no market data for symbol and range", err)
		return
	}
	if err != nil {
		writeJSONError(w, http.StatusBadGateway, "market data fetch failed", err)
		return
	}
	// a range covering no trading days yields an empty slice without error
	if len(bars) == 0 {
		writeJSONError(w, http.StatusNotFound, "no market data for symbol and range", nil)
		return
	}

	result, err := backtest.Run(r.Context(), &backtest.Settings{
		Symbol:         req.Symbol,
		InitialCapital: req.InitialCapital,
		StrategyName:   name,
		StrategySource: code,
		Script:         &platform.config.Script,
	}, bars)
	if err != nil {
		var scriptErr vm.Error
		if errors.As(err, &scriptErr) {
			writeJSONError(w, http.StatusBadRequest, "strategy compilation failed", err)
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "backtest failed", err)
		return
	}

	resp := backtestResponse{Result: result}
	if platform.backtests != nil {
		id, err := platform.backtests.InsertRun(r.Context(), &btsql.Run{
			StrategyID:     strategyID,
			Symbol:         req.Symbol,
			InitialCapital: req.InitialCapital,
			StartDate:      start,
			EndDate:        end,
			FinalValue:     result.Metrics.FinalValue,
			TotalReturn:    result.Metrics.TotalReturn,
			MaxDrawdown:    result.Metrics.MaxDrawdown,
			SharpeRatio:    result.Metrics.SharpeRatio,
			TotalTrades:    result.Metrics.TotalTrades,
			WinningTrades:  result.Metrics.WinningTrades,
			LosingTrades:   result.Metrics.LosingTrades,
			Trades:         result.Trades,
		})
		if err != nil {
			// persistence is best effort; the caller still gets the result
			log.Warnf(log.DatabaseMgr, "Failed to save backtest run: %v", err)
		} else {
			resp.BacktestID = id
		}
	}
	writeJSONResponse(w, http.StatusOK, resp)
}

// RESTGetBacktest returns a saved run with its trade ledger
func RESTGetBacktest(w http.ResponseWriter, r *http.Request) {
	if platform.backtests == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "database not configured", nil)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid backtest id", err)
		return
	}
	run, err := platform.backtests.GetByID(r.Context(), id)
	if errors.Is(err, btsql.ErrRunNotFound) {
		writeJSONError(w, http.StatusNotFound, "backtest not found", err)
		return
	}
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "backtest lookup failed", err)
		return
	}
	writeJSONResponse(w, http.StatusOK, run)
}

// RESTListExampleStrategies returns the bundled example scripts
func RESTListExampleStrategies(w http.ResponseWriter, _ *http.Request) {
	writeJSONResponse(w, http.StatusOK, strategies.Examples())
}

// RESTListStrategies returns all saved strategies
func RESTListStrategies(w http.ResponseWriter, r *http.Request) {
	if platform.strategies == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "database not configured", nil)
		return
	}
	list, err := platform.strategies.List(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "strategy listing failed", err)
		return
	}
	if list == nil {
		list = []stratsql.Strategy{}
	}
	writeJSONResponse(w, http.StatusOK, list)
}

// RESTSaveStrategy saves a new strategy
func RESTSaveStrategy(w http.ResponseWriter, r *http.Request) {
	if platform.strategies == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "database not configured", nil)
		return
	}
	var req strategyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	saved, err := platform.strategies.Insert(r.Context(), req.Name, req.Description, req.Code)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "strategy save failed", err)
		return
	}
	writeJSONResponse(w, http.StatusCreated, saved)
}

// RESTGetStrategy returns a single saved strategy
func RESTGetStrategy(w http.ResponseWriter, r *http.Request) {
	if platform.strategies == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "database not configured", nil)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid strategy id", err)
		return
	}
	saved, err := platform.strategies.GetByID(r.Context(), id)
	if errors.Is(err, stratsql.ErrStrategyNotFound) {
		writeJSONError(w, http.StatusNotFound, "strategy not found", err)
		return
	}
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "strategy lookup failed", err)
		return
	}
	writeJSONResponse(w, http.StatusOK, saved)
}

// RESTUpdateStrategy replaces a saved strategy's fields
func RESTUpdateStrategy(w http.ResponseWriter, r *http.Request) {
	if platform.strategies == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "database not configured", nil)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid strategy id", err)
		return
	}
	var req strategyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	saved, err := platform.strategies.Update(r.Context(), id, req.Name, req.Description, req.Code)
	if errors.Is(err, stratsql.ErrStrategyNotFound) {
		writeJSONError(w, http.StatusNotFound, "strategy not found", err)
		return
	}
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "strategy update failed", err)
		return
	}
	writeJSONResponse(w, http.StatusOK, saved)
}

// RESTDeleteStrategy removes a saved strategy and its runs
func RESTDeleteStrategy(w http.ResponseWriter, r *http.Request) {
	if platform.strategies == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "database not configured", nil)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid strategy id", err)
		return
	}
	err = platform.strategies.Delete(r.Context(), id)
	if errors.Is(err, stratsql.ErrStrategyNotFound) {
		writeJSONError(w, http.StatusNotFound, "strategy not found", err)
		return
	}
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "strategy delete failed", err)
		return
	}
	writeJSONResponse(w, http.StatusOK, struct {
		Message string `json:"message"`
	}{"strategy deleted"})
}

// RESTListStrategyBacktests returns run summaries for one saved strategy
func RESTListStrategyBacktests(w http.ResponseWriter, r *http.Request) {
	if platform.backtests == nil || platform.strategies == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "database not configured", nil)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid strategy id", err)
		return
	}
	if _, err := platform.strategies.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, stratsql.ErrStrategyNotFound) {
			writeJSONError(w, http.StatusNotFound, "strategy not found", err)
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "strategy lookup failed", err)
		return
	}
	runs, err := platform.backtests.ListByStrategy(r.Context(), id)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "backtest listing failed", err)
		return
	}
	if runs == nil {
		runs = []btsql.Run{}
	}
	writeJSONResponse(w, http.StatusOK, runs)
}
