package main

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Route holds one registered REST endpoint
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc http.HandlerFunc
}

// Routes is an array of all the registered routes
type Routes []Route

// "/strategies/examples" must precede "/strategies/{id}" so the literal
// path wins the match
var routes = Routes{
	{"Health", http.MethodGet, "/health", RESTHealth},
	{"DatabaseInit", http.MethodGet, "/db/init", RESTDatabaseInit},
	{"RunBacktest", http.MethodPost, "/backtest", RESTRunBacktest},
	{"GetBacktest", http.MethodGet, "/backtest/{id}", RESTGetBacktest},
	{"ListExampleStrategies", http.MethodGet, "/strategies/examples", RESTListExampleStrategies},
	{"ListStrategies", http.MethodGet, "/strategies", RESTListStrategies},
	{"SaveStrategy", http.MethodPost, "/strategies", RESTSaveStrategy},
	{"GetStrategy", http.MethodGet, "/strategies/{id}", RESTGetStrategy},
	{"UpdateStrategy", http.MethodPut, "/strategies/{id}", RESTUpdateStrategy},
	{"DeleteStrategy", http.MethodDelete, "/strategies/{id}", RESTDeleteStrategy},
	{"ListStrategyBacktests", http.MethodGet, "/strategies/{id}/backtests", RESTListStrategyBacktests},
}

// NewRouter returns a multiplexor with every registered route attached
func NewRouter() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	for _, route := range routes {
		router.
			Methods(route.Method).
			Path(route.Pattern).
			Name(route.Name).
			Handler(route.HandlerFunc)
	}
	return router
}
