package main

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"
)

var backtestCommand = &cli.Command{
	Name:  "backtest",
	Usage: "run and inspect backtests",
	Subcommands: []*cli.Command{
		{
			Name:      "run",
			Usage:     "run a strategy script over a symbol's history",
			ArgsUsage: "<symbol>",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "script", Usage: "path to a strategy script file"},
				&cli.Int64Flag{Name: "strategy", Usage: "id of a saved strategy to run instead of a file"},
				&cli.StringFlag{Name: "start", Usage: "first bar date (YYYY-MM-DD)", Required: true},
				&cli.StringFlag{Name: "end", Usage: "last bar date (YYYY-MM-DD)", Required: true},
				&cli.Float64Flag{Name: "capital", Value: 10000, Usage: "starting cash"},
			},
			Action: backtestRun,
		},
		{
			Name:      "get",
			Usage:     "fetch a saved backtest run with its trades",
			ArgsUsage: "<id>",
			Action: func(c *cli.Context) error {
				id, err := argID(c)
				if err != nil {
					return err
				}
				return apiCall(http.MethodGet, "/backtest/"+strconv.FormatInt(id, 10), nil)
			},
		},
	},
}

func backtestRun(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("a single symbol argument is required")
	}

	req := map[string]interface{}{
		"symbol":         c.Args().First(),
		"startDate":      c.String("start"),
		"endDate":        c.String("end"),
		"initialCapital": c.Float64("capital"),
	}
	switch {
	case c.Int64("strategy") > 0:
		req["strategyId"] = c.Int64("strategy")
	case c.String("script") != "":
		code, err := os.ReadFile(c.String("script"))
		if err != nil {
			return err
		}
		req["strategyCode"] = string(code)
	default:
		return errors.New("either --script or --strategy is required")
	}
	return apiCall(http.MethodPost, "/backtest", req)
}

func argID(c *cli.Context) (int64, error) {
	if c.NArg() != 1 {
		return 0, errors.New("a single id argument is required")
	}
	return strconv.ParseInt(c.Args().First(), 10, 64)
}
