package main

import (
	"net/http"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"
)

var strategiesCommand = &cli.Command{
	Name:  "strategies",
	Usage: "manage saved strategy scripts",
	Subcommands: []*cli.Command{
		{
			Name:   "list",
			Usage:  "list saved strategies",
			Action: func(_ *cli.Context) error { return apiCall(http.MethodGet, "/strategies", nil) },
		},
		{
			Name:   "examples",
			Usage:  "list the bundled example strategies",
			Action: func(_ *cli.Context) error { return apiCall(http.MethodGet, "/strategies/examples", nil) },
		},
		{
			Name:      "get",
			Usage:     "fetch one saved strategy",
			ArgsUsage: "<id>",
			Action: func(c *cli.Context) error {
				id, err := argID(c)
				if err != nil {
					return err
				}
				return apiCall(http.MethodGet, "/strategies/"+strconv.FormatInt(id, 10), nil)
			},
		},
		{
			Name:  "save",
			Usage: "save a new strategy from a script file",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "name", Required: true, Usage: "strategy name"},
				&cli.StringFlag{Name: "script", Required: true, Usage: "path to the script file"},
				&cli.StringFlag{Name: "description", Usage: "optional description"},
			},
			Action: func(c *cli.Context) error {
				return saveStrategy(c, http.MethodPost, "/strategies")
			},
		},
		{
			Name:      "update",
			Usage:     "replace a saved strategy from a script file",
			ArgsUsage: "<id>",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "name", Required: true, Usage: "strategy name"},
				&cli.StringFlag{Name: "script", Required: true, Usage: "path to the script file"},
				&cli.StringFlag{Name: "description", Usage: "optional description"},
			},
			Action: func(c *cli.Context) error {
				id, err := argID(c)
				if err != nil {
					return err
				}
				return saveStrategy(c, http.MethodPut, "/strategies/"+strconv.FormatInt(id, 10))
			},
		},
		{
			Name:      "delete",
			Usage:     "delete a saved strategy and its runs",
			ArgsUsage: "<id>",
			Action: func(c *cli.Context) error {
				id, err := argID(c)
				if err != nil {
					return err
				}
				return apiCall(http.MethodDelete, "/strategies/"+strconv.FormatInt(id, 10), nil)
			},
		},
		{
			Name:      "runs",
			Usage:     "list saved backtest runs for one strategy",
			ArgsUsage: "<id>",
			Action: func(c *cli.Context) error {
				id, err := argID(c)
				if err != nil {
					return err
				}
				return apiCall(http.MethodGet, "/strategies/"+strconv.FormatInt(id, 10)+"/backtests", nil)
			},
		},
	},
}

func saveStrategy(c *cli.Context, method, path string) error {
	code, err := os.ReadFile(c.String("script"))
	if err != nil {
		return err
	}
	req := map[string]interface{}{
		"name": c.String("name"),
		"code": string(code),
	}
	if c.String("description") != "" {
		req["description"] = c.String("description")
	}
	return apiCall(method, path, req)
}
