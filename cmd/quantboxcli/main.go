package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v2"
)

var (
	host    string
	timeout time.Duration
)

const defaultTimeout = 30 * time.Second

func main() {
	app := cli.NewApp()
	app.Name = "quantboxcli"
	app.Version = "1.0.0"
	app.Usage = "command line interface for a running quantbox instance"
	app.EnableBashCompletion = true
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:        "host",
			Value:       "localhost:9050",
			Usage:       "REST address of the running instance",
			Destination: &host,
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Value:       defaultTimeout,
			Usage:       "request timeout",
			Destination: &timeout,
		},
	}
	app.Commands = []*cli.Command{
		backtestCommand,
		strategiesCommand,
		healthCommand,
		dbInitCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// apiCall issues one REST request against the configured host and prints
// the JSON response re-indented
func apiCall(method, path string, body interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequest(method, "http://"+host+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	var indented bytes.Buffer
	if err := json.Indent(&indented, payload, "", " "); err != nil {
		// not JSON, print as-is
		fmt.Println(string(payload))
	} else {
		fmt.Println(indented.String())
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("request failed: %s", resp.Status)
	}
	return nil
}

var healthCommand = &cli.Command{
	Name:   "health",
	Usage:  "report the instance's component status",
	Action: func(_ *cli.Context) error { return apiCall(http.MethodGet, "/health", nil) },
}

var dbInitCommand = &cli.Command{
	Name:   "dbinit",
	Usage:  "create the database schema on the running instance",
	Action: func(_ *cli.Context) error { return apiCall(http.MethodGet, "/db/init", nil) },
}
