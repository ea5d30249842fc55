package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/quantbox/quantbox/log"
)

const (
	alphaVantageAPIURL         = "https://www.alphavantage.co/query"
	alphaVantageDefaultTimeout = time.Second * 15
)

// AlphaVantage fetches daily time series data from the Alpha Vantage REST API
type AlphaVantage struct {
	APIKey  string
	APIURL  string
	Verbose bool
	client  *http.Client
}

type timeSeriesEntry struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

type timeSeriesDailyResponse struct {
	ErrorMessage string                     `json:"Error Message"`
	Note         string                     `json:"Note"`
	Information  string                     `json:"Information"`
	TimeSeries   map[string]timeSeriesEntry `json:"Time Series (Daily)"`
}

// NewAlphaVantage returns an Alpha Vantage provider using the supplied API key
func NewAlphaVantage(apiKey string) *AlphaVantage {
	return &AlphaVantage{
		APIKey: apiKey,
		APIURL: alphaVantageAPIURL,
		client: &http.Client{Timeout: alphaVantageDefaultTimeout},
	}
}

// Fetch retrieves the full daily series for symbol and filters it to the
// inclusive [start, end] range, sorted ascending by date
func (a *AlphaVantage) Fetch(ctx context.Context, symbol string, start, end time.Time) ([]Bar, error) {
	if a.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	vals := url.Values{}
	vals.Set("function", "TIME_SERIES_DAILY")
	vals.Set("symbol", symbol)
	vals.Set("outputsize", "full")
	vals.Set("apikey", a.APIKey)

	if a.Verbose {
		log.Debugf(log.DataMgr, "Fetching daily series for %s from Alpha Vantage", symbol)
	}

	var resp timeSeriesDailyResponse
	if err := a.sendHTTPGetRequest(ctx, vals, &resp); err != nil {
		return nil, err
	}
	if err := checkProviderResponse(resp.ErrorMessage, resp.Note, resp.Information); err != nil {
		return nil, err
	}
	if len(resp.TimeSeries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoData, symbol)
	}

	bars := make([]Bar, 0, len(resp.TimeSeries))
	for dateStr, entry := range resp.TimeSeries {
		date, err := time.Parse(DateFormat, dateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid series date %q: %w", dateStr, err)
		}
		if date.Before(start) || date.After(end) {
			continue
		}
		bar, err := entry.toBar(symbol, date)
		if err != nil {
			return nil, err
		}
		bars = append(bars, bar)
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })

	if a.Verbose {
		log.Debugf(log.DataMgr, "Fetched %d days of data for %s", len(bars), symbol)
	}
	return bars, nil
}

// Ping issues a lightweight quote request to verify connectivity and
// credentials
func (a *AlphaVantage) Ping(ctx context.Context) error {
	if a.APIKey == "" {
		return ErrNoAPIKey
	}

	vals := url.Values{}
	vals.Set("function", "GLOBAL_QUOTE")
	vals.Set("symbol", "AAPL")
	vals.Set("apikey", a.APIKey)

	var resp struct {
		ErrorMessage string `json:"Error Message"`
		Note         string `json:"Note"`
		Information  string `json:"Information"`
	}
	if err := a.sendHTTPGetRequest(ctx, vals, &resp); err != nil {
		return err
	}
	return checkProviderResponse(resp.ErrorMessage, resp.Note, resp.Information)
}

func (a *AlphaVantage) sendHTTPGetRequest(ctx context.Context, vals url.Values, result interface{}) error {
	endpoint := a.APIURL
	if endpoint == "" {
		endpoint = alphaVantageAPIURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+vals.Encode(), nil)
	if err != nil {
		return err
	}
	httpResp, err := a.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s", errBadStatus, httpResp.Status)
	}
	return json.NewDecoder(httpResp.Body).Decode(result)
}

func (a *AlphaVantage) httpClient() *http.Client {
	if a.client == nil {
		a.client = &http.Client{Timeout: alphaVantageDefaultTimeout}
	}
	return a.client
}

// checkProviderResponse maps the error envelopes Alpha Vantage embeds in a 200
// response to errors
func checkProviderResponse(errMsg, note, information string) error {
	switch {
	case errMsg != "":
		return fmt.Errorf("%w: %s", errProviderMessage, errMsg)
	case note != "":
		return errRateLimited
	case information != "":
		return fmt.Errorf("%w: %s", errProviderMessage, information)
	}
	return nil
}

func (t *timeSeriesEntry) toBar(symbol string, date time.Time) (Bar, error) {
	open, err := strconv.ParseFloat(t.Open, 64)
	if err != nil {
		return Bar{}, err
	}
	high, err := strconv.ParseFloat(t.High, 64)
	if err != nil {
		return Bar{}, err
	}
	low, err := strconv.ParseFloat(t.Low, 64)
	if err != nil {
		return Bar{}, err
	}
	closePrice, err := strconv.ParseFloat(t.Close, 64)
	if err != nil {
		return Bar{}, err
	}
	volume, err := strconv.ParseInt(t.Volume, 10, 64)
	if err != nil {
		return Bar{}, err
	}
	return Bar{
		Symbol: symbol,
		Date:   date,
		Open:   open,
		High:   high,
		Low:    low,
		Close:  closePrice,
		Volume: volume,
	}, nil
}
