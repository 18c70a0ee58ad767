package data

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/contactkeval/option-screener/internal/logger"
)

// alphaVantageProvider implements PriceProvider against the Alpha Vantage
// TIME_SERIES_DAILY_ADJUSTED endpoint.
type alphaVantageProvider struct {
	// APIKey used for authenticating requests with Alpha Vantage.
	APIKey string

	// Client is the HTTP client used to make API requests.
	Client *http.Client

	// BaseURL is the root endpoint (e.g. https://www.alphavantage.co).
	BaseURL string

	// secondary is an optional fallback provider.
	secondary PriceProvider
}

// NewAlphaVantageProvider constructs an Alpha Vantage-backed price
// provider with a tuned HTTP client.
func NewAlphaVantageProvider(apiKey string) *alphaVantageProvider {
	logger.Infof("initializing Alpha Vantage price provider")

	return &alphaVantageProvider{
		APIKey: apiKey,
		Client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: 30 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
				ForceAttemptHTTP2:     true,
				MaxIdleConns:          100,
				IdleConnTimeout:       90 * time.Second,
			},
		},
		BaseURL: "https://www.alphavantage.co",
	}
}

// WithSecondary sets a fallback provider and returns the receiver.
func (avProv *alphaVantageProvider) WithSecondary(p PriceProvider) *alphaVantageProvider {
	avProv.secondary = p
	return avProv
}

// Secondary returns the configured fallback provider, if any.
func (avProv *alphaVantageProvider) Secondary() PriceProvider {
	return avProv.secondary
}

// avDailyResp models the TIME_SERIES_DAILY_ADJUSTED payload. Alpha Vantage
// keys every field with a numbered label; only the adjusted close is used.
// Throttle messages arrive as a 200 response with a Note and no series.
type avDailyResp struct {
	TimeSeries map[string]struct {
		AdjClose string `json:"5. adjusted close"`
	} `json:"Time Series (Daily)"`
	Note         string `json:"Note"`
	ErrorMessage string `json:"Error Message"`
}

// GetDailyCloses fetches the compact (~100 trading day) adjusted daily
// close window for symbol.
func (avProv *alphaVantageProvider) GetDailyCloses(symbol string) (PriceSeries, error) {
	series, err := avProv.fetchDailyCloses(symbol)
	if err != nil {
		if avProv.secondary != nil {
			logger.Debugf("delegating %s to secondary price provider: %v", symbol, err)
			return avProv.secondary.GetDailyCloses(symbol)
		}
		return nil, err
	}
	return series, nil
}

func (avProv *alphaVantageProvider) fetchDailyCloses(symbol string) (PriceSeries, error) {
	u, err := url.Parse(avProv.BaseURL + "/query")
	if err != nil {
		return nil, err
	}

	query := u.Query()
	query.Set("function", "TIME_SERIES_DAILY_ADJUSTED")
	query.Set("symbol", symbol)
	query.Set("outputsize", "compact")
	query.Set("apikey", avProv.APIKey)
	u.RawQuery = query.Encode()

	logger.Tracef("daily closes request: %s", symbol)

	req, err := http.NewRequest("GET", u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := avProv.processGetRequest(req)
	if err != nil {
		return nil, fmt.Errorf("alpha vantage %s: %w: %v", symbol, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("alpha vantage %s: %w: %v", symbol, ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		logger.Errorf("alpha vantage API error status=%d symbol=%s", resp.StatusCode, symbol)
		return nil, fmt.Errorf("alpha vantage %s: status %d: %w", symbol, resp.StatusCode, ErrUnavailable)
	}

	var avResp avDailyResp
	if err := json.Unmarshal(body, &avResp); err != nil {
		return nil, fmt.Errorf("alpha vantage %s: decode: %w", symbol, ErrUnavailable)
	}

	if len(avResp.TimeSeries) == 0 {
		// unknown symbol, exhausted quota, or an otherwise empty payload
		logger.Debugf("no daily series for %s (note=%q error=%q)", symbol, avResp.Note, avResp.ErrorMessage)
		return nil, fmt.Errorf("alpha vantage %s: empty series: %w", symbol, ErrUnavailable)
	}

	out := make(PriceSeries, 0, len(avResp.TimeSeries))
	for day, fields := range avResp.TimeSeries {
		dt, err := time.Parse("2006-01-02", day)
		if err != nil {
			continue // skip malformed dates
		}
		close, err := strconv.ParseFloat(fields.AdjClose, 64)
		if err != nil {
			continue
		}
		out = append(out, ClosePoint{Date: dt, Close: close})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("alpha vantage %s: no parseable closes: %w", symbol, ErrUnavailable)
	}

	out = normalize(out)
	logger.Tracef("%s: %d closes, latest %.2f on %s",
		symbol, len(out), out.Spot(), out[len(out)-1].Date.Format("2006-01-02"))
	return out, nil
}

// processGetRequest performs the request, sleeping through per-minute rate
// limits (429) until the next minute boundary before retrying.
func (avProv *alphaVantageProvider) processGetRequest(req *http.Request) (*http.Response, error) {
	for {
		resp, err := avProv.Client.Do(req)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}
		resp.Body.Close()

		now := time.Now()
		sleepDuration := time.Until(now.Truncate(time.Minute).Add(time.Minute))
		logger.Infof("rate limit hit, sleeping for %s", sleepDuration)
		time.Sleep(sleepDuration)
	}
}
