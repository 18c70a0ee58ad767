package data

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/contactkeval/option-screener/internal/logger"
)

// rateSeriesID is the FRED series used for the short-term risk-free rate:
// 1-month Treasury constant maturity, published as a percentage.
const rateSeriesID = "DGS1MO"

// fredRateProvider implements RateProvider against the FRED observations
// API.
type fredRateProvider struct {
	APIKey  string
	Client  *http.Client
	BaseURL string
}

// NewFREDRateProvider constructs a FRED-backed rate provider.
func NewFREDRateProvider(apiKey string) *fredRateProvider {
	return &fredRateProvider{
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 30 * time.Second},
		BaseURL: "https://api.stlouisfed.org",
	}
}

// fredObsResp models the observations payload. Values are strings; FRED
// publishes "." for days with no observation.
type fredObsResp struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

// RiskFreeRate returns the latest numeric DGS1MO observation as a decimal
// fraction.
func (fredProv *fredRateProvider) RiskFreeRate() (float64, error) {
	u, err := url.Parse(fredProv.BaseURL + "/fred/series/observations")
	if err != nil {
		return 0, err
	}

	query := u.Query()
	query.Set("series_id", rateSeriesID)
	query.Set("api_key", fredProv.APIKey)
	query.Set("file_type", "json")
	u.RawQuery = query.Encode()

	resp, err := fredProv.Client.Get(u.String())
	if err != nil {
		return 0, fmt.Errorf("fred: %w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Errorf("fred API error status=%d", resp.StatusCode)
		return 0, fmt.Errorf("fred: status %d: %w", resp.StatusCode, ErrUnavailable)
	}

	var body fredObsResp
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("fred: decode: %w", ErrUnavailable)
	}

	// walk backwards to the latest numeric observation
	for i := len(body.Observations) - 1; i >= 0; i-- {
		obs := body.Observations[i]
		if obs.Value == "." {
			continue
		}
		pct, err := strconv.ParseFloat(obs.Value, 64)
		if err != nil {
			continue
		}
		rate := pct / 100 // percent to decimal fraction
		logger.Debugf("risk-free rate %s = %.4f (as of %s)", rateSeriesID, rate, obs.Date)
		return rate, nil
	}

	return 0, fmt.Errorf("fred: no numeric observation: %w", ErrUnavailable)
}
