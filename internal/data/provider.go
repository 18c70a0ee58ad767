// Package data provides the market-data collaborator contracts the
// screening pipeline depends on, plus their concrete providers: Alpha
// Vantage daily closes, the FRED risk-free rate, the S&P 500 constituents
// universe, a local-CSV provider for offline runs, and a synthetic
// random-walk provider.
package data

import (
	"errors"
	"sort"
	"time"
)

// ErrUnavailable signals that a provider could not produce data for a
// request. Missing symbols, malformed payloads and transport failures all
// fold into this one outcome; the screener skips the symbol and moves on.
var ErrUnavailable = errors.New("data: unavailable")

// ClosePoint is one daily adjusted-close observation.
type ClosePoint struct {
	Date  time.Time
	Close float64
}

// PriceSeries is a run of daily adjusted closes for one symbol, ascending
// by date, no duplicate dates.
type PriceSeries []ClosePoint

// Spot returns the most recent close, or 0 for an empty series.
func (s PriceSeries) Spot() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].Close
}

// Closes flattens the series into close values, oldest first.
func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Close
	}
	return out
}

// normalize sorts the series ascending by date and drops duplicate dates,
// keeping the last observation seen for a date. Providers call this before
// handing a series to the pipeline.
func normalize(s PriceSeries) PriceSeries {
	sort.SliceStable(s, func(i, j int) bool { return s[i].Date.Before(s[j].Date) })

	out := s[:0]
	for _, p := range s {
		if n := len(out); n > 0 && out[n-1].Date.Equal(p.Date) {
			out[n-1] = p
			continue
		}
		out = append(out, p)
	}
	return out
}

// Ticker is one screenable symbol plus the metadata the presentation
// layer shows.
type Ticker struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name,omitempty"`
	Sector string `json:"sector,omitempty"`
}

// PriceProvider supplies per-symbol daily price history.
type PriceProvider interface {
	// GetDailyCloses returns the adjusted daily close series for symbol,
	// ascending by date. Unobtainable data comes back as ErrUnavailable.
	GetDailyCloses(symbol string) (PriceSeries, error)

	// Secondary returns an optional fallback provider consulted when this
	// one cannot serve a symbol.
	Secondary() PriceProvider
}

// RateProvider supplies the annualized short-term risk-free rate as a
// decimal fraction (0.05 = 5%).
type RateProvider interface {
	RiskFreeRate() (float64, error)
}

// UniverseProvider supplies the ordered set of symbols to screen.
type UniverseProvider interface {
	Tickers() ([]Ticker, error)
}

// FixedRate is a RateProvider pinned to a constant. Useful when no rate
// feed is configured and in tests.
type FixedRate float64

func (f FixedRate) RiskFreeRate() (float64, error) { return float64(f), nil }

// StaticUniverse is a UniverseProvider over a fixed ticker list.
type StaticUniverse []Ticker

func (u StaticUniverse) Tickers() ([]Ticker, error) { return u, nil }
