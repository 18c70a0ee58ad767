// Package screen orchestrates the per-symbol pricing pipeline: price
// history, volatility estimate, Black-Scholes quote and contract
// affordability, accumulated into a ranked result set. Symbols are
// processed strictly sequentially; any single symbol's failure becomes a
// recorded skip, never a run failure.
package screen

import (
	"context"
	"fmt"

	"github.com/contactkeval/option-screener/internal/data"
	"github.com/contactkeval/option-screener/internal/logger"
	"github.com/contactkeval/option-screener/internal/pricing"
	"github.com/contactkeval/option-screener/internal/volatility"
)

// DefaultRate is the fallback annualized risk-free rate applied when the
// rate provider is unavailable.
const DefaultRate = 0.05

// Params fixes one screening run.
type Params struct {
	Symbols      int     // symbols to screen from the front of the universe
	Capital      float64 // available capital in dollars
	MaturityDays int     // option maturity in calendar days
	MinHistory   int     // closes required before the volatility estimate is trusted
}

// RateContext is the process-wide risk-free rate, resolved once per run
// and shared read-only by every symbol evaluation.
type RateContext struct {
	Rate      float64 `json:"rate"`
	Defaulted bool    `json:"defaulted"` // provider was unavailable, DefaultRate applied
}

// ResolveRate fetches the rate once, falling back to DefaultRate with a
// user-visible warning when the provider is unavailable.
func ResolveRate(rates data.RateProvider) RateContext {
	r, err := rates.RiskFreeRate()
	if err != nil {
		logger.Warnf("risk-free rate unavailable, using default %.2f: %v", DefaultRate, err)
		return RateContext{Rate: DefaultRate, Defaulted: true}
	}
	return RateContext{Rate: r}
}

// Row is one successfully evaluated symbol. Values stay full precision
// through ranking; display rounding happens at the report boundary.
type Row struct {
	Symbol     string  `json:"symbol"`
	Name       string  `json:"name,omitempty"`
	Spot       float64 `json:"spot"`
	Volatility float64 `json:"volatility"`
	CallPrice  float64 `json:"call_price"`
	Delta      float64 `json:"delta"`
	Vega       float64 `json:"vega"`
	Contracts  int     `json:"contracts"`
}

// Skip records why a symbol produced no row.
type Skip struct {
	Symbol string `json:"symbol"`
	Reason string `json:"reason"`
}

// Skip reasons.
const (
	SkipUnavailable  = "data unavailable"
	SkipShortHistory = "insufficient history"
	SkipZeroVol      = "zero volatility estimate"
	SkipCancelled    = "cancelled"
)

// Outcome is the tagged per-symbol result: exactly one of Row or Reason
// is set.
type Outcome struct {
	Row    *Row
	Reason string
}

// Result accumulates a run: rows in universe order for the symbols that
// priced, skips with reasons for the rest.
type Result struct {
	Rows  []Row       `json:"rows"`
	Skips []Skip      `json:"skips,omitempty"`
	Rate  RateContext `json:"rate"`
}

// Engine wires the pipeline to its collaborators.
type Engine struct {
	params   Params
	prices   data.PriceProvider
	rates    data.RateProvider
	universe data.UniverseProvider
	gate     Gate
	observer Observer
}

// NewEngine builds an engine over the given collaborators. The gate
// defaults to no pacing and the observer to none; set them with SetGate
// and SetObserver.
func NewEngine(params Params, prices data.PriceProvider, rates data.RateProvider, universe data.UniverseProvider) *Engine {
	return &Engine{
		params:   params,
		prices:   prices,
		rates:    rates,
		universe: universe,
		gate:     NopGate{},
	}
}

// SetGate installs the pacing gate waited on before each per-symbol fetch.
func (e *Engine) SetGate(g Gate) {
	if g == nil {
		g = NopGate{}
	}
	e.gate = g
}

// SetObserver installs the progress observer notified after each symbol.
func (e *Engine) SetObserver(o Observer) {
	e.observer = o
}

// Run screens the first Params.Symbols symbols of the universe in order.
// Per-symbol failures are recorded as skips; only an unobtainable universe
// or invalid params fail the run. Cancellation is honored between symbols,
// returning the partial result alongside the context error.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	if e.params.Symbols <= 0 {
		return nil, fmt.Errorf("screen: symbol count must be positive, got %d", e.params.Symbols)
	}
	if e.params.Capital <= 0 {
		return nil, fmt.Errorf("screen: capital must be positive, got %.2f", e.params.Capital)
	}
	if e.params.MaturityDays <= 0 {
		return nil, fmt.Errorf("screen: maturity days must be positive, got %d", e.params.MaturityDays)
	}

	tickers, err := e.universe.Tickers()
	if err != nil {
		return nil, fmt.Errorf("fetch universe: %w", err)
	}

	count := e.params.Symbols
	if count > len(tickers) {
		count = len(tickers)
	}

	rate := ResolveRate(e.rates)
	expiry := float64(e.params.MaturityDays) / 365.0

	logger.Infof("screening %d symbols (capital=%.2f rate=%.4f T=%dd)",
		count, e.params.Capital, rate.Rate, e.params.MaturityDays)

	res := &Result{Rate: rate}
	for i, tk := range tickers[:count] {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		out := e.evaluate(ctx, tk, rate, expiry)
		if out.Row != nil {
			res.Rows = append(res.Rows, *out.Row)
			logger.Debugf("%s: spot=%.2f vol=%.4f call=%.4f contracts=%d",
				tk.Symbol, out.Row.Spot, out.Row.Volatility, out.Row.CallPrice, out.Row.Contracts)
		} else {
			res.Skips = append(res.Skips, Skip{Symbol: tk.Symbol, Reason: out.Reason})
			logger.Debugf("%s: skipped (%s)", tk.Symbol, out.Reason)
		}

		// progress after every symbol, priced or skipped
		if e.observer != nil {
			e.observer.Progress(i+1, count)
		}
	}

	logger.Infof("screen complete: %d priced, %d skipped", len(res.Rows), len(res.Skips))
	return res, nil
}

// evaluate runs the pipeline for one symbol and returns a tagged outcome.
func (e *Engine) evaluate(ctx context.Context, tk data.Ticker, rate RateContext, expiry float64) Outcome {
	if err := e.gate.Wait(ctx); err != nil {
		return Outcome{Reason: SkipCancelled}
	}

	series, err := e.prices.GetDailyCloses(tk.Symbol)
	if err != nil {
		return Outcome{Reason: SkipUnavailable}
	}
	if len(series) < e.params.MinHistory {
		return Outcome{Reason: SkipShortHistory}
	}

	sigma, err := volatility.Annualized(series.Closes())
	if err != nil {
		// under 2 closes, same treatment as unobtainable data
		return Outcome{Reason: SkipShortHistory}
	}
	if sigma <= 0 {
		// the pricer cannot take a zero vol; pre-filter rather than quote
		// intrinsic value for a symbol with no measured movement
		return Outcome{Reason: SkipZeroVol}
	}

	spot := series.Spot()
	quote, err := pricing.PriceCall(spot, spot, expiry, rate.Rate, sigma)
	if err != nil {
		return Outcome{Reason: SkipZeroVol}
	}

	return Outcome{Row: &Row{
		Symbol:     tk.Symbol,
		Name:       tk.Name,
		Spot:       spot,
		Volatility: sigma,
		CallPrice:  quote.Price,
		Delta:      quote.Delta,
		Vega:       quote.Vega,
		Contracts:  AffordableContracts(quote.Price, e.params.Capital),
	}}
}
