// Package volatility estimates annualized historical volatility from a
// daily close series.
package volatility

import (
	"errors"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// TradingDaysPerYear is the annualization base for daily returns.
const TradingDaysPerYear = 252

// ErrInsufficientData is returned when the series is too short to form a
// single return.
var ErrInsufficientData = errors.New("volatility: need at least 2 closes to form a return")

// Annualized computes the sample standard deviation of the daily log
// returns of closes, scaled by sqrt(252).
//
// A two-point series has exactly one return and therefore zero variance;
// that degenerate estimate is returned as a valid 0. Enforcing a minimum
// trusted history length is the caller's job, not the estimator's.
func Annualized(closes []float64) (float64, error) {
	rets, err := LogReturns(closes)
	if err != nil {
		return 0, err
	}
	if len(rets) < 2 {
		// single return, zero variance
		return 0, nil
	}

	sd, err := stats.StandardDeviationSample(rets)
	if err != nil {
		return 0, fmt.Errorf("volatility: stddev: %w", err)
	}
	return sd * math.Sqrt(TradingDaysPerYear), nil
}

// LogReturns returns ln(P_t / P_{t-1}) for each consecutive pair of closes,
// oldest first.
func LogReturns(closes []float64) ([]float64, error) {
	if len(closes) < 2 {
		return nil, ErrInsufficientData
	}
	rets := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		rets = append(rets, math.Log(closes[i]/closes[i-1]))
	}
	return rets, nil
}
