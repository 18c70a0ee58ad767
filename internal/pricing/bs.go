package pricing

import (
	"errors"
	"math"
)

const sqrt2Pi = 2.5066282746310002

// ErrDegenerateInputs is returned when volatility or time to expiry is not
// strictly positive. The Black-Scholes d1/d2 terms divide by sigma*sqrt(T),
// so such inputs cannot be priced by the formula; callers either skip the
// instrument or fall back to IntrinsicCall explicitly.
var ErrDegenerateInputs = errors.New("pricing: volatility and time to expiry must be positive")

// Quote holds the outputs of one European call valuation.
type Quote struct {
	Price float64 `json:"price"` // theoretical call premium
	Delta float64 `json:"delta"` // sensitivity to spot, the N(d1) term
	Vega  float64 `json:"vega"`  // sensitivity to volatility
}

// PriceCall values a European call with the Black-Scholes model
// (continuous compounding, no dividends).
//
// Parameters:
//   - S: spot price of the underlying asset
//   - K: strike price of the option
//   - T: time to expiry in years
//   - r: risk-free interest rate (annual)
//   - sigma: volatility of the underlying asset (annual, as a decimal)
//
// Returns ErrDegenerateInputs when T <= 0 or sigma <= 0 instead of letting
// a division by zero leak NaN or Inf downstream.
func PriceCall(
	S float64, // spot
	K float64, // strike
	T float64, // time to expiry in years
	r float64, // risk-free rate
	sigma float64, // volatility
) (Quote, error) {

	if T <= 0 || sigma <= 0 {
		return Quote{}, ErrDegenerateInputs
	}

	sqrtT := math.Sqrt(T)
	d1 := (math.Log(S/K) + (r+0.5*sigma*sigma)*T) / (sigma * sqrtT)
	d2 := d1 - sigma*sqrtT

	return Quote{
		Price: S*normCDF(d1) - K*math.Exp(-r*T)*normCDF(d2),
		Delta: normCDF(d1),
		Vega:  S * normPDF(d1) * sqrtT,
	}, nil
}

// IntrinsicCall is the defined quote for expired or zero-volatility calls:
// the option is worth exactly its intrinsic value, delta collapses to 0 or
// 1, and vega is 0.
func IntrinsicCall(S, K float64) Quote {
	q := Quote{Price: math.Max(0, S-K)}
	if S > K {
		q.Delta = 1
	}
	return q
}

// normPDF calculates the probability density function of the standard
// normal distribution: exp(-0.5 * x^2) / sqrt(2π).
func normPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / sqrt2Pi
}

// normCDF computes the cumulative distribution function of the standard
// normal distribution using the error function.
func normCDF(x float64) float64 {
	return 0.5 * (1.0 + math.Erf(x/math.Sqrt2))
}
