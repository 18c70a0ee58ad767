package volatility

import (
	"errors"
	"math"
	"testing"
)

func TestAnnualizedConstantSeriesIsZero(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 87.5
	}

	sigma, err := Annualized(closes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sigma != 0 {
		t.Fatalf("constant series must yield sigma = 0 exactly, got %g", sigma)
	}
}

func TestAnnualizedInsufficientData(t *testing.T) {
	for _, closes := range [][]float64{nil, {}, {100.0}} {
		if _, err := Annualized(closes); !errors.Is(err, ErrInsufficientData) {
			t.Fatalf("closes=%v: expected ErrInsufficientData, got %v", closes, err)
		}
	}
}

// Exactly two closes form a single return: zero variance is a valid,
// degenerate estimate, not an error.
func TestAnnualizedTwoPointSeries(t *testing.T) {
	sigma, err := Annualized([]float64{100, 101})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sigma != 0 {
		t.Fatalf("two-point series must yield sigma = 0, got %g", sigma)
	}
}

func TestAnnualizedKnownValue(t *testing.T) {
	// Returns are exactly 0.01 and 0.02, so the sample stddev is
	// sqrt(((0.01-0.015)^2 + (0.02-0.015)^2) / 1) = sqrt(5e-5).
	closes := []float64{
		100,
		100 * math.Exp(0.01),
		100 * math.Exp(0.03),
	}

	sigma, err := Annualized(closes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := math.Sqrt(5e-5) * math.Sqrt(252)
	if math.Abs(sigma-want) > 1e-9 {
		t.Fatalf("sigma = %.12f, want %.12f", sigma, want)
	}
}

func TestLogReturns(t *testing.T) {
	rets, err := LogReturns([]float64{100, 110, 99})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rets) != 2 {
		t.Fatalf("expected 2 returns, got %d", len(rets))
	}
	if math.Abs(rets[0]-math.Log(1.10)) > 1e-12 {
		t.Fatalf("rets[0] = %f, want ln(1.10)", rets[0])
	}
	if math.Abs(rets[1]-math.Log(0.90)) > 1e-12 {
		t.Fatalf("rets[1] = %f, want ln(0.90)", rets[1])
	}
}
