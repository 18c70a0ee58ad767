package data

import (
	"errors"
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNormalizeSortsAndDedupes(t *testing.T) {
	s := PriceSeries{
		{Date: day("2025-01-03"), Close: 103},
		{Date: day("2025-01-01"), Close: 101},
		{Date: day("2025-01-02"), Close: 102},
		{Date: day("2025-01-02"), Close: 102.5}, // duplicate date, later wins
	}

	out := normalize(s)

	if len(out) != 3 {
		t.Fatalf("expected 3 points after dedup, got %d", len(out))
	}
	for i := 1; i < len(out); i++ {
		if !out[i-1].Date.Before(out[i].Date) {
			t.Fatalf("series not strictly ascending at %d: %v >= %v", i, out[i-1].Date, out[i].Date)
		}
	}
	if out[1].Close != 102.5 {
		t.Fatalf("dedup must keep the last observation, got %f", out[1].Close)
	}
}

func TestPriceSeriesSpotAndCloses(t *testing.T) {
	s := PriceSeries{
		{Date: day("2025-01-01"), Close: 101},
		{Date: day("2025-01-02"), Close: 102},
	}
	if got := s.Spot(); got != 102 {
		t.Fatalf("Spot = %f, want 102", got)
	}
	closes := s.Closes()
	if len(closes) != 2 || closes[0] != 101 || closes[1] != 102 {
		t.Fatalf("Closes = %v", closes)
	}
	if got := (PriceSeries{}).Spot(); got != 0 {
		t.Fatalf("empty Spot = %f, want 0", got)
	}
}

func TestFixedRate(t *testing.T) {
	r, err := FixedRate(0.05).RiskFreeRate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r != 0.05 {
		t.Fatalf("rate = %f, want 0.05", r)
	}
}

func TestStaticUniversePreservesOrder(t *testing.T) {
	u := StaticUniverse{{Symbol: "AAPL"}, {Symbol: "MSFT"}, {Symbol: "NVDA"}}
	tickers, err := u.Tickers()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"AAPL", "MSFT", "NVDA"}
	for i, tk := range tickers {
		if tk.Symbol != want[i] {
			t.Fatalf("tickers[%d] = %s, want %s", i, tk.Symbol, want[i])
		}
	}
}

func TestSyntheticProviderSeries(t *testing.T) {
	prov := NewSyntheticProvider(42)

	series, err := prov.GetDailyCloses("FAKE")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series) < 60 {
		t.Fatalf("expected a compact-sized window, got %d points", len(series))
	}
	for i, p := range series {
		if p.Close <= 0 {
			t.Fatalf("non-positive close at %d: %f", i, p.Close)
		}
		if wd := p.Date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Fatalf("weekend bar at %v", p.Date)
		}
		if i > 0 && !series[i-1].Date.Before(p.Date) {
			t.Fatalf("series not ascending at %d", i)
		}
	}
}

func TestErrUnavailableFolding(t *testing.T) {
	prov := NewLocalCSVProvider(t.TempDir(), nil)
	_, err := prov.GetDailyCloses("MISSING")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
