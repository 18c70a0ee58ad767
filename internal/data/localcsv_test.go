package data

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSymbolCSV(t *testing.T, dir, symbol, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, symbol+".csv"), []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

func TestLocalCSVProviderReadsAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	// rows intentionally out of order, with one duplicate date and one
	// malformed row
	writeSymbolCSV(t, dir, "AAPL", `date,adj_close
2025-01-03,103.00
2025-01-01,101.00
2025-01-02,102.00
2025-01-02,102.50
not-a-date,99.00
`)

	prov := NewLocalCSVProvider(dir, nil)
	series, err := prov.GetDailyCloses("aapl") // case-insensitive symbol
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(series) != 3 {
		t.Fatalf("expected 3 points, got %d", len(series))
	}
	if series.Spot() != 103.00 {
		t.Fatalf("Spot = %f, want 103.00", series.Spot())
	}
	if series[1].Close != 102.50 {
		t.Fatalf("duplicate date must keep last value, got %f", series[1].Close)
	}
}

func TestLocalCSVProviderFallsBackToSecondary(t *testing.T) {
	secondaryDir := t.TempDir()
	writeSymbolCSV(t, secondaryDir, "MSFT", "date,adj_close\n2025-01-02,410.00\n")

	prov := NewLocalCSVProvider(t.TempDir(), NewLocalCSVProvider(secondaryDir, nil))

	series, err := prov.GetDailyCloses("MSFT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if series.Spot() != 410.00 {
		t.Fatalf("Spot = %f, want 410.00", series.Spot())
	}
}

func TestLocalUniverse(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "constituents.csv")
	csv := `Symbol,Name,Sector
MMM,3M,Industrials
AOS,A. O. Smith,Industrials
ABT,Abbott Laboratories,Health Care
`
	if err := os.WriteFile(path, []byte(csv), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	tickers, err := NewLocalUniverse(path).Tickers()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tickers) != 3 {
		t.Fatalf("expected 3 tickers, got %d", len(tickers))
	}
	if tickers[0].Symbol != "MMM" || tickers[0].Name != "3M" || tickers[0].Sector != "Industrials" {
		t.Fatalf("tickers[0] = %+v", tickers[0])
	}
	if tickers[2].Symbol != "ABT" {
		t.Fatalf("row order not preserved: %+v", tickers[2])
	}
}
