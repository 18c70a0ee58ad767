package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/contactkeval/option-screener/internal/logger"
)

// DefaultUniverseURL serves the S&P 500 constituents as CSV.
const DefaultUniverseURL = "https://datahub.io/core/s-and-p-500-companies/r/constituents.csv"

// constituentsUniverse fetches a constituents CSV over HTTP and yields its
// symbols in file order.
type constituentsUniverse struct {
	URL    string
	Client *http.Client
}

// NewConstituentsUniverse constructs a universe provider for the given CSV
// URL; an empty url means DefaultUniverseURL.
func NewConstituentsUniverse(url string) *constituentsUniverse {
	if url == "" {
		url = DefaultUniverseURL
	}
	return &constituentsUniverse{
		URL:    url,
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (cu *constituentsUniverse) Tickers() ([]Ticker, error) {
	resp, err := cu.Client.Get(cu.URL)
	if err != nil {
		return nil, fmt.Errorf("universe: %w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("universe: status %d: %w", resp.StatusCode, ErrUnavailable)
	}

	tickers, err := parseConstituents(resp.Body)
	if err != nil {
		return nil, err
	}
	logger.Infof("loaded %d tickers from %s", len(tickers), cu.URL)
	return tickers, nil
}

// localUniverse reads the same constituents CSV layout from disk.
type localUniverse struct {
	Path string
}

// NewLocalUniverse constructs a universe provider over a local CSV file.
func NewLocalUniverse(path string) *localUniverse {
	return &localUniverse{Path: path}
}

func (lu *localUniverse) Tickers() ([]Ticker, error) {
	f, err := os.Open(lu.Path)
	if err != nil {
		return nil, fmt.Errorf("universe %s: %w: %v", lu.Path, ErrUnavailable, err)
	}
	defer f.Close()

	tickers, err := parseConstituents(f)
	if err != nil {
		return nil, err
	}
	logger.Infof("loaded %d tickers from %s", len(tickers), lu.Path)
	return tickers, nil
}

// parseConstituents reads a CSV with a header row containing at least a
// Symbol column; Name and Sector columns are carried when present. Row
// order is preserved.
func parseConstituents(r io.Reader) ([]Ticker, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // tolerate ragged rows

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("universe: read header: %w", ErrUnavailable)
	}

	symCol, nameCol, sectorCol := -1, -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "symbol":
			symCol = i
		case "name", "security":
			nameCol = i
		case "sector", "gics sector":
			sectorCol = i
		}
	}
	if symCol < 0 {
		return nil, fmt.Errorf("universe: no Symbol column: %w", ErrUnavailable)
	}

	var out []Ticker
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("universe: read row: %w", ErrUnavailable)
		}
		if symCol >= len(rec) {
			continue
		}
		tk := Ticker{Symbol: strings.TrimSpace(rec[symCol])}
		if tk.Symbol == "" {
			continue
		}
		if nameCol >= 0 && nameCol < len(rec) {
			tk.Name = strings.TrimSpace(rec[nameCol])
		}
		if sectorCol >= 0 && sectorCol < len(rec) {
			tk.Sector = strings.TrimSpace(rec[sectorCol])
		}
		out = append(out, tk)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("universe: no tickers: %w", ErrUnavailable)
	}
	return out, nil
}
