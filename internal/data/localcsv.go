package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/contactkeval/option-screener/internal/logger"
)

// localCSVProvider implements PriceProvider from per-symbol CSV files on
// disk: <dir>/<SYMBOL>.csv with a "date,adj_close" header.
type localCSVProvider struct {
	dir       string
	secondary PriceProvider
}

// NewLocalCSVProvider constructs a provider over dir, with an optional
// secondary fallback consulted for symbols that have no file.
func NewLocalCSVProvider(dir string, secondary PriceProvider) *localCSVProvider {
	return &localCSVProvider{dir: dir, secondary: secondary}
}

func (localProv *localCSVProvider) Secondary() PriceProvider {
	return localProv.secondary
}

func (localProv *localCSVProvider) GetDailyCloses(symbol string) (PriceSeries, error) {
	path := filepath.Join(localProv.dir, strings.ToUpper(symbol)+".csv")

	f, err := os.Open(path)
	if err != nil {
		if localProv.secondary != nil {
			logger.Debugf("no local file for %s, delegating to secondary", symbol)
			return localProv.secondary.GetDailyCloses(symbol)
		}
		return nil, fmt.Errorf("local closes %s: %w: %v", symbol, ErrUnavailable, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1

	// header row
	if _, err := cr.Read(); err != nil {
		return nil, fmt.Errorf("local closes %s: header: %w", symbol, ErrUnavailable)
	}

	var out PriceSeries
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("local closes %s: read row: %w", symbol, ErrUnavailable)
		}
		if len(rec) < 2 {
			continue
		}
		dt, err := time.Parse("2006-01-02", strings.TrimSpace(rec[0]))
		if err != nil {
			continue // skip malformed dates
		}
		cl, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			continue
		}
		out = append(out, ClosePoint{Date: dt, Close: cl})
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("local closes %s: empty file: %w", symbol, ErrUnavailable)
	}
	return normalize(out), nil
}
