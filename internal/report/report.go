// Package report renders and persists screening results. All display
// rounding happens here: prices to cents, volatility and greeks to 4
// decimals. The pipeline keeps full precision through ranking.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/contactkeval/option-screener/internal/screen"
)

// Report wraps one finished run for rendering and persistence.
type Report struct {
	RunID         string        `json:"run_id"`
	GeneratedAt   time.Time     `json:"generated_at"`
	Capital       float64       `json:"capital"`
	Rate          float64       `json:"rate"`
	RateDefaulted bool          `json:"rate_defaulted,omitempty"`
	MaturityDays  int           `json:"maturity_days"`
	Leaderboard   []screen.Row  `json:"leaderboard"`
	Skips         []screen.Skip `json:"skips,omitempty"`
}

// New ranks the run's rows and wraps them with the run metadata.
func New(res *screen.Result, capital float64, maturityDays, top int) *Report {
	return &Report{
		RunID:         uuid.NewString(),
		GeneratedAt:   time.Now().UTC(),
		Capital:       capital,
		Rate:          res.Rate.Rate,
		RateDefaulted: res.Rate.Defaulted,
		MaturityDays:  maturityDays,
		Leaderboard:   screen.Leaderboard(res.Rows, top),
		Skips:         res.Skips,
	}
}

// cents renders a dollar amount rounded to 2 decimals.
func cents(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// frac renders a volatility or greek rounded to 4 decimals.
func frac(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(4)
}

// RenderTable writes the leaderboard as an aligned table.
func (r *Report) RenderTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "RANK\tTICKER\tPRICE\tVOLATILITY\tCALL PRICE\tDELTA\tVEGA\tCONTRACTS")
	for i, row := range r.Leaderboard {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			i+1,
			row.Symbol,
			cents(row.Spot),
			frac(row.Volatility),
			cents(row.CallPrice),
			frac(row.Delta),
			frac(row.Vega),
			row.Contracts,
		)
	}
	return tw.Flush()
}

// Summary echoes the capital and the model assumptions under the table.
func (r *Report) Summary() string {
	s := fmt.Sprintf(
		"Assumes an at-the-money strike and %d-day expiration; volatility is the annualized stddev of trailing daily log returns. You entered $%s; affordability uses %d-share contracts.",
		r.MaturityDays, cents(r.Capital), screen.ContractSize,
	)
	if r.RateDefaulted {
		s += fmt.Sprintf(" Risk-free rate was unavailable and defaulted to %s.", frac(r.Rate))
	}
	return s
}

// WriteJSON persists the full report to <outdir>/screen.json.
func (r *Report) WriteJSON(outdir string) error {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outdir, "screen.json"), b, 0644)
}

// WriteCSV persists the leaderboard to <outdir>/screen.csv with the same
// display rounding as the table.
func (r *Report) WriteCSV(outdir string) error {
	f, err := os.Create(filepath.Join(outdir, "screen.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	headers := []string{"rank", "ticker", "name", "price", "volatility", "call_price", "delta", "vega", "contracts"}
	if err := w.Write(headers); err != nil {
		return err
	}
	for i, row := range r.Leaderboard {
		rec := []string{
			fmt.Sprintf("%d", i+1),
			row.Symbol,
			row.Name,
			cents(row.Spot),
			frac(row.Volatility),
			cents(row.CallPrice),
			frac(row.Delta),
			frac(row.Vega),
			fmt.Sprintf("%d", row.Contracts),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
