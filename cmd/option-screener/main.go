package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/contactkeval/option-screener/internal/config"
	"github.com/contactkeval/option-screener/internal/data"
	"github.com/contactkeval/option-screener/internal/logger"
	"github.com/contactkeval/option-screener/internal/report"
	"github.com/contactkeval/option-screener/internal/screen"
)

func main() {
	configPath := flag.String("config", "configs/screen.yaml", "path to YAML config")
	rest := flag.Bool("rest", false, "run as REST server (serve screening runs)")
	port := flag.String("port", ":8080", "REST server listen address")
	flag.Parse()

	// .env is optional; deployments export the keys directly
	_ = godotenv.Load()

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	logger.SetVerbosity(cfg.Verbosity)

	prices, rates, universe := buildProviders(cfg)

	eng := screen.NewEngine(screen.Params{
		Symbols:      cfg.Screen.Symbols,
		Capital:      cfg.Screen.Capital,
		MaturityDays: cfg.Screen.MaturityDays,
		MinHistory:   cfg.Screen.MinHistory,
	}, prices, rates, universe)
	eng.SetGate(screen.NewIntervalGate(cfg.Providers.Throttle))

	if *rest {
		serveREST(eng, cfg, *port)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	eng.SetObserver(screen.ObserverFunc(func(done, total int) {
		fmt.Fprintf(os.Stderr, "\rscreening %d/%d", done, total)
		if done == total {
			fmt.Fprintln(os.Stderr)
		}
	}))

	start := time.Now()
	res, err := eng.Run(ctx)
	if err != nil {
		log.Fatalf("screen failed: %v", err)
	}

	rep := report.New(res, cfg.Screen.Capital, cfg.Screen.MaturityDays, cfg.Screen.Top)

	if len(rep.Leaderboard) == 0 {
		fmt.Println("no results: every symbol was skipped")
	} else {
		fmt.Printf("Top %d by Black-Scholes call price\n\n", len(rep.Leaderboard))
		if err := rep.RenderTable(os.Stdout); err != nil {
			log.Fatalf("render table: %v", err)
		}
		fmt.Println()
		fmt.Println(rep.Summary())
	}

	if err := os.MkdirAll(cfg.Report.Dir, 0755); err != nil {
		log.Printf("[warn] could not create report dir %s: %v", cfg.Report.Dir, err)
	}
	_ = rep.WriteJSON(cfg.Report.Dir)
	_ = rep.WriteCSV(cfg.Report.Dir)
	log.Printf("[done] finished in %v, %d rows, %d skips, wrote report to %s",
		time.Since(start), len(res.Rows), len(res.Skips), cfg.Report.Dir)
}

// serveREST exposes a single screening run as JSON.
func serveREST(eng *screen.Engine, cfg *config.Config, port string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/run", func(w http.ResponseWriter, r *http.Request) {
		log.Printf("[info] received /run request")
		res, err := eng.Run(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		rep := report.New(res, cfg.Screen.Capital, cfg.Screen.MaturityDays, cfg.Screen.Top)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(rep)
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	log.Printf("[info] starting REST server on %s", port)
	log.Fatal(http.ListenAndServe(port, mux))
}

// buildProviders selects the data collaborators from config: local files
// when a data dir is set, live APIs when keys are set, synthetic otherwise.
func buildProviders(cfg *config.Config) (data.PriceProvider, data.RateProvider, data.UniverseProvider) {
	var prices data.PriceProvider
	switch {
	case cfg.Providers.DataDir != "":
		prices = data.NewLocalCSVProvider(cfg.Providers.DataDir, nil)
		logger.Infof("local CSV price provider enabled (%s)", cfg.Providers.DataDir)
	case cfg.Providers.AlphaVantageKey != "":
		prices = data.NewAlphaVantageProvider(cfg.Providers.AlphaVantageKey)
	default:
		prices = data.NewSyntheticProvider(cfg.Providers.Seed)
		logger.Infof("synthetic price provider enabled")
	}

	var rates data.RateProvider
	if cfg.Providers.FREDKey != "" {
		rates = data.NewFREDRateProvider(cfg.Providers.FREDKey)
	} else {
		rates = data.FixedRate(screen.DefaultRate)
		logger.Infof("no rate feed configured, rate pinned to %.2f", screen.DefaultRate)
	}

	var universe data.UniverseProvider
	if cfg.Providers.UniverseFile != "" {
		universe = data.NewLocalUniverse(cfg.Providers.UniverseFile)
	} else {
		universe = data.NewConstituentsUniverse(cfg.Providers.UniverseURL)
	}

	return prices, rates, universe
}
