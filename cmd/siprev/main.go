package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"siprev/internal"
	"siprev/internal/config"
	"siprev/internal/ingest"
	"siprev/internal/plan"
	"siprev/internal/series"
	"siprev/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	log := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "ingest":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		dir := fs.String("dir", cfg.RawDataDir, "directory of raw sales files")
		out := fs.String("out", cfg.CanonicalCSV, "canonical series csv path")
		xlsxOut := fs.String("xlsx", "", "optional xlsx export path")
		_ = fs.Parse(os.Args[2:])

		unifier := ingest.NewUnifier(cfg, log)
		records, stats, err := unifier.Unify(*dir)
		must(err)
		must(ingest.WriteCanonicalCSV(records, *out))
		if strings.TrimSpace(*xlsxOut) != "" {
			must(ingest.ExportXLSX(records, *xlsxOut))
		}

		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()
		must(db.ReplaceSales(records))
		must(db.InsertRun(stats))

		fmt.Printf("ingest done files=%d parsed=%d skipped=%d rows=%d out=%s\n",
			stats.FilesSeen, stats.FilesParsed, stats.FilesSkipped, stats.RowsKept, *out)

	case "status":
		db, err := storage.Open(cfg.DBPath)
		must(err)
		defer db.Close()
		stats, found, err := db.LastRun()
		must(err)
		if !found {
			fmt.Println("no ingest runs recorded")
			return
		}
		fmt.Printf("last ingest: %s files=%d parsed=%d skipped=%d rows=%d\n",
			stats.FinishedAt.Format("2006-01-02 15:04"),
			stats.FilesSeen, stats.FilesParsed, stats.FilesSkipped, stats.RowsKept)

	case "products":
		planner := plan.NewPlanner(cfg, openSource(cfg))
		products, err := planner.Products()
		must(err)
		for _, p := range products {
			fmt.Println(p)
		}

	case "plan":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		product := fs.String("product", "", "product name")
		adjust := fs.Int("adjust", 0, "expectation adjustment percent")
		stock := fs.Int("stock", 0, "finished-goods stock, units")
		material := fs.Float64("material", 0, "raw-material stock, kg")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*product) == "" {
			must(fmt.Errorf("--product is required"))
		}

		req := internal.PlanningRequest{
			Product:           strings.ToUpper(strings.TrimSpace(*product)),
			AdjustPercent:     clamp(*adjust, cfg.AdjustMinPercent, cfg.AdjustMaxPercent),
			CurrentStock:      *stock,
			CurrentMaterialKg: decimal.NewFromFloat(*material),
		}

		planner := plan.NewPlanner(cfg, openSource(cfg))
		decision, err := planner.Plan(req)
		if errors.Is(err, plan.ErrNoSeries) {
			fmt.Fprintln(os.Stderr, "no sales data yet: run `siprev ingest` first")
			os.Exit(1)
		}
		if errors.Is(err, plan.ErrNoProductData) {
			fmt.Fprintf(os.Stderr, "no sales history for %s\n", req.Product)
			os.Exit(1)
		}
		must(err)
		printDecision(decision, req.AdjustPercent)

	default:
		usage()
		os.Exit(1)
	}
}

// openSource prefers the sqlite store; a missing store falls back to the
// canonical csv so the planner works straight off an exported file.
func openSource(cfg config.Config) plan.SeriesSource {
	if _, err := os.Stat(cfg.DBPath); err == nil {
		if db, err := storage.Open(cfg.DBPath); err == nil {
			return db
		}
	}
	return series.CSVSource{Path: cfg.CanonicalCSV}
}

func printDecision(d internal.PlanningDecision, adjust int) {
	fmt.Printf("product:             %s\n", d.Product)
	fmt.Printf("strategy:            %s\n", d.Strategy)
	fmt.Printf("algorithm quantity:  %d un\n", d.AlgorithmQuantity)
	fmt.Printf("adjustment:          %d%%\n", adjust)
	fmt.Printf("final quantity:      %d un\n", d.FinalQuantity)
	fmt.Printf("historical mean:     %d un\n", d.HistoricalMean)
	fmt.Printf("unit weight:         %s kg\n", d.UnitWeightKg.StringFixed(3))
	fmt.Printf("required production: %d un\n", d.RequiredProduction)
	fmt.Printf("required material:   %s kg\n", d.RequiredMaterialKg.StringFixed(1))
	fmt.Printf("material balance:    %s kg\n", d.MaterialBalanceKg.StringFixed(1))

	switch d.Recommendation {
	case internal.RecommendStockSufficient:
		fmt.Println("recommendation:      stock covers the adjusted demand")
	case internal.RecommendMaterialShortage:
		fmt.Printf("recommendation:      material shortage, missing %s kg\n", d.MaterialBalanceKg.Neg().StringFixed(1))
	case internal.RecommendMaterialLow:
		fmt.Printf("recommendation:      material low (%s kg left after production)\n", d.MaterialBalanceKg.StringFixed(1))
	default:
		fmt.Printf("recommendation:      production authorized, material balance ok (%s kg)\n", d.MaterialBalanceKg.StringFixed(1))
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func usage() {
	fmt.Println("usage: siprev <command>")
	fmt.Println("commands:")
	fmt.Println("  ingest   --dir=./dados_brutos --out=./dados_vendas.csv [--xlsx=./out/vendas.xlsx]")
	fmt.Println("  status")
	fmt.Println("  products")
	fmt.Println("  plan     --product=... [--adjust=0] [--stock=0] [--material=0]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
