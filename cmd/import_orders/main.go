package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"tradeStats/config"
	"tradeStats/internal/adapters/binanceclient"
	"tradeStats/internal/adapters/logger"
	"tradeStats/internal/adapters/prommetrics"
	"tradeStats/internal/adapters/sqlite"
	"tradeStats/internal/app"
)

func main() {
	csvPath := flag.String("csv", "", "also export the stored orders of the lookback window to this CSV file (default data/orders_<start>_to_<end>.csv)")
	noCSV := flag.Bool("no-csv", false, "skip the CSV export")
	flag.Parse()

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}
	if err := cfg.ValidateForImport(); err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	// 2. Initialize Logger
	appLogger := logger.New(cfg.LogLevel)
	ctx := context.Background()

	// 3. Initialize Exchange Client (Binance Adapter)
	binanceClient, err := binanceclient.New(binanceclient.Config{
		APIKey:     cfg.APIKey,
		SecretKey:  cfg.SecretKey,
		UseTestnet: cfg.IsTestnet,
		Logger:     appLogger,
	})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize Binance client: %v", err)
	}

	// 4. Initialize Repository
	repo, err := sqlite.NewRepository(sqlite.Config{DBPath: cfg.DBPath, Logger: appLogger})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database repository: %v", err)
	}

	importer, err := app.NewImportService(appLogger, binanceClient, repo, prommetrics.NewRecorder())
	if err != nil {
		repo.Close()
		log.Fatalf("FATAL: Failed to initialize import service: %v", err)
	}

	if err := run(ctx, cfg, importer, repo, *csvPath, *noCSV); err != nil {
		appLogger.Error(ctx, err, "Import aborted")
		if cerr := repo.Close(); cerr != nil {
			appLogger.Error(ctx, cerr, "Error closing database repository")
		}
		os.Exit(1)
	}
	if err := repo.Close(); err != nil {
		appLogger.Error(ctx, err, "Error closing database repository")
	}
}

func run(ctx context.Context, cfg *config.Config, importer *app.ImportService, repo *sqlite.Repository, csvPath string, noCSV bool) error {
	end := time.Now()
	start := end.Add(-cfg.ImportLookback)
	fmt.Printf("Importing orders for %v from %s to %s...\n", cfg.Symbols, start.Format(time.RFC3339), end.Format(time.RFC3339))

	importCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout*time.Duration(len(cfg.Symbols)))
	defer cancel()
	results, err := importer.Import(importCtx, cfg.Symbols, start, end)
	for _, r := range results {
		fmt.Printf("%s: fetched %d, stored %d, skipped %d\n", r.Symbol, r.Fetched, r.Stored, r.Skipped)
	}
	if err != nil {
		return err
	}

	if noCSV {
		return nil
	}
	if csvPath == "" {
		csvPath = fmt.Sprintf("data/orders_%s_to_%s.csv", start.Format("20060102"), end.Format("20060102"))
	}
	n, err := app.ExportOrders(ctx, repo, cfg.Symbols, start, csvPath)
	if err != nil {
		return err
	}
	fmt.Printf("Saved %d orders to %s\n", n, csvPath)
	return nil
}
