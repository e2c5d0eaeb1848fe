package main

import (
	"context"
	"errors"
	"fmt"
	"log" // Use standard log only for initial fatal errors before logger is set up
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"tradeStats/config"
	"tradeStats/internal/adapters/logger"
	"tradeStats/internal/adapters/prommetrics"
	"tradeStats/internal/adapters/sqlite"
	"tradeStats/internal/app"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	// 2. Initialize Logger
	appLogger := logger.New(cfg.LogLevel)
	ctx := context.Background()
	appLogger.Info(ctx, "Logger initialized", map[string]interface{}{"level": cfg.LogLevel.String()})

	// 3. Initialize Repository
	repo, err := sqlite.NewRepository(sqlite.Config{DBPath: cfg.DBPath, Logger: appLogger})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database repository: %v", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			appLogger.Error(ctx, err, "Error closing database repository")
		}
	}()

	// 4. Metrics
	recorder := prommetrics.NewRecorder()

	// 5. Report
	reports, err := app.NewReportService(appLogger, repo,
		app.WithRecorder(recorder),
		app.WithStartingBalance(cfg.StartingBalance),
	)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize report service: %v", err)
	}

	reportCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	report, err := reports.Generate(reportCtx, cfg.Timeframe)
	cancel()
	if err != nil {
		appLogger.Error(ctx, err, "Report generation failed")
		os.Exit(1)
	}
	printReport(report)

	// 6. Optionally keep serving the metrics endpoint
	if cfg.MetricsAddr == "" {
		return
	}
	serveMetrics(ctx, cfg.MetricsAddr, recorder, appLogger)
}

func printReport(r *app.Report) {
	m := r.Metrics
	fmt.Printf("Timeframe: %s (generated %s, %d orders)\n", r.Timeframe, r.GeneratedAt.Format(time.RFC3339), r.OrderCount)
	fmt.Printf("Total trades: %d | Winning: %d | Losing: %d | Win rate: %.2f%%\n", m.TotalTrades, m.WinningTrades, m.LosingTrades, m.WinRate)
	fmt.Printf("Avg win: %.4f | Avg loss: %.4f | Profit factor: %.4f | Total PnL: %.4f\n", m.AverageWin, m.AverageLoss, m.ProfitFactor, m.TotalPNL)
	if e := r.Equity; e != nil {
		fmt.Printf("Balance: %.4f -> %.4f | Max drawdown: %.2f%% | Streaks: %dW/%dL | Expectancy: %.4f | Avg hold: %s\n",
			e.StartingBalance, e.FinalBalance, e.MaxDrawdown*100, e.MaxConsecutiveWins, e.MaxConsecutiveLosses, e.Expectancy, e.AverageHoldTime.Round(time.Second))
		for _, mr := range e.MonthlyReturns() {
			fmt.Printf("  %s: %.4f\n", mr.Month.Format("2006-01"), mr.PNL)
		}
	}
	fmt.Println()

	if len(r.BySymbol) == 0 {
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight|tabwriter.Debug)
	fmt.Fprintln(w, "Symbol\tTrades\tWins\tLosses\tWinRate\tAvgWin\tAvgLoss\tPF\tTotalPnL\t")
	for _, sm := range r.BySymbol {
		s := sm.Metrics
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%.2f\t%.4f\t%.4f\t%.4f\t%.4f\t\n",
			sm.Symbol, s.TotalTrades, s.WinningTrades, s.LosingTrades, s.WinRate, s.AverageWin, s.AverageLoss, s.ProfitFactor, s.TotalPNL)
	}
	w.Flush()
}

func serveMetrics(ctx context.Context, addr string, recorder *prommetrics.Recorder, appLogger *logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", recorder.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	appLogger.Info(ctx, "Serving metrics", map[string]interface{}{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		appLogger.Error(ctx, err, "Metrics server failed")
	}
	appLogger.Info(ctx, "Application finished gracefully.")
}
