package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"tradeStats/internal/analytics"
	"tradeStats/internal/domain"
	"tradeStats/internal/utils"
)

func main() {
	dir := flag.String("dir", "data", "directory searched when no files are given")
	prefix := flag.String("prefix", "orders", "file name prefix used with -dir")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		var err error
		files, err = findOrderFiles(*dir, *prefix)
		if err != nil {
			log.Fatalf("Error finding order files: %v", err)
		}
	}
	if len(files) == 0 {
		log.Println("No order files found. Run import_orders to export a CSV, or pass CSV/YAML files.")
		return
	}

	now := time.Now()
	timeframes := append(append([]domain.Timeframe{}, domain.Timeframes...), domain.TimeframeAll)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight|tabwriter.Debug)
	fmt.Fprintln(w, "File\tTimeframe\tTrades\tWinRate\tAvgWin\tAvgLoss\tPF\tTotalPnL\t")

	for _, file := range files {
		orders, err := utils.ReadOrdersFromFile(file)
		if err != nil {
			log.Printf("Error reading orders from %s: %v", file, err)
			continue
		}
		for _, tf := range timeframes {
			m := analytics.ComputeMetrics(analytics.FilterByTimeframe(orders, tf, now))
			fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%.4f\t%.4f\t%.4f\t%.4f\t\n",
				filepath.Base(file), tf, m.TotalTrades, m.WinRate, m.AverageWin, m.AverageLoss, m.ProfitFactor, m.TotalPNL)
		}
	}
	w.Flush()
}

// findOrderFiles finds all CSV/YAML order files with the given prefix in dir.
func findOrderFiles(dir, prefix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}
		switch strings.ToLower(filepath.Ext(name)) {
		case ".csv", ".yaml", ".yml":
			files = append(files, filepath.Join(dir, name))
		}
	}
	sort.Strings(files)
	return files, nil
}
