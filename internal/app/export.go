package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tradeStats/internal/domain"
	"tradeStats/internal/ports"
	"tradeStats/internal/utils"
)

// ExportOrders writes the stored orders of the given symbols placed at or after since
// to filename as CSV, creating the parent directory if needed. An empty symbols list
// exports every symbol. It returns the number of orders written.
func ExportOrders(ctx context.Context, repo ports.OrderRepository, symbols []string, since time.Time, filename string) (int, error) {
	orders, err := repo.FindSince(ctx, since)
	if err != nil {
		return 0, fmt.Errorf("loading orders for export: %w", err)
	}

	if len(symbols) > 0 {
		wanted := make(map[string]struct{}, len(symbols))
		for _, s := range symbols {
			wanted[s] = struct{}{}
		}
		kept := make([]*domain.Order, 0, len(orders))
		for _, o := range orders {
			if _, ok := wanted[o.Symbol]; ok {
				kept = append(kept, o)
			}
		}
		orders = kept
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return 0, fmt.Errorf("creating export directory: %w", err)
	}
	if err := utils.WriteOrdersToCSV(orders, filename); err != nil {
		return 0, fmt.Errorf("writing %s: %w", filename, err)
	}
	return len(orders), nil
}
