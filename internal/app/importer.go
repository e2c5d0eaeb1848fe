package app

import (
	"context"
	"fmt"
	"time"

	"tradeStats/internal/domain"
	"tradeStats/internal/ports"
)

// ImportResult summarizes an import run for one symbol.
type ImportResult struct {
	Symbol  string
	Fetched int
	Stored  int
	Skipped int // Already present in the repository
}

// ImportService copies order history from an exchange into the repository.
type ImportService struct {
	logger   ports.Logger
	source   ports.OrderSource
	repo     ports.OrderRepository
	recorder ports.MetricsRecorder
}

// NewImportService creates a new import service. recorder may be nil.
func NewImportService(logger ports.Logger, source ports.OrderSource, repo ports.OrderRepository, recorder ports.MetricsRecorder) (*ImportService, error) {
	if logger == nil || source == nil || repo == nil {
		return nil, fmt.Errorf("missing required dependencies for ImportService")
	}
	return &ImportService{logger: logger, source: source, repo: repo, recorder: recorder}, nil
}

// Import fetches orders for every symbol between start and end and stores the ones not seen before.
// It stops at the first failing symbol and returns the results gathered so far.
func (s *ImportService) Import(ctx context.Context, symbols []string, start, end time.Time) ([]ImportResult, error) {
	if err := s.source.Ping(ctx); err != nil {
		return nil, fmt.Errorf("exchange not reachable: %w", err)
	}

	results := make([]ImportResult, 0, len(symbols))
	for _, symbol := range symbols {
		res, err := s.importSymbol(ctx, symbol, start, end)
		if err != nil {
			s.logger.Error(ctx, err, "Import failed", map[string]interface{}{"symbol": symbol})
			return results, err
		}
		if s.recorder != nil {
			s.recorder.RecordImport(symbol, res.Fetched, res.Stored)
		}
		s.logger.Info(ctx, "Import finished", map[string]interface{}{
			"symbol": symbol, "fetched": res.Fetched, "stored": res.Stored, "skipped": res.Skipped,
		})
		results = append(results, res)
	}
	return results, nil
}

func (s *ImportService) importSymbol(ctx context.Context, symbol string, start, end time.Time) (ImportResult, error) {
	res := ImportResult{Symbol: symbol}

	orders, err := s.source.ListOrders(ctx, symbol, start, end)
	if err != nil {
		return res, fmt.Errorf("listing orders for %s: %w", symbol, err)
	}
	res.Fetched = len(orders)

	fresh := make([]*domain.Order, 0, len(orders))
	for _, o := range orders {
		if o.ExternalID != "" {
			exists, err := s.repo.ExistsByExternalID(ctx, o.ExternalID)
			if err != nil {
				return res, fmt.Errorf("checking order %s: %w", o.ExternalID, err)
			}
			if exists {
				res.Skipped++
				continue
			}
		}
		fresh = append(fresh, o)
	}

	if err := s.repo.SaveOrders(ctx, fresh); err != nil {
		return res, fmt.Errorf("saving %d orders for %s: %w", len(fresh), symbol, err)
	}
	res.Stored = len(fresh)
	return res, nil
}
