package app

import (
	"context"
	"fmt"
	"time"

	"tradeStats/internal/analytics"
	"tradeStats/internal/domain"
	"tradeStats/internal/ports"
)

// Report is the outcome of one metrics run.
type Report struct {
	Timeframe   domain.Timeframe
	GeneratedAt time.Time
	WindowStart time.Time // Zero for TimeframeAll
	OrderCount  int       // Orders inside the window, any status
	Metrics     domain.TradeMetrics
	BySymbol    []domain.SymbolMetrics
	Equity      *analytics.EquityStats
}

// ReportService loads orders from the repository and computes trade metrics for a timeframe.
type ReportService struct {
	logger   ports.Logger
	repo     ports.OrderRepository
	recorder ports.MetricsRecorder
	now      func() time.Time
	balance  float64
}

// ReportOption customizes a ReportService.
type ReportOption func(*ReportService)

// WithClock overrides the reference clock used for timeframe windows.
func WithClock(now func() time.Time) ReportOption {
	return func(s *ReportService) { s.now = now }
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(r ports.MetricsRecorder) ReportOption {
	return func(s *ReportService) { s.recorder = r }
}

// WithStartingBalance sets the balance the equity curve starts from.
func WithStartingBalance(balance float64) ReportOption {
	return func(s *ReportService) { s.balance = balance }
}

// NewReportService creates a new report service.
func NewReportService(logger ports.Logger, repo ports.OrderRepository, opts ...ReportOption) (*ReportService, error) {
	if logger == nil || repo == nil {
		return nil, fmt.Errorf("missing required dependencies for ReportService")
	}
	s := &ReportService{logger: logger, repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Generate computes metrics over the stored orders that fall in tf.
func (s *ReportService) Generate(ctx context.Context, tf domain.Timeframe) (*Report, error) {
	started := time.Now()
	now := s.now()

	windowStart, windowed := analytics.WindowStart(tf, now)

	var orders []*domain.Order
	var err error
	if windowed {
		orders, err = s.repo.FindSince(ctx, windowStart)
	} else {
		orders, err = s.repo.FindAll(ctx)
	}
	if err != nil {
		s.logger.Error(ctx, err, "Failed to load orders", map[string]interface{}{"timeframe": tf})
		return nil, fmt.Errorf("loading orders for %s report: %w", tf, err)
	}

	// FindSince has no upper bound, the filter trims anything after now.
	orders = analytics.FilterByTimeframe(orders, tf, now)
	report := BuildReport(orders, tf, now)
	report.WindowStart = windowStart
	report.Equity = analytics.AnalyzeEquity(analytics.MatchTrades(orders), s.balance)

	if s.recorder != nil {
		s.recorder.RecordReport(tf, &report.Metrics, time.Since(started))
	}
	s.logger.Info(ctx, "Report generated", map[string]interface{}{
		"timeframe":   tf,
		"orders":      report.OrderCount,
		"totalTrades": report.Metrics.TotalTrades,
		"winRate":     report.Metrics.WinRate,
		"totalPnl":    report.Metrics.TotalPNL,
		"maxDrawdown": report.Equity.MaxDrawdown,
	})
	return report, nil
}

// BuildReport computes a report from orders that are already restricted to the timeframe.
func BuildReport(orders []*domain.Order, tf domain.Timeframe, now time.Time) *Report {
	return &Report{
		Timeframe:   tf,
		GeneratedAt: now,
		OrderCount:  len(orders),
		Metrics:     *analytics.ComputeMetrics(orders),
		BySymbol:    analytics.ComputeSymbolMetrics(orders),
	}
}
