package ports

import (
	"time"

	"tradeStats/internal/domain"
)

// MetricsRecorder exports computed trade metrics to a monitoring backend.
type MetricsRecorder interface {
	// RecordReport publishes the metrics computed for a timeframe and how long it took.
	RecordReport(tf domain.Timeframe, metrics *domain.TradeMetrics, elapsed time.Duration)
	// RecordImport counts orders fetched and stored during an import run.
	RecordImport(symbol string, fetched, stored int)
}
