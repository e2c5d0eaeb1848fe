package prommetrics

import (
	"net/http"
	"time"

	"tradeStats/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tradestats"

// Recorder implements ports.MetricsRecorder with Prometheus collectors
// registered on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	totalTrades   *prometheus.GaugeVec
	winningTrades *prometheus.GaugeVec
	losingTrades  *prometheus.GaugeVec
	winRate       *prometheus.GaugeVec
	averageWin    *prometheus.GaugeVec
	averageLoss   *prometheus.GaugeVec
	profitFactor  *prometheus.GaugeVec
	totalPNL      *prometheus.GaugeVec

	reportsTotal   *prometheus.CounterVec
	computeSeconds prometheus.Histogram

	ordersFetched *prometheus.CounterVec
	ordersStored  *prometheus.CounterVec
}

// NewRecorder creates and registers all collectors.
func NewRecorder() *Recorder {
	gauge := func(name, help string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		}, []string{"timeframe"})
	}

	r := &Recorder{
		registry:      prometheus.NewRegistry(),
		totalTrades:   gauge("total_trades", "Filled sell orders in the timeframe."),
		winningTrades: gauge("winning_trades", "Matched trades with positive PNL."),
		losingTrades:  gauge("losing_trades", "Matched trades with zero or negative PNL."),
		winRate:       gauge("win_rate_percent", "Share of matched trades that were profitable."),
		averageWin:    gauge("average_win", "Mean PNL of winning trades."),
		averageLoss:   gauge("average_loss", "Mean absolute PNL of losing trades."),
		profitFactor:  gauge("profit_factor", "Total win amount divided by total loss amount."),
		totalPNL:      gauge("total_pnl", "Realized PNL over matched trades."),
		reportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_total",
			Help:      "Reports generated.",
		}, []string{"timeframe"}),
		computeSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_duration_seconds",
			Help:      "Time spent loading and computing a report.",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
		}),
		ordersFetched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_orders_fetched_total",
			Help:      "Orders returned by the exchange during imports.",
		}, []string{"symbol"}),
		ordersStored: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_orders_stored_total",
			Help:      "New orders persisted during imports.",
		}, []string{"symbol"}),
	}

	r.registry.MustRegister(
		r.totalTrades, r.winningTrades, r.losingTrades, r.winRate,
		r.averageWin, r.averageLoss, r.profitFactor, r.totalPNL,
		r.reportsTotal, r.computeSeconds, r.ordersFetched, r.ordersStored,
	)
	return r
}

// RecordReport publishes the metrics computed for a timeframe.
func (r *Recorder) RecordReport(tf domain.Timeframe, m *domain.TradeMetrics, elapsed time.Duration) {
	label := string(tf)
	r.reportsTotal.WithLabelValues(label).Inc()
	r.computeSeconds.Observe(elapsed.Seconds())
	if m == nil {
		return
	}
	r.totalTrades.WithLabelValues(label).Set(float64(m.TotalTrades))
	r.winningTrades.WithLabelValues(label).Set(float64(m.WinningTrades))
	r.losingTrades.WithLabelValues(label).Set(float64(m.LosingTrades))
	r.winRate.WithLabelValues(label).Set(m.WinRate)
	r.averageWin.WithLabelValues(label).Set(m.AverageWin)
	r.averageLoss.WithLabelValues(label).Set(m.AverageLoss)
	r.profitFactor.WithLabelValues(label).Set(m.ProfitFactor)
	r.totalPNL.WithLabelValues(label).Set(m.TotalPNL)
}

// RecordImport counts orders fetched and stored during an import run.
func (r *Recorder) RecordImport(symbol string, fetched, stored int) {
	r.ordersFetched.WithLabelValues(symbol).Add(float64(fetched))
	r.ordersStored.WithLabelValues(symbol).Add(float64(stored))
}

// Handler returns an HTTP handler serving the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
