package app

import (
	"context"
	"time"

	"tradeStats/internal/domain"
)

// Mock implementations
type mockLogger struct {
	infoMsgs  []string
	errorMsgs []string
}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}

func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{}) {
	m.infoMsgs = append(m.infoMsgs, msg)
}

func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{}) {}

func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
	m.errorMsgs = append(m.errorMsgs, msg)
}

type mockOrderRepo struct {
	orders     []*domain.Order
	findErr    error
	saveErr    error
	existsErr  error
	sinceCalls []time.Time
	allCalls   int
	saved      []*domain.Order
}

func (m *mockOrderRepo) SaveOrder(ctx context.Context, order *domain.Order) (int64, error) {
	if m.saveErr != nil {
		return 0, m.saveErr
	}
	m.saved = append(m.saved, order)
	m.orders = append(m.orders, order)
	return int64(len(m.orders)), nil
}

func (m *mockOrderRepo) SaveOrders(ctx context.Context, orders []*domain.Order) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, orders...)
	m.orders = append(m.orders, orders...)
	return nil
}

func (m *mockOrderRepo) FindAll(ctx context.Context) ([]*domain.Order, error) {
	m.allCalls++
	return m.orders, m.findErr
}

func (m *mockOrderRepo) FindBySymbol(ctx context.Context, symbol string) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range m.orders {
		if o.Symbol == symbol {
			out = append(out, o)
		}
	}
	return out, m.findErr
}

func (m *mockOrderRepo) FindSince(ctx context.Context, since time.Time) ([]*domain.Order, error) {
	m.sinceCalls = append(m.sinceCalls, since)
	if m.findErr != nil {
		return nil, m.findErr
	}
	var out []*domain.Order
	for _, o := range m.orders {
		if !o.Time.Before(since) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockOrderRepo) ExistsByExternalID(ctx context.Context, externalID string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	for _, o := range m.orders {
		if o.ExternalID == externalID {
			return true, nil
		}
	}
	return false, nil
}

type mockSource struct {
	orders  map[string][]*domain.Order
	listErr error
	pingErr error
}

func (m *mockSource) Ping(ctx context.Context) error { return m.pingErr }

func (m *mockSource) ListOrders(ctx context.Context, symbol string, start, end time.Time) ([]*domain.Order, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.orders[symbol], nil
}

type recordedReport struct {
	tf      domain.Timeframe
	metrics domain.TradeMetrics
}

type mockRecorder struct {
	reports []recordedReport
	imports map[string][2]int
}

func (m *mockRecorder) RecordReport(tf domain.Timeframe, metrics *domain.TradeMetrics, elapsed time.Duration) {
	m.reports = append(m.reports, recordedReport{tf: tf, metrics: *metrics})
}

func (m *mockRecorder) RecordImport(symbol string, fetched, stored int) {
	if m.imports == nil {
		m.imports = make(map[string][2]int)
	}
	m.imports[symbol] = [2]int{fetched, stored}
}
