package ports

import (
	"context"
	"time"

	"tradeStats/internal/domain"
)

// OrderSource defines the interface for pulling historical orders from an exchange.
// This abstraction allows decoupling the import logic from specific exchange implementations.
type OrderSource interface {
	// Ping checks the connectivity to the exchange API.
	Ping(ctx context.Context) error

	// ListOrders retrieves all orders (any status) for symbol placed between start and end.
	ListOrders(ctx context.Context, symbol string, start, end time.Time) ([]*domain.Order, error)
}
