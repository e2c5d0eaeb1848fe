package ports

import (
	"context"
	"time"

	"tradeStats/internal/domain"
)

// OrderRepository defines the interface for storing and retrieving order records.
type OrderRepository interface {
	// SaveOrder stores a new order and returns its assigned ID.
	SaveOrder(ctx context.Context, order *domain.Order) (int64, error)
	// SaveOrders stores a batch of orders atomically.
	SaveOrders(ctx context.Context, orders []*domain.Order) error
	// FindAll retrieves all orders, ordered by time ascending.
	FindAll(ctx context.Context) ([]*domain.Order, error)
	// FindBySymbol retrieves all orders for a symbol, ordered by time ascending.
	FindBySymbol(ctx context.Context, symbol string) ([]*domain.Order, error)
	// FindSince retrieves orders with time >= since, ordered by time ascending.
	FindSince(ctx context.Context, since time.Time) ([]*domain.Order, error)
	// ExistsByExternalID reports whether an order with the given exchange ID is stored.
	ExistsByExternalID(ctx context.Context, externalID string) (bool, error)
}
