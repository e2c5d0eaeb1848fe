package domain

import "time"

// Order represents a single order record as supplied by the order store or exchange.
type Order struct {
	ID             int64       // Unique identifier (usually from DB, 0 if not persisted)
	ExternalID     string      // Exchange order ID (optional)
	Symbol         string      // Instrument identifier (e.g., "ETHUSDT")
	Side           OrderSide   // buy or sell
	Quantity       float64     // Number of units
	Price          float64     // Requested/limit price
	ExecutionPrice *float64    // Actual fill price; nil when unknown
	Status         OrderStatus // Only filled orders participate in metrics
	Time           time.Time   // Time of the order/fill
}

// IsFilled checks if the order status is filled.
func (o *Order) IsFilled() bool {
	return o.Status == StatusFilled
}

// FillPrice returns the execution price when present, otherwise the requested price.
func (o *Order) FillPrice() float64 {
	if o.ExecutionPrice != nil {
		return *o.ExecutionPrice
	}
	return o.Price
}

// Float64 returns a pointer to v. Handy for populating ExecutionPrice.
func Float64(v float64) *float64 {
	return &v
}
