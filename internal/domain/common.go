package domain

import (
	"fmt"
	"strings"
)

// OrderSide represents the side of an order (buy or sell).
type OrderSide string

const (
	Buy  OrderSide = "buy"
	Sell OrderSide = "sell"
)

// OrderStatus represents the lifecycle status of an order.
type OrderStatus string

const (
	StatusFilled    OrderStatus = "filled"
	StatusPending   OrderStatus = "pending"
	StatusCancelled OrderStatus = "cancelled"
	StatusRejected  OrderStatus = "rejected"
)

// Timeframe selects a trailing window of orders for reporting.
type Timeframe string

const (
	TimeframeDaily   Timeframe = "daily"
	TimeframeWeekly  Timeframe = "weekly"
	TimeframeMonthly Timeframe = "monthly"
	TimeframeAll     Timeframe = "all" // No window, every order participates
)

// Timeframes lists the windowed timeframes in ascending length.
var Timeframes = []Timeframe{TimeframeDaily, TimeframeWeekly, TimeframeMonthly}

// ParseOrderSide converts a case-insensitive string to an OrderSide.
func ParseOrderSide(s string) (OrderSide, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	default:
		return "", fmt.Errorf("unknown order side %q", s)
	}
}

// ParseOrderStatus converts a case-insensitive string to an OrderStatus.
// Unrecognised values are kept verbatim (lowercased) since only "filled" matters for metrics.
func ParseOrderStatus(s string) OrderStatus {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "filled":
		return StatusFilled
	case "new", "pending", "partially_filled", "open":
		return StatusPending
	case "canceled", "cancelled", "expired":
		return StatusCancelled
	case "rejected":
		return StatusRejected
	default:
		return OrderStatus(v)
	}
}

// ParseTimeframe converts a case-insensitive string to a Timeframe.
func ParseTimeframe(s string) (Timeframe, error) {
	switch tf := Timeframe(strings.ToLower(strings.TrimSpace(s))); tf {
	case TimeframeDaily, TimeframeWeekly, TimeframeMonthly, TimeframeAll:
		return tf, nil
	default:
		return "", fmt.Errorf("unknown timeframe %q (expected daily, weekly, monthly or all)", s)
	}
}
