package analytics

import (
	"time"

	"tradeStats/internal/domain"
)

// WindowStart returns the beginning of the trailing window for tf ending at now.
// The boolean is false when tf has no window (all or unknown).
func WindowStart(tf domain.Timeframe, now time.Time) (time.Time, bool) {
	switch tf {
	case domain.TimeframeDaily:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), true
	case domain.TimeframeWeekly:
		return now.Add(-7 * 24 * time.Hour), true
	case domain.TimeframeMonthly:
		return now.Add(-30 * 24 * time.Hour), true
	default:
		return time.Time{}, false
	}
}

// FilterByTimeframe returns the orders whose time falls within the trailing
// window for tf ending at now (both bounds inclusive), preserving input order.
// Daily starts at midnight of now's calendar day; weekly and monthly are
// rolling 7 and 30 day windows. For TimeframeAll every order is returned.
func FilterByTimeframe(orders []*domain.Order, tf domain.Timeframe, now time.Time) []*domain.Order {
	start, ok := WindowStart(tf, now)

	result := make([]*domain.Order, 0, len(orders))
	for _, o := range orders {
		if o == nil {
			continue
		}
		if ok && (o.Time.Before(start) || o.Time.After(now)) {
			continue
		}
		result = append(result, o)
	}
	return result
}
