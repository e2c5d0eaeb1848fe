package domain

import "time"

// MatchedTrade is a sell quantity paired against one buy lot.
type MatchedTrade struct {
	Symbol     string
	EntryPrice float64   // Price of the matched buy lot
	ExitPrice  float64   // Execution price of the sell
	Quantity   float64   // Matched amount
	PNL        float64   // (ExitPrice - EntryPrice) * Quantity
	EntryTime  time.Time // Time of the buy lot
	ExitTime   time.Time // Time of the sell
}

// IsProfitable reports whether the trade realized a strictly positive PNL.
func (t MatchedTrade) IsProfitable() bool {
	return t.PNL > 0
}
