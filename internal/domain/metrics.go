package domain

// TradeMetrics summarizes trading performance over a set of orders.
type TradeMetrics struct {
	TotalTrades   int     // Count of filled sell orders, matched or not
	WinningTrades int     // Matched trades with PNL > 0
	LosingTrades  int     // Matched trades with PNL <= 0
	WinRate       float64 // Percentage (0-100) of matched trades that are profitable
	AverageWin    float64
	AverageLoss   float64 // Absolute value
	ProfitFactor  float64 // Total win amount / total loss amount, 0 when there are no losses
	TotalPNL      float64
}

// SymbolMetrics holds the metrics for a single instrument.
type SymbolMetrics struct {
	Symbol  string
	Metrics TradeMetrics
}
