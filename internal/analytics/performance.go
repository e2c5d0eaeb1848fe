package analytics

import (
	"math"
	"sort"
	"time"

	"tradeStats/internal/domain"
)

// lot is a chunk of bought quantity waiting to be matched against a later sell.
type lot struct {
	price     float64
	remaining float64
	time      time.Time
}

// ComputeMetrics calculates trade performance metrics from a list of orders.
// Only filled orders participate. Sells are matched against earlier buys of the
// same symbol in FIFO order; any sell quantity without an open lot is dropped
// from PNL accounting but the sell still counts towards TotalTrades.
// The input slice and the orders it points to are never modified.
func ComputeMetrics(orders []*domain.Order) *domain.TradeMetrics {
	filledOrders := filterFilled(orders)
	if len(filledOrders) == 0 {
		return &domain.TradeMetrics{}
	}

	groups, symbols := groupBySymbol(filledOrders)
	var trades []domain.MatchedTrade
	for _, symbol := range symbols {
		trades = append(trades, matchSymbol(symbol, groups[symbol])...)
	}

	return aggregate(trades, countSells(filledOrders))
}

// ComputeSymbolMetrics calculates the same metrics as ComputeMetrics, separately
// for every symbol that has at least one filled order. Results are sorted by symbol.
func ComputeSymbolMetrics(orders []*domain.Order) []domain.SymbolMetrics {
	groups, symbols := groupBySymbol(filterFilled(orders))

	result := make([]domain.SymbolMetrics, 0, len(symbols))
	for _, symbol := range symbols {
		group := groups[symbol]
		metrics := aggregate(matchSymbol(symbol, group), countSells(group))
		result = append(result, domain.SymbolMetrics{Symbol: symbol, Metrics: *metrics})
	}
	return result
}

// MatchTrades returns the FIFO-matched trades for the filled orders, grouped by
// symbol (symbols in ascending order) and chronological within each symbol.
func MatchTrades(orders []*domain.Order) []domain.MatchedTrade {
	groups, symbols := groupBySymbol(filterFilled(orders))

	trades := make([]domain.MatchedTrade, 0)
	for _, symbol := range symbols {
		trades = append(trades, matchSymbol(symbol, groups[symbol])...)
	}
	return trades
}

func filterFilled(orders []*domain.Order) []*domain.Order {
	filled := make([]*domain.Order, 0, len(orders))
	for _, o := range orders {
		if o != nil && o.IsFilled() {
			filled = append(filled, o)
		}
	}
	return filled
}

func countSells(orders []*domain.Order) int {
	n := 0
	for _, o := range orders {
		if o.Side == domain.Sell {
			n++
		}
	}
	return n
}

// groupBySymbol partitions orders by symbol, each group sorted by time.
// Orders sharing a timestamp keep their input order.
func groupBySymbol(orders []*domain.Order) (map[string][]*domain.Order, []string) {
	groups := make(map[string][]*domain.Order)
	symbols := make([]string, 0)
	for _, o := range orders {
		if _, ok := groups[o.Symbol]; !ok {
			symbols = append(symbols, o.Symbol)
		}
		groups[o.Symbol] = append(groups[o.Symbol], o)
	}

	for _, group := range groups {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Time.Before(group[j].Time)
		})
	}
	sort.Strings(symbols)
	return groups, symbols
}

// matchSymbol runs FIFO lot matching over one symbol's chronologically sorted orders.
func matchSymbol(symbol string, orders []*domain.Order) []domain.MatchedTrade {
	var queue []lot
	var trades []domain.MatchedTrade

	for _, o := range orders {
		switch o.Side {
		case domain.Buy:
			// Lots always carry the requested price, never the execution price.
			queue = append(queue, lot{price: o.Price, remaining: o.Quantity, time: o.Time})
		case domain.Sell:
			if len(queue) == 0 {
				continue
			}
			exitPrice := o.FillPrice()
			remaining := o.Quantity
			for remaining > 0 && len(queue) > 0 {
				head := &queue[0]
				qty := math.Min(remaining, head.remaining)
				trades = append(trades, domain.MatchedTrade{
					Symbol:     symbol,
					EntryPrice: head.price,
					ExitPrice:  exitPrice,
					Quantity:   qty,
					PNL:        (exitPrice - head.price) * qty,
					EntryTime:  head.time,
					ExitTime:   o.Time,
				})
				remaining -= qty
				head.remaining -= qty
				if head.remaining <= 0 {
					queue = queue[1:]
				}
			}
		}
	}
	return trades
}

// aggregate folds matched trades into TradeMetrics. totalTrades is passed in
// because it counts filled sells, not matched trades.
func aggregate(trades []domain.MatchedTrade, totalTrades int) *domain.TradeMetrics {
	metrics := &domain.TradeMetrics{TotalTrades: totalTrades}

	var totalWin, lossSum float64
	for _, t := range trades {
		metrics.TotalPNL += t.PNL
		if t.IsProfitable() {
			metrics.WinningTrades++
			totalWin += t.PNL
		} else {
			lossSum += t.PNL
		}
	}
	// Zero-PNL trades land here, on the losing side.
	metrics.LosingTrades = len(trades) - metrics.WinningTrades
	totalLoss := math.Abs(lossSum)

	if len(trades) > 0 {
		metrics.WinRate = float64(metrics.WinningTrades) / float64(len(trades)) * 100
	}
	if metrics.WinningTrades > 0 {
		metrics.AverageWin = totalWin / float64(metrics.WinningTrades)
	}
	if metrics.LosingTrades > 0 {
		metrics.AverageLoss = totalLoss / float64(metrics.LosingTrades)
	}
	if totalLoss > 0 {
		metrics.ProfitFactor = totalWin / totalLoss
	}

	return metrics
}
