package analytics

import (
	"sort"
	"time"

	"tradeStats/internal/domain"
)

// EquityStats describes the path realized PNL took, trade by trade.
type EquityStats struct {
	StartingBalance      float64
	FinalBalance         float64
	MaxDrawdown          float64 // Fraction of the running peak, 0..1
	MaxConsecutiveWins   int
	MaxConsecutiveLosses int
	Expectancy           float64 // Mean PNL per matched trade
	AverageHoldTime      time.Duration
	Curve                []EquityPoint
	Drawdowns            []Drawdown
	MonthlyPNL           map[string]float64 // Keyed by "2006-01" of the exit time
}

// EquityPoint is the balance right after a matched trade closed.
type EquityPoint struct {
	Time     time.Time
	Balance  float64
	Drawdown float64
}

// Drawdown is a stretch during which the balance stayed below its previous peak.
type Drawdown struct {
	Start     time.Time
	End       time.Time // Zero while the drawdown is still open
	Peak      float64
	Depth     float64 // Deepest fraction below Peak
	Recovered bool
}

// MonthlyReturn pairs a month with its realized PNL.
type MonthlyReturn struct {
	Month time.Time
	PNL   float64
}

// AnalyzeEquity replays matched trades in exit order on top of startingBalance.
// Zero-PNL trades extend a losing streak, matching the win/loss split used by ComputeMetrics.
func AnalyzeEquity(trades []domain.MatchedTrade, startingBalance float64) *EquityStats {
	stats := &EquityStats{
		StartingBalance: startingBalance,
		FinalBalance:    startingBalance,
		MonthlyPNL:      make(map[string]float64),
		Curve:           make([]EquityPoint, 0, len(trades)),
		Drawdowns:       make([]Drawdown, 0),
	}
	if len(trades) == 0 {
		return stats
	}

	ordered := make([]domain.MatchedTrade, len(trades))
	copy(ordered, trades)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ExitTime.Before(ordered[j].ExitTime)
	})

	balance := startingBalance
	peak := startingBalance
	var open *Drawdown
	var wins, losses int
	var totalPNL float64
	var totalHold time.Duration

	for _, t := range ordered {
		if t.IsProfitable() {
			wins++
			losses = 0
		} else {
			losses++
			wins = 0
		}
		stats.MaxConsecutiveWins = max(stats.MaxConsecutiveWins, wins)
		stats.MaxConsecutiveLosses = max(stats.MaxConsecutiveLosses, losses)

		balance += t.PNL
		totalPNL += t.PNL
		totalHold += t.ExitTime.Sub(t.EntryTime)
		stats.MonthlyPNL[t.ExitTime.Format("2006-01")] += t.PNL

		var dd float64
		if balance >= peak {
			peak = balance
			if open != nil {
				open.End = t.ExitTime
				open.Recovered = true
				stats.Drawdowns = append(stats.Drawdowns, *open)
				open = nil
			}
		} else {
			if peak > 0 {
				dd = (peak - balance) / peak
			}
			if open == nil {
				open = &Drawdown{Start: t.ExitTime, Peak: peak}
			}
			open.Depth = max(open.Depth, dd)
			stats.MaxDrawdown = max(stats.MaxDrawdown, dd)
		}

		stats.Curve = append(stats.Curve, EquityPoint{Time: t.ExitTime, Balance: balance, Drawdown: dd})
	}

	if open != nil {
		stats.Drawdowns = append(stats.Drawdowns, *open)
	}

	stats.FinalBalance = balance
	stats.Expectancy = totalPNL / float64(len(ordered))
	stats.AverageHoldTime = totalHold / time.Duration(len(ordered))
	return stats
}

// MonthlyReturns returns MonthlyPNL as a slice sorted by month.
func (s *EquityStats) MonthlyReturns() []MonthlyReturn {
	returns := make([]MonthlyReturn, 0, len(s.MonthlyPNL))
	for month, pnl := range s.MonthlyPNL {
		date, _ := time.Parse("2006-01", month)
		returns = append(returns, MonthlyReturn{Month: date, PNL: pnl})
	}
	sort.Slice(returns, func(i, j int) bool {
		return returns[i].Month.Before(returns[j].Month)
	})
	return returns
}
