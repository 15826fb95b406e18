// Package balance integrates daily net changes into a running projected
// balance with heuristic confidence bounds and summary aggregates.
package balance

import (
	"github.com/LucasAust/forecaster/internal/config"
	"github.com/LucasAust/forecaster/internal/ledger"
	"github.com/LucasAust/forecaster/internal/model"
)

// Integrate sums the merged window series into balance points and a summary.
//
// residuals carries the forecast variable component for the strictly-future
// days: residuals[i] is added to window day i+1, so day zero (the as-of day)
// uses only historical and scheduled amounts. The confidence band is the
// configured heuristic (VarianceFraction of each day's absolute net change,
// times BandMultiplier either side), not a calibrated interval.
func Integrate(led ledger.Ledger, residuals []float64, opening float64, methodUsed string, cfg config.ForecastConfig) ([]model.BalancePoint, model.Summary) {
	window := led.Window
	points := make([]model.BalancePoint, 0, len(window))

	sum := model.Summary{
		OpeningBalance:    opening,
		CategoryBreakdown: led.CategoryTotals,
		ExpenseBreakdown:  led.ExpenseTotals,
		IncomeBreakdown:   led.IncomeTotals,
		MethodUsed:        methodUsed,
		DaysToZero:        -1,
	}

	bal := opening
	minBal := opening
	minIdx := 0

	for i, day := range window {
		net := day.Net
		if i > 0 && i-1 < len(residuals) {
			net += residuals[i-1]
		}

		bal += net
		variance := cfg.VarianceFraction * abs(net)
		points = append(points, model.BalancePoint{
			Date:         day.Date.Format(model.DateFormat),
			NetChange:    net,
			Balance:      bal,
			BalanceLower: bal - cfg.BandMultiplier*variance,
			BalanceUpper: bal + cfg.BandMultiplier*variance,
		})

		if net > 0 {
			sum.TotalIncome += net
		} else if net < 0 {
			sum.TotalExpenses += net
		}
		// The minimum is over computed points only; the opening balance
		// seeds it just for the empty-window case.
		if i == 0 || bal < minBal {
			minBal = bal
			minIdx = i
		}
		if sum.DaysToZero < 0 && bal <= 0 {
			sum.DaysToZero = i
		}
	}

	if len(points) > 0 {
		sum.FinalBalance = points[len(points)-1].Balance
	} else {
		sum.FinalBalance = opening
	}
	sum.NetChange = sum.FinalBalance - opening
	sum.MinimumBalance = minBal
	sum.DaysToMin = minIdx
	if len(window) > 0 {
		sum.MinimumBalanceDate = window[minIdx].Date.Format(model.DateFormat)
	}

	return points, sum
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
