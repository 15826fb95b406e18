package balance

import (
	"math"
	"testing"
	"time"

	"github.com/LucasAust/forecaster/internal/config"
	"github.com/LucasAust/forecaster/internal/ledger"
)

func windowLedger(start time.Time, nets ...float64) ledger.Ledger {
	led := ledger.Ledger{
		CategoryTotals: map[string]float64{},
		ExpenseTotals:  map[string]float64{},
		IncomeTotals:   map[string]float64{},
	}
	for i, net := range nets {
		led.Window = append(led.Window, ledger.Day{Date: start.AddDate(0, 0, i), Net: net})
	}
	return led
}

func TestIntegrateRunningBalance(t *testing.T) {
	start := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	led := windowLedger(start, 0, -1200, 0, 1800, -50)

	points, sum := Integrate(led, nil, 800, "hybrid", config.DefaultConfig().Forecast)

	if len(points) != 5 {
		t.Fatalf("got %d points, want 5", len(points))
	}

	wantBalances := []float64{800, -400, -400, 1400, 1350}
	for i, p := range points {
		if math.Abs(p.Balance-wantBalances[i]) > 1e-6 {
			t.Errorf("balance[%d] = %v, want %v", i, p.Balance, wantBalances[i])
		}
	}

	// Final balance minus opening equals the sum of net changes.
	var netSum float64
	for _, p := range points {
		netSum += p.NetChange
	}
	if math.Abs((sum.FinalBalance-sum.OpeningBalance)-netSum) > 1e-6 {
		t.Errorf("final-opening = %v, sum of nets = %v", sum.FinalBalance-sum.OpeningBalance, netSum)
	}

	if sum.TotalIncome != 1800 {
		t.Errorf("total income = %v, want 1800", sum.TotalIncome)
	}
	if sum.TotalExpenses != -1250 {
		t.Errorf("total expenses = %v, want -1250", sum.TotalExpenses)
	}
	if sum.MinimumBalance != -400 || sum.MinimumBalanceDate != "2025-04-02" {
		t.Errorf("minimum = %v on %s, want -400 on 2025-04-02", sum.MinimumBalance, sum.MinimumBalanceDate)
	}
	if sum.DaysToZero != 1 {
		t.Errorf("days to zero = %d, want 1", sum.DaysToZero)
	}
}

func TestIntegrateBandsBracketBalance(t *testing.T) {
	start := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	led := windowLedger(start, 0, -300, 120, 0, -45.5, 900)

	points, _ := Integrate(led, nil, 100, "hybrid", config.DefaultConfig().Forecast)

	for i, p := range points {
		if p.BalanceLower > p.Balance || p.Balance > p.BalanceUpper {
			t.Errorf("point %d: band [%v, %v] does not bracket balance %v", i, p.BalanceLower, p.Balance, p.BalanceUpper)
		}
	}

	// Day 1: variance = 0.10*300 = 30, band = balance +/- 60.
	if got := points[1].Balance - points[1].BalanceLower; math.Abs(got-60) > 1e-9 {
		t.Errorf("lower band width = %v, want 60", got)
	}
}

func TestIntegrateResidualsApplyToFutureDaysOnly(t *testing.T) {
	start := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	led := windowLedger(start, 50, 0, 0)
	residuals := []float64{-10, -20}

	points, _ := Integrate(led, residuals, 0, "hybrid", config.DefaultConfig().Forecast)

	if points[0].NetChange != 50 {
		t.Errorf("day 0 net = %v, want 50 (no residual)", points[0].NetChange)
	}
	if points[1].NetChange != -10 {
		t.Errorf("day 1 net = %v, want -10", points[1].NetChange)
	}
	if points[2].NetChange != -20 {
		t.Errorf("day 2 net = %v, want -20", points[2].NetChange)
	}
}

func TestIntegrateMinimumIsSeriesMin(t *testing.T) {
	start := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

	// A day-0 deposit lifts every point above the opening balance; the
	// reported minimum must come from the points, not the opening.
	led := windowLedger(start, 1100, 0, 500)
	_, sum := Integrate(led, nil, 500, "hybrid", config.DefaultConfig().Forecast)

	if sum.MinimumBalance != 1600 {
		t.Errorf("minimum balance = %v, want 1600 (series min, not opening)", sum.MinimumBalance)
	}
	if sum.MinimumBalanceDate != "2025-04-01" {
		t.Errorf("minimum balance date = %s, want 2025-04-01", sum.MinimumBalanceDate)
	}
	if sum.DaysToMin != 0 {
		t.Errorf("days to min = %d, want 0", sum.DaysToMin)
	}

	// Later dip below the day-0 level still wins.
	led = windowLedger(start, 1100, -900, 500)
	_, sum = Integrate(led, nil, 500, "hybrid", config.DefaultConfig().Forecast)
	if sum.MinimumBalance != 700 || sum.DaysToMin != 1 {
		t.Errorf("minimum = %v on day %d, want 700 on day 1", sum.MinimumBalance, sum.DaysToMin)
	}
}

func TestIntegrateEmptyWindow(t *testing.T) {
	_, sum := Integrate(ledger.Ledger{}, nil, 250, "hybrid", config.DefaultConfig().Forecast)
	if sum.FinalBalance != 250 || sum.NetChange != 0 {
		t.Fatalf("summary = %+v, want final balance 250 and zero net change", sum)
	}
	if sum.DaysToZero != -1 {
		t.Fatalf("days to zero = %d, want -1", sum.DaysToZero)
	}
}

func TestIntegrateMethodCarriedThrough(t *testing.T) {
	start := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	_, sum := Integrate(windowLedger(start, 0), nil, 10, "decomposition_fallback_hybrid", config.DefaultConfig().Forecast)
	if sum.MethodUsed != "decomposition_fallback_hybrid" {
		t.Fatalf("method used = %q", sum.MethodUsed)
	}
}
