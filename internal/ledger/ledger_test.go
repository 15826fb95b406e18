package ledger

import (
	"testing"
	"time"

	"github.com/LucasAust/forecaster/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildWindowIsContiguousAndZeroFilled(t *testing.T) {
	start := date(2025, time.May, 1)
	events := []model.ScheduledEvent{
		{Date: date(2025, time.May, 3), Amount: -120, Description: "insurance"},
		{Date: date(2025, time.May, 3), Amount: -30, Description: "water"},
		{Date: date(2025, time.May, 9), Amount: 2500, Description: "salary"},
	}

	led := Build(nil, events, start, 10)

	if len(led.Window) != 11 {
		t.Fatalf("window has %d days, want 11", len(led.Window))
	}
	for i, day := range led.Window {
		want := start.AddDate(0, 0, i)
		if !day.Date.Equal(want) {
			t.Fatalf("window[%d] date = %s, want %s", i, day.Date, want)
		}
	}
	if led.Window[2].Net != -150 {
		t.Errorf("same-date amounts not summed: day 2 net = %v, want -150", led.Window[2].Net)
	}
	if led.Window[8].Net != 2500 {
		t.Errorf("day 8 net = %v, want 2500", led.Window[8].Net)
	}
	if led.Window[5].Net != 0 {
		t.Errorf("inactive day net = %v, want 0", led.Window[5].Net)
	}
}

func TestBuildHistorySeries(t *testing.T) {
	start := date(2025, time.May, 10)
	txs := []model.Transaction{
		{Date: "2025-05-05", Amount: -40, Category: "groceries"},
		{Date: "2025-05-05", Amount: -10, Category: "dining"},
		{Date: "2025-05-08", Amount: 1200, Category: "income"},
	}

	led := Build(txs, nil, start, 5)

	// May 5 through May 9 inclusive.
	if len(led.History) != 5 {
		t.Fatalf("history has %d days, want 5", len(led.History))
	}
	if led.History[0].Net != -50 {
		t.Errorf("history[0] net = %v, want -50", led.History[0].Net)
	}
	if led.History[1].Net != 0 {
		t.Errorf("gap day net = %v, want 0", led.History[1].Net)
	}
	if led.History[3].Net != 1200 {
		t.Errorf("history[3] net = %v, want 1200", led.History[3].Net)
	}
}

func TestBuildSkipsUnparsableTransactions(t *testing.T) {
	start := date(2025, time.May, 10)
	txs := []model.Transaction{
		{Date: "05/05/2025", Amount: -40},
		{Date: "", Amount: -10},
		{Date: "2025-05-08", Amount: 100, Category: "income"},
	}

	led := Build(txs, nil, start, 5)
	if led.SkippedTransactions != 2 {
		t.Fatalf("skipped = %d, want 2", led.SkippedTransactions)
	}
	if len(led.History) != 2 {
		t.Fatalf("history has %d days, want 2", len(led.History))
	}
}

func TestBuildCategoryBreakdowns(t *testing.T) {
	start := date(2025, time.May, 10)
	txs := []model.Transaction{
		{Date: "2025-05-01", Amount: -120, Category: "dining"},
		{Date: "2025-05-02", Amount: -230, Category: "dining"},
		{Date: "2025-05-03", Amount: 3000, Category: "income"},
		{Date: "2025-05-04", Amount: -60},
	}

	led := Build(txs, nil, start, 5)

	if got := led.CategoryTotals["dining"]; got != -350 {
		t.Errorf("dining total = %v, want -350", got)
	}
	if got := led.ExpenseTotals["dining"]; got != 350 {
		t.Errorf("dining expense magnitude = %v, want 350", got)
	}
	if got := led.IncomeTotals["income"]; got != 3000 {
		t.Errorf("income total = %v, want 3000", got)
	}
	if got := led.CategoryTotals["other"]; got != -60 {
		t.Errorf("uncategorized bucket = %v, want -60", got)
	}
}

func TestBuildTransactionOnStartDateJoinsWindow(t *testing.T) {
	start := date(2025, time.May, 10)
	txs := []model.Transaction{
		{Date: "2025-05-10", Amount: -75, Category: "gas"},
	}
	led := Build(txs, nil, start, 3)

	if len(led.History) != 0 {
		t.Fatalf("history has %d days, want none", len(led.History))
	}
	if led.Window[0].Net != -75 {
		t.Fatalf("window[0] net = %v, want -75", led.Window[0].Net)
	}
}
