package schedule

import (
	"testing"
	"time"

	"github.com/LucasAust/forecaster/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intp(v int) *int { return &v }

func TestExpandMonthlyClampsShortMonths(t *testing.T) {
	rules := []model.ScheduleRule{
		{Pattern: model.PatternMonthly, Amount: -50, Description: "gym", DayOfMonth: intp(31)},
	}

	// Window covering January through April 2025.
	events, skipped := Expand(rules, date(2025, time.January, 1), 120)
	if len(skipped) != 0 {
		t.Fatalf("skipped = %v, want none", skipped)
	}

	want := []time.Time{
		date(2025, time.January, 31),
		date(2025, time.February, 28),
		date(2025, time.March, 31),
		date(2025, time.April, 30),
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d: %v", len(events), len(want), events)
	}
	for i, ev := range events {
		if !ev.Date.Equal(want[i]) {
			t.Errorf("event %d on %s, want %s", i, ev.Date.Format(model.DateFormat), want[i].Format(model.DateFormat))
		}
		// Clamped day never exceeds the requested day.
		if ev.Date.Day() > 31 {
			t.Errorf("event %d day %d exceeds requested day", i, ev.Date.Day())
		}
	}
}

func TestExpandMonthlyLastDay(t *testing.T) {
	rules := []model.ScheduleRule{
		{Pattern: model.PatternMonthly, Amount: -10, Description: "sweep", DayOfMonth: intp(0)},
	}
	events, _ := Expand(rules, date(2024, time.February, 1), 60)
	if len(events) == 0 {
		t.Fatal("no events expanded")
	}
	if got := events[0].Date; !got.Equal(date(2024, time.February, 29)) {
		t.Fatalf("leap February last day = %s, want 2024-02-29", got.Format(model.DateFormat))
	}
}

func TestExpandWeeklyAndBiweeklyAnchor(t *testing.T) {
	// 2025-06-30 is a Monday. Weekday 4 = Friday.
	start := date(2025, time.June, 30)
	rules := []model.ScheduleRule{
		{Pattern: model.PatternWeekly, Amount: -80, Description: "groceries", Weekday: intp(4)},
		{Pattern: model.PatternBiweekly, Amount: 1800, Description: "paycheck", Weekday: intp(4)},
	}

	events, _ := Expand(rules, start, 28)

	var weekly, biweekly []time.Time
	for _, ev := range events {
		if ev.Description == "groceries" {
			weekly = append(weekly, ev.Date)
		} else {
			biweekly = append(biweekly, ev.Date)
		}
	}

	wantWeekly := []time.Time{
		date(2025, time.July, 4),
		date(2025, time.July, 11),
		date(2025, time.July, 18),
		date(2025, time.July, 25),
	}
	if len(weekly) != len(wantWeekly) {
		t.Fatalf("weekly events = %v, want %v", weekly, wantWeekly)
	}
	for i := range weekly {
		if !weekly[i].Equal(wantWeekly[i]) {
			t.Errorf("weekly[%d] = %s, want %s", i, weekly[i], wantWeekly[i])
		}
	}

	wantBiweekly := []time.Time{
		date(2025, time.July, 4),
		date(2025, time.July, 18),
	}
	if len(biweekly) != len(wantBiweekly) {
		t.Fatalf("biweekly events = %v, want %v", biweekly, wantBiweekly)
	}
	for i := range biweekly {
		if !biweekly[i].Equal(wantBiweekly[i]) {
			t.Errorf("biweekly[%d] = %s, want %s", i, biweekly[i], wantBiweekly[i])
		}
	}
}

func TestExpandOneOffWindowBounds(t *testing.T) {
	start := date(2025, time.March, 1)
	rules := []model.ScheduleRule{
		{Pattern: model.PatternOneOff, Amount: -200, Description: "inside", Date: "2025-03-15"},
		{Pattern: model.PatternOneOff, Amount: -200, Description: "on end", Date: "2025-03-31"}, // == start+30, outside half-open window
		{Pattern: model.PatternOneOff, Amount: -200, Description: "before", Date: "2025-02-28"},
	}

	events, skipped := Expand(rules, start, 30)
	if len(skipped) != 0 {
		t.Fatalf("skipped = %v, want none", skipped)
	}
	if len(events) != 1 || events[0].Description != "inside" {
		t.Fatalf("events = %v, want only the inside event", events)
	}
}

func TestExpandSkipsMalformedRules(t *testing.T) {
	start := date(2025, time.March, 3)
	rules := []model.ScheduleRule{
		{Pattern: model.PatternMonthly, Amount: -1200, Description: "rent"},                 // missing day_of_month
		{Pattern: model.PatternWeekly, Amount: -40, Description: "fuel"},                    // missing weekday
		{Pattern: model.PatternOneOff, Amount: -99, Description: "refund", Date: "not-a-date"},
		{Pattern: "annually", Amount: -10, Description: "domain"},                           // unknown pattern
		{Pattern: model.PatternWeekly, Amount: -25, Description: "coffee", Weekday: intp(0)}, // valid
	}

	events, skipped := Expand(rules, start, 14)
	if len(skipped) != 4 {
		t.Fatalf("skipped %d rules (%v), want 4", len(skipped), skipped)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2 Monday coffees", len(events))
	}
}

func TestExpandAllDatesInsideWindow(t *testing.T) {
	start := date(2025, time.January, 6)
	horizon := 45
	end := start.AddDate(0, 0, horizon)

	rules := []model.ScheduleRule{
		{Pattern: model.PatternMonthly, Amount: -1200, Description: "rent", DayOfMonth: intp(1)},
		{Pattern: model.PatternWeekly, Amount: -60, Description: "groceries", Weekday: intp(5)},
		{Pattern: model.PatternBiweekly, Amount: 2000, Description: "salary", Weekday: intp(4)},
		{Pattern: model.PatternOneOff, Amount: -300, Description: "insurance", Date: "2025-02-01"},
	}

	events, _ := Expand(rules, start, horizon)
	if len(events) == 0 {
		t.Fatal("no events expanded")
	}
	for _, ev := range events {
		if ev.Date.Before(start) || !ev.Date.Before(end) {
			t.Errorf("event %q on %s is outside [%s, %s)", ev.Description,
				ev.Date.Format(model.DateFormat), start.Format(model.DateFormat), end.Format(model.DateFormat))
		}
	}
}

func TestExpandMonthlyAnchorBeforeWindow(t *testing.T) {
	rules := []model.ScheduleRule{
		{Pattern: model.PatternMonthly, Amount: -15, Description: "streaming", DayOfMonth: intp(15), Date: "2024-11-15"},
	}
	events, _ := Expand(rules, date(2025, time.January, 1), 31)
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if !events[0].Date.Equal(date(2025, time.January, 15)) {
		t.Fatalf("event on %s, want 2025-01-15", events[0].Date.Format(model.DateFormat))
	}
}
