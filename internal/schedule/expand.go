// Package schedule expands recurring rule definitions into concrete dated
// events across a forecast window.
package schedule

import (
	"fmt"
	"math"
	"time"

	"github.com/LucasAust/forecaster/internal/model"
)

// Expand turns rules into concrete events with dates in
// [start, start+horizonDays). Malformed rules are skipped, not fatal: each
// skip is described in the returned diagnostics slice and the remaining
// rules still expand.
func Expand(rules []model.ScheduleRule, start time.Time, horizonDays int) ([]model.ScheduledEvent, []string) {
	start = midnight(start)
	end := start.AddDate(0, 0, horizonDays) // exclusive

	var events []model.ScheduledEvent
	var skipped []string

	for i, r := range rules {
		if math.IsNaN(r.Amount) || math.IsInf(r.Amount, 0) {
			skipped = append(skipped, skipReason(i, r, "amount is not a finite number"))
			continue
		}

		switch r.Pattern {
		case model.PatternMonthly:
			if r.DayOfMonth == nil {
				skipped = append(skipped, skipReason(i, r, "monthly rule missing day_of_month"))
				continue
			}
			events = append(events, expandMonthly(r, start, end)...)

		case model.PatternWeekly:
			if r.Weekday == nil {
				skipped = append(skipped, skipReason(i, r, "weekly rule missing weekday"))
				continue
			}
			events = append(events, expandEveryNDays(r, start, end, 7)...)

		case model.PatternBiweekly:
			if r.Weekday == nil {
				skipped = append(skipped, skipReason(i, r, "biweekly rule missing weekday"))
				continue
			}
			events = append(events, expandEveryNDays(r, start, end, 14)...)

		case model.PatternOneOff:
			d, err := parseDate(r.Date)
			if err != nil {
				skipped = append(skipped, skipReason(i, r, "oneoff rule has no valid date"))
				continue
			}
			if !d.Before(start) && d.Before(end) {
				events = append(events, model.ScheduledEvent{Date: d, Amount: r.Amount, Description: r.Description})
			}

		default:
			skipped = append(skipped, skipReason(i, r, fmt.Sprintf("unknown pattern %q", r.Pattern)))
		}
	}

	return events, skipped
}

// expandMonthly emits one event per month on the rule's day of month,
// clamped to the last day of shorter months. A day of zero or below means
// "last day of the month". An optional rule date anchors the first month of
// the cycle; otherwise the cycle starts at the window.
func expandMonthly(r model.ScheduleRule, start, end time.Time) []model.ScheduledEvent {
	cursor := start
	if anchor, err := parseDate(r.Date); err == nil {
		cursor = anchor
	}
	// Walk month-by-month from the first of the cursor's month so a
	// 31st-of-January anchor cannot drift through February.
	cursor = time.Date(cursor.Year(), cursor.Month(), 1, 0, 0, 0, 0, time.UTC)

	var events []model.ScheduledEvent
	for !cursor.After(end) {
		d := monthDay(cursor.Year(), cursor.Month(), *r.DayOfMonth)
		if !d.Before(start) && d.Before(end) {
			events = append(events, model.ScheduledEvent{Date: d, Amount: r.Amount, Description: r.Description})
		}
		cursor = cursor.AddDate(0, 1, 0)
	}
	return events
}

// expandEveryNDays emits events every step days, anchored at the first
// occurrence of the rule's weekday on or after the window start.
func expandEveryNDays(r model.ScheduleRule, start, end time.Time, step int) []model.ScheduledEvent {
	offset := (mondayWeekday(*r.Weekday) - mondayIndex(start.Weekday()) + 7) % 7
	var events []model.ScheduledEvent
	for d := start.AddDate(0, 0, offset); d.Before(end); d = d.AddDate(0, 0, step) {
		events = append(events, model.ScheduledEvent{Date: d, Amount: r.Amount, Description: r.Description})
	}
	return events
}

// monthDay returns the given day within a month, clamped to the month's last
// valid day. Day values of zero or below select the last day outright.
func monthDay(year int, month time.Month, day int) time.Time {
	last := daysIn(year, month)
	if day <= 0 || day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// daysIn returns the number of days in a month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// mondayWeekday normalizes a 0=Monday..6=Sunday rule weekday into range.
func mondayWeekday(wd int) int {
	return ((wd % 7) + 7) % 7
}

// mondayIndex converts Go's Sunday-based weekday to the 0=Monday convention
// used by schedule rules.
func mondayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// parseDate reads a rule date, accepting a bare calendar date or a full
// RFC 3339 timestamp (truncated to its date).
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse(model.DateFormat, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparsable date %q", s)
	}
	return midnight(t.UTC()), nil
}

func skipReason(i int, r model.ScheduleRule, reason string) string {
	name := r.Description
	if name == "" {
		name = fmt.Sprintf("rule %d", i)
	}
	return fmt.Sprintf("%s: %s", name, reason)
}
