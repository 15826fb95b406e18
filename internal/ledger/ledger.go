// Package ledger merges historical transactions with expanded scheduled
// events into contiguous daily net-change series.
package ledger

import (
	"math"
	"sort"
	"time"

	"github.com/LucasAust/forecaster/internal/model"
)

// uncategorized is the bucket for transactions without category metadata.
const uncategorized = "other"

// Day is one calendar day's aggregate signed net change.
type Day struct {
	Date time.Time
	Net  float64
}

// Ledger is the merged view of one forecast call's inputs.
//
// History is the contiguous daily series from the earliest parsable
// transaction through the day before start, zeros filled in, and is what the
// residual forecaster fits on. Window covers every date in
// [start, start+horizonDays] inclusive; days with no activity are present
// with value 0 so downstream consumers see an unbroken series.
type Ledger struct {
	History []Day
	Window  []Day

	CategoryTotals map[string]float64
	ExpenseTotals  map[string]float64
	IncomeTotals   map[string]float64

	SkippedTransactions int
}

// Build sanitizes transactions, aggregates them per day, and merges them
// with scheduled events over the forecast window. Transactions with an
// unparsable date or a non-finite amount are skipped and counted, never
// fatal.
func Build(txs []model.Transaction, events []model.ScheduledEvent, start time.Time, horizonDays int) Ledger {
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)

	led := Ledger{
		CategoryTotals: make(map[string]float64),
		ExpenseTotals:  make(map[string]float64),
		IncomeTotals:   make(map[string]float64),
	}

	histByDay := make(map[string]float64)
	var earliest time.Time

	for _, tx := range txs {
		d, err := parseDate(tx.Date)
		if err != nil || math.IsNaN(tx.Amount) || math.IsInf(tx.Amount, 0) {
			led.SkippedTransactions++
			continue
		}

		key := d.Format(model.DateFormat)
		histByDay[key] += tx.Amount
		if earliest.IsZero() || d.Before(earliest) {
			earliest = d
		}

		cat := tx.Category
		if cat == "" {
			cat = uncategorized
		}
		led.CategoryTotals[cat] += tx.Amount
		if tx.Amount < 0 {
			led.ExpenseTotals[cat] += -tx.Amount
		} else if tx.Amount > 0 {
			led.IncomeTotals[cat] += tx.Amount
		}
	}

	// Contiguous history series up to the day before start, gaps as zeros.
	if !earliest.IsZero() && earliest.Before(start) {
		for d := earliest; d.Before(start); d = d.AddDate(0, 0, 1) {
			led.History = append(led.History, Day{Date: d, Net: histByDay[d.Format(model.DateFormat)]})
		}
	}

	// Forecast window: scheduled events plus any transactions dated inside it.
	windowByDay := make(map[string]float64)
	for _, ev := range events {
		windowByDay[ev.Date.Format(model.DateFormat)] += ev.Amount
	}
	end := start.AddDate(0, 0, horizonDays)
	for key, amt := range histByDay {
		d, _ := time.Parse(model.DateFormat, key)
		if !d.Before(start) && !d.After(end) {
			windowByDay[key] += amt
		}
	}

	led.Window = make([]Day, 0, horizonDays+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		led.Window = append(led.Window, Day{Date: d, Net: windowByDay[d.Format(model.DateFormat)]})
	}

	return led
}

// HistoryValues returns the history series as a bare value slice for the
// residual forecaster.
func (l Ledger) HistoryValues() []float64 {
	vals := make([]float64, len(l.History))
	for i, d := range l.History {
		vals[i] = d.Net
	}
	return vals
}

// Categories returns the category names seen in the ledger, sorted.
func (l Ledger) Categories() []string {
	names := make([]string, 0, len(l.CategoryTotals))
	for name := range l.CategoryTotals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// parseDate reads a transaction date, accepting a bare calendar date or a
// full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(model.DateFormat, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
