// Package model holds the domain types shared across the forecasting engine:
// schedule rules, transactions, projection points, and the request/response
// envelope. Everything except ScheduleRule and Transaction is a transient
// output of a single forecast call.
package model

// Request is one forecast invocation's full input set.
//
// LowBalanceThreshold is a pointer so callers can distinguish "use the
// configured default" (nil) from an explicit threshold, including zero.
// Seed pins the hybrid strategy's random source: two calls with identical
// inputs and the same non-zero seed produce byte-identical responses. A zero
// seed means "seed from the clock". AsOf pins "today" for backtests; empty
// means the current date.
type Request struct {
	OpeningBalance      float64        `json:"opening_balance"`
	Transactions        []Transaction  `json:"transactions"`
	Scheduled           []ScheduleRule `json:"scheduled"`
	HorizonDays         int            `json:"horizon_days"`
	Method              string         `json:"method"`
	LowBalanceThreshold *float64       `json:"low_balance_threshold,omitempty"`
	Seed                int64          `json:"seed,omitempty"`
	AsOf                string         `json:"as_of,omitempty"`
}

// Response is the complete result of one forecast invocation. It is either
// fully computed or not returned at all; the engine never emits a partial
// projection.
type Response struct {
	Forecast        []BalancePoint   `json:"forecast"`
	Summary         Summary          `json:"summary"`
	Alerts          []Alert          `json:"alerts"`
	Recommendations []Recommendation `json:"recommendations"`
	Diagnostics     Diagnostics      `json:"diagnostics"`
}
