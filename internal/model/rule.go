package model

import "time"

// Pattern identifies how a schedule rule recurs.
type Pattern string

// Supported recurrence patterns.
const (
	PatternMonthly  Pattern = "monthly"
	PatternWeekly   Pattern = "weekly"
	PatternBiweekly Pattern = "biweekly"
	PatternOneOff   Pattern = "oneoff"
)

// ScheduleRule is a user-declared recurring or one-off future cash-flow event.
// Which optional fields are required depends on Pattern:
//
//   - monthly:  DayOfMonth (values <= 0 mean "last day of the month");
//     Date optionally anchors the first month of the cycle
//   - weekly:   Weekday
//   - biweekly: Weekday
//   - oneoff:   Date
//
// Weekday uses 0=Monday .. 6=Sunday, matching how statement exports number
// weekdays. Pointer fields distinguish "absent" from a zero value; a rule
// missing its required field is skipped, never fatal.
type ScheduleRule struct {
	Pattern     Pattern `json:"pattern"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	DayOfMonth  *int    `json:"day_of_month,omitempty"`
	Weekday     *int    `json:"weekday,omitempty"`
	Date        string  `json:"date,omitempty"`
}

// ScheduledEvent is one concrete occurrence of a rule inside the forecast
// window. Events are ephemeral: they exist only within a single forecast call.
type ScheduledEvent struct {
	Date        time.Time `json:"date"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
}
