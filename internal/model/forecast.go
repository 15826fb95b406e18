package model

// DateFormat is the wire format for calendar dates in requests and responses.
const DateFormat = "2006-01-02"

// BalancePoint is one day of the finished projection. Points are ordered by
// date and never mutated after construction.
//
// The [BalanceLower, BalanceUpper] band is a fixed heuristic (a configurable
// fraction of the day's net change, times the band multiplier), not a
// calibrated statistical confidence interval.
type BalancePoint struct {
	Date         string  `json:"date"`
	NetChange    float64 `json:"net_change"`
	Balance      float64 `json:"balance"`
	BalanceLower float64 `json:"balance_lower"`
	BalanceUpper float64 `json:"balance_upper"`
}

// Summary aggregates the projection for display and rule evaluation.
type Summary struct {
	OpeningBalance     float64            `json:"opening_balance"`
	FinalBalance       float64            `json:"final_balance"`
	NetChange          float64            `json:"net_change"`
	TotalIncome        float64            `json:"total_income"`
	TotalExpenses      float64            `json:"total_expenses"`
	CategoryBreakdown  map[string]float64 `json:"category_breakdown"`
	ExpenseBreakdown   map[string]float64 `json:"expense_breakdown"`
	IncomeBreakdown    map[string]float64 `json:"income_breakdown"`
	MinimumBalance     float64            `json:"minimum_balance"`
	MinimumBalanceDate string             `json:"minimum_balance_date"`
	DaysToMin          int                `json:"days_to_min"`
	DaysToZero         int                `json:"days_to_zero"` // -1 when the balance never reaches zero
	MethodUsed         string             `json:"method_used"`
}

// Diagnostics reports per-item input problems that were recovered by
// skipping, never by failing the call.
type Diagnostics struct {
	SkippedRules        []string `json:"skipped_rules"`
	SkippedTransactions int      `json:"skipped_transactions"`
}
