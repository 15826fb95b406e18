package model

// Transaction is one historical ledger row supplied by the caller, dated on
// or before the forecast's as-of day. Date stays a string here: the ledger
// parses it and skips rows it cannot read rather than failing the call.
type Transaction struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
}
