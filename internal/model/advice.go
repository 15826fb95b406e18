package model

// AlertKind is the severity class of an alert.
type AlertKind string

// Alert severities, in display priority order.
const (
	AlertCritical AlertKind = "critical"
	AlertDanger   AlertKind = "danger"
	AlertSuccess  AlertKind = "success"
)

// Alert rule codes.
const (
	AlertLowBalance = "LOW_BALANCE"
	AlertOverdraft  = "OVERDRAFT"
	AlertHealthy    = "HEALTHY"
)

// Recommendation rule codes.
const (
	RecSubscriptionReview = "SUBSCRIPTION_REVIEW"
	RecSavingsOpportunity = "SAVINGS_OPPORTUNITY"
	RecHighCategorySpend  = "HIGH_CATEGORY_SPEND"
	RecNegativeCashFlow   = "NEGATIVE_CASH_FLOW"
	RecPositiveCashFlow   = "POSITIVE_CASH_FLOW"
)

// Confidence levels for recommendations.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Alert is a user-facing warning (or all-clear) derived from the projection.
type Alert struct {
	Kind             AlertKind `json:"kind"`
	Code             string    `json:"code"`
	Message          string    `json:"message"`
	Detail           string    `json:"detail"`
	ActionSuggestion string    `json:"action_suggestion"`
}

// Recommendation is a piece of rule-derived advice with an estimated dollar
// impact and a coarse confidence grade.
type Recommendation struct {
	Kind           string  `json:"kind"`
	Message        string  `json:"message"`
	ImpactEstimate float64 `json:"impact_estimate"`
	Confidence     string  `json:"confidence"`
}
