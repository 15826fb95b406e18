// Package advice applies a fixed set of independent rules to a finished
// projection, producing user-facing alerts and recommendations. Every rule
// is evaluated on its own; several may fire at once.
package advice

import (
	"fmt"
	"math"

	"github.com/LucasAust/forecaster/internal/config"
	"github.com/LucasAust/forecaster/internal/model"
)

// Evaluate runs every alert and recommendation rule against the projection.
// threshold is the effective low-balance threshold for this call (the
// request override when present, otherwise the configured default).
func Evaluate(points []model.BalancePoint, sum model.Summary, threshold float64, cfg config.AdviceConfig) ([]model.Alert, []model.Recommendation) {
	return alerts(points, threshold, cfg), recommendations(sum, threshold, cfg)
}

// alerts evaluates the balance-level rules in display priority order:
// LOW_BALANCE, OVERDRAFT, HEALTHY. The first two can fire together; HEALTHY
// requires no day at or below the threshold, so it excludes both.
func alerts(points []model.BalancePoint, threshold float64, cfg config.AdviceConfig) []model.Alert {
	if len(points) == 0 {
		return nil
	}

	var (
		firstLow      *model.BalancePoint
		firstNegative *model.BalancePoint
		minBal        = points[0].Balance
		sumBal        float64
		allAbove      = true
	)
	for i := range points {
		p := &points[i]
		if p.Balance < threshold && firstLow == nil {
			firstLow = p
		}
		if p.Balance < 0 && firstNegative == nil {
			firstNegative = p
		}
		if p.Balance <= threshold {
			allAbove = false
		}
		if p.Balance < minBal {
			minBal = p.Balance
		}
		sumBal += p.Balance
	}
	meanBal := sumBal / float64(len(points))

	var out []model.Alert
	if firstLow != nil {
		out = append(out, model.Alert{
			Kind:    model.AlertCritical,
			Code:    model.AlertLowBalance,
			Message: fmt.Sprintf("Projected balance drops below $%.2f on %s", threshold, firstLow.Date),
			Detail: fmt.Sprintf("The projection first falls below the threshold on %s and bottoms out at $%.2f.",
				firstLow.Date, minBal),
			ActionSuggestion: "Review upcoming expenses.",
		})
	}
	if firstNegative != nil {
		out = append(out, model.Alert{
			Kind:    model.AlertDanger,
			Code:    model.AlertOverdraft,
			Message: fmt.Sprintf("Projected overdraft on %s", firstNegative.Date),
			Detail: fmt.Sprintf("The balance first goes negative on %s, reaching $%.2f.",
				firstNegative.Date, firstNegative.Balance),
			ActionSuggestion: "Add funds or delay expenses.",
		})
	}
	if allAbove && meanBal > cfg.HealthyMeanMultiplier*threshold {
		out = append(out, model.Alert{
			Kind:    model.AlertSuccess,
			Code:    model.AlertHealthy,
			Message: "Cash flow looks healthy",
			Detail: fmt.Sprintf("Every projected day stays above $%.2f and the mean balance is $%.2f.",
				threshold, meanBal),
			ActionSuggestion: "Consider moving excess to savings.",
		})
	}
	return out
}

// recommendations evaluates the summary-level rules. All are independent.
func recommendations(sum model.Summary, threshold float64, cfg config.AdviceConfig) []model.Recommendation {
	var out []model.Recommendation

	if spend := sum.ExpenseBreakdown[cfg.SubscriptionCategory]; spend > cfg.SubscriptionFloor {
		out = append(out, model.Recommendation{
			Kind: model.RecSubscriptionReview,
			Message: fmt.Sprintf("You spend $%.2f on %s. Review them for unused services.",
				spend, cfg.SubscriptionCategory),
			ImpactEstimate: spend,
			Confidence:     model.ConfidenceHigh,
		})
	}

	if excess := sum.MinimumBalance - threshold; excess > cfg.SavingsExcessFloor {
		transfer := math.Floor(excess * cfg.SavingsTransferRatio)
		out = append(out, model.Recommendation{
			Kind: model.RecSavingsOpportunity,
			Message: fmt.Sprintf("Your projected balance never falls below $%.2f. Consider transferring $%.0f to savings.",
				sum.MinimumBalance, transfer),
			ImpactEstimate: transfer,
			Confidence:     model.ConfidenceHigh,
		})
	}

	if spend := sum.ExpenseBreakdown[cfg.HighSpendCategory]; spend > cfg.HighSpendFloor {
		saving := spend * cfg.CategoryCutRatio
		out = append(out, model.Recommendation{
			Kind: model.RecHighCategorySpend,
			Message: fmt.Sprintf("Spending on %s is $%.2f. Cutting it by %.0f%% would save $%.2f.",
				cfg.HighSpendCategory, spend, cfg.CategoryCutRatio*100, saving),
			ImpactEstimate: saving,
			Confidence:     model.ConfidenceMedium,
		})
	}

	if net := sum.TotalIncome + sum.TotalExpenses; net < 0 {
		out = append(out, model.Recommendation{
			Kind: model.RecNegativeCashFlow,
			Message: fmt.Sprintf("Projected spending exceeds income by $%.2f over this period.",
				-net),
			ImpactEstimate: -net,
			Confidence:     model.ConfidenceHigh,
		})
	} else if net > cfg.PositiveFlowFloor {
		out = append(out, model.Recommendation{
			Kind: model.RecPositiveCashFlow,
			Message: fmt.Sprintf("Projected income exceeds spending by $%.2f. An automatic savings transfer would lock that in.",
				net),
			ImpactEstimate: net,
			Confidence:     model.ConfidenceHigh,
		})
	}

	return out
}
