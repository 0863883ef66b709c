// Package budget derives spending statistics and budget suggestions from the
// ledger. Everything in here is a pure fold over a transaction snapshot; no
// function mutates its inputs.
package budget

import (
	"time"

	"kassenbuch/internal/core"
)

// DefaultWindowMonths is the trailing window used for the monthly averages.
const DefaultWindowMonths = 3

// CategorySpending is the in-window spend of one category.
type CategorySpending struct {
	Total core.Money `json:"total"`
	// MonthlyAverage is Total divided by the configured window length, in
	// cents. The divisor is always the window length, even when fewer months
	// contain data; keep it that way for compatibility with existing budgets.
	MonthlyAverage float64 `json:"monthlyAverage"`
}

// Aggregate groups expense transactions of the trailing window by category
// tag. The window reaches windowMonths calendar months back from now, lower
// bound inclusive. Expenses without one of the four budget tags land in the
// "other" bucket.
func Aggregate(transactions []core.Transaction, windowMonths int, now time.Time) map[core.CategoryTag]CategorySpending {
	if windowMonths <= 0 {
		windowMonths = DefaultWindowMonths
	}
	cutoff := now.AddDate(0, -windowMonths, 0)

	totals := make(map[core.CategoryTag]int64)
	for _, tx := range transactions {
		if tx.Type != core.Expense || tx.Date.Before(cutoff) {
			continue
		}
		tag := tx.Category
		if !core.IsBudgetTag(tag) {
			tag = core.CategoryOther
		}
		totals[tag] += tx.Amount.Cents
	}

	out := make(map[core.CategoryTag]CategorySpending, len(totals))
	for tag, cents := range totals {
		out[tag] = CategorySpending{
			Total:          core.Money{Cents: cents},
			MonthlyAverage: float64(cents) / float64(windowMonths),
		}
	}
	return out
}
