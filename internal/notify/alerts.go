// Package notify evaluates threshold rules against the current ledger and
// profile and produces the alert list shown in the notification center.
// Alerts are recomputed from scratch on every call; once a condition stops
// holding, its alert simply disappears from the next result.
package notify

import (
	"fmt"
	"math"

	"kassenbuch/internal/core"
)

type AlertType string

const (
	TypeWarning AlertType = "warning"
	TypeSuccess AlertType = "success"
)

// Alert is a transient, user-facing notification. IDs are derived from the
// category or goal so repeated evaluation over unchanged input yields an
// identical id set.
type Alert struct {
	ID      string    `json:"id"`
	Type    AlertType `json:"type"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
}

// exhaustion threshold: alert once spending exceeds 90% of the budget
const exhaustionNumerator, exhaustionDenominator = 9, 10

// Evaluate runs both rule families and concatenates their alerts: budget
// near-exhaustion per category (whole-ledger spend, not windowed), then
// completed savings goals.
func Evaluate(profile core.Profile, transactions []core.Transaction) []Alert {
	var alerts []Alert

	for _, tag := range core.BudgetCategories {
		budget := profile.BudgetDistribution[tag]
		if budget.Cents <= 0 {
			continue
		}
		var spent int64
		for _, tx := range transactions {
			if tx.Type == core.Expense && tx.Category == tag {
				spent += tx.Amount.Cents
			}
		}
		// spent > budget * 0.9, kept in integer arithmetic
		if spent*exhaustionDenominator > budget.Cents*exhaustionNumerator {
			used := int64(math.Round(float64(spent) / float64(budget.Cents) * 100))
			alerts = append(alerts, Alert{
				ID:      "budget-" + string(tag),
				Type:    TypeWarning,
				Title:   "Budget fast ausgeschöpft",
				Message: fmt.Sprintf("Sie haben bereits %d%% Ihres %s-Budgets verwendet.", used, tag),
			})
		}
	}

	for _, goal := range profile.SavingsGoals {
		if goal.CurrentAmount.Cents >= goal.TargetAmount.Cents {
			alerts = append(alerts, Alert{
				ID:      "goal-" + goal.ID,
				Type:    TypeSuccess,
				Title:   "Sparziel erreicht!",
				Message: fmt.Sprintf("Gratulation! Sie haben Ihr Sparziel \"%s\" erreicht.", goal.Name),
			})
		}
	}

	return alerts
}
