package budget

import (
	"fmt"
	"math"

	"kassenbuch/internal/core"
)

const (
	// deviationThresholdPct is the fixed trigger: spending must deviate more
	// than 15% from the budgeted amount before a suggestion is emitted.
	deviationThresholdPct = 15.0
	// bufferFactor pads the suggested budget with 10% headroom, regardless of
	// the deviation direction.
	bufferFactor = 1.10
)

type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Suggestion proposes a revised budget for one category.
type Suggestion struct {
	ID              string           `json:"id"`
	Category        core.CategoryTag `json:"category"`
	CurrentBudget   core.Money       `json:"currentBudget"`
	SuggestedBudget core.Money       `json:"suggestedBudget"`
	Difference      core.Money       `json:"difference"`
	Reason          string           `json:"reason"`
	Severity        Severity         `json:"severity"`
}

// Suggest compares the monthly averages against the budgeted amounts and
// proposes new budgets for categories deviating by more than the threshold.
// Categories with a zero budget are skipped. An empty result is the normal
// outcome for a household tracking close to plan.
func Suggest(dist core.BudgetDistribution, spending map[core.CategoryTag]CategorySpending) []Suggestion {
	var out []Suggestion
	for _, tag := range core.BudgetCategories {
		budget, ok := dist[tag]
		if !ok || budget.Cents == 0 {
			continue
		}
		avg := spending[tag].MonthlyAverage
		percentDiff := (avg - float64(budget.Cents)) / float64(budget.Cents) * 100
		if math.Abs(percentDiff) <= deviationThresholdPct {
			continue
		}

		// Round to whole currency units, matching how budgets are entered.
		suggested := core.Money{Cents: int64(math.Round(avg*bufferFactor/100)) * 100}

		s := Suggestion{
			ID:              "suggestion-" + string(tag),
			Category:        tag,
			CurrentBudget:   budget,
			SuggestedBudget: suggested,
			Difference:      core.Money{Cents: suggested.Cents - budget.Cents},
		}
		if percentDiff > 0 {
			s.Severity = SeverityWarning
			s.Reason = fmt.Sprintf("Die durchschnittlichen Ausgaben in \"%s\" übersteigen das Budget um %.1f%%.", tag, math.Abs(percentDiff))
		} else {
			s.Severity = SeverityInfo
			s.Reason = fmt.Sprintf("Das Budget für \"%s\" könnte um %.1f%% reduziert werden.", tag, math.Abs(percentDiff))
		}
		out = append(out, s)
	}
	return out
}
