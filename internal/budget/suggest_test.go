package budget

import (
	"strings"
	"testing"

	"kassenbuch/internal/core"
)

func distWith(tag core.CategoryTag, cents int64) core.BudgetDistribution {
	return core.BudgetDistribution{tag: {Cents: cents}}
}

func spendingWith(tag core.CategoryTag, avgCents float64) map[core.CategoryTag]CategorySpending {
	return map[core.CategoryTag]CategorySpending{
		tag: {MonthlyAverage: avgCents},
	}
}

func TestSuggestThresholdBoundary(t *testing.T) {
	dist := distWith(core.CategoryNeeds, 100_000) // 1000.00

	// Exactly 15.0% deviation: no suggestion.
	if got := Suggest(dist, spendingWith(core.CategoryNeeds, 115_000)); len(got) != 0 {
		t.Fatalf("15.0%% deviation produced %d suggestions, want 0", len(got))
	}
	// 15.01%: suggestion.
	got := Suggest(dist, spendingWith(core.CategoryNeeds, 115_010))
	if len(got) != 1 {
		t.Fatalf("15.01%% deviation produced %d suggestions, want 1", len(got))
	}
	if got[0].Severity != SeverityWarning {
		t.Fatalf("severity = %s, want warning", got[0].Severity)
	}
}

func TestSuggestBuffer(t *testing.T) {
	// Monthly average 200.00 with a far smaller budget: suggested budget is
	// round(200 * 1.10) = 220.
	dist := distWith(core.CategoryWants, 10_000)
	got := Suggest(dist, spendingWith(core.CategoryWants, 20_000))
	if len(got) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(got))
	}
	if got[0].SuggestedBudget.Cents != 22_000 {
		t.Fatalf("suggested = %d cents, want 22000", got[0].SuggestedBudget.Cents)
	}
	if got[0].Difference.Cents != 12_000 {
		t.Fatalf("difference = %d cents, want 12000", got[0].Difference.Cents)
	}
	if got[0].ID != "suggestion-wants" {
		t.Fatalf("id = %q, want suggestion-wants", got[0].ID)
	}
}

func TestSuggestUnderBudgetIsInfo(t *testing.T) {
	dist := distWith(core.CategoryFixed, 100_000)
	got := Suggest(dist, spendingWith(core.CategoryFixed, 80_000)) // 20% under
	if len(got) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(got))
	}
	if got[0].Severity != SeverityInfo {
		t.Fatalf("severity = %s, want info", got[0].Severity)
	}
	if got[0].SuggestedBudget.Cents != 88_000 {
		t.Fatalf("suggested = %d cents, want 88000", got[0].SuggestedBudget.Cents)
	}
	if !strings.Contains(got[0].Reason, "reduziert") {
		t.Fatalf("reason should mention a reduction: %q", got[0].Reason)
	}
}

func TestSuggestSkipsZeroBudget(t *testing.T) {
	dist := distWith(core.CategorySavings, 0)
	if got := Suggest(dist, spendingWith(core.CategorySavings, 50_000)); len(got) != 0 {
		t.Fatalf("zero budget must not produce suggestions, got %d", len(got))
	}
}

func TestSuggestNoCategorySpendStillCounts(t *testing.T) {
	// No spend at all is a -100% deviation and suggests shrinking the budget.
	dist := distWith(core.CategoryWants, 35_000)
	got := Suggest(dist, nil)
	if len(got) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(got))
	}
	if got[0].Severity != SeverityInfo {
		t.Fatalf("severity = %s, want info", got[0].Severity)
	}
	if got[0].SuggestedBudget.Cents != 0 {
		t.Fatalf("suggested = %d cents, want 0", got[0].SuggestedBudget.Cents)
	}
}

func TestSuggestEmptyWhenWithinThreshold(t *testing.T) {
	dist := core.BudgetDistribution{
		core.CategoryFixed: {Cents: 100_000},
		core.CategoryNeeds: {Cents: 100_000},
	}
	spending := map[core.CategoryTag]CategorySpending{
		core.CategoryFixed: {MonthlyAverage: 110_000}, // +10%
		core.CategoryNeeds: {MonthlyAverage: 90_000},  // -10%
	}
	if got := Suggest(dist, spending); len(got) != 0 {
		t.Fatalf("got %d suggestions, want 0", len(got))
	}
}

func TestSuggestCanonicalOrder(t *testing.T) {
	dist := core.BudgetDistribution{
		core.CategoryFixed:   {Cents: 100_000},
		core.CategoryNeeds:   {Cents: 100_000},
		core.CategoryWants:   {Cents: 100_000},
		core.CategorySavings: {Cents: 100_000},
	}
	spending := map[core.CategoryTag]CategorySpending{
		core.CategoryFixed:   {MonthlyAverage: 200_000},
		core.CategoryNeeds:   {MonthlyAverage: 200_000},
		core.CategoryWants:   {MonthlyAverage: 200_000},
		core.CategorySavings: {MonthlyAverage: 200_000},
	}
	got := Suggest(dist, spending)
	if len(got) != 4 {
		t.Fatalf("got %d suggestions, want 4", len(got))
	}
	for i, tag := range core.BudgetCategories {
		if got[i].Category != tag {
			t.Fatalf("suggestion %d is %s, want %s", i, got[i].Category, tag)
		}
	}
}
