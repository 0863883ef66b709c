package budget

import (
	"testing"
	"time"

	"kassenbuch/internal/core"
)

var now = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func expenseOn(date time.Time, cents int64, tag core.CategoryTag) core.Transaction {
	return core.Transaction{
		ID:          "tx-" + date.Format("20060102") + "-" + string(tag),
		Amount:      core.Money{Cents: cents},
		Type:        core.Expense,
		Date:        date,
		Description: "Ausgabe",
		Category:    tag,
	}
}

func incomeOn(date time.Time, cents int64) core.Transaction {
	return core.Transaction{
		ID:          "in-" + date.Format("20060102"),
		Amount:      core.Money{Cents: cents},
		Type:        core.Income,
		Date:        date,
		Description: "Einnahme",
	}
}

func TestAggregateGroupsByCategory(t *testing.T) {
	txs := []core.Transaction{
		expenseOn(now.AddDate(0, 0, -1), 10_000, core.CategoryNeeds),
		expenseOn(now.AddDate(0, 0, -10), 5_000, core.CategoryNeeds),
		expenseOn(now.AddDate(0, 0, -20), 7_500, core.CategoryWants),
		incomeOn(now.AddDate(0, 0, -5), 200_000), // ignored
	}

	got := Aggregate(txs, 3, now)
	if got[core.CategoryNeeds].Total.Cents != 15_000 {
		t.Fatalf("needs total = %d, want 15000", got[core.CategoryNeeds].Total.Cents)
	}
	if got[core.CategoryWants].Total.Cents != 7_500 {
		t.Fatalf("wants total = %d, want 7500", got[core.CategoryWants].Total.Cents)
	}
	if _, ok := got[core.CategoryFixed]; ok {
		t.Fatalf("unexpected bucket for category without spend")
	}
}

func TestAggregateWindowBoundary(t *testing.T) {
	cutoff := now.AddDate(0, -3, 0)
	txs := []core.Transaction{
		expenseOn(cutoff, 1_000, core.CategoryNeeds),                 // exactly on the boundary: in
		expenseOn(cutoff.AddDate(0, 0, -1), 9_999, core.CategoryNeeds), // one day beyond: out
	}

	got := Aggregate(txs, 3, now)
	if got[core.CategoryNeeds].Total.Cents != 1_000 {
		t.Fatalf("needs total = %d, want 1000 (boundary inclusive, older excluded)", got[core.CategoryNeeds].Total.Cents)
	}
}

func TestAggregateFlatDivision(t *testing.T) {
	// One month of data still divides by the full window length.
	txs := []core.Transaction{
		expenseOn(now.AddDate(0, 0, -2), 30_000, core.CategorySavings),
	}
	got := Aggregate(txs, 3, now)
	if avg := got[core.CategorySavings].MonthlyAverage; avg != 10_000 {
		t.Fatalf("monthly average = %v, want 10000", avg)
	}
}

func TestAggregateOtherBucket(t *testing.T) {
	stray := expenseOn(now.AddDate(0, 0, -1), 2_000, core.CategoryTag("misc"))
	missing := expenseOn(now.AddDate(0, 0, -2), 3_000, "")

	got := Aggregate([]core.Transaction{stray, missing}, 3, now)
	if got[core.CategoryOther].Total.Cents != 5_000 {
		t.Fatalf("other total = %d, want 5000", got[core.CategoryOther].Total.Cents)
	}
}

func TestAggregateDefaultsWindow(t *testing.T) {
	txs := []core.Transaction{
		expenseOn(now.AddDate(0, 0, -1), 9_000, core.CategoryNeeds),
	}
	got := Aggregate(txs, 0, now)
	if avg := got[core.CategoryNeeds].MonthlyAverage; avg != 3_000 {
		t.Fatalf("monthly average = %v, want 3000 (default window of %d)", avg, DefaultWindowMonths)
	}
}
