package budget

import (
	"testing"
	"time"

	"kassenbuch/internal/core"
)

func TestBuildOverviewEmptyLedger(t *testing.T) {
	ov := BuildOverview(core.DefaultProfile(), nil)
	if ov.TotalExpenses.Cents != 0 || ov.MonthlyAverage != 0 {
		t.Fatalf("empty ledger should produce zero totals: %+v", ov)
	}
	if ov.SavingsRate != 100 {
		t.Fatalf("savings rate = %v, want 100 (income, no expenses)", ov.SavingsRate)
	}
}

func TestBuildOverviewStats(t *testing.T) {
	jan := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	// head-first: most recent entries first
	txs := []core.Transaction{
		expenseOn(feb, 40_000, core.CategoryNeeds),
		incomeOn(feb, 350_000),
		expenseOn(jan, 20_000, core.CategoryWants),
		incomeOn(jan, 300_000),
	}

	profile := core.DefaultProfile()
	ov := BuildOverview(profile, txs)

	if ov.TotalExpenses.Cents != 60_000 {
		t.Fatalf("total expenses = %d, want 60000", ov.TotalExpenses.Cents)
	}
	// two distinct months
	if ov.MonthlyAverage != 30_000 {
		t.Fatalf("monthly average = %v, want 30000", ov.MonthlyAverage)
	}
	if ov.LastExpense.Cents != 40_000 {
		t.Fatalf("last expense = %d, want 40000", ov.LastExpense.Cents)
	}
	if ov.LastIncome.Cents != 350_000 {
		t.Fatalf("last income = %d, want 350000", ov.LastIncome.Cents)
	}
	// (350000 - 60000) / 350000 * 100
	want := float64(290_000) / float64(350_000) * 100
	if ov.SavingsRate != want {
		t.Fatalf("savings rate = %v, want %v", ov.SavingsRate, want)
	}
}

func TestBuildOverviewZeroIncomeGuard(t *testing.T) {
	profile := core.DefaultProfile()
	profile.MonthlyIncome = core.Money{}

	txs := []core.Transaction{
		expenseOn(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), 10_000, core.CategoryNeeds),
	}
	ov := BuildOverview(profile, txs)
	if ov.SavingsRate != 0 {
		t.Fatalf("savings rate with zero income = %v, want 0", ov.SavingsRate)
	}
}
