package budget

import (
	"kassenbuch/internal/core"
)

// Overview is the dashboard headline data derived from the full ledger.
type Overview struct {
	TotalExpenses core.Money `json:"totalExpenses"`
	// MonthlyAverage is total expenses divided by the number of distinct
	// year-months that contain any transaction, in cents. Zero when the
	// ledger is empty.
	MonthlyAverage float64 `json:"monthlyAverage"`
	// SavingsRate is (monthlyIncome − total expenses) / monthlyIncome in
	// percent. Zero when no monthly income is configured.
	SavingsRate float64    `json:"savingsRate"`
	LastIncome  core.Money `json:"lastIncome"`
	LastExpense core.Money `json:"lastExpense"`
}

// BuildOverview computes the dashboard stats from a profile and ledger
// snapshot. The ledger is expected in head-first order, so the first match
// per type is the most recent one.
func BuildOverview(profile core.Profile, transactions []core.Transaction) Overview {
	var ov Overview

	months := make(map[string]struct{})
	var haveIncome, haveExpense bool
	for _, tx := range transactions {
		months[tx.MonthKey()] = struct{}{}
		switch tx.Type {
		case core.Expense:
			ov.TotalExpenses.Cents += tx.Amount.Cents
			if !haveExpense {
				ov.LastExpense = tx.Amount
				haveExpense = true
			}
		case core.Income:
			if !haveIncome {
				ov.LastIncome = tx.Amount
				haveIncome = true
			}
		}
	}

	if len(months) > 0 {
		ov.MonthlyAverage = float64(ov.TotalExpenses.Cents) / float64(len(months))
	}
	if profile.MonthlyIncome.Cents > 0 {
		ov.SavingsRate = float64(profile.MonthlyIncome.Cents-ov.TotalExpenses.Cents) / float64(profile.MonthlyIncome.Cents) * 100
	}
	return ov
}
