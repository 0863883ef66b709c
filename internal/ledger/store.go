// Package ledger owns the authoritative transaction list and the profile,
// including the running balance. All mutations go through the Store so the
// accounting identity
//
//	currentBalance == initialBalance + Σ income − Σ expense
//
// holds after every operation.
package ledger

import (
	"sync"

	"github.com/google/uuid"

	"kassenbuch/internal/core"
)

// Store holds the ledger in most-recent-first order plus the profile.
// Reads hand out copies; the internal slices and maps never escape.
type Store struct {
	mu      sync.Mutex
	profile core.Profile
	items   []core.Transaction
	newID   func() string
}

// ProfileUpdate describes a partial profile mutation. Nil fields are left
// untouched.
type ProfileUpdate struct {
	CurrentBalance *core.Money
	MonthlyIncome  *core.Money
	Categories     *[]core.Category
	SavingsGoals   *[]core.SavingsGoal
}

// NewStore builds a store from a loaded (or default) profile and ledger.
func NewStore(profile core.Profile, items []core.Transaction) *Store {
	return &Store{
		profile: profile.Clone(),
		items:   append([]core.Transaction(nil), items...),
		newID:   uuid.NewString,
	}
}

// Append finalizes a candidate transaction: it assigns a fresh id, prepends
// it to the ledger and adjusts the balance by its signed amount. The input is
// assumed valid (see core.Transaction.Validate).
func (s *Store) Append(candidate core.Transaction) core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := candidate
	tx.ID = s.newID()
	s.items = append([]core.Transaction{tx}, s.items...)
	s.profile.CurrentBalance.Cents += signedCents(tx)
	return tx
}

// Remove deletes the transaction with the given id and reverses its balance
// effect in the same step. Unknown ids are a silent no-op; the returned bool
// reports whether anything was removed.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, tx := range s.items {
		if tx.ID != id {
			continue
		}
		s.profile.CurrentBalance.Cents -= signedCents(tx)
		s.items = append(s.items[:i], s.items[i+1:]...)
		return true
	}
	return false
}

// Transactions returns a copy of the ledger in head-first order.
func (s *Store) Transactions() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.items...)
}

// Profile returns a snapshot of the current profile.
func (s *Store) Profile() core.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.Clone()
}

// Balance returns the current account balance.
func (s *Store) Balance() core.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.CurrentBalance
}

// UpdateProfile applies the non-nil fields of the update.
func (s *Store) UpdateProfile(u ProfileUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.CurrentBalance != nil {
		s.profile.CurrentBalance = *u.CurrentBalance
	}
	if u.MonthlyIncome != nil {
		s.profile.MonthlyIncome = *u.MonthlyIncome
	}
	if u.Categories != nil {
		s.profile.Categories = append([]core.Category(nil), (*u.Categories)...)
	}
	if u.SavingsGoals != nil {
		s.profile.SavingsGoals = append([]core.SavingsGoal(nil), (*u.SavingsGoals)...)
	}
}

// SetBudget overwrites the budgeted amount of a single category, leaving all
// other entries untouched.
func (s *Store) SetBudget(tag core.CategoryTag, amount core.Money) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile.BudgetDistribution == nil {
		s.profile.BudgetDistribution = core.BudgetDistribution{}
	}
	s.profile.BudgetDistribution[tag] = amount
}

func signedCents(tx core.Transaction) int64 {
	if tx.Type == core.Income {
		return tx.Amount.Cents
	}
	return -tx.Amount.Cents
}
