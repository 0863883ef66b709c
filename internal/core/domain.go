package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	CategoryFixed   CategoryTag = "fixed"
	CategoryNeeds   CategoryTag = "needs"
	CategoryWants   CategoryTag = "wants"
	CategorySavings CategoryTag = "savings"
	// CategoryOther is the catch-all bucket for uncategorized spend.
	// It is never budgeted, only reported.
	CategoryOther CategoryTag = "other"
)

const (
	Weekly  Recurrence = "weekly"
	Monthly Recurrence = "monthly"
	Yearly  Recurrence = "yearly"
)

// BudgetCategories is the canonical iteration order for the four budgeted tags.
var BudgetCategories = []CategoryTag{CategoryFixed, CategoryNeeds, CategoryWants, CategorySavings}

type (
	TransactionType string
	CategoryTag     string
	Recurrence      string

	Money struct {
		Cents int64 `json:"cents"`
	}

	// Transaction is immutable once appended to the ledger. Amount is always a
	// positive magnitude; direction is carried by Type.
	Transaction struct {
		ID          string          `json:"id"`
		Amount      Money           `json:"amount"`
		Type        TransactionType `json:"type"`
		Date        time.Time       `json:"date"`
		Description string          `json:"description"`
		Category    CategoryTag     `json:"category,omitempty"` // expenses only
		Tags        []string        `json:"tags,omitempty"`
		IsRecurring bool            `json:"isRecurring,omitempty"`
		Recurrence  Recurrence      `json:"recurrence,omitempty"`
		NextDueDate time.Time       `json:"nextDueDate"`
	}

	BudgetDistribution map[CategoryTag]Money

	Category struct {
		ID     string      `json:"id"`
		Name   string      `json:"name"`
		Type   CategoryTag `json:"type"`
		Budget Money       `json:"budget"`
		Spent  Money       `json:"spent"`
	}

	SavingsGoal struct {
		ID            string `json:"id"`
		Name          string `json:"name"`
		TargetAmount  Money  `json:"targetAmount"`
		CurrentAmount Money  `json:"currentAmount"`
	}

	Profile struct {
		CurrentBalance     Money              `json:"currentBalance"`
		MonthlyIncome      Money              `json:"monthlyIncome"`
		BudgetDistribution BudgetDistribution `json:"budgetDistribution"`
		Categories         []Category         `json:"categories"`
		SavingsGoals       []SavingsGoal      `json:"savingsGoals"`
	}
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidType        = errors.New("invalid transaction type")
	ErrInvalidDate        = errors.New("date cannot be zero")
	ErrEmptyDescription   = errors.New("empty description")
	ErrMissingCategory    = errors.New("expense requires a budget category")
	ErrUnexpectedCategory = errors.New("income must not carry a category")
	ErrInvalidCategory    = errors.New("unknown budget category")
	ErrInvalidRecurrence  = errors.New("invalid recurrence")
)

// DefaultProfile is the documented fallback used when no saved profile exists.
func DefaultProfile() Profile {
	return Profile{
		CurrentBalance: Money{Cents: 500_000},
		MonthlyIncome:  Money{Cents: 350_000},
		BudgetDistribution: BudgetDistribution{
			CategoryFixed:   {Cents: 175_000},
			CategoryNeeds:   {Cents: 105_000},
			CategoryWants:   {Cents: 35_000},
			CategorySavings: {Cents: 35_000},
		},
		Categories:   []Category{},
		SavingsGoals: []SavingsGoal{},
	}
}

// IsBudgetTag reports whether tag is one of the four budgeted categories.
func IsBudgetTag(tag CategoryTag) bool {
	switch tag {
	case CategoryFixed, CategoryNeeds, CategoryWants, CategorySavings:
		return true
	}
	return false
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

func (r Recurrence) Valid() bool {
	switch r {
	case Weekly, Monthly, Yearly:
		return true
	}
	return false
}

// MonthKey returns the year+month bucket of the transaction date (e.g. "2026-08").
func (t Transaction) MonthKey() string {
	return t.Date.Format("2006-01")
}

// Validate checks a transaction candidate before it enters the ledger.
// Validation happens at the boundary; the ledger itself assumes valid input.
func (t Transaction) Validate() error {
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	switch t.Type {
	case Expense:
		if t.Category == "" {
			return ErrMissingCategory
		}
		if !IsBudgetTag(t.Category) {
			return ErrInvalidCategory
		}
	case Income:
		if t.Category != "" {
			return ErrUnexpectedCategory
		}
	}
	if t.IsRecurring && !t.Recurrence.Valid() {
		return ErrInvalidRecurrence
	}
	if !t.IsRecurring && t.Recurrence != "" {
		return ErrInvalidRecurrence
	}
	return nil
}

func (g SavingsGoal) Validate() error {
	if len(strings.TrimSpace(g.Name)) == 0 {
		return errors.New("empty goal name")
	}
	if g.TargetAmount.Cents <= 0 {
		return ErrInvalidAmount
	}
	if g.CurrentAmount.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Clone returns a deep copy so callers can hand out profile snapshots without
// exposing internal state to mutation.
func (p Profile) Clone() Profile {
	out := p
	if p.BudgetDistribution != nil {
		out.BudgetDistribution = make(BudgetDistribution, len(p.BudgetDistribution))
		for tag, amount := range p.BudgetDistribution {
			out.BudgetDistribution[tag] = amount
		}
	}
	if p.Categories != nil {
		out.Categories = append([]Category(nil), p.Categories...)
	}
	if p.SavingsGoals != nil {
		out.SavingsGoals = append([]SavingsGoal(nil), p.SavingsGoals...)
	}
	return out
}
