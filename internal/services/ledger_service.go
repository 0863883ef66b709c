// Package services orchestrates ledger mutations with their side effects:
// snapshot persistence and change-event publishing. Both side effects are
// fire-and-forget; a mutation never fails because a collaborator is down.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"kassenbuch/internal/amqp"
	"kassenbuch/internal/budget"
	"kassenbuch/internal/core"
	"kassenbuch/internal/ledger"
	"kassenbuch/internal/notify"
	"kassenbuch/internal/storage"
)

// SnapshotStore persists opaque blobs keyed by snapshot name.
type SnapshotStore interface {
	Save(ctx context.Context, key string, value []byte) error
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Close() error
}

// EventPublisher emits ledger change events for external consumers.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, kind, transactionID string) error
	Close() error
}

// ErrNoSuggestion is returned when ApplySuggestion finds no active suggestion
// for the requested category.
var ErrNoSuggestion = errors.New("no suggestion for category")

// LedgerService wires the ledger store to persistence and events. Snapshots
// and events may be nil; the service then runs in-memory only.
type LedgerService struct {
	store        *ledger.Store
	snapshots    SnapshotStore
	events       EventPublisher
	windowMonths int

	// set after the first failed save; the session continues in memory
	degraded atomic.Bool
}

func NewLedgerService(store *ledger.Store, snapshots SnapshotStore, events EventPublisher, windowMonths int) *LedgerService {
	if windowMonths <= 0 {
		windowMonths = budget.DefaultWindowMonths
	}
	return &LedgerService{
		store:        store,
		snapshots:    snapshots,
		events:       events,
		windowMonths: windowMonths,
	}
}

// CreateTransaction validates the candidate, appends it to the ledger and
// triggers persistence plus a created event.
func (s *LedgerService) CreateTransaction(ctx context.Context, candidate core.Transaction) (core.Transaction, error) {
	if err := candidate.Validate(); err != nil {
		return core.Transaction{}, fmt.Errorf("validate transaction: %w", err)
	}

	tx := s.store.Append(candidate)
	s.persist(ctx)
	s.publish(ctx, amqp.EventTransactionCreated, tx.ID)

	slog.InfoContext(ctx, "Transaction recorded",
		"id", tx.ID,
		"type", tx.Type,
		"amount_cents", tx.Amount.Cents,
		"category", tx.Category)
	return tx, nil
}

// DeleteTransaction removes the transaction and reverses its balance effect.
// Unknown ids are tolerated silently.
func (s *LedgerService) DeleteTransaction(ctx context.Context, id string) {
	if !s.store.Remove(id) {
		slog.DebugContext(ctx, "Delete of unknown transaction ignored", "id", id)
		return
	}
	s.persist(ctx)
	s.publish(ctx, amqp.EventTransactionDeleted, id)
	slog.InfoContext(ctx, "Transaction deleted", "id", id)
}

// UpdateProfile applies a partial profile update (balance/income edits, goal
// and category list replacement).
func (s *LedgerService) UpdateProfile(ctx context.Context, u ledger.ProfileUpdate) {
	s.store.UpdateProfile(u)
	s.persist(ctx)
	s.publish(ctx, amqp.EventProfileUpdated, "")
}

// Suggestions recomputes the budget suggestions from the current snapshot.
func (s *LedgerService) Suggestions() []budget.Suggestion {
	spending := budget.Aggregate(s.store.Transactions(), s.windowMonths, time.Now())
	return budget.Suggest(s.store.Profile().BudgetDistribution, spending)
}

// ApplySuggestion recomputes the suggestions and applies the one matching the
// category, overwriting only that category's budget. Returns ErrNoSuggestion
// when the category currently has no active suggestion.
func (s *LedgerService) ApplySuggestion(ctx context.Context, tag core.CategoryTag) (budget.Suggestion, error) {
	for _, suggestion := range s.Suggestions() {
		if suggestion.Category != tag {
			continue
		}
		s.store.SetBudget(tag, suggestion.SuggestedBudget)
		s.persist(ctx)
		s.publish(ctx, amqp.EventProfileUpdated, "")
		slog.InfoContext(ctx, "Budget suggestion applied",
			"category", tag,
			"new_budget_cents", suggestion.SuggestedBudget.Cents)
		return suggestion, nil
	}
	return budget.Suggestion{}, ErrNoSuggestion
}

// Alerts evaluates the notification rules against the current snapshot.
func (s *LedgerService) Alerts() []notify.Alert {
	return notify.Evaluate(s.store.Profile(), s.store.Transactions())
}

// Overview computes the dashboard stats from the current snapshot.
func (s *LedgerService) Overview() budget.Overview {
	return budget.BuildOverview(s.store.Profile(), s.store.Transactions())
}

func (s *LedgerService) Transactions() []core.Transaction {
	return s.store.Transactions()
}

func (s *LedgerService) Profile() core.Profile {
	return s.store.Profile()
}

// persist writes both snapshots. On the first failure the session degrades to
// in-memory-only operation; mutations keep succeeding either way.
func (s *LedgerService) persist(ctx context.Context) {
	if s.snapshots == nil || s.degraded.Load() {
		return
	}

	txs, err := json.Marshal(s.store.Transactions())
	if err != nil {
		slog.ErrorContext(ctx, "Failed to marshal transactions snapshot", "error", err)
		return
	}
	profile, err := json.Marshal(s.store.Profile())
	if err != nil {
		slog.ErrorContext(ctx, "Failed to marshal profile snapshot", "error", err)
		return
	}

	if err := s.snapshots.Save(ctx, storage.KeyTransactions, txs); err != nil {
		s.degrade(ctx, err)
		return
	}
	if err := s.snapshots.Save(ctx, storage.KeyProfile, profile); err != nil {
		s.degrade(ctx, err)
	}
}

func (s *LedgerService) degrade(ctx context.Context, err error) {
	if s.degraded.CompareAndSwap(false, true) {
		slog.ErrorContext(ctx, "Snapshot persistence unavailable, continuing in-memory only", "error", err)
	}
}

func (s *LedgerService) publish(ctx context.Context, kind, transactionID string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishLedgerEvent(ctx, kind, transactionID); err != nil {
		// Don't fail the mutation, the ledger state is already updated.
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"kind", kind,
			"transaction_id", transactionID,
			"error", err)
	}
}

// Close releases the snapshot store and event publisher.
func (s *LedgerService) Close() error {
	var errs []error
	if s.snapshots != nil {
		if err := s.snapshots.Close(); err != nil {
			errs = append(errs, fmt.Errorf("snapshots: %w", err))
		}
	}
	if s.events != nil {
		if err := s.events.Close(); err != nil {
			errs = append(errs, fmt.Errorf("events: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}
	return nil
}
