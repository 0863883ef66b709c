package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"kassenbuch/internal/amqp"
	"kassenbuch/internal/core"
	"kassenbuch/internal/storage"
)

type stubLoader struct {
	blobs map[string][]byte
	err   error
}

func (s *stubLoader) Load(_ context.Context, key string) ([]byte, bool, error) {
	if s.err != nil {
		return nil, false, s.err
	}
	blob, ok := s.blobs[key]
	return blob, ok, nil
}

type recordingAppender struct {
	rows []core.Transaction
	err  error
}

func (a *recordingAppender) AppendTransaction(_ context.Context, tx core.Transaction) error {
	if a.err != nil {
		return a.err
	}
	a.rows = append(a.rows, tx)
	return nil
}

func loaderWith(t *testing.T, items []core.Transaction) *stubLoader {
	t.Helper()
	blob, err := json.Marshal(items)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return &stubLoader{blobs: map[string][]byte{storage.KeyTransactions: blob}}
}

func TestHandleCreatedEventAppendsRow(t *testing.T) {
	tx := core.Transaction{
		ID:          "tx-1",
		Amount:      core.Money{Cents: 4_500},
		Type:        core.Expense,
		Date:        time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		Description: "Bäckerei",
		Category:    core.CategoryNeeds,
	}
	appender := &recordingAppender{}
	w := NewExportWorker(loaderWith(t, []core.Transaction{tx}), appender)

	ev := amqp.NewLedgerEvent(amqp.EventTransactionCreated, "tx-1")
	if err := w.HandleEvent(context.Background(), ev); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}
	if len(appender.rows) != 1 || appender.rows[0].ID != "tx-1" {
		t.Fatalf("unexpected rows: %+v", appender.rows)
	}
}

func TestHandleCreatedEventMissingTransaction(t *testing.T) {
	appender := &recordingAppender{}
	w := NewExportWorker(loaderWith(t, nil), appender)

	ev := amqp.NewLedgerEvent(amqp.EventTransactionCreated, "gone")
	if err := w.HandleEvent(context.Background(), ev); err != nil {
		t.Fatalf("missing transaction must not requeue: %v", err)
	}
	if len(appender.rows) != 0 {
		t.Fatalf("no row expected, got %+v", appender.rows)
	}
}

func TestHandleEventLoaderFailureRequeues(t *testing.T) {
	w := NewExportWorker(&stubLoader{err: errors.New("db down")}, &recordingAppender{})

	ev := amqp.NewLedgerEvent(amqp.EventTransactionCreated, "tx-1")
	if err := w.HandleEvent(context.Background(), ev); err == nil {
		t.Fatalf("expected error so the delivery is requeued")
	}
}

func TestHandleDeleteAndProfileEventsAreNoops(t *testing.T) {
	appender := &recordingAppender{}
	w := NewExportWorker(loaderWith(t, nil), appender)

	for _, kind := range []string{amqp.EventTransactionDeleted, amqp.EventProfileUpdated, "bogus"} {
		if err := w.HandleEvent(context.Background(), amqp.NewLedgerEvent(kind, "tx-1")); err != nil {
			t.Fatalf("kind %s: %v", kind, err)
		}
	}
	if len(appender.rows) != 0 {
		t.Fatalf("no rows expected, got %+v", appender.rows)
	}
}

func TestHandleEventWithoutAppender(t *testing.T) {
	w := NewExportWorker(loaderWith(t, nil), nil)

	ev := amqp.NewLedgerEvent(amqp.EventTransactionCreated, "tx-1")
	if err := w.HandleEvent(context.Background(), ev); err != nil {
		t.Fatalf("missing appender must not requeue: %v", err)
	}
}
