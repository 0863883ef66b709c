// Package worker mirrors newly created transactions into the Google Sheets
// archive. It is driven by ledger change events from AMQP.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"kassenbuch/internal/amqp"
	"kassenbuch/internal/core"
	"kassenbuch/internal/storage"
)

// SnapshotLoader reads persisted blobs from the snapshot store.
type SnapshotLoader interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
}

// RowAppender pushes a transaction into the external archive.
type RowAppender interface {
	AppendTransaction(ctx context.Context, tx core.Transaction) error
}

// ExportWorker resolves change events against the snapshot store and appends
// created transactions to the archive sheet.
type ExportWorker struct {
	snapshots SnapshotLoader
	appender  RowAppender
}

func NewExportWorker(snapshots SnapshotLoader, appender RowAppender) *ExportWorker {
	return &ExportWorker{
		snapshots: snapshots,
		appender:  appender,
	}
}

// HandleEvent processes a single ledger event. Returning an error requeues
// the delivery.
func (w *ExportWorker) HandleEvent(ctx context.Context, ev *amqp.LedgerEvent) error {
	switch ev.Kind {
	case amqp.EventTransactionCreated:
		return w.exportTransaction(ctx, ev.TransactionID)
	case amqp.EventTransactionDeleted:
		// Rows are never removed from the archive; the sheet is append-only.
		slog.InfoContext(ctx, "Skipping delete event, archive is append-only",
			"transaction_id", ev.TransactionID)
		return nil
	case amqp.EventProfileUpdated:
		return nil
	default:
		slog.WarnContext(ctx, "Ignoring unknown event kind", "kind", ev.Kind)
		return nil
	}
}

func (w *ExportWorker) exportTransaction(ctx context.Context, id string) error {
	if w.appender == nil {
		slog.WarnContext(ctx, "No sheet exporter configured, skipping", "transaction_id", id)
		return nil
	}

	tx, err := w.lookupTransaction(ctx, id)
	if err != nil {
		return err
	}
	if tx == nil {
		// Deleted between publish and consume; nothing to archive.
		slog.InfoContext(ctx, "Transaction no longer in ledger, skipping export", "transaction_id", id)
		return nil
	}

	if err := w.appender.AppendTransaction(ctx, *tx); err != nil {
		return fmt.Errorf("append transaction %s to archive: %w", id, err)
	}

	slog.InfoContext(ctx, "Transaction archived",
		"transaction_id", id,
		"amount_cents", tx.Amount.Cents,
		"type", tx.Type)
	return nil
}

func (w *ExportWorker) lookupTransaction(ctx context.Context, id string) (*core.Transaction, error) {
	blob, ok, err := w.snapshots.Load(ctx, storage.KeyTransactions)
	if err != nil {
		return nil, fmt.Errorf("load transactions snapshot: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var items []core.Transaction
	if err := json.Unmarshal(blob, &items); err != nil {
		return nil, fmt.Errorf("unmarshal transactions snapshot: %w", err)
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, nil
}
