package services

import (
	"context"
	"encoding/json"
	"log/slog"

	"kassenbuch/internal/core"
	"kassenbuch/internal/ledger"
	"kassenbuch/internal/storage"
)

// LoadState restores the ledger from the snapshot store. A missing or
// unreadable snapshot falls back to the default profile and an empty ledger
// so the application always starts.
func LoadState(ctx context.Context, snapshots SnapshotStore) *ledger.Store {
	profile := core.DefaultProfile()
	var items []core.Transaction

	if snapshots == nil {
		return ledger.NewStore(profile, nil)
	}

	if blob, ok, err := snapshots.Load(ctx, storage.KeyProfile); err != nil {
		slog.WarnContext(ctx, "Failed to load profile snapshot, using defaults", "error", err)
	} else if ok {
		var p core.Profile
		if err := json.Unmarshal(blob, &p); err != nil {
			slog.WarnContext(ctx, "Corrupt profile snapshot, using defaults", "error", err)
		} else {
			profile = p
		}
	}

	if blob, ok, err := snapshots.Load(ctx, storage.KeyTransactions); err != nil {
		slog.WarnContext(ctx, "Failed to load transactions snapshot, starting empty", "error", err)
	} else if ok {
		if err := json.Unmarshal(blob, &items); err != nil {
			slog.WarnContext(ctx, "Corrupt transactions snapshot, starting empty", "error", err)
			items = nil
		}
	}

	slog.InfoContext(ctx, "Ledger state restored",
		"transactions", len(items),
		"balance_cents", profile.CurrentBalance.Cents)
	return ledger.NewStore(profile, items)
}
