package amqp

import (
	"testing"
	"time"
)

func TestLedgerEventRoundtrip(t *testing.T) {
	ev := NewLedgerEvent(EventTransactionCreated, "tx-123")
	if ev.Timestamp.IsZero() {
		t.Fatalf("timestamp not set")
	}

	body, err := ev.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	got, err := LedgerEventFromJSON(body)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if got.Kind != EventTransactionCreated || got.TransactionID != "tx-123" {
		t.Fatalf("unexpected event: %+v", got)
	}
	if !got.Timestamp.Equal(ev.Timestamp.Truncate(time.Nanosecond)) {
		t.Fatalf("timestamp changed across roundtrip")
	}
}

func TestLedgerEventFromJSONInvalid(t *testing.T) {
	if _, err := LedgerEventFromJSON([]byte(`not json`)); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
}

func TestProfileEventOmitsTransactionID(t *testing.T) {
	body, err := NewLedgerEvent(EventProfileUpdated, "").ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	if string(body) == "" {
		t.Fatalf("empty payload")
	}
	got, err := LedgerEventFromJSON(body)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if got.TransactionID != "" {
		t.Fatalf("transaction id should be empty, got %q", got.TransactionID)
	}
}
