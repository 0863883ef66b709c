package amqp

import (
	"encoding/json"
	"time"
)

// Event kinds published after ledger mutations.
const (
	EventTransactionCreated = "transaction.created"
	EventTransactionDeleted = "transaction.deleted"
	EventProfileUpdated     = "profile.updated"
)

// LedgerEvent is a lightweight change notification. It carries only the kind
// and the affected transaction id; consumers fetch the full record from the
// snapshot store.
type LedgerEvent struct {
	Kind          string    `json:"kind"`
	TransactionID string    `json:"transactionId,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

func NewLedgerEvent(kind, transactionID string) *LedgerEvent {
	return &LedgerEvent{
		Kind:          kind,
		TransactionID: transactionID,
		Timestamp:     time.Now(),
	}
}

func (e *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var ev LedgerEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
