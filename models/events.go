package models

import (
	// Go Internal Packages
	"time"
)

type EventType string

const (
	EventTxCreated    EventType = "transaction.created"
	EventTxProcessing EventType = "transaction.processing"
	EventTxCompleted  EventType = "transaction.completed"
	EventTxFailed     EventType = "transaction.failed"
	EventTxReconciled EventType = "transaction.reconciled"
)

// TxEvent is the lifecycle event published on every status transition.
type TxEvent struct {
	Type          EventType `json:"event_type"`
	TransactionID string    `json:"transaction_id"`
	OwnerID       string    `json:"owner_id"`
	Status        TxStatus  `json:"status"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	Channel       Channel   `json:"channel"`
	Timestamp     time.Time `json:"timestamp"`
}

// EventFor builds the lifecycle event describing a transaction's
// current state.
func EventFor(eventType EventType, tx Transaction) TxEvent {
	return TxEvent{
		Type:          eventType,
		TransactionID: tx.TxID,
		OwnerID:       tx.OwnerID,
		Status:        tx.Status,
		Amount:        tx.Amount,
		Currency:      tx.Currency,
		Channel:       tx.Channel,
		Timestamp:     time.Now().UTC(),
	}
}
