package models

import (
	// Go Internal Packages
	"time"
)

type TxStatus string

const (
	StatusPending    TxStatus = "pending"
	StatusProcessing TxStatus = "processing"
	StatusCompleted  TxStatus = "completed"
	StatusFailed     TxStatus = "failed"
)

func (s TxStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

type Channel string

const (
	ChannelMpesa      Channel = "mpesa"
	ChannelStripe     Channel = "stripe"
	ChannelBinancePay Channel = "binance_pay"
)

func (c Channel) Valid() bool {
	switch c {
	case ChannelMpesa, ChannelStripe, ChannelBinancePay:
		return true
	}
	return false
}

// Metadata is an open key/value bag on a transaction. Values are
// restricted to scalar kinds (string, number, bool) at validation so
// the persisted layout stays well-defined.
type Metadata map[string]any

// MetadataKeyConfirmationCode is where reconciliation stores the
// external confirmation code.
const MetadataKeyConfirmationCode = "confirmationCode"

// Transaction is the persisted remittance record. Status only moves
// along pending -> processing -> completed|failed, except that
// reconciliation may overwrite it with an external authority's value.
type Transaction struct {
	TxID             string    `json:"transactionId" bson:"_id"`
	OwnerID          string    `json:"ownerId" bson:"owner_id"`
	Amount           float64   `json:"amount" bson:"amount"`
	Currency         string    `json:"currency" bson:"currency"`
	Channel          Channel   `json:"channel" bson:"channel"`
	RecipientPhone   string    `json:"recipientPhone" bson:"recipient_phone"`
	RecipientName    string    `json:"recipientName" bson:"recipient_name"`
	Status           TxStatus  `json:"status" bson:"status"`
	EncryptedPayload string    `json:"encryptedPayload" bson:"encrypted_payload"`
	WebhookURL       string    `json:"webhookUrl,omitempty" bson:"webhook_url,omitempty"`
	Metadata         Metadata  `json:"metadata" bson:"metadata"`
	CreatedAt        time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" bson:"updated_at"`
}

// PayoutDetails is the structure sealed inside EncryptedPayload. It
// duplicates the cleartext recipient fields so the payout instruction
// is recoverable from the envelope alone.
type PayoutDetails struct {
	Amount         float64   `json:"amount"`
	RecipientPhone string    `json:"recipientPhone"`
	RecipientName  string    `json:"recipientName"`
	Channel        Channel   `json:"channel"`
	Timestamp      time.Time `json:"timestamp"`
}

// WebhookPayload is the body of the outbound completion callback.
type WebhookPayload struct {
	TransactionID string    `json:"transactionId"`
	Status        TxStatus  `json:"status"`
	Amount        float64   `json:"amount"`
	Timestamp     time.Time `json:"timestamp"`
}

// FailedDelivery records an outbound webhook attempt that did not get
// a success response. Kept for audit only, there is no retry.
type FailedDelivery struct {
	TransactionID string         `json:"transaction_id"`
	URL           string         `json:"url"`
	Reason        string         `json:"reason"`
	Payload       WebhookPayload `json:"payload"`
	FailedAt      time.Time      `json:"failed_at"`
}
