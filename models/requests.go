package models

import (
	// Go Internal Packages
	"fmt"

	// Local Packages
	errors "remit-api/errors"
)

// InitializeRequest is the payload for creating a remittance.
type InitializeRequest struct {
	Amount         float64  `json:"amount"`
	Currency       string   `json:"currency"`
	Channel        Channel  `json:"channel"`
	RecipientPhone string   `json:"recipientPhone"`
	RecipientName  string   `json:"recipientName"`
	WebhookURL     string   `json:"webhookUrl"`
	Metadata       Metadata `json:"metadata"`
}

// Validate checks the request fields before any store or cipher work.
func (r *InitializeRequest) Validate() error {
	ve := errors.ValidationErrs()

	if r.Amount <= 0 {
		ve.Add("amount", "must be positive")
	}
	if !r.Channel.Valid() {
		ve.Add("channel", "must be one of mpesa, stripe, binance_pay")
	}
	if r.RecipientPhone == "" {
		ve.Add("recipientPhone", "cannot be empty")
	}
	if r.RecipientName == "" {
		ve.Add("recipientName", "cannot be empty")
	}
	for key, value := range r.Metadata {
		switch value.(type) {
		case string, bool, float64, float32, int, int32, int64:
		default:
			ve.Add("metadata", fmt.Sprintf("key %q must hold a string, number or boolean", key))
		}
	}

	if err := ve.Err(); err != nil {
		return errors.ValidationFailedErr(err)
	}
	return nil
}

// ReconcileRequest is the inbound confirmation message. Status and
// ConfirmationCode are both optional; an empty status leaves the
// current one in place.
type ReconcileRequest struct {
	TransactionID    string   `json:"transactionId"`
	Status           TxStatus `json:"status"`
	ConfirmationCode string   `json:"confirmationCode"`
}

func (r *ReconcileRequest) Validate() error {
	ve := errors.ValidationErrs()

	if r.TransactionID == "" {
		ve.Add("transactionId", "cannot be empty")
	}
	if r.Status != "" && !r.Status.Valid() {
		ve.Add("status", "must be one of pending, processing, completed, failed")
	}

	if err := ve.Err(); err != nil {
		return errors.ValidationFailedErr(err)
	}
	return nil
}
