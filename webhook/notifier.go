package webhook

import (
	// Go Internal Packages
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	// Local Packages
	models "remit-api/models"

	// External Packages
	"go.uber.org/zap"
)

const deliveryTimeout = 10 * time.Second

// FailureSink records deliveries that did not succeed.
type FailureSink interface {
	Record(ctx context.Context, delivery models.FailedDelivery) error
}

// Notifier delivers the completion callback. Delivery is best-effort:
// a single POST attempt, failures are logged and recorded but never
// returned, so a dead callback URL cannot touch transaction state.
type Notifier struct {
	client   *http.Client
	logger   *zap.Logger
	failures FailureSink
}

func NewNotifier(logger *zap.Logger, failures FailureSink) *Notifier {
	return &Notifier{
		client:   &http.Client{Timeout: deliveryTimeout},
		logger:   logger,
		failures: failures,
	}
}

// Notify POSTs the payload to url once. No retry.
func (n *Notifier) Notify(ctx context.Context, url string, payload models.WebhookPayload) {
	body, err := json.Marshal(payload)
	if err != nil {
		n.fail(ctx, url, payload, fmt.Sprintf("marshal payload: %v", err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		n.fail(ctx, url, payload, fmt.Sprintf("build request: %v", err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.fail(ctx, url, payload, fmt.Sprintf("deliver: %v", err))
		return
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		n.fail(ctx, url, payload, fmt.Sprintf("non-success response: %s", resp.Status))
		return
	}

	n.logger.Info("webhook delivered",
		zap.String("transaction_id", payload.TransactionID),
		zap.String("url", url))
}

func (n *Notifier) fail(ctx context.Context, url string, payload models.WebhookPayload, reason string) {
	n.logger.Error("webhook delivery failed",
		zap.String("transaction_id", payload.TransactionID),
		zap.String("url", url),
		zap.String("reason", reason))

	if n.failures == nil {
		return
	}
	delivery := models.FailedDelivery{
		TransactionID: payload.TransactionID,
		URL:           url,
		Reason:        reason,
		Payload:       payload,
		FailedAt:      time.Now().UTC(),
	}
	if err := n.failures.Record(ctx, delivery); err != nil {
		n.logger.Error("failed to record delivery failure", zap.Error(err))
	}
}
