package redis

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"fmt"

	// Local Packages
	models "remit-api/models"

	// External Packages
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// FailedWebhooks keeps an audit trail of outbound webhook deliveries
// that did not get a success response. Entries are keyed by
// transaction id; there is no retry consuming them.
type FailedWebhooks struct {
	client *redis.Client
	logger *zap.Logger
}

func NewFailedWebhooks(client *redis.Client, logger *zap.Logger) *FailedWebhooks {
	return &FailedWebhooks{client: client, logger: logger}
}

// Record stores a failed delivery under "webhook:{transaction_id}".
// A repeated failure for the same transaction overwrites the previous
// entry; only the latest attempt is kept.
func (r *FailedWebhooks) Record(ctx context.Context, delivery models.FailedDelivery) error {
	jsonData, err := json.Marshal(delivery)
	if err != nil {
		r.logger.Error("failed to marshal delivery record", zap.Error(err))
		return err
	}

	key := fmt.Sprintf("webhook:%s", delivery.TransactionID)
	if err := r.client.Set(ctx, key, jsonData, 0).Err(); err != nil {
		r.logger.Error("failed to store delivery record", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}
