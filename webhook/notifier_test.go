package webhook

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	// Local Packages
	models "remit-api/models"

	// External Packages
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSink struct {
	mu         sync.Mutex
	deliveries []models.FailedDelivery
}

func (s *recordingSink) Record(_ context.Context, d models.FailedDelivery) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deliveries = append(s.deliveries, d)
	return nil
}

func (s *recordingSink) all() []models.FailedDelivery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.FailedDelivery(nil), s.deliveries...)
}

func samplePayload() models.WebhookPayload {
	return models.WebhookPayload{
		TransactionID: "TXN-abc",
		Status:        models.StatusCompleted,
		Amount:        1000,
		Timestamp:     time.Now().UTC(),
	}
}

func TestNotifyDeliversOnce(t *testing.T) {
	var (
		mu       sync.Mutex
		requests []models.WebhookPayload
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload models.WebhookPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		mu.Lock()
		requests = append(requests, payload)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sink := &recordingSink{}
	n := NewNotifier(zap.NewNop(), sink)
	n.Notify(context.Background(), server.URL, samplePayload())

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, requests, 1)
	assert.Equal(t, "TXN-abc", requests[0].TransactionID)
	assert.Equal(t, models.StatusCompleted, requests[0].Status)
	assert.Empty(t, sink.all())
}

func TestNotifyRecordsNonSuccessResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	sink := &recordingSink{}
	n := NewNotifier(zap.NewNop(), sink)
	n.Notify(context.Background(), server.URL, samplePayload())

	deliveries := sink.all()
	require.Len(t, deliveries, 1)
	assert.Equal(t, "TXN-abc", deliveries[0].TransactionID)
	assert.Equal(t, server.URL, deliveries[0].URL)
	assert.Contains(t, deliveries[0].Reason, "non-success")
}

func TestNotifyRecordsNetworkFailure(t *testing.T) {
	sink := &recordingSink{}
	n := NewNotifier(zap.NewNop(), sink)

	// Nothing listens here.
	n.Notify(context.Background(), "http://127.0.0.1:1/webhook", samplePayload())

	deliveries := sink.all()
	require.Len(t, deliveries, 1)
	assert.Contains(t, deliveries[0].Reason, "deliver")
}

func TestNotifyWithoutSinkDoesNotPanic(t *testing.T) {
	n := NewNotifier(zap.NewNop(), nil)
	n.Notify(context.Background(), "http://127.0.0.1:1/webhook", samplePayload())
}
