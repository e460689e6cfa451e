package api

import (
	// Go Internal Packages
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	// Local Packages
	errors "remit-api/errors"
	models "remit-api/models"

	// External Packages
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeService implements TransactionService with canned behavior.
type fakeService struct {
	txs map[string]models.Transaction
}

func newFakeService() *fakeService {
	return &fakeService{txs: make(map[string]models.Transaction)}
}

func (s *fakeService) Initialize(_ context.Context, ownerID string, req models.InitializeRequest) (models.Transaction, error) {
	if ownerID == "" {
		return models.Transaction{}, errors.ErrMissingCaller
	}
	if err := req.Validate(); err != nil {
		return models.Transaction{}, err
	}
	tx := models.Transaction{
		TxID:             "TXN-" + ownerID + "-abc",
		OwnerID:          ownerID,
		Amount:           req.Amount,
		Currency:         "USD",
		Channel:          req.Channel,
		RecipientPhone:   req.RecipientPhone,
		RecipientName:    req.RecipientName,
		Status:           models.StatusProcessing,
		EncryptedPayload: "aa:bb",
		Metadata:         models.Metadata{},
		CreatedAt:        time.Now().UTC(),
		UpdatedAt:        time.Now().UTC(),
	}
	s.txs[tx.TxID] = tx
	return tx, nil
}

func (s *fakeService) History(_ context.Context, ownerID string) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, tx := range s.txs {
		if tx.OwnerID == ownerID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (s *fakeService) Get(_ context.Context, txID, ownerID string) (models.Transaction, error) {
	tx, ok := s.txs[txID]
	if !ok || tx.OwnerID != ownerID {
		return models.Transaction{}, errors.ErrTxNotFound
	}
	return tx, nil
}

func (s *fakeService) Reconcile(_ context.Context, req models.ReconcileRequest) (models.Transaction, error) {
	tx, ok := s.txs[req.TransactionID]
	if !ok {
		return models.Transaction{}, errors.ErrTxNotFound
	}
	if req.Status != "" {
		tx.Status = req.Status
	}
	s.txs[req.TransactionID] = tx
	return tx, nil
}

func newTestRouter() (*fakeService, http.Handler) {
	service := newFakeService()
	return service, NewRouter(zap.NewNop(), service)
}

func doJSON(t *testing.T, router http.Handler, method, path, caller string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if caller != "" {
		req.Header.Set(CallerHeader, caller)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSendMoneyCreated(t *testing.T) {
	_, router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/transactions/send", "owner-1", models.InitializeRequest{
		Amount:         1000,
		Channel:        models.ChannelMpesa,
		RecipientPhone: "254712345678",
		RecipientName:  "Jane Doe",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	var body struct {
		Message string             `json:"message"`
		Data    models.Transaction `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Transaction initiated", body.Message)
	assert.Equal(t, models.StatusProcessing, body.Data.Status)
	assert.Equal(t, "owner-1", body.Data.OwnerID)
}

func TestSendMoneyRequiresCaller(t *testing.T) {
	_, router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/transactions/send", "", models.InitializeRequest{})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSendMoneyValidationFailure(t *testing.T) {
	_, router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/transactions/send", "owner-1", models.InitializeRequest{
		Amount:  -5,
		Channel: "carrier_pigeon",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetHistory(t *testing.T) {
	service, router := newTestRouter()
	_, err := service.Initialize(context.Background(), "owner-1", models.InitializeRequest{
		Amount: 100, Channel: models.ChannelStripe, RecipientPhone: "1", RecipientName: "n",
	})
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodGet, "/api/transactions/history", "owner-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []models.Transaction `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Data, 1)
}

func TestGetTransactionScoping(t *testing.T) {
	service, router := newTestRouter()
	tx, err := service.Initialize(context.Background(), "owner-1", models.InitializeRequest{
		Amount: 100, Channel: models.ChannelStripe, RecipientPhone: "1", RecipientName: "n",
	})
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodGet, "/api/transactions/"+tx.TxID, "owner-1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/transactions/"+tx.TxID, "owner-2", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConfirmWebhook(t *testing.T) {
	service, router := newTestRouter()
	tx, err := service.Initialize(context.Background(), "owner-1", models.InitializeRequest{
		Amount: 100, Channel: models.ChannelMpesa, RecipientPhone: "1", RecipientName: "n",
	})
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodPost, "/api/webhooks/confirm", "", models.ReconcileRequest{
		TransactionID:    tx.TxID,
		Status:           models.StatusCompleted,
		ConfirmationCode: "CONF-1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body confirmBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Webhook processed", body.Message)
	assert.Equal(t, tx.TxID, body.TransactionID)
}

func TestConfirmWebhookUnknownTransaction(t *testing.T) {
	_, router := newTestRouter()

	rec := doJSON(t, router, http.MethodPost, "/api/webhooks/confirm", "", models.ReconcileRequest{
		TransactionID: "TXN-missing",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	_, router := newTestRouter()

	rec := doJSON(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
