package api

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"net/http"

	// Local Packages
	errors "remit-api/errors"
	models "remit-api/models"

	// External Packages
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type TransactionService interface {
	Initialize(ctx context.Context, ownerID string, req models.InitializeRequest) (models.Transaction, error)
	History(ctx context.Context, ownerID string) ([]models.Transaction, error)
	Get(ctx context.Context, txID, ownerID string) (models.Transaction, error)
	Reconcile(ctx context.Context, req models.ReconcileRequest) (models.Transaction, error)
}

type Handler struct {
	logger  *zap.Logger
	service TransactionService
}

func NewHandler(logger *zap.Logger, service TransactionService) *Handler {
	return &Handler{logger: logger, service: service}
}

type messageBody struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type confirmBody struct {
	Message       string `json:"message"`
	TransactionID string `json:"transactionId"`
}

type errorBody struct {
	Error string `json:"error"`
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SendMoney creates a remittance for the authenticated caller. The
// response carries the full record, already in processing.
func (h *Handler) SendMoney(w http.ResponseWriter, r *http.Request) {
	var req models.InitializeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, errors.InvalidBodyErr(err))
		return
	}

	tx, err := h.service.Initialize(r.Context(), CallerFrom(r.Context()), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, messageBody{Message: "Transaction initiated", Data: tx})
}

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	txs, err := h.service.History(r.Context(), CallerFrom(r.Context()))
	if err != nil {
		h.writeError(w, err)
		return
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "Transaction history retrieved", Data: txs})
}

func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	txID := mux.Vars(r)["transactionId"]
	tx, err := h.service.Get(r.Context(), txID, CallerFrom(r.Context()))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "Transaction retrieved", Data: tx})
}

// ConfirmWebhook is the inbound reconciliation surface for external
// payment authorities. No caller identity is required; a real
// deployment would authenticate the sender.
func (h *Handler) ConfirmWebhook(w http.ResponseWriter, r *http.Request) {
	var req models.ReconcileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, errors.InvalidBodyErr(err))
		return
	}

	tx, err := h.service.Reconcile(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, confirmBody{Message: "Webhook processed", TransactionID: tx.TxID})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.KindOf(err) {
	case errors.Invalid:
		status = http.StatusBadRequest
	case errors.NotFound:
		status = http.StatusNotFound
	case errors.Conflict:
		status = http.StatusConflict
	case errors.Unauthorized:
		status = http.StatusUnauthorized
	case errors.Unprocessable:
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
		writeJSON(w, status, errorBody{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
