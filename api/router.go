package api

import (
	// Go Internal Packages
	"net/http"

	// External Packages
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// NewRouter wires the HTTP surface. Transaction routes require a
// caller identity; the inbound confirmation webhook and health check
// do not.
func NewRouter(logger *zap.Logger, service TransactionService) *mux.Router {
	h := NewHandler(logger, service)

	r := mux.NewRouter()
	r.Use(RequestLogger(logger))
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/webhooks/confirm", h.ConfirmWebhook).Methods(http.MethodPost)

	txRouter := apiRouter.PathPrefix("/transactions").Subrouter()
	txRouter.Use(Authenticate)
	txRouter.HandleFunc("/send", h.SendMoney).Methods(http.MethodPost)
	txRouter.HandleFunc("/history", h.GetHistory).Methods(http.MethodGet)
	txRouter.HandleFunc("/{transactionId}", h.GetTransaction).Methods(http.MethodGet)

	return r
}
