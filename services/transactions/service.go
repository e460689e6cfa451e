package transactions

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	// Local Packages
	errors "remit-api/errors"
	models "remit-api/models"
	utils "remit-api/utils"

	// External Packages
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TxRepository interface {
	Create(ctx context.Context, tx models.Transaction) (models.Transaction, error)
	FindByID(ctx context.Context, txID string) (models.Transaction, error)
	FindByOwner(ctx context.Context, ownerID string) ([]models.Transaction, error)
	Update(ctx context.Context, tx models.Transaction) (models.Transaction, error)
}

type OwnerRepository interface {
	FindByID(ctx context.Context, ownerID string) (models.Owner, error)
}

type Encrypter interface {
	Encrypt(plaintext []byte) (string, error)
}

type Engine interface {
	Accept(ctx context.Context, tx models.Transaction) (models.Transaction, error)
}

type Publisher interface {
	Publish(ctx context.Context, event models.TxEvent)
}

// Service is the public entry point for the transaction lifecycle:
// initiation with precondition checks, history and lookup reads, and
// inbound reconciliation.
type Service struct {
	logger *zap.Logger
	txRepo TxRepository
	owners OwnerRepository
	cipher Encrypter
	engine Engine
	events Publisher
}

func NewService(logger *zap.Logger, txRepo TxRepository, owners OwnerRepository, cipher Encrypter, engine Engine, events Publisher) *Service {
	return &Service{
		logger: logger,
		txRepo: txRepo,
		owners: owners,
		cipher: cipher,
		engine: engine,
		events: events,
	}
}

// Initialize creates a remittance for ownerID and hands it to the
// settlement engine. Preconditions run in a fixed order, each with its
// own failure: the owner must exist, must be KYC verified, and must
// hold at least the requested amount. Nothing is persisted and the
// cipher is never touched when a precondition fails. The returned
// record is already in processing.
//
// The owner's balance is not debited here; this mock has no ledger.
func (s *Service) Initialize(ctx context.Context, ownerID string, req models.InitializeRequest) (models.Transaction, error) {
	if ownerID == "" {
		return models.Transaction{}, errors.ErrMissingCaller
	}
	if err := req.Validate(); err != nil {
		return models.Transaction{}, err
	}

	owner, err := s.owners.FindByID(ctx, ownerID)
	if err != nil {
		return models.Transaction{}, err
	}
	if owner.KycStatus != models.KycVerified {
		return models.Transaction{}, errors.ErrKycRequired
	}
	if owner.Balance < req.Amount {
		return models.Transaction{}, errors.ErrInsufficientBalance
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	now := time.Now().UTC()
	payload, err := json.Marshal(models.PayoutDetails{
		Amount:         req.Amount,
		RecipientPhone: req.RecipientPhone,
		RecipientName:  req.RecipientName,
		Channel:        req.Channel,
		Timestamp:      now,
	})
	if err != nil {
		return models.Transaction{}, fmt.Errorf("marshal payout details: %w", err)
	}

	envelope, err := s.cipher.Encrypt(payload)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("encrypt payout details: %w", err)
	}

	metadata := req.Metadata
	if metadata == nil {
		metadata = models.Metadata{}
	}

	tx := models.Transaction{
		TxID:             NewTxID(ownerID),
		OwnerID:          ownerID,
		Amount:           req.Amount,
		Currency:         currency,
		Channel:          req.Channel,
		RecipientPhone:   req.RecipientPhone,
		RecipientName:    req.RecipientName,
		Status:           models.StatusPending,
		EncryptedPayload: envelope,
		WebhookURL:       req.WebhookURL,
		Metadata:         metadata,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	created, err := s.txRepo.Create(ctx, tx)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("persist transaction: %w", err)
	}
	s.events.Publish(ctx, models.EventFor(models.EventTxCreated, created))

	s.logger.Info("transaction created",
		zap.String("transaction_id", created.TxID),
		zap.String("owner_id", ownerID),
		zap.String("channel", string(created.Channel)),
		zap.String("recipient_phone", utils.MaskPhone(created.RecipientPhone)))

	return s.engine.Accept(ctx, created)
}

// History returns the owner's transactions, newest first.
func (s *Service) History(ctx context.Context, ownerID string) ([]models.Transaction, error) {
	if ownerID == "" {
		return nil, errors.ErrMissingCaller
	}
	return s.txRepo.FindByOwner(ctx, ownerID)
}

// Get returns a single transaction, scoped to its owner. A transaction
// belonging to someone else is indistinguishable from a missing one.
func (s *Service) Get(ctx context.Context, txID, ownerID string) (models.Transaction, error) {
	if txID == "" {
		return models.Transaction{}, errors.EmptyParamErr("transactionId")
	}
	tx, err := s.txRepo.FindByID(ctx, txID)
	if err != nil {
		return models.Transaction{}, err
	}
	if tx.OwnerID != ownerID {
		return models.Transaction{}, errors.ErrTxNotFound
	}
	return tx, nil
}

// Reconcile merges an external confirmation into the record. A
// provided status overwrites the current one unconditionally, terminal
// or not; the external authority wins. The confirmation code lands in
// metadata without disturbing other keys. Repeating the same call
// leaves the record in the same state.
func (s *Service) Reconcile(ctx context.Context, req models.ReconcileRequest) (models.Transaction, error) {
	if err := req.Validate(); err != nil {
		return models.Transaction{}, err
	}

	tx, err := s.txRepo.FindByID(ctx, req.TransactionID)
	if err != nil {
		return models.Transaction{}, err
	}

	if req.Status != "" {
		tx.Status = req.Status
	}
	if req.ConfirmationCode != "" {
		if tx.Metadata == nil {
			tx.Metadata = models.Metadata{}
		}
		tx.Metadata[models.MetadataKeyConfirmationCode] = req.ConfirmationCode
	}
	tx.UpdatedAt = time.Now().UTC()

	updated, err := s.txRepo.Update(ctx, tx)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("persist reconciliation: %w", err)
	}
	s.events.Publish(ctx, models.EventFor(models.EventTxReconciled, updated))

	s.logger.Info("transaction reconciled",
		zap.String("transaction_id", updated.TxID),
		zap.String("status", string(updated.Status)))
	return updated, nil
}

// NewTxID builds a transaction id from a fixed prefix, an owner-derived
// component and a random component. Uniqueness comes from the random
// part; the owner fragment only makes the id easier to eyeball in logs.
func NewTxID(ownerID string) string {
	ownerPart := ownerID
	if len(ownerPart) > 8 {
		ownerPart = ownerPart[:8]
	}
	randomPart := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("TXN-%s-%s", ownerPart, randomPart)
}
