package memory

import (
	// Go Internal Packages
	"context"
	"maps"
	"sort"
	"sync"

	// Local Packages
	errors "remit-api/errors"
	models "remit-api/models"
)

// TxStore is an in-memory transaction store with the same contract as
// the mongodb repository. Used by tests and local runs without a
// database.
type TxStore struct {
	mu  sync.RWMutex
	txs map[string]models.Transaction
}

func NewTxStore() *TxStore {
	return &TxStore{txs: make(map[string]models.Transaction)}
}

func (s *TxStore) Create(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.txs[tx.TxID]; ok {
		return models.Transaction{}, errors.ErrDuplicateTx
	}
	s.txs[tx.TxID] = clone(tx)
	return tx, nil
}

func (s *TxStore) FindByID(ctx context.Context, txID string) (models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, ok := s.txs[txID]
	if !ok {
		return models.Transaction{}, errors.ErrTxNotFound
	}
	return clone(tx), nil
}

func (s *TxStore) FindByOwner(ctx context.Context, ownerID string) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var txs []models.Transaction
	for _, tx := range s.txs {
		if tx.OwnerID == ownerID {
			txs = append(txs, clone(tx))
		}
	}
	sort.Slice(txs, func(i, j int) bool {
		return txs[i].CreatedAt.After(txs[j].CreatedAt)
	})
	return txs, nil
}

// Update replaces the whole record, last-write-wins.
func (s *TxStore) Update(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.txs[tx.TxID]; !ok {
		return models.Transaction{}, errors.ErrTxNotFound
	}
	s.txs[tx.TxID] = clone(tx)
	return tx, nil
}

// clone copies the record so callers never share the stored metadata
// map.
func clone(tx models.Transaction) models.Transaction {
	cp := tx
	if tx.Metadata != nil {
		cp.Metadata = maps.Clone(tx.Metadata)
	}
	return cp
}
