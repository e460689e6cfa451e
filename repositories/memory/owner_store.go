package memory

import (
	// Go Internal Packages
	"context"
	"sync"

	// Local Packages
	errors "remit-api/errors"
	models "remit-api/models"
)

// OwnerStore is an in-memory balance/KYC view, seeded by tests.
type OwnerStore struct {
	mu     sync.RWMutex
	owners map[string]models.Owner
}

func NewOwnerStore() *OwnerStore {
	return &OwnerStore{owners: make(map[string]models.Owner)}
}

func (s *OwnerStore) Put(owner models.Owner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owners[owner.ID] = owner
}

func (s *OwnerStore) FindByID(ctx context.Context, ownerID string) (models.Owner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owner, ok := s.owners[ownerID]
	if !ok {
		return models.Owner{}, errors.ErrOwnerNotFound
	}
	return owner, nil
}
