package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/idx/pkg/domain"
)

// ClaimStore implements ports.ClaimStore in memory.
// Safe for concurrent use. Claims are lost on restart.
type ClaimStore struct {
	claimed map[string]struct{}
	mu      sync.RWMutex
}

// NewClaimStore creates a new in-memory claim store.
func NewClaimStore() *ClaimStore {
	return &ClaimStore{
		claimed: make(map[string]struct{}),
	}
}

// Claim adds the incident to the claimed set.
func (s *ClaimStore) Claim(ctx context.Context, incidentID string) error {
	if incidentID == "" {
		return domain.ErrEmptyIncidentID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.claimed[incidentID] = struct{}{}
	return nil
}

// List returns the claimed IDs, sorted.
func (s *ClaimStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.claimed))
	for id := range s.claimed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
