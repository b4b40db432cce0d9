package store

import (
	"context"
	"sync"

	"github.com/samber/lo"

	"github.com/commitlabs/commitment-api/internal/domain"
)

// MemoryListingStore is a process-local ListingStore backed by a map. All
// access goes through a mutex, so concurrent requests cannot observe a
// half-written listing table.
type MemoryListingStore struct {
	mu       sync.RWMutex
	listings map[string]domain.Listing
}

// NewMemoryListingStore creates an empty in-memory listing store.
func NewMemoryListingStore() *MemoryListingStore {
	return &MemoryListingStore{listings: make(map[string]domain.Listing)}
}

// GetByID retrieves a listing by ID. Returns ErrListingNotFound when the ID
// is unknown.
func (s *MemoryListingStore) GetByID(_ context.Context, id string) (*domain.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	listing, ok := s.listings[id]
	if !ok {
		return nil, ErrListingNotFound
	}
	copied := listing
	return &copied, nil
}

// Put stores or replaces a listing keyed by its ID. The listing is copied
// in, so callers keep exclusive ownership of their value.
func (s *MemoryListingStore) Put(_ context.Context, listing *domain.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listings[listing.ID] = *listing
	return nil
}

// FindActiveByCommitment scans for the Active listing of a commitment.
func (s *MemoryListingStore) FindActiveByCommitment(_ context.Context, commitmentID string) (*domain.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active, found := lo.Find(lo.Values(s.listings), func(l domain.Listing) bool {
		return l.CommitmentID == commitmentID && l.Status == domain.ListingStatusActive
	})
	if !found {
		return nil, nil
	}
	return &active, nil
}
