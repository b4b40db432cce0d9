package store

import (
	"context"
	"errors"

	"github.com/commitlabs/commitment-api/internal/domain"
)

// ErrListingNotFound is returned when a requested listing does not exist in
// the store.
var ErrListingNotFound = errors.New("listing not found")

// ListingStore defines the interface for marketplace listing persistence.
type ListingStore interface {
	// GetByID retrieves a listing by its unique ID.
	// Returns ErrListingNotFound if the listing does not exist.
	GetByID(ctx context.Context, id string) (*domain.Listing, error)

	// Put stores or replaces a listing keyed by its ID.
	Put(ctx context.Context, listing *domain.Listing) error

	// FindActiveByCommitment returns the Active listing for the given
	// commitment ID, or nil when none exists. At most one Active listing
	// per commitment may exist at any time; callers enforce that invariant
	// by holding their own lock across the check and the Put.
	FindActiveByCommitment(ctx context.Context, commitmentID string) (*domain.Listing, error)
}
