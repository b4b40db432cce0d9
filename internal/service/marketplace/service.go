// Package marketplace implements the secondary-market listing service for
// commitment NFTs. Listings live in an injected ListingStore; the service
// owns the state machine (Active -> Cancelled / Active -> Sold, both
// terminal) and the one-active-listing-per-commitment invariant.
//
// Validation here is aggregated rather than fail-fast: listing creation is
// a user-facing form submission, so every field violation is reported in
// one pass. The strict commitment parsers keep the fail-fast policy.
package marketplace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/commitlabs/commitment-api/internal/apperr"
	"github.com/commitlabs/commitment-api/internal/domain"
	"github.com/commitlabs/commitment-api/internal/store"
)

// Service handles marketplace listing operations.
type Service struct {
	listings store.ListingStore
	logger   *slog.Logger
	validate *validator.Validate
	now      func() time.Time

	// mu serializes the duplicate-active check with the insert so two
	// concurrent creates for the same commitment cannot both pass the
	// check.
	mu      sync.Mutex
	counter int64
}

// NewService creates a marketplace service over the given listing store.
func NewService(listings store.ListingStore, logger *slog.Logger) *Service {
	if listings == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("listing store cannot be nil for marketplace.Service")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		listings: listings,
		logger:   logger.With(slog.String("component", "marketplace_service")),
		validate: validator.New(),
		now:      time.Now,
	}
}

// CreateListing validates the request in one aggregated pass, enforces the
// single-active-listing invariant and stores the new listing.
func (s *Service) CreateListing(ctx context.Context, req *domain.CreateListingRequest) (*domain.Listing, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.listings.FindActiveByCommitment(ctx, req.CommitmentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("Commitment is already listed on the marketplace.", map[string]any{
			"commitmentId":      req.CommitmentID,
			"existingListingId": existing.ID,
		})
	}

	s.counter++
	now := s.now().UTC()
	listing := &domain.Listing{
		ID:            fmt.Sprintf("listing_%d_%d", s.counter, now.UnixMilli()),
		CommitmentID:  req.CommitmentID,
		Price:         req.Price,
		CurrencyAsset: req.CurrencyAsset,
		SellerAddress: req.SellerAddress,
		Status:        domain.ListingStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.listings.Put(ctx, listing); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "listing created",
		slog.String("listing_id", listing.ID),
		slog.String("commitment_id", listing.CommitmentID))
	return listing, nil
}

// CancelListing moves an Active listing to Cancelled. Only the original
// seller may cancel, and only from the Active state. A rejected cancel
// never mutates the listing.
func (s *Service) CancelListing(ctx context.Context, listingID, sellerAddress string) error {
	listing, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, store.ErrListingNotFound) {
			return apperr.NotFound("Listing", map[string]any{"listingId": listingID})
		}
		return err
	}

	if listing.SellerAddress != sellerAddress {
		return apperr.Validation("Only the seller can cancel this listing.", map[string]any{
			"listingId": listingID,
		})
	}

	if listing.Status != domain.ListingStatusActive {
		return apperr.Conflict("Only active listings can be cancelled.", map[string]any{
			"listingId":     listingID,
			"currentStatus": string(listing.Status),
		})
	}

	listing.Status = domain.ListingStatusCancelled
	listing.UpdatedAt = s.now().UTC()
	if err := s.listings.Put(ctx, listing); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "listing cancelled", slog.String("listing_id", listingID))
	return nil
}

// GetListing returns the stored listing, or (nil, nil) for an unknown ID.
func (s *Service) GetListing(ctx context.Context, listingID string) (*domain.Listing, error) {
	listing, err := s.listings.GetByID(ctx, listingID)
	if errors.Is(err, store.ErrListingNotFound) {
		return nil, nil
	}
	return listing, err
}

// validateCreateRequest collects every field violation into a single
// validation error with a details.errors list.
func (s *Service) validateCreateRequest(req *domain.CreateListingRequest) error {
	var fieldErrors []string

	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				switch fe.Field() {
				case "CommitmentID":
					fieldErrors = append(fieldErrors, "commitmentId is required and must be a string")
				case "Price":
					fieldErrors = append(fieldErrors, "price is required and must be a string")
				case "CurrencyAsset":
					fieldErrors = append(fieldErrors, "currencyAsset is required and must be a string")
				case "SellerAddress":
					fieldErrors = append(fieldErrors, "sellerAddress is required and must be a string")
				}
			}
		} else {
			return err
		}
	}

	if req.Price != "" {
		price, err := decimal.NewFromString(req.Price)
		if err != nil || !price.IsPositive() {
			fieldErrors = append(fieldErrors, "price must be a positive number")
		}
	}

	if len(fieldErrors) > 0 {
		return apperr.Validation("Invalid listing request", map[string]any{"errors": fieldErrors})
	}
	return nil
}
