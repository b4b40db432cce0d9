package domain

import "time"

// ListingStatus is the state of a marketplace listing. Sold and Cancelled
// are terminal.
type ListingStatus string

const (
	ListingStatusActive    ListingStatus = "Active"
	ListingStatusSold      ListingStatus = "Sold"
	ListingStatusCancelled ListingStatus = "Cancelled"
)

// Listing is an offer to sell a commitment's ownership token on the
// secondary marketplace. Cancelled listings are never physically deleted
// and remain queryable.
type Listing struct {
	ID            string        `json:"id"`
	CommitmentID  string        `json:"commitmentId"`
	Price         string        `json:"price"`
	CurrencyAsset string        `json:"currencyAsset"`
	SellerAddress string        `json:"sellerAddress"`
	Status        ListingStatus `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// CreateListingRequest is the untrusted payload for creating a listing.
// The marketplace service validates it in one aggregated pass, so the
// struct carries validator tags rather than going through the fail-fast
// parsers.
type CreateListingRequest struct {
	CommitmentID  string `json:"commitmentId"  validate:"required"`
	Price         string `json:"price"         validate:"required"`
	CurrencyAsset string `json:"currencyAsset" validate:"required"`
	SellerAddress string `json:"sellerAddress" validate:"required"`
}
