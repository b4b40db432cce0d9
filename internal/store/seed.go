package store

import (
	"time"

	"github.com/commitlabs/commitment-api/internal/chain"
	"github.com/commitlabs/commitment-api/internal/domain"
)

// Deterministic fixture addresses. Well-formed per the Stellar account
// pattern but not live accounts.
const (
	seedOwnerOne = "GABCDEFGHIJKLMNOPQRSTUVWXYZ234567ABCDEFGHIJKLMNOPQRSTUVW"
	seedOwnerTwo = "GBCDEFGHIJKLMNOPQRSTUVWXYZ234567ABCDEFGHIJKLMNOPQRSTUVWX"
)

// DefaultMockData builds the deterministic dataset the seed endpoint and
// the seed-mock command write to disk. The list endpoints fall back to it
// when the mock file is absent or empty.
func DefaultMockData() *MockData {
	createdAt := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)

	return &MockData{
		Commitments: []chain.Commitment{
			{
				ID:             "1",
				OwnerAddress:   seedOwnerOne,
				Amount:         "100000",
				AssetCode:      "USDC",
				AssetIssuer:    seedOwnerTwo,
				DurationDays:   60,
				MaxLossPercent: 8,
				CommitmentType: "balanced",
				Status:         "active",
				NFTTokenID:     "123456789",
			},
			{
				ID:             "2",
				OwnerAddress:   seedOwnerTwo,
				Amount:         "50000",
				DurationDays:   30,
				MaxLossPercent: 2,
				CommitmentType: "safe",
				Status:         "active",
				NFTTokenID:     "987654321",
			},
		},
		Attestations: []chain.Attestation{
			{
				ID:           "1",
				CommitmentID: "1",
				OwnerAddress: seedOwnerOne,
				Kind:         "drawdown_check",
				Verdict:      "pass",
				ObservedAt:   createdAt.Format(time.RFC3339),
			},
			{
				ID:           "2",
				CommitmentID: "2",
				OwnerAddress: seedOwnerTwo,
				Kind:         "drawdown_check",
			},
		},
		Listings: []domain.Listing{
			{
				ID:            "listing_seed_1",
				CommitmentID:  "1",
				Price:         "105000.00",
				CurrencyAsset: "USDC",
				SellerAddress: seedOwnerOne,
				Status:        domain.ListingStatusActive,
				CreatedAt:     createdAt,
				UpdatedAt:     createdAt,
			},
		},
	}
}
