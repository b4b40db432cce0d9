package chain

import (
	"context"
	"time"
)

// CommitmentRules are the on-chain rule parameters of a commitment.
type CommitmentRules struct {
	Strategy                string `json:"strategy"`
	MaxLossPercent          *int   `json:"maxLossPercent,omitempty"`
	EarlyExitPenaltyPercent *int   `json:"earlyExitPenaltyPercent,omitempty"`
}

// CommitmentDetail is the full commitment record a contract read returns,
// including valuation fields the create path does not carry.
type CommitmentDetail struct {
	CommitmentID    string          `json:"commitmentId"`
	Owner           string          `json:"owner"`
	Rules           CommitmentRules `json:"rules"`
	Amount          string          `json:"amount"`
	Asset           string          `json:"asset"`
	CreatedAt       time.Time       `json:"createdAt"`
	ExpiresAt       time.Time       `json:"expiresAt"`
	CurrentValue    string          `json:"currentValue"`
	Status          string          `json:"status"`
	DrawdownPercent *float64        `json:"drawdownPercent,omitempty"`
	TokenID         string          `json:"tokenId,omitempty"`
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

// mockCommitments is the deterministic table served while contract reads
// are stubbed.
var mockCommitments = map[string]CommitmentDetail{
	"1": {
		CommitmentID: "1",
		Owner:        "GABCDEFGHIJKLMNOPQRSTUVWXYZ234567ABCDEFGHIJKLMNOPQRSTUVW",
		Rules: CommitmentRules{
			Strategy:                "balanced",
			MaxLossPercent:          intPtr(8),
			EarlyExitPenaltyPercent: intPtr(3),
		},
		Amount:          "100000",
		Asset:           "USDC",
		CreatedAt:       time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC),
		ExpiresAt:       time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC),
		CurrentValue:    "112500",
		Status:          "Active",
		DrawdownPercent: floatPtr(3.2),
		TokenID:         "123456789",
	},
	"2": {
		CommitmentID: "2",
		Owner:        "GBCDEFGHIJKLMNOPQRSTUVWXYZ234567ABCDEFGHIJKLMNOPQRSTUVWX",
		Rules: CommitmentRules{
			Strategy:                "safe",
			MaxLossPercent:          intPtr(2),
			EarlyExitPenaltyPercent: intPtr(2),
		},
		Amount:       "50000",
		Asset:        "XLM",
		CreatedAt:    time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
		ExpiresAt:    time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC),
		CurrentValue: "52600",
		Status:       "Active",
		TokenID:      "987654321",
	},
}

// GetCommitment reads a commitment from the chain. Returns (nil, nil) when
// the commitment does not exist.
func (c *Client) GetCommitment(_ context.Context, commitmentID string) (*CommitmentDetail, error) {
	// TODO: replace with real contract reads from commitmentCore +
	// commitmentNFT.
	detail, ok := mockCommitments[commitmentID]
	if !ok {
		return nil, nil
	}
	return &detail, nil
}
