// Package chain simulates the Soroban contract layer. Write operations are
// explicit stubs gated by the chain-writes flag; they validate the
// configuration a real submission would need and return deterministic mock
// results either way. This is a simulation boundary, not a finished
// integration.
package chain

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/commitlabs/commitment-api/internal/apperr"
	"github.com/commitlabs/commitment-api/internal/config"
	"github.com/commitlabs/commitment-api/internal/domain"
)

// CreateCommitmentResult is the outcome of submitting a new commitment.
// TxHash is empty until real submission exists; Reference marks the mock
// path for observability.
type CreateCommitmentResult struct {
	Commitment   Commitment
	CommitmentID string
	NFTTokenID   string
	TxHash       string
	Reference    string
}

// EarlyExitResult is the outcome of an early-exit submission.
type EarlyExitResult struct {
	PenaltyAmount  string
	ReturnedAmount string
	TxHash         string
	Reference      string
}

// Client performs chain operations against the configured Soroban network.
type Client struct {
	cfg    config.SorobanConfig
	logger *slog.Logger
	now    func() time.Time
}

// NewClient creates a chain client from the Soroban configuration.
func NewClient(cfg config.SorobanConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "chain_client")),
		now:    time.Now,
	}
}

func mockReference(action string) string {
	return "TODO_CHAIN_CALL_" + strings.ToUpper(action)
}

// CreateCommitment submits a create-commitment operation. With chain writes
// disabled it returns a deterministic mock immediately; with writes enabled
// it validates that the required contract addresses are configured and then
// still returns the mock shape.
func (c *Client) CreateCommitment(ctx context.Context, input *domain.CreateCommitmentInput) (*CreateCommitmentResult, error) {
	nowMilli := c.now().UnixMilli()
	commitmentID := fmt.Sprintf("cm_%d", nowMilli)
	nftTokenID := fmt.Sprintf("nft_%d", nowMilli)

	var issuer string
	if input.AssetIssuer != nil {
		issuer = *input.AssetIssuer
	}

	commitment := Commitment{
		ID:             commitmentID,
		OwnerAddress:   input.OwnerAddress,
		Amount:         input.Amount,
		AssetCode:      input.AssetCode,
		AssetIssuer:    issuer,
		DurationDays:   input.DurationDays,
		MaxLossPercent: input.MaxLossPercent,
		CommitmentType: string(input.CommitmentType),
		Status:         string(domain.CommitmentStatusActive),
		NFTTokenID:     nftTokenID,
	}

	result := &CreateCommitmentResult{
		Commitment:   commitment,
		CommitmentID: commitmentID,
		NFTTokenID:   nftTokenID,
		Reference:    mockReference("create_commitment"),
	}

	if !c.cfg.ChainWritesEnabled {
		return result, nil
	}

	if c.cfg.CommitmentCoreContract == "" || c.cfg.CommitmentNFTContract == "" {
		return nil, apperr.Validation(
			"Missing COMMITMENT_CORE_CONTRACT or COMMITMENT_NFT_CONTRACT for on-chain create.", nil)
	}

	// TODO: replace with real Soroban transaction submission once the
	// backend signing flow lands.
	c.logger.InfoContext(ctx, "chain writes enabled but submission is stubbed",
		slog.String("commitment_id", commitmentID))
	return result, nil
}

// EarlyExitCommitment submits an early-exit operation for a commitment.
func (c *Client) EarlyExitCommitment(ctx context.Context, commitmentID string, input *domain.EarlyExitInput) (*EarlyExitResult, error) {
	if strings.TrimSpace(commitmentID) == "" {
		return nil, apperr.Validation("Commitment id is required.", nil)
	}
	if input.HasCurrentStatus && input.CurrentStatus != string(domain.CommitmentStatusActive) {
		return nil, apperr.Conflict(
			"Commitment cannot be early-exited from its current state.",
			map[string]any{"currentStatus": input.CurrentStatus})
	}

	result := &EarlyExitResult{
		PenaltyAmount:  "0",
		ReturnedAmount: "0",
		Reference:      mockReference("early_exit"),
	}

	if !c.cfg.ChainWritesEnabled {
		return result, nil
	}

	if c.cfg.CommitmentCoreContract == "" {
		return nil, apperr.Validation("Missing COMMITMENT_CORE_CONTRACT for on-chain early exit.", nil)
	}

	// TODO: replace with real Soroban transaction submission once the
	// backend signing flow lands.
	c.logger.InfoContext(ctx, "chain writes enabled but submission is stubbed",
		slog.String("commitment_id", commitmentID))
	return result, nil
}
