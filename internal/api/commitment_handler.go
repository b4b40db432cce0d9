package api

import (
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/commitlabs/commitment-api/internal/api/shared"
	"github.com/commitlabs/commitment-api/internal/apperr"
	"github.com/commitlabs/commitment-api/internal/chain"
	"github.com/commitlabs/commitment-api/internal/dto"
	"github.com/commitlabs/commitment-api/internal/platform/analytics"
	"github.com/commitlabs/commitment-api/internal/store"
	"github.com/commitlabs/commitment-api/internal/validation"
)

// CommitmentHandler handles commitment-related HTTP requests.
type CommitmentHandler struct {
	chain       *chain.Client
	mockData    *store.MockFileStore
	analytics   *analytics.Recorder
	nftContract string
	logger      *slog.Logger
}

// NewCommitmentHandler creates a CommitmentHandler. nftContract is the
// commitment-NFT contract address used to derive metadata links; it may be
// empty, in which case no link is produced.
func NewCommitmentHandler(
	chainClient *chain.Client,
	mockData *store.MockFileStore,
	recorder *analytics.Recorder,
	nftContract string,
	logger *slog.Logger,
) *CommitmentHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CommitmentHandler")
	}
	return &CommitmentHandler{
		chain:       chainClient,
		mockData:    mockData,
		analytics:   recorder,
		nftContract: nftContract,
		logger:      logger.With(slog.String("component", "commitment_handler")),
	}
}

// List handles GET /api/commitments with pagination and status/creator
// filters over the mock dataset.
func (h *CommitmentHandler) List(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query()

	pagination, err := validation.ParsePagination(query)
	if err != nil {
		return err
	}

	filters, err := validation.ParseFilters(map[string]any{
		"status":  query.Get("status"),
		"creator": query.Get("creator"),
	})
	if err != nil {
		return err
	}
	if creator, ok := filters["creator"].(string); ok {
		if _, err := validation.ValidateAddress(creator, "creator"); err != nil {
			return err
		}
	}

	data, err := h.mockData.Load()
	if err != nil {
		return err
	}
	records := data.Commitments
	if len(records) == 0 {
		records = store.DefaultMockData().Commitments
	}

	commitments := make([]dto.Commitment, 0, len(records))
	for _, record := range records {
		mapped := dto.MapCommitmentFromChain(record)
		if status, ok := filters["status"].(string); ok && string(mapped.Status) != status {
			continue
		}
		if creator, ok := filters["creator"].(string); ok && mapped.OwnerAddress != creator {
			continue
		}
		commitments = append(commitments, mapped)
	}

	total := len(commitments)
	shared.RespondWithData(w, http.StatusOK, map[string]any{
		"commitments": paginate(commitments, pagination),
		"pagination":  map[string]int{"page": pagination.Page, "limit": pagination.Limit},
		"filters":     filters,
		"total":       total,
	})
	return nil
}

// Create handles POST /api/commitments: strict parse, chain submission,
// DTO mapping, 201.
func (h *CommitmentHandler) Create(w http.ResponseWriter, r *http.Request) error {
	body, err := shared.ReadBody(r)
	if err != nil {
		return err
	}

	input, err := validation.ParseCreateCommitmentInput(body)
	if err != nil {
		return err
	}

	result, err := h.chain.CreateCommitment(r.Context(), input)
	if err != nil {
		return err
	}

	h.analytics.Record(analytics.EventCommitmentCreated, map[string]any{
		"commitmentId": result.CommitmentID,
		"ownerAddress": input.OwnerAddress,
	})

	shared.RespondWithData(w, http.StatusCreated, map[string]any{
		"commitmentId": result.CommitmentID,
		"nftTokenId":   result.NFTTokenID,
		"txHash":       nullableString(result.TxHash),
		"reference":    nullableString(result.Reference),
		"commitment":   dto.MapCommitmentFromChain(result.Commitment),
	})
	return nil
}

// Get handles GET /api/commitments/{id}, returning the commitment detail
// with computed days remaining and a derived NFT metadata link.
func (h *CommitmentHandler) Get(w http.ResponseWriter, r *http.Request) error {
	commitmentID := chi.URLParam(r, "id")
	if commitmentID == "" {
		return apperr.Validation("Route parameter id is required.", nil)
	}

	detail, err := h.chain.GetCommitment(r.Context(), commitmentID)
	if err != nil {
		return err
	}
	if detail == nil {
		return apperr.NotFound("Commitment", map[string]any{"commitmentId": commitmentID})
	}

	shared.RespondWithData(w, http.StatusOK, map[string]any{
		"commitmentId":    detail.CommitmentID,
		"owner":           detail.Owner,
		"rules":           detail.Rules,
		"amount":          detail.Amount,
		"asset":           detail.Asset,
		"createdAt":       detail.CreatedAt.UTC().Format(time.RFC3339),
		"expiresAt":       detail.ExpiresAt.UTC().Format(time.RFC3339),
		"currentValue":    detail.CurrentValue,
		"status":          detail.Status,
		"daysRemaining":   daysRemaining(detail.ExpiresAt, time.Now()),
		"drawdownPercent": detail.DrawdownPercent,
		"maxLossPercent":  detail.Rules.MaxLossPercent,
		"tokenId":         detail.TokenID,
		"nftMetadataLink": h.nftMetadataLink(detail.TokenID),
	})
	return nil
}

// EarlyExit handles POST /api/commitments/{id}/early-exit.
func (h *CommitmentHandler) EarlyExit(w http.ResponseWriter, r *http.Request) error {
	commitmentID := chi.URLParam(r, "id")
	if commitmentID == "" {
		return apperr.Validation("Route parameter id is required.", nil)
	}

	body, err := shared.ReadBody(r)
	if err != nil {
		return err
	}
	input, err := validation.ParseEarlyExitInput(body)
	if err != nil {
		return err
	}

	result, err := h.chain.EarlyExitCommitment(r.Context(), commitmentID, input)
	if err != nil {
		return err
	}

	h.analytics.Record(analytics.EventCommitmentEarlyExit, map[string]any{
		"commitmentId": commitmentID,
		"ownerAddress": input.OwnerAddress,
	})

	shared.RespondWithData(w, http.StatusOK, map[string]any{
		"commitmentId":   commitmentID,
		"penaltyAmount":  result.PenaltyAmount,
		"returnedAmount": result.ReturnedAmount,
		"txHash":         nullableString(result.TxHash),
		"reference":      nullableString(result.Reference),
	})
	return nil
}

// Settle handles POST /api/commitments/{id}/settle. Settlement itself is
// stubbed; the body is parsed best-effort for analytics only, so a
// malformed body degrades to a logged note instead of a 400.
func (h *CommitmentHandler) Settle(w http.ResponseWriter, r *http.Request) error {
	commitmentID := chi.URLParam(r, "id")
	if commitmentID == "" {
		return apperr.Validation("Route parameter id is required.", nil)
	}

	payload := map[string]any{"commitmentId": commitmentID}
	var body map[string]any
	if err := shared.DecodeJSON(r, &body); err != nil {
		payload["error"] = "failed to parse request body"
	} else {
		for k, v := range body {
			payload[k] = v
		}
	}
	h.analytics.Record(analytics.EventCommitmentSettled, payload)

	// TODO: perform settlement against commitmentCore once the contract
	// write path exists.
	shared.RespondWithData(w, http.StatusOK, map[string]any{
		"commitmentId": commitmentID,
		"message":      "Stub settlement endpoint for commitment " + commitmentID,
	})
	return nil
}

func (h *CommitmentHandler) nftMetadataLink(tokenID string) *string {
	if tokenID == "" || h.nftContract == "" {
		return nil
	}
	link := h.nftContract + "/metadata/" + tokenID
	return &link
}

// daysRemaining is ceil((expiresAt - now) / 24h), floored at zero.
func daysRemaining(expiresAt, now time.Time) int {
	remaining := expiresAt.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining.Hours() / 24))
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// paginate slices a page out of items using validated pagination
// parameters.
func paginate[T any](items []T, p validation.Pagination) []T {
	start := (p.Page - 1) * p.Limit
	if start >= len(items) {
		return []T{}
	}
	end := start + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
