package api

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/commitlabs/commitment-api/internal/api/shared"
	"github.com/commitlabs/commitment-api/internal/apperr"
	"github.com/commitlabs/commitment-api/internal/dto"
	"github.com/commitlabs/commitment-api/internal/platform/analytics"
	"github.com/commitlabs/commitment-api/internal/store"
	"github.com/commitlabs/commitment-api/internal/validation"
)

// AttestationHandler handles attestation-related HTTP requests.
type AttestationHandler struct {
	mockData  *store.MockFileStore
	analytics *analytics.Recorder
	logger    *slog.Logger
}

// NewAttestationHandler creates an AttestationHandler.
func NewAttestationHandler(mockData *store.MockFileStore, recorder *analytics.Recorder, logger *slog.Logger) *AttestationHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AttestationHandler")
	}
	return &AttestationHandler{
		mockData:  mockData,
		analytics: recorder,
		logger:    logger.With(slog.String("component", "attestation_handler")),
	}
}

// List handles GET /api/attestations with pagination and
// commitmentId/attester filters over the mock dataset.
func (h *AttestationHandler) List(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query()

	pagination, err := validation.ParsePagination(query)
	if err != nil {
		return err
	}

	filters, err := validation.ParseFilters(map[string]any{
		"commitmentId": query.Get("commitmentId"),
		"attester":     query.Get("attester"),
	})
	if err != nil {
		return err
	}
	if attester, ok := filters["attester"].(string); ok {
		if _, err := validation.ValidateAddress(attester, "attester"); err != nil {
			return err
		}
	}

	data, err := h.mockData.Load()
	if err != nil {
		return err
	}
	records := data.Attestations
	if len(records) == 0 {
		records = store.DefaultMockData().Attestations
	}

	attestations := make([]dto.Attestation, 0, len(records))
	for _, record := range records {
		mapped := dto.MapAttestationFromChain(record)
		if commitmentID, ok := filters["commitmentId"].(string); ok && mapped.CommitmentID != commitmentID {
			continue
		}
		if attester, ok := filters["attester"].(string); ok && mapped.OwnerAddress != attester {
			continue
		}
		attestations = append(attestations, mapped)
	}

	total := len(attestations)
	shared.RespondWithData(w, http.StatusOK, map[string]any{
		"attestations": paginate(attestations, pagination),
		"pagination":   map[string]int{"page": pagination.Page, "limit": pagination.Limit},
		"filters":      filters,
		"total":        total,
	})
	return nil
}

// createAttestationRequest carries loosely-typed fields so the handler can
// produce field-specific validation errors instead of a generic decode
// failure.
type createAttestationRequest struct {
	CommitmentID    any `json:"commitmentId"`
	AttesterAddress any `json:"attesterAddress"`
	Rating          any `json:"rating"`
	Comment         any `json:"comment"`
}

// Create handles POST /api/attestations with a validated mock creation.
func (h *AttestationHandler) Create(w http.ResponseWriter, r *http.Request) error {
	var req createAttestationRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		return err
	}

	commitmentID, ok := req.CommitmentID.(string)
	if !ok || commitmentID == "" {
		return apperr.Validation("Commitment ID is required and must be a string.",
			map[string]any{"field": "commitmentId"})
	}

	rating, ok := req.Rating.(float64)
	if !ok || rating != math.Trunc(rating) || rating < 1 || rating > 5 {
		return apperr.Validation("Rating is required and must be between 1 and 5.",
			map[string]any{"field": "rating"})
	}

	attesterRaw, _ := req.AttesterAddress.(string)
	attester, err := validation.ValidateAddress(attesterRaw, "attesterAddress")
	if err != nil {
		return err
	}

	comment, _ := req.Comment.(string)

	attestation := map[string]any{
		"id":           strconv.FormatInt(time.Now().UnixMilli(), 10),
		"commitmentId": commitmentID,
		"attester":     attester,
		"rating":       int(rating),
		"comment":      comment,
		"createdAt":    time.Now().UTC().Format(time.RFC3339),
	}

	h.analytics.Record(analytics.EventAttestationReceived, map[string]any{
		"commitmentId": commitmentID,
		"attester":     attester,
	})

	shared.RespondWithData(w, http.StatusCreated, attestation)
	return nil
}
