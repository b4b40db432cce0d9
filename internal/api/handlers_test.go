package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commitlabs/commitment-api/internal/api/shared"
	"github.com/commitlabs/commitment-api/internal/chain"
	"github.com/commitlabs/commitment-api/internal/config"
	"github.com/commitlabs/commitment-api/internal/platform/analytics"
	"github.com/commitlabs/commitment-api/internal/service/marketplace"
	"github.com/commitlabs/commitment-api/internal/store"
)

var testOwner = "G" + strings.Repeat("A", 55)

// newTestRouter wires the full handler graph against a temp mock file and
// a disabled chain, mirroring the production route layout minus rate
// limiting.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := slog.Default()
	mockData := store.NewMockFileStore(filepath.Join(t.TempDir(), "mock.json"))
	chainClient := chain.NewClient(config.SorobanConfig{}, logger)
	recorder := analytics.NewRecorder(logger)

	system := NewSystemHandler(chain.NewHealthChecker("", logger), mockData, true, logger)
	auth := NewAuthHandler(logger)
	commitments := NewCommitmentHandler(chainClient, mockData, recorder, "C"+strings.Repeat("A", 55), logger)
	attestations := NewAttestationHandler(mockData, recorder, logger)
	market := NewMarketplaceHandler(marketplace.NewService(store.NewMemoryListingStore(), logger), mockData, logger)

	h := func(fn shared.HandlerFunc) http.HandlerFunc {
		return shared.Handle(true, fn)
	}

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h(system.Health))
		r.Get("/ready", h(system.Ready))
		r.Post("/seed", h(system.Seed))
		r.Post("/auth", h(auth.Authenticate))
		r.Route("/commitments", func(r chi.Router) {
			r.Get("/", h(commitments.List))
			r.Post("/", h(commitments.Create))
			r.Get("/{id}", h(commitments.Get))
			r.Post("/{id}/early-exit", h(commitments.EarlyExit))
			r.Post("/{id}/settle", h(commitments.Settle))
		})
		r.Get("/attestations", h(attestations.List))
		r.Post("/attestations", h(attestations.Create))
		r.Route("/marketplace", func(r chi.Router) {
			r.Get("/", h(market.Browse))
			r.Post("/listings", h(market.CreateListing))
			r.Delete("/listings/{id}", h(market.CancelListing))
		})
	})
	return r
}

func do(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool             `json:"success"`
	Data    map[string]any   `json:"data"`
	Error   shared.ErrorBody `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestHealthEndpoint(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/api/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["timestamp"])
	// Liveness is deliberately not enveloped.
	assert.NotContains(t, body, "success")
}

func TestReadyEndpointUnconfiguredRPCIsReady(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/api/ready", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])

	checks := body["checks"].(map[string]any)
	rpc := checks["sorobanRpc"].(map[string]any)
	assert.Equal(t, "not configured", rpc["note"])
}

func TestReadyEndpointUnreachableRPC(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	down.Close()

	logger := slog.Default()
	system := NewSystemHandler(chain.NewHealthChecker(down.URL, logger),
		store.NewMockFileStore(filepath.Join(t.TempDir(), "mock.json")), true, logger)

	r := chi.NewRouter()
	r.Get("/api/ready", shared.Handle(true, system.Ready))

	rec := do(t, r, http.MethodGet, "/api/ready", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not_ready", body["status"])
}

func TestSeedEndpoint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mock.json")
	logger := slog.Default()
	mockData := store.NewMockFileStore(path)
	system := NewSystemHandler(chain.NewHealthChecker("", logger), mockData, true, logger)

	r := chi.NewRouter()
	r.Post("/api/seed", shared.Handle(true, system.Seed))

	rec := do(t, r, http.MethodPost, "/api/seed", "")
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "Mock data seeded successfully.", env.Data["message"])

	data, err := mockData.Load()
	require.NoError(t, err)
	assert.Len(t, data.Commitments, 2)
}

func TestSeedEndpointHiddenOutsideDevelopment(t *testing.T) {
	logger := slog.Default()
	system := NewSystemHandler(chain.NewHealthChecker("", logger),
		store.NewMockFileStore(filepath.Join(t.TempDir(), "mock.json")), false, logger)

	r := chi.NewRouter()
	r.Post("/api/seed", shared.Handle(false, system.Seed))

	rec := do(t, r, http.MethodPost, "/api/seed", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	env := decode(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestAuthEndpointStub(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodPost, "/api/auth", "{}")

	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "Authentication successful.", env.Data["message"])
}

func TestListCommitmentsFallsBackToSeedData(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/api/commitments", "")

	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	require.True(t, env.Success)

	commitments := env.Data["commitments"].([]any)
	assert.Len(t, commitments, 2)
	assert.Equal(t, float64(2), env.Data["total"])

	pagination := env.Data["pagination"].(map[string]any)
	assert.Equal(t, float64(1), pagination["page"])
	assert.Equal(t, float64(10), pagination["limit"])
}

func TestListCommitmentsStatusFilter(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/api/commitments?status=settled", "")

	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.Empty(t, env.Data["commitments"])
	assert.Equal(t, float64(0), env.Data["total"])
}

func TestListCommitmentsRejectsMalformedCreator(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/api/commitments?creator=bogus", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Equal(t, "creator is not a valid Stellar address.", env.Error.Message)
}

func TestCreateCommitmentEndpoint(t *testing.T) {
	body := `{"ownerAddress": "` + testOwner + `", "amount": "1000", "durationDays": 30, "maxLossPercent": 10, "commitmentType": "balanced"}`
	rec := do(t, newTestRouter(t), http.MethodPost, "/api/commitments", body)

	require.Equal(t, http.StatusCreated, rec.Code)
	env := decode(t, rec)
	require.True(t, env.Success)

	assert.True(t, strings.HasPrefix(env.Data["commitmentId"].(string), "cm_"))
	assert.True(t, strings.HasPrefix(env.Data["nftTokenId"].(string), "nft_"))
	assert.Nil(t, env.Data["txHash"])
	assert.Equal(t, "TODO_CHAIN_CALL_CREATE_COMMITMENT", env.Data["reference"])

	commitment := env.Data["commitment"].(map[string]any)
	assert.Equal(t, testOwner, commitment["ownerAddress"])
	assert.Equal(t, "active", commitment["status"])
}

func TestCreateCommitmentValidationFailure(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodPost, "/api/commitments", `{"amount": "1000"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Equal(t, "ownerAddress is required and must be a non-empty string.", env.Error.Message)
}

func TestCreateCommitmentSignerMismatchForbidden(t *testing.T) {
	other := "G" + strings.Repeat("B", 55)
	body := `{"ownerAddress": "` + testOwner + `", "amount": "1000", "durationDays": 30, "maxLossPercent": 10, "commitmentType": "balanced", "signatureContext": {"signerAddress": "` + other + `"}}`
	rec := do(t, newTestRouter(t), http.MethodPost, "/api/commitments", body)

	require.Equal(t, http.StatusForbidden, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)
}

func TestGetCommitmentDetail(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/api/commitments/1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	require.True(t, env.Success)

	assert.Equal(t, "1", env.Data["commitmentId"])
	assert.Equal(t, "112500", env.Data["currentValue"])
	assert.Equal(t, 3.2, env.Data["drawdownPercent"])
	assert.Equal(t, float64(8), env.Data["maxLossPercent"])
	assert.Equal(t, "123456789", env.Data["tokenId"])
	assert.Equal(t, "C"+strings.Repeat("A", 55)+"/metadata/123456789", env.Data["nftMetadataLink"])

	rules := env.Data["rules"].(map[string]any)
	assert.Equal(t, "balanced", rules["strategy"])
}

func TestGetCommitmentNotFound(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/api/commitments/999", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
	assert.Equal(t, "Commitment not found.", env.Error.Message)
}

func TestEarlyExitEndpoint(t *testing.T) {
	body := `{"ownerAddress": "` + testOwner + `"}`
	rec := do(t, newTestRouter(t), http.MethodPost, "/api/commitments/cm_1/early-exit", body)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "cm_1", env.Data["commitmentId"])
	assert.Equal(t, "0", env.Data["penaltyAmount"])
	assert.Equal(t, "TODO_CHAIN_CALL_EARLY_EXIT", env.Data["reference"])
}

func TestEarlyExitRejectsNonActiveStatus(t *testing.T) {
	body := `{"ownerAddress": "` + testOwner + `", "currentStatus": "settled"}`
	rec := do(t, newTestRouter(t), http.MethodPost, "/api/commitments/cm_1/early-exit", body)

	require.Equal(t, http.StatusConflict, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "CONFLICT", env.Error.Code)
}

func TestSettleEndpointStub(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/api/commitments/cm_1/settle", `{"finalValue": "110000"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "Stub settlement endpoint for commitment cm_1", env.Data["message"])

	// A malformed body still settles; parsing is best-effort.
	rec = do(t, router, http.MethodPost, "/api/commitments/cm_1/settle", "{broken")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListAttestationsFallsBackToSeedData(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/api/attestations", "")

	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	attestations := env.Data["attestations"].([]any)
	require.Len(t, attestations, 2)

	first := attestations[0].(map[string]any)
	assert.Equal(t, "pass", first["verdict"])
	second := attestations[1].(map[string]any)
	assert.Equal(t, "unknown", second["verdict"])
}

func TestListAttestationsCommitmentFilter(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/api/attestations?commitmentId=1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	attestations := env.Data["attestations"].([]any)
	require.Len(t, attestations, 1)
	assert.Equal(t, "1", attestations[0].(map[string]any)["commitmentId"])
}

func TestCreateAttestationEndpoint(t *testing.T) {
	body := `{"commitmentId": "1", "attesterAddress": "` + testOwner + `", "rating": 5, "comment": "solid"}`
	rec := do(t, newTestRouter(t), http.MethodPost, "/api/attestations", body)

	require.Equal(t, http.StatusCreated, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "1", env.Data["commitmentId"])
	assert.Equal(t, testOwner, env.Data["attester"])
	assert.Equal(t, float64(5), env.Data["rating"])
	assert.Equal(t, "solid", env.Data["comment"])
	assert.NotEmpty(t, env.Data["id"])
}

func TestCreateAttestationRejectsBadRating(t *testing.T) {
	router := newTestRouter(t)

	for _, rating := range []string{"0", "6", "3.5", `"five"`} {
		body := `{"commitmentId": "1", "attesterAddress": "` + testOwner + `", "rating": ` + rating + `}`
		rec := do(t, router, http.MethodPost, "/api/attestations", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, rating)
		env := decode(t, rec)
		assert.Equal(t, "Rating is required and must be between 1 and 5.", env.Error.Message)
	}
}

func TestBrowseMarketplaceFallsBackToSeedData(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/api/marketplace", "")

	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	listings := env.Data["listings"].([]any)
	require.Len(t, listings, 1)
	assert.Equal(t, "listing_seed_1", listings[0].(map[string]any)["id"])
}

func TestBrowseMarketplacePriceFilters(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/api/marketplace?minPrice=200000", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode(t, rec).Data["listings"])

	rec = do(t, router, http.MethodGet, "/api/marketplace?maxPrice=200000&currencyAsset=USDC", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec).Data["listings"], 1)

	rec = do(t, router, http.MethodGet, "/api/marketplace?minPrice=-5", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMarketplaceListingLifecycle(t *testing.T) {
	router := newTestRouter(t)

	create := `{"commitmentId": "7", "price": "150.00", "currencyAsset": "USDC", "sellerAddress": "` + testOwner + `"}`
	rec := do(t, router, http.MethodPost, "/api/marketplace/listings", create)
	require.Equal(t, http.StatusCreated, rec.Code)
	env := decode(t, rec)
	listing := env.Data["listing"].(map[string]any)
	listingID := listing["id"].(string)
	assert.Equal(t, "Active", listing["status"])

	// A second listing for the same commitment conflicts.
	rec = do(t, router, http.MethodPost, "/api/marketplace/listings", create)
	require.Equal(t, http.StatusConflict, rec.Code)
	env = decode(t, rec)
	assert.Equal(t, "CONFLICT", env.Error.Code)
	assert.Equal(t, listingID, env.Error.Details["existingListingId"])

	// Cancel requires the seller address.
	rec = do(t, router, http.MethodDelete, "/api/marketplace/listings/"+listingID, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "sellerAddress query parameter is required", decode(t, rec).Error.Message)

	rec = do(t, router, http.MethodDelete, "/api/marketplace/listings/"+listingID+"?sellerAddress="+testOwner, "")
	require.Equal(t, http.StatusOK, rec.Code)
	env = decode(t, rec)
	assert.Equal(t, true, env.Data["cancelled"])

	// The commitment can be listed again after cancellation.
	rec = do(t, router, http.MethodPost, "/api/marketplace/listings", create)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCancelUnknownListing(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodDelete, "/api/marketplace/listings/listing_nope?sellerAddress="+testOwner, "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
	assert.Equal(t, "Listing not found.", env.Error.Message)
}
