package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/commitlabs/commitment-api/internal/api/shared"
	"github.com/commitlabs/commitment-api/internal/apperr"
	"github.com/commitlabs/commitment-api/internal/domain"
	"github.com/commitlabs/commitment-api/internal/service/marketplace"
	"github.com/commitlabs/commitment-api/internal/store"
	"github.com/commitlabs/commitment-api/internal/validation"
)

// MarketplaceHandler handles marketplace HTTP requests.
type MarketplaceHandler struct {
	service  *marketplace.Service
	mockData *store.MockFileStore
	logger   *slog.Logger
}

// NewMarketplaceHandler creates a MarketplaceHandler.
func NewMarketplaceHandler(service *marketplace.Service, mockData *store.MockFileStore, logger *slog.Logger) *MarketplaceHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for MarketplaceHandler")
	}
	return &MarketplaceHandler{
		service:  service,
		mockData: mockData,
		logger:   logger.With(slog.String("component", "marketplace_handler")),
	}
}

// Browse handles GET /api/marketplace with pagination and
// currencyAsset/minPrice/maxPrice filters over the mock dataset.
func (h *MarketplaceHandler) Browse(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query()

	pagination, err := validation.ParsePagination(query)
	if err != nil {
		return err
	}

	filters, err := validation.ParseFilters(map[string]any{
		"currencyAsset": query.Get("currencyAsset"),
		"minPrice":      query.Get("minPrice"),
		"maxPrice":      query.Get("maxPrice"),
	})
	if err != nil {
		return err
	}

	minPrice, err := priceFilter(filters, "minPrice")
	if err != nil {
		return err
	}
	maxPrice, err := priceFilter(filters, "maxPrice")
	if err != nil {
		return err
	}

	data, err := h.mockData.Load()
	if err != nil {
		return err
	}
	records := data.Listings
	if len(records) == 0 {
		records = store.DefaultMockData().Listings
	}

	listings := make([]domain.Listing, 0, len(records))
	for _, listing := range records {
		if asset, ok := filters["currencyAsset"].(string); ok && listing.CurrencyAsset != asset {
			continue
		}
		price, priceErr := decimal.NewFromString(listing.Price)
		if priceErr == nil {
			if minPrice != nil && price.LessThan(*minPrice) {
				continue
			}
			if maxPrice != nil && price.GreaterThan(*maxPrice) {
				continue
			}
		}
		listings = append(listings, listing)
	}

	total := len(listings)
	shared.RespondWithData(w, http.StatusOK, map[string]any{
		"listings":   paginate(listings, pagination),
		"pagination": map[string]int{"page": pagination.Page, "limit": pagination.Limit},
		"filters":    filters,
		"total":      total,
	})
	return nil
}

// CreateListing handles POST /api/marketplace/listings.
func (h *MarketplaceHandler) CreateListing(w http.ResponseWriter, r *http.Request) error {
	var req domain.CreateListingRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		return err
	}

	listing, err := h.service.CreateListing(r.Context(), &req)
	if err != nil {
		return err
	}

	shared.RespondWithData(w, http.StatusCreated, map[string]any{"listing": listing})
	return nil
}

// CancelListing handles DELETE /api/marketplace/listings/{id}. The seller
// address arrives as a query parameter.
func (h *MarketplaceHandler) CancelListing(w http.ResponseWriter, r *http.Request) error {
	listingID := chi.URLParam(r, "id")
	if listingID == "" {
		return apperr.Validation("Listing ID is required", nil)
	}

	sellerAddress := r.URL.Query().Get("sellerAddress")
	if sellerAddress == "" {
		return apperr.Validation("sellerAddress query parameter is required", nil)
	}

	if err := h.service.CancelListing(r.Context(), listingID, sellerAddress); err != nil {
		return err
	}

	shared.RespondWithData(w, http.StatusOK, map[string]any{
		"listingId": listingID,
		"cancelled": true,
		"message":   "Listing cancelled successfully",
	})
	return nil
}

// priceFilter validates an optional price bound and returns it as a
// decimal.
func priceFilter(filters map[string]any, field string) (*decimal.Decimal, error) {
	raw, ok := filters[field].(string)
	if !ok {
		return nil, nil
	}
	normalized, err := validation.ValidateAmount(raw, field)
	if err != nil {
		return nil, err
	}
	price, err := decimal.NewFromString(normalized)
	if err != nil {
		return nil, apperr.Validation(field+" must be a positive number.", map[string]any{"field": field})
	}
	return &price, nil
}
