package http

import (
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/JewelryGo/pkg/httputil"
	"github.com/utafrali/JewelryGo/pkg/pagination"
	"github.com/utafrali/JewelryGo/services/catalog/internal/domain"
	"github.com/utafrali/JewelryGo/services/catalog/internal/service"
)

// CatalogHandler handles HTTP requests for the storefront catalog.
type CatalogHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
		logger:  logger,
	}
}

// parseListQuery reads the shared listing parameters. A non-empty message
// means the request is malformed.
func parseListQuery(r *http.Request) (service.ListQuery, string) {
	q := service.ListQuery{
		Filter: domain.Filter{
			Category:    httputil.QueryList(r, "category"),
			MetalType:   httputil.QueryList(r, "metal"),
			SearchQuery: strings.TrimSpace(r.URL.Query().Get("q")),
		},
		Sort: domain.SortOption(r.URL.Query().Get("sort")),
		Page: pagination.FromRequest(r),
	}

	for _, m := range q.Filter.MetalType {
		if !domain.IsValidMetalType(m) {
			return q, fmt.Sprintf("metal must be one of: %s", metalNames())
		}
	}
	if !domain.IsValidSortOption(string(q.Sort)) {
		return q, "sort must be one of: name, price-low, price-high, newest"
	}

	inStock, ok := httputil.QueryBool(r, "in_stock")
	if !ok {
		return q, "in_stock must be a boolean"
	}
	q.Filter.InStock = inStock

	minPrice, hasMin, ok := httputil.QueryInt64(r, "min_price")
	if !ok || minPrice < 0 {
		return q, "min_price must be a non-negative integer"
	}
	maxPrice, hasMax, ok := httputil.QueryInt64(r, "max_price")
	if !ok || maxPrice < 0 {
		return q, "max_price must be a non-negative integer"
	}
	if hasMin || hasMax {
		if !hasMax {
			maxPrice = math.MaxInt64
		}
		if minPrice > maxPrice {
			return q, "min_price must not exceed max_price"
		}
		q.Filter.PriceRange = &domain.PriceRange{Min: minPrice, Max: maxPrice}
	}
	return q, ""
}

func metalNames() string {
	names := make([]string, 0, 4)
	for _, m := range domain.MetalTypes() {
		names = append(names, string(m))
	}
	return strings.Join(names, ", ")
}

// ListProducts handles GET /api/v1/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q, msg := parseListQuery(r)
	if msg != "" {
		httputil.WriteInvalidParameter(w, msg)
		return
	}

	groups, total, err := h.service.ListGroups(r.Context(), q)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.NewPaginatedResponse(groups, total, q.Page))
}

// GetProduct handles GET /api/v1/products/{productId}
// The path value may be a product ID or a slug.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	group, err := h.service.GetGroup(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: group})
}

// GetProductMedia handles GET /api/v1/products/{productId}/media?metal=
func (h *CatalogHandler) GetProductMedia(w http.ResponseWriter, r *http.Request) {
	sel, err := h.service.Media(r.Context(), chi.URLParam(r, "productId"), r.URL.Query().Get("metal"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: sel})
}

// ListRecords handles GET /api/v1/records
func (h *CatalogHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	q, msg := parseListQuery(r)
	if msg != "" {
		httputil.WriteInvalidParameter(w, msg)
		return
	}

	records, total, err := h.service.ListRecords(r.Context(), q)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.NewPaginatedResponse(records, total, q.Page))
}

// GetRecord handles GET /api/v1/records/{id}
func (h *CatalogHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.GetRecord(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: rec})
}

// GetFacets handles GET /api/v1/facets
func (h *CatalogHandler) GetFacets(w http.ResponseWriter, r *http.Request) {
	facets, err := h.service.Facets(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: facets})
}
