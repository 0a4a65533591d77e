package http

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/JewelryGo/pkg/httputil"
	"github.com/utafrali/JewelryGo/pkg/validator"
	"github.com/utafrali/JewelryGo/services/catalog/internal/service"
)

// PricingHandler serves price quotes and the purity table.
type PricingHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewPricingHandler creates a new pricing HTTP handler.
func NewPricingHandler(svc *service.CatalogService, logger *slog.Logger) *PricingHandler {
	return &PricingHandler{service: svc, logger: logger}
}

// QuoteRequest is the JSON body for POST /api/v1/pricing/quote. Either
// record_id or at least one weight must be given; a weight of 0 counts as
// given.
type QuoteRequest struct {
	RecordID      string   `json:"record_id" validate:"required_without_all=GoldWeight DiamondWeight,max=128"`
	GoldWeight    *float64 `json:"gold_weight" validate:"omitempty,gte=0"`
	DiamondWeight *float64 `json:"diamond_weight" validate:"omitempty,gte=0"`
	Karat         int      `json:"karat" validate:"gte=0"`
}

// Quote handles POST /api/v1/pricing/quote
func (h *PricingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	breakdown, err := h.service.Quote(r.Context(), service.QuoteInput{
		RecordID:      req.RecordID,
		GoldWeight:    valueOrZero(req.GoldWeight),
		DiamondWeight: valueOrZero(req.DiamondWeight),
		Karat:         req.Karat,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: breakdown})
}

func valueOrZero(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// GetPurity handles GET /api/v1/purity
func (h *PricingHandler) GetPurity(w http.ResponseWriter, r *http.Request) {
	table, err := h.service.PurityTiers(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: table})
}
