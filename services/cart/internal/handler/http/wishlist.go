package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/JewelryGo/pkg/httputil"
	"github.com/utafrali/JewelryGo/services/cart/internal/service"
)

// WishlistHandler handles HTTP requests for wishlist endpoints.
type WishlistHandler struct {
	service *service.WishlistService
	logger  *slog.Logger
}

// NewWishlistHandler creates a new wishlist HTTP handler.
func NewWishlistHandler(svc *service.WishlistService, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{service: svc, logger: logger}
}

// List handles GET /api/v1/wishlist
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	wl, err := h.service.List(r.Context(), sessionID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: wl})
}

// Add handles PUT /api/v1/wishlist/{recordId}
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	wl, err := h.service.Add(r.Context(), sessionID(r), chi.URLParam(r, "recordId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: wl})
}

// Remove handles DELETE /api/v1/wishlist/{recordId}
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	wl, err := h.service.Remove(r.Context(), sessionID(r), chi.URLParam(r, "recordId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: wl})
}
