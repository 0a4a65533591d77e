package http

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/utafrali/JewelryGo/pkg/httputil"
	"github.com/utafrali/JewelryGo/services/catalog/internal/service"
)

// AdminHandler exposes catalog maintenance operations.
type AdminHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewAdminHandler creates a new admin HTTP handler.
func NewAdminHandler(svc *service.CatalogService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{service: svc, logger: logger}
}

// Reload handles POST /api/v1/admin/reload
func (h *AdminHandler) Reload(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Reload(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: summary})
}

// Status handles GET /api/v1/admin/status
func (h *AdminHandler) Status(w http.ResponseWriter, r *http.Request) {
	summary, ok := h.service.Status()
	if !ok {
		httputil.WriteError(w, r, h.service.Ready(r.Context()), h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: summary})
}

// RequireAdminToken rejects requests without "Authorization: Bearer <token>".
// An empty token disables the check.
func RequireAdminToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !found || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
					Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "admin token required"},
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
