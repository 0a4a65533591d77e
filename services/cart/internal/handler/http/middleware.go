package http

import (
	"net/http"
	"strings"

	"github.com/utafrali/JewelryGo/pkg/httputil"
	"github.com/utafrali/JewelryGo/pkg/logger"
	"github.com/utafrali/JewelryGo/pkg/middleware"
)

const maxSessionIDLength = 128

// RequireSession rejects requests without a usable X-Session-ID header. The
// ID is stored in the request context for the handlers and the logger.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := strings.TrimSpace(r.Header.Get(middleware.SessionHeader))
		if !validSessionID(sid) {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "SESSION_REQUIRED", Message: middleware.SessionHeader + " header is required"},
			})
			return
		}
		ctx := logger.WithSessionID(r.Context(), sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionID extracts the session ID stored by RequireSession.
func sessionID(r *http.Request) string {
	return logger.SessionIDFromContext(r.Context())
}

func validSessionID(sid string) bool {
	if sid == "" || len(sid) > maxSessionIDLength {
		return false
	}
	for _, c := range sid {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}

// ContentTypeJSON enforces that requests with a body have Content-Type: application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				httputil.WriteJSON(w, http.StatusUnsupportedMediaType, httputil.Response{
					Error: &httputil.ErrorResponse{Code: "UNSUPPORTED_MEDIA_TYPE", Message: "Content-Type must be application/json"},
				})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
