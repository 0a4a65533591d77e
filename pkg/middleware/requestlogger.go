package middleware

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/JewelryGo/pkg/logger"
)

// SessionHeader carries the opaque storefront session identifier.
const SessionHeader = "X-Session-ID"

// RequestLogger stores a logger enriched with correlation, session and trace
// identifiers in the request context. Mount it after RequestLogging and Tracing.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if sid := r.Header.Get(SessionHeader); sid != "" {
				ctx = logger.WithSessionID(ctx, sid)
			}
			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
