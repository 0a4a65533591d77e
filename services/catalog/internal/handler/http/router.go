package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/JewelryGo/pkg/health"
	"github.com/utafrali/JewelryGo/pkg/middleware"
	"github.com/utafrali/JewelryGo/services/catalog/internal/service"
)

// RouterConfig carries the optional HTTP settings of the catalog service.
type RouterConfig struct {
	// CacheMaxAge is the Cache-Control max-age for public reads, in seconds.
	// Zero disables the header.
	CacheMaxAge int
	AdminToken  string
	CORS        middleware.CORSConfig
	// RateLimiter throttles the public API when set.
	RateLimiter *middleware.RateLimiter
}

// NewRouter creates a chi router with all catalog service routes registered.
func NewRouter(
	catalogService *service.CatalogService,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cfg RouterConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("catalog"))
	r.Use(middleware.Tracing("catalog"))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	catalogHandler := NewCatalogHandler(catalogService, logger)
	pricingHandler := NewPricingHandler(catalogService, logger)
	adminHandler := NewAdminHandler(catalogService, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Middleware)
		}

		r.Group(func(r chi.Router) {
			if cfg.CacheMaxAge > 0 {
				r.Use(middleware.CacheControl(cfg.CacheMaxAge))
			}
			r.Get("/products", catalogHandler.ListProducts)
			r.Get("/products/{productId}", catalogHandler.GetProduct)
			r.Get("/products/{productId}/media", catalogHandler.GetProductMedia)
			r.Get("/records", catalogHandler.ListRecords)
			r.Get("/records/{id}", catalogHandler.GetRecord)
			r.Get("/facets", catalogHandler.GetFacets)
			r.Get("/purity", pricingHandler.GetPurity)
		})

		r.Post("/pricing/quote", pricingHandler.Quote)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.NoStore)
			r.Use(RequireAdminToken(cfg.AdminToken))
			r.Post("/reload", adminHandler.Reload)
			r.Get("/status", adminHandler.Status)
		})
	})

	return r
}
