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
	"github.com/utafrali/JewelryGo/services/cart/internal/service"
)

// Services groups the business services exposed over HTTP.
type Services struct {
	Cart     *service.CartService
	Wishlist *service.WishlistService
	Checkout *service.CheckoutService
}

// RouterConfig carries the optional HTTP settings of the cart service.
type RouterConfig struct {
	CORS middleware.CORSConfig
	// CheckoutLimiter throttles checkout session creation when set.
	CheckoutLimiter *middleware.RateLimiter
}

// NewRouter creates a chi router with all cart service routes registered.
func NewRouter(
	svcs Services,
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
	r.Use(middleware.PrometheusMetrics("cart"))
	r.Use(middleware.Tracing("cart"))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	cartHandler := NewCartHandler(svcs.Cart, logger)
	wishlistHandler := NewWishlistHandler(svcs.Wishlist, logger)
	checkoutHandler := NewCheckoutHandler(svcs.Checkout, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.NoStore)
		r.Use(ContentTypeJSON)
		r.Use(RequireSession)

		r.Get("/cart", cartHandler.GetCart)
		r.Delete("/cart", cartHandler.ClearCart)
		r.Post("/cart/items", cartHandler.AddItem)
		r.Put("/cart/items/{recordId}", cartHandler.UpdateItemQuantity)
		r.Delete("/cart/items/{recordId}", cartHandler.RemoveItem)

		r.Get("/wishlist", wishlistHandler.List)
		r.Put("/wishlist/{recordId}", wishlistHandler.Add)
		r.Delete("/wishlist/{recordId}", wishlistHandler.Remove)

		r.Group(func(r chi.Router) {
			if cfg.CheckoutLimiter != nil {
				r.Use(cfg.CheckoutLimiter.Middleware)
			}
			r.Post("/checkout/session", checkoutHandler.CreateSession)
		})
	})

	return r
}
