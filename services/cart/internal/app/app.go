package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/utafrali/JewelryGo/pkg/database"
	"github.com/utafrali/JewelryGo/pkg/health"
	"github.com/utafrali/JewelryGo/pkg/httpclient"
	pkgkafka "github.com/utafrali/JewelryGo/pkg/kafka"
	"github.com/utafrali/JewelryGo/pkg/middleware"
	"github.com/utafrali/JewelryGo/pkg/tracing"
	"github.com/utafrali/JewelryGo/services/cart/internal/client"
	"github.com/utafrali/JewelryGo/services/cart/internal/config"
	"github.com/utafrali/JewelryGo/services/cart/internal/event"
	handler "github.com/utafrali/JewelryGo/services/cart/internal/handler/http"
	"github.com/utafrali/JewelryGo/services/cart/internal/provider"
	"github.com/utafrali/JewelryGo/services/cart/internal/provider/mock"
	"github.com/utafrali/JewelryGo/services/cart/internal/provider/stripe"
	redisrepo "github.com/utafrali/JewelryGo/services/cart/internal/repository/redis"
	"github.com/utafrali/JewelryGo/services/cart/internal/service"
)

// App wires together all dependencies and runs the cart service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	rdb            *redis.Client
	producer       *pkgkafka.Producer
	limiter        *middleware.RateLimiter
	httpServer     *http.Server
	shutdownTracer func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a := &App{cfg: cfg, logger: logger}

	shutdownTracer, err := tracing.InitTracer(ctx, cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	a.shutdownTracer = shutdownTracer

	healthHandler := health.NewHandler()

	rdb, err := database.NewRedisClient(ctx, cfg.Redis, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	a.rdb = rdb
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	logger.Info("connected to redis", slog.String("addr", cfg.Redis.Addr()))

	// Kafka is optional; carts work without event publishing.
	var cartEvents service.CartEventPublisher
	var checkoutEvents service.CheckoutEventPublisher
	if cfg.KafkaEnabled {
		a.producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		producer := event.NewProducer(a.producer, logger)
		cartEvents, checkoutEvents = producer, producer
		healthHandler.Register("kafka", a.producer.Ping)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}

	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = cfg.CatalogTimeout
	catalogClient := client.NewCatalogClient(
		httpclient.NewCircuitBreakerClient(httpclient.New(httpCfg), httpclient.DefaultCircuitBreakerConfig("catalog"), logger),
		cfg.CatalogURL, logger,
	)

	paymentProvider, err := a.paymentProvider()
	if err != nil {
		a.closeResources()
		return nil, err
	}

	carts := redisrepo.NewCartRepository(rdb, cfg.CartTTL)
	wishlists := redisrepo.NewWishlistRepository(rdb, cfg.CartTTL)

	svcs := handler.Services{
		Cart:     service.NewCartService(carts, catalogClient, cartEvents, logger, cfg.CartTTL),
		Wishlist: service.NewWishlistService(wishlists, catalogClient, logger),
		Checkout: service.NewCheckoutService(carts, catalogClient, paymentProvider, checkoutEvents, service.CheckoutURLs{
			SuccessURL: cfg.CheckoutSuccessURL,
			CancelURL:  cfg.CheckoutCancelURL,
		}, logger),
	}

	if cfg.CheckoutRateLimitRPS > 0 {
		a.limiter = middleware.NewRateLimiter(cfg.CheckoutRateLimitRPS, cfg.CheckoutRateLimitBurst, 10*time.Minute, logger)
	}

	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.CORSAllowedOrigins
	router := handler.NewRouter(svcs, healthHandler, logger, handler.RouterConfig{
		CORS:            cors,
		CheckoutLimiter: a.limiter,
	})

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return a, nil
}

func (a *App) paymentProvider() (provider.Provider, error) {
	switch a.cfg.PaymentProvider {
	case config.ProviderStripe:
		httpCfg := httpclient.DefaultConfig()
		httpCfg.Timeout = 30 * time.Second
		cb := httpclient.NewCircuitBreakerClient(httpclient.New(httpCfg), httpclient.DefaultCircuitBreakerConfig("stripe"), a.logger)
		return stripe.NewProvider(cb, a.cfg.StripeAPIBase, a.cfg.StripeSecretKey, a.logger), nil
	case config.ProviderMock:
		a.logger.Warn("using mock payment provider")
		return mock.NewProvider(""), nil
	default:
		return nil, fmt.Errorf("unknown payment provider %q", a.cfg.PaymentProvider)
	}
}

// Run starts the HTTP server and background workers and blocks until the
// context is canceled or one of them fails.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("starting HTTP server", slog.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	if a.limiter != nil {
		g.Go(func() error {
			a.limiter.Run(gctx)
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutdown signal received")
		return a.Shutdown()
	})

	return g.Wait()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}
	a.closeResources()

	if err := a.shutdownTracer(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}

func (a *App) closeResources() {
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}
}
