package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/utafrali/JewelryGo/pkg/database"
	"github.com/utafrali/JewelryGo/pkg/health"
	pkgkafka "github.com/utafrali/JewelryGo/pkg/kafka"
	"github.com/utafrali/JewelryGo/pkg/middleware"
	"github.com/utafrali/JewelryGo/pkg/tracing"
	"github.com/utafrali/JewelryGo/services/catalog/internal/config"
	"github.com/utafrali/JewelryGo/services/catalog/internal/event"
	handler "github.com/utafrali/JewelryGo/services/catalog/internal/handler/http"
	"github.com/utafrali/JewelryGo/services/catalog/internal/repository"
	"github.com/utafrali/JewelryGo/services/catalog/internal/repository/file"
	"github.com/utafrali/JewelryGo/services/catalog/internal/repository/postgres"
	"github.com/utafrali/JewelryGo/services/catalog/internal/service"
	"github.com/utafrali/JewelryGo/services/catalog/internal/watcher"
	"github.com/utafrali/JewelryGo/services/catalog/migrations"
)

// App wires together all dependencies and runs the catalog service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	rdb            *redis.Client
	producer       *pkgkafka.Producer
	dlq            *pkgkafka.DLQProducer
	consumer       *pkgkafka.Consumer
	watcher        *watcher.Watcher
	limiter        *middleware.RateLimiter
	httpServer     *http.Server
	shutdownTracer func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies
// and loading the catalog once.
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

	source, err := a.catalogSource(ctx, healthHandler)
	if err != nil {
		a.closeResources()
		return nil, err
	}
	purity := file.NewPurityFile(cfg.PurityPath)

	// Kafka is optional; without it reloads are driven by the watcher and the
	// admin endpoint only.
	var publisher service.EventPublisher
	if cfg.KafkaEnabled {
		a.producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		publisher = event.NewProducer(a.producer, logger)
		healthHandler.Register("kafka", a.producer.Ping)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}

	catalogService := service.NewCatalogService(source, purity, publisher, logger)
	healthHandler.Register("catalog", catalogService.Ready)

	if _, err := catalogService.Reload(ctx); err != nil {
		a.closeResources()
		return nil, fmt.Errorf("initial catalog load: %w", err)
	}

	reload := func(ctx context.Context) error {
		_, err := catalogService.Reload(ctx)
		return err
	}

	if cfg.KafkaEnabled {
		if err := a.initConsumer(ctx, event.ReloaderFunc(reload), healthHandler); err != nil {
			a.closeResources()
			return nil, err
		}
	}

	if cfg.WatchEnabled() {
		a.watcher = watcher.New([]string{cfg.CatalogPath, cfg.PurityPath}, cfg.WatchDebounce, reload, logger)
	}

	if cfg.RateLimitRPS > 0 {
		a.limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, 10*time.Minute, logger)
	}

	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.CORSAllowedOrigins
	router := handler.NewRouter(catalogService, healthHandler, logger, handler.RouterConfig{
		CacheMaxAge: cfg.CacheMaxAge,
		AdminToken:  cfg.AdminToken,
		CORS:        cors,
		RateLimiter: a.limiter,
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

func (a *App) catalogSource(ctx context.Context, hh *health.Handler) (repository.CatalogSource, error) {
	switch a.cfg.Source {
	case config.SourcePostgres:
		pool, err := database.NewPostgresPool(ctx, a.cfg.Postgres, a.logger)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		a.pool = pool

		if a.cfg.RunMigrations {
			if err := database.RunMigrations(ctx, pool, migrations.FS, a.logger); err != nil {
				return nil, fmt.Errorf("run migrations: %w", err)
			}
		}
		if err := prometheus.Register(database.NewPoolStatsCollector(pool, "catalog")); err != nil {
			a.logger.Warn("pool stats collector not registered", slog.String("error", err.Error()))
		}
		hh.Register("postgres", pool.Ping)

		tracer := database.NewQueryTracer(a.cfg.SlowQueryThreshold, a.logger)
		return postgres.NewSource(pool, tracer), nil

	default:
		src, err := file.NewSource(a.cfg.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("catalog file source: %w", err)
		}
		return src, nil
	}
}

func (a *App) initConsumer(ctx context.Context, reloader event.Reloader, hh *health.Handler) error {
	rdb, err := database.NewRedisClient(ctx, a.cfg.Redis, a.logger)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	a.rdb = rdb
	hh.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})

	store := pkgkafka.NewRedisIdempotencyStore(rdb, "catalog:events:", a.cfg.IdempotencyTTL)
	a.dlq = pkgkafka.NewDLQProducer(a.cfg.KafkaBrokers, a.logger)
	a.consumer = pkgkafka.NewConsumer(pkgkafka.ConsumerConfig{
		Brokers:  a.cfg.KafkaBrokers,
		GroupID:  a.cfg.KafkaGroupID,
		Topic:    event.TopicCatalogChanged,
		MinBytes: 1,
		MaxBytes: 10e6,
	}, pkgkafka.IdempotentHandler(store, event.NewChangeHandler(reloader, a.logger), a.logger), a.dlq, a.logger)
	return nil
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
	if a.consumer != nil {
		g.Go(func() error { return a.consumer.Start(gctx) })
	}
	if a.watcher != nil {
		g.Go(func() error { return a.watcher.Run(gctx) })
	}
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
	if a.consumer != nil {
		if err := a.consumer.Close(); err != nil {
			a.logger.Error("kafka consumer close error", slog.String("error", err.Error()))
		}
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
	if a.dlq != nil {
		if err := a.dlq.Close(); err != nil {
			a.logger.Error("kafka dlq close error", slog.String("error", err.Error()))
		}
	}
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}
	if a.pool != nil {
		a.pool.Close()
	}
}
