package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/MoaeadAlhosami/STREETWEER/internal/cart"
	"github.com/MoaeadAlhosami/STREETWEER/internal/catalog"
	"github.com/MoaeadAlhosami/STREETWEER/internal/catalog/remote"
	"github.com/MoaeadAlhosami/STREETWEER/internal/config"
	"github.com/MoaeadAlhosami/STREETWEER/internal/event"
	handler "github.com/MoaeadAlhosami/STREETWEER/internal/handler/http"
	"github.com/MoaeadAlhosami/STREETWEER/internal/kvstore"
	pgkv "github.com/MoaeadAlhosami/STREETWEER/internal/kvstore/postgres"
	rediskv "github.com/MoaeadAlhosami/STREETWEER/internal/kvstore/redis"
	"github.com/MoaeadAlhosami/STREETWEER/internal/service"
	"github.com/MoaeadAlhosami/STREETWEER/pkg/database"
	"github.com/MoaeadAlhosami/STREETWEER/pkg/health"
	"github.com/MoaeadAlhosami/STREETWEER/pkg/httpclient"
	pkgkafka "github.com/MoaeadAlhosami/STREETWEER/pkg/kafka"
	"github.com/MoaeadAlhosami/STREETWEER/pkg/middleware"
	"github.com/MoaeadAlhosami/STREETWEER/pkg/tracing"
)

const serviceName = "storefront"

// App wires together all dependencies and runs the storefront service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	rdb            *redis.Client
	pool           *pgxpool.Pool
	producer       *pkgkafka.Producer
	carts          *cart.Registry
	tracerShutdown func(context.Context) error
	httpServer     *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a := &App{cfg: cfg, logger: logger}
	healthHandler := health.NewHandler()

	var (
		rdb redis.UniversalClient
		db  database.DBTX
	)

	// Tracing. When disabled only the propagators are installed.
	tcfg := tracing.DefaultConfig(serviceName)
	tcfg.Environment = cfg.Environment
	tcfg.Enabled = cfg.OTELEnabled
	tcfg.OTLPEndpoint = cfg.OTELEndpoint
	tcfg.SampleRate = cfg.OTELSampleRate
	shutdown, err := tracing.InitTracer(ctx, tcfg)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	a.tracerShutdown = shutdown
	database.SetSlowQueryLogging(100*time.Millisecond, logger)

	// Redis backs the cart slots and the catalog cache.
	if cfg.NeedsRedis() {
		rcfg := database.DefaultRedisConfig()
		rcfg.Host = cfg.RedisHost
		rcfg.Port = cfg.RedisPort
		rcfg.Password = cfg.RedisPassword
		rcfg.DB = cfg.RedisDB
		client, err := database.NewRedisClient(ctx, rcfg)
		if err != nil {
			a.closeAll()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.rdb = client
		rdb = client
		logger.Info("connected to Redis",
			slog.String("addr", rcfg.Addr()),
			slog.Int("db", rcfg.DB),
		)
		healthHandler.RegisterCritical("redis", func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
	}

	if cfg.Backend() == kvstore.BackendPostgres {
		pcfg := database.DefaultPostgresConfig()
		pcfg.DSN = cfg.PostgresDSN
		pcfg.MaxConns = cfg.PostgresMaxConns
		pool, err := database.NewPostgresPool(ctx, &pcfg, logger)
		if err != nil {
			a.closeAll()
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		a.pool = pool
		db = pool
		if err := pgkv.Migrate(ctx, pool, logger); err != nil {
			a.closeAll()
			return nil, err
		}
		if err := database.RegisterPoolMetrics(prometheus.DefaultRegisterer, pool, "kv"); err != nil {
			logger.Warn("pool metrics not registered", slog.String("error", err.Error()))
		}
		healthHandler.RegisterCritical("postgres", pool.Ping)
	}

	kv, err := newKVStore(cfg.Backend(), rdb, db, cfg.CartTTL)
	if err != nil {
		a.closeAll()
		return nil, err
	}
	logger.Info("cart persistence configured", slog.String("backend", string(cfg.Backend())))

	// Events. Without Kafka the cart still works; events are dropped.
	var publisher service.EventPublisher = event.Noop{}
	if cfg.KafkaEnabled {
		a.producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		publisher = event.NewProducer(a.producer, logger)
		healthHandler.RegisterNonCritical("kafka", a.producer.Ping)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}

	source := newCatalogSource(cfg, rdb, logger)
	if cached, ok := source.(*catalog.CachedSource); ok {
		// Drop entries written by a previous deploy.
		if err := cached.Invalidate(ctx); err != nil {
			logger.Warn("catalog cache not invalidated", slog.String("error", err.Error()))
		}
	}

	// Build the dependency graph.
	carts := cart.NewRegistry(kv, cfg.SessionIdleTTL, logger)
	a.carts = carts
	catalogService := catalog.NewService(source, logger)
	cartService := service.NewCartService(carts, source, publisher, logger)
	checkoutService := service.NewCheckoutService(carts, publisher, logger)
	contactService := service.NewContactService(publisher, logger)

	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.CORSOrigins
	cors.Environment = cfg.Environment

	router := handler.NewRouter(handler.RouterDeps{
		Catalog:        catalogService,
		Cart:           cartService,
		Checkout:       checkoutService,
		Contact:        contactService,
		Health:         healthHandler,
		Logger:         logger,
		CORS:           cors,
		CatalogMaxAge:  cfg.CatalogMaxAge,
		RequestTimeout: cfg.RequestTimeout,
	})

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return a, nil
}

// newKVStore selects the cart slot backend. rdb and pool must be set for the
// redis and postgres backends respectively.
func newKVStore(backend kvstore.Backend, rdb redis.UniversalClient, pool database.DBTX, ttl time.Duration) (kvstore.Store, error) {
	switch backend {
	case kvstore.BackendMemory:
		return kvstore.NewMemory(), nil
	case kvstore.BackendNull:
		return kvstore.Null{}, nil
	case kvstore.BackendRedis:
		if rdb == nil {
			return nil, fmt.Errorf("kv backend redis: no redis client")
		}
		return rediskv.New(rdb, rediskv.DefaultPrefix, ttl), nil
	case kvstore.BackendPostgres:
		if pool == nil {
			return nil, fmt.Errorf("kv backend postgres: no connection pool")
		}
		return pgkv.New(pool), nil
	default:
		return nil, fmt.Errorf("unknown kv backend %q", backend)
	}
}

// newCatalogSource builds the product source chain: the product API when
// configured, degrading to the bundled catalog, optionally behind Redis.
func newCatalogSource(cfg *config.Config, rdb redis.UniversalClient, logger *slog.Logger) catalog.Source {
	var source catalog.Source = catalog.NewFallbackSource()

	if cfg.ProductAPIURL != "" {
		hcfg := httpclient.DefaultConfig()
		hcfg.Timeout = cfg.ProductAPITimeout
		client := httpclient.NewCircuitBreakerClient(
			httpclient.New(hcfg),
			httpclient.DefaultCircuitBreakerConfig("product-api"),
			logger,
		)
		source = remote.New(remote.Config{
			BaseURL: cfg.ProductAPIURL,
			Token:   cfg.ProductAPIToken,
		}, client, source, logger)
		logger.Info("product API configured", slog.String("url", cfg.ProductAPIURL))
	} else {
		logger.Info("no product API configured, serving bundled catalog")
	}

	if cfg.CatalogCacheEnabled() && rdb != nil {
		source = catalog.NewCachedSource(source, rdb, cfg.CatalogCacheTTL, logger)
	}
	return source
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go a.carts.RunSweeper(ctx, a.carts.TTL()/2)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		a.closeAll()
		return err
	}

	return a.Shutdown()
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

	a.closeAll()

	a.logger.Info("application shutdown complete")
	return nil
}

func (a *App) closeAll() {
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
	if a.pool != nil {
		a.pool.Close()
	}
	if a.tracerShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.tracerShutdown(ctx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
		}
	}
}
