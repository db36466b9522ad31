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

	"github.com/utafrali/PrinterCatalog/internal/config"
	"github.com/utafrali/PrinterCatalog/internal/event"
	handler "github.com/utafrali/PrinterCatalog/internal/handler/http"
	"github.com/utafrali/PrinterCatalog/internal/repository/postgres"
	"github.com/utafrali/PrinterCatalog/internal/service"
	"github.com/utafrali/PrinterCatalog/migrations"
	"github.com/utafrali/PrinterCatalog/pkg/cache"
	"github.com/utafrali/PrinterCatalog/pkg/database"
	"github.com/utafrali/PrinterCatalog/pkg/health"
	pkgkafka "github.com/utafrali/PrinterCatalog/pkg/kafka"
	"github.com/utafrali/PrinterCatalog/pkg/tracing"
)

// App wires together all dependencies and runs the printer catalog service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	pool           *pgxpool.Pool
	redis          *redis.Client
	producer       *pkgkafka.Producer
	tracerShutdown tracing.ShutdownFunc
	httpServer     *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tracerShutdown, err := tracing.InitTracer(ctx, cfg.Tracing())
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Initialize PostgreSQL connection pool.
	pool, err := database.NewPostgresPool(ctx, cfg.Postgres(), logger)
	if err != nil {
		_ = tracerShutdown(context.Background())
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.Int("port", cfg.PostgresPort),
		slog.String("database", cfg.PostgresDB),
	)

	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		_ = tracerShutdown(context.Background())
		return nil, err
	}

	if err := database.RegisterPoolMetrics(prometheus.DefaultRegisterer, pool, config.ServiceName); err != nil {
		logger.Warn("pool metrics not registered", slog.String("error", err.Error()))
	}
	database.SetSlowQueryLogging(cfg.SlowQueryThreshold(), logger)

	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})

	// The cache is optional; without Redis every read goes to PostgreSQL.
	var (
		listCache   cache.Cache = cache.Nop{}
		redisClient *redis.Client
	)
	if cfg.CacheEnabled {
		redisClient, err = database.NewRedisClient(ctx, cfg.Redis())
		if err != nil {
			logger.Warn("redis unavailable, list cache disabled", slog.String("error", err.Error()))
		} else {
			listCache = cache.NewRedis(redisClient, "catalog:", cache.DefaultBreakerConfig("redis-cache"), logger)
			healthHandler.Register("redis", func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			})
			logger.Info("list cache enabled",
				slog.String("addr", cfg.Redis().Addr()),
				slog.Duration("ttl", cfg.CacheTTL()),
			)
		}
	}

	// Events are best-effort; without Kafka they are dropped.
	var (
		publisher event.Publisher = event.NopPublisher{}
		producer  *pkgkafka.Producer
	)
	if cfg.EventsEnabled {
		producer = pkgkafka.NewProducer(cfg.Kafka(), logger)
		publisher = producer
		healthHandler.Register("kafka", producer.Ping)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}

	// Build the dependency graph.
	eventProducer := event.NewProducer(publisher, config.ServiceName, logger)
	brandService := service.NewBrandService(
		postgres.NewBrandRepository(pool), listCache, cfg.CacheTTL(), eventProducer, logger,
	)
	printerService := service.NewPrinterService(
		postgres.NewPrinterRepository(pool), listCache, cfg.CacheTTL(), eventProducer, logger,
	)

	// HTTP router.
	router := handler.NewRouter(brandService, printerService, healthHandler, handler.RouterConfig{
		ServiceName:     config.ServiceName,
		AllowedOrigins:  cfg.CORSAllowedOrigins,
		PprofAllowCIDRs: cfg.PprofAllowedCIDRs,
		RateLimitRPS:    cfg.RateLimitRPS,
		RateLimitBurst:  cfg.RateLimitBurst,
	}, logger)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		redis:          redisClient,
		producer:       producer,
		tracerShutdown: tracerShutdown,
		httpServer:     httpServer,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		a.closeDependencies()
		return err
	}

	return a.Shutdown()
}

// Shutdown drains in-flight requests, then releases the tracer, Kafka
// producer, Redis client and database pool in that order.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errs []error
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	a.closeDependencies()

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}

func (a *App) closeDependencies() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.tracerShutdown(ctx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	a.pool.Close()
}
