// Package main is the entry point for the quotation service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jsamuelsen/quotation-service/internal/adapters/http"
	"github.com/jsamuelsen/quotation-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotation-service/internal/adapters/storage/mongostore"
	"github.com/jsamuelsen/quotation-service/internal/adapters/storage/redisstore"
	"github.com/jsamuelsen/quotation-service/internal/adapters/storage/sqlstore"
	"github.com/jsamuelsen/quotation-service/internal/app"
	"github.com/jsamuelsen/quotation-service/internal/platform/config"
	"github.com/jsamuelsen/quotation-service/internal/platform/logging"
	"github.com/jsamuelsen/quotation-service/internal/platform/telemetry"
	"github.com/jsamuelsen/quotation-service/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	slog.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("storage", cfg.Storage.Driver),
		slog.String("layouts", cfg.Layout.Backend),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		Endpoint:       cfg.Telemetry.Endpoint,
		ServiceName:    cfg.Telemetry.ServiceName,
		Version:        cfg.App.Version,
		Environment:    cfg.App.Environment,
		SamplingRate:   cfg.Telemetry.SamplingRate,
		Insecure:       cfg.Telemetry.Insecure,
		ExportInterval: cfg.Telemetry.Interval,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(context.Background()); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 5. Create health registry
	healthRegistry := ports.NewHealthRegistry()

	// 6. Open the database; tables and preferences always live here
	db, err := sqlstore.Open(ctx, sqlstore.Config{
		Driver:       cfg.Storage.Driver,
		DSN:          cfg.Storage.DSN,
		MaxOpenConns: cfg.Storage.MaxOpenConns,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("database close error", slog.Any("error", closeErr))
		}
	}()

	if err := healthRegistry.Register(db.Checker()); err != nil {
		return fmt.Errorf("registering database health check: %w", err)
	}

	// 7. Select the layout store
	layoutStore, closeLayouts, err := openLayoutStore(ctx, cfg, db, healthRegistry, logger)
	if err != nil {
		return err
	}
	defer closeLayouts()

	metrics, err := telemetry.NewDesignerMetrics()
	if err != nil {
		return fmt.Errorf("creating designer metrics: %w", err)
	}

	// 8. Create application services
	quotations := app.NewQuotationService(app.QuotationServiceConfig{Store: db, Logger: logger})
	layouts := app.NewLayoutService(app.LayoutServiceConfig{
		Store:   layoutStore,
		Metrics: metrics,
		Logger:  logger,
	})

	services := http.Services{
		Tables:      app.NewTableService(app.TableServiceConfig{Store: db, Logger: logger}),
		Quotations:  quotations,
		Preferences: app.NewPreferenceService(app.PreferenceServiceConfig{Store: db, Logger: logger}),
		Layouts:     layouts,
		Designer: app.NewDesignerService(app.DesignerServiceConfig{
			Quotations: quotations,
			Layouts:    layouts,
			Logger:     logger,
		}),
	}

	// 9. Create handlers
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime).
		WithBackends(cfg.Storage.Driver, cfg.Layout.Backend)
	healthHandler := handlers.NewHealthHandler(healthRegistry, buildInfo)

	// 10. Create HTTP server
	server := http.New(&cfg.Server, logger)

	// 11. Setup router with all middleware and routes
	http.SetupRouter(server.Engine(), http.NewDefaultRouterConfig(logger, cfg, healthHandler, services))

	// 12. Start server (non-blocking)
	serverErr := server.Start()

	// 13. Wait for shutdown signal
	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// openLayoutStore returns the configured layout store and a function that
// releases it. The sql backend shares db.
func openLayoutStore(
	ctx context.Context,
	cfg *config.Config,
	db *sqlstore.Store,
	registry *ports.DefaultHealthRegistry,
	logger *slog.Logger,
) (ports.LayoutStore, func(), error) {
	switch cfg.Layout.Backend {
	case config.LayoutBackendRedis:
		store := redisstore.New(&redis.Options{
			Addr:     cfg.Layout.Redis.Addr,
			Password: cfg.Layout.Redis.Password,
			DB:       cfg.Layout.Redis.DB,
		}, cfg.Layout.Redis.Prefix)

		if err := registry.Register(store.Checker()); err != nil {
			return nil, nil, fmt.Errorf("registering redis health check: %w", err)
		}

		go watchLayoutEvents(ctx, store, logger)

		return store, func() {
			if err := store.Close(); err != nil {
				logger.Error("redis close error", slog.Any("error", err))
			}
		}, nil

	case config.LayoutBackendMongo:
		store, err := mongostore.New(mongostore.Config{
			URI:        cfg.Layout.Mongo.URI,
			Database:   cfg.Layout.Mongo.Database,
			Collection: cfg.Layout.Mongo.Collection,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("opening layout store: %w", err)
		}

		if err := registry.Register(store.Checker()); err != nil {
			return nil, nil, fmt.Errorf("registering mongo health check: %w", err)
		}

		return store, func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := store.Close(closeCtx); err != nil {
				logger.Error("mongo close error", slog.Any("error", err))
			}
		}, nil

	default:
		return db, func() {}, nil
	}
}

// watchLayoutEvents logs layout changes announced by other instances that
// share the Redis store.
func watchLayoutEvents(ctx context.Context, store *redisstore.Store, logger *slog.Logger) {
	sub := store.Subscribe(ctx)
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Channel():
			if !ok {
				return
			}
			logger.Debug("layout changed", slog.String("key", msg.Payload))
		}
	}
}

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	// Listen for OS signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		// Server error during startup or runtime
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	// Stop accepting new requests, drain in-flight
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
