// cmd/worker-manager/main.go
package main

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"niche-workers/internal/cache"
	"niche-workers/internal/catalog"
	"niche-workers/internal/common/camunda"
	"niche-workers/internal/common/config"
	"niche-workers/internal/common/database"
	"niche-workers/internal/common/errors"
	"niche-workers/internal/common/logger"
	"niche-workers/internal/common/metrics"
	"niche-workers/internal/common/observability"
	"niche-workers/pkg/registry"

	rmn "niche-workers/internal/workers/niche/rank-micro-niches"
	smn "niche-workers/internal/workers/niche/score-micro-niche"
)

// connectRetry is used for every backing service at startup.
var connectRetry = camunda.RetryConfig{
	MaxRetries: 10,
	BaseDelay:  2 * time.Second,
	MaxDelay:   30 * time.Second,
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog, err := logger.New(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer zapLog.Sync()

	log := logger.Wrap(zapLog)
	zapLog.Info("Starting worker manager",
		zap.String("app", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
		zap.String("catalogSource", cfg.Catalog.Source),
	)

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Warn("OpenTelemetry exporter unavailable, continuing without it", zap.Error(err))
		obs = observability.Noop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	health := database.NewHealth()

	// --- Zeebe ---
	zeebe, err := camunda.NewClientWithConfig(ctx, &camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: true,
		ConnectionTimeout:      10 * time.Second,
		RequestTimeout:         config.GetDuration(cfg.Camunda.RequestTimeout),
		RetryConfig:            &connectRetry,
	})
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	defer zeebe.Close()
	health.Register("zeebe", database.PingFunc(zeebe.HealthCheck))
	zapLog.Info("Zeebe client connected", zap.String("gateway", cfg.Camunda.BrokerAddress))

	// --- Catalog source ---
	source, closeSource, err := openCatalogSource(ctx, cfg, log, health)
	if err != nil {
		zapLog.Fatal("catalog source init failed", zap.Error(err))
	}
	defer closeSource()

	if err := warmCatalog(ctx, source, log); err != nil {
		zapLog.Fatal("catalog failed to load", zap.Error(err))
	}

	// --- Analysis cache ---
	analysisCache, closeCache := openAnalysisCache(ctx, cfg, log, health)
	defer closeCache()

	// --- Workers ---
	manager := camunda.NewManager(log)

	rankHandler, err := rmn.NewHandler(rmn.HandlerOptions{
		AppConfig: cfg,
		Camunda:   zeebe,
		Logger:    log,
		Dependencies: rmn.ServiceDependencies{
			Catalog:       source,
			Cache:         analysisCache,
			Observability: obs,
		},
	})
	if err != nil {
		zapLog.Fatal("failed to create rank-micro-niches handler", zap.Error(err))
	}

	scoreHandler, err := smn.NewHandler(smn.HandlerOptions{
		AppConfig: cfg,
		Camunda:   zeebe,
		Logger:    log,
		Dependencies: smn.ServiceDependencies{
			Catalog:       source,
			Observability: obs,
		},
	})
	if err != nil {
		zapLog.Fatal("failed to create score-micro-niche handler", zap.Error(err))
	}

	for _, w := range []camunda.Worker{rankHandler, scoreHandler} {
		if err := manager.Add(w); err != nil {
			zapLog.Fatal("worker registration failed", zap.Error(err))
		}
	}
	if err := manager.Start(); err != nil {
		zapLog.Fatal("workers failed to start", zap.Error(err))
	}
	checkRegistry(cfg.App.RegistryPath, manager.TaskTypes(), log)

	// --- Health & Metrics Server ---
	server := &http.Server{
		Addr:              cfg.Metrics.Address,
		Handler:           newServeMux(health, manager),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Metrics.Address))
		if err := server.ListenAndServe(); err != nil && !stdErrors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	<-ctx.Done()
	zapLog.Info("Shutdown signal received, stopping workers")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	manager.Stop()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error flushing telemetry", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

// openCatalogSource builds the configured catalog source. The returned
// closer releases any connection it opened.
func openCatalogSource(ctx context.Context, cfg *config.Config, log logger.Logger, health *database.Health) (catalog.Source, func(), error) {
	switch cfg.Catalog.Source {
	case config.CatalogSourcePostgres:
		var db *sql.DB
		err := camunda.Retry(ctx, connectRetry, nil, func(ctx context.Context) error {
			var err error
			db, err = database.NewPostgres(ctx, cfg.Database.Postgres)
			if err != nil {
				log.Warn("PostgreSQL connection failed, retrying", map[string]interface{}{"error": err.Error()})
			}
			return err
		})
		if err != nil {
			return nil, nil, fmt.Errorf("postgres: %w", err)
		}
		health.Register("postgres", database.PingFunc(db.PingContext))
		log.Info("PostgreSQL connected", map[string]interface{}{"table": cfg.Catalog.Table})
		return catalog.NewPostgresSource(db, cfg.Catalog.Table, log), func() { db.Close() }, nil

	default:
		return catalog.NewFileSource(cfg.Catalog.Path, log), func() {}, nil
	}
}

// warmCatalog loads the catalog once so a broken catalog stops the process
// before any job is activated. Only retryable load failures are retried.
func warmCatalog(ctx context.Context, source catalog.Source, log logger.Logger) error {
	retryable := func(err error) bool {
		var stdErr *errors.StandardError
		return stdErrors.As(err, &stdErr) && stdErr.Retryable
	}

	return camunda.Retry(ctx, connectRetry, retryable, func(ctx context.Context) error {
		c, err := source.Load(ctx)
		if err != nil {
			return err
		}
		metrics.CatalogSize.WithLabelValues(source.Name()).Set(float64(c.Len()))
		log.Info("Catalog loaded", map[string]interface{}{
			"source":  source.Name(),
			"version": c.Version,
			"niches":  c.Len(),
		})
		return nil
	})
}

// openAnalysisCache connects to Redis when caching is enabled. An
// unreachable Redis disables caching rather than blocking startup.
func openAnalysisCache(ctx context.Context, cfg *config.Config, log logger.Logger, health *database.Health) (*cache.AnalysisCache, func()) {
	if !cfg.CacheEnabled() {
		log.Info("Analysis cache disabled", nil)
		return nil, func() {}
	}

	retry := connectRetry
	retry.MaxRetries = 3
	var analysisCache *cache.AnalysisCache
	var closer func()
	err := camunda.Retry(ctx, retry, nil, func(ctx context.Context) error {
		rdb, err := database.NewRedis(ctx, cfg.Database.Redis)
		if err != nil {
			return err
		}
		analysisCache = cache.NewAnalysisCache(rdb, config.GetDuration(cfg.Scoring.CacheTTL), log)
		closer = func() { rdb.Close() }
		health.Register("redis", database.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}))
		return nil
	})
	if err != nil {
		log.Warn("Redis unavailable, running without analysis cache", map[string]interface{}{
			"address": cfg.Database.Redis.Address,
			"error":   err.Error(),
		})
		return nil, func() {}
	}

	log.Info("Analysis cache enabled", map[string]interface{}{
		"address": cfg.Database.Redis.Address,
		"ttl":     config.GetDuration(cfg.Scoring.CacheTTL).String(),
	})
	return analysisCache, closer
}

// checkRegistry warns when the activity registry and the running workers
// disagree. It never stops the process.
func checkRegistry(path string, taskTypes []string, log logger.Logger) {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		log.Warn("Activity registry not loaded", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return
	}
	if err := reg.Validate(errors.BPMNErrorCodes()); err != nil {
		log.Warn("Activity registry is inconsistent", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
	}
	if missing := reg.Missing(taskTypes); len(missing) > 0 {
		log.Warn("Workers missing from activity registry", map[string]interface{}{
			"path":    path,
			"missing": missing,
		})
	}
}
