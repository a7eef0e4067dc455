package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/flightdesk/internal/adapters/http/api"
	"github.com/okian/flightdesk/internal/adapters/http/swagger"
	"github.com/okian/flightdesk/internal/adapters/repository"
	"github.com/okian/flightdesk/internal/adapters/source"
	app "github.com/okian/flightdesk/internal/app"
	"github.com/okian/flightdesk/internal/config"
	"github.com/okian/flightdesk/pkg/logger"
	"github.com/okian/flightdesk/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics
	// We collect our own custom system metrics instead
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger format depends on config, so it is not available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.InitWith(os.Stdout, cfg.LogFormat); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	loggerInstance := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	store, err := openStore(cfg)
	if err != nil {
		loggerInstance.Fatal(ctx, "failed to open snapshot store", logger.String("store", cfg.Store), logger.Error(err))
	}

	svc := app.New(
		app.WithLogger(loggerInstance),
		app.WithStore(store),
		app.WithHistorySize(cfg.HistorySize),
		app.WithWeights(cfg.Weights()),
		app.WithMaintenanceLookahead(cfg.MaintenanceLookaheadDays),
		app.WithDefaultTopN(cfg.DefaultTopN),
	)
	if err := svc.Start(ctx); err != nil {
		loggerInstance.Fatal(ctx, "failed to start service", logger.Error(err))
	}
	defer svc.Stop()

	if err := seed(ctx, svc, cfg.SeedDir); err != nil {
		loggerInstance.Error(ctx, "failed to seed snapshot", logger.String("seed_dir", cfg.SeedDir), logger.Error(err))
	}

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	// HTTP mux and routes.
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	apiServer := api.NewServer(svc, svc,
		api.WithMaxTopN(cfg.MaxTopN),
		api.WithLogger(loggerInstance.Named("http")),
	)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			loggerInstance.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// openStore builds the configured revision store.
func openStore(cfg *config.Config) (repository.Store, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		return repository.NewSQLiteStore(cfg.SQLitePath, repository.WithHistorySize(cfg.HistorySize))
	case config.StoreMemory, "":
		return repository.NewMemoryStore(repository.WithHistorySize(cfg.HistorySize)), nil
	default:
		return nil, fmt.Errorf("%w %q", config.ErrUnknownStore, cfg.Store)
	}
}

// seed loads the CSV exports in dir as the first revision. An empty dir is a no-op.
func seed(ctx context.Context, svc *app.Service, dir string) error {
	if dir == "" {
		return nil
	}
	raw, err := source.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read seed dir: %w", err)
	}
	info, err := svc.LoadSnapshot(ctx, raw)
	if err != nil {
		return fmt.Errorf("load seed snapshot: %w", err)
	}
	logger.Get().Info(ctx, "seeded snapshot",
		logger.String("revision", info.Revision),
		logger.Int("pilots", info.Counts.Pilots),
		logger.Int("drones", info.Counts.Drones),
		logger.Int("missions", info.Counts.Missions),
		logger.Int("warnings", len(info.Warnings)),
	)
	return nil
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		// Average GC pause since start
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
