package main

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/gun110939/demo-flow-send-pwa/internal/adapters/directory"
	"github.com/gun110939/demo-flow-send-pwa/internal/adapters/http/api"
	"github.com/gun110939/demo-flow-send-pwa/internal/adapters/http/swagger"
	"github.com/gun110939/demo-flow-send-pwa/internal/app"
	"github.com/gun110939/demo-flow-send-pwa/internal/config"
	"github.com/gun110939/demo-flow-send-pwa/internal/domain/routing"
	"github.com/gun110939/demo-flow-send-pwa/pkg/logger"
	"github.com/gun110939/demo-flow-send-pwa/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout            = 10 * time.Second
	writeTimeout           = 10 * time.Second
	idleTimeout            = 60 * time.Second
	readHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 30 * time.Second
	serviceMetricsInterval = 5 * time.Second
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Load the employee directory export.
	dir, err := directory.Load(ctx, cfg.EmployeeDataPath)
	if err != nil {
		log.Error(ctx, "failed to load employee directory", logger.String("path", cfg.EmployeeDataPath), logger.Error(err))
		return
	}
	log.Info(ctx, "employee directory loaded", logger.Int("employees", dir.Count()))

	opts := []app.Option{
		app.WithLogger(log),
		app.WithRoutingEngine(routing.NewEngine(
			routing.WithSeniorLevel(cfg.SeniorLevel),
			routing.WithSeniorReviewLimit(cfg.SeniorReviewLimit),
		)),
		app.WithSuggestionBand(cfg.SuggestionMinLevel, cfg.SuggestionMaxLevel),
		app.WithAuditWorkers(cfg.AuditWorkers),
		app.WithAuditQueueCapacity(cfg.AuditQueueCapacity),
		app.WithDemoSeed(cfg.DemoSeed),
	}
	if cfg.RandomSeed != 0 {
		opts = append(opts, app.WithRandom(rand.New(rand.NewSource(cfg.RandomSeed)))) //nolint:gosec // demo seeding
	}

	svc := app.New(dir, opts...)
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer svc.Stop()

	// Start service metrics updater
	go startServiceMetricsUpdater(ctx, svc)

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Register API docs under /api-docs
	swagger.Register(ctx, mux)

	// Register business API routes with the service dependency.
	api.NewServer(svc).Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// startServiceMetricsUpdater starts a background goroutine that refreshes
// service-level gauges from the current store state.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateServiceMetrics(svc)
		}
	}
}

// updateServiceMetrics refreshes gauges the request path does not touch.
func updateServiceMetrics(svc *app.Service) {
	stats := svc.GetStats()

	if pending, ok := stats["pending"].(int); ok {
		metrics.UpdatePendingItems(pending)
	}
	if total, ok := stats["totalWorkResults"].(int); ok {
		metrics.UpdateTotalWorkItems(total)
	}
	if employees, ok := stats["totalEmployees"].(int); ok {
		metrics.UpdateTotalEmployees(employees)
	}
	if evaluations, ok := stats["totalEvaluations"].(int); ok {
		metrics.UpdateLedgerSize(evaluations)
	}
}
