package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kadgis/fieldstore/internal/config"
	"github.com/kadgis/fieldstore/internal/controller"
	"github.com/kadgis/fieldstore/internal/database"
	"github.com/kadgis/fieldstore/internal/handlers"
	"github.com/kadgis/fieldstore/internal/logger"
	"github.com/kadgis/fieldstore/internal/metrics"
	"github.com/kadgis/fieldstore/internal/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	shutdownTimeout = 30 * time.Second
	setupTimeout    = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Server.Env, cfg.Server.LogLevel)
	log.Info("Starting KADGIS field store", map[string]interface{}{
		"version":     handlers.APIVersion,
		"environment": cfg.Server.Env,
		"addr":        cfg.Server.Addr(),
	})

	ctx := context.Background()
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to open database", err, map[string]interface{}{
			"path": cfg.Database.Path,
		})
	}
	defer db.Close()

	log.Info("Database opened", map[string]interface{}{
		"path":           cfg.Database.Path,
		"journal_mode":   cfg.Database.JournalMode,
		"max_open_conns": cfg.Database.MaxOpenConns,
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db.DB, "records"),
	)
	storeMetrics, err := metrics.NewStoreMetrics(registry)
	if err != nil {
		log.Fatal("Failed to register store metrics", err, nil)
	}
	httpMetrics, err := metrics.NewHTTPMetrics(registry)
	if err != nil {
		log.Fatal("Failed to register HTTP metrics", err, nil)
	}

	provider := controller.NewProvider(db, log)
	resolver := services.NewResolver(provider, storeMetrics, cfg.Dashboard.LandUses, log)

	// Build the schema up front; a failure here is retried on the first request.
	setupCtx, cancel := context.WithTimeout(ctx, setupTimeout)
	if _, err := resolver.Services(setupCtx); err != nil {
		log.Error("Record store setup failed, will retry on demand", err, map[string]interface{}{
			"path": cfg.Database.Path,
		})
	}
	cancel()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := newRouter(routerDeps{
		cfg:         cfg,
		log:         log,
		db:          db,
		provider:    provider,
		resolver:    resolver,
		registry:    registry,
		httpMetrics: httpMetrics,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server listening", map[string]interface{}{
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	// Wait for interrupt signal (SIGINT or SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
}
