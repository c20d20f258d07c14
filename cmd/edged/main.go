// cmd/edged/main.go
// Package main implements the entry point for the edge renderer.
// It initializes all components and starts the HTTP server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/videostream/videostream-edge-go/internal/cache"
	"github.com/videostream/videostream-edge-go/internal/config"
	"github.com/videostream/videostream-edge-go/internal/metrics"
	"github.com/videostream/videostream-edge-go/internal/render"
	"github.com/videostream/videostream-edge-go/internal/server"
	"github.com/videostream/videostream-edge-go/internal/store"
	"github.com/videostream/videostream-edge-go/internal/telemetry"
)

// main initializes all components, starts the HTTP server, and handles
// graceful shutdown.
func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	// Configure structured logging for the application
	logLevel := slog.LevelInfo
	if cfg.Env == "dev" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Initialize OpenTelemetry
	if _, err := telemetry.Init("videostream-edge"); err != nil {
		logger.Error("failed to initialize OpenTelemetry tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		telemetry.Shutdown(ctx, logger)
	}()

	// Select the dataset backend: S3 bucket when configured, otherwise
	// the HTTP static origin.
	var dataStore *store.Client
	if cfg.S3Bucket != "" {
		dataStore, err = store.NewS3(cfg.S3Endpoint, cfg.S3Region, cfg.S3Bucket, cfg.S3AccessKey, cfg.S3SecretKey)
		if err != nil {
			logger.Error("failed to initialize S3 dataset store", "error", err)
			os.Exit(1)
		}
		logger.Info("dataset store", "backend", "s3", "bucket", cfg.S3Bucket)
	} else {
		dataStore = store.NewHTTP(cfg.AssetsURL)
		logger.Info("dataset store", "backend", "http", "origin", cfg.AssetsURL)
	}
	dataStore.SetMetrics(metrics.NewMetrics())

	// Response cache: Redis when configured, otherwise no-op
	var respCache cache.Cache
	if cfg.RedisAddr != "" {
		respCache = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, logger)
	} else {
		respCache = cache.NewNoop()
	}
	defer respCache.Close()

	// Renderer with the immutable site identity
	renderer, err := render.New(render.Site{
		Name:        cfg.SiteName,
		URL:         cfg.SiteURL,
		Logo:        cfg.SiteLogo,
		Description: cfg.SiteDescription,
		Minified:    cfg.RenderMinified,
	})
	if err != nil {
		logger.Error("failed to initialize renderer", "error", err)
		os.Exit(1)
	}

	// Create HTTP mux with all handlers and middleware
	mux := server.NewMux(server.Options{
		Store:        dataStore,
		Cache:        respCache,
		Renderer:     renderer,
		CacheTTL:     cfg.CacheTTL,
		PageSize:     cfg.PageSize,
		SearchLimit:  cfg.SearchLimit,
		RelatedLimit: cfg.RelatedLimit,
		SitemapLimit: cfg.SitemapLimit,
	})

	// Create HTTP server with timeout configuration
	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// Start server in a separate goroutine
	go func() {
		logger.Info("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Handle graceful shutdown
	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited")
}
