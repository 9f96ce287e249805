package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/therealutkarshpriyadarshi/transcript/internal/cache"
	"github.com/therealutkarshpriyadarshi/transcript/internal/config"
	"github.com/therealutkarshpriyadarshi/transcript/internal/logging"
	"github.com/therealutkarshpriyadarshi/transcript/internal/metrics"
	"github.com/therealutkarshpriyadarshi/transcript/internal/middleware"
	"github.com/therealutkarshpriyadarshi/transcript/internal/tracing"
	"github.com/therealutkarshpriyadarshi/transcript/internal/youtube"
)

func main() {
	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logging
	logger, err := logging.NewLogger(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	// Initialize tracing
	if cfg.Tracing.Enabled {
		_, closer, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.JaegerEndpoint)
		if err != nil {
			logger.Fatalf("failed to initialize tracing: %v", err)
		}
		defer closer.Close()
		logger.Info("tracing initialized")
	}

	// Initialize Redis for shared rate limiting and stats
	var stats *cache.Cache
	if cfg.Redis.Enabled {
		stats, err = cache.NewCache(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatalf("failed to connect to Redis: %v", err)
		}
		defer stats.Close()
		logger.Info("Redis connected")
	}

	// Create the transcript client
	client := youtube.New(youtube.Options{
		Timeout:   cfg.YouTube.HTTPTimeout,
		UserAgent: cfg.YouTube.UserAgent,
		Languages: cfg.YouTube.DefaultLanguages,
	})

	api := &API{
		fetcher: client,
		stats:   stats,
	}

	// Setup router
	router := setupRouter(api, cfg)

	// Start metrics server
	metricsServer := metrics.NewServer(cfg.Server.MetricsPort)
	go func() {
		if err := metricsServer.Start(); err != nil {
			logger.ErrorWithErr("metrics server stopped", err)
		}
	}()

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	if err := metricsServer.Shutdown(ctx); err != nil {
		logger.ErrorWithErr("metrics server shutdown failed", err)
	}

	logger.Info("server stopped")
}

func setupRouter(api *API, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())

	// Health check
	router.GET("/health", api.healthCheck)

	// API routes
	v1 := router.Group("/api/v1")

	// Per-IP rate limiting: shared counters when Redis is available,
	// in-process token buckets otherwise
	if api.stats != nil {
		v1.Use(middleware.SharedRateLimit(api.stats, cfg.Redis.RateLimitMax, cfg.Redis.RateLimitWindow))
	} else {
		v1.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)))
	}

	v1.GET("/transcript", api.getTranscript)

	return router
}
