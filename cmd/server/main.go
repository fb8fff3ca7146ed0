// ============================================================================
// MAIN.GO - CONSOLE ENTRY POINT
// ============================================================================
// Startup flow:
// 1. Load configuration (.env, optional YAML file, environment)
// 2. Build the structured logger
// 3. Build the backend client (the only thing that talks to the shortener API)
// 4. Pick the flash store (memory, or Redis when enabled)
// 5. Wire handler and router, optionally with the form rate limiter
// 6. Serve until SIGINT/SIGTERM, then drain in-flight requests
// ============================================================================

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"url-shortener-console/internal/client"
	"url-shortener-console/internal/config"
	"url-shortener-console/internal/flash"
	httpHandler "url-shortener-console/internal/handler/http"
	"url-shortener-console/internal/ratelimit"
	"url-shortener-console/pkg/logger"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

func main() {
	// ========================================================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================================================
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// ========================================================================
	// STEP 2: INITIALIZE STRUCTURED LOGGER
	// ========================================================================
	appLogger := logger.New(cfg.App.LogLevel)
	appLogger.Info("Starting URL shortener console",
		"environment", cfg.App.Environment,
		"port", cfg.Server.Port,
		"backend", cfg.Backend.BaseURL,
	)

	// ========================================================================
	// STEP 3: BACKEND CLIENT
	// ========================================================================
	// No retries and no caching: every view fetch is a fresh request.
	apiClient := client.NewClient(
		cfg.Backend.BaseURL,
		&http.Client{Timeout: cfg.Backend.Timeout},
		appLogger.Logger,
	)

	// ========================================================================
	// STEP 4: FLASH STORE (+ REDIS)
	// ========================================================================
	var (
		redisClient *redis.Client
		flashes     flash.Store = flash.NewMemoryStore(cfg.Flash.TTL)
	)
	if cfg.Redis.Enabled {
		redisClient, err = flash.InitRedis(cfg.Redis.RedisAddr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			appLogger.Error("Failed to connect to Redis", "error", err)
			log.Fatalf("Redis connection failed: %v", err)
		}
		defer redisClient.Close()
		flashes = flash.NewRedisStore(redisClient, cfg.Flash.TTL)
		appLogger.Info("Redis connection established", "addr", cfg.Redis.RedisAddr())
	}

	// ========================================================================
	// STEP 5: HANDLER AND ROUTES
	// ========================================================================
	handler, err := httpHandler.NewHandler(
		apiClient,
		flashes,
		appLogger.Logger,
		httpHandler.Site{Brand: cfg.App.Brand, Origin: cfg.App.PublicOrigin},
		cfg.Flash.CookieName,
	)
	if err != nil {
		log.Fatalf("Failed to build handler: %v", err)
	}

	opts := httpHandler.RouterOptions{EnableMetrics: cfg.App.EnableMetrics}
	if cfg.RateLimit.Enabled {
		// config validation guarantees Redis is enabled here
		opts.Limiter = ratelimit.NewLimiter(redisClient, cfg.RateLimit.RequestsPerWindow, cfg.RateLimit.Window)
		appLogger.Info("Form rate limiting enabled",
			"requests", cfg.RateLimit.RequestsPerWindow,
			"window", cfg.RateLimit.Window.String(),
		)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpHandler.NewRouter(handler, appLogger.Logger, opts),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// ========================================================================
	// STEP 6: SERVE AND SHUT DOWN GRACEFULLY
	// ========================================================================
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		appLogger.Info("Server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error occurred: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		appLogger.Error("Server stopped with error", "error", err)
		return
	}

	appLogger.Info("Server exited gracefully")
}
