package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medialit/database"
	"medialit/internal/cache"
	"medialit/internal/citation"
	"medialit/internal/config"
	"medialit/internal/gemini"
	"medialit/internal/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	if err := run(cfg); err != nil {
		logger.L().Error("server_exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	lg := logger.InitFromConfig(cfg, "api-server")
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	// Redis is optional; without it prompt usage is not tracked and AI calls are not throttled.
	var redisCache *cache.RedisCache
	if cfg.RedisEnabled() {
		redisCache, err = cache.NewRedisCache(ctx, cfg)
		if err != nil {
			lg.Warn("redis_unavailable", "error", err)
			redisCache = nil
		} else {
			defer redisCache.Close()
			lg.Info("redis_connected")
		}
	}

	if !cfg.GeminiConfigured() {
		lg.Warn("gemini_not_configured", "hint", "set GEMINI_API_KEY to enable chat, thesis and bias analysis")
	}
	generator := gemini.NewClient(gemini.Config{
		Endpoint: cfg.GeminiServer,
		APIKey:   cfg.GeminiAPIKey,
		Timeout:  cfg.GeminiTimeout,
		RPS:      cfg.GeminiRPS,
	}, lg.With("component", "gemini"))

	router := newRouter(cfg, deps{
		db:        db,
		cache:     redisCache,
		generator: generator,
		fetcher:   citation.NewFetcher(10 * time.Second),
		now:       time.Now,
		log:       lg,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTPHost, cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info("server_started", "addr", srv.Addr, "env", cfg.GoEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	lg.Info("server_stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
