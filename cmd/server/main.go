// Package main is the entrypoint for the voiceforge API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"voiceforge/internal/api"
	"voiceforge/internal/api/handler"
	mw "voiceforge/internal/api/middleware"
	"voiceforge/internal/api/response"
	"voiceforge/internal/assets"
	"voiceforge/internal/cache"
	"voiceforge/internal/config"
	"voiceforge/internal/engine"
	"voiceforge/internal/engine/elevenlabs"
	"voiceforge/internal/jobs"
	"voiceforge/internal/speaker"
	"voiceforge/internal/synth"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// A missing .env file is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config — fail fast on invalid config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.Info("config loaded", "env", cfg.Server.Env, "output_dir", cfg.Paths.OutputDir)

	if err := cfg.EnsureDirs(); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Create cache — Redis when configured, in-process otherwise
	var c cache.Cache
	if cfg.Redis.URL != "" {
		redisCache, err := cache.NewRedisCache(cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("create redis cache: %w", err)
		}
		defer redisCache.Close()

		if err := redisCache.Ping(ctx); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		slog.Info("redis connected")
		c = redisCache
	} else {
		slog.Info("redis not configured, using in-memory cache")
		c = cache.NewMemoryCache()
	}

	// 3. Build the engine registry
	registry, err := engine.BuildRegistry(cfg)
	if err != nil {
		return fmt.Errorf("build engine registry: %w", err)
	}
	slog.Info("engines registered", "kinds", registry.Kinds())

	// 4. Assemble the synthesis pipeline
	assetMgr, err := assets.NewManager(cfg.Paths.OutputDir)
	if err != nil {
		return fmt.Errorf("create asset manager: %w", err)
	}
	resolver := speaker.NewResolver(cfg.Paths.SamplesDir, cfg.Paths.UploadsDir)
	jobStore := jobs.NewStore()
	svc := synth.NewService(registry, resolver, jobStore, assetMgr,
		cfg.Synthesis.JobTimeout, cfg.Synthesis.MaxConcurrentJobs)

	// 5. Hosted-engine directory (key validation, voices, quota)
	elClient := elevenlabs.NewHTTPClient(cfg.ElevenLabs.BaseURL, cfg.ElevenLabs.Timeout)
	directory := elevenlabs.NewDirectory(elClient, c)

	// 6. Build router with dependencies
	deps := api.Dependencies{
		RateLimit: mw.NewRateLimit(c, cfg.Server.RateLimitPerMin),

		HealthHandler:      healthHandler(c, cfg.Paths.OutputDir),
		SynthesizeHandler:  handler.NewSynthesizeHandler(svc),
		PollJobHandler:     handler.NewPollJobHandler(svc),
		ListAudioHandler:   handler.NewListAudioHandler(assetMgr),
		DeleteAudioHandler: handler.NewDeleteAudioHandler(assetMgr),
		ListSpeakers:       handler.NewListSpeakersHandler(resolver),
		ValidateKeyHandler: handler.NewValidateKeyHandler(directory),
		ListVoicesHandler:  handler.NewListVoicesHandler(directory),
		QuotaHandler:       handler.NewQuotaHandler(directory),

		DownloadAudioHandler: handler.NewDownloadAudioHandler(assetMgr),
	}

	router := api.NewRouter(deps)

	// 7. Start HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// healthHandler checks cache connectivity and that the output directory is
// still writable.
func healthHandler(c cache.Cache, outputDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			"cache":   "ok",
			"storage": "ok",
		}

		if err := c.Ping(r.Context()); err != nil {
			checks["cache"] = "degraded"
		}
		if !dirWritable(outputDir) {
			checks["storage"] = "degraded"
		}

		if checks["cache"] != "ok" || checks["storage"] != "ok" {
			response.Error(w, http.StatusServiceUnavailable, "One or more services degraded")
			return
		}

		response.JSON(w, map[string]any{
			"status":   "ok",
			"services": checks,
		})
	}
}

func dirWritable(dir string) bool {
	probe := filepath.Join(dir, ".healthcheck")
	f, err := os.Create(probe)
	if err != nil {
		return false
	}
	f.Close()
	os.Remove(probe)
	return true
}
