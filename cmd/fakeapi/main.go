package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/zatekoja/dentaldesk/internal/adapters/cache"
	"github.com/zatekoja/dentaldesk/internal/adapters/memory"
	"github.com/zatekoja/dentaldesk/internal/api/middleware"
	"github.com/zatekoja/dentaldesk/internal/api/routes"
	"github.com/zatekoja/dentaldesk/internal/domain/providers"
	redisclient "github.com/zatekoja/dentaldesk/internal/infrastructure/clients/redis"
	"github.com/zatekoja/dentaldesk/internal/infrastructure/observability"
	"github.com/zatekoja/dentaldesk/pkg/config"
)

func main() {
	printToken := flag.String("print-token", "", "print a signed access token for `subject` and exit")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName+"-fakeapi", cfg.Log.Env, cfg.Log.Level)

	if *printToken != "" {
		token, expiresAt, err := middleware.IssueToken(cfg.FakeAPI.JWTSecret, *printToken, cfg.FakeAPI.TokenTTL, time.Now())
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to issue token; set FAKE_API_JWT_SECRET")
		}
		log.Info().Time("expires_at", expiresAt).Msg("Token issued")
		os.Stdout.WriteString(token + "\n")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName+"-fakeapi", cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
		}
	}

	if cfg.Log.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	store := memory.NewStore(nil)
	if cfg.FakeAPI.Seed {
		store.Seed()
	}

	// Rate limit counters are shared through Redis when asked to, so several
	// fake API instances behind one address limit together
	var counters providers.CacheProvider
	if cfg.FakeAPI.RateLimit > 0 && cfg.FakeAPI.RateLimitRedis {
		rdb, err := redisclient.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis for rate limiting")
		}
		defer rdb.Close()
		counters = cache.NewRedisAdapter(rdb, "dentaldesk-fakeapi:")
	}

	server := &http.Server{
		Addr:         cfg.FakeAPI.Addr,
		Handler:      routes.NewRouter(store, &cfg.FakeAPI, counters),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", cfg.FakeAPI.Addr).
			Bool("auth", cfg.FakeAPI.JWTSecret != "").
			Float64("fault_rate", cfg.FakeAPI.FaultRate).
			Dur("latency", cfg.FakeAPI.Latency).
			Int("rate_limit", cfg.FakeAPI.RateLimit).
			Msg("Fake dental API starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
