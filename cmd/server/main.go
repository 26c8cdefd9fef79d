package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/iotrelay/telemetry-api/internal/api"
	"github.com/iotrelay/telemetry-api/internal/api/metrics"
	"github.com/iotrelay/telemetry-api/internal/core/ports"
	"github.com/iotrelay/telemetry-api/internal/core/service"
	"github.com/iotrelay/telemetry-api/internal/infrastructure/config"
	"github.com/iotrelay/telemetry-api/internal/infrastructure/store/memory"
	"github.com/iotrelay/telemetry-api/pkg/logger"
)

const (
	sessionSweepInterval = 10 * time.Minute
	shutdownTimeout      = 10 * time.Second
)

// @title           Device Telemetry & Command Relay API
// @version         1.1.0
// @description     Telemetry ingestion and command relay for networked embedded devices.
// @BasePath        /api
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	// Absent .env is fine in containers; the environment is already set.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Stores: all state is process memory, lost on restart by design ---
	logStore := memory.NewLogStore(cfg.LogRetention)
	commandQueue := memory.NewCommandQueue(cfg.CommandQueueCap)
	sessionStore := memory.NewSessionStore(cfg.SessionTTL)
	userStore := memory.NewUserStore()

	// --- Services ---
	telemetryService := service.NewTelemetryService(logStore, log)
	commandService := service.NewCommandService(commandQueue, log)
	authService := service.NewAuthService(userStore, sessionStore, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := authService.SeedAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("seed admin user")
	}
	if cfg.AdminPassword == "admin" {
		log.Warn().Msg("running with the default admin password, set ADMIN_PASSWORD")
	}

	go sweepSessions(ctx, sessionStore, log)

	e := api.NewRouter(cfg, log, api.Services{
		Telemetry: telemetryService,
		Commands:  commandService,
		Auth:      authService,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// sweepSessions periodically removes expired sessions nobody touches again.
// Lazy deletion on access remains the primary cleanup path; this keeps
// abandoned sessions from accumulating.
func sweepSessions(ctx context.Context, sessions ports.SessionStore, log zerolog.Logger) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := sessions.Sweep(ctx); removed > 0 {
				metrics.SessionsExpiredTotal.Add(float64(removed))
				log.Debug().Int("removed", removed).Msg("expired sessions swept")
			}
		}
	}
}
