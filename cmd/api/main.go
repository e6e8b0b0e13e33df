package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/startupquest/quest-api/internal/config"
	"github.com/startupquest/quest-api/internal/domain/badge"
	"github.com/startupquest/quest-api/internal/middleware"
	"github.com/startupquest/quest-api/internal/pkg/database"
	"github.com/startupquest/quest-api/internal/pkg/jwt"
	"github.com/startupquest/quest-api/internal/pkg/logger"
	pkgresponse "github.com/startupquest/quest-api/internal/pkg/response"
)

const version = "1.0.0"

func main() {
	cfg := config.Load()

	if err := logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
		LogFile:     cfg.LogFile,
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting Quest badge API")

	db, err := database.NewPostgres(cfg.DatabaseURL, cfg.DBConnectRetries)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	if cfg.MigrateOnStart {
		if err := database.Migrate(cfg.DatabaseURL); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply migrations")
		}
	}

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL)

	// ---------- Badge ledger ----------
	badgeRepo := badge.NewRepository(db)
	badgeEvents := badge.NewPublisher(redisClient, cfg.BadgeEventsChannel)
	badgeService := badge.NewService(badgeRepo, badgeEvents)
	badgeHandler := badge.NewHandler(badgeService)

	staleMonitor, err := badge.NewStaleMonitor(badgeRepo, cfg.StalePendingAfter, cfg.StaleCheckInterval)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create stale award monitor")
	}
	if err := staleMonitor.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start stale award monitor")
	}

	r := newRouter(cfg, jwtService, badgeHandler, healthCheck(db, redisClient))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := staleMonitor.Stop(); err != nil {
		log.Error().Err(err).Msg("Stale award monitor did not stop cleanly")
	}

	log.Info().Msg("Server exited properly")
}

func newRouter(cfg *config.Config, jwtService *jwt.Service, badgeHandler *badge.Handler, health http.HandlerFunc) chi.Router {
	authMiddleware := middleware.Auth(jwtService)

	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(chimw.Compress(5))

	r.Get("/health", health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			pkgresponse.OK(w, map[string]string{"message": "pong"})
		})

		r.Mount("/badges", badgeHandler.Routes(authMiddleware))
	})

	return r
}

// healthCheck reports ok only when PostgreSQL answers; Redis is checked when configured.
func healthCheck(db *sqlx.DB, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			logger.FromContext(ctx).Error().Err(err).Msg("health check: postgres unreachable")
			pkgresponse.ServiceUnavailable(w, "database unavailable")
			return
		}
		if err := database.PingRedis(ctx, redisClient); err != nil {
			logger.FromContext(ctx).Error().Err(err).Msg("health check: redis unreachable")
			pkgresponse.ServiceUnavailable(w, "redis unavailable")
			return
		}

		pkgresponse.OK(w, map[string]string{
			"status":  "ok",
			"version": version,
		})
	}
}
