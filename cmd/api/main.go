package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abelab/crms/internal/api"
	"github.com/abelab/crms/internal/core/domain"
	"github.com/abelab/crms/internal/core/service"
	mongodb "github.com/abelab/crms/internal/infrastructure/db/mongo"
	redisdb "github.com/abelab/crms/internal/infrastructure/db/redis"
	"github.com/abelab/crms/internal/infrastructure/http/handlers"
	"github.com/abelab/crms/internal/pkg/config"
	"github.com/abelab/crms/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := logger.Init(logger.Options{})
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "crms-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database, AppName: "crms-api"})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() { _ = rdb.Close() }()

	loc, _ := cfg.Schedule.Location()

	// --- Repositories ---
	users := mongodb.NewUserRepository(db)
	reservations := mongodb.NewReservationRepository(db)
	if err := mongodb.EnsureIndexes(ctx, users, reservations); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	// --- Services ---
	passwords := service.NewPasswordPolicy(cfg.Auth.BcryptCost)
	tokens := service.NewSessionTokenService(users, cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)
	guard := service.NewAccessGuard(users)
	permission := service.NewReservationPermission(reservations, users)
	scanner := service.NewUpcomingReservationScanner(reservations, users, loc)

	e := api.NewRouter(api.Deps{
		Log:          log,
		Auth:         service.NewAuthService(users, passwords, tokens, logger.Component("auth")),
		Users:        service.NewUserService(users, domain.DefaultRoleRegistry, guard, passwords, logger.Component("users")),
		Reservations: service.NewReservationService(reservations, users, permission, scanner, logger.Component("reservations")),
		Tokens:       tokens,
		Guard:        guard,
		Readiness: map[string]handlers.Check{
			"mongodb": handlers.MongoCheck(db),
			"redis":   handlers.RedisCheck(rdb),
		},
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
}
