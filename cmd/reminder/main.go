// Command reminder sends one reminder for every reservation that starts on
// the next calendar day, then exits.
package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/abelab/crms/internal/core/service"
	mongodb "github.com/abelab/crms/internal/infrastructure/db/mongo"
	redisdb "github.com/abelab/crms/internal/infrastructure/db/redis"
	"github.com/abelab/crms/internal/infrastructure/notifier"
	"github.com/abelab/crms/internal/infrastructure/queue"
	"github.com/abelab/crms/internal/pkg/config"
	"github.com/abelab/crms/pkg/logger"
)

const jobTimeout = 5 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := logger.Init(logger.Options{})
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	runID := uuid.NewString()
	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "crms-reminder",
	})
	log := logger.Component("reminder").With().Str("run_id", runID).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database, AppName: "crms-reminder"})
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
	users := mongodb.NewUserRepository(db)
	scanner := service.NewUpcomingReservationScanner(mongodb.NewReservationRepository(db), users, loc)

	upcoming, err := scanner.ListNextDayReservations(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("next day scan failed")
	}
	log.Info().Int("reservations", len(upcoming)).Str("tz", loc.String()).Msg("next day scan complete")

	reminders := service.NewReminderService(
		redisdb.NewReminderDedup(rdb, loc),
		notifier.NewLogNotifier(log),
		log,
	)
	dispatcher := queue.NewDispatcher(cfg.Schedule.Workers, reminders, log)
	dispatcher.Start(ctx)
	queued, err := dispatcher.EnqueueBatch(upcoming)
	if err != nil {
		log.Warn().Err(err).Int("queued", queued).Int("dropped", len(upcoming)-queued).Msg("reminder run interrupted")
	}
	dispatcher.Close()

	log.Info().Msg("reminder run finished")
}
