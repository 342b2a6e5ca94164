package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/signal-desk/halskey/internal/bot"
	"github.com/signal-desk/halskey/internal/database"
	apperrors "github.com/signal-desk/halskey/internal/errors"
	"github.com/signal-desk/halskey/internal/idempotency"
	"github.com/signal-desk/halskey/internal/jobs"
	jobhandlers "github.com/signal-desk/halskey/internal/jobs/handlers"
	"github.com/signal-desk/halskey/internal/media"
	"github.com/signal-desk/halskey/internal/poster"
	"github.com/signal-desk/halskey/internal/report"
	"github.com/signal-desk/halskey/internal/repository"
	signalsvc "github.com/signal-desk/halskey/internal/signal"
	"github.com/signal-desk/halskey/internal/state"
	"github.com/signal-desk/halskey/pkg/config"
	"github.com/signal-desk/halskey/pkg/graceful"
	"github.com/signal-desk/halskey/pkg/logger"
	"github.com/signal-desk/halskey/pkg/metrics"

	_ "github.com/lib/pq"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, v, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		return 1
	}

	log := logger.New(*cfg)
	slog.SetDefault(log)
	config.Watch(v, log, logger.SetLevel)

	log.Info("starting halskey",
		slog.String("env", cfg.AppEnv),
		slog.String("http_port", cfg.Server.Port),
		slog.Int64("channel_id", cfg.Channel.ID),
	)

	if cfg.Sentry.Enabled {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.AppEnv,
		}); err != nil {
			log.Error("failed to init sentry", slog.Any("error", err))
			return 1
		}
		defer sentry.Flush(2 * time.Second)
	}

	db, err := sql.Open("postgres", cfg.DB.DSN())
	if err != nil {
		log.Error("failed to open database", slog.Any("error", err))
		return 1
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Error("error closing database", slog.Any("error", cerr))
		}
	}()

	if err := db.PingContext(ctx); err != nil {
		log.Error("failed to ping database", slog.Any("error", err))
		return 1
	}

	if err := database.NewMigrator(db, log).ApplyDir(ctx, "migrations"); err != nil {
		log.Error("failed to apply migrations", slog.Any("error", err))
		return 1
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if cerr := redisClient.Close(); cerr != nil {
			log.Error("error closing redis", slog.Any("error", cerr))
		}
	}()

	signals := repository.NewSignalRepository(db, cfg.Channel.ID, log)
	crons := repository.NewCronRepository(db, cfg.Channel.ID, log)

	tb, err := bot.NewTelebot(*cfg)
	if err != nil {
		log.Error("failed to build telegram client", slog.Any("error", err))
		return 1
	}

	assets := media.NewAssets(cfg.Media.Dir)
	watermarker := media.NewWatermarker(cfg.Media.Dir, cfg.Media.WatermarkURL, log)
	state.RegisterTransitionRecorder(metrics.RecordStepTransition)
	store := state.NewStore()
	builder := report.NewBuilder()
	posts := poster.New(tb, cfg.Channel.ID, assets, log)
	closer := report.NewCloser(tb, posts, signals, store, builder, assets, log)

	app := bot.New(*cfg, log, tb, bot.Deps{
		Store:       store,
		Signals:     signals,
		Crons:       crons,
		SignalSvc:   signalsvc.NewService(signals, log),
		Poster:      posts,
		Closer:      closer,
		Builder:     builder,
		Watermarker: watermarker,
		Dedupe:      idempotency.NewRedisStore(redisClient, log),
		Errors:      apperrors.NewHandler(log, cfg.Sentry.Enabled),
	})

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	scheduler := jobs.NewScheduler(redisOpt, crons, log)
	if err := scheduler.RegisterTasks(ctx); err != nil {
		log.Error("failed to register cron tasks", slog.Any("error", err))
		return 1
	}
	scheduler.Run()
	defer scheduler.Shutdown()

	worker := jobs.NewWorker(redisOpt, log)
	worker.RegisterHandler(jobs.TaskTypeCronFire, jobhandlers.NewCronFireHandler(closer, posts, crons, store, log))
	go func() {
		if err := worker.Run(); err != nil {
			log.Error("jobs worker stopped", slog.Any("error", err))
		}
	}()
	defer worker.Shutdown()

	go app.Start()
	defer app.Stop()

	srv := &http.Server{
		Addr:    cfg.Server.Port,
		Handler: logger.Middleware(graceful.Mux("Halskey v3.0.0 for TWM is running...\n")),
	}

	if err := graceful.NewServer(log, srv, cfg.Server.ShutdownTimeout).ListenAndServe(ctx); err != nil {
		log.Error("http server exited with error", slog.Any("error", err))
	}

	log.Info("halskey shutting down")
	return 0
}
