package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/signal-desk/halskey/internal/repository"
)

type Scheduler interface {
	RegisterTasks(ctx context.Context) error
	Run()
	Shutdown()
}

type scheduler struct {
	asynqScheduler *asynq.Scheduler
	crons          repository.CronRepository
	log            *slog.Logger
}

func NewScheduler(redisOpt asynq.RedisConnOpt, crons repository.CronRepository, log *slog.Logger) Scheduler {
	if log == nil {
		log = slog.Default()
	}

	return &scheduler{
		asynqScheduler: asynq.NewScheduler(redisOpt, nil),
		crons:          crons,
		log:            log,
	}
}

// RegisterTasks loads the cron table and registers one entry per
// (job, expression) pair, each in the job's own timezone.
func (s *scheduler) RegisterTasks(ctx context.Context) error {
	jobs, err := s.crons.Jobs(ctx)
	if err != nil {
		return err
	}

	for _, job := range jobs {
		task, err := NewCronFireTask(job.CronID)
		if err != nil {
			return err
		}

		for _, expression := range job.Schedule {
			spec := BuildCronSpec(job.Timezone, expression)
			if _, err := s.asynqScheduler.Register(spec, task); err != nil {
				return err
			}

			s.log.Info("scheduler: registered cron entry",
				slog.String("cron_id", job.CronID),
				slog.String("spec", spec),
			)
		}
	}

	return nil
}

func (s *scheduler) Run() {
	s.log.Info("scheduler: starting")

	go func() {
		if err := s.asynqScheduler.Run(); err != nil {
			s.log.Error("scheduler: run failed", "error", err)
		}
	}()
}

func (s *scheduler) Shutdown() {
	s.log.Info("scheduler: shutting down")
	s.asynqScheduler.Shutdown()
}
