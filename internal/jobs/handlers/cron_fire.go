// Package handlers contains the asynq task handlers for scheduled fires.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/signal-desk/halskey/internal/domain"
	"github.com/signal-desk/halskey/internal/jobs"
	"github.com/signal-desk/halskey/internal/poster"
	"github.com/signal-desk/halskey/internal/report"
	"github.com/signal-desk/halskey/internal/repository"
	"github.com/signal-desk/halskey/internal/state"
	"github.com/signal-desk/halskey/pkg/metrics"
)

// CronFireHandler dispatches a fired cron job: the two report jobs start
// their close flows addressed to the last active operator, everything else
// posts its stored template.
type CronFireHandler struct {
	closer *report.Closer
	posts  *poster.Poster
	crons  repository.CronRepository
	store  *state.Store
	log    *slog.Logger
}

func NewCronFireHandler(
	closer *report.Closer,
	posts *poster.Poster,
	crons repository.CronRepository,
	store *state.Store,
	log *slog.Logger,
) *CronFireHandler {
	if log == nil {
		log = slog.Default()
	}

	return &CronFireHandler{
		closer: closer,
		posts:  posts,
		crons:  crons,
		store:  store,
		log:    log,
	}
}

// ProcessTask handles one fire. Failures are logged and swallowed: a missed
// channel post must not be retried into a stale time slot.
func (h *CronFireHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload jobs.CronFirePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		h.log.Error("cron fire: bad payload", slog.Any("error", err))
		metrics.RecordCronFire("unknown", "error")
		return nil
	}

	log := h.log.With(slog.String("cron_id", payload.CronID))
	log.Info("cron fired")

	if err := h.dispatch(ctx, payload.CronID); err != nil {
		log.Error("cron fire failed", slog.Any("error", err))
		metrics.RecordCronFire(payload.CronID, "error")
		return nil
	}

	metrics.RecordCronFire(payload.CronID, "ok")
	return nil
}

func (h *CronFireHandler) dispatch(ctx context.Context, cronID string) error {
	switch cronID {
	case domain.CronSessionEnd:
		return h.closer.EndSession(ctx, h.store.LastAdmin(), false)
	case domain.CronDayEnd:
		return h.closer.EndDay(ctx, h.store.LastAdmin())
	default:
		return h.postTemplate(ctx, cronID)
	}
}

func (h *CronFireHandler) postTemplate(ctx context.Context, cronID string) error {
	posts, err := h.crons.Posts(ctx)
	if err != nil {
		return err
	}

	for _, post := range posts {
		if post.MessageID == cronID {
			return h.posts.Template(post)
		}
	}

	h.log.Warn("cron fire: no template found", slog.String("cron_id", cronID))
	return nil
}
