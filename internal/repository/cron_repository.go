package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/lib/pq"

	"github.com/signal-desk/halskey/internal/domain"
)

// CronRepository loads the channel's scheduled-post configuration. Both
// tables are read-only from the bot's perspective.
type CronRepository interface {
	Jobs(ctx context.Context) ([]domain.CronJob, error)
	Posts(ctx context.Context) ([]domain.CronPost, error)
}

type cronRepository struct {
	db        *sql.DB
	channelID int64
	log       *slog.Logger
}

// NewCronRepository creates a SQL-backed cron configuration repository.
func NewCronRepository(db *sql.DB, channelID int64, log *slog.Logger) CronRepository {
	return &cronRepository{
		db:        db,
		channelID: channelID,
		log:       log,
	}
}

func (r *cronRepository) Jobs(ctx context.Context) ([]domain.CronJob, error) {
	const query = `
		SELECT id, name, cron_id, schedule, timezone
		FROM crons
		WHERE telegram_id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, r.channelID)
	if err != nil {
		if r.log != nil {
			r.log.Error("failed to fetch cron jobs", slog.Any("error", err))
		}
		return nil, fmt.Errorf("select cron jobs: %w", err)
	}
	defer rows.Close()

	var jobs []domain.CronJob
	for rows.Next() {
		var job domain.CronJob
		if err := rows.Scan(
			&job.ID,
			&job.Name,
			&job.CronID,
			pq.Array(&job.Schedule),
			&job.Timezone,
		); err != nil {
			return nil, fmt.Errorf("scan cron job: %w", err)
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

func (r *cronRepository) Posts(ctx context.Context) ([]domain.CronPost, error) {
	const query = `
		SELECT id, name, message_id, text, image, video, reply_markup
		FROM cron_posts
		WHERE telegram_id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, r.channelID)
	if err != nil {
		if r.log != nil {
			r.log.Error("failed to fetch cron posts", slog.Any("error", err))
		}
		return nil, fmt.Errorf("select cron posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.CronPost
	for rows.Next() {
		var (
			post   domain.CronPost
			markup sql.NullString
		)
		if err := rows.Scan(
			&post.ID,
			&post.Name,
			&post.MessageID,
			&post.Text,
			&post.Image,
			&post.Video,
			&markup,
		); err != nil {
			return nil, fmt.Errorf("scan cron post: %w", err)
		}
		if markup.Valid {
			post.ReplyMarkup = []byte(markup.String)
		}
		posts = append(posts, post)
	}

	return posts, rows.Err()
}
