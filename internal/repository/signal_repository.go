// Package repository provides the Postgres-backed persistence layer.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/signal-desk/halskey/internal/domain"
	"github.com/signal-desk/halskey/internal/session"
)

// SignalRepository defines persistence operations for signals. Every query is
// scoped to the single channel the deployment serves.
type SignalRepository interface {
	// Create inserts a new signal with a NULL result.
	Create(ctx context.Context, band session.Band, pair, direction, initialTime string) error
	// UpdateLatestResult sets the result on the channel's most recent signal.
	UpdateLatestResult(ctx context.Context, result string) error
	// Today returns all of today's signals ordered by session band.
	Today(ctx context.Context) ([]domain.Signal, error)
	// LastWeek returns signals from the past 7 days in ascending time order.
	LastWeek(ctx context.Context) ([]domain.Signal, error)
	// LastMonth returns signals from the past 30 days in ascending time order.
	LastMonth(ctx context.Context) ([]domain.Signal, error)
	// SessionToday returns today's signals for one band.
	SessionToday(ctx context.Context, band session.Band) ([]domain.Signal, error)
	// OpenInSession returns today's signals in the band that still have a
	// NULL result; a non-empty answer blocks the session close.
	OpenInSession(ctx context.Context, band session.Band) ([]domain.Signal, error)
	// RecentResults returns up to limit non-null results, newest first.
	RecentResults(ctx context.Context, limit int) ([]string, error)
	// TotalCount returns the all-time signal count for the channel.
	TotalCount(ctx context.Context) (int, error)
}

type signalRepository struct {
	db        *sql.DB
	channelID int64
	log       *slog.Logger
}

// NewSignalRepository creates a SQL-backed signal repository bound to the
// configured channel.
func NewSignalRepository(db *sql.DB, channelID int64, log *slog.Logger) SignalRepository {
	return &signalRepository{
		db:        db,
		channelID: channelID,
		log:       log,
	}
}

const signalColumns = `id, session, time_stamp, pair, direction, result, initial_time, telegram_id`

func (r *signalRepository) Create(ctx context.Context, band session.Band, pair, direction, initialTime string) error {
	const query = `
		INSERT INTO signals (session, pair, direction, initial_time, telegram_id)
		VALUES ($1, $2, $3, $4, $5)
	`

	if _, err := r.db.ExecContext(ctx, query, string(band), pair, direction, initialTime, r.channelID); err != nil {
		if r.log != nil {
			r.log.Error("failed to create signal", slog.String("pair", pair), slog.Any("error", err))
		}
		return fmt.Errorf("insert signal: %w", err)
	}

	return nil
}

func (r *signalRepository) UpdateLatestResult(ctx context.Context, result string) error {
	const query = `
		UPDATE signals SET result = $1
		WHERE time_stamp = (
			SELECT time_stamp FROM signals WHERE telegram_id = $2
			ORDER BY time_stamp DESC LIMIT 1
		)
	`

	if _, err := r.db.ExecContext(ctx, query, result, r.channelID); err != nil {
		if r.log != nil {
			r.log.Error("failed to update latest signal result", slog.Any("error", err))
		}
		return fmt.Errorf("update latest signal result: %w", err)
	}

	return nil
}

func (r *signalRepository) Today(ctx context.Context) ([]domain.Signal, error) {
	const query = `
		SELECT ` + signalColumns + `
		FROM signals
		WHERE telegram_id = $1 AND DATE(time_stamp) = CURRENT_DATE
		ORDER BY session ASC
	`

	return r.querySignals(ctx, query, r.channelID)
}

func (r *signalRepository) LastWeek(ctx context.Context) ([]domain.Signal, error) {
	const query = `
		SELECT ` + signalColumns + `
		FROM signals
		WHERE telegram_id = $1 AND time_stamp >= NOW() - INTERVAL '7 days'
		ORDER BY time_stamp ASC
	`

	return r.querySignals(ctx, query, r.channelID)
}

func (r *signalRepository) LastMonth(ctx context.Context) ([]domain.Signal, error) {
	const query = `
		SELECT ` + signalColumns + `
		FROM signals
		WHERE telegram_id = $1 AND time_stamp >= NOW() - INTERVAL '30 days'
		ORDER BY time_stamp ASC
	`

	return r.querySignals(ctx, query, r.channelID)
}

func (r *signalRepository) SessionToday(ctx context.Context, band session.Band) ([]domain.Signal, error) {
	const query = `
		SELECT ` + signalColumns + `
		FROM signals
		WHERE telegram_id = $1 AND session = $2 AND DATE(time_stamp) = CURRENT_DATE
	`

	return r.querySignals(ctx, query, r.channelID, string(band))
}

func (r *signalRepository) OpenInSession(ctx context.Context, band session.Band) ([]domain.Signal, error) {
	const query = `
		SELECT ` + signalColumns + `
		FROM signals
		WHERE telegram_id = $1 AND session = $2
		  AND DATE(time_stamp) = CURRENT_DATE AND result IS NULL
		ORDER BY time_stamp DESC
	`

	return r.querySignals(ctx, query, r.channelID, string(band))
}

func (r *signalRepository) RecentResults(ctx context.Context, limit int) ([]string, error) {
	const query = `
		SELECT result FROM signals
		WHERE telegram_id = $1 AND result IS NOT NULL
		ORDER BY time_stamp DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, r.channelID, limit)
	if err != nil {
		if r.log != nil {
			r.log.Error("failed to fetch recent results", slog.Any("error", err))
		}
		return nil, fmt.Errorf("select recent results: %w", err)
	}
	defer rows.Close()

	var results []string
	for rows.Next() {
		var result string
		if err := rows.Scan(&result); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		results = append(results, result)
	}

	return results, rows.Err()
}

func (r *signalRepository) TotalCount(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM signals WHERE telegram_id = $1`

	var total int
	if err := r.db.QueryRowContext(ctx, query, r.channelID).Scan(&total); err != nil {
		if r.log != nil {
			r.log.Error("failed to count signals", slog.Any("error", err))
		}
		return 0, fmt.Errorf("count signals: %w", err)
	}

	return total, nil
}

func (r *signalRepository) querySignals(ctx context.Context, query string, args ...any) ([]domain.Signal, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		if r.log != nil {
			r.log.Error("failed to fetch signals", slog.Any("error", err))
		}
		return nil, fmt.Errorf("select signals: %w", err)
	}
	defer rows.Close()

	var signals []domain.Signal
	for rows.Next() {
		var s domain.Signal
		if err := rows.Scan(
			&s.ID,
			&s.Session,
			&s.Timestamp,
			&s.Pair,
			&s.Direction,
			&s.Result,
			&s.InitialTime,
			&s.ChannelID,
		); err != nil {
			return nil, fmt.Errorf("scan signal: %w", err)
		}
		signals = append(signals, s)
	}

	return signals, rows.Err()
}
