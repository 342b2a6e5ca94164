package handlers

import (
	"context"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/signal-desk/halskey/internal/domain"
	"github.com/signal-desk/halskey/internal/report"
	"github.com/signal-desk/halskey/internal/repository"
	"github.com/signal-desk/halskey/internal/session"
)

// NewStatsHandler renders the performance overview on /stats.
func NewStatsHandler(signals repository.SignalRepository, builder *report.Builder, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		ctx := context.Background()

		fetch := func() (string, error) {
			var (
				today, week, month []domain.Signal
				err                error
			)
			if today, err = signals.Today(ctx); err != nil {
				return "", err
			}
			if week, err = signals.LastWeek(ctx); err != nil {
				return "", err
			}
			if month, err = signals.LastMonth(ctx); err != nil {
				return "", err
			}

			total, err := signals.TotalCount(ctx)
			if err != nil {
				return "", err
			}

			results, err := signals.RecentResults(ctx, recentResultsWindow)
			if err != nil {
				return "", err
			}

			return builder.StatsMessage(
				session.Aggregate(today),
				session.Aggregate(week),
				session.Aggregate(month),
				total,
				session.CurrentStreak(results),
			), nil
		}

		message, err := fetch()
		if err != nil {
			log.Error("failed to build stats", slog.Any("error", err))
			return c.Send("Error fetching stats. Please try again.")
		}

		return c.Send(message, telebot.ModeHTML)
	}
}
