package handlers

import (
	"context"
	"log/slog"
	"strings"

	telebot "gopkg.in/telebot.v3"

	"github.com/signal-desk/halskey/internal/poster"
	"github.com/signal-desk/halskey/internal/report"
)

// Reports exposes the session, day, and week close commands plus the yes/no
// answers to an armed session end prompt.
type Reports struct {
	closer *report.Closer
	posts  *poster.Poster
	log    *slog.Logger
}

func NewReports(closer *report.Closer, posts *poster.Poster, log *slog.Logger) *Reports {
	if log == nil {
		log = slog.Default()
	}

	return &Reports{
		closer: closer,
		posts:  posts,
		log:    log,
	}
}

// EndSession starts the interactive session close on /endsession.
func (r *Reports) EndSession(c telebot.Context) error {
	if c.Sender() == nil {
		return nil
	}

	return r.closer.EndSession(context.Background(), c.Sender().ID, true)
}

// EndDay posts the daily report on /endday.
func (r *Reports) EndDay(c telebot.Context) error {
	if c.Sender() == nil {
		return nil
	}

	return r.closer.EndDay(context.Background(), c.Sender().ID)
}

// ReportWeek posts the weekly summary on /reportweek.
func (r *Reports) ReportWeek(c telebot.Context) error {
	if c.Sender() == nil {
		return nil
	}

	wait, waitErr := c.Bot().Send(c.Sender(), "Please wait...")

	text, err := r.closer.WeekReport(context.Background())
	if err != nil {
		return err
	}

	if err := r.posts.Text(text, nil); err != nil {
		return err
	}

	if waitErr == nil && wait != nil {
		if _, err := c.Bot().Edit(wait, "Weekly report sent successfully"); err != nil {
			r.log.Warn("failed to edit wait message", slog.Any("error", err))
		}
	}

	return nil
}

// Answer resolves a yes/no tap against the closer's pending prompts. Taps on
// prompts that already expired are ignored.
func (r *Reports) Answer(c telebot.Context) error {
	cb := c.Callback()
	if cb == nil || cb.Message == nil || cb.Message.Chat == nil {
		return nil
	}

	answer := strings.TrimPrefix(cb.Data, "\f")
	if !r.closer.Resolve(cb.Message.Chat.ID, cb.Message.ID, answer) {
		r.log.Info("stale prompt answer", slog.Int("message_id", cb.Message.ID))
	}

	return nil
}
