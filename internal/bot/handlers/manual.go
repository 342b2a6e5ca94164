package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	telebot "gopkg.in/telebot.v3"

	"github.com/signal-desk/halskey/internal/bot/keyboard"
	"github.com/signal-desk/halskey/internal/domain"
	"github.com/signal-desk/halskey/internal/poster"
	"github.com/signal-desk/halskey/internal/report"
	"github.com/signal-desk/halskey/internal/repository"
	"github.com/signal-desk/halskey/internal/session"
	"github.com/signal-desk/halskey/internal/state"
)

// manualWeekReport is the menu entry for the weekly summary, which has no
// cron row of its own.
const manualWeekReport = "week_report"

// Manual lets the admin fire any scheduled post on demand.
type Manual struct {
	store  *state.Store
	kb     *keyboard.Builder
	crons  repository.CronRepository
	closer *report.Closer
	posts  *poster.Poster
	log    *slog.Logger
}

func NewManual(
	store *state.Store,
	kb *keyboard.Builder,
	crons repository.CronRepository,
	closer *report.Closer,
	posts *poster.Poster,
	log *slog.Logger,
) *Manual {
	if log == nil {
		log = slog.Default()
	}

	return &Manual{
		store:  store,
		kb:     kb,
		crons:  crons,
		closer: closer,
		posts:  posts,
		log:    log,
	}
}

// Command shows the manual post menu on /manual.
func (m *Manual) Command(c telebot.Context) error {
	if c.Sender() == nil {
		return nil
	}

	ctx := context.Background()

	jobs, err := m.crons.Jobs(ctx)
	if err != nil {
		return err
	}
	posts, err := m.crons.Posts(ctx)
	if err != nil {
		return err
	}

	current := "None active"
	if band := session.Current(); band != session.BandOutside {
		current = string(band)
	}

	var sb strings.Builder
	sb.WriteString("<strong>📋 MANUAL POST MENU</strong>\n\n")
	fmt.Fprintf(&sb, "Current Session: <strong>%s</strong>\n\n", current)
	sb.WriteString("Choose a message to send:")

	conv := m.store.Conversation(c.Sender().ID)
	return sendPrompt(c, conv, sb.String(), telebot.ModeHTML, m.kb.ManualMenu(jobs, posts))
}

// Select asks for confirmation before a manual send.
func (m *Manual) Select(c telebot.Context) error {
	if c.Sender() == nil || c.Callback() == nil {
		return nil
	}

	data := strings.TrimPrefix(c.Callback().Data, "\f")
	postType := strings.TrimPrefix(data, keyboard.CallbackManualPrefix)

	var sb strings.Builder
	sb.WriteString("<strong>⚠️ CONFIRM SEND</strong>\n\n")
	fmt.Fprintf(&sb, "You're about to send: <strong>%s</strong>\n\n", displayPostType(postType))
	sb.WriteString("This will be posted to the channel immediately.\n")
	sb.WriteString("Are you sure?")

	return editPrompt(c, sb.String(), telebot.ModeHTML, m.kb.ManualConfirm(postType))
}

// Confirm fires the chosen post. The report entries reuse their command
// flows; everything else goes out as its stored template.
func (m *Manual) Confirm(c telebot.Context) error {
	if c.Sender() == nil || c.Callback() == nil {
		return nil
	}

	ctx := context.Background()
	data := strings.TrimPrefix(c.Callback().Data, "\f")
	postType := strings.TrimPrefix(data, keyboard.CallbackConfirmManualPrefix)

	switch postType {
	case domain.CronSessionEnd:
		if err := m.closer.EndSession(ctx, c.Sender().ID, true); err != nil {
			return m.reportFailure(c, err)
		}
		return editPrompt(c, "✅ Session end flow started!")

	case domain.CronDayEnd:
		if err := m.closer.EndDay(ctx, c.Sender().ID); err != nil {
			return m.reportFailure(c, err)
		}
		return editPrompt(c, "✅ Day end report sent!")

	case manualWeekReport:
		text, err := m.closer.WeekReport(ctx)
		if err != nil {
			return m.reportFailure(c, err)
		}
		if err := m.posts.Text(text, nil); err != nil {
			return m.reportFailure(c, err)
		}
		return editPrompt(c, "✅ Weekly report sent!")
	}

	posts, err := m.crons.Posts(ctx)
	if err != nil {
		return m.reportFailure(c, err)
	}

	for _, post := range posts {
		if post.MessageID != postType {
			continue
		}

		if err := m.posts.Template(post); err != nil {
			return m.reportFailure(c, err)
		}
		return editPrompt(c, fmt.Sprintf("✅ %s sent!", displayPostType(postType)))
	}

	return editPrompt(c, "❌ Post template not found in database.")
}

func (m *Manual) reportFailure(c telebot.Context, err error) error {
	m.log.Error("manual post failed", slog.Any("error", err))
	return editPrompt(c, "❌ Error sending post. Check logs.")
}

func displayPostType(postType string) string {
	return strings.ToUpper(strings.ReplaceAll(postType, "_", " "))
}
