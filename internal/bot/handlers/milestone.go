package handlers

import (
	"context"
	"log/slog"
	"strings"

	telebot "gopkg.in/telebot.v3"

	"github.com/signal-desk/halskey/internal/bot/keyboard"
	"github.com/signal-desk/halskey/internal/poster"
	"github.com/signal-desk/halskey/internal/report"
	"github.com/signal-desk/halskey/internal/repository"
	"github.com/signal-desk/halskey/internal/session"
	"github.com/signal-desk/halskey/internal/state"
)

const communityLink = "https://t.me/gudtradewithmatthew"

// Milestone handles the /milestone status check and the celebration post.
type Milestone struct {
	store   *state.Store
	kb      *keyboard.Builder
	signals repository.SignalRepository
	posts   *poster.Poster
	builder *report.Builder
	log     *slog.Logger
}

func NewMilestone(
	store *state.Store,
	kb *keyboard.Builder,
	signals repository.SignalRepository,
	posts *poster.Poster,
	builder *report.Builder,
	log *slog.Logger,
) *Milestone {
	if log == nil {
		log = slog.Default()
	}

	return &Milestone{
		store:   store,
		kb:      kb,
		signals: signals,
		posts:   posts,
		builder: builder,
		log:     log,
	}
}

// Command shows where the signal total sits on the milestone ladder.
func (m *Milestone) Command(c telebot.Context) error {
	if c.Sender() == nil {
		return nil
	}

	ctx := context.Background()

	total, err := m.signals.TotalCount(ctx)
	if err != nil {
		m.log.Error("failed to count signals", slog.Any("error", err))
		return c.Send("Error checking milestone. Please try again.")
	}

	monthAccuracy, err := m.monthAccuracy(ctx)
	if err != nil {
		m.log.Error("failed to compute month accuracy", slog.Any("error", err))
		return c.Send("Error checking milestone. Please try again.")
	}

	status := session.MilestoneStatus(total)
	text := m.builder.MilestoneStatusMessage(total, status, monthAccuracy)

	conv := m.store.Conversation(c.Sender().ID)
	return sendPrompt(c, conv, text, telebot.ModeHTML, m.kb.MilestoneActions(status.Last))
}

// Post publishes the celebration for the chosen milestone.
func (m *Milestone) Post(c telebot.Context) error {
	if c.Sender() == nil || c.Callback() == nil {
		return nil
	}

	ctx := context.Background()
	data := strings.TrimPrefix(c.Callback().Data, "\f")
	milestone := strings.TrimPrefix(data, keyboard.CallbackMilestonePrefix)

	monthAccuracy, err := m.monthAccuracy(ctx)
	if err != nil {
		return err
	}

	results, err := m.signals.RecentResults(ctx, recentResultsWindow)
	if err != nil {
		return err
	}

	text := m.builder.MilestoneCelebration(milestone, monthAccuracy, session.CurrentStreak(results))
	markup := &telebot.ReplyMarkup{
		InlineKeyboard: [][]telebot.InlineButton{
			{{Text: "JOIN THE WINNING TEAM 🚀", URL: communityLink}},
		},
	}

	if err := m.posts.Text(text, markup); err != nil {
		return err
	}

	m.log.Info("milestone celebration posted", slog.String("milestone", milestone))
	return editPrompt(c, "✅ Milestone celebration posted!")
}

func (m *Milestone) monthAccuracy(ctx context.Context) (string, error) {
	month, err := m.signals.LastMonth(ctx)
	if err != nil {
		return "", err
	}

	return session.Aggregate(month).Accuracy, nil
}
