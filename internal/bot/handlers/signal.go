package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	telebot "gopkg.in/telebot.v3"

	"github.com/signal-desk/halskey/internal/bot/keyboard"
	"github.com/signal-desk/halskey/internal/domain"
	"github.com/signal-desk/halskey/internal/poster"
	"github.com/signal-desk/halskey/internal/session"
	"github.com/signal-desk/halskey/internal/signal"
	"github.com/signal-desk/halskey/internal/state"
	"github.com/signal-desk/halskey/pkg/metrics"
)

const (
	pairPrompt      = "Choose a currency pair\n\nIf it's not here (almost impossible ;)...), choose a closely similar one and edit the post after i send it to the channel.\n\n"
	hourPrompt      = "🕓 What time (HOUR) would you like to start?\n\n0 is the same as 24 or 12am midnight..."
	minutePrompt    = "🕓 What time (MINUTE) would you like to start?\n\nthe back button is on the last row instead of 60"
	directionPrompt = "↕ What direction would you like to go?\nChoose an option below:"
)

// Wizard drives the multi-step signal creation dialogue. Each exported
// method is a routed command or callback handler.
type Wizard struct {
	store   *state.Store
	kb      *keyboard.Builder
	signals *signal.Service
	posts   *poster.Poster
	log     *slog.Logger
}

func NewWizard(
	store *state.Store,
	kb *keyboard.Builder,
	signals *signal.Service,
	posts *poster.Poster,
	log *slog.Logger,
) *Wizard {
	if log == nil {
		log = slog.Default()
	}

	return &Wizard{
		store:   store,
		kb:      kb,
		signals: signals,
		posts:   posts,
		log:     log,
	}
}

func (w *Wizard) conversation(c telebot.Context) *state.Conversation {
	return w.store.Conversation(c.Sender().ID)
}

// Command starts a fresh wizard pass on /signal.
func (w *Wizard) Command(c telebot.Context) error {
	if c.Sender() == nil {
		return nil
	}

	conv := w.conversation(c)
	conv.Draft.Reset()

	return sendPrompt(c, conv, pairPrompt, telebot.ModeHTML, w.kb.Pairs(0))
}

// PairPage shows the requested catalog page. It also serves the review
// screen's back-to-pairs action, which returns to the last viewed page.
func (w *Wizard) PairPage(c telebot.Context) error {
	if c.Sender() == nil {
		return nil
	}

	conv := w.conversation(c)
	data := strings.TrimPrefix(c.Callback().Data, "\f")

	page := conv.Draft.PairPage
	if raw, ok := strings.CutPrefix(data, keyboard.CallbackPairPagePrefix); ok {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			w.log.Warn("bad pair page callback", slog.String("data", data))
			return nil
		}
		page = parsed
	}

	if err := conv.Draft.Advance(state.StepPairSelect); err != nil {
		w.log.Warn("pair page outside wizard flow", slog.Any("error", err))
		conv.Draft.Reset()
	}
	conv.Draft.PairPage = page

	return replacePrompt(c, conv, pairPrompt, telebot.ModeHTML, w.kb.Pairs(page))
}

// PairChosen is the callback fallback: any data shaped like a catalog pair
// selects it and moves on to the entry hour.
func (w *Wizard) PairChosen(c telebot.Context) error {
	if c.Sender() == nil {
		return nil
	}

	data := strings.TrimPrefix(c.Callback().Data, "\f")
	if !session.ValidPair(data) {
		w.log.Info("unhandled callback data", slog.String("data", data))
		return nil
	}

	// pair-shaped data outside the catalog keeps its raw label
	label, ok := keyboard.PairLabel(data)
	if !ok {
		label = data
	}

	conv := w.conversation(c)
	conv.Draft.Pair = label

	return w.askHour(c, conv)
}

// RestepTime re-enters the time selection without changing the pair.
func (w *Wizard) RestepTime(c telebot.Context) error {
	if c.Sender() == nil {
		return nil
	}

	return w.askHour(c, w.conversation(c))
}

func (w *Wizard) askHour(c telebot.Context, conv *state.Conversation) error {
	if err := conv.Draft.Advance(state.StepHourSelect); err != nil {
		w.log.Warn("hour step rejected", slog.Any("error", err))
		return nil
	}

	return replacePrompt(c, conv, hourPrompt, w.kb.Hours())
}

// Hour records the chosen entry hour and asks for the minute.
func (w *Wizard) Hour(c telebot.Context) error {
	if c.Sender() == nil {
		return nil
	}

	data := strings.TrimPrefix(c.Callback().Data, "\f")
	hour, err := strconv.Atoi(strings.TrimPrefix(data, keyboard.CallbackHourPrefix))
	if err != nil || hour < 0 || hour > 23 {
		w.log.Warn("bad hour callback", slog.String("data", data))
		return nil
	}

	conv := w.conversation(c)
	conv.Draft.Hour = &hour
	if err := conv.Draft.Advance(state.StepMinuteSelect); err != nil {
		w.log.Warn("minute step rejected", slog.Any("error", err))
		return nil
	}

	return replacePrompt(c, conv, minutePrompt, w.kb.Minutes())
}

// Minute records the chosen minute and asks for the direction.
func (w *Wizard) Minute(c telebot.Context) error {
	if c.Sender() == nil {
		return nil
	}

	data := strings.TrimPrefix(c.Callback().Data, "\f")
	minute, err := strconv.Atoi(strings.TrimPrefix(data, keyboard.CallbackMinutePrefix))
	if err != nil || minute < 0 || minute > 59 {
		w.log.Warn("bad minute callback", slog.String("data", data))
		return nil
	}

	conv := w.conversation(c)
	conv.Draft.Minute = &minute

	return w.askDirection(c, conv)
}

// RestepDirection re-enters the direction choice from the review screen.
func (w *Wizard) RestepDirection(c telebot.Context) error {
	if c.Sender() == nil {
		return nil
	}

	return w.askDirection(c, w.conversation(c))
}

func (w *Wizard) askDirection(c telebot.Context, conv *state.Conversation) error {
	if err := conv.Draft.Advance(state.StepDirectionSelect); err != nil {
		w.log.Warn("direction step rejected", slog.Any("error", err))
		return nil
	}

	return replacePrompt(c, conv, directionPrompt, w.kb.Directions())
}

// Direction records BUY or SELL and shows the review screen.
func (w *Wizard) Direction(c telebot.Context) error {
	if c.Sender() == nil {
		return nil
	}

	data := strings.TrimPrefix(c.Callback().Data, "\f")
	direction := string(domainDirection(data))

	conv := w.conversation(c)
	conv.Draft.Direction = direction
	if err := conv.Draft.Advance(state.StepReview); err != nil {
		w.log.Warn("review step rejected", slog.Any("error", err))
		return nil
	}

	if !conv.Draft.TimeChosen() {
		return w.askHour(c, conv)
	}

	var sb strings.Builder
	sb.WriteString("Okay let's review what you've chosen:\n\n")
	fmt.Fprintf(&sb, "Currency Pair: %s \n", conv.Draft.Pair)
	fmt.Fprintf(&sb, "Start Time: %02d:%02d \n", *conv.Draft.Hour, *conv.Draft.Minute)
	fmt.Fprintf(&sb, "Direction: %s \n\n", conv.Draft.Direction)
	sb.WriteString("<blockquote><strong>Note: i will post the signal immediately you click on correct ✅</strong></blockquote>")

	return replacePrompt(c, conv, sb.String(), telebot.ModeHTML, w.kb.Review())
}

func domainDirection(data string) domain.Direction {
	if data == keyboard.CallbackDirectionDown {
		return domain.DirectionSell
	}
	return domain.DirectionBuy
}

// Post confirms the draft: the announcement goes to the channel and the
// signal is recorded with an open result.
func (w *Wizard) Post(c telebot.Context) error {
	if c.Sender() == nil {
		return nil
	}

	conv := w.conversation(c)

	message, err := w.signals.Post(context.Background(), &conv.Draft)
	if errors.Is(err, signal.ErrIncompleteDraft) {
		// stale review button after a draft reset; confirming is a no-op
		w.log.Warn("confirm ignored, draft has no entry time")
		return nil
	}
	if err != nil {
		return err
	}

	if err := w.posts.Text(message, nil); err != nil {
		return err
	}

	if err := conv.Draft.Advance(state.StepPosted); err != nil {
		w.log.Warn("posted step rejected", slog.Any("error", err))
	}
	conv.Draft.Reset()
	w.store.SetLastAdmin(conv.AdminID)
	metrics.RecordSignalPosted(string(session.Current()))

	return replacePrompt(c, conv, "Signal posted successfully.")
}
