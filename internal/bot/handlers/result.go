package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	telebot "gopkg.in/telebot.v3"

	"github.com/signal-desk/halskey/internal/bot/keyboard"
	"github.com/signal-desk/halskey/internal/domain"
	apperrors "github.com/signal-desk/halskey/internal/errors"
	"github.com/signal-desk/halskey/internal/media"
	"github.com/signal-desk/halskey/internal/poster"
	"github.com/signal-desk/halskey/internal/report"
	"github.com/signal-desk/halskey/internal/repository"
	"github.com/signal-desk/halskey/internal/session"
	"github.com/signal-desk/halskey/internal/state"
	"github.com/signal-desk/halskey/pkg/metrics"
)

// streakThreshold is the shortest win run worth offering on a result post.
const streakThreshold = 3

// recentResultsWindow bounds the streak lookback.
const recentResultsWindow = 50

// outcomeByCallback maps the /result keyboard choices to the stored labels.
var outcomeByCallback = map[string]string{
	"martingale0": domain.ResultDirectWin,
	"martingale1": domain.ResultMartingale1,
	"martingale2": domain.ResultMartingale2,
	"martingale3": domain.ResultMartingale3,
	"lossBoth":    domain.ResultLoss,
}

// ResultFlow drives the outcome posting dialogue: choose the outcome,
// optionally attach a watermarked screenshot, optionally ride the streak.
type ResultFlow struct {
	store     *state.Store
	kb        *keyboard.Builder
	signals   repository.SignalRepository
	posts     *poster.Poster
	watermark *media.Watermarker
	log       *slog.Logger
}

func NewResultFlow(
	store *state.Store,
	kb *keyboard.Builder,
	signals repository.SignalRepository,
	posts *poster.Poster,
	watermark *media.Watermarker,
	log *slog.Logger,
) *ResultFlow {
	if log == nil {
		log = slog.Default()
	}

	return &ResultFlow{
		store:     store,
		kb:        kb,
		signals:   signals,
		posts:     posts,
		watermark: watermark,
		log:       log,
	}
}

// Command starts the flow on /result.
func (f *ResultFlow) Command(c telebot.Context) error {
	if c.Sender() == nil {
		return nil
	}

	conv := f.store.Conversation(c.Sender().ID)
	conv.Result.Reset()

	return sendPrompt(c, conv, "Choose one of the options below:", telebot.ModeHTML, f.kb.ResultOptions())
}

// Outcome records the chosen result. The latest open signal is updated
// immediately, before the channel post goes out.
func (f *ResultFlow) Outcome(c telebot.Context) error {
	if c.Sender() == nil {
		return nil
	}

	data := strings.TrimPrefix(c.Callback().Data, "\f")
	result, ok := outcomeByCallback[data]
	if !ok {
		f.log.Warn("unknown outcome callback", slog.String("data", data))
		return nil
	}

	if err := f.signals.UpdateLatestResult(context.Background(), result); err != nil {
		return err
	}

	conv := f.store.Conversation(c.Sender().ID)
	conv.Result.ChosenResult = result

	text := fmt.Sprintf("This is what you have chosen:\n<blockquote>%s</blockquote>\n\nWhat would you like to do next?", result)
	return replacePrompt(c, conv, text, telebot.ModeHTML, f.kb.ResultNext())
}

// AddImage asks for the screenshot to attach.
func (f *ResultFlow) AddImage(c telebot.Context) error {
	if c.Sender() == nil {
		return nil
	}

	conv := f.store.Conversation(c.Sender().ID)
	conv.Result.AwaitingImage = true
	conv.Result.ImagePath = ""

	return replacePrompt(c, conv, "Send me the image of your win/loss.")
}

// Photo receives the screenshot, watermarks it, and offers dispatch.
func (f *ResultFlow) Photo(c telebot.Context) error {
	if c.Sender() == nil || c.Message() == nil || c.Message().Photo == nil {
		return nil
	}

	conv := f.store.Conversation(c.Sender().ID)
	if !conv.Result.AwaitingImage {
		return nil
	}

	path, err := f.fetchWatermarked(c, c.Message().Photo.FileID)
	if err != nil {
		f.log.Error("failed to prepare result image", slog.Any("error", err))
		return c.Send("Sorry, I couldn't download the picture and save")
	}

	conv.Result.ImagePath = path
	return replacePrompt(c, conv, "Photo received and saved, what to do next?:", f.kb.SendOrCancel())
}

// fetchWatermarked resolves the Telegram file URL and runs it through the
// watermark service, returning the local path of the branded copy.
func (f *ResultFlow) fetchWatermarked(c telebot.Context, fileID string) (string, error) {
	file, err := c.Bot().FileByID(fileID)
	if err != nil {
		return "", apperrors.NewTransportError(err)
	}

	fileURL := fmt.Sprintf("%s/file/bot%s/%s", c.Bot().URL, c.Bot().Token, file.FilePath)
	return f.watermark.Apply(context.Background(), fileURL)
}

// Send dispatches the result, first offering to ride a notable win streak.
func (f *ResultFlow) Send(c telebot.Context) error {
	if c.Sender() == nil {
		return nil
	}

	conv := f.store.Conversation(c.Sender().ID)
	if !conv.Result.Chosen() {
		return nil
	}

	if strings.Contains(conv.Result.ChosenResult, domain.WinMarker) {
		streak, err := f.currentStreak()
		if err != nil {
			return err
		}

		if streak.Kind == session.StreakWin && streak.Count >= streakThreshold {
			return replacePrompt(c, conv, report.StreakPrompt(streak.Count), telebot.ModeHTML, f.kb.StreakChoice())
		}
	}

	return f.dispatch(c, conv, "")
}

// WithStreak appends the running streak to the result post.
func (f *ResultFlow) WithStreak(c telebot.Context) error {
	if c.Sender() == nil {
		return nil
	}

	conv := f.store.Conversation(c.Sender().ID)
	if !conv.Result.Chosen() {
		return nil
	}

	streak, err := f.currentStreak()
	if err != nil {
		return err
	}

	return f.dispatch(c, conv, report.StreakSuffix(streak.Count))
}

// WithoutStreak posts the bare result.
func (f *ResultFlow) WithoutStreak(c telebot.Context) error {
	if c.Sender() == nil {
		return nil
	}

	conv := f.store.Conversation(c.Sender().ID)
	if !conv.Result.Chosen() {
		return nil
	}

	return f.dispatch(c, conv, "")
}

func (f *ResultFlow) currentStreak() (session.Streak, error) {
	results, err := f.signals.RecentResults(context.Background(), recentResultsWindow)
	if err != nil {
		return session.Streak{}, err
	}

	return session.CurrentStreak(results), nil
}

// dispatch sends the chosen result to the channel. A bare loss goes out as
// the ❌ shorthand; an attached image demotes the loss label to its caption
// form.
func (f *ResultFlow) dispatch(c telebot.Context, conv *state.Conversation, suffix string) error {
	result := conv.Result.ChosenResult
	isWin := strings.Contains(result, domain.WinMarker)

	var err error
	switch {
	case conv.Result.ImagePath != "":
		caption := result
		if result == domain.ResultLoss {
			caption = domain.ResultLossCaption
		}
		err = f.posts.Photo(conv.Result.ImagePath, caption+suffix, nil)
	case result == domain.ResultLoss && suffix == "":
		err = f.posts.Text(domain.ResultLossCaption, nil)
	default:
		err = f.posts.Text(result+suffix, nil)
	}
	if err != nil {
		return err
	}

	conv.Result.Reset()
	f.store.SetLastAdmin(conv.AdminID)

	outcome := "loss"
	if isWin {
		outcome = "win"
	}
	metrics.RecordResultPosted(outcome)
	f.log.Info("result posted", slog.String("outcome", outcome))

	return replacePrompt(c, conv, "Result posted successfully...")
}
