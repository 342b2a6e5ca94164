package report

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	telebot "gopkg.in/telebot.v3"

	"github.com/signal-desk/halskey/internal/domain"
	"github.com/signal-desk/halskey/internal/media"
	"github.com/signal-desk/halskey/internal/poster"
	"github.com/signal-desk/halskey/internal/repository"
	"github.com/signal-desk/halskey/internal/session"
	"github.com/signal-desk/halskey/internal/state"
)

const (
	registerURL = "https://u3.shortink.io/register?utm_campaign=788587&utm_source=affiliate&utm_medium=sr&a=3pbc0P7XCrDr8e&ac=zik&code=50START"
	supportURL  = "https://t.me/twmsupports"
	tradeGuide  = "https://telegra.ph/STRICT-INSTRUCTIONS-ON-HOW-TO-TRADE-SUCCESSFULLY-02-09"

	// DefaultPromptTimeout is how long the yes/no session prompt waits
	// before posting automatically.
	DefaultPromptTimeout = 5 * time.Minute
)

// pendingClose is one armed session end prompt. Validity is captured when
// the prompt is sent; a result recorded afterwards does not re-validate it.
type pendingClose struct {
	chatID  int64
	band    session.Band
	history []domain.Signal
	canEnd  bool
	timer   *time.Timer
}

// Closer runs the session end and day end flows against the channel.
type Closer struct {
	api     poster.API
	posts   *poster.Poster
	signals repository.SignalRepository
	store   *state.Store
	builder *Builder
	assets  *media.Assets
	log     *slog.Logger
	timeout time.Duration

	mu      sync.Mutex
	pending map[int]*pendingClose
}

func NewCloser(
	api poster.API,
	posts *poster.Poster,
	signals repository.SignalRepository,
	store *state.Store,
	builder *Builder,
	assets *media.Assets,
	log *slog.Logger,
) *Closer {
	if log == nil {
		log = slog.Default()
	}

	return &Closer{
		api:     api,
		posts:   posts,
		signals: signals,
		store:   store,
		builder: builder,
		assets:  assets,
		log:     log,
		timeout: DefaultPromptTimeout,
		pending: make(map[int]*pendingClose),
	}
}

func (c *Closer) sendTo(chatID int64, text string, opts ...interface{}) (*telebot.Message, error) {
	return c.api.Send(telebot.ChatID(chatID), text, opts...)
}

func (c *Closer) editTo(chatID int64, messageID int, text string) {
	stored := telebot.StoredMessage{MessageID: strconv.Itoa(messageID), ChatID: chatID}
	if _, err := c.api.Edit(stored, text); err != nil {
		c.log.Error("failed to edit prompt", slog.Int("message_id", messageID), slog.Any("error", err))
	}
}

// EndSession starts the close flow for the current session band. When called
// is true the flow was requested by the operator and an empty session gets an
// explicit reply; cron fires pass false and stay silent on empty sessions.
func (c *Closer) EndSession(ctx context.Context, chatID int64, called bool) error {
	band := session.Current()

	history, err := c.signals.SessionToday(ctx, band)
	if err != nil {
		c.sendPlain(chatID, "Unable to send session end message for some reason. Please try again..")
		return err
	}

	if len(history) == 0 {
		if called {
			c.sendPlain(chatID, "No signal has been sent this session, so there's nothing to end")
		}
		return nil
	}

	open, err := c.signals.OpenInSession(ctx, band)
	if err != nil {
		c.sendPlain(chatID, "Unable to send session end message for some reason. Please try again..")
		return err
	}
	canEnd := len(open) == 0

	markup := &telebot.ReplyMarkup{
		InlineKeyboard: [][]telebot.InlineButton{{
			{Text: "Yes", Data: "yes"},
			{Text: "No", Data: "no"},
		}},
	}

	prompt, err := c.sendTo(chatID, "Do you want to post the session end message for "+string(band)+" session?", markup)
	if err != nil {
		c.sendPlain(chatID, "Unable to send session end message for some reason. Please try again..")
		return err
	}

	pending := &pendingClose{
		chatID:  chatID,
		band:    band,
		history: history,
		canEnd:  canEnd,
	}
	pending.timer = time.AfterFunc(c.timeout, func() {
		c.expire(prompt.ID)
	})

	c.mu.Lock()
	c.pending[prompt.ID] = pending
	c.mu.Unlock()

	return nil
}

// expire fires when the prompt timeout elapses without an answer.
func (c *Closer) expire(messageID int) {
	pending := c.take(messageID)
	if pending == nil {
		return
	}

	if !pending.canEnd {
		c.sendPlain(pending.chatID, "Session has a signal without a result, can't end session yet...")
		return
	}

	c.postSessionReport(pending)
	c.editTo(pending.chatID, messageID, "Session end message successfully posted...automatically")
	c.log.Info("session ended automatically", slog.String("session", string(pending.band)))
}

// Resolve consumes the operator's yes/no answer to an armed prompt. It
// reports whether the message id matched a pending close.
func (c *Closer) Resolve(chatID int64, messageID int, answer string) bool {
	pending := c.take(messageID)
	if pending == nil {
		return false
	}
	pending.timer.Stop()

	switch answer {
	case "yes":
		if !pending.canEnd {
			c.sendPlain(chatID, "Session has a signal without a result, can't end session yet...")
			return true
		}

		c.postSessionReport(pending)
		c.editTo(chatID, messageID, "Session end message successfully posted...")
		c.log.Info("session ended", slog.String("session", string(pending.band)))
	case "no":
		c.editTo(chatID, messageID, "Okay, but you will need to end the session manually...YOURSELF")
	}

	return true
}

func (c *Closer) take(messageID int) *pendingClose {
	c.mu.Lock()
	defer c.mu.Unlock()

	pending, ok := c.pending[messageID]
	if !ok {
		return nil
	}
	delete(c.pending, messageID)

	return pending
}

func (c *Closer) postSessionReport(pending *pendingClose) {
	caption := c.builder.SessionReport(pending.band, pending.history)

	markup := &telebot.ReplyMarkup{
		InlineKeyboard: [][]telebot.InlineButton{
			{{Text: "CREATE AN ACCOUNT HERE", URL: registerURL}},
			{{Text: "OPEN BROKER HERE", URL: registerURL}},
			{{Text: "CONTACT SUPPORT HERE", URL: supportURL}},
		},
	}

	path, ok := c.assets.ForPost(domain.CronSessionEnd)
	var err error
	if ok {
		err = c.posts.Photo(path, caption, markup)
	} else {
		err = c.posts.Text(caption, markup)
	}
	if err != nil {
		c.sendPlain(pending.chatID, "Unable to send session end message for some reason. Please try again..")
		return
	}

	// disarm the delete-and-replace chain for the consumed prompt
	c.store.Conversation(pending.chatID).LastBotMessageID = 0
}

// EndDay posts the daily report for today's signals.
func (c *Closer) EndDay(ctx context.Context, chatID int64) error {
	wait, waitErr := c.sendTo(chatID, "Please wait... curating signals")

	history, err := c.signals.Today(ctx)
	if err != nil {
		c.sendPlain(chatID, "Unable to send the day end report. Please try again..")
		return err
	}

	text := c.builder.DayReport(time.Now(), history)

	markup := &telebot.ReplyMarkup{
		InlineKeyboard: [][]telebot.InlineButton{
			{{Text: "SHARE TESTIMONY", URL: supportURL}},
			{{Text: "LEARN HOW TO TRADE", URL: tradeGuide}},
		},
	}

	if waitErr == nil && wait != nil {
		if err := c.api.Delete(wait); err != nil {
			c.log.Warn("failed to delete wait message", slog.Any("error", err))
		}
	}

	if err := c.posts.Text(text, markup); err != nil {
		c.sendPlain(chatID, "Unable to send the day end report. Please try again..")
		return err
	}

	c.sendPlain(chatID, "Day End Message Sent Successfully!")
	c.log.Info("daily report sent")

	return nil
}

// WeekReport builds the weekly summary text from the trailing seven days.
func (c *Closer) WeekReport(ctx context.Context) (string, error) {
	history, err := c.signals.LastWeek(ctx)
	if err != nil {
		return "", err
	}

	return c.builder.WeekReport(history), nil
}

func (c *Closer) sendPlain(chatID int64, text string) {
	if _, err := c.sendTo(chatID, text); err != nil {
		c.log.Error("failed to notify operator", slog.Int64("chat_id", chatID), slog.Any("error", err))
	}
}
