package handlers

import (
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/signal-desk/halskey/internal/bot/keyboard"
	"github.com/signal-desk/halskey/internal/poster"
	"github.com/signal-desk/halskey/internal/report"
	"github.com/signal-desk/halskey/internal/state"
)

const broadcastUsage = "Usage: /broadcast <your message>\n\nExample: /broadcast 🎉 Special announcement for today!"

// Broadcast previews and posts free-form channel announcements.
type Broadcast struct {
	store   *state.Store
	kb      *keyboard.Builder
	builder *report.Builder
	posts   *poster.Poster
	log     *slog.Logger
}

func NewBroadcast(
	store *state.Store,
	kb *keyboard.Builder,
	builder *report.Builder,
	posts *poster.Poster,
	log *slog.Logger,
) *Broadcast {
	if log == nil {
		log = slog.Default()
	}

	return &Broadcast{
		store:   store,
		kb:      kb,
		builder: builder,
		posts:   posts,
		log:     log,
	}
}

// Command stores the announcement draft and shows the preview.
func (b *Broadcast) Command(c telebot.Context) error {
	if c.Sender() == nil || c.Message() == nil {
		return nil
	}

	message := c.Message().Payload
	if message == "" {
		return c.Send(broadcastUsage)
	}

	conv := b.store.Conversation(c.Sender().ID)
	conv.PendingBroadcast = message

	return sendPrompt(c, conv, b.builder.BroadcastPreview(message), telebot.ModeHTML, b.kb.BroadcastConfirm())
}

// Confirm sends the pending announcement to the channel.
func (b *Broadcast) Confirm(c telebot.Context) error {
	if c.Sender() == nil {
		return nil
	}

	conv := b.store.Conversation(c.Sender().ID)
	if conv.PendingBroadcast == "" {
		return nil
	}

	if err := b.posts.Text(b.builder.Announcement(conv.PendingBroadcast), nil); err != nil {
		return err
	}

	conv.PendingBroadcast = ""
	b.log.Info("broadcast sent", slog.Int64("admin_id", conv.AdminID))

	return editPrompt(c, "✅ Broadcast sent successfully!")
}

// Cancel discards the pending announcement.
func (b *Broadcast) Cancel(c telebot.Context) error {
	if c.Sender() == nil {
		return nil
	}

	conv := b.store.Conversation(c.Sender().ID)
	conv.PendingBroadcast = ""

	return editPrompt(c, "❌ Broadcast cancelled.")
}
