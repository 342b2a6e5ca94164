package handlers

import (
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/signal-desk/halskey/internal/state"
)

// NewCancelHandler aborts whatever flow is in progress: it removes the
// pending prompt and clears all transient conversation state.
func NewCancelHandler(store *state.Store, log *slog.Logger) CallbackHandler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		if c.Sender() == nil {
			return nil
		}

		conv := store.Conversation(c.Sender().ID)
		deletePrompt(c, conv)

		conv.Draft.Reset()
		conv.Result.Reset()
		conv.PendingBroadcast = ""

		log.Info("operation canceled", slog.Int64("admin_id", conv.AdminID))
		return c.Send("Operation Canceled")
	}
}
