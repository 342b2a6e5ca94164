package handlers

import (
	"fmt"
	"log/slog"
	"strings"

	telebot "gopkg.in/telebot.v3"
)

// NewStartHandler greets the admin and points them at the command menu.
func NewStartHandler(log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		firstName := ""
		if c.Sender() != nil {
			firstName = c.Sender().FirstName
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "<strong>Hello, %s!</strong>\n\n", firstName)
		sb.WriteString("I'm <strong>Halskey</strong>, your channel bot! 📈🚀\n")
		sb.WriteString("I can help you with:\n\n")
		sb.WriteString("<strong>- 📡 Posting signals (i auto-calculate the martingales)</strong>\n")
		sb.WriteString("<strong>- 📡 Ending a trading session</strong>\n")
		sb.WriteString("<strong>- 📅 Scheduling posts to be published on your channel</strong>\n")
		sb.WriteString("<strong>- 📝 Creating posts with buttons (one or multiple)</strong>\n\n")
		sb.WriteString("<strong>There's a new menu button on your telegram input field, you can find my commands there :)</strong>\n")

		return c.Send(sb.String(), telebot.ModeHTML)
	}
}
