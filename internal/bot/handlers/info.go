package handlers

import (
	"fmt"
	"log/slog"
	"strings"

	telebot "gopkg.in/telebot.v3"

	"github.com/signal-desk/halskey/internal/bot/keyboard"
	"github.com/signal-desk/halskey/internal/session"
	"github.com/signal-desk/halskey/pkg/config"
)

const botVersion = "v3.0.0"

// Info renders the built-in operator guide with section navigation.
type Info struct {
	kb  *keyboard.Builder
	cfg config.Config
	log *slog.Logger
}

func NewInfo(kb *keyboard.Builder, cfg config.Config, log *slog.Logger) *Info {
	if log == nil {
		log = slog.Default()
	}

	return &Info{
		kb:  kb,
		cfg: cfg,
		log: log,
	}
}

// Command opens the guide at the overview section.
func (i *Info) Command(c telebot.Context) error {
	if c.Sender() == nil {
		return nil
	}

	text := i.section("overview", c.Sender().ID)
	return c.Send(text, telebot.ModeHTML, i.kb.InfoSections("overview"))
}

// Section switches the open guide to the tapped section in place.
func (i *Info) Section(c telebot.Context) error {
	if c.Sender() == nil || c.Callback() == nil {
		return nil
	}

	data := strings.TrimPrefix(c.Callback().Data, "\f")
	name := strings.TrimPrefix(data, keyboard.CallbackInfoPrefix)

	return editPrompt(c, i.section(name, c.Sender().ID), telebot.ModeHTML, i.kb.InfoSections(name))
}

func (i *Info) section(name string, adminID int64) string {
	switch name {
	case "signals":
		return i.signalsSection()
	case "scheduled":
		return i.scheduledSection()
	case "admin":
		return i.adminSection()
	default:
		return i.overviewSection(adminID)
	}
}

func (i *Info) overviewSection(adminID int64) string {
	mode := "🔴 Production"
	if i.cfg.AppEnv != "production" {
		mode = "🧪 Test Mode"
	}

	current := "None active"
	if band := session.Current(); band != session.BandOutside {
		current = string(band)
	}

	var sb strings.Builder
	sb.WriteString("<strong>🤖 TWM SIGNAL BOT</strong>\n")
	fmt.Fprintf(&sb, "<i>%s • %s</i>\n\n", botVersion, mode)
	fmt.Fprintf(&sb, "<strong>📡 Posting to:</strong> <code>%d</code>\n", i.cfg.Channel.ID)
	fmt.Fprintf(&sb, "<strong>⏰ Session:</strong> %s\n", current)
	fmt.Fprintf(&sb, "<strong>👤 Your ID:</strong> <code>%d</code>\n\n", adminID)
	sb.WriteString("<strong>━━━ QUICK START ━━━</strong>\n\n")
	sb.WriteString("1️⃣ Use /signal to post a new signal\n")
	sb.WriteString("2️⃣ Use /result after signal expires\n")
	sb.WriteString("3️⃣ Bot auto-posts scheduled messages\n\n")
	sb.WriteString("<i>Select a section below to learn more:</i>")

	return sb.String()
}

func (i *Info) signalsSection() string {
	var sb strings.Builder
	sb.WriteString("<strong>📊 SIGNAL COMMANDS</strong>\n\n")
	sb.WriteString("<strong>/signal</strong> - Post a new signal\n")
	sb.WriteString("<blockquote>Flow: Select pair → Hour → Minute → Direction → Confirm → Posted!</blockquote>\n\n")
	sb.WriteString("<strong>/result</strong> - Update signal outcome\n")
	sb.WriteString("<blockquote>Flow: Shows last signal → Select WIN (M0-M3) or LOSS → Updates channel</blockquote>\n\n")
	sb.WriteString("<strong>🔄 Signal Flow Example:</strong>\n")
	sb.WriteString("<code>/signal</code>\n")
	sb.WriteString("  ↓ Pick currency (EUR/USD)\n")
	sb.WriteString("  ↓ Pick hour (14)\n")
	sb.WriteString("  ↓ Pick minute (30)\n")
	sb.WriteString("  ↓ Pick direction (BUY/SELL)\n")
	sb.WriteString("  ↓ Confirm ✅\n")
	sb.WriteString("  ↓ Signal posted to channel!\n\n")
	sb.WriteString("<code>/result</code>\n")
	sb.WriteString("  ↓ See signal summary\n")
	sb.WriteString("  ↓ Pick: WIN M0/M1/M2/M3 or LOSS\n")
	sb.WriteString("  ↓ Result posted to channel!")

	return sb.String()
}

func (i *Info) scheduledSection() string {
	var sb strings.Builder
	sb.WriteString("<strong>⏰ SCHEDULED POSTS</strong>\n\n")
	sb.WriteString("<strong>/manual</strong> - Send scheduled messages manually\n")
	sb.WriteString("<blockquote>Sends session starts, get ready alerts, and reports on demand</blockquote>\n\n")
	sb.WriteString("<strong>🔄 Manual Post Flow:</strong>\n")
	sb.WriteString("<code>/manual</code>\n")
	sb.WriteString("  ↓ See list of all scheduled posts\n")
	sb.WriteString("  ↓ Select one to send\n")
	sb.WriteString("  ↓ Confirm sending\n")
	sb.WriteString("  ↓ Posted to channel!\n\n")
	sb.WriteString("<strong>📋 Auto-Scheduled Messages:</strong>\n")
	sb.WriteString("├ 🌑 Overnight session start\n")
	sb.WriteString("├ 🌅 Morning session start\n")
	sb.WriteString("├ ☀️ Afternoon session start\n")
	sb.WriteString("├ 🔔 Get ready alerts\n")
	sb.WriteString("├ 📝 Session end reports\n")
	sb.WriteString("└ 📊 Day end reports")

	return sb.String()
}

func (i *Info) adminSection() string {
	var sb strings.Builder
	sb.WriteString("<strong>👑 ADMIN COMMANDS</strong>\n\n")
	sb.WriteString("<strong>/stats</strong> - View performance stats\n")
	sb.WriteString("<blockquote>Shows wins, losses, accuracy for today/week/month + current streak</blockquote>\n\n")
	sb.WriteString("<strong>/broadcast</strong> - Send announcement\n")
	sb.WriteString("<blockquote>Usage: /broadcast Your message here</blockquote>\n")
	sb.WriteString("<code>/broadcast 🎉 Special update!</code>\n")
	sb.WriteString("  ↓ Preview shown\n")
	sb.WriteString("  ↓ Confirm Yes/No\n")
	sb.WriteString("  ↓ Posted to channel!\n\n")
	sb.WriteString("<strong>/milestone</strong> - Celebrate milestones\n")
	sb.WriteString("<blockquote>Shows the milestone ladder and posts a celebration</blockquote>\n")
	sb.WriteString("  ↓ Preview celebration post\n")
	sb.WriteString("  ↓ Confirm Yes/No\n")
	sb.WriteString("  ↓ Posted to channel!\n\n")
	sb.WriteString("<strong>/info</strong> - This guide")

	return sb.String()
}
