// Package keyboard builds the inline keyboards for the admin dialogue: the
// signal wizard grids, the result flow, and the admin menus.
package keyboard

import (
	"log/slog"
	"strconv"
	"strings"

	telebot "gopkg.in/telebot.v3"

	"github.com/signal-desk/halskey/internal/domain"
)

// Builder creates inline keyboards for each step of the admin dialogue.
type Builder struct {
	log *slog.Logger
}

// NewBuilder returns a new Builder instance.
func NewBuilder(log *slog.Logger) *Builder {
	return &Builder{log: log}
}

// Hours builds the 24-hour entry grid, six buttons per row.
func (b *Builder) Hours() *telebot.ReplyMarkup {
	var rows [][]telebot.InlineButton
	row := make([]telebot.InlineButton, 0, 6)
	for hour := 0; hour < 24; hour++ {
		row = append(row, telebot.InlineButton{
			Text: strconv.Itoa(hour),
			Data: CallbackHourPrefix + strconv.Itoa(hour),
		})
		if len(row) == 6 {
			rows = append(rows, row)
			row = make([]telebot.InlineButton, 0, 6)
		}
	}

	rows = append(rows, []telebot.InlineButton{{Text: "◀ Back", Data: CallbackRestepPairs}})

	markup := &telebot.ReplyMarkup{}
	markup.InlineKeyboard = rows
	return markup
}

// Minutes builds the minute grid in 5-minute increments.
func (b *Builder) Minutes() *telebot.ReplyMarkup {
	var rows [][]telebot.InlineButton
	row := make([]telebot.InlineButton, 0, 6)
	for i := 0; i < 12; i++ {
		minute := i * 5
		row = append(row, telebot.InlineButton{
			Text: strconv.Itoa(minute),
			Data: CallbackMinutePrefix + strconv.Itoa(minute),
		})
		if len(row) == 6 {
			rows = append(rows, row)
			row = make([]telebot.InlineButton, 0, 6)
		}
	}

	rows = append(rows, []telebot.InlineButton{{Text: "◀", Data: CallbackRestepTime}})

	markup := &telebot.ReplyMarkup{}
	markup.InlineKeyboard = rows
	return markup
}

// Directions builds the BUY/SELL choice.
func (b *Builder) Directions() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	markup.InlineKeyboard = [][]telebot.InlineButton{
		{
			{Text: string(domain.DirectionBuy), Data: CallbackDirectionUp},
			{Text: string(domain.DirectionSell), Data: CallbackDirectionDown},
		},
		{
			{Text: "◀ Back", Data: CallbackHourPrefix + "0"},
		},
	}
	return markup
}

// Review builds the confirmation step with per-field back navigation.
func (b *Builder) Review() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	markup.InlineKeyboard = [][]telebot.InlineButton{
		{
			{Text: "Correct ✅", Data: CallbackPostSignal},
		},
		{
			{Text: "◀ Pairs", Data: CallbackRestepPairs},
			{Text: "◀ Time", Data: CallbackRestepTime},
			{Text: "◀ Direction", Data: CallbackRestepDirection},
		},
	}
	return markup
}

// ResultOptions builds the outcome choice list shown on /result.
func (b *Builder) ResultOptions() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	markup.InlineKeyboard = [][]telebot.InlineButton{
		{{Text: "✅ WIN⁰ ✅ - Direct WIN 🏆👏", Data: "martingale0"}},
		{{Text: "✅ WIN¹ ✅ - Victory in Martingale 1 ☝", Data: "martingale1"}},
		{{Text: "✅ WIN² ✅ - Victory in Martingale 2 ☝", Data: "martingale2"}},
		{{Text: "✅ WIN³ ✅ - Victory in Martingale 3 ☝", Data: "martingale3"}},
		{{Text: "LOSS ❌", Data: "lossBoth"}},
		{{Text: "Cancel Operation", Data: CallbackCancel}},
	}
	return markup
}

// ResultNext builds the follow-up after an outcome has been chosen.
func (b *Builder) ResultNext() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	markup.InlineKeyboard = [][]telebot.InlineButton{
		{{Text: "🖼 Add Image", Data: CallbackResultImage}},
		{{Text: "⏫ Just Send", Data: CallbackSendResult}},
		{{Text: "Cancel Operation", Data: CallbackCancel}},
	}
	return markup
}

// SendOrCancel builds the dispatch choice after an image has been saved.
func (b *Builder) SendOrCancel() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	markup.InlineKeyboard = [][]telebot.InlineButton{
		{{Text: "⏫ Send to Channel", Data: CallbackSendResult}},
		{{Text: "Cancel Operation", Data: CallbackCancel}},
	}
	return markup
}

// StreakChoice asks whether to append the running win streak to the result.
func (b *Builder) StreakChoice() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	markup.InlineKeyboard = [][]telebot.InlineButton{
		{
			{Text: "✅ Yes, include streak", Data: CallbackResultWithStreak},
			{Text: "❌ No, just result", Data: CallbackResultWithoutStreak},
		},
	}
	return markup
}

// BroadcastConfirm builds the broadcast preview confirmation.
func (b *Builder) BroadcastConfirm() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	markup.InlineKeyboard = [][]telebot.InlineButton{
		{
			{Text: "✅ Send to Channel", Data: CallbackBroadcastConfirm},
			{Text: "❌ Cancel", Data: CallbackBroadcastCancel},
		},
	}
	return markup
}

// MilestoneActions offers posting the last reached milestone, if any.
func (b *Builder) MilestoneActions(last int) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	if last > 0 {
		markup.InlineKeyboard = append(markup.InlineKeyboard, []telebot.InlineButton{{
			Text: "🎉 Post \"" + strconv.Itoa(last) + " Signals\" Milestone",
			Data: CallbackMilestonePrefix + strconv.Itoa(last),
		}})
	}
	markup.InlineKeyboard = append(markup.InlineKeyboard, []telebot.InlineButton{{
		Text: "Cancel",
		Data: CallbackCancel,
	}})
	return markup
}

// manualEmoji picks the menu icon for a scheduled post by its cron id.
func manualEmoji(cronID string) string {
	switch {
	case strings.Contains(cronID, "night"):
		return "🌑"
	case strings.Contains(cronID, "morning"):
		return "🌅"
	case strings.Contains(cronID, "noon") || strings.Contains(cronID, "afternoon"):
		return "☀️"
	case strings.Contains(cronID, "ready"):
		return "🔔"
	case strings.Contains(cronID, "start"):
		return "▶️"
	default:
		return "📄"
	}
}

// ManualMenu lists every scheduled post plus the report flows. The two
// report jobs are excluded from the generic rows and offered explicitly.
func (b *Builder) ManualMenu(jobs []domain.CronJob, posts []domain.CronPost) *telebot.ReplyMarkup {
	names := make(map[string]string, len(posts))
	for _, post := range posts {
		names[post.MessageID] = post.Name
	}

	var rows [][]telebot.InlineButton
	row := make([]telebot.InlineButton, 0, 2)
	for _, job := range jobs {
		if job.CronID == domain.CronSessionEnd || job.CronID == domain.CronDayEnd {
			continue
		}

		name := names[job.CronID]
		if name == "" {
			name = job.Name
		}
		if name == "" {
			name = strings.ReplaceAll(job.CronID, "_", " ")
		}

		row = append(row, telebot.InlineButton{
			Text: manualEmoji(job.CronID) + " " + name,
			Data: CallbackManualPrefix + job.CronID,
		})
		if len(row) == 2 {
			rows = append(rows, row)
			row = make([]telebot.InlineButton, 0, 2)
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	rows = append(rows,
		[]telebot.InlineButton{
			{Text: "📝 Session End Report", Data: CallbackManualPrefix + domain.CronSessionEnd},
			{Text: "📊 Day End Report", Data: CallbackManualPrefix + domain.CronDayEnd},
		},
		[]telebot.InlineButton{
			{Text: "📈 Weekly Report", Data: CallbackManualPrefix + "week_report"},
		},
		[]telebot.InlineButton{
			{Text: "Cancel", Data: CallbackCancel},
		},
	)

	markup := &telebot.ReplyMarkup{}
	markup.InlineKeyboard = rows
	return markup
}

// ManualConfirm asks for a second click before a manual channel post.
func (b *Builder) ManualConfirm(postType string) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	markup.InlineKeyboard = [][]telebot.InlineButton{
		{
			{Text: "✅ Yes, Send", Data: CallbackConfirmManualPrefix + postType},
			{Text: "❌ Cancel", Data: CallbackCancel},
		},
	}
	return markup
}

// InfoSections builds the guide navigation with the active section marked.
func (b *Builder) InfoSections(active string) *telebot.ReplyMarkup {
	label := func(section, text string) string {
		if section == active {
			return "• " + text + " •"
		}
		return text
	}

	markup := &telebot.ReplyMarkup{}
	markup.InlineKeyboard = [][]telebot.InlineButton{
		{
			{Text: label("overview", "Overview"), Data: CallbackInfoPrefix + "overview"},
			{Text: label("signals", "Signals"), Data: CallbackInfoPrefix + "signals"},
		},
		{
			{Text: label("scheduled", "Scheduled"), Data: CallbackInfoPrefix + "scheduled"},
			{Text: label("admin", "Admin"), Data: CallbackInfoPrefix + "admin"},
		},
		{
			{Text: "✖ Close", Data: CallbackCancel},
		},
	}
	return markup
}
