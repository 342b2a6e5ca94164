// Package report builds the channel performance summaries and runs the
// session and day close flows.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/signal-desk/halskey/internal/domain"
	"github.com/signal-desk/halskey/internal/session"
)

const (
	reportDivider = "➖➖➖➖➖➖➖➖➖➖➖➖➖➖➖"
	weekDivider   = "➖➖➖➖➖➖➖➖➖➖➖➖➖"

	reportFooter = "<strong>JOIN THE NEXT TRADE SESSION CLICK THE LINK BELOW 👇</strong>"
)

// Builder renders report texts. It is stateless; all data comes in as
// arguments so the renderers stay trivially testable.
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

// tally counts wins against everything else. Reports treat a missing result
// as a loss; the session close flow guarantees none remain by the time a
// session report is built.
func tally(signals []domain.Signal) (wins, losses int) {
	for _, s := range signals {
		if s.IsWin() {
			wins++
		} else {
			losses++
		}
	}

	return wins, losses
}

func winsWord(n int) string {
	if n > 1 {
		return "WINS"
	}
	return "WIN"
}

func lossesWord(n int) string {
	if n > 1 {
		return "LOSSES"
	}
	return "LOSS"
}

func scoreline(wins, losses int) string {
	return fmt.Sprintf("<strong>%s %s - %s %s</strong>\n\n",
		session.Digits(fmt.Sprint(wins)), winsWord(wins),
		session.Digits(fmt.Sprint(losses)), lossesWord(losses),
	)
}

// SessionReport renders the caption for the session end photo post.
func (b *Builder) SessionReport(band session.Band, signals []domain.Signal) string {
	wins, losses := tally(signals)

	var sb strings.Builder
	sb.WriteString("<strong>📝 REPORT</strong>\n")
	fmt.Fprintf(&sb, "<strong>%s %s SESSION</strong>\n\n", band.Icon(), band)

	sb.WriteString("<blockquote>")
	for _, s := range signals {
		fmt.Fprintf(&sb, "<code><strong>%s • %s • %s</strong></code>\n", s.InitialTime, s.Pair, s.DisplayOutcome())
	}
	sb.WriteString("</blockquote>\n")

	sb.WriteString(scoreline(wins, losses))
	fmt.Fprintf(&sb, "<strong>❇️ Accuracy: %s</strong>\n\n", session.ComputeAccuracy(wins, losses).Percentage)
	sb.WriteString(reportFooter)

	return sb.String()
}

// DayReport renders the daily summary, grouped by session band in the fixed
// band order regardless of which bands actually saw signals.
func (b *Builder) DayReport(day time.Time, signals []domain.Signal) string {
	wins, losses := tally(signals)

	var sb strings.Builder
	sb.WriteString("<strong>🧾 DAILY REPORT</strong>\n")
	fmt.Fprintf(&sb, "<strong>🗓 %s</strong>\n\n", session.FormatDay(day))
	sb.WriteString("<pre>\n")

	for _, band := range session.ActiveBands() {
		fmt.Fprintf(&sb, "<strong>%s SESSION</strong>\n<strong><code>%s</code></strong>\n", band, reportDivider)
		for _, s := range signals {
			if s.Session != string(band) {
				continue
			}
			fmt.Fprintf(&sb, "<strong><code>%s • %s • %s</code></strong>\n", s.InitialTime, s.Pair, s.DisplayOutcome())
		}
		sb.WriteString("\n")
	}

	sb.WriteString("</pre>\n")
	sb.WriteString(scoreline(wins, losses))
	fmt.Fprintf(&sb, "<strong>❇️ Accuracy: %s</strong>\n\n", session.ComputeAccuracy(wins, losses).Percentage)
	sb.WriteString(reportFooter)

	return sb.String()
}

// WeekReport renders the weekly summary. Days appear in the order their
// first signal occurs in the input, which the repository returns oldest
// first.
func (b *Builder) WeekReport(signals []domain.Signal) string {
	days := make([]string, 0)
	byDay := make(map[string][]domain.Signal)
	for _, s := range signals {
		day := session.FormatDay(s.Timestamp)
		if _, ok := byDay[day]; !ok {
			days = append(days, day)
		}
		byDay[day] = append(byDay[day], s)
	}

	var from, to string
	if len(days) > 0 {
		from, to = days[0], days[len(days)-1]
	}

	var totalWins, totalLosses int

	var sb strings.Builder
	sb.WriteString("<strong>🧾 #WEEKLYSUMMARY</strong>\n\n")
	fmt.Fprintf(&sb, "🗓 FROM: <strong>%s.</strong>\n", from)
	fmt.Fprintf(&sb, "🗓 TO: <strong>%s.</strong>\n\n", to)

	sb.WriteString("<pre>")
	for _, day := range days {
		wins, losses := tally(byDay[day])
		totalWins += wins
		totalLosses += losses

		fmt.Fprintf(&sb, "<strong>%s.</strong>\n", day)
		fmt.Fprintf(&sb, "<strong>%s</strong>\n", weekDivider)
		fmt.Fprintf(&sb, "<strong>✅ Wins %s x %s Losses ❌</strong>\n",
			session.Digits(fmt.Sprint(wins)), session.Digits(fmt.Sprint(losses)))
		fmt.Fprintf(&sb, "<strong>❇️ Accuracy: %s</strong>\n\n", session.ComputeAccuracy(wins, losses).Percentage)
	}
	sb.WriteString("</pre>\n")

	sb.WriteString("<strong>🥇 <u>OVERALL WEEKLY PERFORMANCE</u></strong>\n")
	fmt.Fprintf(&sb, "<strong>%s</strong>\n", weekDivider)
	fmt.Fprintf(&sb, "✅ Total Wins: %d\n", totalWins)
	fmt.Fprintf(&sb, "❌ Total Losses: %d\n\n", totalLosses)
	fmt.Fprintf(&sb, "🎯 Weekly Accuracy: %s", session.ComputeAccuracy(totalWins, totalLosses).Percentage)

	return sb.String()
}

// streakWord names the streak kind, pluralized.
func streakWord(streak session.Streak) string {
	if streak.Kind == session.StreakWin {
		return winsWord(streak.Count)
	}
	return lossesWord(streak.Count)
}

// StreakText formats the current streak line for the stats summary.
func StreakText(streak session.Streak) string {
	if streak.Count == 0 {
		return "➖ No current streak"
	}

	emoji := "❄️"
	if streak.Kind == session.StreakWin {
		emoji = "🔥"
	}

	return fmt.Sprintf("%s %d %s IN A ROW", emoji, streak.Count, streakWord(streak))
}

// StatsMessage renders the operator's performance overview.
func (b *Builder) StatsMessage(today, week, month session.Stats, allTime int, streak session.Streak) string {
	section := func(sb *strings.Builder, header string, st session.Stats) {
		fmt.Fprintf(sb, "<strong>%s</strong>\n", header)
		fmt.Fprintf(sb, "├ ✅ Wins: %d\n", st.Wins)
		fmt.Fprintf(sb, "├ ❌ Losses: %d\n", st.Losses)
		fmt.Fprintf(sb, "├ 📈 Total: %d\n", st.Total)
		fmt.Fprintf(sb, "└ 🎯 Accuracy: %s\n\n", st.Accuracy)
	}

	var sb strings.Builder
	sb.WriteString("<strong>📊 PERFORMANCE STATS</strong>\n\n")
	section(&sb, "📅 TODAY", today)
	section(&sb, "📆 THIS WEEK", week)
	section(&sb, "🗓 THIS MONTH", month)
	fmt.Fprintf(&sb, "<strong>🏆 ALL TIME SIGNALS: %d</strong>\n", allTime)
	fmt.Fprintf(&sb, "<strong>%s</strong>", StreakText(streak))

	return sb.String()
}

// MilestoneStatusMessage renders the milestone overview shown to the
// operator before they choose to post a celebration.
func (b *Builder) MilestoneStatusMessage(total int, m session.Milestone, monthAccuracy string) string {
	var sb strings.Builder
	sb.WriteString("<strong>🏆 MILESTONE STATUS</strong>\n\n")
	fmt.Fprintf(&sb, "📊 Total Signals: <strong>%d</strong>\n", total)
	fmt.Fprintf(&sb, "✅ Last Milestone: <strong>%d</strong>\n", m.Last)
	fmt.Fprintf(&sb, "🎯 Next Milestone: <strong>%d</strong>\n", m.Next)
	fmt.Fprintf(&sb, "📈 Signals to go: <strong>%d</strong>\n\n", m.Remaining)
	fmt.Fprintf(&sb, "🎯 Month Accuracy: <strong>%s</strong>", monthAccuracy)

	return sb.String()
}

// MilestoneCelebration renders the channel celebration post.
func (b *Builder) MilestoneCelebration(milestone string, monthAccuracy string, streak session.Streak) string {
	var sb strings.Builder
	sb.WriteString("<strong>🎉🏆 MILESTONE REACHED! 🏆🎉</strong>\n\n")
	fmt.Fprintf(&sb, "<strong>We've hit %s SIGNALS!</strong>\n\n", milestone)
	fmt.Fprintf(&sb, "📊 Monthly Accuracy: <strong>%s</strong>\n", monthAccuracy)
	fmt.Fprintf(&sb, "🔥 Current Streak: <strong>%d %s</strong>\n\n", streak.Count, streakWord(streak))
	sb.WriteString("<strong>Thank you for trading with us! 🙏</strong>\n")
	sb.WriteString("<strong>More wins coming your way! 💰</strong>")

	return sb.String()
}

// BroadcastPreview renders the confirmation shown to the operator before an
// announcement goes out.
func (b *Builder) BroadcastPreview(message string) string {
	return fmt.Sprintf("<strong>📢 BROADCAST PREVIEW</strong>\n\n%s\n\n<i>Do you want to send this to the channel?</i>", message)
}

// Announcement renders the channel-facing broadcast.
func (b *Builder) Announcement(message string) string {
	return fmt.Sprintf("📢 <strong>ANNOUNCEMENT</strong>\n\n%s", message)
}

// StreakSuffix is appended to a result post when the operator chooses to
// include the running win streak.
func StreakSuffix(count int) string {
	return fmt.Sprintf("\n\n🔥 <strong>%d WINS IN A ROW!</strong> 🔥", count)
}

// StreakPrompt asks the operator whether the streak should ride along with
// the result post.
func StreakPrompt(count int) string {
	return fmt.Sprintf("🔥 You have a <strong>%d WIN STREAK!</strong>\n\nDo you want to include this in the result post?", count)
}
