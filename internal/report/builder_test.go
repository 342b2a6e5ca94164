package report

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/signal-desk/halskey/internal/domain"
	"github.com/signal-desk/halskey/internal/session"
)

func signalAt(ts time.Time, band, pair, initialTime, result string) domain.Signal {
	s := domain.Signal{
		Session:     band,
		Timestamp:   ts,
		Pair:        pair,
		Direction:   string(domain.DirectionBuy),
		InitialTime: initialTime,
	}
	if result != "" {
		s.Result = sql.NullString{String: result, Valid: true}
	}
	return s
}

func TestSessionReport(t *testing.T) {
	b := NewBuilder()
	now := time.Now()

	signals := []domain.Signal{
		signalAt(now, "MORNING", "EUR/USD (OTC)", "12:10", domain.ResultDirectWin),
		signalAt(now, "MORNING", "GBP/JPY (OTC)", "13:25", domain.ResultMartingale2),
		signalAt(now, "MORNING", "AUD/CAD (OTC)", "14:00", domain.ResultLoss),
	}

	got := b.SessionReport(session.BandMorning, signals)

	assert.Contains(t, got, "<strong>📝 REPORT</strong>")
	assert.Contains(t, got, "🌙 MORNING SESSION")
	assert.Contains(t, got, "12:10 • EUR/USD (OTC) • ✅ WIN⁰ ✅")
	assert.Contains(t, got, "13:25 • GBP/JPY (OTC) • ✅ WIN² ✅")
	assert.Contains(t, got, "14:00 • AUD/CAD (OTC) • ❌ LOSS")
	assert.Contains(t, got, "2⃣ WINS - 1⃣ LOSS")
	assert.Contains(t, got, "Accuracy: 66.67%")
	assert.Contains(t, got, "JOIN THE NEXT TRADE SESSION")
}

func TestSessionReportSingularWin(t *testing.T) {
	b := NewBuilder()

	got := b.SessionReport(session.BandOvernight, []domain.Signal{
		signalAt(time.Now(), "OVERNIGHT", "EUR/USD (OTC)", "07:00", domain.ResultDirectWin),
	})

	assert.Contains(t, got, "1⃣ WIN - 0⃣ LOSS")
	assert.Contains(t, got, "Accuracy: 100.00%")
}

func TestDayReportGroupsByBandInFixedOrder(t *testing.T) {
	b := NewBuilder()
	day := time.Date(2026, time.March, 3, 12, 0, 0, 0, time.UTC)

	signals := []domain.Signal{
		signalAt(day, "AFTERNOON", "USD/JPY (OTC)", "19:30", domain.ResultLoss),
		signalAt(day, "OVERNIGHT", "EUR/USD (OTC)", "08:15", domain.ResultDirectWin),
	}

	got := b.DayReport(day, signals)

	assert.Contains(t, got, "<strong>🧾 DAILY REPORT</strong>")
	assert.Contains(t, got, "Tuesday, March 3rd, 2026")

	// fixed band order even when input arrives shuffled
	overnightIdx := indexOf(got, "OVERNIGHT SESSION")
	morningIdx := indexOf(got, "MORNING SESSION")
	afternoonIdx := indexOf(got, "AFTERNOON SESSION")
	assert.Less(t, overnightIdx, morningIdx)
	assert.Less(t, morningIdx, afternoonIdx)

	assert.Contains(t, got, "1⃣ WIN - 1⃣ LOSS")
	assert.Contains(t, got, "Accuracy: 50.00%")
}

func TestDayReportCountsOpenSignalAsLoss(t *testing.T) {
	b := NewBuilder()
	day := time.Now()

	got := b.DayReport(day, []domain.Signal{
		signalAt(day, "MORNING", "EUR/USD (OTC)", "12:00", ""),
	})

	assert.Contains(t, got, "0⃣ WIN - 1⃣ LOSS")
	// an open signal prints its direction instead of a result label
	assert.Contains(t, got, "12:00 • EUR/USD (OTC) • "+string(domain.DirectionBuy))
}

func TestWeekReport(t *testing.T) {
	b := NewBuilder()

	monday := time.Date(2026, time.August, 24, 10, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	signals := []domain.Signal{
		signalAt(monday, "MORNING", "EUR/USD (OTC)", "12:00", domain.ResultDirectWin),
		signalAt(monday, "MORNING", "GBP/USD (OTC)", "13:00", domain.ResultLoss),
		signalAt(tuesday, "AFTERNOON", "USD/JPY (OTC)", "18:00", domain.ResultMartingale1),
	}

	got := b.WeekReport(signals)

	assert.Contains(t, got, "#WEEKLYSUMMARY")
	assert.Contains(t, got, "FROM: <strong>Monday, August 24th, 2026.</strong>")
	assert.Contains(t, got, "TO: <strong>Tuesday, August 25th, 2026.</strong>")
	assert.Contains(t, got, "✅ Wins 1⃣ x 1⃣ Losses ❌")
	assert.Contains(t, got, "✅ Total Wins: 2")
	assert.Contains(t, got, "❌ Total Losses: 1")
	assert.Contains(t, got, "🎯 Weekly Accuracy: 66.67%")
}

func TestStatsMessage(t *testing.T) {
	b := NewBuilder()

	today := session.Stats{Wins: 3, Losses: 1, Total: 4, Accuracy: "75.0%"}
	week := session.Stats{Wins: 10, Losses: 5, Total: 15, Accuracy: "66.7%"}
	month := session.Stats{Wins: 40, Losses: 10, Total: 50, Accuracy: "80.0%"}

	got := b.StatsMessage(today, week, month, 1234, session.Streak{Kind: session.StreakWin, Count: 4})

	assert.Contains(t, got, "📊 PERFORMANCE STATS")
	assert.Contains(t, got, "├ ✅ Wins: 3")
	assert.Contains(t, got, "└ 🎯 Accuracy: 75.0%")
	assert.Contains(t, got, "ALL TIME SIGNALS: 1234")
	assert.Contains(t, got, "🔥 4 WINS IN A ROW")
}

func TestStreakText(t *testing.T) {
	tests := []struct {
		name   string
		streak session.Streak
		want   string
	}{
		{name: "no streak", streak: session.Streak{Kind: session.StreakWin, Count: 0}, want: "➖ No current streak"},
		{name: "single win", streak: session.Streak{Kind: session.StreakWin, Count: 1}, want: "🔥 1 WIN IN A ROW"},
		{name: "win run", streak: session.Streak{Kind: session.StreakWin, Count: 5}, want: "🔥 5 WINS IN A ROW"},
		{name: "loss run", streak: session.Streak{Kind: session.StreakLoss, Count: 2}, want: "❄️ 2 LOSSES IN A ROW"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StreakText(tt.streak))
		})
	}
}

func TestMilestoneMessages(t *testing.T) {
	b := NewBuilder()

	status := b.MilestoneStatusMessage(320, session.Milestone{Last: 250, Next: 500, Remaining: 180}, "80.0%")
	assert.Contains(t, status, "Total Signals: <strong>320</strong>")
	assert.Contains(t, status, "Last Milestone: <strong>250</strong>")
	assert.Contains(t, status, "Signals to go: <strong>180</strong>")

	celebration := b.MilestoneCelebration("250", "80.0%", session.Streak{Kind: session.StreakWin, Count: 3})
	assert.Contains(t, celebration, "We've hit 250 SIGNALS!")
	assert.Contains(t, celebration, "Current Streak: <strong>3 WINS</strong>")
}

func TestBroadcastTexts(t *testing.T) {
	b := NewBuilder()

	preview := b.BroadcastPreview("🎉 Special update!")
	assert.Contains(t, preview, "BROADCAST PREVIEW")
	assert.Contains(t, preview, "🎉 Special update!")

	announcement := b.Announcement("🎉 Special update!")
	assert.Contains(t, announcement, "ANNOUNCEMENT")
}

func indexOf(haystack, needle string) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return i
		}
	}
	return -1
}
