package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signal-desk/halskey/internal/domain"
)

func TestPairsFirstPage(t *testing.T) {
	builder := NewBuilder(nil)

	markup := builder.Pairs(0)
	rows := markup.InlineKeyboard

	// 8 pair rows, a nav row, a cancel row
	require.Len(t, rows, 10)
	assert.Equal(t, "🇦🇪 AED / CNY 🇨🇳 (OTC)", rows[0][0].Text)
	assert.Equal(t, "AED/CNY (OTC)", rows[0][0].Data)

	nav := rows[8]
	require.Len(t, nav, 1)
	assert.Equal(t, "More Pairs ▶", nav[0].Text)
	assert.Equal(t, "pairs_1", nav[0].Data)

	assert.Equal(t, CallbackCancel, rows[9][0].Data)
}

func TestPairsMiddlePageNavigation(t *testing.T) {
	builder := NewBuilder(nil)

	markup := builder.Pairs(1)
	rows := markup.InlineKeyboard

	require.Len(t, rows, 9)
	nav := rows[7]
	require.Len(t, nav, 2)
	assert.Equal(t, "pairs_0", nav[0].Data)
	assert.Equal(t, "pairs_2", nav[1].Data)
}

func TestPairsLastPageFoldsBackButton(t *testing.T) {
	builder := NewBuilder(nil)

	markup := builder.Pairs(3)
	rows := markup.InlineKeyboard

	// 13 pairs: six full rows, the odd pair shares its row with back
	require.Len(t, rows, 8)
	last := rows[6]
	require.Len(t, last, 2)
	assert.Equal(t, "UAH/USD (OTC)", last[0].Data)
	assert.Equal(t, "pairs_2", last[1].Data)
}

func TestPairsOutOfRangeClampsToFirstPage(t *testing.T) {
	builder := NewBuilder(nil)

	assert.Equal(t, builder.Pairs(0).InlineKeyboard, builder.Pairs(7).InlineKeyboard)
	assert.Equal(t, builder.Pairs(0).InlineKeyboard, builder.Pairs(-1).InlineKeyboard)
}

func TestPairLabel(t *testing.T) {
	label, ok := PairLabel("EUR/USD (OTC)")
	require.True(t, ok)
	assert.Equal(t, "🇪🇺 EUR / USD 🇺🇸 (OTC)", label)

	_, ok = PairLabel("XXX/YYY (OTC)")
	assert.False(t, ok)

	_, ok = PairLabel("not a pair")
	assert.False(t, ok)
}

func TestHoursGrid(t *testing.T) {
	builder := NewBuilder(nil)

	rows := builder.Hours().InlineKeyboard
	require.Len(t, rows, 5)
	for _, row := range rows[:4] {
		assert.Len(t, row, 6)
	}

	assert.Equal(t, "hour_0", rows[0][0].Data)
	assert.Equal(t, "hour_23", rows[3][5].Data)
	assert.Equal(t, CallbackRestepPairs, rows[4][0].Data)
}

func TestMinutesGrid(t *testing.T) {
	builder := NewBuilder(nil)

	rows := builder.Minutes().InlineKeyboard
	require.Len(t, rows, 3)
	assert.Equal(t, "minute_0", rows[0][0].Data)
	assert.Equal(t, "minute_55", rows[1][5].Data)
	assert.Equal(t, CallbackRestepTime, rows[2][0].Data)
}

func TestManualMenuSkipsReportJobsInGenericRows(t *testing.T) {
	builder := NewBuilder(nil)

	jobs := []domain.CronJob{
		{CronID: "overnight_start", Name: "Overnight Start"},
		{CronID: "get_ready_morning"},
		{CronID: domain.CronSessionEnd, Name: "Session End"},
	}
	posts := []domain.CronPost{
		{MessageID: "get_ready_morning", Name: "Get Ready (Morning)"},
	}

	rows := builder.ManualMenu(jobs, posts).InlineKeyboard
	require.Len(t, rows, 4)

	generic := rows[0]
	require.Len(t, generic, 2)
	assert.Equal(t, "🌑 Overnight Start", generic[0].Text)
	assert.Equal(t, "manual_overnight_start", generic[0].Data)
	assert.Equal(t, "🔔 Get Ready (Morning)", generic[1].Text)

	assert.Equal(t, "manual_session_end", rows[1][0].Data)
	assert.Equal(t, "manual_day_end", rows[1][1].Data)
	assert.Equal(t, "manual_week_report", rows[2][0].Data)
	assert.Equal(t, CallbackCancel, rows[3][0].Data)
}

func TestInfoSectionsMarksActive(t *testing.T) {
	builder := NewBuilder(nil)

	rows := builder.InfoSections("signals").InlineKeyboard
	assert.Equal(t, "Overview", rows[0][0].Text)
	assert.Equal(t, "• Signals •", rows[0][1].Text)
}
