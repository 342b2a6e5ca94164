package session

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/signal-desk/halskey/internal/domain"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name     string
		minutes  int
		expected Band
	}{
		{name: "midnight is outside", minutes: 0, expected: BandOutside},
		{name: "last outside minute", minutes: 359, expected: BandOutside},
		{name: "overnight start", minutes: 360, expected: BandOvernight},
		{name: "overnight end inclusive", minutes: 660, expected: BandOvernight},
		{name: "morning start", minutes: 661, expected: BandMorning},
		{name: "morning end inclusive", minutes: 1020, expected: BandMorning},
		{name: "afternoon start", minutes: 1021, expected: BandAfternoon},
		{name: "last minute of day", minutes: 1439, expected: BandAfternoon},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Classify(tc.minutes))
		})
	}
}

func TestAt_AppliesFixedOffset(t *testing.T) {
	// 05:30 UTC is 06:30 on the reference clock: overnight, not outside.
	instant := time.Date(2025, time.March, 3, 5, 30, 0, 0, time.UTC)
	assert.Equal(t, BandOvernight, At(instant))

	// 23:30 UTC is 00:30 on the reference clock: outside, no wraparound.
	late := time.Date(2025, time.March, 3, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, BandOutside, At(late))
}

func TestNextTime(t *testing.T) {
	assert.Equal(t, "10:35", NextTime(10, 30, 5))
	assert.Equal(t, "11:05", NextTime(10, 55, 10))
	assert.Equal(t, "00:05", NextTime(23, 50, 15))
}

func TestComputeAccuracy(t *testing.T) {
	acc := ComputeAccuracy(8, 2)
	assert.True(t, acc.Defined)
	assert.Equal(t, "80.00%", acc.Percentage)

	acc = ComputeAccuracy(0, 0)
	assert.False(t, acc.Defined)
	assert.Equal(t, "0%", acc.Percentage)

	acc = ComputeAccuracy(0, 10)
	assert.True(t, acc.Defined)
	assert.Equal(t, "0.00%", acc.Percentage)
}

func TestFormatDay(t *testing.T) {
	testCases := []struct {
		date     time.Time
		expected string
	}{
		{time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), "Saturday, March 1st, 2025"},
		{time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC), "Sunday, March 2nd, 2025"},
		{time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC), "Monday, March 3rd, 2025"},
		{time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC), "Tuesday, March 4th, 2025"},
		{time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC), "Tuesday, March 11th, 2025"},
		{time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC), "Wednesday, March 12th, 2025"},
		{time.Date(2025, time.March, 13, 0, 0, 0, 0, time.UTC), "Thursday, March 13th, 2025"},
		{time.Date(2025, time.March, 21, 0, 0, 0, 0, time.UTC), "Friday, March 21st, 2025"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, FormatDay(tc.date))
	}
}

func TestDigits(t *testing.T) {
	assert.Equal(t, "7⃣", Digits("7"))
	assert.Equal(t, "1⃣2⃣", Digits("12"))
	assert.Equal(t, "0⃣", Digits("0"))
	assert.Equal(t, "", Digits(""))
}

func withResult(result string) domain.Signal {
	return domain.Signal{Result: sql.NullString{String: result, Valid: true}}
}

func TestAggregate(t *testing.T) {
	signals := []domain.Signal{
		withResult(domain.ResultDirectWin),
		withResult(domain.ResultMartingale1),
		withResult(domain.ResultMartingale2),
		withResult(domain.ResultLoss),
		{}, // open signal, excluded entirely
	}

	st := Aggregate(signals)
	assert.Equal(t, 3, st.Wins)
	assert.Equal(t, 1, st.Losses)
	assert.Equal(t, 4, st.Total)
	assert.Equal(t, "75.0%", st.Accuracy)
}

func TestAggregate_Empty(t *testing.T) {
	st := Aggregate(nil)
	assert.Equal(t, 0, st.Total)
	assert.Equal(t, "0%", st.Accuracy)
}

func TestCurrentStreak(t *testing.T) {
	assert.Equal(t, Streak{Kind: StreakWin, Count: 0}, CurrentStreak(nil))

	threeWinsThenLoss := []string{
		domain.ResultDirectWin,
		domain.ResultMartingale2,
		domain.ResultDirectWin,
		domain.ResultLoss,
	}
	assert.Equal(t, Streak{Kind: StreakWin, Count: 3}, CurrentStreak(threeWinsThenLoss))

	twoLossesThenWin := []string{
		domain.ResultLoss,
		domain.ResultLoss,
		domain.ResultDirectWin,
	}
	assert.Equal(t, Streak{Kind: StreakLoss, Count: 2}, CurrentStreak(twoLossesThenWin))
}

func TestMilestoneStatus(t *testing.T) {
	testCases := []struct {
		total     int
		last      int
		next      int
		remaining int
	}{
		{total: 25, last: 0, next: 50, remaining: 25},
		{total: 75, last: 50, next: 100, remaining: 25},
		{total: 500, last: 500, next: 750, remaining: 250},
		{total: 12000, last: 10000, next: 12100, remaining: 100},
	}

	for _, tc := range testCases {
		m := MilestoneStatus(tc.total)
		assert.Equal(t, tc.last, m.Last, "total=%d", tc.total)
		assert.Equal(t, tc.next, m.Next, "total=%d", tc.total)
		assert.Equal(t, tc.remaining, m.Remaining, "total=%d", tc.total)
	}
}

func TestValidPair(t *testing.T) {
	assert.True(t, ValidPair("EUR/USD (OTC)"))
	assert.False(t, ValidPair("EURUSD (OTC)"))
	assert.False(t, ValidPair("EUR/USD"))
	assert.False(t, ValidPair("EU/USD (OTC)"))
}
