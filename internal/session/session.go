// Package session classifies wall-clock time into trading bands and provides
// the formatting and tallying helpers shared by the signal and report flows.
package session

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/signal-desk/halskey/internal/domain"
)

// Band is one of the three active trading windows, or OUTSIDE.
type Band string

const (
	BandOvernight Band = "OVERNIGHT"
	BandMorning   Band = "MORNING"
	BandAfternoon Band = "AFTERNOON"
	BandOutside   Band = "OUTSIDE"
)

// Band bounds in minutes since midnight, inclusive. The early morning
// (00:00–05:59) is OUTSIDE: the afternoon band ends at 23:59 and does not
// wrap across midnight.
const (
	overnightStart = 6 * 60
	overnightEnd   = 11 * 60
	morningStart   = 11*60 + 1
	morningEnd     = 17 * 60
	afternoonStart = 17*60 + 1
	afternoonEnd   = 23*60 + 59
)

// londonOffset is the fixed UTC offset of the channel's reference clock.
// Deliberately not DST-aware, matching the published schedule.
const londonOffset = 1 * time.Hour

// Classify maps minutes-since-midnight on the reference clock to a band.
func Classify(minutes int) Band {
	switch {
	case minutes >= overnightStart && minutes <= overnightEnd:
		return BandOvernight
	case minutes >= morningStart && minutes <= morningEnd:
		return BandMorning
	case minutes >= afternoonStart && minutes <= afternoonEnd:
		return BandAfternoon
	default:
		return BandOutside
	}
}

// Current returns the band for the present moment.
func Current() Band {
	return At(time.Now())
}

// At returns the band for the given instant, shifted to the reference clock.
func At(t time.Time) Band {
	local := t.UTC().Add(londonOffset)
	return Classify(local.Hour()*60 + local.Minute())
}

// ActiveBands lists the three trading bands in their fixed display order.
func ActiveBands() []Band {
	return []Band{BandOvernight, BandMorning, BandAfternoon}
}

// Icon returns the emoji the reports prefix each band with.
func (b Band) Icon() string {
	switch b {
	case BandOvernight:
		return "🌑"
	case BandMorning:
		return "🌙"
	case BandAfternoon:
		return "☀"
	default:
		return ""
	}
}

// Accuracy is a win percentage. Defined is false when there were no counted
// outcomes at all; Percentage then reads "0%".
type Accuracy struct {
	Defined    bool
	Percentage string
}

// ComputeAccuracy renders wins/(wins+losses) to two decimal places.
func ComputeAccuracy(wins, losses int) Accuracy {
	total := wins + losses
	if total == 0 {
		return Accuracy{Defined: false, Percentage: "0%"}
	}

	return Accuracy{
		Defined:    true,
		Percentage: fmt.Sprintf("%.2f%%", float64(wins)/float64(total)*100),
	}
}

// FormatDay renders t as "Monday, January 2nd, 2006".
func FormatDay(t time.Time) string {
	return fmt.Sprintf("%s, %s %d%s, %d",
		t.Weekday(), t.Month(), t.Day(), ordinalSuffix(t.Day()), t.Year())
}

func ordinalSuffix(n int) string {
	if v := n % 100; v >= 11 && v <= 13 {
		return "th"
	}

	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// NextTime adds increment minutes to h:m, carrying minutes into hours and
// wrapping hours modulo 24. The date is intentionally discarded.
func NextTime(h, m, increment int) string {
	m += increment
	if m >= 60 {
		h += m / 60
		m %= 60
	}
	h %= 24

	return fmt.Sprintf("%02d:%02d", h, m)
}

// keycap glyphs, one per decimal digit (digit + U+20E3).
var digitKeycaps = [10]string{
	"0⃣", "1⃣", "2⃣", "3⃣", "4⃣", "5⃣", "6⃣", "7⃣", "8⃣", "9⃣",
}

// Digits maps every decimal digit of s to its keycap glyph, so "12" becomes
// the 1-keycap followed by the 2-keycap. Non-digit runes are dropped.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteString(digitKeycaps[r-'0'])
		}
	}

	return b.String()
}

// Stats aggregates recorded outcomes. Signals without a result are excluded
// from both tallies and from the total.
type Stats struct {
	Wins     int
	Losses   int
	Total    int
	Accuracy string
}

// Aggregate tallies wins and losses over the given signals. The accuracy here
// uses the one-decimal form the stats summary prints.
func Aggregate(signals []domain.Signal) Stats {
	var st Stats
	for _, s := range signals {
		switch {
		case s.IsWin():
			st.Wins++
		case s.IsLoss():
			st.Losses++
		}
	}

	st.Total = st.Wins + st.Losses
	if st.Total == 0 {
		st.Accuracy = "0%"
	} else {
		st.Accuracy = fmt.Sprintf("%.1f%%", float64(st.Wins)/float64(st.Total)*100)
	}

	return st
}

// StreakKind tags a streak as a run of wins or of losses.
type StreakKind string

const (
	StreakWin  StreakKind = "win"
	StreakLoss StreakKind = "loss"
)

// Streak is a run of consecutive same-kind outcomes, newest first.
type Streak struct {
	Kind  StreakKind
	Count int
}

// CurrentStreak walks results (newest first, non-null only) and counts how
// many consecutive entries share the kind of the newest one. Empty input is
// reported as a zero-length win streak.
func CurrentStreak(results []string) Streak {
	if len(results) == 0 {
		return Streak{Kind: StreakWin, Count: 0}
	}

	newestIsWin := strings.Contains(results[0], domain.WinMarker)
	count := 0
	for _, r := range results {
		if strings.Contains(r, domain.WinMarker) != newestIsWin {
			break
		}
		count++
	}

	kind := StreakLoss
	if newestIsWin {
		kind = StreakWin
	}

	return Streak{Kind: kind, Count: count}
}

// milestones is the fixed celebration ladder, ascending.
var milestones = []int{50, 100, 250, 500, 750, 1000, 1500, 2000, 2500, 3000, 5000, 10000}

// Milestone describes where a signal total sits on the ladder.
type Milestone struct {
	Last      int
	Next      int
	Remaining int
}

// MilestoneStatus finds the greatest ladder value at or below total and the
// smallest above it. Past the top of the ladder the next target is total+100.
func MilestoneStatus(total int) Milestone {
	m := Milestone{Last: 0, Next: total + 100}
	for _, v := range milestones {
		if v <= total {
			m.Last = v
			continue
		}

		m.Next = v
		break
	}

	m.Remaining = m.Next - total
	return m
}

var pairPattern = regexp.MustCompile(`^[A-Z]{3}/[A-Z]{3} \(OTC\)$`)

// ValidPair reports whether pair has the canonical "XXX/YYY (OTC)" shape.
func ValidPair(pair string) bool {
	return pairPattern.MatchString(pair)
}
