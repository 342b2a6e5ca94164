// Package domain holds the persisted entities of the signal channel.
package domain

import (
	"database/sql"
	"strings"
	"time"
)

// Direction is the traded direction announced with a signal.
type Direction string

const (
	DirectionBuy  Direction = "🟩 BUY"
	DirectionSell Direction = "🟥 SELL"
)

// Outcome labels written to the result column. Every win label carries the
// "WIN" marker substring that the stats and streak helpers key on.
const (
	ResultDirectWin   = "✅ WIN⁰ ✅ - Direct WIN 🏆👏"
	ResultMartingale1 = "✅ WIN¹ ✅ - Victory in Martingale 1 🫵"
	ResultMartingale2 = "✅ WIN² ✅ - Victory in Martingale 2 🫵"
	ResultMartingale3 = "✅ WIN³ ✅ - Victory in Martingale 3 🫵"
	ResultLoss        = "❌ LOSS"

	// ResultLossCaption replaces the loss label when the loss post carries
	// a chart image; the channel gets the bare mark as the caption.
	ResultLossCaption = "❌"

	// WinMarker is the substring that distinguishes wins from losses.
	WinMarker = "WIN"
)

// Signal is one posted trade recommendation. Result stays NULL until the
// outcome flow updates it, exactly once.
type Signal struct {
	ID          int64
	Session     string
	Timestamp   time.Time
	Pair        string
	Direction   string
	Result      sql.NullString
	InitialTime string
	ChannelID   int64
}

// IsWin reports whether the recorded result carries the win marker. Signals
// without a result are neither wins nor losses.
func (s Signal) IsWin() bool {
	return s.Result.Valid && containsWinMarker(s.Result.String)
}

// IsLoss reports whether the signal has a non-win result recorded.
func (s Signal) IsLoss() bool {
	return s.Result.Valid && !containsWinMarker(s.Result.String)
}

// DisplayOutcome returns what the reports print for this signal: the head of
// the result label when one exists, otherwise the direction.
func (s Signal) DisplayOutcome() string {
	if !s.Result.Valid {
		return s.Direction
	}

	return headOfLabel(s.Result.String)
}

func containsWinMarker(result string) bool {
	return strings.Contains(result, WinMarker)
}

// headOfLabel cuts a result label at the first " - " separator, mirroring the
// channel's short form ("✅ WIN⁰ ✅" instead of the full sentence).
func headOfLabel(label string) string {
	head, _, _ := strings.Cut(label, " - ")
	return strings.TrimSpace(head)
}
