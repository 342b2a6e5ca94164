// Package signal renders and publishes trade signal announcements.
package signal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/signal-desk/halskey/internal/repository"
	"github.com/signal-desk/halskey/internal/session"
	"github.com/signal-desk/halskey/internal/state"
)

// ErrIncompleteDraft indicates the wizard draft is missing the entry time, so
// confirmation is a no-op.
var ErrIncompleteDraft = errors.New("signal draft has no entry time")

const (
	channelLink   = "https://t.me/gudtradewithmatthew"
	channelHandle = "ɢᴜᴅᴛʀᴀᴅᴇᴡɪᴛʜᴍᴀᴛᴛʜᴇᴡ"
	brokerLink    = "https://u3.shortink.io/register?utm_campaign=788587&utm_source=affiliate&utm_medium=sr&a=3pbc0P7XCrDr8e&ac=zik&code=50START"
)

// Service turns a completed wizard draft into the channel announcement and
// the persisted signal row.
type Service struct {
	repo repository.SignalRepository
	log  *slog.Logger
}

func NewService(repo repository.SignalRepository, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		repo: repo,
		log:  log,
	}
}

// Render builds the HTML announcement for the draft. The three martingale
// levels are offsets from the original entry time, not from each other.
func (s *Service) Render(d *state.Draft) (string, error) {
	if d == nil || !d.TimeChosen() {
		return "", ErrIncompleteDraft
	}

	hour, minute := *d.Hour, *d.Minute
	entry := fmt.Sprintf("%02d:%02d", hour, minute)
	levels := [3]string{
		session.NextTime(hour, minute, 5),
		session.NextTime(hour, minute, 10),
		session.NextTime(hour, minute, 15),
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<strong>%s</strong>\n\n", d.Pair)
	b.WriteString("<strong>🕘 ᴇxᴘɪʀᴀᴛɪᴏɴ 5ᴍ</strong>\n")
	fmt.Fprintf(&b, "<strong>⏺ Entry at %s</strong>\n\n", entry)
	fmt.Fprintf(&b, "<strong>%s</strong>\n\n", d.Direction)
	fmt.Fprintf(&b, "<strong>ᴛᴇʟᴇɢʀᴀᴍ: <a href=%q>@%s</a></strong>\n\n", channelLink, channelHandle)
	b.WriteString("<strong>🔽 ᴍᴀʀᴛɪɴɢᴀʟᴇ ʟᴇᴠᴇʟꜱ</strong>\n")
	fmt.Fprintf(&b, "<strong>1️⃣ ʟᴇᴠᴇʟ ᴀᴛ  %s</strong>\n", levels[0])
	fmt.Fprintf(&b, "<strong>2️⃣ ʟᴇᴠᴇʟ ᴀᴛ  %s</strong>\n", levels[1])
	fmt.Fprintf(&b, "<strong>3️⃣ ʟᴇᴠᴇʟ ᴀᴛ  %s</strong>\n\n", levels[2])
	fmt.Fprintf(&b, "<strong><a href=%q>💹 ᴛʀᴀᴅᴇ ᴛʜɪꜱ ꜱɪɢɴᴀʟ ʜᴇʀᴇ</a></strong>\n\n", brokerLink)

	return b.String(), nil
}

// Post renders the announcement and records the signal with a NULL result.
// The session band is captured at confirmation time, not at entry time.
func (s *Service) Post(ctx context.Context, d *state.Draft) (string, error) {
	message, err := s.Render(d)
	if err != nil {
		return "", err
	}

	band := session.Current()
	entry := fmt.Sprintf("%02d:%02d", *d.Hour, *d.Minute)

	if err := s.repo.Create(ctx, band, d.Pair, d.Direction, entry); err != nil {
		return "", fmt.Errorf("save signal: %w", err)
	}

	s.log.Info("signal recorded",
		slog.String("pair", d.Pair),
		slog.String("session", string(band)),
		slog.String("entry", entry),
	)

	return message, nil
}
