// Package poster publishes prepared content to the Telegram channel.
package poster

import (
	"encoding/json"
	"fmt"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/signal-desk/halskey/internal/domain"
	apperrors "github.com/signal-desk/halskey/internal/errors"
	"github.com/signal-desk/halskey/internal/media"
)

// API is the slice of the telebot client the poster and the close flows use.
type API interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
	Edit(msg telebot.Editable, what interface{}, opts ...interface{}) (*telebot.Message, error)
	Delete(msg telebot.Editable) error
}

// Instructions video dimensions, fixed by the source clip.
const (
	videoWidth  = 622
	videoHeight = 1280
)

// Poster sends channel posts. Every message goes out as HTML with link
// previews disabled.
type Poster struct {
	api     API
	channel telebot.ChatID
	assets  *media.Assets
	log     *slog.Logger
}

func New(api API, channelID int64, assets *media.Assets, log *slog.Logger) *Poster {
	if log == nil {
		log = slog.Default()
	}

	return &Poster{
		api:     api,
		channel: telebot.ChatID(channelID),
		assets:  assets,
		log:     log,
	}
}

// Text posts a plain HTML message to the channel.
func (p *Poster) Text(text string, markup *telebot.ReplyMarkup) error {
	opts := []interface{}{telebot.ModeHTML, telebot.NoPreview}
	if markup != nil {
		opts = append(opts, markup)
	}

	if _, err := p.api.Send(p.channel, text, opts...); err != nil {
		return apperrors.NewTransportError(err)
	}

	return nil
}

// Photo posts a local image with an HTML caption.
func (p *Poster) Photo(path, caption string, markup *telebot.ReplyMarkup) error {
	photo := &telebot.Photo{
		File:    telebot.FromDisk(path),
		Caption: caption,
	}

	opts := []interface{}{telebot.ModeHTML}
	if markup != nil {
		opts = append(opts, markup)
	}

	if _, err := p.api.Send(p.channel, photo, opts...); err != nil {
		return apperrors.NewTransportError(err)
	}

	return nil
}

// Video posts the instructions clip with an HTML caption.
func (p *Poster) Video(caption string, markup *telebot.ReplyMarkup) error {
	video := &telebot.Video{
		File:    telebot.FromDisk(p.assets.Video()),
		Width:   videoWidth,
		Height:  videoHeight,
		Caption: caption,
	}

	opts := []interface{}{telebot.ModeHTML}
	if markup != nil {
		opts = append(opts, markup)
	}

	if _, err := p.api.Send(p.channel, video, opts...); err != nil {
		return apperrors.NewTransportError(err)
	}

	return nil
}

// Template dispatches a stored cron post by its declared type. Video wins
// over image when a row declares both.
func (p *Poster) Template(post domain.CronPost) error {
	markup, err := parseMarkup(post.ReplyMarkup)
	if err != nil {
		return fmt.Errorf("template %q markup: %w", post.MessageID, err)
	}

	p.log.Info("posting template", slog.String("message_id", post.MessageID))

	switch {
	case post.Video:
		return p.Video(post.Text, markup)
	case post.Image:
		path, ok := p.assets.ForPost(post.MessageID)
		if !ok {
			return apperrors.NewMediaError(post.MessageID, fmt.Errorf("no asset mapped"))
		}
		return p.Photo(path, post.Text, markup)
	default:
		return p.Text(post.Text, markup)
	}
}

// parseMarkup decodes the stored inline keyboard JSON, if any.
func parseMarkup(raw []byte) (*telebot.ReplyMarkup, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var markup telebot.ReplyMarkup
	if err := json.Unmarshal(raw, &markup); err != nil {
		return nil, err
	}

	return &markup, nil
}
