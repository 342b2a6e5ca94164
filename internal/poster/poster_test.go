package poster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	telebot "gopkg.in/telebot.v3"

	"github.com/signal-desk/halskey/internal/domain"
	"github.com/signal-desk/halskey/internal/media"
)

type fakeAPI struct {
	sent []interface{}
	opts [][]interface{}
}

func (f *fakeAPI) Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error) {
	f.sent = append(f.sent, what)
	f.opts = append(f.opts, opts)
	return &telebot.Message{ID: len(f.sent)}, nil
}

func (f *fakeAPI) Edit(msg telebot.Editable, what interface{}, opts ...interface{}) (*telebot.Message, error) {
	return &telebot.Message{}, nil
}

func (f *fakeAPI) Delete(msg telebot.Editable) error { return nil }

func newTestPoster() (*Poster, *fakeAPI) {
	api := &fakeAPI{}
	return New(api, -100123, media.NewAssets("/media"), nil), api
}

func TestTemplateText(t *testing.T) {
	p, api := newTestPoster()

	err := p.Template(domain.CronPost{MessageID: "announcement", Text: "hello"})
	require.NoError(t, err)
	require.Len(t, api.sent, 1)
	assert.Equal(t, "hello", api.sent[0])
}

func TestTemplateImage(t *testing.T) {
	p, api := newTestPoster()

	err := p.Template(domain.CronPost{MessageID: "gen_info_morning", Text: "caption", Image: true})
	require.NoError(t, err)
	require.Len(t, api.sent, 1)

	photo, ok := api.sent[0].(*telebot.Photo)
	require.True(t, ok)
	assert.Equal(t, "caption", photo.Caption)
	assert.Contains(t, photo.FileLocal, "gen_info_morning.jpg")
}

func TestTemplateImageUnknownAsset(t *testing.T) {
	p, api := newTestPoster()

	err := p.Template(domain.CronPost{MessageID: "mystery_post", Image: true})
	assert.Error(t, err)
	assert.Empty(t, api.sent)
}

func TestTemplateVideo(t *testing.T) {
	p, api := newTestPoster()

	err := p.Template(domain.CronPost{MessageID: "instructions", Text: "watch this", Video: true})
	require.NoError(t, err)
	require.Len(t, api.sent, 1)

	video, ok := api.sent[0].(*telebot.Video)
	require.True(t, ok)
	assert.Equal(t, videoWidth, video.Width)
	assert.Equal(t, videoHeight, video.Height)
}

func TestTemplateMarkup(t *testing.T) {
	p, api := newTestPoster()

	raw := []byte(`{"inline_keyboard":[[{"text":"JOIN","url":"https://example.com"}]]}`)
	err := p.Template(domain.CronPost{MessageID: "announcement", Text: "hello", ReplyMarkup: raw})
	require.NoError(t, err)
	require.Len(t, api.opts, 1)

	var markup *telebot.ReplyMarkup
	for _, opt := range api.opts[0] {
		if m, ok := opt.(*telebot.ReplyMarkup); ok {
			markup = m
		}
	}
	require.NotNil(t, markup)
	require.Len(t, markup.InlineKeyboard, 1)
	assert.Equal(t, "JOIN", markup.InlineKeyboard[0][0].Text)
}

func TestTemplateBadMarkup(t *testing.T) {
	p, api := newTestPoster()

	err := p.Template(domain.CronPost{MessageID: "announcement", Text: "hello", ReplyMarkup: []byte("{")})
	assert.Error(t, err)
	assert.Empty(t, api.sent)
}
