package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	telebot "gopkg.in/telebot.v3"

	"github.com/stretchr/testify/require"

	"github.com/signal-desk/halskey/internal/domain"
	"github.com/signal-desk/halskey/internal/session"
)

// roundTripFunc stubs the Telegram HTTP API inside the telebot client.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// newStubBot returns an offline telebot client whose API calls succeed
// without touching the network.
func newStubBot(t *testing.T) *telebot.Bot {
	t.Helper()

	client := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		body := `{"ok":true,"result":{"message_id":7,"chat":{"id":7,"type":"private"}}}`
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     make(http.Header),
		}, nil
	})}

	tb, err := telebot.NewBot(telebot.Settings{
		Token:   "test-token",
		Offline: true,
		Client:  client,
	})
	require.NoError(t, err)

	return tb
}

// callbackContext builds the context telebot would hand a handler for an
// inline button press from the given admin.
func callbackContext(t *testing.T, tb *telebot.Bot, adminID int64, data string) telebot.Context {
	t.Helper()

	return tb.NewContext(telebot.Update{
		Callback: &telebot.Callback{
			ID:     "cb-" + data,
			Sender: &telebot.User{ID: adminID},
			Message: &telebot.Message{
				ID:   3,
				Chat: &telebot.Chat{ID: adminID},
			},
			Data: data,
		},
	})
}

// fakeSignalRepo records writes and serves canned reads. The shared events
// slice lets tests assert ordering across the repository and the channel.
type fakeSignalRepo struct {
	events  *[]string
	creates []string
	updates []string
	recent  []string
}

func (r *fakeSignalRepo) Create(ctx context.Context, band session.Band, pair, direction, initialTime string) error {
	r.creates = append(r.creates, pair)
	return nil
}

func (r *fakeSignalRepo) UpdateLatestResult(ctx context.Context, result string) error {
	if r.events != nil {
		*r.events = append(*r.events, "result written")
	}
	r.updates = append(r.updates, result)
	return nil
}

func (r *fakeSignalRepo) Today(ctx context.Context) ([]domain.Signal, error)     { return nil, nil }
func (r *fakeSignalRepo) LastWeek(ctx context.Context) ([]domain.Signal, error)  { return nil, nil }
func (r *fakeSignalRepo) LastMonth(ctx context.Context) ([]domain.Signal, error) { return nil, nil }

func (r *fakeSignalRepo) SessionToday(ctx context.Context, band session.Band) ([]domain.Signal, error) {
	return nil, nil
}

func (r *fakeSignalRepo) OpenInSession(ctx context.Context, band session.Band) ([]domain.Signal, error) {
	return nil, nil
}

func (r *fakeSignalRepo) RecentResults(ctx context.Context, limit int) ([]string, error) {
	return r.recent, nil
}

func (r *fakeSignalRepo) TotalCount(ctx context.Context) (int, error) { return len(r.recent), nil }

// fakeChannelAPI records channel posts instead of sending them.
type fakeChannelAPI struct {
	events *[]string
	sent   []interface{}
}

func (a *fakeChannelAPI) Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error) {
	if a.events != nil {
		*a.events = append(*a.events, "channel send")
	}
	a.sent = append(a.sent, what)
	return &telebot.Message{ID: 1}, nil
}

func (a *fakeChannelAPI) Edit(msg telebot.Editable, what interface{}, opts ...interface{}) (*telebot.Message, error) {
	return &telebot.Message{ID: 1}, nil
}

func (a *fakeChannelAPI) Delete(msg telebot.Editable) error { return nil }
