package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signal-desk/halskey/internal/bot/keyboard"
	"github.com/signal-desk/halskey/internal/domain"
	"github.com/signal-desk/halskey/internal/media"
	"github.com/signal-desk/halskey/internal/poster"
	"github.com/signal-desk/halskey/internal/state"
)

func newResultFlow(t *testing.T, repo *fakeSignalRepo, api *fakeChannelAPI) (*ResultFlow, *state.Store) {
	t.Helper()

	store := state.NewStore()
	posts := poster.New(api, -100, media.NewAssets(t.TempDir()), nil)
	flow := NewResultFlow(store, keyboard.NewBuilder(nil), repo, posts, nil, nil)

	return flow, store
}

func TestOutcomeRecordedBeforeChannelSend(t *testing.T) {
	var events []string
	repo := &fakeSignalRepo{events: &events, recent: []string{domain.ResultLoss}}
	api := &fakeChannelAPI{events: &events}
	flow, store := newResultFlow(t, repo, api)
	tb := newStubBot(t)

	require.NoError(t, flow.Outcome(callbackContext(t, tb, 7, "martingale1")))

	// the row is updated on the outcome choice, before anything reaches
	// the channel; cancelling afterwards leaves it updated
	assert.Equal(t, []string{"result written"}, events)
	assert.Equal(t, []string{domain.ResultMartingale1}, repo.updates)
	assert.True(t, store.Conversation(7).Result.Chosen())

	require.NoError(t, flow.Send(callbackContext(t, tb, 7, keyboard.CallbackSendResult)))

	assert.Equal(t, []string{"result written", "channel send"}, events)
	assert.False(t, store.Conversation(7).Result.Chosen())
}

func TestSendStreakPromptGating(t *testing.T) {
	win := domain.ResultDirectWin

	testCases := []struct {
		name       string
		outcome    string
		recent     []string
		wantPrompt bool
	}{
		{name: "win riding a streak of three", outcome: "martingale0", recent: []string{win, win, win}, wantPrompt: true},
		{name: "win with a short streak", outcome: "martingale0", recent: []string{win, win}, wantPrompt: false},
		{name: "loss never prompts", outcome: "lossBoth", recent: []string{win, win, win, win}, wantPrompt: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeSignalRepo{recent: tc.recent}
			api := &fakeChannelAPI{}
			flow, store := newResultFlow(t, repo, api)
			tb := newStubBot(t)

			require.NoError(t, flow.Outcome(callbackContext(t, tb, 7, tc.outcome)))
			require.NoError(t, flow.Send(callbackContext(t, tb, 7, keyboard.CallbackSendResult)))

			if tc.wantPrompt {
				assert.Empty(t, api.sent, "the streak prompt holds the channel post back")
				assert.True(t, store.Conversation(7).Result.Chosen())
			} else {
				assert.Len(t, api.sent, 1)
				assert.False(t, store.Conversation(7).Result.Chosen())
			}
		})
	}
}
