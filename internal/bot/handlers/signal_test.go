package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signal-desk/halskey/internal/bot/keyboard"
	"github.com/signal-desk/halskey/internal/media"
	"github.com/signal-desk/halskey/internal/poster"
	"github.com/signal-desk/halskey/internal/signal"
	"github.com/signal-desk/halskey/internal/state"
)

func newWizard(t *testing.T, repo *fakeSignalRepo, api *fakeChannelAPI) (*Wizard, *state.Store) {
	t.Helper()

	store := state.NewStore()
	posts := poster.New(api, -100, media.NewAssets(t.TempDir()), nil)
	w := NewWizard(store, keyboard.NewBuilder(nil), signal.NewService(repo, nil), posts, nil)

	return w, store
}

func TestPostIgnoresStaleConfirm(t *testing.T) {
	repo := &fakeSignalRepo{}
	api := &fakeChannelAPI{}
	w, _ := newWizard(t, repo, api)
	tb := newStubBot(t)

	// /signal reset the draft while an old review message's confirm button
	// was still live; pressing it must do nothing
	err := w.Post(callbackContext(t, tb, 7, keyboard.CallbackPostSignal))

	require.NoError(t, err)
	assert.Empty(t, repo.creates)
	assert.Empty(t, api.sent)
}

func TestPairChosenAcceptsPairShapedDataOnly(t *testing.T) {
	testCases := []struct {
		name     string
		data     string
		wantPair string
	}{
		{name: "catalog pair gets its flagged label", data: "AED/CNY (OTC)", wantPair: "🇦🇪 AED / CNY 🇨🇳 (OTC)"},
		{name: "uncatalogued pair keeps the raw label", data: "ZZZ/XXX (OTC)", wantPair: "ZZZ/XXX (OTC)"},
		{name: "arbitrary callback data is ignored", data: "do_something", wantPair: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w, store := newWizard(t, &fakeSignalRepo{}, &fakeChannelAPI{})
			tb := newStubBot(t)

			require.NoError(t, w.PairChosen(callbackContext(t, tb, 7, tc.data)))

			conv := store.Conversation(7)
			assert.Equal(t, tc.wantPair, conv.Draft.Pair)
			if tc.wantPair != "" {
				assert.Equal(t, state.StepHourSelect, conv.Draft.Step)
			} else {
				assert.Equal(t, state.StepPairSelect, conv.Draft.Step)
			}
		})
	}
}
