package bot

import (
	"testing"

	telebot "gopkg.in/telebot.v3"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signal-desk/halskey/internal/bot/handlers"
)

func TestCommandToken(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"/signal", "/signal"},
		{"/broadcast hello channel", "/broadcast"},
		{"/stats@halskey_bot", "/stats"},
		{"/broadcast@halskey_bot big news", "/broadcast"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, commandToken(tt.text))
	}
}

func TestFindCallbackHandlerPrecedence(t *testing.T) {
	router := NewRouter(nil)

	var hit string
	record := func(name string) handlers.CallbackHandler {
		return func(telebot.Context) error {
			hit = name
			return nil
		}
	}

	router.RegisterCallback("pairs_1", record("exact"))
	router.RegisterCallbackPrefix("pairs_", record("prefix"))
	router.RegisterCallbackPrefix("pa", record("broad prefix"))
	router.SetCallbackFallback(record("fallback"))

	tests := []struct {
		data string
		want string
	}{
		{"pairs_1", "exact"},
		{"pairs_2", "prefix"},
		{"pact", "broad prefix"},
		{"EUR/USD (OTC)", "fallback"},
	}

	for _, tt := range tests {
		handler := router.findCallbackHandler(tt.data)
		require.NotNil(t, handler, tt.data)
		require.NoError(t, handler(nil))
		assert.Equal(t, tt.want, hit, tt.data)
	}
}

func TestMiddlewaresApplyInRegistrationOrder(t *testing.T) {
	router := NewRouter(nil)

	var order []string
	mw := func(name string) handlers.Middleware {
		return func(next handlers.Handler) handlers.Handler {
			return func(c telebot.Context) error {
				order = append(order, name)
				return next(c)
			}
		}
	}

	router.Use(mw("outer"))
	router.Use(mw("inner"))

	err := router.executeHandler(func(telebot.Context) error {
		order = append(order, "handler")
		return nil
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}
