package bot

import (
	"log/slog"
	"strings"
	"sync"

	telebot "gopkg.in/telebot.v3"

	"github.com/signal-desk/halskey/internal/bot/handlers"
)

// prefixRoute is one entry of the ordered callback prefix table.
type prefixRoute struct {
	prefix  string
	handler handlers.CallbackHandler
}

// Router dispatches commands and callbacks through a single table: exact
// callback matches first, then registered prefixes in registration order,
// then the fallback for free-form data such as currency pairs.
type Router struct {
	mu          sync.RWMutex
	commands    map[string]handlers.Handler
	callbacks   map[string]handlers.CallbackHandler
	prefixes    []prefixRoute
	fallback    handlers.CallbackHandler
	photo       handlers.Handler
	middlewares []handlers.Middleware
	log         *slog.Logger
}

// NewRouter builds a Router with empty registries.
func NewRouter(log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}

	return &Router{
		commands:  make(map[string]handlers.Handler),
		callbacks: make(map[string]handlers.CallbackHandler),
		log:       log,
	}
}

// RegisterCommand registers a handler for a bot command.
func (r *Router) RegisterCommand(cmd string, h handlers.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[cmd] = h
}

// RegisterCallback registers a handler for exact callback data.
func (r *Router) RegisterCallback(data string, h handlers.CallbackHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbacks[data] = h
}

// RegisterCallbackPrefix registers a handler for a callback data prefix.
// Prefixes are tried in registration order after exact matches.
func (r *Router) RegisterCallbackPrefix(prefix string, h handlers.CallbackHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefixes = append(r.prefixes, prefixRoute{prefix: prefix, handler: h})
}

// SetCallbackFallback sets the handler for callback data nothing else claims.
func (r *Router) SetCallbackFallback(h handlers.CallbackHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = h
}

// SetPhotoHandler sets the handler for incoming photos.
func (r *Router) SetPhotoHandler(h handlers.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.photo = h
}

// Use appends a middleware to the chain.
func (r *Router) Use(mw handlers.Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middlewares = append(r.middlewares, mw)
}

// Route directs the incoming update to the appropriate handler.
func (r *Router) Route(c telebot.Context) error {
	if c == nil {
		return nil
	}

	if callback := c.Callback(); callback != nil {
		return r.handleCallback(c, callback.Data)
	}

	if msg := c.Message(); msg != nil && msg.Photo != nil {
		return r.handlePhoto(c)
	}

	return r.handleMessage(c)
}

func (r *Router) handleCallback(c telebot.Context, data string) error {
	// telebot prefixes data from its own markup helpers
	data = strings.TrimPrefix(data, "\f")

	handler := r.findCallbackHandler(data)
	if handler == nil {
		r.log.Info("no callback handler found", "data", data)
		return nil
	}

	return r.executeHandler(handlers.Handler(handler), c)
}

func (r *Router) handlePhoto(c telebot.Context) error {
	r.mu.RLock()
	handler := r.photo
	r.mu.RUnlock()

	if handler == nil {
		return nil
	}

	return r.executeHandler(handler, c)
}

func (r *Router) handleMessage(c telebot.Context) error {
	text := c.Text()
	if !strings.HasPrefix(text, "/") {
		return nil
	}

	if handler := r.getCommandHandler(commandToken(text)); handler != nil {
		return r.executeHandler(handler, c)
	}

	return nil
}

// commandToken extracts the bare command from a message text, stripping the
// payload and any @botname suffix.
func commandToken(text string) string {
	cmd, _, _ := strings.Cut(text, " ")
	cmd, _, _ = strings.Cut(cmd, "@")
	return cmd
}

func (r *Router) executeHandler(h handlers.Handler, c telebot.Context) error {
	wrapped := r.applyMiddlewares(h)
	if wrapped == nil {
		return nil
	}
	return wrapped(c)
}

func (r *Router) findCallbackHandler(data string) handlers.CallbackHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if handler, ok := r.callbacks[data]; ok {
		return handler
	}

	for _, route := range r.prefixes {
		if strings.HasPrefix(data, route.prefix) {
			return route.handler
		}
	}

	return r.fallback
}

func (r *Router) getCommandHandler(cmd string) handlers.Handler {
	r.mu.RLock()
	handler := r.commands[cmd]
	r.mu.RUnlock()
	return handler
}

// applyMiddlewares wraps the handler with all registered middlewares.
func (r *Router) applyMiddlewares(h handlers.Handler) handlers.Handler {
	if h == nil {
		return nil
	}

	middlewares := r.middlewaresSnapshot()
	wrapped := h
	for i := len(middlewares) - 1; i >= 0; i-- {
		wrapped = middlewares[i](wrapped)
	}

	return wrapped
}

func (r *Router) middlewaresSnapshot() []handlers.Middleware {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.middlewares) == 0 {
		return nil
	}

	snapshot := make([]handlers.Middleware, len(r.middlewares))
	copy(snapshot, r.middlewares)
	return snapshot
}
