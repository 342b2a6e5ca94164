package bot

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	telebot "gopkg.in/telebot.v3"

	"github.com/signal-desk/halskey/internal/bot/handlers"
	apperrors "github.com/signal-desk/halskey/internal/errors"
	"github.com/signal-desk/halskey/internal/idempotency"
	"github.com/signal-desk/halskey/pkg/config"
	"github.com/signal-desk/halskey/pkg/metrics"
)

const unauthorizedMessage = "You are not authorized to use this bot"

// dedupeTTL is how long a processed callback ID stays marked as seen.
const dedupeTTL = 24 * time.Hour

// RecoveryMiddleware catches panics, reports them via the centralized handler,
// and notifies the operator.
func RecoveryMiddleware(log *slog.Logger, errHandler *apperrors.Handler) handlers.Middleware {
	if log == nil {
		log = slog.Default()
	}

	return func(next handlers.Handler) handlers.Handler {
		if next == nil {
			return nil
		}

		return func(c telebot.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					log.Error("panic recovered in handler", slog.Any("panic", r), slog.String("stack", string(debug.Stack())))

					userMsg := "⚠️ Something went wrong. Please try again later."
					if errHandler != nil {
						appErr := apperrors.NewStateError(fmt.Sprintf("panic recovered: %v", r))
						if msg, _ := errHandler.Handle(context.Background(), appErr); msg != "" {
							userMsg = msg
						}
					}

					if c != nil {
						if sendErr := c.Send(userMsg); sendErr != nil {
							log.Error("failed to notify operator about panic", slog.Any("error", sendErr))
						}
					}

					err = nil
				}
			}()

			return next(c)
		}
	}
}

// ErrorHandlingMiddleware centralizes error reporting and operator messaging
// for handler failures.
func ErrorHandlingMiddleware(errHandler *apperrors.Handler) handlers.Middleware {
	return func(next handlers.Handler) handlers.Handler {
		if next == nil {
			return nil
		}

		return func(c telebot.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			userMsg := "Something went wrong, please try again later"
			if errHandler != nil {
				if msg, _ := errHandler.Handle(context.Background(), err); msg != "" {
					userMsg = msg
				}
			}

			if c != nil {
				_ = c.Send(userMsg)
			}

			return nil
		}
	}
}

// LoggingMiddleware logs basic telemetry about incoming updates.
func LoggingMiddleware(log *slog.Logger) handlers.Middleware {
	if log == nil {
		log = slog.Default()
	}

	return func(next handlers.Handler) handlers.Handler {
		if next == nil {
			return nil
		}

		return func(c telebot.Context) error {
			start := time.Now()
			userID := int64(0)
			if c != nil && c.Sender() != nil {
				userID = c.Sender().ID
			}

			action := updateAction(c)

			log.Info("handling update", slog.Int64("user_id", userID), slog.String("action", action))
			err := next(c)
			log.Info("handled update",
				slog.Int64("user_id", userID),
				slog.String("action", action),
				slog.Duration("duration", time.Since(start)),
				slog.Any("error", err),
			)

			return err
		}
	}
}

// AuthMiddleware rejects updates from anyone outside the admin list.
func AuthMiddleware(channel config.ChannelConfig, log *slog.Logger) handlers.Middleware {
	if log == nil {
		log = slog.Default()
	}

	return func(next handlers.Handler) handlers.Handler {
		if next == nil {
			return nil
		}

		return func(c telebot.Context) error {
			if c == nil || c.Sender() == nil {
				return nil
			}

			if !channel.IsAdmin(c.Sender().ID) {
				log.Warn("unauthorized access attempt", slog.Int64("user_id", c.Sender().ID))
				return c.Send(unauthorizedMessage)
			}

			return next(c)
		}
	}
}

// DedupeMiddleware drops callback updates Telegram redelivers, keyed by the
// callback query ID.
func DedupeMiddleware(store idempotency.Store, log *slog.Logger) handlers.Middleware {
	if store == nil {
		return func(next handlers.Handler) handlers.Handler {
			return next
		}
	}
	if log == nil {
		log = slog.Default()
	}

	return func(next handlers.Handler) handlers.Handler {
		if next == nil {
			return nil
		}

		return func(c telebot.Context) error {
			callback := c.Callback()
			if callback == nil || callback.ID == "" {
				return next(c)
			}

			first, err := store.FirstSeen(context.Background(), callback.ID, dedupeTTL)
			if err != nil {
				// fail open: a dead Redis must not silence the bot
				log.Error("dedupe check failed", slog.Any("error", err))
				return next(c)
			}
			if !first {
				log.Info("dropping redelivered callback", slog.String("callback_id", callback.ID))
				return nil
			}

			return next(c)
		}
	}
}

// MetricsMiddleware records per-update counters and latency.
func MetricsMiddleware(next handlers.Handler) handlers.Handler {
	if next == nil {
		return nil
	}

	return func(c telebot.Context) error {
		start := time.Now()
		err := next(c)

		status := "ok"
		if err != nil {
			status = "error"
		}
		metrics.RecordCommand(metricAction(c), status, time.Since(start))

		return err
	}
}

func updateAction(c telebot.Context) string {
	if c == nil {
		return ""
	}

	if cb := c.Callback(); cb != nil {
		return strings.TrimPrefix(cb.Data, "\f")
	}

	return c.Text()
}

// metricAction maps an update to a bounded label: the bare command for
// messages, a fixed token for everything else.
func metricAction(c telebot.Context) string {
	if c == nil {
		return "unknown"
	}

	if c.Callback() != nil {
		return "callback"
	}

	if text := c.Text(); strings.HasPrefix(text, "/") {
		return commandToken(text)
	}

	return "message"
}
