// Package bot wires the Telegram transport: the update router, the
// middleware chain, and the handler registrations.
package bot

import (
	"fmt"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/signal-desk/halskey/internal/bot/handlers"
	"github.com/signal-desk/halskey/internal/bot/keyboard"
	apperrors "github.com/signal-desk/halskey/internal/errors"
	"github.com/signal-desk/halskey/internal/idempotency"
	"github.com/signal-desk/halskey/internal/media"
	"github.com/signal-desk/halskey/internal/poster"
	"github.com/signal-desk/halskey/internal/report"
	"github.com/signal-desk/halskey/internal/repository"
	"github.com/signal-desk/halskey/internal/signal"
	"github.com/signal-desk/halskey/internal/state"
	"github.com/signal-desk/halskey/pkg/config"
)

// Deps are the application services the handlers run against.
type Deps struct {
	Store       *state.Store
	Signals     repository.SignalRepository
	Crons       repository.CronRepository
	SignalSvc   *signal.Service
	Poster      *poster.Poster
	Closer      *report.Closer
	Builder     *report.Builder
	Watermarker *media.Watermarker
	Dedupe      idempotency.Store
	Errors      *apperrors.Handler
}

// Bot wraps telebot.Bot with the application router.
type Bot struct {
	telebot *telebot.Bot
	router  *Router
	cfg     config.Config
	log     *slog.Logger
}

// NewTelebot builds the raw telebot client so the channel-posting services
// can share it with the router.
func NewTelebot(cfg config.Config) (*telebot.Bot, error) {
	settings := telebot.Settings{
		Token: cfg.Bot.Token,
	}

	if cfg.Bot.Mode == "webhook" {
		settings.Poller = &telebot.Webhook{
			Listen: cfg.Server.Port,
		}
	} else {
		settings.Poller = &telebot.LongPoller{
			Timeout: cfg.Bot.Timeout,
		}
	}

	tb, err := telebot.NewBot(settings)
	if err != nil {
		return nil, fmt.Errorf("initialize telebot: %w", err)
	}

	return tb, nil
}

// New assembles the router over an existing telebot client.
func New(cfg config.Config, log *slog.Logger, tb *telebot.Bot, deps Deps) *Bot {
	if log == nil {
		log = slog.Default()
	}

	b := &Bot{
		telebot: tb,
		router:  NewRouter(log),
		cfg:     cfg,
		log:     log,
	}

	b.setupRouter(deps)
	b.registerTelebotHandlers()

	return b
}

// Start publishes the command menu and runs the event loop.
func (b *Bot) Start() {
	if b.telebot == nil {
		return
	}

	if err := b.telebot.SetCommands(commandMenu()); err != nil {
		b.log.Warn("failed to publish command menu", slog.Any("error", err))
	}

	b.telebot.Start()
}

// Stop gracefully stops the telegram bot.
func (b *Bot) Stop() {
	if b.telebot == nil {
		return
	}

	b.log.Info("stopping telegram bot...")
	b.telebot.Stop()
}

// Telebot exposes the underlying telebot.Bot instance.
func (b *Bot) Telebot() *telebot.Bot {
	return b.telebot
}

func (b *Bot) setupRouter(deps Deps) {
	b.router.Use(RecoveryMiddleware(b.log, deps.Errors))
	b.router.Use(DedupeMiddleware(deps.Dedupe, b.log))
	b.router.Use(ErrorHandlingMiddleware(deps.Errors))
	b.router.Use(LoggingMiddleware(b.log))
	b.router.Use(AuthMiddleware(b.cfg.Channel, b.log))
	b.router.Use(MetricsMiddleware)

	kb := keyboard.NewBuilder(b.log)
	wizard := handlers.NewWizard(deps.Store, kb, deps.SignalSvc, deps.Poster, b.log)
	results := handlers.NewResultFlow(deps.Store, kb, deps.Signals, deps.Poster, deps.Watermarker, b.log)
	reports := handlers.NewReports(deps.Closer, deps.Poster, b.log)
	milestone := handlers.NewMilestone(deps.Store, kb, deps.Signals, deps.Poster, deps.Builder, b.log)
	broadcast := handlers.NewBroadcast(deps.Store, kb, deps.Builder, deps.Poster, b.log)
	manual := handlers.NewManual(deps.Store, kb, deps.Crons, deps.Closer, deps.Poster, b.log)
	info := handlers.NewInfo(kb, b.cfg, b.log)

	b.router.RegisterCommand(CommandStart, handlers.NewStartHandler(b.log))
	b.router.RegisterCommand(CommandSignal, wizard.Command)
	b.router.RegisterCommand(CommandResult, results.Command)
	b.router.RegisterCommand(CommandEndSession, reports.EndSession)
	b.router.RegisterCommand(CommandEndDay, reports.EndDay)
	b.router.RegisterCommand(CommandReportWeek, reports.ReportWeek)
	b.router.RegisterCommand(CommandStats, handlers.NewStatsHandler(deps.Signals, deps.Builder, b.log))
	b.router.RegisterCommand(CommandMilestone, milestone.Command)
	b.router.RegisterCommand(CommandBroadcast, broadcast.Command)
	b.router.RegisterCommand(CommandManual, manual.Command)
	b.router.RegisterCommand(CommandInfo, info.Command)

	b.router.RegisterCallback(keyboard.CallbackCancel, handlers.NewCancelHandler(deps.Store, b.log))
	b.router.RegisterCallback(keyboard.CallbackRestepPairs, wizard.PairPage)
	b.router.RegisterCallback(keyboard.CallbackRestepTime, wizard.RestepTime)
	b.router.RegisterCallback(keyboard.CallbackRestepDirection, wizard.RestepDirection)
	b.router.RegisterCallback(keyboard.CallbackDirectionUp, wizard.Direction)
	b.router.RegisterCallback(keyboard.CallbackDirectionDown, wizard.Direction)
	b.router.RegisterCallback(keyboard.CallbackPostSignal, wizard.Post)

	for _, outcome := range []string{"martingale0", "martingale1", "martingale2", "martingale3", "lossBoth"} {
		b.router.RegisterCallback(outcome, results.Outcome)
	}
	b.router.RegisterCallback(keyboard.CallbackResultImage, results.AddImage)
	b.router.RegisterCallback(keyboard.CallbackSendResult, results.Send)
	b.router.RegisterCallback(keyboard.CallbackResultWithStreak, results.WithStreak)
	b.router.RegisterCallback(keyboard.CallbackResultWithoutStreak, results.WithoutStreak)

	b.router.RegisterCallback(keyboard.CallbackBroadcastConfirm, broadcast.Confirm)
	b.router.RegisterCallback(keyboard.CallbackBroadcastCancel, broadcast.Cancel)
	b.router.RegisterCallback(keyboard.CallbackYes, reports.Answer)
	b.router.RegisterCallback(keyboard.CallbackNo, reports.Answer)

	b.router.RegisterCallbackPrefix(keyboard.CallbackPairPagePrefix, wizard.PairPage)
	b.router.RegisterCallbackPrefix(keyboard.CallbackHourPrefix, wizard.Hour)
	b.router.RegisterCallbackPrefix(keyboard.CallbackMinutePrefix, wizard.Minute)
	b.router.RegisterCallbackPrefix(keyboard.CallbackMilestonePrefix, milestone.Post)
	b.router.RegisterCallbackPrefix(keyboard.CallbackConfirmManualPrefix, manual.Confirm)
	b.router.RegisterCallbackPrefix(keyboard.CallbackManualPrefix, manual.Select)
	b.router.RegisterCallbackPrefix(keyboard.CallbackInfoPrefix, info.Section)

	b.router.SetCallbackFallback(wizard.PairChosen)
	b.router.SetPhotoHandler(results.Photo)
}

func (b *Bot) registerTelebotHandlers() {
	if b.telebot == nil {
		return
	}

	b.telebot.Handle(telebot.OnText, b.router.Route)
	b.telebot.Handle(telebot.OnCallback, b.router.Route)
	b.telebot.Handle(telebot.OnPhoto, b.router.Route)
}

func commandMenu() []telebot.Command {
	return []telebot.Command{
		{Text: "signal", Description: "Post a new signal"},
		{Text: "result", Description: "Post a signal result"},
		{Text: "endsession", Description: "End the current session"},
		{Text: "endday", Description: "Post the daily report"},
		{Text: "reportweek", Description: "Post the weekly summary"},
		{Text: "stats", Description: "Performance stats"},
		{Text: "milestone", Description: "Milestone status"},
		{Text: "broadcast", Description: "Send an announcement"},
		{Text: "manual", Description: "Send a scheduled post now"},
		{Text: "info", Description: "Bot guide"},
	}
}
