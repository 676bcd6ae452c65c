package bot

import (
	"context"
	"strings"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"

	"github.com/bot-kit/registration-service/internal/config"
	"github.com/bot-kit/registration-service/internal/observability"
	"github.com/bot-kit/registration-service/internal/texts"
)

// Options bundles dependencies for bot construction.
type Options struct {
	Config   config.BotConfig
	Logger   *zap.Logger
	Metrics  *observability.Metrics
	Sessions SessionFactory
	Texts    *texts.Bundle
	Handler  *Handler

	// BaseCtx is the process lifecycle context; per-update sessions inherit
	// it so shutdown still releases them.
	BaseCtx context.Context

	// Offline skips the Telegram getMe call. Tests only.
	Offline bool
}

// New builds the bot, wires the middleware chain and registers handlers.
func New(opts Options) (*tele.Bot, error) {
	logger := opts.Logger

	pref := tele.Settings{
		Token:     opts.Config.Token,
		ParseMode: parseMode(opts.Config.ParseMode),
		Poller:    &tele.LongPoller{Timeout: opts.Config.PollTimeout()},
		Offline:   opts.Offline,
		OnError: func(err error, c tele.Context) {
			// One update's failure must not crash the dispatcher.
			logger.Error("handler error", zap.Error(err))
		},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, err
	}

	base := opts.BaseCtx
	if base == nil {
		base = context.Background()
	}

	b.Use(
		Observe(logger, opts.Metrics),
		SessionMiddleware(base, opts.Sessions, logger),
		TextsMiddleware(opts.Texts),
	)

	b.Handle("/start", opts.Handler.Start)
	b.Handle("/me", opts.Handler.Me)
	b.Handle("/setname", opts.Handler.SetName)
	b.Handle(tele.OnText, opts.Handler.Text)

	return b, nil
}

func parseMode(mode string) string {
	switch strings.ToLower(mode) {
	case "html":
		return tele.ModeHTML
	case "markdown":
		return tele.ModeMarkdown
	case "markdownv2":
		return tele.ModeMarkdownV2
	default:
		return tele.ModeDefault
	}
}
