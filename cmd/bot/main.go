package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/bot-kit/registration-service/internal/api/http"
	"github.com/bot-kit/registration-service/internal/api/http/handlers"
	"github.com/bot-kit/registration-service/internal/bot"
	"github.com/bot-kit/registration-service/internal/config"
	"github.com/bot-kit/registration-service/internal/events"
	"github.com/bot-kit/registration-service/internal/fsm"
	"github.com/bot-kit/registration-service/internal/observability"
	"github.com/bot-kit/registration-service/internal/persistence"
	"github.com/bot-kit/registration-service/internal/repository"
	"github.com/bot-kit/registration-service/internal/service"
	"github.com/bot-kit/registration-service/internal/texts"
	"github.com/bot-kit/registration-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	userRepo, err := repository.NewUserRepository()
	if err != nil {
		logger.Fatal("invalid repository configuration", zap.Error(err))
	}

	bundle, err := texts.Load(cfg.Texts.Dir, cfg.Texts.Lang)
	if err != nil {
		logger.Fatal("failed to load texts", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	states := fsm.NewStorage(redis.Client, cfg.Redis.StateTTL())
	handler := bot.NewHandler(userRepo, states, dispatcher, logger)

	b, err := bot.New(bot.Options{
		Config:   cfg.Bot,
		Logger:   logger,
		Metrics:  metrics,
		Sessions: pg,
		Texts:    bundle,
		Handler:  handler,
		BaseCtx:  ctx,
	})
	if err != nil {
		logger.Fatal("failed to build bot", zap.Error(err))
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Stats:  handlers.NewStatsHandler(metrics),
	})

	go func() {
		if err := app.Listen(cfg.App.OpsAddr()); err != nil {
			logger.Fatal("ops listen", zap.Error(err))
		}
	}()

	go b.Start()
	logger.Info("bot started", zap.String("env", cfg.App.Env))

	waitForShutdown(logger)

	b.Stop()
	cancel()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
