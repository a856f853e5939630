package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ai-task-manager/config"
	_ "ai-task-manager/docs" // Swagger docs
	"ai-task-manager/internal/app"
	"ai-task-manager/internal/httpserver"
	"ai-task-manager/internal/middleware"
	"ai-task-manager/internal/scheduler"
	tgDelivery "ai-task-manager/internal/task/delivery/telegram"
	"ai-task-manager/pkg/log"
	"ai-task-manager/pkg/telegram"
)

const digestTimeout = time.Minute

// @title       AI Task Manager API
// @description Task CRUD, calendar view and natural-language task creation backed by an LLM provider chain.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting AI Task Manager...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Task domain
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize task domain: ", err)
		os.Exit(1)
	}
	defer a.Close()

	// 4. Telegram (optional)
	var telegramHandler tgDelivery.Handler
	var sched *scheduler.Scheduler

	if cfg.Telegram.BotToken != "" {
		bot := telegram.NewBot(cfg.Telegram.BotToken)
		telegramHandler = tgDelivery.New(logger, a.TaskUseCase, bot, a.DateMath)
		registerWebhook(ctx, logger, bot, cfg.Telegram)

		if cfg.Scheduler.DigestChatID != 0 && cfg.Scheduler.DigestTime != "" {
			sched = scheduler.New(a.Location, logger)
			job := scheduler.NewDigestJob(a.TaskUseCase, bot, cfg.Scheduler.DigestChatID, a.Location)
			id, err := sched.ScheduleDaily("daily-digest", cfg.Scheduler.DigestTime, digestTimeout, job.Run)
			if err != nil {
				logger.Error(ctx, "Failed to schedule daily digest: ", err)
				os.Exit(1)
			}
			sched.Start()
			logger.Infof(ctx, "Daily digest scheduled, next run at %s", sched.Next(id).Format(time.RFC3339))
		}
	} else {
		logger.Warn(ctx, "Telegram disabled: telegram.bot_token is empty")
	}

	// 5. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		DB:              a.DB,
		TaskUseCase:     a.TaskUseCase,
		DateMath:        a.DateMath,
		TelegramHandler: telegramHandler,
		Middleware: middleware.Config{
			AIPerMin:       cfg.RateLimit.AIPerMin,
			TelegramSecret: cfg.Telegram.SecretToken,
		},
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		os.Exit(1)
	}

	// 6. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
	}

	if sched != nil {
		stopCtx, cancel := context.WithTimeout(context.Background(), digestTimeout)
		sched.Stop(stopCtx)
		cancel()
	}

	logger.Info(context.Background(), "Server stopped gracefully")
}

// registerWebhook points Telegram at this server. The URL comes from config
// or, when empty, from a local ngrok agent.
func registerWebhook(ctx context.Context, logger log.Logger, bot *telegram.Bot, cfg config.TelegramConfig) {
	webhookURL := cfg.WebhookURL
	if webhookURL == "" && cfg.NgrokAPI != "" {
		publicURL, err := newNgrokDetector(cfg.NgrokAPI).publicURL(ctx)
		if err != nil {
			logger.Warnf(ctx, "Could not detect ngrok URL: %v", err)
		} else {
			webhookURL = publicURL + telegramWebhookPath
			logger.Infof(ctx, "Auto-detected ngrok URL: %s", webhookURL)
		}
	}

	if webhookURL == "" {
		logger.Warn(ctx, "Telegram webhook not registered: set telegram.webhook_url or telegram.ngrok_api")
		return
	}

	if err := bot.SetWebhook(ctx, webhookURL, cfg.SecretToken); err != nil {
		logger.Warnf(ctx, "Failed to set Telegram webhook: %v", err)
		return
	}
	logger.Infof(ctx, "Telegram webhook registered at %s", webhookURL)
}
