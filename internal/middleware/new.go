package middleware

import (
	"ai-task-manager/pkg/log"
)

// Config holds the settings the middlewares need.
type Config struct {
	// AIPerMin limits extraction requests per client per minute. Zero disables the limit.
	AIPerMin int
	// TelegramSecret is compared with X-Telegram-Bot-Api-Secret-Token when set.
	TelegramSecret string
}

type Middleware struct {
	l              log.Logger
	aiLimiter      *rateLimiter
	telegramSecret string
}

func New(l log.Logger, cfg Config) Middleware {
	mw := Middleware{
		l:              l,
		telegramSecret: cfg.TelegramSecret,
	}
	if cfg.AIPerMin > 0 {
		mw.aiLimiter = newRateLimiter(cfg.AIPerMin)
	}
	return mw
}
