package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"ai-task-manager/pkg/response"
)

const HeaderTelegramSecret = "X-Telegram-Bot-Api-Secret-Token"

// TelegramSecret rejects webhook calls that do not carry the configured secret.
func (m Middleware) TelegramSecret() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.telegramSecret == "" {
			c.Next()
			return
		}

		got := c.GetHeader(HeaderTelegramSecret)
		if subtle.ConstantTimeCompare([]byte(got), []byte(m.telegramSecret)) != 1 {
			m.l.Warnf(c.Request.Context(), "middleware.TelegramSecret: invalid secret token from %s", c.ClientIP())
			response.Unauthorized(c)
			return
		}
		c.Next()
	}
}
