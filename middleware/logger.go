package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RequestLogger writes one zerolog event per request. Errors from the chain are
// handed to the app's ErrorHandler first so the logged status is the final one.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			if err := c.App().Config().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		var evt *zerolog.Event
		switch {
		case status >= 500:
			evt = log.Error().Err(chainErr)
		case status >= 400:
			evt = log.Warn().AnErr("cause", chainErr)
		default:
			evt = log.Info()
		}
		evt.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", UserID(c)).
			Msg("request")
		return nil
	}
}
