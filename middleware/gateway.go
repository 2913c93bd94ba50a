// middleware/gateway.go
package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// GatewayAuthMiddleware validates the Bearer token presented by the gateway.
// An empty expectedToken disables the check (local development).
func GatewayAuthMiddleware(expectedToken string) fiber.Handler {
	if expectedToken == "" {
		log.Warn().Msg("SERVICE_TOKEN is not set, gateway authentication disabled")
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			log.Debug().Str("path", c.Path()).Msg("[GATEWAY_AUTH] missing Authorization header")
			return fiber.NewError(fiber.StatusUnauthorized, "gateway authentication token missing")
		}

		// Accept "Bearer <token>" or the raw token
		token := strings.TrimPrefix(authHeader, "Bearer ")

		if subtle.ConstantTimeCompare([]byte(token), []byte(expectedToken)) != 1 {
			log.Warn().Str("path", c.Path()).Msg("[GATEWAY_AUTH] invalid token")
			return fiber.NewError(fiber.StatusUnauthorized, "invalid gateway authentication token")
		}
		return c.Next()
	}
}
