// middleware/auth.go
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	LocalUserID    = "user_id"
	LocalUserRoles = "user_roles"
)

// UserContextMiddleware copies the identity headers set by the gateway into locals
func UserContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var roles []string
		for _, r := range strings.Split(c.Get("X-User-Roles"), ",") {
			if r = strings.TrimSpace(r); r != "" {
				roles = append(roles, r)
			}
		}
		c.Locals(LocalUserID, strings.TrimSpace(c.Get("X-User-ID")))
		c.Locals(LocalUserRoles, roles)
		return c.Next()
	}
}

// RequireOwner rejects requests that carry no user identity. Mount it on every
// mutating route, after UserContextMiddleware.
func RequireOwner() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if UserID(c) == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing X-User-ID, request must come through the gateway with auth context")
		}
		return c.Next()
	}
}

func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalUserID).(string)
	return id
}
