package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"postapi/internal/auth"
)

// UserIDLocalKey is the key used to store the authenticated user's id in
// Fiber's context locals.
const UserIDLocalKey = "user_id"

// RequireAuth verifies the Authorization bearer token and stores the
// authenticated user id in context locals under UserIDLocalKey. Requests
// without a valid token are rejected with 401 before reaching the handler.
func RequireAuth(tokens *auth.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		userID, err := tokens.Authenticate(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		c.Locals(UserIDLocalKey, userID)
		return c.Next()
	}
}

// UserIDFromCtx extracts the user id stored by RequireAuth. The second
// return is false when the request never passed through RequireAuth.
func UserIDFromCtx(c *fiber.Ctx) (int64, bool) {
	id, ok := c.Locals(UserIDLocalKey).(int64)
	return id, ok
}
