package handlers

import (
	"github.com/gofiber/fiber/v2"

	"gavelbook/internal/domain"
	applog "gavelbook/internal/log"
	"gavelbook/internal/services"
)

// RequireUser loads the session user and stashes it (plus its tenant id) in
// Locals; unauthenticated requests get a 401.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
		}
		c.Locals("user", u)
		c.Locals("user_id", u.ID)
		c.Locals("account_id", u.AccountID)
		return c.Next()
	}
}

// currentUser returns the user RequireUser stashed; handlers behind the
// middleware can rely on it.
func currentUser(c *fiber.Ctx) *domain.User {
	u, _ := c.Locals("user").(*domain.User)
	return u
}

// accountID is the tenant scope for every query the handler issues.
func accountID(c *fiber.Ctx) string {
	if u := currentUser(c); u != nil {
		return u.AccountID
	}
	applog.Security(c, "authz.missing_user", nil)
	return ""
}
