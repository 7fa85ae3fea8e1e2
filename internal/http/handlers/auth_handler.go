package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	applog "gavelbook/internal/log"
	"gavelbook/internal/services"
	"gavelbook/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // enable behind TLS
		})
	}
	return sid
}

type signupReq struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Password     string `json:"password"`
	Organization string `json:"organization"`
}

// Signup creates the user and, with it, the account: the first signup is the
// tenant bootstrap.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req signupReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "auth.signup", "malformed request body")
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		return badRequest(c, "auth.signup", "invalid email")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return badRequest(c, "auth.signup", "name must be 1-80 characters")
	}
	org, ok := validate.Name(req.Organization)
	if !ok {
		return badRequest(c, "auth.signup", "organization must be 1-80 characters")
	}
	if !validate.Password(req.Password) {
		return badRequest(c, "auth.signup", "password must be 8-64 characters with upper, lower and digit")
	}

	u, err := h.Auth.Signup(email, name, req.Password, org)
	if err != nil {
		return fail(c, "auth.signup", err)
	}
	if err := h.Auth.Users.BindSession(ensureSID(c), u.ID); err != nil {
		return fail(c, "auth.signup", err)
	}
	applog.Audit(c, "auth.signup", map[string]any{"user_id": u.ID, "account_id": u.AccountID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": u.ID, "accountId": u.AccountID})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "auth.login", "malformed request body")
	}
	u, err := h.Auth.Login(ensureSID(c), req.Email, req.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"email": req.Email})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid email or password"})
	}
	applog.Audit(c, "auth.login", map[string]any{"user_id": u.ID})
	return c.JSON(fiber.Map{"id": u.ID, "name": u.Name, "accountId": u.AccountID})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sid := c.Cookies("sid"); sid != "" {
		if err := h.Auth.Logout(sid); err != nil {
			return fail(c, "auth.logout", err)
		}
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	u := currentUser(c)
	return c.JSON(fiber.Map{"id": u.ID, "name": u.Name, "email": u.Email, "accountId": u.AccountID})
}
