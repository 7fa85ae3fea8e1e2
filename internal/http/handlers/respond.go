package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"gavelbook/internal/domain"
	applog "gavelbook/internal/log"
)

// fail maps the service error taxonomy onto HTTP statuses. Store-level
// failures surface as 500 with a generic body; internals never reach the
// client.
func fail(c *fiber.Ctx, action string, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		applog.Security(c, action+".invalid", map[string]any{"error": err.Error()})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrConflict):
		applog.Info(c, action+".conflict", map[string]any{"error": err.Error()})
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	default:
		applog.Error(c, action+".fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "something went wrong, please try again"})
	}
}

func badRequest(c *fiber.Ctx, action, msg string) error {
	applog.Security(c, action+".invalid", map[string]any{"reason": msg})
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
