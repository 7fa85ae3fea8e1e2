package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "gavelbook/internal/log"
	"gavelbook/internal/services"
	"gavelbook/internal/validate"
)

type PatronHandler struct {
	Patrons *services.PatronService
}

type patronReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

func (h *PatronHandler) input(c *fiber.Ctx, action string) (services.PatronInput, error) {
	var req patronReq
	if err := c.BodyParser(&req); err != nil {
		return services.PatronInput{}, badRequest(c, action, "malformed request body")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return services.PatronInput{}, badRequest(c, action, "patron name must be 1-80 characters")
	}
	if req.Email != "" {
		if _, ok := validate.Email(req.Email); !ok {
			return services.PatronInput{}, badRequest(c, action, "invalid email")
		}
	}
	return services.PatronInput{
		Name: name, Email: req.Email, Phone: req.Phone, Address: req.Address, Notes: req.Notes,
	}, nil
}

func (h *PatronHandler) Create(c *fiber.Ctx) error {
	in, herr := h.input(c, "patron.create")
	if herr != nil {
		return herr
	}
	p, err := h.Patrons.Create(accountID(c), in)
	if err != nil {
		return fail(c, "patron.create", err)
	}
	applog.Audit(c, "patron.create", map[string]any{"patron_id": p.ID})
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *PatronHandler) Update(c *fiber.Ctx) error {
	in, herr := h.input(c, "patron.update")
	if herr != nil {
		return herr
	}
	p, err := h.Patrons.Update(accountID(c), c.Params("id"), in)
	if err != nil {
		return fail(c, "patron.update", err)
	}
	return c.JSON(p)
}

func (h *PatronHandler) Delete(c *fiber.Ctx) error {
	if err := h.Patrons.Delete(accountID(c), c.Params("id")); err != nil {
		return fail(c, "patron.delete", err)
	}
	applog.Audit(c, "patron.delete", map[string]any{"patron_id": c.Params("id")})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *PatronHandler) Get(c *fiber.Ctx) error {
	p, stats, err := h.Patrons.Get(accountID(c), c.Params("id"))
	if err != nil {
		return fail(c, "patron.get", err)
	}
	return c.JSON(fiber.Map{"patron": p, "stats": stats})
}

func (h *PatronHandler) List(c *fiber.Ctx) error {
	out, err := h.Patrons.List(accountID(c))
	if err != nil {
		return fail(c, "patron.list", err)
	}
	return c.JSON(out)
}
