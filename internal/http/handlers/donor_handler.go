package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "gavelbook/internal/log"
	"gavelbook/internal/services"
	"gavelbook/internal/validate"
)

type DonorHandler struct {
	Donors *services.DonorService
}

type donorReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Type    string `json:"type"`
}

func (h *DonorHandler) input(c *fiber.Ctx, action string) (services.DonorInput, error) {
	var req donorReq
	if err := c.BodyParser(&req); err != nil {
		return services.DonorInput{}, badRequest(c, action, "malformed request body")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return services.DonorInput{}, badRequest(c, action, "donor name must be 1-80 characters")
	}
	typ, ok := validate.DonorType(req.Type)
	if !ok {
		return services.DonorInput{}, badRequest(c, action, "donor type must be individual or business")
	}
	return services.DonorInput{
		Name: name, Email: req.Email, Phone: req.Phone, Address: req.Address, Type: typ,
	}, nil
}

func (h *DonorHandler) Create(c *fiber.Ctx) error {
	in, herr := h.input(c, "donor.create")
	if herr != nil {
		return herr
	}
	d, err := h.Donors.Create(accountID(c), in)
	if err != nil {
		return fail(c, "donor.create", err)
	}
	applog.Audit(c, "donor.create", map[string]any{"donor_id": d.ID})
	return c.Status(fiber.StatusCreated).JSON(d)
}

func (h *DonorHandler) Update(c *fiber.Ctx) error {
	in, herr := h.input(c, "donor.update")
	if herr != nil {
		return herr
	}
	d, err := h.Donors.Update(accountID(c), c.Params("id"), in)
	if err != nil {
		return fail(c, "donor.update", err)
	}
	return c.JSON(d)
}

func (h *DonorHandler) Delete(c *fiber.Ctx) error {
	if err := h.Donors.Delete(accountID(c), c.Params("id")); err != nil {
		return fail(c, "donor.delete", err)
	}
	applog.Audit(c, "donor.delete", map[string]any{"donor_id": c.Params("id")})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *DonorHandler) Get(c *fiber.Ctx) error {
	d, err := h.Donors.Get(accountID(c), c.Params("id"))
	if err != nil {
		return fail(c, "donor.get", err)
	}
	return c.JSON(d)
}

func (h *DonorHandler) List(c *fiber.Ctx) error {
	out, err := h.Donors.List(accountID(c))
	if err != nil {
		return fail(c, "donor.list", err)
	}
	return c.JSON(out)
}
