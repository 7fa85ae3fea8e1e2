package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "gavelbook/internal/log"
	"gavelbook/internal/services"
	"gavelbook/internal/validate"
)

type DonationHandler struct {
	Donations *services.DonationService
}

type donationReq struct {
	PatronID string  `json:"patronId"`
	Amount   float64 `json:"amount"`
}

func (h *DonationHandler) Record(c *fiber.Ctx) error {
	var req donationReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "donation.record", "malformed request body")
	}
	if _, ok := validate.ID(req.PatronID); !ok {
		return badRequest(c, "donation.record", "invalid patron id")
	}

	it, err := h.Donations.Record(accountID(c), c.Params("id"), req.PatronID, req.Amount)
	if err != nil {
		return fail(c, "donation.record", err)
	}
	applog.Audit(c, "donation.record", map[string]any{
		"auction_id": c.Params("id"), "patron_id": req.PatronID, "sku": it.SKU, "amount": req.Amount,
	})
	return c.Status(fiber.StatusCreated).JSON(it)
}
