package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "gavelbook/internal/log"
	"gavelbook/internal/repos"
	"gavelbook/internal/services"
	"gavelbook/internal/validate"
)

type RegistrationHandler struct {
	Registrations *services.RegistrationService
	Repo          *repos.RegistrationRepo
	Auctions      *repos.AuctionRepo
}

func (h *RegistrationHandler) List(c *fiber.Ctx) error {
	if _, err := h.Auctions.Get(h.Auctions.DB(), accountID(c), c.Params("id")); err != nil {
		return fail(c, "registration.list", err)
	}
	out, err := h.Repo.ListByAuction(c.Params("id"))
	if err != nil {
		return fail(c, "registration.list", err)
	}
	return c.JSON(out)
}

type registerReq struct {
	PatronID     string `json:"patronId"`
	BidderNumber int    `json:"bidderNumber"`
}

func (h *RegistrationHandler) Register(c *fiber.Ctx) error {
	var req registerReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "registration.register", "malformed request body")
	}
	if _, ok := validate.ID(req.PatronID); !ok {
		return badRequest(c, "registration.register", "invalid patron id")
	}
	if req.BidderNumber < 1 || req.BidderNumber > 99999 {
		return badRequest(c, "registration.register", "bidder number must be 1-99999")
	}

	reg, err := h.Registrations.Register(accountID(c), c.Params("id"), req.PatronID, req.BidderNumber)
	if err != nil {
		return fail(c, "registration.register", err)
	}
	applog.Audit(c, "registration.register", map[string]any{
		"auction_id": reg.AuctionID, "patron_id": reg.PatronID, "bidder_number": reg.BidderNumber,
	})
	return c.Status(fiber.StatusCreated).JSON(reg)
}

func (h *RegistrationHandler) Unregister(c *fiber.Ctx) error {
	if err := h.Registrations.Unregister(accountID(c), c.Params("id"), c.Params("regId")); err != nil {
		return fail(c, "registration.unregister", err)
	}
	applog.Audit(c, "registration.unregister", map[string]any{
		"auction_id": c.Params("id"), "registration_id": c.Params("regId"),
	})
	return c.JSON(fiber.Map{"ok": true})
}
