package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "gavelbook/internal/log"
	"gavelbook/internal/repos"
	"gavelbook/internal/services"
	"gavelbook/internal/validate"
)

type InvitationHandler struct {
	Invitations *services.InvitationService
	Repo        *repos.InvitationRepo
}

type inviteReq struct {
	AuctionID string `json:"auctionId"`
	Email     string `json:"email"`
}

func (h *InvitationHandler) Invite(c *fiber.Ctx) error {
	var req inviteReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invitation.create", "malformed request body")
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		return badRequest(c, "invitation.create", "invalid email")
	}
	inv, err := h.Invitations.Invite(accountID(c), req.AuctionID, email)
	if err != nil {
		return fail(c, "invitation.create", err)
	}
	applog.Audit(c, "invitation.create", map[string]any{"invitation_id": inv.ID, "auction_id": inv.AuctionID})
	return c.Status(fiber.StatusCreated).JSON(inv)
}

func (h *InvitationHandler) List(c *fiber.Ctx) error {
	out, err := h.Repo.ListByAccount(accountID(c))
	if err != nil {
		return fail(c, "invitation.list", err)
	}
	return c.JSON(out)
}

// Pending lists invitations addressed to the logged-in user's email.
func (h *InvitationHandler) Pending(c *fiber.Ctx) error {
	out, err := h.Repo.PendingByEmail(currentUser(c).Email)
	if err != nil {
		return fail(c, "invitation.pending", err)
	}
	return c.JSON(out)
}

func (h *InvitationHandler) Accept(c *fiber.Ctx) error {
	inv, err := h.Invitations.Accept(c.Params("id"), currentUser(c).ID)
	if err != nil {
		return fail(c, "invitation.accept", err)
	}
	applog.Audit(c, "invitation.accept", map[string]any{"invitation_id": inv.ID, "auction_id": inv.AuctionID})
	return c.JSON(inv)
}
