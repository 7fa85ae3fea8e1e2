package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "gavelbook/internal/log"
	"gavelbook/internal/repos"
	"gavelbook/internal/services"
	"gavelbook/internal/validate"
)

type AuctionHandler struct {
	Auctions *services.AuctionService
	Repo     *repos.AuctionRepo
	Lots     *repos.LotRepo
}

type auctionReq struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Type          string `json:"type"`
	StartsAt      string `json:"startsAt"`
	PublicCatalog bool   `json:"publicCatalog"`
}

func (h *AuctionHandler) Create(c *fiber.Ctx) error {
	var req auctionReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "auction.create", "malformed request body")
	}
	typ, ok := validate.AuctionType(req.Type)
	if !ok {
		return badRequest(c, "auction.create", "type must be Live, Silent or Hybrid")
	}

	a, err := h.Auctions.Create(accountID(c), services.AuctionInput{
		Name:          req.Name,
		Description:   req.Description,
		Type:          typ,
		StartsAt:      req.StartsAt,
		PublicCatalog: req.PublicCatalog,
	})
	if err != nil {
		return fail(c, "auction.create", err)
	}
	applog.Audit(c, "auction.create", map[string]any{"auction_id": a.ID})
	return c.Status(fiber.StatusCreated).JSON(a)
}

func (h *AuctionHandler) List(c *fiber.Ctx) error {
	out, err := h.Repo.ListByAccount(accountID(c))
	if err != nil {
		return fail(c, "auction.list", err)
	}
	return c.JSON(out)
}

func (h *AuctionHandler) Get(c *fiber.Ctx) error {
	a, err := h.Repo.Get(h.Repo.DB(), accountID(c), c.Params("id"))
	if err != nil {
		return fail(c, "auction.get", err)
	}
	cats, err := h.Repo.Categories(a.ID)
	if err != nil {
		return fail(c, "auction.get", err)
	}
	lots, err := h.Lots.ListByAuction(a.ID)
	if err != nil {
		return fail(c, "auction.get", err)
	}
	return c.JSON(fiber.Map{"auction": a, "categories": cats, "lots": lots})
}

func (h *AuctionHandler) SetStatus(c *fiber.Ctx) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "auction.status", "malformed request body")
	}
	status, ok := validate.AuctionStatus(req.Status)
	if !ok {
		return badRequest(c, "auction.status", "status must be upcoming, active or completed")
	}
	if err := h.Auctions.SetStatus(accountID(c), c.Params("id"), status); err != nil {
		return fail(c, "auction.status", err)
	}
	applog.Audit(c, "auction.status", map[string]any{"auction_id": c.Params("id"), "status": status})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *AuctionHandler) SetPublicCatalog(c *fiber.Ctx) error {
	var req struct {
		Public bool `json:"public"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "auction.public_catalog", "malformed request body")
	}
	if err := h.Auctions.SetPublicCatalog(accountID(c), c.Params("id"), req.Public); err != nil {
		return fail(c, "auction.public_catalog", err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// ---------- Categories ----------

func (h *AuctionHandler) AddCategory(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "category.add", "malformed request body")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return badRequest(c, "category.add", "category name must be 1-80 characters")
	}
	cat, err := h.Auctions.AddCategory(accountID(c), c.Params("id"), name)
	if err != nil {
		return fail(c, "category.add", err)
	}
	applog.Audit(c, "category.add", map[string]any{"auction_id": c.Params("id"), "category_id": cat.ID})
	return c.Status(fiber.StatusCreated).JSON(cat)
}

func (h *AuctionHandler) UpdateCategory(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "category.update", "malformed request body")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return badRequest(c, "category.update", "category name must be 1-80 characters")
	}
	cat, err := h.Auctions.UpdateCategory(accountID(c), c.Params("id"), c.Params("catId"), name)
	if err != nil {
		return fail(c, "category.update", err)
	}
	applog.Audit(c, "category.update", map[string]any{"auction_id": c.Params("id"), "category_id": cat.ID})
	return c.JSON(cat)
}

func (h *AuctionHandler) RemoveCategory(c *fiber.Ctx) error {
	if err := h.Auctions.RemoveCategory(accountID(c), c.Params("id"), c.Params("catId")); err != nil {
		return fail(c, "category.remove", err)
	}
	applog.Audit(c, "category.remove", map[string]any{"auction_id": c.Params("id"), "category_id": c.Params("catId")})
	return c.JSON(fiber.Map{"ok": true})
}

// ---------- Lots ----------

func (h *AuctionHandler) AddLot(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "lot.add", "malformed request body")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return badRequest(c, "lot.add", "lot name must be 1-80 characters")
	}
	lot, err := h.Auctions.AddLot(accountID(c), c.Params("id"), name)
	if err != nil {
		return fail(c, "lot.add", err)
	}
	applog.Audit(c, "lot.add", map[string]any{"auction_id": c.Params("id"), "lot_id": lot.ID})
	return c.Status(fiber.StatusCreated).JSON(lot)
}

func (h *AuctionHandler) RenameLot(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "lot.rename", "malformed request body")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return badRequest(c, "lot.rename", "lot name must be 1-80 characters")
	}
	if err := h.Auctions.RenameLot(accountID(c), c.Params("id"), c.Params("lotId"), name); err != nil {
		return fail(c, "lot.rename", err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (h *AuctionHandler) DeleteLot(c *fiber.Ctx) error {
	if err := h.Auctions.DeleteLot(accountID(c), c.Params("id"), c.Params("lotId")); err != nil {
		return fail(c, "lot.delete", err)
	}
	applog.Audit(c, "lot.delete", map[string]any{"auction_id": c.Params("id"), "lot_id": c.Params("lotId")})
	return c.JSON(fiber.Map{"ok": true})
}
