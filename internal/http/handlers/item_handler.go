package handlers

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	applog "gavelbook/internal/log"
	"gavelbook/internal/repos"
	"gavelbook/internal/services"
	"gavelbook/internal/validate"
)

type ItemHandler struct {
	Items    *services.ItemService
	Repo     *repos.ItemRepo
	Auctions *repos.AuctionRepo
}

// itemInput reads the multipart form fields shared by create and update.
// Item endpoints use multipart (not JSON) because of the optional image part.
func itemInput(c *fiber.Ctx) (services.ItemInput, bool, string) {
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return services.ItemInput{}, false, "item name must be 1-80 characters"
	}
	in := services.ItemInput{
		Name:        name,
		Description: c.FormValue("description"),
		CategoryID:  c.FormValue("categoryId"),
		DonorID:     c.FormValue("donorId"),
	}
	if v := c.FormValue("estimatedValue"); v != "" {
		f, ok := validate.Amount(v)
		if !ok {
			return services.ItemInput{}, false, "estimated value must be a positive number"
		}
		in.EstimatedValue = f
	}
	return in, true, ""
}

func imageUpload(c *fiber.Ctx) (*services.ImageUpload, multipart.File, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, nil, nil // no image part
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &services.ImageUpload{MimeType: fh.Header.Get("Content-Type"), Data: f}, f, nil
}

func (h *ItemHandler) List(c *fiber.Ctx) error {
	// Tenant scope check before listing someone else's auction.
	if _, err := h.Auctions.Get(h.Auctions.DB(), accountID(c), c.Params("id")); err != nil {
		return fail(c, "item.list", err)
	}
	items, err := h.Repo.ListByAuction(c.Params("id"))
	if err != nil {
		return fail(c, "item.list", err)
	}
	return c.JSON(items)
}

func (h *ItemHandler) Get(c *fiber.Ctx) error {
	it, err := h.Repo.Get(h.Repo.DB(), c.Params("id"), c.Params("itemId"))
	if err != nil {
		return fail(c, "item.get", err)
	}
	if it.AccountID != accountID(c) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "item not found"})
	}
	return c.JSON(it)
}

func (h *ItemHandler) Create(c *fiber.Ctx) error {
	in, ok, msg := itemInput(c)
	if !ok {
		return badRequest(c, "item.create", msg)
	}
	img, f, err := imageUpload(c)
	if err != nil {
		return badRequest(c, "item.create", "could not read image upload")
	}
	if f != nil {
		defer f.Close()
	}

	it, err := h.Items.Create(accountID(c), c.Params("id"), in, img)
	if err != nil {
		return fail(c, "item.create", err)
	}
	applog.Audit(c, "item.create", map[string]any{"item_id": it.ID, "sku": it.SKU})
	return c.Status(fiber.StatusCreated).JSON(it)
}

func (h *ItemHandler) Update(c *fiber.Ctx) error {
	in, ok, msg := itemInput(c)
	if !ok {
		return badRequest(c, "item.update", msg)
	}
	img, f, err := imageUpload(c)
	if err != nil {
		return badRequest(c, "item.update", "could not read image upload")
	}
	if f != nil {
		defer f.Close()
	}

	it, err := h.Items.Update(accountID(c), c.Params("id"), c.Params("itemId"), in, img)
	if err != nil {
		return fail(c, "item.update", err)
	}
	applog.Audit(c, "item.update", map[string]any{"item_id": it.ID})
	return c.JSON(it)
}

func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.Items.Delete(accountID(c), c.Params("id"), c.Params("itemId")); err != nil {
		return fail(c, "item.delete", err)
	}
	applog.Audit(c, "item.delete", map[string]any{"item_id": c.Params("itemId")})
	return c.JSON(fiber.Map{"ok": true})
}

type bidReq struct {
	Amount   float64 `json:"amount"`
	PatronID string  `json:"patronId"`
}

func (h *ItemHandler) RecordWinningBid(c *fiber.Ctx) error {
	var req bidReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "item.bid", "malformed request body")
	}
	it, err := h.Items.RecordWinningBid(accountID(c), c.Params("id"), c.Params("itemId"), req.Amount, req.PatronID)
	if err != nil {
		return fail(c, "item.bid", err)
	}
	applog.Audit(c, "item.bid", map[string]any{"item_id": it.ID, "amount": req.Amount, "patron_id": req.PatronID})
	return c.JSON(it)
}

func (h *ItemHandler) MarkPaid(c *fiber.Ctx) error {
	var req struct {
		Method string `json:"method"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "item.paid", "malformed request body")
	}
	if err := h.Items.MarkPaid(accountID(c), c.Params("id"), c.Params("itemId"), req.Method); err != nil {
		return fail(c, "item.paid", err)
	}
	applog.Audit(c, "item.paid", map[string]any{"item_id": c.Params("itemId"), "method": req.Method})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *ItemHandler) MoveToLot(c *fiber.Ctx) error {
	var req struct {
		LotID string `json:"lotId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "item.lot", "malformed request body")
	}
	if err := h.Items.MoveToLot(accountID(c), c.Params("id"), c.Params("itemId"), req.LotID); err != nil {
		return fail(c, "item.lot", err)
	}
	applog.Audit(c, "item.lot", map[string]any{"item_id": c.Params("itemId"), "lot_id": req.LotID})
	return c.JSON(fiber.Map{"ok": true})
}
