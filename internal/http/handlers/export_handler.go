package handlers

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"gavelbook/internal/domain"
	"gavelbook/internal/export"
	"gavelbook/internal/repos"
)

type repoAuction struct {
	auction domain.Auction
	items   []domain.Item
}

// ExportHandler serves the read-only catalog/report downloads. It only ever
// reads state the mutation services produced.
type ExportHandler struct {
	Auctions      *repos.AuctionRepo
	Items         *repos.ItemRepo
	Patrons       *repos.PatronRepo
	Donors        *repos.DonorRepo
	Registrations *repos.RegistrationRepo
}

func (h *ExportHandler) sendCSV(c *fiber.Ctx, filename string, write func(*bytes.Buffer) error) error {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return fail(c, "export.csv", err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

func (h *ExportHandler) PatronsCSV(c *fiber.Ctx) error {
	patrons, err := h.Patrons.ListByAccount(accountID(c))
	if err != nil {
		return fail(c, "export.patrons", err)
	}
	return h.sendCSV(c, "patrons.csv", func(b *bytes.Buffer) error {
		return export.WritePatronsCSV(b, patrons)
	})
}

func (h *ExportHandler) DonorsCSV(c *fiber.Ctx) error {
	donors, err := h.Donors.ListByAccount(accountID(c))
	if err != nil {
		return fail(c, "export.donors", err)
	}
	return h.sendCSV(c, "donors.csv", func(b *bytes.Buffer) error {
		return export.WriteDonorsCSV(b, donors)
	})
}

// auctionItems loads the auction (scoped to the tenant) and all its records.
func (h *ExportHandler) auctionItems(c *fiber.Ctx) (repoAuction, error) {
	a, err := h.Auctions.Get(h.Auctions.DB(), accountID(c), c.Params("id"))
	if err != nil {
		return repoAuction{}, err
	}
	items, err := h.Items.ListByAuction(a.ID)
	if err != nil {
		return repoAuction{}, err
	}
	return repoAuction{auction: a, items: items}, nil
}

func (h *ExportHandler) ItemsCSV(c *fiber.Ctx) error {
	ai, err := h.auctionItems(c)
	if err != nil {
		return fail(c, "export.items", err)
	}
	return h.sendCSV(c, "items.csv", func(b *bytes.Buffer) error {
		return export.WriteItemsCSV(b, ai.items)
	})
}

func (h *ExportHandler) WinningBidsCSV(c *fiber.Ctx) error {
	ai, err := h.auctionItems(c)
	if err != nil {
		return fail(c, "export.winning_bids", err)
	}
	return h.sendCSV(c, "winning-bids.csv", func(b *bytes.Buffer) error {
		return export.WriteWinningBidsCSV(b, ai.items)
	})
}

func (h *ExportHandler) DonationsCSV(c *fiber.Ctx) error {
	ai, err := h.auctionItems(c)
	if err != nil {
		return fail(c, "export.donations", err)
	}
	return h.sendCSV(c, "donations.csv", func(b *bytes.Buffer) error {
		return export.WriteDonationsCSV(b, ai.items)
	})
}

func (h *ExportHandler) FullReportCSV(c *fiber.Ctx) error {
	ai, err := h.auctionItems(c)
	if err != nil {
		return fail(c, "export.report", err)
	}
	return h.sendCSV(c, "auction-report.csv", func(b *bytes.Buffer) error {
		return export.WriteFullReportCSV(b, ai.auction, ai.items)
	})
}

// Catalog renders the printable HTML catalog (donations excluded).
func (h *ExportHandler) Catalog(c *fiber.Ctx) error {
	ai, err := h.auctionItems(c)
	if err != nil {
		return fail(c, "export.catalog", err)
	}
	return c.Render("catalog", export.BuildCatalog(ai.auction, ai.items))
}

// Receipt renders the printable receipt for one registered patron.
func (h *ExportHandler) Receipt(c *fiber.Ctx) error {
	ai, err := h.auctionItems(c)
	if err != nil {
		return fail(c, "export.receipt", err)
	}
	patronID := c.Params("patronId")
	p, err := h.Patrons.Get(h.Patrons.DB(), accountID(c), patronID)
	if err != nil {
		return fail(c, "export.receipt", err)
	}
	bidderNumber := 0
	if reg, err := h.Registrations.ByPatron(h.Registrations.DB(), ai.auction.ID, patronID); err == nil {
		bidderNumber = reg.BidderNumber
	}
	won, err := h.Items.WonBy(ai.auction.ID, patronID)
	if err != nil {
		return fail(c, "export.receipt", err)
	}
	return c.Render("receipt", export.BuildReceipt(ai.auction, p, bidderNumber, won))
}
