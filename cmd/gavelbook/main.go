package main

import (
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"gavelbook/internal/assets"
	"gavelbook/internal/config"
	"gavelbook/internal/export"
	"gavelbook/internal/http/handlers"
	applog "gavelbook/internal/log"
	"gavelbook/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	store, err := assets.NewLocalStore(cfg.MediaDir)
	if err != nil {
		log.Fatal(err)
	}

	app := fiber.New(fiber.Config{
		Views: export.Engine(),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			// Never leak internals to the client
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "something went wrong, please try again",
			})
		},
	})
	// Global body size guard (covers item image uploads)
	app.Server().MaxRequestBodySize = 8 << 20 // 8 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(string(c.Request().URI().Path()), "/media/")
		},
	}))

	deps := handlers.NewDeps(db, store)

	// ---------- Media (guarded against traversal) ----------
	app.Get("/media/*", func(c *fiber.Ctx) error {
		key := c.Params("*")
		if strings.Contains(key, "..") || strings.Contains(strings.ToLower(key), "%2e") || strings.Contains(key, "\x00") {
			applog.Security(c, "media.traversal.block", map[string]any{"key": key})
			return c.SendStatus(fiber.StatusNotFound)
		}
		r, mime, err := store.Open(key)
		if err != nil {
			return c.SendStatus(fiber.StatusNotFound)
		}
		c.Set(fiber.HeaderContentType, mime)
		return c.SendStream(r)
	})

	// ---------- Auth ----------
	app.Post("/signup", deps.AuthHandler.Signup)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts, try again later"})
		},
	}), deps.AuthHandler.Login)
	app.Post("/logout", deps.AuthHandler.Logout)

	// ---------- API (all tenant-scoped) ----------
	api := app.Group("/api/v1", handlers.RequireUser(deps.Auth))
	api.Get("/me", deps.AuthHandler.Me)

	api.Get("/auctions", deps.AuctionHandler.List)
	api.Post("/auctions", deps.AuctionHandler.Create)
	api.Get("/auctions/:id", deps.AuctionHandler.Get)
	api.Post("/auctions/:id/status", deps.AuctionHandler.SetStatus)
	api.Post("/auctions/:id/public-catalog", deps.AuctionHandler.SetPublicCatalog)

	api.Post("/auctions/:id/categories", deps.AuctionHandler.AddCategory)
	api.Put("/auctions/:id/categories/:catId", deps.AuctionHandler.UpdateCategory)
	api.Delete("/auctions/:id/categories/:catId", deps.AuctionHandler.RemoveCategory)

	api.Post("/auctions/:id/lots", deps.AuctionHandler.AddLot)
	api.Put("/auctions/:id/lots/:lotId", deps.AuctionHandler.RenameLot)
	api.Delete("/auctions/:id/lots/:lotId", deps.AuctionHandler.DeleteLot)

	api.Get("/auctions/:id/items", deps.ItemHandler.List)
	api.Post("/auctions/:id/items", deps.ItemHandler.Create)
	api.Get("/auctions/:id/items/:itemId", deps.ItemHandler.Get)
	api.Put("/auctions/:id/items/:itemId", deps.ItemHandler.Update)
	api.Delete("/auctions/:id/items/:itemId", deps.ItemHandler.Delete)
	api.Post("/auctions/:id/items/:itemId/winning-bid", deps.ItemHandler.RecordWinningBid)
	api.Post("/auctions/:id/items/:itemId/paid", deps.ItemHandler.MarkPaid)
	api.Post("/auctions/:id/items/:itemId/lot", deps.ItemHandler.MoveToLot)

	api.Post("/auctions/:id/donations", deps.DonationHandler.Record)

	api.Get("/auctions/:id/registrations", deps.RegistrationHandler.List)
	api.Post("/auctions/:id/registrations", deps.RegistrationHandler.Register)
	api.Delete("/auctions/:id/registrations/:regId", deps.RegistrationHandler.Unregister)

	api.Get("/patrons", deps.PatronHandler.List)
	api.Post("/patrons", deps.PatronHandler.Create)
	api.Get("/patrons/:id", deps.PatronHandler.Get)
	api.Put("/patrons/:id", deps.PatronHandler.Update)
	api.Delete("/patrons/:id", deps.PatronHandler.Delete)

	api.Get("/donors", deps.DonorHandler.List)
	api.Post("/donors", deps.DonorHandler.Create)
	api.Get("/donors/:id", deps.DonorHandler.Get)
	api.Put("/donors/:id", deps.DonorHandler.Update)
	api.Delete("/donors/:id", deps.DonorHandler.Delete)

	api.Get("/invitations", deps.InvitationHandler.List)
	api.Post("/invitations", deps.InvitationHandler.Invite)
	api.Get("/invitations/pending", deps.InvitationHandler.Pending)
	api.Post("/invitations/:id/accept", deps.InvitationHandler.Accept)

	// ---------- Exports ----------
	api.Get("/export/patrons.csv", deps.ExportHandler.PatronsCSV)
	api.Get("/export/donors.csv", deps.ExportHandler.DonorsCSV)
	api.Get("/auctions/:id/export/items.csv", deps.ExportHandler.ItemsCSV)
	api.Get("/auctions/:id/export/winning-bids.csv", deps.ExportHandler.WinningBidsCSV)
	api.Get("/auctions/:id/export/donations.csv", deps.ExportHandler.DonationsCSV)
	api.Get("/auctions/:id/export/report.csv", deps.ExportHandler.FullReportCSV)
	api.Get("/auctions/:id/export/catalog", deps.ExportHandler.Catalog)
	api.Get("/auctions/:id/export/receipt/:patronId", deps.ExportHandler.Receipt)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
