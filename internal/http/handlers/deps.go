package handlers

import (
	"github.com/jmoiron/sqlx"

	"gavelbook/internal/assets"
	"gavelbook/internal/repos"
	"gavelbook/internal/services"
)

type Deps struct {
	AuthHandler         *AuthHandler
	AuctionHandler      *AuctionHandler
	ItemHandler         *ItemHandler
	DonationHandler     *DonationHandler
	RegistrationHandler *RegistrationHandler
	PatronHandler       *PatronHandler
	DonorHandler        *DonorHandler
	InvitationHandler   *InvitationHandler
	ExportHandler       *ExportHandler
	Auth                *services.AuthService
}

func NewDeps(db *sqlx.DB, store assets.Store) *Deps {
	accountRepo := repos.NewAccountRepo(db)
	userRepo := repos.NewUserRepo(db)
	auctionRepo := repos.NewAuctionRepo(db)
	itemRepo := repos.NewItemRepo(db)
	lotRepo := repos.NewLotRepo(db)
	patronRepo := repos.NewPatronRepo(db)
	regRepo := repos.NewRegistrationRepo(db)
	donorRepo := repos.NewDonorRepo(db)
	invRepo := repos.NewInvitationRepo(db)

	authSvc := services.NewAuthService(db, userRepo, accountRepo)
	auctionSvc := services.NewAuctionService(db, auctionRepo, lotRepo, itemRepo)
	itemSvc := services.NewItemService(db, itemRepo, auctionRepo, accountRepo, regRepo, donorRepo, lotRepo, store)
	donationSvc := services.NewDonationService(db, itemRepo, auctionRepo, accountRepo, patronRepo)
	regSvc := services.NewRegistrationService(db, regRepo, itemRepo, auctionRepo, patronRepo)
	patronSvc := services.NewPatronService(db, patronRepo, itemRepo, regRepo)
	donorSvc := services.NewDonorService(donorRepo)
	invSvc := services.NewInvitationService(db, invRepo, auctionRepo, userRepo)

	return &Deps{
		AuthHandler:         &AuthHandler{Auth: authSvc},
		AuctionHandler:      &AuctionHandler{Auctions: auctionSvc, Repo: auctionRepo, Lots: lotRepo},
		ItemHandler:         &ItemHandler{Items: itemSvc, Repo: itemRepo, Auctions: auctionRepo},
		DonationHandler:     &DonationHandler{Donations: donationSvc},
		RegistrationHandler: &RegistrationHandler{Registrations: regSvc, Repo: regRepo, Auctions: auctionRepo},
		PatronHandler:       &PatronHandler{Patrons: patronSvc},
		DonorHandler:        &DonorHandler{Donors: donorSvc},
		InvitationHandler:   &InvitationHandler{Invitations: invSvc, Repo: invRepo},
		ExportHandler: &ExportHandler{
			Auctions: auctionRepo, Items: itemRepo, Patrons: patronRepo,
			Donors: donorRepo, Registrations: regRepo,
		},
		Auth: authSvc,
	}
}
