package services_test

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"gavelbook/internal/assets"
	"gavelbook/internal/repos"
	"gavelbook/internal/services"
)

// The demo seed in repos.OpenDB gives every test a tenant to work in.
const (
	testAccount = "acct-demo"
	testAuction = "auc-gala"
	patronAnn   = "pat-ann"
	patronBo    = "pat-bo"
	categoryArt = "cat-art"
	donorGal    = "don-gallery"
)

type harness struct {
	db            *sqlx.DB
	accounts      *repos.AccountRepo
	auctions      *repos.AuctionRepo
	items         *repos.ItemRepo
	lots          *repos.LotRepo
	patrons       *repos.PatronRepo
	registrations *repos.RegistrationRepo
	donors        *repos.DonorRepo
	invitations   *repos.InvitationRepo
	users         *repos.UserRepo

	itemSvc     *services.ItemService
	donationSvc *services.DonationService
	regSvc      *services.RegistrationService
	auctionSvc  *services.AuctionService
	patronSvc   *services.PatronService
	authSvc     *services.AuthService
	invSvc      *services.InvitationService

	store *assets.LocalStore
}

// newHarness opens a file-backed test database (transactions plus pooled
// connections do not mix with ':memory:') and wires the full service stack.
func newHarness(t *testing.T) *harness {
	t.Helper()

	dsn := "file:" + filepath.ToSlash(filepath.Join(t.TempDir(), "test.db")) + "?_pragma=busy_timeout(10000)"
	db, err := repos.OpenDB(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := assets.NewLocalStore(filepath.Join(t.TempDir(), "media"))
	require.NoError(t, err)

	h := &harness{
		db:            db,
		accounts:      repos.NewAccountRepo(db),
		auctions:      repos.NewAuctionRepo(db),
		items:         repos.NewItemRepo(db),
		lots:          repos.NewLotRepo(db),
		patrons:       repos.NewPatronRepo(db),
		registrations: repos.NewRegistrationRepo(db),
		donors:        repos.NewDonorRepo(db),
		invitations:   repos.NewInvitationRepo(db),
		users:         repos.NewUserRepo(db),
		store:         store,
	}
	h.itemSvc = services.NewItemService(db, h.items, h.auctions, h.accounts, h.registrations, h.donors, h.lots, store)
	h.donationSvc = services.NewDonationService(db, h.items, h.auctions, h.accounts, h.patrons)
	h.regSvc = services.NewRegistrationService(db, h.registrations, h.items, h.auctions, h.patrons)
	h.auctionSvc = services.NewAuctionService(db, h.auctions, h.lots, h.items)
	h.patronSvc = services.NewPatronService(db, h.patrons, h.items, h.registrations)
	h.authSvc = services.NewAuthService(db, h.users, h.accounts)
	h.invSvc = services.NewInvitationService(db, h.invitations, h.auctions, h.users)
	return h
}

// addItem creates a plain unsold item and returns it.
func (h *harness) addItem(t *testing.T, name string, value float64) gbItem {
	t.Helper()
	it, err := h.itemSvc.Create(testAccount, testAuction, services.ItemInput{
		Name:           name,
		EstimatedValue: value,
		CategoryID:     categoryArt,
	}, nil)
	require.NoError(t, err)
	return gbItem{it.ID, it.SKU}
}

// register enrolls a patron with a bidder number.
func (h *harness) register(t *testing.T, patronID string, number int) string {
	t.Helper()
	reg, err := h.regSvc.Register(testAccount, testAuction, patronID, number)
	require.NoError(t, err)
	return reg.ID
}

type gbItem struct {
	ID  string
	SKU string
}
