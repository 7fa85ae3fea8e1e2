package services

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gavelbook/internal/domain"
	"gavelbook/internal/repos"
)

// AuctionService covers auction lifecycle plus the category and lot
// mutators. Auctions are never hard-deleted.
type AuctionService struct {
	db       *sqlx.DB
	Auctions *repos.AuctionRepo
	Lots     *repos.LotRepo
	Items    *repos.ItemRepo
}

func NewAuctionService(db *sqlx.DB, auctions *repos.AuctionRepo, lots *repos.LotRepo, items *repos.ItemRepo) *AuctionService {
	return &AuctionService{db: db, Auctions: auctions, Lots: lots, Items: items}
}

type AuctionInput struct {
	Name          string
	Description   string
	Type          string
	StartsAt      string
	PublicCatalog bool
}

func (s *AuctionService) Create(accountID string, in AuctionInput) (domain.Auction, error) {
	if in.Name == "" {
		return domain.Auction{}, domain.Validationf("auction name is required")
	}
	switch in.Type {
	case "Live", "Silent", "Hybrid":
	default:
		return domain.Auction{}, domain.Validationf("auction type must be Live, Silent or Hybrid")
	}

	a := domain.Auction{
		ID:            uuid.NewString(),
		AccountID:     accountID,
		Name:          in.Name,
		Description:   in.Description,
		Type:          in.Type,
		Status:        "upcoming",
		StartsAt:      in.StartsAt,
		PublicCatalog: in.PublicCatalog,
	}
	if err := s.Auctions.Create(a); err != nil {
		return domain.Auction{}, err
	}
	return a, nil
}

func (s *AuctionService) SetStatus(accountID, auctionID, status string) error {
	switch status {
	case "upcoming", "active", "completed":
	default:
		return domain.Validationf("unknown auction status %q", status)
	}
	return s.Auctions.SetStatus(accountID, auctionID, status)
}

func (s *AuctionService) SetPublicCatalog(accountID, auctionID string, public bool) error {
	return s.Auctions.SetPublicCatalog(accountID, auctionID, public)
}

// AddCategory appends a freshly-id'd category to the auction's set.
// Duplicate names are allowed; identity is the generated id.
func (s *AuctionService) AddCategory(accountID, auctionID, name string) (domain.Category, error) {
	if name == "" {
		return domain.Category{}, domain.Validationf("category name is required")
	}
	if _, err := s.Auctions.Get(s.Auctions.DB(), accountID, auctionID); err != nil {
		return domain.Category{}, err
	}
	c := domain.Category{ID: uuid.NewString(), AuctionID: auctionID, Name: name}
	if err := s.Auctions.AddCategory(c); err != nil {
		return domain.Category{}, err
	}
	return c, nil
}

// UpdateCategory replaces the old value with the new one in a single
// transaction; afterwards exactly one category carries the id.
func (s *AuctionService) UpdateCategory(accountID, auctionID, categoryID, name string) (domain.Category, error) {
	if name == "" {
		return domain.Category{}, domain.Validationf("category name is required")
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return domain.Category{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := s.Auctions.Get(tx, accountID, auctionID); err != nil {
		return domain.Category{}, err
	}
	if err := s.Auctions.ReplaceCategory(tx, auctionID, categoryID, name); err != nil {
		return domain.Category{}, err
	}
	// Items carry a denormalized copy of the category name; refresh it here
	// so a rename is not observable as a stale label.
	if _, err := tx.Exec(`
	  UPDATE items SET category_name = ? WHERE auction_id = ? AND category_id = ?
	`, name, auctionID, categoryID); err != nil {
		return domain.Category{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Category{}, err
	}
	return domain.Category{ID: categoryID, AuctionID: auctionID, Name: name}, nil
}

// RemoveCategory deletes the category unless items still reference it.
func (s *AuctionService) RemoveCategory(accountID, auctionID, categoryID string) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := s.Auctions.Get(tx, accountID, auctionID); err != nil {
		return err
	}
	n, err := s.Items.CountByCategory(tx, auctionID, categoryID)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.Conflictf("%d item(s) still use this category", n)
	}
	if err := s.Auctions.DeleteCategory(tx, auctionID, categoryID); err != nil {
		return err
	}
	return tx.Commit()
}

// AddLot creates a lot without touching the auction row. Names need not be
// unique.
func (s *AuctionService) AddLot(accountID, auctionID, name string) (domain.Lot, error) {
	if name == "" {
		return domain.Lot{}, domain.Validationf("lot name is required")
	}
	if _, err := s.Auctions.Get(s.Auctions.DB(), accountID, auctionID); err != nil {
		return domain.Lot{}, err
	}
	l := domain.Lot{ID: uuid.NewString(), AuctionID: auctionID, Name: name}
	if err := s.Lots.Create(l); err != nil {
		return domain.Lot{}, err
	}
	return l, nil
}

func (s *AuctionService) RenameLot(accountID, auctionID, lotID, name string) error {
	if name == "" {
		return domain.Validationf("lot name is required")
	}
	if _, err := s.Auctions.Get(s.Auctions.DB(), accountID, auctionID); err != nil {
		return err
	}
	return s.Lots.Rename(auctionID, lotID, name)
}

// DeleteLot removes the lot and detaches its members in one transaction.
func (s *AuctionService) DeleteLot(accountID, auctionID, lotID string) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := s.Auctions.Get(tx, accountID, auctionID); err != nil {
		return err
	}
	if err := s.Items.ClearLot(tx, auctionID, lotID); err != nil {
		return err
	}
	if err := s.Lots.Delete(tx, auctionID, lotID); err != nil {
		return err
	}
	return tx.Commit()
}
