package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gavelbook/internal/domain"
	"gavelbook/internal/repos"
)

// DonationService records cash donations as item-shaped records in the same
// items table as real items. The SKU comes from the shared account counter,
// rendered as DON-<n>; everything downstream tells the two apart by that
// prefix alone.
type DonationService struct {
	db       *sqlx.DB
	Items    *repos.ItemRepo
	Auctions *repos.AuctionRepo
	Accounts *repos.AccountRepo
	Patrons  *repos.PatronRepo
}

func NewDonationService(db *sqlx.DB, items *repos.ItemRepo, auctions *repos.AuctionRepo,
	accounts *repos.AccountRepo, patrons *repos.PatronRepo) *DonationService {
	return &DonationService{db: db, Items: items, Auctions: auctions, Accounts: accounts, Patrons: patrons}
}

// Record reads the patron and the counter in one transaction and writes the
// pseudo-item: winning bid, winner and estimated value all equal the donated
// amount, category forced to the "Donation" sentinel.
func (s *DonationService) Record(accountID, auctionID, patronID string, amount float64) (domain.Item, error) {
	if amount <= 0 {
		return domain.Item{}, domain.Validationf("donation amount must be positive")
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return domain.Item{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := s.Auctions.Get(tx, accountID, auctionID); err != nil {
		return domain.Item{}, err
	}
	p, err := s.Patrons.Get(tx, accountID, patronID)
	if err != nil {
		return domain.Item{}, err
	}

	next, err := s.Accounts.AllocateSKU(tx, accountID)
	if err != nil {
		return domain.Item{}, err
	}

	it := domain.Item{
		ID:             uuid.NewString(),
		AuctionID:      auctionID,
		AccountID:      accountID,
		SKU:            fmt.Sprintf("%s%d", domain.DonationSKUPrefix, next),
		Name:           fmt.Sprintf("Cash donation from %s", p.Name),
		EstimatedValue: amount,
		CategoryName:   domain.DonationCategoryName,
		WinningBid:     amount,
		WinningBidder:  p.ID,
		WinnerName:     p.Name,
	}
	if err := s.Items.Insert(tx, it); err != nil {
		return domain.Item{}, err
	}
	if err := s.Auctions.BumpItemCount(tx, auctionID, 1); err != nil {
		return domain.Item{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Item{}, err
	}
	return it, nil
}
