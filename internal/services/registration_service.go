package services

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gavelbook/internal/domain"
	"gavelbook/internal/repos"
)

// RegistrationService manages per-auction patron registrations and their
// bidder numbers.
type RegistrationService struct {
	db            *sqlx.DB
	Registrations *repos.RegistrationRepo
	Items         *repos.ItemRepo
	Auctions      *repos.AuctionRepo
	Patrons       *repos.PatronRepo
}

func NewRegistrationService(db *sqlx.DB, regs *repos.RegistrationRepo, items *repos.ItemRepo,
	auctions *repos.AuctionRepo, patrons *repos.PatronRepo) *RegistrationService {
	return &RegistrationService{db: db, Registrations: regs, Items: items, Auctions: auctions, Patrons: patrons}
}

// Register creates the join record. The bidder-number and duplicate-patron
// checks run in the same transaction as the insert, so two concurrent
// registrations can never both claim one number.
func (s *RegistrationService) Register(accountID, auctionID, patronID string, bidderNumber int) (domain.Registration, error) {
	if bidderNumber < 1 {
		return domain.Registration{}, domain.Validationf("bidder number must be positive")
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return domain.Registration{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := s.Auctions.Get(tx, accountID, auctionID); err != nil {
		return domain.Registration{}, err
	}
	if _, err := s.Patrons.Get(tx, accountID, patronID); err != nil {
		return domain.Registration{}, err
	}

	if n, err := s.Registrations.CountByBidderNumber(tx, auctionID, bidderNumber); err != nil {
		return domain.Registration{}, err
	} else if n > 0 {
		return domain.Registration{}, domain.Conflictf("bidder number %d is already taken", bidderNumber)
	}
	if n, err := s.Registrations.CountByPatron(tx, auctionID, patronID); err != nil {
		return domain.Registration{}, err
	} else if n > 0 {
		return domain.Registration{}, domain.Conflictf("patron %s is already registered", patronID)
	}

	reg := domain.Registration{
		ID:           uuid.NewString(),
		AuctionID:    auctionID,
		PatronID:     patronID,
		AccountID:    accountID,
		BidderNumber: bidderNumber,
	}
	if err := s.Registrations.Insert(tx, reg); err != nil {
		return domain.Registration{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Registration{}, err
	}
	return reg, nil
}

// Unregister removes the join record unless the patron has won anything in
// the auction (donations count as winnings). The winnings check and the
// delete share one transaction, so a bid recorded in between cannot slip
// past the guard.
func (s *RegistrationService) Unregister(accountID, auctionID, registrationID string) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	reg, err := s.Registrations.Get(tx, auctionID, registrationID)
	if err != nil {
		return err
	}
	if reg.AccountID != accountID {
		return domain.NotFoundf("registration %s", registrationID)
	}

	won, err := s.Items.CountWonBy(tx, auctionID, reg.PatronID)
	if err != nil {
		return err
	}
	if won > 0 {
		return domain.Conflictf("patron has %d won item(s) in this auction", won)
	}

	if err := s.Registrations.Delete(tx, auctionID, registrationID); err != nil {
		return err
	}
	return tx.Commit()
}
