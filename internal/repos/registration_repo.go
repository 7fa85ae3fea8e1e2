package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"gavelbook/internal/domain"
)

type RegistrationRepo struct{ db *sqlx.DB }

func NewRegistrationRepo(db *sqlx.DB) *RegistrationRepo { return &RegistrationRepo{db: db} }

const registrationCols = `id, auction_id, patron_id, account_id, bidder_number, created_at`

// Get reads one registration; q may be the DB handle or an open transaction.
func (r *RegistrationRepo) Get(q sqlx.Queryer, auctionID, id string) (domain.Registration, error) {
	var reg domain.Registration
	err := sqlx.Get(q, &reg, `
	  SELECT `+registrationCols+` FROM registered_patrons WHERE id = ? AND auction_id = ?
	`, id, auctionID)
	if err == sql.ErrNoRows {
		return reg, domain.NotFoundf("registration %s", id)
	}
	return reg, err
}

// ByPatron finds the patron's registration in an auction; q may be a
// transaction so the winning-bid recorder can read it atomically with its
// item write.
func (r *RegistrationRepo) ByPatron(q sqlx.Queryer, auctionID, patronID string) (domain.Registration, error) {
	var reg domain.Registration
	err := sqlx.Get(q, &reg, `
	  SELECT `+registrationCols+` FROM registered_patrons WHERE auction_id = ? AND patron_id = ?
	`, auctionID, patronID)
	if err == sql.ErrNoRows {
		return reg, domain.NotFoundf("registration for patron %s", patronID)
	}
	return reg, err
}

func (r *RegistrationRepo) DB() sqlx.Queryer { return r.db }

func (r *RegistrationRepo) ListByAuction(auctionID string) ([]domain.Registration, error) {
	out := []domain.Registration{}
	err := r.db.Select(&out, `
	  SELECT `+registrationCols+` FROM registered_patrons
	  WHERE auction_id = ? ORDER BY bidder_number
	`, auctionID)
	return out, err
}

// CountByBidderNumber checks bidder-number occupancy within the transaction
// that inserts the registration, keeping the uniqueness check and the insert
// one atomic step.
func (r *RegistrationRepo) CountByBidderNumber(q sqlx.Queryer, auctionID string, bidderNumber int) (int, error) {
	var n int
	err := sqlx.Get(q, &n, `
	  SELECT COUNT(*) FROM registered_patrons WHERE auction_id = ? AND bidder_number = ?
	`, auctionID, bidderNumber)
	return n, err
}

func (r *RegistrationRepo) CountByPatron(q sqlx.Queryer, auctionID, patronID string) (int, error) {
	var n int
	err := sqlx.Get(q, &n, `
	  SELECT COUNT(*) FROM registered_patrons WHERE auction_id = ? AND patron_id = ?
	`, auctionID, patronID)
	return n, err
}

// CountForPatronAnywhere counts the patron's registrations across every
// auction in the account (patron deletion guard).
func (r *RegistrationRepo) CountForPatronAnywhere(q sqlx.Queryer, accountID, patronID string) (int, error) {
	var n int
	err := sqlx.Get(q, &n, `
	  SELECT COUNT(*) FROM registered_patrons WHERE account_id = ? AND patron_id = ?
	`, accountID, patronID)
	return n, err
}

func (r *RegistrationRepo) Insert(tx *sqlx.Tx, reg domain.Registration) error {
	_, err := tx.Exec(`
	  INSERT INTO registered_patrons(id, auction_id, patron_id, account_id, bidder_number)
	  VALUES(?, ?, ?, ?, ?)
	`, reg.ID, reg.AuctionID, reg.PatronID, reg.AccountID, reg.BidderNumber)
	return err
}

func (r *RegistrationRepo) Delete(tx *sqlx.Tx, auctionID, id string) error {
	res, err := tx.Exec(`DELETE FROM registered_patrons WHERE id = ? AND auction_id = ?`, id, auctionID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundf("registration %s", id)
	}
	return nil
}
