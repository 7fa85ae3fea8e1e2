package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"gavelbook/internal/domain"
)

type AuctionRepo struct{ db *sqlx.DB }

func NewAuctionRepo(db *sqlx.DB) *AuctionRepo { return &AuctionRepo{db: db} }

const auctionCols = `id, account_id, name, description, type, status, starts_at, public_catalog, item_count, created_at`

// Get reads one auction; q may be the DB handle or an open transaction.
func (r *AuctionRepo) Get(q sqlx.Queryer, accountID, id string) (domain.Auction, error) {
	var a domain.Auction
	err := sqlx.Get(q, &a, `SELECT `+auctionCols+` FROM auctions WHERE id = ? AND account_id = ?`, id, accountID)
	if err == sql.ErrNoRows {
		return a, domain.NotFoundf("auction %s", id)
	}
	return a, err
}

func (r *AuctionRepo) DB() sqlx.Queryer { return r.db }

func (r *AuctionRepo) ListByAccount(accountID string) ([]domain.Auction, error) {
	out := []domain.Auction{}
	err := r.db.Select(&out, `
	  SELECT `+auctionCols+` FROM auctions
	  WHERE account_id = ?
	  ORDER BY datetime(created_at) DESC
	`, accountID)
	return out, err
}

func (r *AuctionRepo) Create(a domain.Auction) error {
	_, err := r.db.Exec(`
	  INSERT INTO auctions(id, account_id, name, description, type, status, starts_at, public_catalog)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.AccountID, a.Name, a.Description, a.Type, a.Status, a.StartsAt, a.PublicCatalog)
	return err
}

func (r *AuctionRepo) SetStatus(accountID, id, status string) error {
	res, err := r.db.Exec(`UPDATE auctions SET status = ? WHERE id = ? AND account_id = ?`, status, id, accountID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundf("auction %s", id)
	}
	return nil
}

func (r *AuctionRepo) SetPublicCatalog(accountID, id string, public bool) error {
	res, err := r.db.Exec(`UPDATE auctions SET public_catalog = ? WHERE id = ? AND account_id = ?`, public, id, accountID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundf("auction %s", id)
	}
	return nil
}

// BumpItemCount adjusts the denormalized item counter inside the caller's
// transaction, alongside the item insert/delete it accounts for.
func (r *AuctionRepo) BumpItemCount(tx *sqlx.Tx, auctionID string, by int) error {
	res, err := tx.Exec(`UPDATE auctions SET item_count = item_count + ? WHERE id = ?`, by, auctionID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundf("auction %s", auctionID)
	}
	return nil
}

// ---------- Categories ----------

func (r *AuctionRepo) Categories(auctionID string) ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.Select(&out, `
	  SELECT id, auction_id, name FROM auction_categories
	  WHERE auction_id = ? ORDER BY name
	`, auctionID)
	return out, err
}

func (r *AuctionRepo) AddCategory(c domain.Category) error {
	_, err := r.db.Exec(`
	  INSERT INTO auction_categories(id, auction_id, name) VALUES(?, ?, ?)
	`, c.ID, c.AuctionID, c.Name)
	return err
}

// ReplaceCategory removes the old value and inserts the replacement under the
// same id as one transaction, so no reader ever sees neither or both.
func (r *AuctionRepo) ReplaceCategory(tx *sqlx.Tx, auctionID, categoryID, name string) error {
	res, err := tx.Exec(`
	  DELETE FROM auction_categories WHERE id = ? AND auction_id = ?
	`, categoryID, auctionID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundf("category %s", categoryID)
	}
	_, err = tx.Exec(`
	  INSERT INTO auction_categories(id, auction_id, name) VALUES(?, ?, ?)
	`, categoryID, auctionID, name)
	return err
}

func (r *AuctionRepo) DeleteCategory(tx *sqlx.Tx, auctionID, categoryID string) error {
	res, err := tx.Exec(`
	  DELETE FROM auction_categories WHERE id = ? AND auction_id = ?
	`, categoryID, auctionID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundf("category %s", categoryID)
	}
	return nil
}

func (r *AuctionRepo) CategoryByID(q sqlx.Queryer, auctionID, categoryID string) (domain.Category, error) {
	var c domain.Category
	err := sqlx.Get(q, &c, `
	  SELECT id, auction_id, name FROM auction_categories
	  WHERE id = ? AND auction_id = ?
	`, categoryID, auctionID)
	if err == sql.ErrNoRows {
		return c, domain.NotFoundf("category %s", categoryID)
	}
	return c, err
}

// ---------- Managers ----------

func (r *AuctionRepo) AddManager(tx *sqlx.Tx, auctionID, userID, role string) error {
	_, err := tx.Exec(`
	  INSERT INTO auction_managers(auction_id, user_id, role) VALUES(?, ?, ?)
	  ON CONFLICT(auction_id, user_id) DO UPDATE SET role = excluded.role
	`, auctionID, userID, role)
	return err
}

func (r *AuctionRepo) IsManager(auctionID, userID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `
	  SELECT COUNT(*) FROM auction_managers WHERE auction_id = ? AND user_id = ?
	`, auctionID, userID)
	return n > 0, err
}
