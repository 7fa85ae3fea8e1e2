package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"gavelbook/internal/domain"
)

type ItemRepo struct{ db *sqlx.DB }

func NewItemRepo(db *sqlx.DB) *ItemRepo { return &ItemRepo{db: db} }

const itemCols = `id, auction_id, account_id, sku, name, description, estimated_value,
	  category_id, category_name, donor_id, donor_name, lot_id, image_key,
	  winning_bid, winning_bidder_id, winner_name, winner_bidder_number,
	  paid, payment_method, created_at`

// Get reads one item; q may be the DB handle or an open transaction.
func (r *ItemRepo) Get(q sqlx.Queryer, auctionID, itemID string) (domain.Item, error) {
	var it domain.Item
	err := sqlx.Get(q, &it, `
	  SELECT `+itemCols+` FROM items WHERE id = ? AND auction_id = ?
	`, itemID, auctionID)
	if err == sql.ErrNoRows {
		return it, domain.NotFoundf("item %s", itemID)
	}
	return it, err
}

func (r *ItemRepo) DB() sqlx.Queryer { return r.db }

// ListByAuction returns every record including donation pseudo-items; callers
// that want real items only filter with Item.IsDonation.
func (r *ItemRepo) ListByAuction(auctionID string) ([]domain.Item, error) {
	out := []domain.Item{}
	err := r.db.Select(&out, `
	  SELECT `+itemCols+` FROM items
	  WHERE auction_id = ?
	  ORDER BY length(sku), sku
	`, auctionID)
	return out, err
}

func (r *ItemRepo) Insert(tx *sqlx.Tx, it domain.Item) error {
	_, err := tx.Exec(`
	  INSERT INTO items(id, auction_id, account_id, sku, name, description, estimated_value,
	    category_id, category_name, donor_id, donor_name, lot_id, image_key,
	    winning_bid, winning_bidder_id, winner_name, winner_bidder_number, paid, payment_method)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	`, it.ID, it.AuctionID, it.AccountID, it.SKU, it.Name, it.Description, it.EstimatedValue,
		it.CategoryID, it.CategoryName, it.DonorID, it.DonorName, it.LotID, it.ImageKey,
		it.WinningBid, it.WinningBidder, it.WinnerName, it.WinnerBidderNumber, it.Paid, it.PaymentMethod)
	return err
}

// UpdateFields replaces the mutable fields; sale state and SKU are untouched.
func (r *ItemRepo) UpdateFields(tx *sqlx.Tx, it domain.Item) error {
	res, err := tx.Exec(`
	  UPDATE items SET name = ?, description = ?, estimated_value = ?,
	    category_id = ?, category_name = ?, donor_id = ?, donor_name = ?, image_key = ?
	  WHERE id = ? AND auction_id = ?
	`, it.Name, it.Description, it.EstimatedValue,
		it.CategoryID, it.CategoryName, it.DonorID, it.DonorName, it.ImageKey,
		it.ID, it.AuctionID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundf("item %s", it.ID)
	}
	return nil
}

func (r *ItemRepo) Delete(tx *sqlx.Tx, auctionID, itemID string) error {
	res, err := tx.Exec(`DELETE FROM items WHERE id = ? AND auction_id = ?`, itemID, auctionID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundf("item %s", itemID)
	}
	return nil
}

// SetWinningBid writes the sale fields plus the winner snapshot.
func (r *ItemRepo) SetWinningBid(tx *sqlx.Tx, auctionID, itemID string, amount float64, patronID, winnerName string, bidderNumber int) error {
	res, err := tx.Exec(`
	  UPDATE items SET winning_bid = ?, winning_bidder_id = ?, winner_name = ?, winner_bidder_number = ?
	  WHERE id = ? AND auction_id = ?
	`, amount, patronID, winnerName, bidderNumber, itemID, auctionID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundf("item %s", itemID)
	}
	return nil
}

func (r *ItemRepo) MarkPaid(tx *sqlx.Tx, auctionID, itemID, method string) error {
	res, err := tx.Exec(`
	  UPDATE items SET paid = 1, payment_method = ? WHERE id = ? AND auction_id = ?
	`, method, itemID, auctionID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundf("item %s", itemID)
	}
	return nil
}

func (r *ItemRepo) SetLot(auctionID, itemID, lotID string) error {
	res, err := r.db.Exec(`UPDATE items SET lot_id = ? WHERE id = ? AND auction_id = ?`, lotID, itemID, auctionID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundf("item %s", itemID)
	}
	return nil
}

// ClearLot detaches every member of a lot inside the caller's transaction
// (paired with the lot delete).
func (r *ItemRepo) ClearLot(tx *sqlx.Tx, auctionID, lotID string) error {
	_, err := tx.Exec(`UPDATE items SET lot_id = '' WHERE auction_id = ? AND lot_id = ?`, auctionID, lotID)
	return err
}

// CountWonBy counts records (donations included) won by a patron in an
// auction; q may be a transaction so the check stays atomic with a dependent
// delete.
func (r *ItemRepo) CountWonBy(q sqlx.Queryer, auctionID, patronID string) (int, error) {
	var n int
	err := sqlx.Get(q, &n, `
	  SELECT COUNT(*) FROM items WHERE auction_id = ? AND winning_bidder_id = ?
	`, auctionID, patronID)
	return n, err
}

func (r *ItemRepo) CountByCategory(q sqlx.Queryer, auctionID, categoryID string) (int, error) {
	var n int
	err := sqlx.Get(q, &n, `
	  SELECT COUNT(*) FROM items WHERE auction_id = ? AND category_id = ?
	`, auctionID, categoryID)
	return n, err
}

// WonBy lists a patron's won records in an auction, donations included.
func (r *ItemRepo) WonBy(auctionID, patronID string) ([]domain.Item, error) {
	out := []domain.Item{}
	err := r.db.Select(&out, `
	  SELECT `+itemCols+` FROM items
	  WHERE auction_id = ? AND winning_bidder_id = ?
	  ORDER BY length(sku), sku
	`, auctionID, patronID)
	return out, err
}

// StatsFor aggregates a patron's lifetime totals across the account at read
// time; nothing is stored.
func (r *ItemRepo) StatsFor(accountID, patronID string) (domain.PatronStats, error) {
	var s domain.PatronStats
	err := r.db.Get(&s, `
	  SELECT COALESCE(SUM(winning_bid),0) AS total_spent, COUNT(*) AS items_won
	  FROM items WHERE account_id = ? AND winning_bidder_id = ?
	`, accountID, patronID)
	return s, err
}
