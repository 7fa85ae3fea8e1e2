package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"gavelbook/internal/domain"
)

type LotRepo struct{ db *sqlx.DB }

func NewLotRepo(db *sqlx.DB) *LotRepo { return &LotRepo{db: db} }

func (r *LotRepo) Get(auctionID, id string) (domain.Lot, error) {
	var l domain.Lot
	err := r.db.Get(&l, `SELECT id, auction_id, name FROM lots WHERE id = ? AND auction_id = ?`, id, auctionID)
	if err == sql.ErrNoRows {
		return l, domain.NotFoundf("lot %s", id)
	}
	return l, err
}

func (r *LotRepo) ListByAuction(auctionID string) ([]domain.Lot, error) {
	out := []domain.Lot{}
	err := r.db.Select(&out, `SELECT id, auction_id, name FROM lots WHERE auction_id = ? ORDER BY name`, auctionID)
	return out, err
}

// Create is a plain insert; lot names are not unique.
func (r *LotRepo) Create(l domain.Lot) error {
	_, err := r.db.Exec(`INSERT INTO lots(id, auction_id, name) VALUES(?, ?, ?)`, l.ID, l.AuctionID, l.Name)
	return err
}

func (r *LotRepo) Rename(auctionID, id, name string) error {
	res, err := r.db.Exec(`UPDATE lots SET name = ? WHERE id = ? AND auction_id = ?`, name, id, auctionID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundf("lot %s", id)
	}
	return nil
}

func (r *LotRepo) Delete(tx *sqlx.Tx, auctionID, id string) error {
	res, err := tx.Exec(`DELETE FROM lots WHERE id = ? AND auction_id = ?`, id, auctionID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundf("lot %s", id)
	}
	return nil
}
