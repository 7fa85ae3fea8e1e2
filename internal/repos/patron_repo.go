package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"gavelbook/internal/domain"
)

type PatronRepo struct{ db *sqlx.DB }

func NewPatronRepo(db *sqlx.DB) *PatronRepo { return &PatronRepo{db: db} }

const patronCols = `id, account_id, name, email, phone, address, notes, created_at`

// Get reads one patron; q may be the DB handle or an open transaction (the
// donation recorder reads the patron inside its write transaction).
func (r *PatronRepo) Get(q sqlx.Queryer, accountID, id string) (domain.Patron, error) {
	var p domain.Patron
	err := sqlx.Get(q, &p, `SELECT `+patronCols+` FROM patrons WHERE id = ? AND account_id = ?`, id, accountID)
	if err == sql.ErrNoRows {
		return p, domain.NotFoundf("patron %s", id)
	}
	return p, err
}

func (r *PatronRepo) DB() sqlx.Queryer { return r.db }

func (r *PatronRepo) ListByAccount(accountID string) ([]domain.Patron, error) {
	out := []domain.Patron{}
	err := r.db.Select(&out, `SELECT `+patronCols+` FROM patrons WHERE account_id = ? ORDER BY name`, accountID)
	return out, err
}

func (r *PatronRepo) Create(p domain.Patron) error {
	_, err := r.db.Exec(`
	  INSERT INTO patrons(id, account_id, name, email, phone, address, notes)
	  VALUES(?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.AccountID, p.Name, p.Email, p.Phone, p.Address, p.Notes)
	return err
}

func (r *PatronRepo) Update(p domain.Patron) error {
	res, err := r.db.Exec(`
	  UPDATE patrons SET name = ?, email = ?, phone = ?, address = ?, notes = ?
	  WHERE id = ? AND account_id = ?
	`, p.Name, p.Email, p.Phone, p.Address, p.Notes, p.ID, p.AccountID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundf("patron %s", p.ID)
	}
	return nil
}

func (r *PatronRepo) Delete(tx *sqlx.Tx, accountID, id string) error {
	res, err := tx.Exec(`DELETE FROM patrons WHERE id = ? AND account_id = ?`, id, accountID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundf("patron %s", id)
	}
	return nil
}
