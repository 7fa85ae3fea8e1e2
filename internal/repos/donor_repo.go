package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"gavelbook/internal/domain"
)

type DonorRepo struct{ db *sqlx.DB }

func NewDonorRepo(db *sqlx.DB) *DonorRepo { return &DonorRepo{db: db} }

const donorCols = `id, account_id, name, email, phone, address, donor_type, created_at`

// Get reads one donor; q may be the DB handle or an open transaction.
func (r *DonorRepo) Get(q sqlx.Queryer, accountID, id string) (domain.Donor, error) {
	var d domain.Donor
	err := sqlx.Get(q, &d, `SELECT `+donorCols+` FROM donors WHERE id = ? AND account_id = ?`, id, accountID)
	if err == sql.ErrNoRows {
		return d, domain.NotFoundf("donor %s", id)
	}
	return d, err
}

func (r *DonorRepo) DB() sqlx.Queryer { return r.db }

func (r *DonorRepo) ListByAccount(accountID string) ([]domain.Donor, error) {
	out := []domain.Donor{}
	err := r.db.Select(&out, `SELECT `+donorCols+` FROM donors WHERE account_id = ? ORDER BY name`, accountID)
	return out, err
}

func (r *DonorRepo) Create(d domain.Donor) error {
	_, err := r.db.Exec(`
	  INSERT INTO donors(id, account_id, name, email, phone, address, donor_type)
	  VALUES(?, ?, ?, ?, ?, ?, ?)
	`, d.ID, d.AccountID, d.Name, d.Email, d.Phone, d.Address, d.Type)
	return err
}

func (r *DonorRepo) Update(d domain.Donor) error {
	res, err := r.db.Exec(`
	  UPDATE donors SET name = ?, email = ?, phone = ?, address = ?, donor_type = ?
	  WHERE id = ? AND account_id = ?
	`, d.Name, d.Email, d.Phone, d.Address, d.Type, d.ID, d.AccountID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundf("donor %s", d.ID)
	}
	return nil
}

func (r *DonorRepo) Delete(accountID, id string) error {
	res, err := r.db.Exec(`DELETE FROM donors WHERE id = ? AND account_id = ?`, id, accountID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundf("donor %s", id)
	}
	return nil
}
