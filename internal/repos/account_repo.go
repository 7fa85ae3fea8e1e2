package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"gavelbook/internal/domain"
)

type AccountRepo struct{ db *sqlx.DB }

func NewAccountRepo(db *sqlx.DB) *AccountRepo { return &AccountRepo{db: db} }

func (r *AccountRepo) Get(id string) (domain.Account, error) {
	var a domain.Account
	err := r.db.Get(&a, `
	  SELECT id, name, admin_user_id, last_item_sku, created_at
	  FROM accounts WHERE id = ?
	`, id)
	if err == sql.ErrNoRows {
		return a, domain.NotFoundf("account %s", id)
	}
	return a, err
}

// Create inserts the tenant row inside the caller's transaction (paired with
// the first user insert on signup).
func (r *AccountRepo) Create(tx *sqlx.Tx, id, name, adminUserID string) error {
	_, err := tx.Exec(`
	  INSERT INTO accounts(id, name, admin_user_id, last_item_sku)
	  VALUES(?, ?, ?, 0)
	`, id, name, adminUserID)
	return err
}

// AllocateSKU bumps the account's shared item/donation counter and returns the
// new value. Must run inside the same transaction as the write that consumes
// the number; that is what makes allocations unique under concurrency.
// A missing account is fatal for the caller: no row, no retry.
func (r *AccountRepo) AllocateSKU(tx *sqlx.Tx, accountID string) (int64, error) {
	res, err := tx.Exec(`
	  UPDATE accounts SET last_item_sku = last_item_sku + 1 WHERE id = ?
	`, accountID)
	if err != nil {
		return 0, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, domain.NotFoundf("account %s", accountID)
	}
	var next int64
	if err := tx.Get(&next, `SELECT last_item_sku FROM accounts WHERE id = ?`, accountID); err != nil {
		return 0, err
	}
	return next, nil
}
