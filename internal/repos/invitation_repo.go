package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"gavelbook/internal/domain"
)

type InvitationRepo struct{ db *sqlx.DB }

func NewInvitationRepo(db *sqlx.DB) *InvitationRepo { return &InvitationRepo{db: db} }

const invitationCols = `id, account_id, auction_id, email, status, accepted_by, created_at`

// Get reads one invitation; q may be a transaction (accept reads, flips and
// grants the manager role atomically).
func (r *InvitationRepo) Get(q sqlx.Queryer, id string) (domain.Invitation, error) {
	var inv domain.Invitation
	err := sqlx.Get(q, &inv, `SELECT `+invitationCols+` FROM invitations WHERE id = ?`, id)
	if err == sql.ErrNoRows {
		return inv, domain.NotFoundf("invitation %s", id)
	}
	return inv, err
}

func (r *InvitationRepo) ListByAccount(accountID string) ([]domain.Invitation, error) {
	out := []domain.Invitation{}
	err := r.db.Select(&out, `
	  SELECT `+invitationCols+` FROM invitations
	  WHERE account_id = ? ORDER BY datetime(created_at) DESC
	`, accountID)
	return out, err
}

func (r *InvitationRepo) PendingByEmail(email string) ([]domain.Invitation, error) {
	out := []domain.Invitation{}
	err := r.db.Select(&out, `
	  SELECT `+invitationCols+` FROM invitations
	  WHERE LOWER(email) = LOWER(?) AND status = 'pending'
	  ORDER BY datetime(created_at) DESC
	`, email)
	return out, err
}

func (r *InvitationRepo) Create(inv domain.Invitation) error {
	_, err := r.db.Exec(`
	  INSERT INTO invitations(id, account_id, auction_id, email, status)
	  VALUES(?, ?, ?, ?, 'pending')
	`, inv.ID, inv.AccountID, inv.AuctionID, inv.Email)
	return err
}

// MarkAccepted flips pending to accepted; zero rows means the invitation was
// already consumed.
func (r *InvitationRepo) MarkAccepted(tx *sqlx.Tx, id, userID string) error {
	res, err := tx.Exec(`
	  UPDATE invitations SET status = 'accepted', accepted_by = ?
	  WHERE id = ? AND status = 'pending'
	`, userID, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Conflictf("invitation %s already accepted", id)
	}
	return nil
}
