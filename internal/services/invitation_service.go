package services

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gavelbook/internal/domain"
	"gavelbook/internal/repos"
)

// InvitationService lets an account admin invite a user to manage one of the
// account's auctions. An invitation is consumed exactly once; accepting it
// adds the user to the auction's manager set.
type InvitationService struct {
	db          *sqlx.DB
	Invitations *repos.InvitationRepo
	Auctions    *repos.AuctionRepo
	Users       *repos.UserRepo
}

func NewInvitationService(db *sqlx.DB, invs *repos.InvitationRepo, auctions *repos.AuctionRepo, users *repos.UserRepo) *InvitationService {
	return &InvitationService{db: db, Invitations: invs, Auctions: auctions, Users: users}
}

func (s *InvitationService) Invite(accountID, auctionID, email string) (domain.Invitation, error) {
	if _, err := s.Auctions.Get(s.Auctions.DB(), accountID, auctionID); err != nil {
		return domain.Invitation{}, err
	}
	inv := domain.Invitation{
		ID:        uuid.NewString(),
		AccountID: accountID,
		AuctionID: auctionID,
		Email:     email,
		Status:    "pending",
	}
	if err := s.Invitations.Create(inv); err != nil {
		return domain.Invitation{}, err
	}
	return inv, nil
}

// Accept flips the invitation to accepted and grants the manager role in one
// transaction. An already-consumed invitation is a conflict, not a repeat.
func (s *InvitationService) Accept(invitationID, userID string) (domain.Invitation, error) {
	u, err := s.Users.ByID(userID)
	if err != nil {
		return domain.Invitation{}, domain.NotFoundf("user %s", userID)
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return domain.Invitation{}, err
	}
	defer func() { _ = tx.Rollback() }()

	inv, err := s.Invitations.Get(tx, invitationID)
	if err != nil {
		return domain.Invitation{}, err
	}
	if inv.Email != "" && u.Email != "" && !strings.EqualFold(inv.Email, u.Email) {
		return domain.Invitation{}, domain.Conflictf("invitation was issued to a different address")
	}
	if err := s.Invitations.MarkAccepted(tx, invitationID, userID); err != nil {
		return domain.Invitation{}, err
	}
	if err := s.Auctions.AddManager(tx, inv.AuctionID, userID, "manager"); err != nil {
		return domain.Invitation{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Invitation{}, err
	}

	inv.Status = "accepted"
	inv.AcceptedBy = userID
	return inv, nil
}
