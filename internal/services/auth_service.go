package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"gavelbook/internal/domain"
	"gavelbook/internal/repos"
)

var ErrBadCreds = errors.New("invalid email or password")

type AuthService struct {
	db       *sqlx.DB
	Users    *repos.UserRepo
	Accounts *repos.AccountRepo
}

func NewAuthService(db *sqlx.DB, users *repos.UserRepo, accounts *repos.AccountRepo) *AuthService {
	return &AuthService{db: db, Users: users, Accounts: accounts}
}

// Signup creates the user and their account in one transaction: the first
// signup is what brings a tenant into existence, and the signing user becomes
// the account admin.
func (s *AuthService) Signup(email, name, password, orgName string) (*domain.User, error) {
	if orgName == "" {
		return nil, domain.Validationf("organization name is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	u := domain.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		Hash:      string(hash),
		AccountID: uuid.NewString(),
	}
	if err := s.Accounts.Create(tx, u.AccountID, orgName, u.ID); err != nil {
		return nil, err
	}
	if err := s.Users.Create(tx, u); err != nil {
		return nil, domain.Conflictf("email %s is already in use", email)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}
