package services

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gavelbook/internal/domain"
	"gavelbook/internal/repos"
)

// PatronService manages the account-wide master patron records. Aggregate
// stats are assembled per read from the items table.
type PatronService struct {
	db            *sqlx.DB
	Patrons       *repos.PatronRepo
	Items         *repos.ItemRepo
	Registrations *repos.RegistrationRepo
}

func NewPatronService(db *sqlx.DB, patrons *repos.PatronRepo, items *repos.ItemRepo, regs *repos.RegistrationRepo) *PatronService {
	return &PatronService{db: db, Patrons: patrons, Items: items, Registrations: regs}
}

type PatronInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Notes   string
}

func (s *PatronService) Create(accountID string, in PatronInput) (domain.Patron, error) {
	if in.Name == "" {
		return domain.Patron{}, domain.Validationf("patron name is required")
	}
	p := domain.Patron{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		Notes:     in.Notes,
	}
	if err := s.Patrons.Create(p); err != nil {
		return domain.Patron{}, err
	}
	return p, nil
}

func (s *PatronService) Update(accountID, patronID string, in PatronInput) (domain.Patron, error) {
	if in.Name == "" {
		return domain.Patron{}, domain.Validationf("patron name is required")
	}
	p := domain.Patron{
		ID:        patronID,
		AccountID: accountID,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		Notes:     in.Notes,
	}
	if err := s.Patrons.Update(p); err != nil {
		return domain.Patron{}, err
	}
	return p, nil
}

// Delete refuses while the patron is still registered anywhere in the
// account; the check and the delete share one transaction.
func (s *PatronService) Delete(accountID, patronID string) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := s.Patrons.Get(tx, accountID, patronID); err != nil {
		return err
	}
	n, err := s.Registrations.CountForPatronAnywhere(tx, accountID, patronID)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.Conflictf("patron is registered for %d auction(s)", n)
	}
	if err := s.Patrons.Delete(tx, accountID, patronID); err != nil {
		return err
	}
	return tx.Commit()
}

// Get returns the patron plus their computed lifetime stats.
func (s *PatronService) Get(accountID, patronID string) (domain.Patron, domain.PatronStats, error) {
	p, err := s.Patrons.Get(s.Patrons.DB(), accountID, patronID)
	if err != nil {
		return domain.Patron{}, domain.PatronStats{}, err
	}
	stats, err := s.Items.StatsFor(accountID, patronID)
	if err != nil {
		return domain.Patron{}, domain.PatronStats{}, err
	}
	return p, stats, nil
}

func (s *PatronService) List(accountID string) ([]domain.Patron, error) {
	return s.Patrons.ListByAccount(accountID)
}
