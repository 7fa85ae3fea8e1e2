package services

import (
	"github.com/google/uuid"

	"gavelbook/internal/domain"
	"gavelbook/internal/repos"
)

type DonorService struct {
	Donors *repos.DonorRepo
}

func NewDonorService(donors *repos.DonorRepo) *DonorService { return &DonorService{Donors: donors} }

type DonorInput struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Type    string
}

func (s *DonorService) Create(accountID string, in DonorInput) (domain.Donor, error) {
	if in.Name == "" {
		return domain.Donor{}, domain.Validationf("donor name is required")
	}
	if in.Type != "individual" && in.Type != "business" {
		return domain.Donor{}, domain.Validationf("donor type must be individual or business")
	}
	d := domain.Donor{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		Type:      in.Type,
	}
	if err := s.Donors.Create(d); err != nil {
		return domain.Donor{}, err
	}
	return d, nil
}

func (s *DonorService) Update(accountID, donorID string, in DonorInput) (domain.Donor, error) {
	if in.Name == "" {
		return domain.Donor{}, domain.Validationf("donor name is required")
	}
	if in.Type != "individual" && in.Type != "business" {
		return domain.Donor{}, domain.Validationf("donor type must be individual or business")
	}
	d := domain.Donor{
		ID:        donorID,
		AccountID: accountID,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		Type:      in.Type,
	}
	if err := s.Donors.Update(d); err != nil {
		return domain.Donor{}, err
	}
	return d, nil
}

func (s *DonorService) Delete(accountID, donorID string) error {
	return s.Donors.Delete(accountID, donorID)
}

func (s *DonorService) Get(accountID, donorID string) (domain.Donor, error) {
	return s.Donors.Get(s.Donors.DB(), accountID, donorID)
}

func (s *DonorService) List(accountID string) ([]domain.Donor, error) {
	return s.Donors.ListByAccount(accountID)
}
