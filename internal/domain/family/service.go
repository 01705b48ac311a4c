package family

import (
	"context"
	"strings"
	"time"

	"amparo-go/internal/domain/auth"
	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type FamilyInput struct {
	Name                   string
	PostalCode             string
	Street                 string
	Number                 string
	Complement             string
	District               string
	City                   string
	State                  string
	Notes                  string
	ReceivesSocialPrograms bool
	SocialPrograms         string
}

func (s *Service) CreateFamily(ctx context.Context, actor auth.Actor, input FamilyInput) (*Family, error) {
	if !actor.IsStaff() {
		return nil, auth.ErrForbidden
	}

	family := Family{
		ID:                     uuid.NewString(),
		Name:                   strings.TrimSpace(input.Name),
		PostalCode:             strings.TrimSpace(input.PostalCode),
		Street:                 strings.TrimSpace(input.Street),
		Number:                 strings.TrimSpace(input.Number),
		Complement:             strings.TrimSpace(input.Complement),
		District:               strings.TrimSpace(input.District),
		City:                   strings.TrimSpace(input.City),
		State:                  strings.ToUpper(strings.TrimSpace(input.State)),
		Notes:                  input.Notes,
		ReceivesSocialPrograms: input.ReceivesSocialPrograms,
		SocialPrograms:         input.SocialPrograms,
		Active:                 true,
	}
	if err := s.repo.CreateFamily(ctx, &family); err != nil {
		return nil, err
	}
	return &family, nil
}

func (s *Service) GetFamily(ctx context.Context, id string) (*Family, error) {
	return s.repo.GetFamily(ctx, id)
}

func (s *Service) ListFamilies(ctx context.Context, filter ListFilter) ([]Family, error) {
	return s.repo.ListFamilies(ctx, filter)
}

func (s *Service) UpdateFamily(ctx context.Context, actor auth.Actor, id string, input FamilyInput) (*Family, error) {
	if !actor.IsStaff() {
		return nil, auth.ErrForbidden
	}

	family, err := s.repo.GetFamily(ctx, id)
	if err != nil {
		return nil, err
	}

	family.Name = strings.TrimSpace(input.Name)
	family.PostalCode = strings.TrimSpace(input.PostalCode)
	family.Street = strings.TrimSpace(input.Street)
	family.Number = strings.TrimSpace(input.Number)
	family.Complement = strings.TrimSpace(input.Complement)
	family.District = strings.TrimSpace(input.District)
	family.City = strings.TrimSpace(input.City)
	family.State = strings.ToUpper(strings.TrimSpace(input.State))
	family.Notes = input.Notes
	family.ReceivesSocialPrograms = input.ReceivesSocialPrograms
	family.SocialPrograms = input.SocialPrograms

	if err := s.repo.UpdateFamily(ctx, family); err != nil {
		return nil, err
	}
	return family, nil
}

// DeactivateFamily soft-deletes: the row stays in the store with active=false.
func (s *Service) DeactivateFamily(ctx context.Context, actor auth.Actor, id string) error {
	if !actor.IsStaff() {
		return auth.ErrForbidden
	}

	if _, err := s.repo.GetFamily(ctx, id); err != nil {
		return err
	}
	return s.repo.SetFamilyActive(ctx, id, false)
}

type GuardianInput struct {
	FullName     string
	CPF          string
	Phone        string
	Email        string
	Sex          string
	BirthDate    *time.Time
	Relationship string
}

func (s *Service) CreateGuardian(ctx context.Context, actor auth.Actor, familyID string, input GuardianInput) (*Guardian, error) {
	if !actor.IsStaff() {
		return nil, auth.ErrForbidden
	}

	if _, err := s.repo.GetFamily(ctx, familyID); err != nil {
		return nil, err
	}

	guardian := Guardian{
		ID:           uuid.NewString(),
		FamilyID:     familyID,
		FullName:     strings.TrimSpace(input.FullName),
		CPF:          strings.TrimSpace(input.CPF),
		Phone:        strings.TrimSpace(input.Phone),
		Email:        strings.TrimSpace(input.Email),
		Sex:          strings.ToUpper(strings.TrimSpace(input.Sex)),
		Relationship: strings.TrimSpace(input.Relationship),
		Active:       true,
	}
	guardian.BirthDate = input.BirthDate

	if err := s.repo.CreateGuardian(ctx, &guardian); err != nil {
		return nil, err
	}
	return &guardian, nil
}

func (s *Service) ListGuardians(ctx context.Context, familyID string) ([]Guardian, error) {
	if _, err := s.repo.GetFamily(ctx, familyID); err != nil {
		return nil, err
	}
	return s.repo.ListGuardians(ctx, familyID)
}

func (s *Service) UpdateGuardian(ctx context.Context, actor auth.Actor, id string, input GuardianInput) (*Guardian, error) {
	if !actor.IsStaff() {
		return nil, auth.ErrForbidden
	}

	guardian, err := s.repo.GetGuardian(ctx, id)
	if err != nil {
		return nil, err
	}

	guardian.FullName = strings.TrimSpace(input.FullName)
	guardian.CPF = strings.TrimSpace(input.CPF)
	guardian.Phone = strings.TrimSpace(input.Phone)
	guardian.Email = strings.TrimSpace(input.Email)
	guardian.Sex = strings.ToUpper(strings.TrimSpace(input.Sex))
	guardian.Relationship = strings.TrimSpace(input.Relationship)
	guardian.BirthDate = input.BirthDate

	if err := s.repo.UpdateGuardian(ctx, guardian); err != nil {
		return nil, err
	}
	return guardian, nil
}

func (s *Service) DeactivateGuardian(ctx context.Context, actor auth.Actor, id string) error {
	if !actor.IsStaff() {
		return auth.ErrForbidden
	}

	if _, err := s.repo.GetGuardian(ctx, id); err != nil {
		return err
	}
	return s.repo.SetGuardianActive(ctx, id, false)
}
