package member

import (
	"context"
	"errors"
	"strings"
	"time"

	"amparo-go/internal/domain/auth"
	"github.com/google/uuid"
)

var ErrBirthDateRequired = errors.New("birth date is required")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Input struct {
	FamilyID          string
	FullName          string
	BirthDate         time.Time
	Sex               string
	Studying          bool
	School            string
	SchoolGrade       string
	RG                string
	NIS               string
	EnrollmentDocPath string
	PhotoPath         string
	ShortsSize        string
	PantsSize         string
	ShirtSize         string
}

func (s *Service) Create(ctx context.Context, actor auth.Actor, input Input) (*Member, error) {
	if !actor.IsStaff() {
		return nil, auth.ErrForbidden
	}
	if input.BirthDate.IsZero() {
		return nil, ErrBirthDateRequired
	}

	exists, err := s.repo.FamilyExists(ctx, input.FamilyID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrFamilyNotFound
	}

	m := Member{
		ID:     uuid.NewString(),
		Active: true,
	}
	apply(&m, input)

	if err := s.repo.Create(ctx, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Member, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Member, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Update(ctx context.Context, actor auth.Actor, id string, input Input) (*Member, error) {
	if !actor.IsStaff() {
		return nil, auth.ErrForbidden
	}
	if input.BirthDate.IsZero() {
		return nil, ErrBirthDateRequired
	}

	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FamilyID != "" && input.FamilyID != m.FamilyID {
		exists, err := s.repo.FamilyExists(ctx, input.FamilyID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrFamilyNotFound
		}
	} else {
		input.FamilyID = m.FamilyID
	}

	apply(m, input)

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Deactivate(ctx context.Context, actor auth.Actor, id string) error {
	if !actor.IsStaff() {
		return auth.ErrForbidden
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.SetActive(ctx, id, false)
}

func apply(m *Member, input Input) {
	m.FamilyID = input.FamilyID
	m.FullName = strings.TrimSpace(input.FullName)
	m.BirthDate = input.BirthDate
	m.Sex = strings.ToUpper(strings.TrimSpace(input.Sex))
	m.Studying = input.Studying
	m.School = strings.TrimSpace(input.School)
	m.SchoolGrade = strings.TrimSpace(input.SchoolGrade)
	m.RG = strings.TrimSpace(input.RG)
	m.NIS = strings.TrimSpace(input.NIS)
	m.EnrollmentDocPath = strings.TrimSpace(input.EnrollmentDocPath)
	m.PhotoPath = strings.TrimSpace(input.PhotoPath)
	m.ShortsSize = strings.TrimSpace(input.ShortsSize)
	m.PantsSize = strings.TrimSpace(input.PantsSize)
	m.ShirtSize = strings.TrimSpace(input.ShirtSize)
}
