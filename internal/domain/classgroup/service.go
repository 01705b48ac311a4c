package classgroup

import (
	"context"
	"strings"

	"amparo-go/internal/domain/auth"
	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Input struct {
	Name   string
	MinAge int
	MaxAge int
}

func (s *Service) Create(ctx context.Context, actor auth.Actor, input Input) (*ClassGroup, error) {
	if !actor.IsStaff() {
		return nil, auth.ErrForbidden
	}
	if input.MinAge > input.MaxAge {
		return nil, ErrInvalidAgeRange
	}

	group := ClassGroup{
		ID:     uuid.NewString(),
		Name:   strings.TrimSpace(input.Name),
		MinAge: input.MinAge,
		MaxAge: input.MaxAge,
		Active: true,
	}
	if err := s.repo.Create(ctx, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

func (s *Service) Get(ctx context.Context, id string) (*ClassGroup, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]ClassGroup, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, actor auth.Actor, id string, input Input) (*ClassGroup, error) {
	if !actor.IsStaff() {
		return nil, auth.ErrForbidden
	}
	if input.MinAge > input.MaxAge {
		return nil, ErrInvalidAgeRange
	}

	group, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	group.Name = strings.TrimSpace(input.Name)
	group.MinAge = input.MinAge
	group.MaxAge = input.MaxAge

	if err := s.repo.Update(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
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

// SuggestForAge returns the first active class group whose age band contains
// the given age. Groups are scanned in name order so the suggestion is
// deterministic when bands overlap. Returns nil when no group matches.
func (s *Service) SuggestForAge(ctx context.Context, age int) (*ClassGroup, error) {
	if age < 0 {
		return nil, nil
	}

	groups, err := s.repo.ListActiveOrderedByName(ctx)
	if err != nil {
		return nil, err
	}

	for i := range groups {
		if groups[i].Contains(age) {
			return &groups[i], nil
		}
	}
	return nil, nil
}
