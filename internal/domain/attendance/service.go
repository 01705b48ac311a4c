package attendance

import (
	"context"
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

type Input struct {
	MemberID     string
	Date         time.Time
	Present      bool
	ClassGroupID *string
}

func (s *Service) Create(ctx context.Context, actor auth.Actor, input Input) (*Record, error) {
	if !actor.IsStaff() {
		return nil, auth.ErrForbidden
	}

	record, err := buildRecord(input)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.MemberExists(ctx, input.MemberID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrMemberNotFound
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// CreateBatch records multiple attendance entries with all-or-nothing
// semantics: entries are validated and inserted sequentially inside one
// transaction and the first invalid entry aborts the whole batch.
func (s *Service) CreateBatch(ctx context.Context, actor auth.Actor, inputs []Input) ([]Record, error) {
	if !actor.IsStaff() {
		return nil, auth.ErrForbidden
	}
	if len(inputs) == 0 {
		return nil, ErrEmptyBatch
	}

	created := make([]Record, 0, len(inputs))
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		for _, input := range inputs {
			record, err := buildRecord(input)
			if err != nil {
				return err
			}

			exists, err := tx.MemberExists(ctx, input.MemberID)
			if err != nil {
				return err
			}
			if !exists {
				return ErrMemberNotFound
			}

			if err := tx.Create(ctx, record); err != nil {
				return err
			}
			created = append(created, *record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Record, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Record, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Update(ctx context.Context, actor auth.Actor, id string, input Input) (*Record, error) {
	if !actor.IsStaff() {
		return nil, auth.ErrForbidden
	}

	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.MemberID != "" && input.MemberID != record.MemberID {
		exists, err := s.repo.MemberExists(ctx, input.MemberID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrMemberNotFound
		}
		record.MemberID = input.MemberID
	}
	if !input.Date.IsZero() {
		record.Date = dateOnly(input.Date)
	}
	record.Present = input.Present
	record.ClassGroupID = input.ClassGroupID

	if err := s.repo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// SetStatus toggles the present flag of a single record.
func (s *Service) SetStatus(ctx context.Context, actor auth.Actor, id string, present bool) (*Record, error) {
	if !actor.IsStaff() {
		return nil, auth.ErrForbidden
	}

	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdatePresent(ctx, id, present); err != nil {
		return nil, err
	}

	record.Present = present
	return record, nil
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

func buildRecord(input Input) (*Record, error) {
	if input.MemberID == "" {
		return nil, ErrMemberRequired
	}
	if input.Date.IsZero() {
		return nil, ErrDateRequired
	}

	return &Record{
		ID:           uuid.NewString(),
		MemberID:     input.MemberID,
		Date:         dateOnly(input.Date),
		Present:      input.Present,
		ClassGroupID: input.ClassGroupID,
		Active:       true,
	}, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
