package basket

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

type Input struct {
	FamilyID     string
	DeliveryDate time.Time
	Notes        string
}

func (s *Service) Create(ctx context.Context, actor auth.Actor, input Input) (*Delivery, error) {
	if !actor.IsStaff() {
		return nil, auth.ErrForbidden
	}

	delivery, err := buildDelivery(input)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.FamilyExists(ctx, input.FamilyID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrFamilyNotFound
	}

	if err := s.repo.Create(ctx, delivery); err != nil {
		return nil, err
	}
	return delivery, nil
}

// CreateBatch inserts deliveries sequentially inside one transaction; the
// first invalid entry aborts the whole batch.
func (s *Service) CreateBatch(ctx context.Context, actor auth.Actor, inputs []Input) ([]Delivery, error) {
	if !actor.IsStaff() {
		return nil, auth.ErrForbidden
	}
	if len(inputs) == 0 {
		return nil, ErrEmptyBatch
	}

	created := make([]Delivery, 0, len(inputs))
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		for _, input := range inputs {
			delivery, err := buildDelivery(input)
			if err != nil {
				return err
			}

			exists, err := tx.FamilyExists(ctx, input.FamilyID)
			if err != nil {
				return err
			}
			if !exists {
				return ErrFamilyNotFound
			}

			if err := tx.Create(ctx, delivery); err != nil {
				return err
			}
			created = append(created, *delivery)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Delivery, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Delivery, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Update(ctx context.Context, actor auth.Actor, id string, input Input) (*Delivery, error) {
	if !actor.IsStaff() {
		return nil, auth.ErrForbidden
	}

	delivery, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FamilyID != "" && input.FamilyID != delivery.FamilyID {
		exists, err := s.repo.FamilyExists(ctx, input.FamilyID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrFamilyNotFound
		}
		delivery.FamilyID = input.FamilyID
	}
	if !input.DeliveryDate.IsZero() {
		delivery.DeliveryDate = dateOnly(input.DeliveryDate)
	}
	delivery.Notes = strings.TrimSpace(input.Notes)

	if err := s.repo.Update(ctx, delivery); err != nil {
		return nil, err
	}
	return delivery, nil
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

func buildDelivery(input Input) (*Delivery, error) {
	if input.FamilyID == "" {
		return nil, ErrFamilyRequired
	}
	if input.DeliveryDate.IsZero() {
		return nil, ErrDateRequired
	}

	return &Delivery{
		ID:           uuid.NewString(),
		FamilyID:     input.FamilyID,
		DeliveryDate: dateOnly(input.DeliveryDate),
		Notes:        strings.TrimSpace(input.Notes),
		Active:       true,
	}, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
