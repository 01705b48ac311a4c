package basket

import (
	"context"
	"time"
)

type ListFilter struct {
	FamilyID string
	DateFrom *time.Time
	DateTo   *time.Time
}

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	Create(ctx context.Context, delivery *Delivery) error
	GetByID(ctx context.Context, id string) (*Delivery, error)
	Update(ctx context.Context, delivery *Delivery) error
	SetActive(ctx context.Context, id string, active bool) error
	List(ctx context.Context, filter ListFilter) ([]Delivery, error)
	ListByFamily(ctx context.Context, familyID string) ([]Delivery, error)
	ListRange(ctx context.Context, from, to time.Time) ([]DeliveryRow, error)
	FamilyExists(ctx context.Context, familyID string) (bool, error)
}
