package member

import "context"

type ListFilter struct {
	FamilyID   string
	Studying   *bool
	ActiveOnly bool
}

type Repository interface {
	Create(ctx context.Context, member *Member) error
	GetByID(ctx context.Context, id string) (*Member, error)
	List(ctx context.Context, filter ListFilter) ([]Member, error)
	Update(ctx context.Context, member *Member) error
	SetActive(ctx context.Context, id string, active bool) error
	FamilyExists(ctx context.Context, familyID string) (bool, error)
}
