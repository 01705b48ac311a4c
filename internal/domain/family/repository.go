package family

import "context"

type ListFilter struct {
	City       string
	District   string
	ActiveOnly bool
}

type Repository interface {
	CreateFamily(ctx context.Context, family *Family) error
	GetFamily(ctx context.Context, id string) (*Family, error)
	ListFamilies(ctx context.Context, filter ListFilter) ([]Family, error)
	UpdateFamily(ctx context.Context, family *Family) error
	SetFamilyActive(ctx context.Context, id string, active bool) error

	CreateGuardian(ctx context.Context, guardian *Guardian) error
	GetGuardian(ctx context.Context, id string) (*Guardian, error)
	ListGuardians(ctx context.Context, familyID string) ([]Guardian, error)
	UpdateGuardian(ctx context.Context, guardian *Guardian) error
	SetGuardianActive(ctx context.Context, id string, active bool) error
}
