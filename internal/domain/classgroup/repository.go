package classgroup

import "context"

type Repository interface {
	Create(ctx context.Context, group *ClassGroup) error
	GetByID(ctx context.Context, id string) (*ClassGroup, error)
	List(ctx context.Context) ([]ClassGroup, error)
	ListActiveOrderedByName(ctx context.Context) ([]ClassGroup, error)
	Update(ctx context.Context, group *ClassGroup) error
	SetActive(ctx context.Context, id string, active bool) error
}
