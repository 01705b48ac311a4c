package report

import "context"

type Repository interface {
	Create(ctx context.Context, report *Report) error
	GetByID(ctx context.Context, id string) (*Report, error)
	List(ctx context.Context) ([]Report, error)
	SetActive(ctx context.Context, id string, active bool) error

	ListMemberSizes(ctx context.Context) ([]MemberSizes, error)
	CountMembers(ctx context.Context) (int64, error)
	ListFamilyProgramFlags(ctx context.Context) ([]bool, error)
}
