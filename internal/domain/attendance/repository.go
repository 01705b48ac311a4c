package attendance

import (
	"context"
	"time"
)

type ListFilter struct {
	MemberID     string
	ClassGroupID string
	Date         *time.Time
	DateFrom     *time.Time
	DateTo       *time.Time
}

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	Create(ctx context.Context, record *Record) error
	GetByID(ctx context.Context, id string) (*Record, error)
	Update(ctx context.Context, record *Record) error
	UpdatePresent(ctx context.Context, id string, present bool) error
	SetActive(ctx context.Context, id string, active bool) error
	List(ctx context.Context, filter ListFilter) ([]Record, error)
	ListByMember(ctx context.Context, memberID string) ([]Record, error)
	ListRange(ctx context.Context, from, to time.Time) ([]MeetingRow, error)
	MemberExists(ctx context.Context, memberID string) (bool, error)
}
