package member

import (
	"context"
	"errors"
	"testing"
	"time"

	"amparo-go/internal/domain/auth"
)

type fakeMemberRepo struct {
	members  map[string]*Member
	families map[string]struct{}
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{
		members:  make(map[string]*Member),
		families: make(map[string]struct{}),
	}
}

func (r *fakeMemberRepo) Create(ctx context.Context, member *Member) error {
	copied := *member
	r.members[member.ID] = &copied
	return nil
}

func (r *fakeMemberRepo) GetByID(ctx context.Context, id string) (*Member, error) {
	member, ok := r.members[id]
	if !ok {
		return nil, ErrMemberNotFound
	}
	copied := *member
	return &copied, nil
}

func (r *fakeMemberRepo) List(ctx context.Context, filter ListFilter) ([]Member, error) {
	result := make([]Member, 0)
	for _, member := range r.members {
		if filter.FamilyID != "" && member.FamilyID != filter.FamilyID {
			continue
		}
		if filter.Studying != nil && member.Studying != *filter.Studying {
			continue
		}
		if filter.ActiveOnly && !member.Active {
			continue
		}
		result = append(result, *member)
	}
	return result, nil
}

func (r *fakeMemberRepo) Update(ctx context.Context, member *Member) error {
	if _, ok := r.members[member.ID]; !ok {
		return ErrMemberNotFound
	}
	copied := *member
	r.members[member.ID] = &copied
	return nil
}

func (r *fakeMemberRepo) SetActive(ctx context.Context, id string, active bool) error {
	member, ok := r.members[id]
	if !ok {
		return ErrMemberNotFound
	}
	member.Active = active
	return nil
}

func (r *fakeMemberRepo) FamilyExists(ctx context.Context, familyID string) (bool, error) {
	_, ok := r.families[familyID]
	return ok, nil
}

var staff = auth.Actor{UserID: "user-1", Role: auth.RoleAttendant}

func TestCreateMember(t *testing.T) {
	repo := newFakeMemberRepo()
	repo.families["f1"] = struct{}{}

	svc := NewService(repo)
	member, err := svc.Create(context.Background(), staff, Input{
		FamilyID:  "f1",
		FullName:  " Ana Silva ",
		BirthDate: date(2015, time.June, 15),
		Sex:       "f",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if member.FullName != "Ana Silva" {
		t.Fatalf("expected name trimmed, got %q", member.FullName)
	}
	if member.Sex != "F" {
		t.Fatalf("expected sex uppercased, got %q", member.Sex)
	}
	if !member.Active {
		t.Fatalf("expected member active")
	}
}

func TestCreateMemberRequiresBirthDate(t *testing.T) {
	repo := newFakeMemberRepo()
	repo.families["f1"] = struct{}{}

	svc := NewService(repo)
	_, err := svc.Create(context.Background(), staff, Input{FamilyID: "f1", FullName: "Ana"})
	if !errors.Is(err, ErrBirthDateRequired) {
		t.Fatalf("expected ErrBirthDateRequired, got %v", err)
	}
}

func TestCreateMemberUnknownFamily(t *testing.T) {
	svc := NewService(newFakeMemberRepo())
	_, err := svc.Create(context.Background(), staff, Input{
		FamilyID:  "missing",
		FullName:  "Ana",
		BirthDate: date(2015, time.June, 15),
	})
	if !errors.Is(err, ErrFamilyNotFound) {
		t.Fatalf("expected ErrFamilyNotFound, got %v", err)
	}
}

func TestUpdateMemberKeepsFamilyWhenOmitted(t *testing.T) {
	repo := newFakeMemberRepo()
	repo.families["f1"] = struct{}{}

	svc := NewService(repo)
	member, err := svc.Create(context.Background(), staff, Input{
		FamilyID:  "f1",
		FullName:  "Ana",
		BirthDate: date(2015, time.June, 15),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	updated, err := svc.Update(context.Background(), staff, member.ID, Input{
		FullName:  "Ana Souza",
		BirthDate: date(2015, time.June, 15),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.FamilyID != "f1" {
		t.Fatalf("expected family kept, got %q", updated.FamilyID)
	}
	if updated.FullName != "Ana Souza" {
		t.Fatalf("expected name updated, got %q", updated.FullName)
	}
}

func TestDeactivateMember(t *testing.T) {
	repo := newFakeMemberRepo()
	repo.families["f1"] = struct{}{}

	svc := NewService(repo)
	member, err := svc.Create(context.Background(), staff, Input{
		FamilyID:  "f1",
		FullName:  "Ana",
		BirthDate: date(2015, time.June, 15),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := svc.Deactivate(context.Background(), staff, member.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.members[member.ID].Active {
		t.Fatalf("expected member deactivated")
	}
}

func TestCreateMemberViewerForbidden(t *testing.T) {
	svc := NewService(newFakeMemberRepo())
	viewer := auth.Actor{UserID: "user-2", Role: auth.RoleViewer}
	_, err := svc.Create(context.Background(), viewer, Input{FamilyID: "f1", BirthDate: date(2015, time.June, 15)})
	if !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
