package family

import (
	"context"
	"errors"
	"testing"
	"time"

	"amparo-go/internal/domain/auth"
)

type fakeFamilyRepo struct {
	families  map[string]*Family
	guardians map[string]*Guardian
}

func newFakeFamilyRepo() *fakeFamilyRepo {
	return &fakeFamilyRepo{
		families:  make(map[string]*Family),
		guardians: make(map[string]*Guardian),
	}
}

func (r *fakeFamilyRepo) CreateFamily(ctx context.Context, family *Family) error {
	copied := *family
	r.families[family.ID] = &copied
	return nil
}

func (r *fakeFamilyRepo) GetFamily(ctx context.Context, id string) (*Family, error) {
	family, ok := r.families[id]
	if !ok {
		return nil, ErrFamilyNotFound
	}
	copied := *family
	return &copied, nil
}

func (r *fakeFamilyRepo) ListFamilies(ctx context.Context, filter ListFilter) ([]Family, error) {
	result := make([]Family, 0, len(r.families))
	for _, family := range r.families {
		if filter.City != "" && family.City != filter.City {
			continue
		}
		if filter.District != "" && family.District != filter.District {
			continue
		}
		if filter.ActiveOnly && !family.Active {
			continue
		}
		result = append(result, *family)
	}
	return result, nil
}

func (r *fakeFamilyRepo) UpdateFamily(ctx context.Context, family *Family) error {
	if _, ok := r.families[family.ID]; !ok {
		return ErrFamilyNotFound
	}
	copied := *family
	r.families[family.ID] = &copied
	return nil
}

func (r *fakeFamilyRepo) SetFamilyActive(ctx context.Context, id string, active bool) error {
	family, ok := r.families[id]
	if !ok {
		return ErrFamilyNotFound
	}
	family.Active = active
	return nil
}

func (r *fakeFamilyRepo) CreateGuardian(ctx context.Context, guardian *Guardian) error {
	copied := *guardian
	r.guardians[guardian.ID] = &copied
	return nil
}

func (r *fakeFamilyRepo) GetGuardian(ctx context.Context, id string) (*Guardian, error) {
	guardian, ok := r.guardians[id]
	if !ok {
		return nil, ErrGuardianNotFound
	}
	copied := *guardian
	return &copied, nil
}

func (r *fakeFamilyRepo) ListGuardians(ctx context.Context, familyID string) ([]Guardian, error) {
	result := make([]Guardian, 0)
	for _, guardian := range r.guardians {
		if guardian.FamilyID == familyID {
			result = append(result, *guardian)
		}
	}
	return result, nil
}

func (r *fakeFamilyRepo) UpdateGuardian(ctx context.Context, guardian *Guardian) error {
	if _, ok := r.guardians[guardian.ID]; !ok {
		return ErrGuardianNotFound
	}
	copied := *guardian
	r.guardians[guardian.ID] = &copied
	return nil
}

func (r *fakeFamilyRepo) SetGuardianActive(ctx context.Context, id string, active bool) error {
	guardian, ok := r.guardians[id]
	if !ok {
		return ErrGuardianNotFound
	}
	guardian.Active = active
	return nil
}

var staff = auth.Actor{UserID: "user-1", Role: auth.RoleAttendant}

func TestCreateFamilyNormalizesFields(t *testing.T) {
	svc := NewService(newFakeFamilyRepo())

	family, err := svc.CreateFamily(context.Background(), staff, FamilyInput{
		Name:  "  Silva  ",
		City:  " Curitiba ",
		State: " pr ",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if family.Name != "Silva" {
		t.Fatalf("expected name trimmed, got %q", family.Name)
	}
	if family.State != "PR" {
		t.Fatalf("expected state uppercased, got %q", family.State)
	}
	if !family.Active {
		t.Fatalf("expected family active")
	}
}

func TestCreateFamilyViewerForbidden(t *testing.T) {
	svc := NewService(newFakeFamilyRepo())
	viewer := auth.Actor{UserID: "user-2", Role: auth.RoleViewer}
	_, err := svc.CreateFamily(context.Background(), viewer, FamilyInput{Name: "Silva"})
	if !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestDeactivateFamilySoftDeletes(t *testing.T) {
	repo := newFakeFamilyRepo()
	svc := NewService(repo)

	family, err := svc.CreateFamily(context.Background(), staff, FamilyInput{Name: "Silva"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := svc.DeactivateFamily(context.Background(), staff, family.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	stored := repo.families[family.ID]
	if stored == nil {
		t.Fatalf("expected family kept in store")
	}
	if stored.Active {
		t.Fatalf("expected family deactivated")
	}
}

func TestDeactivateFamilyNotFound(t *testing.T) {
	svc := NewService(newFakeFamilyRepo())
	err := svc.DeactivateFamily(context.Background(), staff, "missing")
	if !errors.Is(err, ErrFamilyNotFound) {
		t.Fatalf("expected ErrFamilyNotFound, got %v", err)
	}
}

func TestListFamiliesIncludesInactiveByDefault(t *testing.T) {
	repo := newFakeFamilyRepo()
	svc := NewService(repo)

	active, _ := svc.CreateFamily(context.Background(), staff, FamilyInput{Name: "Silva"})
	inactive, _ := svc.CreateFamily(context.Background(), staff, FamilyInput{Name: "Souza"})
	if err := svc.DeactivateFamily(context.Background(), staff, inactive.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	all, err := svc.ListFamilies(context.Background(), ListFilter{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 families, got %d", len(all))
	}

	onlyActive, err := svc.ListFamilies(context.Background(), ListFilter{ActiveOnly: true})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(onlyActive) != 1 || onlyActive[0].ID != active.ID {
		t.Fatalf("expected only the active family, got %d", len(onlyActive))
	}
}

func TestCreateGuardianRequiresFamily(t *testing.T) {
	svc := NewService(newFakeFamilyRepo())
	_, err := svc.CreateGuardian(context.Background(), staff, "missing", GuardianInput{FullName: "Maria", Phone: "41999990000"})
	if !errors.Is(err, ErrFamilyNotFound) {
		t.Fatalf("expected ErrFamilyNotFound, got %v", err)
	}
}

func TestCreateGuardian(t *testing.T) {
	repo := newFakeFamilyRepo()
	svc := NewService(repo)

	family, err := svc.CreateFamily(context.Background(), staff, FamilyInput{Name: "Silva"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	birth := time.Date(1985, time.May, 2, 0, 0, 0, 0, time.UTC)
	guardian, err := svc.CreateGuardian(context.Background(), staff, family.ID, GuardianInput{
		FullName:  " Maria Silva ",
		Phone:     "41999990000",
		Sex:       "f",
		BirthDate: &birth,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if guardian.FullName != "Maria Silva" {
		t.Fatalf("expected name trimmed, got %q", guardian.FullName)
	}
	if guardian.Sex != "F" {
		t.Fatalf("expected sex uppercased, got %q", guardian.Sex)
	}
	if guardian.BirthDate == nil || !guardian.BirthDate.Equal(birth) {
		t.Fatalf("unexpected birth date: %v", guardian.BirthDate)
	}
}

func TestDeactivateGuardian(t *testing.T) {
	repo := newFakeFamilyRepo()
	svc := NewService(repo)

	family, _ := svc.CreateFamily(context.Background(), staff, FamilyInput{Name: "Silva"})
	guardian, err := svc.CreateGuardian(context.Background(), staff, family.ID, GuardianInput{FullName: "Maria", Phone: "41999990000"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := svc.DeactivateGuardian(context.Background(), staff, guardian.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.guardians[guardian.ID].Active {
		t.Fatalf("expected guardian deactivated")
	}
}
