package attendance

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"amparo-go/internal/domain/auth"
)

type fakeAttendanceRepo struct {
	records map[string]*Record
	members map[string]memberInfo
}

type memberInfo struct {
	name   string
	family string
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{
		records: make(map[string]*Record),
		members: make(map[string]memberInfo),
	}
}

func (r *fakeAttendanceRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	snapshot := make(map[string]*Record, len(r.records))
	for id, record := range r.records {
		copied := *record
		snapshot[id] = &copied
	}
	if err := fn(r); err != nil {
		r.records = snapshot
		return err
	}
	return nil
}

func (r *fakeAttendanceRepo) Create(ctx context.Context, record *Record) error {
	for _, existing := range r.records {
		if existing.MemberID == record.MemberID && existing.Date.Equal(record.Date) {
			return ErrDuplicateDate
		}
	}
	if _, ok := r.members[record.MemberID]; !ok {
		return ErrMemberNotFound
	}
	copied := *record
	r.records[record.ID] = &copied
	return nil
}

func (r *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (*Record, error) {
	record, ok := r.records[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	copied := *record
	return &copied, nil
}

func (r *fakeAttendanceRepo) Update(ctx context.Context, record *Record) error {
	if _, ok := r.records[record.ID]; !ok {
		return ErrRecordNotFound
	}
	copied := *record
	r.records[record.ID] = &copied
	return nil
}

func (r *fakeAttendanceRepo) UpdatePresent(ctx context.Context, id string, present bool) error {
	record, ok := r.records[id]
	if !ok {
		return ErrRecordNotFound
	}
	record.Present = present
	return nil
}

func (r *fakeAttendanceRepo) SetActive(ctx context.Context, id string, active bool) error {
	record, ok := r.records[id]
	if !ok {
		return ErrRecordNotFound
	}
	record.Active = active
	return nil
}

func (r *fakeAttendanceRepo) List(ctx context.Context, filter ListFilter) ([]Record, error) {
	result := make([]Record, 0)
	for _, record := range r.records {
		if filter.MemberID != "" && record.MemberID != filter.MemberID {
			continue
		}
		if filter.ClassGroupID != "" {
			if record.ClassGroupID == nil || *record.ClassGroupID != filter.ClassGroupID {
				continue
			}
		}
		if filter.Date != nil && !record.Date.Equal(*filter.Date) {
			continue
		}
		result = append(result, *record)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.After(result[j].Date) })
	return result, nil
}

func (r *fakeAttendanceRepo) ListByMember(ctx context.Context, memberID string) ([]Record, error) {
	return r.List(ctx, ListFilter{MemberID: memberID})
}

func (r *fakeAttendanceRepo) ListRange(ctx context.Context, from, to time.Time) ([]MeetingRow, error) {
	rows := make([]MeetingRow, 0)
	for _, record := range r.records {
		if record.Date.Before(from) || record.Date.After(to) {
			continue
		}
		info := r.members[record.MemberID]
		rows = append(rows, MeetingRow{
			MemberID:   record.MemberID,
			MemberName: info.name,
			FamilyName: info.family,
			Date:       record.Date,
			Present:    record.Present,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return rows, nil
}

func (r *fakeAttendanceRepo) MemberExists(ctx context.Context, memberID string) (bool, error) {
	_, ok := r.members[memberID]
	return ok, nil
}

var staff = auth.Actor{UserID: "user-1", Role: auth.RoleAttendant}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestCreateAttendance(t *testing.T) {
	repo := newFakeAttendanceRepo()
	repo.members["m1"] = memberInfo{name: "Ana", family: "Silva"}

	svc := NewService(repo)
	record, err := svc.Create(context.Background(), staff, Input{MemberID: "m1", Date: day(2025, time.March, 10), Present: true})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if record.ID == "" {
		t.Fatalf("expected id assigned")
	}
	if !record.Active {
		t.Fatalf("expected record active")
	}
}

func TestCreateAttendanceMissingMemberID(t *testing.T) {
	svc := NewService(newFakeAttendanceRepo())
	_, err := svc.Create(context.Background(), staff, Input{Date: day(2025, time.March, 10)})
	if !errors.Is(err, ErrMemberRequired) {
		t.Fatalf("expected ErrMemberRequired, got %v", err)
	}
}

func TestCreateAttendanceUnknownMember(t *testing.T) {
	svc := NewService(newFakeAttendanceRepo())
	_, err := svc.Create(context.Background(), staff, Input{MemberID: "missing", Date: day(2025, time.March, 10)})
	if !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
}

func TestCreateAttendanceDuplicateDate(t *testing.T) {
	repo := newFakeAttendanceRepo()
	repo.members["m1"] = memberInfo{name: "Ana", family: "Silva"}

	svc := NewService(repo)
	input := Input{MemberID: "m1", Date: day(2025, time.March, 10), Present: true}
	if _, err := svc.Create(context.Background(), staff, input); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	_, err := svc.Create(context.Background(), staff, input)
	if !errors.Is(err, ErrDuplicateDate) {
		t.Fatalf("expected ErrDuplicateDate, got %v", err)
	}
}

func TestCreateAttendanceViewerForbidden(t *testing.T) {
	svc := NewService(newFakeAttendanceRepo())
	viewer := auth.Actor{UserID: "user-2", Role: auth.RoleViewer}
	_, err := svc.Create(context.Background(), viewer, Input{MemberID: "m1", Date: day(2025, time.March, 10)})
	if !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCreateBatchAllOrNothing(t *testing.T) {
	repo := newFakeAttendanceRepo()
	repo.members["m1"] = memberInfo{name: "Ana", family: "Silva"}
	repo.members["m2"] = memberInfo{name: "Bia", family: "Souza"}

	svc := NewService(repo)
	date := day(2025, time.March, 10)
	if _, err := svc.Create(context.Background(), staff, Input{MemberID: "m2", Date: date}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	_, err := svc.CreateBatch(context.Background(), staff, []Input{
		{MemberID: "m1", Date: date, Present: true},
		{MemberID: "m2", Date: date, Present: true},
	})
	if !errors.Is(err, ErrDuplicateDate) {
		t.Fatalf("expected ErrDuplicateDate, got %v", err)
	}

	records, _ := repo.List(context.Background(), ListFilter{MemberID: "m1"})
	if len(records) != 0 {
		t.Fatalf("expected batch rolled back, found %d records", len(records))
	}
}

func TestCreateBatchEmpty(t *testing.T) {
	svc := NewService(newFakeAttendanceRepo())
	_, err := svc.CreateBatch(context.Background(), staff, nil)
	if !errors.Is(err, ErrEmptyBatch) {
		t.Fatalf("expected ErrEmptyBatch, got %v", err)
	}
}

func TestSetStatus(t *testing.T) {
	repo := newFakeAttendanceRepo()
	repo.members["m1"] = memberInfo{name: "Ana", family: "Silva"}

	svc := NewService(repo)
	record, err := svc.Create(context.Background(), staff, Input{MemberID: "m1", Date: day(2025, time.March, 10), Present: false})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	updated, err := svc.SetStatus(context.Background(), staff, record.ID, true)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !updated.Present {
		t.Fatalf("expected present true")
	}
	if !repo.records[record.ID].Present {
		t.Fatalf("expected store updated")
	}
}

func TestDeactivateAttendance(t *testing.T) {
	repo := newFakeAttendanceRepo()
	repo.members["m1"] = memberInfo{name: "Ana", family: "Silva"}

	svc := NewService(repo)
	record, err := svc.Create(context.Background(), staff, Input{MemberID: "m1", Date: day(2025, time.March, 10), Present: true})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := svc.Deactivate(context.Background(), staff, record.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.records[record.ID].Active {
		t.Fatalf("expected record deactivated")
	}
}

func TestMemberHistoryTotals(t *testing.T) {
	repo := newFakeAttendanceRepo()
	repo.members["m1"] = memberInfo{name: "Ana", family: "Silva"}

	svc := NewService(repo)
	dates := []struct {
		date    time.Time
		present bool
	}{
		{day(2025, time.March, 3), true},
		{day(2025, time.March, 10), false},
		{day(2025, time.March, 17), true},
	}
	for _, entry := range dates {
		if _, err := svc.Create(context.Background(), staff, Input{MemberID: "m1", Date: entry.date, Present: entry.present}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}

	history, err := svc.MemberHistory(context.Background(), "m1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if history.TotalPresent != 2 || history.TotalAbsent != 1 {
		t.Fatalf("expected 2 present / 1 absent, got %d/%d", history.TotalPresent, history.TotalAbsent)
	}
}

func TestMemberHistoryRequiresMember(t *testing.T) {
	svc := NewService(newFakeAttendanceRepo())
	_, err := svc.MemberHistory(context.Background(), "")
	if !errors.Is(err, ErrMemberRequired) {
		t.Fatalf("expected ErrMemberRequired, got %v", err)
	}
}
