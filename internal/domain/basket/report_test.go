package basket

import (
	"context"
	"testing"
	"time"
)

func seedDelivery(t *testing.T, svc *Service, familyID string, date time.Time) {
	t.Helper()
	if _, err := svc.Create(context.Background(), staff, Input{FamilyID: familyID, DeliveryDate: date}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
}

func TestMonthlyGrouping(t *testing.T) {
	repo := newFakeBasketRepo()
	repo.families["f1"] = struct{}{}
	repo.families["f2"] = struct{}{}

	svc := NewService(repo)
	// March: three deliveries across two families. April: one delivery.
	seedDelivery(t, svc, "f1", day(2025, time.March, 5))
	seedDelivery(t, svc, "f1", day(2025, time.March, 19))
	seedDelivery(t, svc, "f2", day(2025, time.March, 12))
	seedDelivery(t, svc, "f1", day(2025, time.April, 2))

	report, err := svc.Monthly(context.Background(), day(2025, time.March, 1), day(2025, time.April, 30))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(report.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(report.Rows))
	}

	march := report.Rows[0]
	if march.Year != 2025 || march.Month != 3 {
		t.Fatalf("expected march first, got %d-%d", march.Year, march.Month)
	}
	if march.TotalDeliveries != 3 || march.DistinctFamilies != 2 {
		t.Fatalf("unexpected march totals: %+v", march)
	}
	if march.AveragePerFamily != 1.5 {
		t.Fatalf("expected 1.5, got %v", march.AveragePerFamily)
	}

	april := report.Rows[1]
	if april.TotalDeliveries != 1 || april.AveragePerFamily != 1 {
		t.Fatalf("unexpected april totals: %+v", april)
	}

	if report.Stats.TotalDeliveries != 4 {
		t.Fatalf("expected 4 total deliveries, got %d", report.Stats.TotalDeliveries)
	}
	if report.Stats.AverageDeliveriesPerMonth != 2 {
		t.Fatalf("expected 2 per month, got %v", report.Stats.AverageDeliveriesPerMonth)
	}
}

func TestMonthlyEmptyRange(t *testing.T) {
	svc := NewService(newFakeBasketRepo())

	report, err := svc.Monthly(context.Background(), day(2025, time.March, 1), day(2025, time.March, 31))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(report.Rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(report.Rows))
	}
	if report.Stats.AverageDeliveriesPerMonth != 0 {
		t.Fatalf("expected 0 average, got %v", report.Stats.AverageDeliveriesPerMonth)
	}
}

func TestFamilyHistory(t *testing.T) {
	repo := newFakeBasketRepo()
	repo.families["f1"] = struct{}{}

	svc := NewService(repo)
	seedDelivery(t, svc, "f1", day(2025, time.February, 10))
	seedDelivery(t, svc, "f1", day(2025, time.March, 5))
	seedDelivery(t, svc, "f1", day(2025, time.March, 19))

	history, err := svc.History(context.Background(), "f1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if history.TotalDeliveries != 3 {
		t.Fatalf("expected 3 deliveries, got %d", history.TotalDeliveries)
	}
	if history.TotalDistinctMonths != 2 {
		t.Fatalf("expected 2 months, got %d", history.TotalDistinctMonths)
	}
	if history.AveragePerMonth != 1.5 {
		t.Fatalf("expected 1.5, got %v", history.AveragePerMonth)
	}
	if history.MostRecentDate == nil || !history.MostRecentDate.Equal(day(2025, time.March, 19)) {
		t.Fatalf("unexpected most recent date: %v", history.MostRecentDate)
	}
}

func TestFamilyHistoryUnknownFamily(t *testing.T) {
	svc := NewService(newFakeBasketRepo())
	if _, err := svc.History(context.Background(), "missing"); err != ErrFamilyNotFound {
		t.Fatalf("expected ErrFamilyNotFound, got %v", err)
	}
}

func TestFamilyHistoryEmpty(t *testing.T) {
	repo := newFakeBasketRepo()
	repo.families["f1"] = struct{}{}

	svc := NewService(repo)
	history, err := svc.History(context.Background(), "f1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if history.TotalDeliveries != 0 || history.AveragePerMonth != 0 || history.MostRecentDate != nil {
		t.Fatalf("unexpected empty history: %+v", history)
	}
}
