package basket

import (
	"context"
	"math"
	"sort"
	"time"
)

type MonthlyRow struct {
	Year             int     `json:"year"`
	Month            int     `json:"month"`
	TotalDeliveries  int     `json:"total_deliveries"`
	DistinctFamilies int     `json:"distinct_families"`
	AveragePerFamily float64 `json:"average_per_family"`
}

type MonthlyStats struct {
	TotalDeliveries           int     `json:"total_deliveries"`
	TotalFamilies             int     `json:"total_families"`
	AverageDeliveriesPerMonth float64 `json:"average_deliveries_per_month"`
}

type MonthlyReport struct {
	From  time.Time
	To    time.Time
	Rows  []MonthlyRow
	Stats MonthlyStats
}

// Monthly groups deliveries in the range by calendar month. The per-group
// average is computed from the group's own totals (deliveries over distinct
// families), never as an average of ratios, and the overall monthly average
// is zero when the range holds no groups.
func (s *Service) Monthly(ctx context.Context, from, to time.Time) (*MonthlyReport, error) {
	rows, err := s.repo.ListRange(ctx, dateOnly(from), dateOnly(to))
	if err != nil {
		return nil, err
	}

	type monthKey struct {
		year  int
		month int
	}
	type monthGroup struct {
		total    int
		families map[string]struct{}
	}

	groups := make(map[monthKey]*monthGroup)
	for _, row := range rows {
		key := monthKey{year: row.Date.Year(), month: int(row.Date.Month())}
		group, ok := groups[key]
		if !ok {
			group = &monthGroup{families: make(map[string]struct{})}
			groups[key] = group
		}
		group.total++
		group.families[row.FamilyID] = struct{}{}
	}

	report := MonthlyReport{
		From: dateOnly(from),
		To:   dateOnly(to),
		Rows: make([]MonthlyRow, 0, len(groups)),
	}
	for key, group := range groups {
		row := MonthlyRow{
			Year:             key.year,
			Month:            key.month,
			TotalDeliveries:  group.total,
			DistinctFamilies: len(group.families),
		}
		if row.DistinctFamilies > 0 {
			row.AveragePerFamily = round2(float64(row.TotalDeliveries) / float64(row.DistinctFamilies))
		}
		report.Rows = append(report.Rows, row)
		report.Stats.TotalDeliveries += row.TotalDeliveries
		report.Stats.TotalFamilies += row.DistinctFamilies
	}

	sort.Slice(report.Rows, func(i, j int) bool {
		if report.Rows[i].Year != report.Rows[j].Year {
			return report.Rows[i].Year < report.Rows[j].Year
		}
		return report.Rows[i].Month < report.Rows[j].Month
	})

	if len(report.Rows) > 0 {
		report.Stats.AverageDeliveriesPerMonth = round2(float64(report.Stats.TotalDeliveries) / float64(len(report.Rows)))
	}

	return &report, nil
}

type FamilyHistory struct {
	Deliveries          []Delivery
	TotalDeliveries     int
	TotalDistinctMonths int
	AveragePerMonth     float64
	MostRecentDate      *time.Time
}

// History lists a family's deliveries newest-first with per-month stats.
func (s *Service) History(ctx context.Context, familyID string) (*FamilyHistory, error) {
	if familyID == "" {
		return nil, ErrFamilyRequired
	}

	exists, err := s.repo.FamilyExists(ctx, familyID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrFamilyNotFound
	}

	deliveries, err := s.repo.ListByFamily(ctx, familyID)
	if err != nil {
		return nil, err
	}

	history := FamilyHistory{
		Deliveries:      deliveries,
		TotalDeliveries: len(deliveries),
	}

	months := make(map[[2]int]struct{})
	for _, delivery := range deliveries {
		months[[2]int{delivery.DeliveryDate.Year(), int(delivery.DeliveryDate.Month())}] = struct{}{}
		if history.MostRecentDate == nil || delivery.DeliveryDate.After(*history.MostRecentDate) {
			date := delivery.DeliveryDate
			history.MostRecentDate = &date
		}
	}
	history.TotalDistinctMonths = len(months)
	if history.TotalDistinctMonths > 0 {
		history.AveragePerMonth = round2(float64(history.TotalDeliveries) / float64(history.TotalDistinctMonths))
	}

	return &history, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
