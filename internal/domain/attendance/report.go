package attendance

import (
	"context"
	"math"
	"sort"
	"time"
)

type FrequencyRow struct {
	MemberID      string  `json:"member_id"`
	MemberName    string  `json:"member_name"`
	FamilyName    string  `json:"family_name"`
	TotalPresent  int     `json:"total_present"`
	TotalMeetings int     `json:"total_meetings"`
	Percentage    float64 `json:"percentage"`
}

type FrequencyStats struct {
	TotalMembers      int     `json:"total_members"`
	TotalPresent      int     `json:"total_present"`
	TotalMeetings     int     `json:"total_meetings"`
	OverallPercentage float64 `json:"overall_percentage"`
}

type FrequencyReport struct {
	From  time.Time
	To    time.Time
	Rows  []FrequencyRow
	Stats FrequencyStats
}

// Frequency aggregates per-member presence over the date range. Rows are
// materialized from the store and grouped in memory; percentages never
// fault on an empty denominator. Rows come back ordered by percentage
// descending, member name ascending on ties.
func (s *Service) Frequency(ctx context.Context, from, to time.Time) (*FrequencyReport, error) {
	rows, err := s.repo.ListRange(ctx, dateOnly(from), dateOnly(to))
	if err != nil {
		return nil, err
	}

	buckets := make(map[string]*FrequencyRow)
	order := make([]string, 0)

	for _, row := range rows {
		freq, ok := buckets[row.MemberID]
		if !ok {
			freq = &FrequencyRow{
				MemberID:   row.MemberID,
				MemberName: row.MemberName,
				FamilyName: row.FamilyName,
			}
			buckets[row.MemberID] = freq
			order = append(order, row.MemberID)
		}
		freq.TotalMeetings++
		if row.Present {
			freq.TotalPresent++
		}
	}
	report := FrequencyReport{
		From: dateOnly(from),
		To:   dateOnly(to),
		Rows: make([]FrequencyRow, 0, len(order)),
	}
	for _, memberID := range order {
		freq := buckets[memberID]
		freq.Percentage = percentage(freq.TotalPresent, freq.TotalMeetings)
		report.Stats.TotalPresent += freq.TotalPresent
		report.Stats.TotalMeetings += freq.TotalMeetings
		report.Rows = append(report.Rows, *freq)
	}

	sort.SliceStable(report.Rows, func(i, j int) bool {
		if report.Rows[i].Percentage != report.Rows[j].Percentage {
			return report.Rows[i].Percentage > report.Rows[j].Percentage
		}
		return report.Rows[i].MemberName < report.Rows[j].MemberName
	})

	report.Stats.TotalMembers = len(report.Rows)
	report.Stats.OverallPercentage = percentage(report.Stats.TotalPresent, report.Stats.TotalMeetings)

	return &report, nil
}

type DayStats struct {
	TotalMembers int     `json:"total_members"`
	Present      int     `json:"present"`
	Absent       int     `json:"absent"`
	Percentage   float64 `json:"percentage"`
}

type DayReport struct {
	Records []Record
	Stats   DayStats
}

// ByClassGroupDay returns the attendance of one class group on one meeting
// date along with present/absent counters.
func (s *Service) ByClassGroupDay(ctx context.Context, classGroupID string, date time.Time) (*DayReport, error) {
	if classGroupID == "" {
		return nil, ErrClassGroupRequired
	}
	if date.IsZero() {
		return nil, ErrDateRequired
	}

	day := dateOnly(date)
	records, err := s.repo.List(ctx, ListFilter{ClassGroupID: classGroupID, Date: &day})
	if err != nil {
		return nil, err
	}

	report := DayReport{Records: records}
	report.Stats.TotalMembers = len(records)
	for _, record := range records {
		if record.Present {
			report.Stats.Present++
		}
	}
	report.Stats.Absent = report.Stats.TotalMembers - report.Stats.Present
	report.Stats.Percentage = percentage(report.Stats.Present, report.Stats.TotalMembers)

	return &report, nil
}

type History struct {
	Records      []Record
	TotalPresent int
	TotalAbsent  int
}

// MemberHistory lists a member's records newest-first with presence totals.
func (s *Service) MemberHistory(ctx context.Context, memberID string) (*History, error) {
	if memberID == "" {
		return nil, ErrMemberRequired
	}

	exists, err := s.repo.MemberExists(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrMemberNotFound
	}

	records, err := s.repo.ListByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	history := History{Records: records}
	for _, record := range records {
		if record.Present {
			history.TotalPresent++
		} else {
			history.TotalAbsent++
		}
	}
	return &history, nil
}

// percentage is the shared divide-by-zero-safe ratio, rounded to 2 decimals.
func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*100*100) / 100
}
