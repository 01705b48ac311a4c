package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"amparo-go/internal/domain/attendance"
	"amparo-go/internal/domain/basket"
	"github.com/xuri/excelize/v2"
)

// writeArtifact renders the report data into an XLSX workbook under the
// configured reports directory and returns the file path.
func (s *Service) writeArtifact(ctx context.Context, record *Report) (string, error) {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)

	switch record.Type {
	case TypeAttendance:
		frequency, err := s.attendance.Frequency(ctx, record.PeriodStart, record.PeriodEnd)
		if err != nil {
			return "", err
		}
		if err := writeFrequencySheet(file, sheet, frequency); err != nil {
			return "", err
		}
	case TypeBasket:
		monthly, err := s.baskets.Monthly(ctx, record.PeriodStart, record.PeriodEnd)
		if err != nil {
			return "", err
		}
		if err := writeMonthlySheet(file, sheet, monthly); err != nil {
			return "", err
		}
	case TypeGeneral:
		summary, err := s.Summary(ctx, record.PeriodStart, record.PeriodEnd)
		if err != nil {
			return "", err
		}
		if err := writeSummarySheet(file, sheet, summary); err != nil {
			return "", err
		}
	default:
		return "", ErrInvalidType
	}

	if err := os.MkdirAll(s.reportsDir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%s_%s_%s.xlsx",
		record.Type,
		record.PeriodStart.Format("2006-01-02"),
		record.PeriodEnd.Format("2006-01-02"),
		record.ID[:8],
	)
	path := filepath.Join(s.reportsDir, name)

	if err := file.SaveAs(path); err != nil {
		return "", err
	}
	return path, nil
}

func writeFrequencySheet(file *excelize.File, sheet string, frequency *attendance.FrequencyReport) error {
	headers := []string{"Member", "Family", "Present", "Meetings", "Percentage"}
	if err := writeRow(file, sheet, 1, headers); err != nil {
		return err
	}

	row := 2
	for _, entry := range frequency.Rows {
		values := []any{entry.MemberName, entry.FamilyName, entry.TotalPresent, entry.TotalMeetings, entry.Percentage}
		if err := writeValues(file, sheet, row, values); err != nil {
			return err
		}
		row++
	}

	row++
	totals := []any{
		"Totals",
		"",
		frequency.Stats.TotalPresent,
		frequency.Stats.TotalMeetings,
		frequency.Stats.OverallPercentage,
	}
	return writeValues(file, sheet, row, totals)
}

func writeMonthlySheet(file *excelize.File, sheet string, monthly *basket.MonthlyReport) error {
	headers := []string{"Year", "Month", "Deliveries", "Families", "Average per family"}
	if err := writeRow(file, sheet, 1, headers); err != nil {
		return err
	}

	row := 2
	for _, entry := range monthly.Rows {
		values := []any{entry.Year, entry.Month, entry.TotalDeliveries, entry.DistinctFamilies, entry.AveragePerFamily}
		if err := writeValues(file, sheet, row, values); err != nil {
			return err
		}
		row++
	}

	row++
	totals := []any{
		"Totals",
		"",
		monthly.Stats.TotalDeliveries,
		monthly.Stats.TotalFamilies,
		monthly.Stats.AverageDeliveriesPerMonth,
	}
	return writeValues(file, sheet, row, totals)
}

func writeSummarySheet(file *excelize.File, sheet string, summary *SummaryResult) error {
	lines := [][]any{
		{"Attendance"},
		{"Members", summary.Attendance.TotalMembers},
		{"Present", summary.Attendance.TotalPresent},
		{"Meetings", summary.Attendance.TotalMeetings},
		{"Overall percentage", summary.Attendance.OverallPercentage},
		{},
		{"Basket deliveries"},
		{"Deliveries", summary.Baskets.TotalDeliveries},
		{"Families", summary.Baskets.TotalFamilies},
		{"Average per month", summary.Baskets.AverageDeliveriesPerMonth},
		{},
		{"Clothing sizes"},
		{"Members", summary.Sizes.TotalMembers},
		{"Shorts recorded", summary.Sizes.TotalShorts},
		{"Pants recorded", summary.Sizes.TotalPants},
		{"Shirts recorded", summary.Sizes.TotalShirts},
		{},
		{"Social programs"},
		{"Families", summary.Programs.TotalFamilies},
		{"Receiving", summary.Programs.ReceivingPrograms},
		{"Percentage receiving", summary.Programs.PercentageReceiving},
	}

	for i, line := range lines {
		if err := writeValues(file, sheet, i+1, line); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(file *excelize.File, sheet string, row int, headers []string) error {
	values := make([]any, len(headers))
	for i, header := range headers {
		values[i] = header
	}
	return writeValues(file, sheet, row, values)
}

func writeValues(file *excelize.File, sheet string, row int, values []any) error {
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}
