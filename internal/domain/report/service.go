package report

import (
	"context"
	"math"
	"time"

	"amparo-go/internal/domain/attendance"
	"amparo-go/internal/domain/auth"
	"amparo-go/internal/domain/basket"
	"github.com/google/uuid"
)

type Service struct {
	repo       Repository
	attendance *attendance.Service
	baskets    *basket.Service
	reportsDir string
	now        func() time.Time
}

func NewService(repo Repository, attendanceSvc *attendance.Service, basketSvc *basket.Service, reportsDir string) *Service {
	return &Service{
		repo:       repo,
		attendance: attendanceSvc,
		baskets:    basketSvc,
		reportsDir: reportsDir,
		now:        time.Now,
	}
}

type SizeStats struct {
	TotalMembers     int     `json:"total_members"`
	TotalShorts      int     `json:"total_shorts"`
	TotalPants       int     `json:"total_pants"`
	TotalShirts      int     `json:"total_shirts"`
	ShortsPercentage float64 `json:"shorts_percentage"`
	PantsPercentage  float64 `json:"pants_percentage"`
	ShirtsPercentage float64 `json:"shirts_percentage"`
}

type SizeDistribution struct {
	Shorts map[string]int `json:"shorts"`
	Pants  map[string]int `json:"pants"`
	Shirts map[string]int `json:"shirts"`
	Stats  SizeStats      `json:"statistics"`
}

// Sizes tallies the recorded clothing sizes of all members, with coverage
// percentages over the total member count.
func (s *Service) Sizes(ctx context.Context) (*SizeDistribution, error) {
	rows, err := s.repo.ListMemberSizes(ctx)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountMembers(ctx)
	if err != nil {
		return nil, err
	}

	dist := SizeDistribution{
		Shorts: make(map[string]int),
		Pants:  make(map[string]int),
		Shirts: make(map[string]int),
	}
	for _, row := range rows {
		if row.Shorts != "" {
			dist.Shorts[row.Shorts]++
			dist.Stats.TotalShorts++
		}
		if row.Pants != "" {
			dist.Pants[row.Pants]++
			dist.Stats.TotalPants++
		}
		if row.Shirt != "" {
			dist.Shirts[row.Shirt]++
			dist.Stats.TotalShirts++
		}
	}

	dist.Stats.TotalMembers = int(total)
	dist.Stats.ShortsPercentage = percentage(dist.Stats.TotalShorts, dist.Stats.TotalMembers)
	dist.Stats.PantsPercentage = percentage(dist.Stats.TotalPants, dist.Stats.TotalMembers)
	dist.Stats.ShirtsPercentage = percentage(dist.Stats.TotalShirts, dist.Stats.TotalMembers)

	return &dist, nil
}

type ProgramStats struct {
	TotalFamilies       int     `json:"total_families"`
	ReceivingPrograms   int     `json:"receiving_programs"`
	NotReceiving        int     `json:"not_receiving"`
	PercentageReceiving float64 `json:"percentage_receiving"`
}

// Programs tallies families by the receives-social-programs flag.
func (s *Service) Programs(ctx context.Context) (*ProgramStats, error) {
	flags, err := s.repo.ListFamilyProgramFlags(ctx)
	if err != nil {
		return nil, err
	}

	stats := ProgramStats{TotalFamilies: len(flags)}
	for _, receives := range flags {
		if receives {
			stats.ReceivingPrograms++
		}
	}
	stats.NotReceiving = stats.TotalFamilies - stats.ReceivingPrograms
	stats.PercentageReceiving = percentage(stats.ReceivingPrograms, stats.TotalFamilies)

	return &stats, nil
}

type SummaryResult struct {
	Attendance attendance.FrequencyStats `json:"attendance"`
	Baskets    basket.MonthlyStats       `json:"baskets"`
	Sizes      SizeStats                 `json:"sizes"`
	Programs   ProgramStats              `json:"programs"`
}

// Summary composes the four sub-reports and returns their statistics only.
// Composition is fail-fast: the first failing sub-report aborts the whole
// summary.
func (s *Service) Summary(ctx context.Context, from, to time.Time) (*SummaryResult, error) {
	frequency, err := s.attendance.Frequency(ctx, from, to)
	if err != nil {
		return nil, err
	}

	monthly, err := s.baskets.Monthly(ctx, from, to)
	if err != nil {
		return nil, err
	}

	sizes, err := s.Sizes(ctx)
	if err != nil {
		return nil, err
	}

	programs, err := s.Programs(ctx)
	if err != nil {
		return nil, err
	}

	return &SummaryResult{
		Attendance: frequency.Stats,
		Baskets:    monthly.Stats,
		Sizes:      sizes.Stats,
		Programs:   *programs,
	}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Report, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Report, error) {
	return s.repo.List(ctx)
}

func (s *Service) Deactivate(ctx context.Context, actor auth.Actor, id string) error {
	if !actor.IsStaff() {
		return auth.ErrForbidden
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.SetActive(ctx, id, false)
}

// Generate composes the requested report, writes the XLSX artifact and
// persists a write-once Report row pointing at it.
func (s *Service) Generate(ctx context.Context, actor auth.Actor, reportType, description string, from, to time.Time) (*Report, error) {
	if !actor.IsStaff() {
		return nil, auth.ErrForbidden
	}
	if !ValidType(reportType) {
		return nil, ErrInvalidType
	}
	if from.After(to) {
		return nil, ErrInvalidPeriod
	}

	record := Report{
		ID:          uuid.NewString(),
		Type:        reportType,
		PeriodStart: dateOnly(from),
		PeriodEnd:   dateOnly(to),
		Description: description,
		GeneratedAt: s.now().UTC(),
		Active:      true,
	}

	path, err := s.writeArtifact(ctx, &record)
	if err != nil {
		return nil, err
	}
	record.FilePath = path

	if err := s.repo.Create(ctx, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*100*100) / 100
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
