package report

import (
	"context"
	"errors"

	familydomain "amparo-go/internal/domain/family"
	memberdomain "amparo-go/internal/domain/member"
	reportdomain "amparo-go/internal/domain/report"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, report *reportdomain.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*reportdomain.Report, error) {
	var report reportdomain.Report
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&report).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reportdomain.ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]reportdomain.Report, error) {
	var reports []reportdomain.Report
	if err := r.db.WithContext(ctx).Order("generated_at desc").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *PostgresRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.db.WithContext(ctx).
		Model(&reportdomain.Report{}).
		Where("id = ?", id).
		Update("active", active).Error
}

func (r *PostgresRepository) ListMemberSizes(ctx context.Context) ([]reportdomain.MemberSizes, error) {
	type row struct {
		ShortsSize string `gorm:"column:shorts_size"`
		PantsSize  string `gorm:"column:pants_size"`
		ShirtSize  string `gorm:"column:shirt_size"`
	}

	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&memberdomain.Member{}).
		Select("shorts_size, pants_size, shirt_size").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]reportdomain.MemberSizes, 0, len(rows))
	for _, item := range rows {
		result = append(result, reportdomain.MemberSizes{
			Shorts: item.ShortsSize,
			Pants:  item.PantsSize,
			Shirt:  item.ShirtSize,
		})
	}
	return result, nil
}

func (r *PostgresRepository) CountMembers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&memberdomain.Member{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) ListFamilyProgramFlags(ctx context.Context) ([]bool, error) {
	var flags []bool
	if err := r.db.WithContext(ctx).
		Model(&familydomain.Family{}).
		Pluck("receives_social_programs", &flags).Error; err != nil {
		return nil, err
	}
	return flags, nil
}
