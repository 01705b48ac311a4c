package family

import (
	"context"
	"errors"

	familydomain "amparo-go/internal/domain/family"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateFamily(ctx context.Context, family *familydomain.Family) error {
	return r.db.WithContext(ctx).Create(family).Error
}

func (r *PostgresRepository) GetFamily(ctx context.Context, id string) (*familydomain.Family, error) {
	var family familydomain.Family
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&family).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, familydomain.ErrFamilyNotFound
		}
		return nil, err
	}
	return &family, nil
}

func (r *PostgresRepository) ListFamilies(ctx context.Context, filter familydomain.ListFilter) ([]familydomain.Family, error) {
	query := r.db.WithContext(ctx).Model(&familydomain.Family{}).Order("name asc")
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	if filter.District != "" {
		query = query.Where("district = ?", filter.District)
	}
	if filter.ActiveOnly {
		query = query.Where("active = TRUE")
	}

	var families []familydomain.Family
	if err := query.Find(&families).Error; err != nil {
		return nil, err
	}
	return families, nil
}

func (r *PostgresRepository) UpdateFamily(ctx context.Context, family *familydomain.Family) error {
	return r.db.WithContext(ctx).Save(family).Error
}

func (r *PostgresRepository) SetFamilyActive(ctx context.Context, id string, active bool) error {
	return r.db.WithContext(ctx).Model(&familydomain.Family{}).Where("id = ?", id).Update("active", active).Error
}

func (r *PostgresRepository) CreateGuardian(ctx context.Context, guardian *familydomain.Guardian) error {
	return r.db.WithContext(ctx).Create(guardian).Error
}

func (r *PostgresRepository) GetGuardian(ctx context.Context, id string) (*familydomain.Guardian, error) {
	var guardian familydomain.Guardian
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&guardian).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, familydomain.ErrGuardianNotFound
		}
		return nil, err
	}
	return &guardian, nil
}

func (r *PostgresRepository) ListGuardians(ctx context.Context, familyID string) ([]familydomain.Guardian, error) {
	var guardians []familydomain.Guardian
	if err := r.db.WithContext(ctx).
		Where("family_id = ?", familyID).
		Order("full_name asc").
		Find(&guardians).Error; err != nil {
		return nil, err
	}
	return guardians, nil
}

func (r *PostgresRepository) UpdateGuardian(ctx context.Context, guardian *familydomain.Guardian) error {
	return r.db.WithContext(ctx).Save(guardian).Error
}

func (r *PostgresRepository) SetGuardianActive(ctx context.Context, id string, active bool) error {
	return r.db.WithContext(ctx).Model(&familydomain.Guardian{}).Where("id = ?", id).Update("active", active).Error
}
