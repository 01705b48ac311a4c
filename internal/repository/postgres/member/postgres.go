package member

import (
	"context"
	"errors"

	familydomain "amparo-go/internal/domain/family"
	memberdomain "amparo-go/internal/domain/member"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, member *memberdomain.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*memberdomain.Member, error) {
	var member memberdomain.Member
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, memberdomain.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func (r *PostgresRepository) List(ctx context.Context, filter memberdomain.ListFilter) ([]memberdomain.Member, error) {
	query := r.db.WithContext(ctx).Model(&memberdomain.Member{}).Order("full_name asc")
	if filter.FamilyID != "" {
		query = query.Where("family_id = ?", filter.FamilyID)
	}
	if filter.Studying != nil {
		query = query.Where("studying = ?", *filter.Studying)
	}
	if filter.ActiveOnly {
		query = query.Where("active = TRUE")
	}

	var members []memberdomain.Member
	if err := query.Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *PostgresRepository) Update(ctx context.Context, member *memberdomain.Member) error {
	return r.db.WithContext(ctx).Save(member).Error
}

func (r *PostgresRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.db.WithContext(ctx).Model(&memberdomain.Member{}).Where("id = ?", id).Update("active", active).Error
}

func (r *PostgresRepository) FamilyExists(ctx context.Context, familyID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&familydomain.Family{}).Where("id = ?", familyID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
