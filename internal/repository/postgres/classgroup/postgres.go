package classgroup

import (
	"context"
	"errors"

	classgroupdomain "amparo-go/internal/domain/classgroup"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, group *classgroupdomain.ClassGroup) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*classgroupdomain.ClassGroup, error) {
	var group classgroupdomain.ClassGroup
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, classgroupdomain.ErrClassGroupNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]classgroupdomain.ClassGroup, error) {
	var groups []classgroupdomain.ClassGroup
	if err := r.db.WithContext(ctx).Order("name asc").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *PostgresRepository) ListActiveOrderedByName(ctx context.Context) ([]classgroupdomain.ClassGroup, error) {
	var groups []classgroupdomain.ClassGroup
	if err := r.db.WithContext(ctx).
		Where("active = TRUE").
		Order("name asc").
		Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *PostgresRepository) Update(ctx context.Context, group *classgroupdomain.ClassGroup) error {
	return r.db.WithContext(ctx).Save(group).Error
}

func (r *PostgresRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.db.WithContext(ctx).Model(&classgroupdomain.ClassGroup{}).Where("id = ?", id).Update("active", active).Error
}
