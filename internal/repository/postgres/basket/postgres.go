package basket

import (
	"context"
	"errors"
	"time"

	basketdomain "amparo-go/internal/domain/basket"
	familydomain "amparo-go/internal/domain/family"
	"amparo-go/internal/repository/postgres/pgerr"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(basketdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) Create(ctx context.Context, delivery *basketdomain.Delivery) error {
	err := r.db.WithContext(ctx).Create(delivery).Error
	if pgerr.IsUniqueViolation(err) {
		return basketdomain.ErrDuplicateDate
	}
	if pgerr.IsForeignKeyViolation(err) {
		return basketdomain.ErrFamilyNotFound
	}
	return err
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*basketdomain.Delivery, error) {
	var delivery basketdomain.Delivery
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&delivery).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, basketdomain.ErrDeliveryNotFound
		}
		return nil, err
	}
	return &delivery, nil
}

func (r *PostgresRepository) Update(ctx context.Context, delivery *basketdomain.Delivery) error {
	err := r.db.WithContext(ctx).Save(delivery).Error
	if pgerr.IsUniqueViolation(err) {
		return basketdomain.ErrDuplicateDate
	}
	return err
}

func (r *PostgresRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.db.WithContext(ctx).
		Model(&basketdomain.Delivery{}).
		Where("id = ?", id).
		Update("active", active).Error
}

func (r *PostgresRepository) List(ctx context.Context, filter basketdomain.ListFilter) ([]basketdomain.Delivery, error) {
	query := r.db.WithContext(ctx).Model(&basketdomain.Delivery{}).Order("delivery_date desc")
	if filter.FamilyID != "" {
		query = query.Where("family_id = ?", filter.FamilyID)
	}
	if filter.DateFrom != nil {
		query = query.Where("delivery_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("delivery_date <= ?", *filter.DateTo)
	}

	var deliveries []basketdomain.Delivery
	if err := query.Find(&deliveries).Error; err != nil {
		return nil, err
	}
	return deliveries, nil
}

func (r *PostgresRepository) ListByFamily(ctx context.Context, familyID string) ([]basketdomain.Delivery, error) {
	var deliveries []basketdomain.Delivery
	if err := r.db.WithContext(ctx).
		Where("family_id = ?", familyID).
		Order("delivery_date desc").
		Find(&deliveries).Error; err != nil {
		return nil, err
	}
	return deliveries, nil
}

func (r *PostgresRepository) ListRange(ctx context.Context, from, to time.Time) ([]basketdomain.DeliveryRow, error) {
	type row struct {
		FamilyID string    `gorm:"column:family_id"`
		Date     time.Time `gorm:"column:delivery_date"`
	}

	var rows []row
	if err := r.db.WithContext(ctx).
		Table("basket_deliveries").
		Select("family_id, delivery_date").
		Where("delivery_date >= ? AND delivery_date <= ?", from, to).
		Order("delivery_date asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]basketdomain.DeliveryRow, 0, len(rows))
	for _, item := range rows {
		result = append(result, basketdomain.DeliveryRow{FamilyID: item.FamilyID, Date: item.Date})
	}
	return result, nil
}

func (r *PostgresRepository) FamilyExists(ctx context.Context, familyID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&familydomain.Family{}).Where("id = ?", familyID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
