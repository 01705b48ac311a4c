package attendance

import (
	"context"
	"errors"
	"time"

	attendancedomain "amparo-go/internal/domain/attendance"
	memberdomain "amparo-go/internal/domain/member"
	"amparo-go/internal/repository/postgres/pgerr"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(attendancedomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) Create(ctx context.Context, record *attendancedomain.Record) error {
	err := r.db.WithContext(ctx).Create(record).Error
	if pgerr.IsUniqueViolation(err) {
		return attendancedomain.ErrDuplicateDate
	}
	if pgerr.IsForeignKeyViolation(err) {
		return attendancedomain.ErrMemberNotFound
	}
	return err
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*attendancedomain.Record, error) {
	var record attendancedomain.Record
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, attendancedomain.ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *PostgresRepository) Update(ctx context.Context, record *attendancedomain.Record) error {
	err := r.db.WithContext(ctx).Save(record).Error
	if pgerr.IsUniqueViolation(err) {
		return attendancedomain.ErrDuplicateDate
	}
	return err
}

func (r *PostgresRepository) UpdatePresent(ctx context.Context, id string, present bool) error {
	return r.db.WithContext(ctx).
		Model(&attendancedomain.Record{}).
		Where("id = ?", id).
		Update("present", present).Error
}

func (r *PostgresRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.db.WithContext(ctx).
		Model(&attendancedomain.Record{}).
		Where("id = ?", id).
		Update("active", active).Error
}

func (r *PostgresRepository) List(ctx context.Context, filter attendancedomain.ListFilter) ([]attendancedomain.Record, error) {
	query := r.db.WithContext(ctx).Model(&attendancedomain.Record{}).Order("date desc")
	if filter.MemberID != "" {
		query = query.Where("member_id = ?", filter.MemberID)
	}
	if filter.ClassGroupID != "" {
		query = query.Where("class_group_id = ?", filter.ClassGroupID)
	}
	if filter.Date != nil {
		query = query.Where("date = ?", *filter.Date)
	}
	if filter.DateFrom != nil {
		query = query.Where("date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("date <= ?", *filter.DateTo)
	}

	var records []attendancedomain.Record
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *PostgresRepository) ListByMember(ctx context.Context, memberID string) ([]attendancedomain.Record, error) {
	var records []attendancedomain.Record
	if err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("date desc").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *PostgresRepository) ListRange(ctx context.Context, from, to time.Time) ([]attendancedomain.MeetingRow, error) {
	type row struct {
		MemberID   string    `gorm:"column:member_id"`
		MemberName string    `gorm:"column:member_name"`
		FamilyName string    `gorm:"column:family_name"`
		Date       time.Time `gorm:"column:date"`
		Present    bool      `gorm:"column:present"`
	}

	var rows []row
	if err := r.db.WithContext(ctx).
		Table("attendance_records").
		Select("attendance_records.member_id, members.full_name AS member_name, COALESCE(families.name, '') AS family_name, attendance_records.date, attendance_records.present").
		Joins("join members on members.id = attendance_records.member_id").
		Joins("join families on families.id = members.family_id").
		Where("attendance_records.date >= ? AND attendance_records.date <= ?", from, to).
		Order("attendance_records.date asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]attendancedomain.MeetingRow, 0, len(rows))
	for _, item := range rows {
		result = append(result, attendancedomain.MeetingRow{
			MemberID:   item.MemberID,
			MemberName: item.MemberName,
			FamilyName: item.FamilyName,
			Date:       item.Date,
			Present:    item.Present,
		})
	}
	return result, nil
}

func (r *PostgresRepository) MemberExists(ctx context.Context, memberID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&memberdomain.Member{}).Where("id = ?", memberID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
