package auth

import (
	"context"
	"errors"

	authdomain "amparo-go/internal/domain/auth"
	"amparo-go/internal/repository/postgres/pgerr"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateUser(ctx context.Context, user *authdomain.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if pgerr.IsUniqueViolation(err) {
		return authdomain.ErrEmailTaken
	}
	return err
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (*authdomain.User, error) {
	var user authdomain.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, authdomain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*authdomain.User, error) {
	var user authdomain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, authdomain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&authdomain.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
