package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"personal-tracker/internal/model"
)

// UserRepository handles CRUD for accounts.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListActiveEmails returns addresses of active accounts with a non-empty email.
func (r *UserRepository) ListActiveEmails(ctx context.Context) ([]string, error) {
	var emails []string
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("is_active = ? AND email <> ''", true).
		Order("email ASC").
		Pluck("email", &emails).Error
	if err != nil {
		return nil, fmt.Errorf("list active emails: %w", err)
	}
	return emails, nil
}
