package repository

import (
	"context"
	"errors"
	"fmt"

	"expo/models"

	"gorm.io/gorm"
)

// UserRepository account lookups
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID returns user id or ErrNotFound
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// FindByUsername returns the user with username or ErrNotFound
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// UsernameExists reports whether username is taken
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return count > 0, nil
}

// Create stores user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// List returns every account, oldest first
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// SetStatus changes the login status of user id
func (r *UserRepository) SetStatus(ctx context.Context, id uint, status string) (*models.User, error) {
	if status != models.UserStatusActive && status != models.UserStatusLocked {
		return nil, invalid("status", "Status must be active or locked.")
	}
	return r.update(ctx, id, "status", status)
}

// SetAdmin grants or revokes admin rights of user id
func (r *UserRepository) SetAdmin(ctx context.Context, id uint, isAdmin bool) (*models.User, error) {
	return r.update(ctx, id, "is_admin", isAdmin)
}

func (r *UserRepository) update(ctx context.Context, id uint, column string, value any) (*models.User, error) {
	user, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(user).Update(column, value).Error; err != nil {
		return nil, fmt.Errorf("update user %s: %w", column, err)
	}
	return user, nil
}
