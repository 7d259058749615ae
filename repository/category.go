package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"expo/models"

	"gorm.io/gorm"
)

const maxCategoryNameLength = 50

// CategoryRepository category reference table
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a category repository
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Seed inserts each name that is not present yet; safe to run on every start
func (r *CategoryRepository) Seed(ctx context.Context, names []string) error {
	for _, name := range names {
		var category models.Category
		if err := r.db.WithContext(ctx).Where(models.Category{Name: name}).FirstOrCreate(&category).Error; err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
	}
	return nil
}

// List returns all categories in creation order
func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	categories := make([]models.Category, 0)
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// Get returns category id or ErrNotFound
func (r *CategoryRepository) Get(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &category, nil
}

// Create adds a category with a unique name
func (r *CategoryRepository) Create(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "Name is required.")
	}
	if utf8.RuneCountInString(name) > maxCategoryNameLength {
		return nil, invalid("name", fmt.Sprintf("Name must be at most %d characters.", maxCategoryNameLength))
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check category: %w", err)
	}
	if count > 0 {
		return nil, invalid("name", "Category already exists.")
	}

	category := models.Category{Name: name}
	if err := r.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &category, nil
}

// Delete removes category id. Its expenses keep existing with no category.
func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		err := tx.First(&category, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get category: %w", err)
		}

		if err := tx.Model(&models.Expense{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return fmt.Errorf("detach expenses: %w", err)
		}

		if err := tx.Delete(&category).Error; err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		return nil
	})
}
