package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"expo/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	maxTitleLength = 100
	// decimal(10,2): at most 8 digits before the point
	maxAmountDigits = 8
)

var maxAmount = decimal.New(1, maxAmountDigits)

// ExpenseInput raw add-expense input. Empty Date/Time default to the
// repository clock; empty CategoryID leaves the expense uncategorised.
type ExpenseInput struct {
	Title       string
	Amount      string
	CategoryID  string
	Description string
	Date        string
	Time        string
}

// CategoryTotal spending of one owner in one category
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total" swaggertype:"string"`
	Count    int64           `json:"count"`
}

// ExpenseRepository owner-scoped expense storage
type ExpenseRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewExpenseRepository creates an expense repository
func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db, now: time.Now}
}

// WithClock replaces the clock used for default dates and times
func (r *ExpenseRepository) WithClock(now func() time.Time) *ExpenseRepository {
	return &ExpenseRepository{db: r.db, now: now}
}

func (r *ExpenseRepository) ownerQuery(ctx context.Context, ownerID uint, sortKey string) *gorm.DB {
	key := ResolveSort(sortKey)
	q := r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Select("expenses.*").
		Preload("Category").
		Where("expenses.user_id = ?", ownerID)
	if needsCategoryJoin(key) {
		q = q.Joins("LEFT JOIN categories ON categories.id = expenses.category_id")
	}
	for _, order := range orderClauses(key) {
		q = q.Order(order)
	}
	return q
}

// ListByOwner returns all expenses of ownerID ordered by sortKey; invalid
// keys fall back to DefaultSort.
func (r *ExpenseRepository) ListByOwner(ctx context.Context, ownerID uint, sortKey string) ([]models.Expense, error) {
	expenses := make([]models.Expense, 0)
	if err := r.ownerQuery(ctx, ownerID, sortKey).Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// Recent returns the newest limit expenses of ownerID
func (r *ExpenseRepository) Recent(ctx context.Context, ownerID uint, limit int) ([]models.Expense, error) {
	expenses := make([]models.Expense, 0, limit)
	if err := r.ownerQuery(ctx, ownerID, DefaultSort).Limit(limit).Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("recent expenses: %w", err)
	}
	return expenses, nil
}

// SumByOwner totals the amounts of ownerID; zero when there are none
func (r *ExpenseRepository) SumByOwner(ctx context.Context, ownerID uint) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ?", ownerID).
		Scan(&result).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum expenses: %w", err)
	}
	return result.Total.Round(2), nil
}

// CategoryTotals groups the spending of ownerID by category, largest first.
// Uncategorised expenses are reported under "-".
func (r *ExpenseRepository) CategoryTotals(ctx context.Context, ownerID uint) ([]CategoryTotal, error) {
	totals := make([]CategoryTotal, 0)
	err := r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Select("COALESCE(categories.name, '-') AS category, COALESCE(SUM(expenses.amount), 0) AS total, COUNT(*) AS count").
		Joins("LEFT JOIN categories ON categories.id = expenses.category_id").
		Where("expenses.user_id = ?", ownerID).
		Group("categories.name").
		Order("total DESC").
		Order("category ASC").
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("category totals: %w", err)
	}
	for i := range totals {
		totals[i].Total = totals[i].Total.Round(2)
	}
	return totals, nil
}

// Create validates in and stores a new expense owned by ownerID
func (r *ExpenseRepository) Create(ctx context.Context, ownerID uint, in ExpenseInput) (*models.Expense, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, invalid("title", "Title is required.")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return nil, invalid("title", fmt.Sprintf("Title must be at most %d characters.", maxTitleLength))
	}

	amount, err := parseAmount(in.Amount)
	if err != nil {
		return nil, err
	}

	category, err := r.resolveCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}

	now := r.now()
	date, err := parseDate(in.Date, now)
	if err != nil {
		return nil, err
	}
	clock, err := parseClock(in.Time, now)
	if err != nil {
		return nil, err
	}

	expense := models.Expense{
		UserID:      ownerID,
		Title:       title,
		Amount:      amount,
		Description: strings.TrimSpace(in.Description),
		Date:        date,
		Time:        clock,
	}
	if category != nil {
		expense.CategoryID = &category.ID
	}

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&expense).Error; err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	expense.Category = category
	return &expense, nil
}

// FindOwned returns expense id when it belongs to ownerID, ErrNotFound otherwise
func (r *ExpenseRepository) FindOwned(ctx context.Context, ownerID, id uint) (*models.Expense, error) {
	var expense models.Expense
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&expense).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find expense: %w", err)
	}
	return &expense, nil
}

// DeleteByIDForOwner removes expense id only if ownerID owns it
func (r *ExpenseRepository) DeleteByIDForOwner(ctx context.Context, ownerID, id uint) error {
	expense, err := r.FindOwned(ctx, ownerID, id)
	if err != nil {
		return err
	}

	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", expense.ID, ownerID).
		Delete(&models.Expense{})
	if res.Error != nil {
		return fmt.Errorf("delete expense: %w", res.Error)
	}
	// deleted concurrently
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ExpenseRepository) resolveCategory(ctx context.Context, raw string) (*models.Category, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, invalid("category", "Select a valid category.")
	}

	var category models.Category
	err = r.db.WithContext(ctx).First(&category, uint(id)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, invalid("category", "Select a valid category.")
	}
	if err != nil {
		return nil, fmt.Errorf("load category: %w", err)
	}
	return &category, nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, invalid("amount", "Amount is required.")
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, invalid("amount", "Enter a valid amount.")
	}
	if !amount.Equal(amount.Round(2)) {
		return decimal.Zero, invalid("amount", "Amount can have at most 2 decimal places.")
	}
	if amount.Abs().GreaterThanOrEqual(maxAmount) {
		return decimal.Zero, invalid("amount", fmt.Sprintf("Amount can have at most %d digits before the decimal point.", maxAmountDigits))
	}
	return amount.Round(2), nil
}

func parseDate(raw string, now time.Time) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now.Format(models.DateLayout), nil
	}
	d, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		return "", invalid("date", "Enter a valid date (YYYY-MM-DD).")
	}
	return d.Format(models.DateLayout), nil
}

func parseClock(raw string, now time.Time) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now.Format(models.TimeLayout), nil
	}
	for _, layout := range []string{models.TimeLayout, "15:04"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(models.TimeLayout), nil
		}
	}
	return "", invalid("time", "Enter a valid time (HH:MM).")
}
