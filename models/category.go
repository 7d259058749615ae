package models

import (
	"time"
)

// Category expense category reference data
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:50;not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName table name
func (Category) TableName() string {
	return "categories"
}

// Starter categories seeded at initialization
const (
	CategoryFood           = "Food"
	CategoryTransportation = "Transportation"
	CategoryEntertainment  = "Entertainment"
	CategoryShopping       = "Shopping"
	CategoryBills          = "Bills"
	CategoryHealthcare     = "Healthcare"
	CategoryEducation      = "Education"
	CategoryInvestments    = "Investments"
	CategoryOther          = "Other"
)

// DefaultCategories returns the starter category names in seed order
func DefaultCategories() []string {
	return []string{
		CategoryFood,
		CategoryTransportation,
		CategoryEntertainment,
		CategoryShopping,
		CategoryBills,
		CategoryHealthcare,
		CategoryEducation,
		CategoryInvestments,
		CategoryOther,
	}
}
