package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Storage layouts of the expense date and time columns. Both sort
// lexicographically in chronological order.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// Expense a single spending record. Owner is fixed at creation and there is
// no update path; Category becomes nil when its category is deleted.
type Expense struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	UserID      uint            `json:"user_id" gorm:"index;not null"`
	Title       string          `json:"title" gorm:"size:100;not null"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	Description string          `json:"description" gorm:"type:text"`
	CategoryID  *uint           `json:"category_id" gorm:"index"`
	Category    *Category       `json:"category,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	Date        string          `json:"date" gorm:"column:expense_date;size:10;not null;index"`
	Time        string          `json:"time" gorm:"column:expense_time;size:8;not null"`
	CreatedAt   time.Time       `json:"created_at"`
	User        User            `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName table name
func (Expense) TableName() string {
	return "expenses"
}

// CategoryName returns the category name or "" when uncategorised
func (e Expense) CategoryName() string {
	if e.Category == nil {
		return ""
	}
	return e.Category.Name
}

// OccurredAt combines Date and Time in loc
func (e Expense) OccurredAt(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, e.Date+" "+e.Time, loc)
}
