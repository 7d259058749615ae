package service

import (
	"time"

	"expo/currency"
	"expo/models"

	"github.com/shopspring/decimal"
)

const (
	displayDateLayout = "02 Jan 2006"
	displayTimeLayout = "03:04 PM"
	emptyCell         = "-"
)

// ExpenseView expense prepared for templates, bills and API responses
type ExpenseView struct {
	ID              uint            `json:"id"`
	Title           string          `json:"title"`
	Amount          decimal.Decimal `json:"amount" swaggertype:"string"`
	FormattedAmount string          `json:"formatted_amount"`
	CategoryID      *uint           `json:"category_id"`
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	Date            string          `json:"date"`
	Time            string          `json:"time"`
	DisplayDate     string          `json:"display_date"`
	DisplayTime     string          `json:"display_time"`
}

// NewExpenseView builds the view of e
func NewExpenseView(e models.Expense, f currency.Formatter) ExpenseView {
	v := ExpenseView{
		ID:              e.ID,
		Title:           e.Title,
		Amount:          e.Amount,
		FormattedAmount: f.FormatDecimal(e.Amount),
		CategoryID:      e.CategoryID,
		Category:        e.CategoryName(),
		Description:     e.Description,
		Date:            e.Date,
		Time:            e.Time,
		DisplayDate:     displayDate(e.Date),
		DisplayTime:     displayTime(e.Time),
	}
	if v.Category == "" {
		v.Category = emptyCell
	}
	return v
}

// NewExpenseViews keeps the order of expenses
func NewExpenseViews(expenses []models.Expense, f currency.Formatter) []ExpenseView {
	views := make([]ExpenseView, 0, len(expenses))
	for _, e := range expenses {
		views = append(views, NewExpenseView(e, f))
	}
	return views
}

// DescriptionOrDash used by the bill and exports
func (v ExpenseView) DescriptionOrDash() string {
	if v.Description == "" {
		return emptyCell
	}
	return v.Description
}

func displayDate(raw string) string {
	d, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		if raw == "" {
			return emptyCell
		}
		return raw
	}
	return d.Format(displayDateLayout)
}

func displayTime(raw string) string {
	t, err := time.Parse(models.TimeLayout, raw)
	if err != nil {
		if raw == "" {
			return emptyCell
		}
		return raw
	}
	return t.Format(displayTimeLayout)
}
