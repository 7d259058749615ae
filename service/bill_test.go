package service

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"expo/config"
	"expo/currency"
	"expo/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleExpenses() []models.Expense {
	food := uint(1)
	return []models.Expense{
		{
			ID:          2,
			Title:       "Coffee",
			Amount:      decimal.RequireFromString("150.00"),
			CategoryID:  &food,
			Category:    &models.Category{ID: food, Name: models.CategoryFood},
			Description: "Morning",
			Date:        "2025-03-04",
			Time:        "14:30:00",
		},
		{
			ID:     1,
			Title:  "Bus",
			Amount: decimal.RequireFromString("1234.5"),
			Date:   "2025-03-01",
			Time:   "08:05:00",
		},
	}
}

func TestNewExpenseView(t *testing.T) {
	views := NewExpenseViews(sampleExpenses(), currency.New("₹"))
	require.Len(t, views, 2)

	assert.Equal(t, "Coffee", views[0].Title)
	assert.Equal(t, "₹150.00", views[0].FormattedAmount)
	assert.Equal(t, "Food", views[0].Category)
	assert.Equal(t, "04 Mar 2025", views[0].DisplayDate)
	assert.Equal(t, "02:30 PM", views[0].DisplayTime)
	assert.Equal(t, "Morning", views[0].DescriptionOrDash())

	assert.Equal(t, "-", views[1].Category)
	assert.Equal(t, "-", views[1].DescriptionOrDash())
	assert.Equal(t, "₹1,234.50", views[1].FormattedAmount)
	assert.Equal(t, "08:05 AM", views[1].DisplayTime)
}

func TestNewExpenseViews_Empty(t *testing.T) {
	views := NewExpenseViews(nil, currency.New(""))
	assert.NotNil(t, views)
	assert.Empty(t, views)
}

func TestBuildBill(t *testing.T) {
	views := NewExpenseViews(sampleExpenses(), currency.New("₹"))
	at := time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)

	b := BuildBill("", "alice", views, "₹1,384.50", at)

	assert.Equal(t, "EXPO", b.Brand)
	assert.Equal(t, "Expense Bill", b.Title)
	assert.Equal(t, "User: alice", b.User)
	assert.Equal(t, "Generated: 2025-03-05", b.Generated)
	assert.Equal(t, []string{"Date", "Time", "Title", "Category", "Description", "Amount"}, b.Header)
	assert.Equal(t, [][]string{
		{"04 Mar 2025", "02:30 PM", "Coffee", "Food", "Morning", "₹150.00"},
		{"01 Mar 2025", "08:05 AM", "Bus", "-", "-", "₹1,234.50"},
	}, b.Rows)
	assert.Equal(t, []string{"", "", "", "", "Total Amount", "₹1,384.50"}, b.Total)
	assert.Equal(t, "Thank you for using Expense Tracker", b.Footer)
}

func TestBillService_Build(t *testing.T) {
	s := NewBillService(&config.BillConfig{Brand: "ACME"}, currency.New("₹"))
	b := s.Build("bob", nil, decimal.Zero, time.Now())

	assert.Equal(t, "ACME", b.Brand)
	assert.Empty(t, b.Rows)
	assert.Equal(t, "₹0.00", b.Total[5])
}

// pdfContent returns every stream of pdf joined together, inflating the
// compressed ones.
func pdfContent(t *testing.T, pdf []byte) []byte {
	t.Helper()

	var out bytes.Buffer
	rest := pdf
	for {
		start := bytes.Index(rest, []byte("stream\n"))
		if start < 0 {
			break
		}
		rest = rest[start+len("stream\n"):]
		end := bytes.Index(rest, []byte("endstream"))
		require.GreaterOrEqual(t, end, 0)
		raw := rest[:end]
		rest = rest[end+len("endstream"):]

		if zr, err := zlib.NewReader(bytes.NewReader(raw)); err == nil {
			if inflated, err := io.ReadAll(zr); err == nil {
				out.Write(inflated)
				continue
			}
		}
		out.Write(raw)
	}
	return out.Bytes()
}

// utf16 encodes s the way text is written for an embedded UTF-8 font
func utf16(s string) []byte {
	var out []byte
	for _, r := range s {
		out = append(out, byte(r>>8), byte(r))
	}
	return out
}

func TestBillService_GenerateRupee(t *testing.T) {
	s := NewBillService(&config.BillConfig{Brand: "EXPO"}, currency.New("₹"))
	coffee := sampleExpenses()[:1]

	pdf, err := s.Generate("alice", coffee, decimal.RequireFromString("150.00"), time.Now())
	require.NoError(t, err)

	content := pdfContent(t, pdf)
	assert.Equal(t, 2, bytes.Count(content, utf16("₹150.00")), "row and total carry the rupee sign")
	assert.NotContains(t, string(content), "(.150.00)")
}

func TestBillService_GenerateLongDescription(t *testing.T) {
	s := NewBillService(&config.BillConfig{}, currency.New("₹"))
	expenses := sampleExpenses()
	expenses[0].Description = strings.Repeat("groceries for the week ", 30)

	long, err := s.Generate("alice", expenses, decimal.RequireFromString("1384.50"), time.Now())
	require.NoError(t, err)

	short, err := s.Generate("alice", sampleExpenses(), decimal.RequireFromString("1384.50"), time.Now())
	require.NoError(t, err)

	longContent := pdfContent(t, long)
	shortContent := pdfContent(t, short)
	assert.Contains(t, string(longContent), string(utf16("groceries")))
	assert.Equal(t, 1, bytes.Count(longContent, utf16("₹1,234.50")))

	// The row below the long description starts further down the page.
	assert.Less(t, textY(t, longContent, utf16("Bus")), textY(t, shortContent, utf16("Bus")))
}

// textY returns the baseline y of the first text operator drawing needle
func textY(t *testing.T, content, needle []byte) float64 {
	t.Helper()

	idx := bytes.Index(content, append([]byte("("), needle...))
	require.GreaterOrEqual(t, idx, 0)
	bt := bytes.LastIndex(content[:idx], []byte("BT "))
	require.GreaterOrEqual(t, bt, 0)

	var x, y float64
	_, err := fmt.Sscanf(string(content[bt:idx]), "BT %f %f Td", &x, &y)
	require.NoError(t, err)
	return y
}

func TestBillService_Generate(t *testing.T) {
	s := NewBillService(&config.BillConfig{}, currency.New("₹"))

	pdf, err := s.Generate("alice", sampleExpenses(), decimal.RequireFromString("1384.50"), time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	empty, err := s.Generate("alice", nil, decimal.Zero, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(empty, []byte("%PDF")))
}

func TestBillService_MissingFont(t *testing.T) {
	s := NewBillService(&config.BillConfig{FontPath: "/nonexistent/font.ttf"}, currency.New("₹"))

	_, err := s.Generate("alice", sampleExpenses(), decimal.Zero, time.Now())
	assert.Error(t, err)
}
