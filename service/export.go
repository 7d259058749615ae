package service

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"expo/currency"
	"expo/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Expenses"

var exportHeader = []string{"Date", "Time", "Title", "Category", "Description", "Amount"}

// ExportService spreadsheet and CSV exports of an expense history
type ExportService struct {
	formatter currency.Formatter
}

// NewExportService creates an export service
func NewExportService(f currency.Formatter) *ExportService {
	return &ExportService{formatter: f}
}

// CSV writes one line per expense followed by the total line. Amounts are
// plain decimals so spreadsheets can sum them.
func (s *ExportService) CSV(expenses []models.Expense, total decimal.Decimal) ([]byte, error) {
	buf := new(bytes.Buffer)
	// BOM so Excel opens the file as UTF-8
	buf.WriteString("\xEF\xBB\xBF")

	w := csv.NewWriter(buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, v := range NewExpenseViews(expenses, s.formatter) {
		line := []string{v.Date, v.Time, v.Title, v.Category, v.Description, v.Amount.StringFixed(2)}
		if err := w.Write(line); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	if err := w.Write([]string{"", "", "", "", billTotalLabel, total.StringFixed(2)}); err != nil {
		return nil, fmt.Errorf("write csv total: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Excel builds an xlsx workbook with a styled header, numeric amount cells
// and a total row.
func (s *ExportService) Excel(expenses []models.Expense, total decimal.Decimal) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	amountFormat := "#,##0.00"

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"343A40"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	dataStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return nil, fmt.Errorf("data style: %w", err)
	}
	amountStyle, err := f.NewStyle(&excelize.Style{
		Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "center"},
		Border:       border,
		CustomNumFmt: &amountFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("amount style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "center"},
		Border:       border,
		CustomNumFmt: &amountFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("total style: %w", err)
	}

	widths := map[string]float64{"A": 14, "B": 12, "C": 28, "D": 18, "E": 36, "F": 16}
	for col, width := range widths {
		if err := f.SetColWidth(exportSheet, col, col, width); err != nil {
			return nil, fmt.Errorf("column width: %w", err)
		}
	}

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	if err := f.SetCellStyle(exportSheet, "A1", "F1", headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	row := 2
	for _, v := range NewExpenseViews(expenses, s.formatter) {
		values := []interface{}{v.Date, v.Time, v.Title, v.Category, v.Description, v.Amount.InexactFloat64()}
		if err := f.SetSheetRow(exportSheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row, err)
		}
		if err := f.SetCellStyle(exportSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("E%d", row), dataStyle); err != nil {
			return nil, fmt.Errorf("style row %d: %w", row, err)
		}
		if err := f.SetCellStyle(exportSheet, fmt.Sprintf("F%d", row), fmt.Sprintf("F%d", row), amountStyle); err != nil {
			return nil, fmt.Errorf("style amount %d: %w", row, err)
		}
		row++
	}

	totalRow := []interface{}{"", "", "", "", billTotalLabel, total.InexactFloat64()}
	if err := f.SetSheetRow(exportSheet, fmt.Sprintf("A%d", row), &totalRow); err != nil {
		return nil, fmt.Errorf("write total: %w", err)
	}
	if err := f.SetCellStyle(exportSheet, fmt.Sprintf("E%d", row), fmt.Sprintf("F%d", row), totalStyle); err != nil {
		return nil, fmt.Errorf("style total: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
