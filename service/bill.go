package service

import (
	"embed"
	"fmt"
	"os"
	"time"

	"expo/config"
	"expo/currency"
	"expo/models"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	mconfig "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"
	"github.com/shopspring/decimal"
)

const (
	// DefaultBillBrand header printed at the top of every bill
	DefaultBillBrand = "EXPO"
	billTitle        = "Expense Bill"
	billFooter       = "Thank you for using Expense Tracker"
	billTotalLabel   = "Total Amount"
	billFontFamily   = "billfont"
)

//go:embed fonts/*.ttf
var billFonts embed.FS

var billFontFiles = map[fontstyle.Type]string{
	fontstyle.Normal: "fonts/DejaVuSansCondensed.ttf",
	fontstyle.Bold:   "fonts/DejaVuSansCondensed-Bold.ttf",
	fontstyle.Italic: "fonts/DejaVuSansCondensed-Oblique.ttf",
}

var billHeader = []string{"Date", "Time", "Title", "Category", "Description", "Amount"}

// Bill text model of an expense bill, independent of the PDF layout
type Bill struct {
	Brand     string
	Title     string
	User      string
	Generated string
	Header    []string
	Rows      [][]string
	Total     []string
	Footer    string
}

// BuildBill lays out views in the order given, followed by the total row
func BuildBill(brand, username string, views []ExpenseView, total string, generatedAt time.Time) Bill {
	if brand == "" {
		brand = DefaultBillBrand
	}

	rows := make([][]string, 0, len(views))
	for _, v := range views {
		rows = append(rows, []string{
			v.DisplayDate,
			v.DisplayTime,
			v.Title,
			v.Category,
			v.DescriptionOrDash(),
			v.FormattedAmount,
		})
	}

	return Bill{
		Brand:     brand,
		Title:     billTitle,
		User:      "User: " + username,
		Generated: "Generated: " + generatedAt.Format(models.DateLayout),
		Header:    append([]string(nil), billHeader...),
		Rows:      rows,
		Total:     []string{"", "", "", "", billTotalLabel, total},
		Footer:    billFooter,
	}
}

// BillService builds and renders PDF bills
type BillService struct {
	brand     string
	fontPath  string
	formatter currency.Formatter
}

// NewBillService creates a bill service
func NewBillService(cfg *config.BillConfig, f currency.Formatter) *BillService {
	return &BillService{
		brand:     cfg.Brand,
		fontPath:  cfg.FontPath,
		formatter: f,
	}
}

// Build converts the expenses of username into a Bill
func (s *BillService) Build(username string, expenses []models.Expense, total decimal.Decimal, generatedAt time.Time) Bill {
	views := NewExpenseViews(expenses, s.formatter)
	return BuildBill(s.brand, username, views, s.formatter.FormatDecimal(total), generatedAt)
}

// Generate builds and renders the bill in one step
func (s *BillService) Generate(username string, expenses []models.Expense, total decimal.Decimal, generatedAt time.Time) ([]byte, error) {
	return s.Render(s.Build(username, expenses, total, generatedAt))
}

var (
	billDark   = &props.Color{Red: 52, Green: 58, Blue: 64}
	billZebra  = &props.Color{Red: 242, Green: 242, Blue: 242}
	billWhite  = &props.Color{Red: 255, Green: 255, Blue: 255}
	billWidths = []int{2, 2, 2, 2, 2, 2}
)

// Render produces the PDF bytes of b. Failures inside the PDF library are
// returned as errors.
func (s *BillService) Render(b Bill) (pdf []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			pdf = nil
			err = fmt.Errorf("render bill: %v", r)
		}
	}()

	builder := mconfig.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Vertical).
		WithLeftMargin(10).
		WithTopMargin(15).
		WithRightMargin(10).
		WithBottomMargin(10)

	fonts, err := s.loadFonts()
	if err != nil {
		return nil, err
	}
	builder = builder.
		WithCustomFonts(fonts).
		WithDefaultFont(&props.Font{Family: billFontFamily})

	m := maroto.New(builder.Build())
	addBillHeading(m, b)
	addBillTable(m, b)

	m.AddRow(12,
		text.NewCol(12, b.Footer, props.Text{
			Top:   6,
			Size:  9,
			Style: fontstyle.Italic,
			Align: align.Center,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("render bill: %w", err)
	}
	return doc.GetBytes(), nil
}

// loadFonts registers the UTF-8 bill font family. The embedded DejaVu Sans
// faces are used unless a font path is configured, in which case that file
// serves every style.
func (s *BillService) loadFonts() ([]*entity.CustomFont, error) {
	var custom []byte
	if s.fontPath != "" {
		data, err := os.ReadFile(s.fontPath)
		if err != nil {
			return nil, fmt.Errorf("load bill font: %w", err)
		}
		custom = data
	}

	repo := repository.New()
	for _, style := range []fontstyle.Type{fontstyle.Normal, fontstyle.Bold, fontstyle.Italic} {
		data := custom
		if data == nil {
			embedded, err := billFonts.ReadFile(billFontFiles[style])
			if err != nil {
				return nil, fmt.Errorf("load bill font: %w", err)
			}
			data = embedded
		}
		repo = repo.AddUTF8FontFromBytes(billFontFamily, style, data)
	}

	fonts, err := repo.Load()
	if err != nil {
		return nil, fmt.Errorf("load bill font: %w", err)
	}
	return fonts, nil
}

func addBillHeading(m core.Maroto, b Bill) {
	m.AddRow(14,
		text.NewCol(12, b.Brand, props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)
	m.AddRow(9,
		text.NewCol(12, b.Title, props.Text{
			Size:  13,
			Align: align.Center,
		}),
	)
	m.AddRow(6,
		text.NewCol(6, b.User, props.Text{Size: 9, Align: align.Left}),
		text.NewCol(6, b.Generated, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(4, line.NewCol(12))
}

func addBillTable(m core.Maroto, b Bill) {
	m.AddRows(billRow(b.Header, fontstyle.Bold, billWhite).
		WithStyle(&props.Cell{BackgroundColor: billDark}))

	for i, cells := range b.Rows {
		r := billRow(cells, fontstyle.Normal, nil)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: billZebra})
		}
		m.AddRows(r)
	}

	m.AddRows(billRow(b.Total, fontstyle.Bold, billWhite).
		WithStyle(&props.Cell{BackgroundColor: billDark}))
}

// billRow sizes itself to the tallest wrapped cell
func billRow(cells []string, style fontstyle.Type, color *props.Color) core.Row {
	cols := make([]core.Col, 0, len(billWidths))
	for i, width := range billWidths {
		value := ""
		if i < len(cells) {
			value = cells[i]
		}
		a := align.Left
		if i == len(billWidths)-1 {
			a = align.Right
		}
		cols = append(cols, text.NewCol(width, value, props.Text{
			Top:    1.5,
			Bottom: 1.5,
			Left:   1,
			Right:  1,
			Size:   8,
			Style:  style,
			Align:  a,
			Color:  color,
		}))
	}
	return row.New().Add(cols...)
}
