package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"expo/config"
	"expo/currency"
	"expo/middleware"
	"expo/models"
	"expo/repository"
	"expo/service"

	"github.com/gin-gonic/gin"
)

const recentExpenseLimit = 5

// ExpenseHandler expense pages and the expense JSON API
type ExpenseHandler struct {
	cfg       *config.Config
	formatter currency.Formatter
	bills     *service.BillService
	exports   *service.ExportService
	email     *service.EmailService
	now       func() time.Time
}

// NewExpenseHandler creates the expense handler
func NewExpenseHandler(cfg *config.Config) *ExpenseHandler {
	f := currency.New(cfg.Currency.Symbol)
	return &ExpenseHandler{
		cfg:       cfg,
		formatter: f,
		bills:     service.NewBillService(&cfg.Bill, f),
		exports:   service.NewExportService(f),
		email:     service.NewEmailService(&cfg.Email),
		now:       time.Now,
	}
}

// ExpenseForm add-expense form fields
type ExpenseForm struct {
	Title       string `form:"title"`
	Amount      string `form:"amount"`
	Category    string `form:"category"`
	Description string `form:"description"`
	Date        string `form:"date"`
	Time        string `form:"time"`
}

// Home landing page; signed-in users see their latest expenses
func (h *ExpenseHandler) Home(c *gin.Context) {
	data := gin.H{"Title": "Home"}
	if userID := middleware.GetCurrentUserID(c); userID != 0 {
		recent, err := expenseRepo().Recent(c.Request.Context(), userID, recentExpenseLimit)
		if err != nil {
			errorPage(c, http.StatusInternalServerError, "Could not load your expenses.", err)
			return
		}
		data["Expenses"] = service.NewExpenseViews(recent, h.formatter)
	}
	render(c, http.StatusOK, "home.html", data)
}

// ListPage every expense of the user with the sort selector and total
func (h *ExpenseHandler) ListPage(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetCurrentUserID(c)
	sortKey := repository.ResolveSort(c.Query("sort"))

	expenses, err := expenseRepo().ListByOwner(ctx, userID, sortKey)
	if err != nil {
		errorPage(c, http.StatusInternalServerError, "Could not load your expenses.", err)
		return
	}
	total, err := expenseRepo().SumByOwner(ctx, userID)
	if err != nil {
		errorPage(c, http.StatusInternalServerError, "Could not load your expenses.", err)
		return
	}
	categories, err := categoryRepo().List(ctx)
	if err != nil {
		errorPage(c, http.StatusInternalServerError, "Could not load categories.", err)
		return
	}

	render(c, http.StatusOK, "list.html", gin.H{
		"Title":       "Expenses",
		"Expenses":    service.NewExpenseViews(expenses, h.formatter),
		"Total":       h.formatter.FormatDecimal(total),
		"Categories":  categories,
		"CurrentSort": sortKey,
		"SortKeys":    repository.SortKeys(),
		"EmailBill":   h.email.Enabled(),
	})
}

// AddForm empty add-expense form defaulting to now
func (h *ExpenseHandler) AddForm(c *gin.Context) {
	now := h.now()
	h.renderAddForm(c, http.StatusOK, ExpenseForm{
		Date: now.Format(models.DateLayout),
		Time: now.Format("15:04"),
	}, nil)
}

// AddSubmit creates the expense and returns to the list
func (h *ExpenseHandler) AddSubmit(c *gin.Context) {
	var form ExpenseForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderAddForm(c, http.StatusBadRequest, form, map[string]string{"": "Invalid form submission."})
		return
	}

	_, err := expenseRepo().WithClock(h.now).Create(c.Request.Context(), middleware.GetCurrentUserID(c), repository.ExpenseInput{
		Title:       form.Title,
		Amount:      form.Amount,
		CategoryID:  form.Category,
		Description: form.Description,
		Date:        form.Date,
		Time:        form.Time,
	})
	if errs, ok := fieldErrors(err); ok {
		h.renderAddForm(c, http.StatusBadRequest, form, errs)
		return
	}
	if err != nil {
		errorPage(c, http.StatusInternalServerError, "Could not save the expense.", err)
		return
	}

	redirectWithFlash(c, "/list/", flashSuccess, "Expense added successfully!")
}

func (h *ExpenseHandler) renderAddForm(c *gin.Context, status int, form ExpenseForm, errs map[string]string) {
	categories, err := categoryRepo().List(c.Request.Context())
	if err != nil {
		errorPage(c, http.StatusInternalServerError, "Could not load categories.", err)
		return
	}
	render(c, status, "add.html", gin.H{
		"Title":      "Add Expense",
		"Form":       form,
		"Errors":     errs,
		"Categories": categories,
	})
}

// DeleteSubmit deletes the expense when the caller owns it. Either way the
// user lands on the list with a status message.
func (h *ExpenseHandler) DeleteSubmit(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		redirectWithFlash(c, "/list/", flashError, "Expense not found!")
		return
	}

	err = expenseRepo().DeleteByIDForOwner(c.Request.Context(), middleware.GetCurrentUserID(c), uint(id))
	switch {
	case err == nil:
		redirectWithFlash(c, "/list/", flashSuccess, "Expense deleted successfully!")
	case errors.Is(err, repository.ErrNotFound):
		redirectWithFlash(c, "/list/", flashError, "Expense not found!")
	default:
		errorPage(c, http.StatusInternalServerError, "Could not delete the expense.", err)
	}
}

// GenerateBill streams the PDF bill of the whole history, newest first
func (h *ExpenseHandler) GenerateBill(c *gin.Context) {
	pdf, _, err := h.buildBill(c)
	if err != nil {
		errorPage(c, http.StatusInternalServerError, "Could not generate the bill. Please try again later.", err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="expense_bill.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// EmailBill mails the PDF bill to the account's address
func (h *ExpenseHandler) EmailBill(c *gin.Context) {
	ctx := c.Request.Context()
	user, err := userRepo().FindByID(ctx, middleware.GetCurrentUserID(c))
	if err != nil {
		errorPage(c, http.StatusInternalServerError, "Could not load your account.", err)
		return
	}

	pdf, total, err := h.buildBill(c)
	if err != nil {
		errorPage(c, http.StatusInternalServerError, "Could not generate the bill. Please try again later.", err)
		return
	}

	err = h.email.SendBill(user.Email, user.Username, total, pdf)
	switch {
	case err == nil:
		redirectWithFlash(c, "/list/", flashSuccess, "Bill sent to "+user.Email+".")
	case errors.Is(err, service.ErrEmailDisabled):
		redirectWithFlash(c, "/list/", flashError, "Emailing bills is not enabled.")
	case errors.Is(err, service.ErrNoRecipient):
		redirectWithFlash(c, "/list/", flashError, "Your account has no email address.")
	default:
		logError(c, err)
		redirectWithFlash(c, "/list/", flashError, "Could not send the bill. Please try again later.")
	}
}

// buildBill returns the PDF and the formatted total
func (h *ExpenseHandler) buildBill(c *gin.Context) ([]byte, string, error) {
	ctx := c.Request.Context()
	userID := middleware.GetCurrentUserID(c)

	expenses, err := expenseRepo().ListByOwner(ctx, userID, repository.DefaultSort)
	if err != nil {
		return nil, "", err
	}
	total, err := expenseRepo().SumByOwner(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	pdf, err := h.bills.Generate(middleware.GetCurrentUsername(c), expenses, total, h.now())
	if err != nil {
		return nil, "", err
	}
	return pdf, h.formatter.FormatDecimal(total), nil
}
