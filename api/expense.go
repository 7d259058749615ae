package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"expo/middleware"
	"expo/repository"
	"expo/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest create expense request
type CreateExpenseRequest struct {
	Title       string      `json:"title" binding:"required,max=100" example:"Coffee"`
	Amount      json.Number `json:"amount" binding:"required" swaggertype:"string" example:"150.00"`
	CategoryID  *uint       `json:"category_id" example:"1"`
	Description string      `json:"description" example:"Morning coffee"`
	Date        string      `json:"date" example:"2025-03-04"`
	Time        string      `json:"time" example:"14:30"`
}

// ExpenseListResponse expense list with its total
type ExpenseListResponse struct {
	Sort           string                `json:"sort"`
	Total          decimal.Decimal       `json:"total" swaggertype:"string"`
	FormattedTotal string                `json:"formatted_total"`
	Expenses       []service.ExpenseView `json:"expenses"`
}

// List lists expenses
// @Summary List expenses
// @Description All expenses of the current user, ordered by sort (amount, -amount, title, -title, category, -category, date, -date). Unknown keys fall back to -date.
// @Tags Expenses
// @Produce json
// @Security BearerAuth
// @Param sort query string false "sort key" default(-date)
// @Success 200 {object} Response{data=ExpenseListResponse}
// @Failure 401 {object} Response
// @Router /api/v1/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetCurrentUserID(c)
	sortKey := repository.ResolveSort(c.Query("sort"))

	expenses, err := expenseRepo().ListByOwner(ctx, userID, sortKey)
	if err != nil {
		respondError(c, err, "", "failed to list expenses")
		return
	}
	total, err := expenseRepo().SumByOwner(ctx, userID)
	if err != nil {
		respondError(c, err, "", "failed to list expenses")
		return
	}

	Success(c, ExpenseListResponse{
		Sort:           sortKey,
		Total:          total,
		FormattedTotal: h.formatter.FormatDecimal(total),
		Expenses:       service.NewExpenseViews(expenses, h.formatter),
	})
}

// Create creates an expense
// @Summary Create expense
// @Description Date and time default to now when omitted
// @Tags Expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateExpenseRequest true "expense"
// @Success 200 {object} Response{data=service.ExpenseView}
// @Failure 400 {object} Response
// @Failure 401 {object} Response
// @Router /api/v1/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	in := repository.ExpenseInput{
		Title:       req.Title,
		Amount:      req.Amount.String(),
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
	}
	if req.CategoryID != nil {
		in.CategoryID = strconv.FormatUint(uint64(*req.CategoryID), 10)
	}

	expense, err := expenseRepo().WithClock(h.now).Create(c.Request.Context(), middleware.GetCurrentUserID(c), in)
	if err != nil {
		respondError(c, err, "", "failed to create expense")
		return
	}
	SuccessWithMessage(c, "Expense added successfully!", service.NewExpenseView(*expense, h.formatter))
}

// Get returns one expense
// @Summary Get expense
// @Tags Expenses
// @Produce json
// @Security BearerAuth
// @Param id path int true "expense id"
// @Success 200 {object} Response{data=service.ExpenseView}
// @Failure 404 {object} Response
// @Router /api/v1/expenses/{id} [get]
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		NotFound(c, "Expense not found!")
		return
	}

	expense, err := expenseRepo().FindOwned(c.Request.Context(), middleware.GetCurrentUserID(c), id)
	if err != nil {
		respondError(c, err, "Expense not found!", "failed to load expense")
		return
	}
	Success(c, service.NewExpenseView(*expense, h.formatter))
}

// Delete deletes an expense owned by the caller
// @Summary Delete expense
// @Description Expenses of other users answer 404 like missing ones
// @Tags Expenses
// @Produce json
// @Security BearerAuth
// @Param id path int true "expense id"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /api/v1/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		NotFound(c, "Expense not found!")
		return
	}

	if err := expenseRepo().DeleteByIDForOwner(c.Request.Context(), middleware.GetCurrentUserID(c), id); err != nil {
		respondError(c, err, "Expense not found!", "failed to delete expense")
		return
	}
	SuccessWithMessage(c, "Expense deleted successfully!", nil)
}

// Bill downloads the PDF bill
// @Summary Expense bill
// @Tags Expenses
// @Produce application/pdf
// @Security BearerAuth
// @Success 200 {file} file "PDF bill"
// @Failure 500 {object} Response
// @Router /api/v1/expenses/bill [get]
func (h *ExpenseHandler) Bill(c *gin.Context) {
	pdf, _, err := h.buildBill(c)
	if err != nil {
		respondError(c, err, "", "failed to generate bill")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="expense_bill.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
