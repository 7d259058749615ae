package api

import (
	"fmt"
	"net/http"

	"expo/middleware"
	"expo/models"
	"expo/repository"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ExportExcel downloads the history as an xlsx workbook
func (h *ExpenseHandler) ExportExcel(c *gin.Context) {
	h.export(c, "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", h.exports.Excel)
}

// ExportCSV downloads the history as CSV
func (h *ExpenseHandler) ExportCSV(c *gin.Context) {
	h.export(c, "csv", "text/csv; charset=utf-8", h.exports.CSV)
}

func (h *ExpenseHandler) export(c *gin.Context, ext, contentType string, build func([]models.Expense, decimal.Decimal) ([]byte, error)) {
	ctx := c.Request.Context()
	userID := middleware.GetCurrentUserID(c)

	expenses, err := expenseRepo().ListByOwner(ctx, userID, repository.DefaultSort)
	if err != nil {
		errorPage(c, http.StatusInternalServerError, "Could not export your expenses.", err)
		return
	}
	total, err := expenseRepo().SumByOwner(ctx, userID)
	if err != nil {
		errorPage(c, http.StatusInternalServerError, "Could not export your expenses.", err)
		return
	}

	data, err := build(expenses, total)
	if err != nil {
		errorPage(c, http.StatusInternalServerError, "Could not export your expenses.", err)
		return
	}

	filename := fmt.Sprintf("expenses_%s_%s.%s", middleware.GetCurrentUsername(c), h.now().Format("20060102"), ext)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, data)
}
