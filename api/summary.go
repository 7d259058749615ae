package api

import (
	"expo/middleware"
	"expo/repository"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// SummaryResponse spending summary
type SummaryResponse struct {
	Total          decimal.Decimal            `json:"total" swaggertype:"string"`
	FormattedTotal string                     `json:"formatted_total"`
	ByCategory     []repository.CategoryTotal `json:"by_category"`
}

// Summary totals spending overall and per category
// @Summary Expense summary
// @Tags Expenses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=SummaryResponse}
// @Failure 401 {object} Response
// @Router /api/v1/expenses/summary [get]
func (h *ExpenseHandler) Summary(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetCurrentUserID(c)

	total, err := expenseRepo().SumByOwner(ctx, userID)
	if err != nil {
		respondError(c, err, "", "failed to load summary")
		return
	}
	byCategory, err := expenseRepo().CategoryTotals(ctx, userID)
	if err != nil {
		respondError(c, err, "", "failed to load summary")
		return
	}

	Success(c, SummaryResponse{
		Total:          total,
		FormattedTotal: h.formatter.FormatDecimal(total),
		ByCategory:     byCategory,
	})
}
