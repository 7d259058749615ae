package api

import (
	"net/http"

	"expo/service"

	"github.com/gin-gonic/gin"
)

// CalculatorHandler EMI, GST and split-bill calculators
type CalculatorHandler struct{}

// NewCalculatorHandler creates the calculator handler
func NewCalculatorHandler() *CalculatorHandler {
	return &CalculatorHandler{}
}

// Page renders the calculators; the "calc" query parameter selects which
// one to evaluate with the remaining parameters.
func (h *CalculatorHandler) Page(c *gin.Context) {
	data := gin.H{
		"Title": "Calculators",
		"Calc":  c.Query("calc"),
		"Query": c.Request.URL.Query(),
	}

	status := http.StatusOK
	var err error
	switch c.Query("calc") {
	case "emi":
		data["EMI"], err = service.EMI(c.Query("principal"), c.Query("rate"), c.Query("months"))
	case "gst":
		data["GST"], err = service.GST(c.Query("amount"), c.Query("gst_rate"), c.Query("mode"))
	case "split":
		data["Split"], err = service.SplitBill(c.Query("total"), c.Query("people"), c.Query("tip"))
	}
	if errs, ok := fieldErrors(err); ok {
		status = http.StatusBadRequest
		data["Errors"] = errs
	} else if err != nil {
		errorPage(c, http.StatusInternalServerError, "Calculation failed.", err)
		return
	}

	render(c, status, "calculators.html", data)
}
