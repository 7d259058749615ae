package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculatorHandler_Page(t *testing.T) {
	router := newPageRouter()
	router.GET("/calculators/", setUserMiddleware(1, "alice"), NewCalculatorHandler().Page)

	tests := []struct {
		name     string
		query    string
		code     int
		contains []string
	}{
		{"blank", "", http.StatusOK, []string{"Loan EMI", "Split bill"}},
		{"emi", "?calc=emi&principal=100000&rate=12&months=12", http.StatusOK, []string{"8884.88", "6618.56", "106618.56"}},
		{"gst add", "?calc=gst&amount=1000&gst_rate=18&mode=add", http.StatusOK, []string{"180.00", "90.00", "1180.00"}},
		{"split", "?calc=split&total=1000&people=3&tip=10", http.StatusOK, []string{"366.66"}},
		{"emi invalid", "?calc=emi&principal=-5&rate=12&months=12", http.StatusBadRequest, []string{"Enter a number that is not negative."}},
		{"split zero people", "?calc=split&total=100&people=0", http.StatusBadRequest, []string{"Enter a whole number between 1 and 1000."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(router, "/calculators/"+tt.query)
			require.Equal(t, tt.code, w.Code)
			for _, s := range tt.contains {
				assert.Contains(t, w.Body.String(), s)
			}
		})
	}
}
