package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlash_AlertClass(t *testing.T) {
	assert.Equal(t, "success", Flash{Level: flashSuccess}.AlertClass())
	assert.Equal(t, "danger", Flash{Level: flashError}.AlertClass())
}

func TestFlash_RoundTrip(t *testing.T) {
	router := gin.New()
	router.GET("/set", func(c *gin.Context) {
		addFlash(c, flashSuccess, "first")
		addFlash(c, flashError, "second")
		c.Status(http.StatusNoContent)
	})
	router.GET("/pop", func(c *gin.Context) {
		c.JSON(http.StatusOK, popFlashes(c))
	})

	w := get(router, "/set")
	cookie := responseCookie(w, flashCookie)
	require.NotNil(t, cookie)

	w = get(router, "/pop", cookie)
	assert.JSONEq(t, `[{"level":"success","text":"first"},{"level":"error","text":"second"}]`, w.Body.String())

	// garbage is ignored
	req := httptest.NewRequest(http.MethodGet, "/pop", nil)
	req.AddCookie(&http.Cookie{Name: flashCookie, Value: "not-base64!"})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "null", w.Body.String())
}
