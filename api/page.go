package api

import (
	"log"
	"net/http"
	"strings"

	"expo/middleware"

	"github.com/gin-gonic/gin"
)

// render executes an HTML template with the identity and flash messages
// every page shows.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Username"] = middleware.GetCurrentUsername(c)
	data["Authenticated"] = middleware.IsAuthenticated(c)
	data["Messages"] = popFlashes(c)
	c.HTML(status, name, data)
}

func logError(c *gin.Context, err error) {
	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
}

// errorPage generic failure page; err is logged, never shown
func errorPage(c *gin.Context, status int, message string, err error) {
	if err != nil {
		logError(c, err)
	}
	render(c, status, "error.html", gin.H{
		"Title":   http.StatusText(status),
		"Status":  status,
		"Message": message,
	})
}

// safeNext accepts only local absolute paths as post-login targets
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, `/\`) {
		return "/"
	}
	return next
}
