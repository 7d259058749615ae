package api

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"expo/middleware"

	"github.com/gin-gonic/gin"
)

const (
	flashCookie     = "expo_flash"
	flashContextKey = "flashes"

	flashSuccess = "success"
	flashError   = "error"
)

// Flash one-shot status message shown on the next rendered page
type Flash struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

// AlertClass bootstrap alert modifier
func (f Flash) AlertClass() string {
	if f.Level == flashError {
		return "danger"
	}
	return f.Level
}

func addFlash(c *gin.Context, level, text string) {
	pending, _ := c.Get(flashContextKey)
	flashes, _ := pending.([]Flash)
	flashes = append(flashes, Flash{Level: level, Text: text})
	c.Set(flashContextKey, flashes)

	raw, err := json.Marshal(flashes)
	if err != nil {
		return
	}
	middleware.SetCookie(c, flashCookie, base64.RawURLEncoding.EncodeToString(raw), 300)
}

// popFlashes returns the pending messages and clears the cookie
func popFlashes(c *gin.Context) []Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	middleware.SetCookie(c, flashCookie, "", -1)

	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal(data, &flashes); err != nil {
		return nil
	}
	return flashes
}

func redirectWithFlash(c *gin.Context, location, level, text string) {
	addFlash(c, level, text)
	c.Redirect(http.StatusFound, location)
}
