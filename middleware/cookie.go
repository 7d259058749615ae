package middleware

import (
	"net/http"
	"time"

	"expo/config"

	"github.com/gin-gonic/gin"
)

// SessionCookie holds the session token of HTML clients
const SessionCookie = "expo_session"

// CookieOptions security flags for cookies set by the app. Secure is on in
// release mode; SameSite=Lax keeps cross-site POSTs from carrying the session.
func CookieOptions() (secure bool, sameSite http.SameSite) {
	return config.IsRelease(), http.SameSiteLaxMode
}

// SetCookie writes an HttpOnly cookie on path "/"
func SetCookie(c *gin.Context, name, value string, maxAge int) {
	secure, sameSite := CookieOptions()
	c.SetCookieData(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   secure,
		HttpOnly: true,
		SameSite: sameSite,
	})
}

// SetSessionCookie stores token for ttl
func SetSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	SetCookie(c, SessionCookie, token, int(ttl.Seconds()))
}

// ClearSessionCookie logs the browser out
func ClearSessionCookie(c *gin.Context) {
	SetCookie(c, SessionCookie, "", -1)
}
