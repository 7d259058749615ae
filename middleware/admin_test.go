package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"expo/config"
	"expo/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminOnly(t *testing.T) {
	initJWTTestConfig()
	defer func() { config.GlobalConfig = nil }()
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)

	admin := models.User{Username: "root", Password: "x", IsAdmin: true, Status: models.UserStatusActive}
	plain := models.User{Username: "alice", Password: "x", Status: models.UserStatusActive}
	require.NoError(t, db.Create(&admin).Error)
	require.NoError(t, db.Create(&plain).Error)

	router := gin.New()
	router.GET("/admin", JWTAuth(), AdminOnly(), func(c *gin.Context) {
		c.String(200, "ok")
	})

	do := func(id uint, name string) int {
		token, err := GenerateToken(id, name, time.Hour)
		require.NoError(t, err)
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do(admin.ID, admin.Username))
	assert.Equal(t, http.StatusForbidden, do(plain.ID, plain.Username))
	assert.Equal(t, http.StatusUnauthorized, do(9999, "ghost"))
}
