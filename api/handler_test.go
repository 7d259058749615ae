package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"expo/config"
	"expo/database"
	"expo/middleware"
	"expo/models"
	"expo/web"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{Mode: "debug"},
		JWT:      config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour},
		Currency: config.CurrencyConfig{Symbol: "₹"},
		Bill:     config.BillConfig{Brand: "EXPO"},
	}
}

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	oldDB := database.DB
	database.DB = gormDB
	return mock, func() {
		database.DB = oldDB
		sqlDB.Close()
	}
}

// setupSQLiteDB points database.DB at a fresh migrated and seeded file
func setupSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(&config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "api.db"),
	}, logger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Seed(context.Background(), db))

	oldDB := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = oldDB
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username, password string) models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		Username: username,
		Password: string(hashed),
		Email:    username + "@example.com",
		Status:   models.UserStatusActive,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func setUserIDMiddleware(userID uint) gin.HandlerFunc {
	return setUserMiddleware(userID, "")
}

func setUserMiddleware(userID uint, username string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextUsername, username)
		c.Next()
	}
}

// newPageRouter engine with the HTML templates loaded
func newPageRouter() *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(web.MustTemplates())
	return r
}

func postForm(r http.Handler, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r http.Handler, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// responseCookie last Set-Cookie for name
func responseCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	var found *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			found = c
		}
	}
	return found
}
