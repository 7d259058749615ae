package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"expo/config"
	"expo/database"
	"expo/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func initJWTTestConfig() {
	config.GlobalConfig = &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		JWT:    config.JWTConfig{Secret: "test-jwt-secret-key"},
	}
	InitJWT(config.GlobalConfig)
}

// setupTestDB swaps database.DB for a migrated sqlite file until the test ends
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(&config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "middleware.db")}, logger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

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

func createUser(t *testing.T, db *gorm.DB, username, status string) models.User {
	t.Helper()
	user := models.User{Username: username, Password: "x", Status: status}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestGenerateToken(t *testing.T) {
	initJWTTestConfig()
	defer func() { config.GlobalConfig = nil }()

	token, err := GenerateToken(1, "testuser", 24*time.Hour)
	require.NoError(t, err)
	assert.Greater(t, len(token), 20)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.Equal(t, "testuser", claims.Username)
}

func TestParseToken(t *testing.T) {
	initJWTTestConfig()
	defer func() { config.GlobalConfig = nil }()

	_, err := ParseToken("")
	assert.Error(t, err)

	_, err = ParseToken("not.a.valid.jwt")
	assert.Error(t, err)
	_, err = ParseToken("eyJhbGciOiJmb29iIn0.xxxx.yyyy")
	assert.Error(t, err)

	// expired
	expired, err := GenerateToken(5, "old", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(expired)
	assert.Error(t, err)

	// signed with another secret
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:           5,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = ParseToken(forged)
	assert.Error(t, err)

	// alg none is rejected
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 5}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ParseToken(none)
	assert.Error(t, err)
}

func TestJWTAuth(t *testing.T) {
	initJWTTestConfig()
	defer func() { config.GlobalConfig = nil }()
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)
	user := createUser(t, db, "user42", models.UserStatusActive)
	locked := createUser(t, db, "mallory", models.UserStatusLocked)

	router := gin.New()
	router.Use(JWTAuth())
	router.GET("/protected", func(c *gin.Context) {
		c.String(200, "id:%d name:%s", GetCurrentUserID(c), GetCurrentUsername(c))
	})

	do := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := do("")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "401")

	assert.Equal(t, http.StatusUnauthorized, do("Basic xyz").Code)
	assert.Equal(t, http.StatusUnauthorized, do("Bearer ").Code)
	assert.Equal(t, http.StatusUnauthorized, do("Bearer garbage").Code)

	token, _ := GenerateToken(user.ID, "user42", time.Hour)
	w = do("Bearer " + token)
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, fmt.Sprintf("id:%d name:user42", user.ID), w.Body.String())

	// tokens of locked or deleted accounts stop working
	token, _ = GenerateToken(locked.ID, "mallory", time.Hour)
	assert.Equal(t, http.StatusUnauthorized, do("Bearer "+token).Code)
	token, _ = GenerateToken(9999, "ghost", time.Hour)
	assert.Equal(t, http.StatusUnauthorized, do("Bearer "+token).Code)
}

func TestSessionAuth(t *testing.T) {
	initJWTTestConfig()
	defer func() { config.GlobalConfig = nil }()
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)
	alice := createUser(t, db, "alice", models.UserStatusActive)

	router := gin.New()
	router.GET("/list/", SessionAuth(), func(c *gin.Context) {
		c.String(200, "id:%d", GetCurrentUserID(c))
	})

	// anonymous
	req := httptest.NewRequest("GET", "/list/?sort=amount", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login/?next=%2Flist%2F%3Fsort%3Damount", w.Header().Get("Location"))

	// stale cookie is cleared
	req = httptest.NewRequest("GET", "/list/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "garbage"})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), SessionCookie+"=;")

	// valid cookie
	token, _ := GenerateToken(alice.ID, "alice", time.Hour)
	req = httptest.NewRequest("GET", "/list/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, fmt.Sprintf("id:%d", alice.ID), w.Body.String())

	// locking the account ends the existing session
	require.NoError(t, db.Model(&alice).Update("status", models.UserStatusLocked).Error)
	req = httptest.NewRequest("GET", "/list/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login/?next=%2Flist%2F", w.Header().Get("Location"))
	assert.Contains(t, w.Header().Get("Set-Cookie"), SessionCookie+"=;")
}

func TestOptionalSession(t *testing.T) {
	initJWTTestConfig()
	defer func() { config.GlobalConfig = nil }()
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)
	bob := createUser(t, db, "bob", models.UserStatusActive)
	locked := createUser(t, db, "mallory", models.UserStatusLocked)

	router := gin.New()
	router.Use(OptionalSession())
	router.GET("/", func(c *gin.Context) {
		c.String(200, "auth:%v", IsAuthenticated(c))
	})

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "auth:false", w.Body.String())

	token, _ := GenerateToken(bob.ID, "bob", time.Hour)
	req = httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "auth:true", w.Body.String())

	token, _ = GenerateToken(locked.ID, "mallory", time.Hour)
	req = httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "auth:false", w.Body.String())
}

func TestSetSessionCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	config.GlobalConfig = &config.Config{Server: config.ServerConfig{Mode: "release"}}
	defer func() { config.GlobalConfig = nil }()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	SetSessionCookie(c, "tok", time.Hour)

	cookie := w.Header().Get("Set-Cookie")
	assert.Contains(t, cookie, SessionCookie+"=tok")
	assert.Contains(t, cookie, "HttpOnly")
	assert.Contains(t, cookie, "Secure")
	assert.Contains(t, cookie, "SameSite=Lax")
	assert.Contains(t, cookie, "Max-Age=3600")
}

func TestGetCurrentUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, uint(0), GetCurrentUserID(c))
	assert.False(t, IsAuthenticated(c))

	c.Set("userID", uint(99))
	assert.Equal(t, uint(99), GetCurrentUserID(c))
}
