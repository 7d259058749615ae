package middleware

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"expo/config"
	"expo/database"
	"expo/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// ContextUserID gin context key of the authenticated user id
	ContextUserID = "userID"
	// ContextUsername gin context key of the authenticated username
	ContextUsername = "username"

	// LoginPath where anonymous page requests are sent
	LoginPath = "/login/"

	devSecret = "expo-dev-secret-change-me"
)

// Claims session token claims
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

var jwtSecret []byte

// InitJWT sets the signing secret; an empty secret falls back to a
// development value outside release mode.
func InitJWT(cfg *config.Config) {
	secret := cfg.JWT.Secret
	if secret == "" {
		if cfg.Server.Mode == "release" {
			log.Println("warning: jwt.secret is empty in release mode")
		}
		secret = devSecret
	}
	jwtSecret = []byte(secret)
}

func signingKey() []byte {
	if len(jwtSecret) == 0 {
		return []byte(devSecret)
	}
	return jwtSecret
}

// GenerateToken signs an HS256 token for the user valid for d
func GenerateToken(userID uint, username string, d time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "expo",
			Subject:   fmt.Sprint(userID),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey())
}

// ParseToken verifies signature and expiry
func ParseToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, errors.New("empty token")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return signingKey(), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// JWTAuth guards the JSON API with an Authorization: Bearer token
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			abortUnauthorized(c, "authorization header must be: Bearer <token>")
			return
		}

		claims, err := ParseToken(strings.TrimSpace(parts[1]))
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}
		if !accountActive(c, claims.UserID) {
			abortUnauthorized(c, "account is locked or no longer exists")
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// SessionAuth guards HTML pages with the session cookie. Anonymous requests
// are redirected to the login page with the original path in "next".
func SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := sessionClaims(c)
		if !ok {
			c.Redirect(http.StatusFound, LoginPath+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalSession attaches the identity when a valid session cookie exists
func OptionalSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := sessionClaims(c); ok {
			setIdentity(c, claims)
		}
		c.Next()
	}
}

func sessionClaims(c *gin.Context) (*Claims, bool) {
	raw, err := c.Cookie(SessionCookie)
	if err != nil || raw == "" {
		return nil, false
	}
	claims, err := ParseToken(raw)
	if err != nil || !accountActive(c, claims.UserID) {
		ClearSessionCookie(c)
		return nil, false
	}
	return claims, true
}

// accountActive reports whether the token's user still exists and may log in
func accountActive(c *gin.Context, userID uint) bool {
	var user models.User
	if err := database.DB.WithContext(c.Request.Context()).Select("id", "status").First(&user, userID).Error; err != nil {
		return false
	}
	return user.CanLogin()
}

func setIdentity(c *gin.Context, claims *Claims) {
	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextUsername, claims.Username)
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"code":    http.StatusUnauthorized,
		"message": message,
	})
	c.Abort()
}

// GetCurrentUserID returns 0 for anonymous requests
func GetCurrentUserID(c *gin.Context) uint {
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// GetCurrentUsername returns "" for anonymous requests
func GetCurrentUsername(c *gin.Context) string {
	return c.GetString(ContextUsername)
}

// IsAuthenticated reports whether an identity is attached
func IsAuthenticated(c *gin.Context) bool {
	return GetCurrentUserID(c) != 0
}
