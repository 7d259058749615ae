package middleware

import (
	"net/http"

	"expo/database"
	"expo/models"

	"github.com/gin-gonic/gin"
)

// AdminOnly must follow JWTAuth; it lets through only users flagged is_admin
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetCurrentUserID(c)
		if userID == 0 {
			abortUnauthorized(c, "please log in first")
			return
		}

		var user models.User
		if err := database.DB.WithContext(c.Request.Context()).Select("id", "is_admin", "status").First(&user, userID).Error; err != nil {
			abortUnauthorized(c, "user not found")
			return
		}

		if !user.IsAdmin || !user.CanLogin() {
			c.JSON(http.StatusForbidden, gin.H{
				"code":    http.StatusForbidden,
				"message": "permission denied",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
