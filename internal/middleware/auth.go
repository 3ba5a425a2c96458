// internal/middleware/auth.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Mustazir/stillore-server/internal/models"
	"github.com/Mustazir/stillore-server/internal/utils"
)

// AuthRequired validates the bearer token and loads the caller. Admin
// tokens are resolved against the admins table, user tokens against users.
func AuthRequired(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearerToken(c)
		if !ok {
			utils.ErrorResponse(c, 401, "No token provided. Please login.")
			c.Abort()
			return
		}

		id, err := uuid.Parse(claims.UserID)
		if err != nil {
			utils.ErrorResponse(c, 401, "Invalid token")
			c.Abort()
			return
		}

		if claims.Role == string(models.UserRoleAdmin) {
			var admin models.Admin
			if err := db.First(&admin, "id = ?", id).Error; err != nil {
				utils.ErrorResponse(c, 401, "User not found. Invalid token.")
				c.Abort()
				return
			}
			c.Set(utils.ContextAdminKey, &admin)
			c.Set(utils.ContextRoleKey, string(models.UserRoleAdmin))
			c.Next()
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", id).Error; err != nil {
			utils.ErrorResponse(c, 401, "User not found. Invalid token.")
			c.Abort()
			return
		}
		c.Set(utils.ContextUserKey, &user)
		c.Set(utils.ContextRoleKey, string(user.Role))
		c.Next()
	}
}

// AdminRequired gates admin-only routes. Must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !utils.IsAdmin(c) {
			utils.ErrorResponse(c, 403, "Admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CheckBlocked rejects blocked user accounts.
func CheckBlocked() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, ok := utils.GetUserFromContext(c); ok && user.IsBlocked {
			utils.ErrorResponse(c, 403, "Your account has been blocked. Contact support.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func parseBearerToken(c *gin.Context) (*utils.JWTClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := utils.ValidateToken(parts[1])
	if err != nil {
		return nil, false
	}
	return claims, true
}
