// internal/utils/context.go
package utils

import (
	"github.com/gin-gonic/gin"

	"github.com/Mustazir/stillore-server/internal/models"
)

const (
	ContextUserKey  = "currentUser"
	ContextAdminKey = "currentAdmin"
	ContextRoleKey  = "role"
)

func GetUserFromContext(c *gin.Context) (*models.User, bool) {
	if v, exists := c.Get(ContextUserKey); exists {
		if user, ok := v.(*models.User); ok {
			return user, true
		}
	}
	return nil, false
}

func GetAdminFromContext(c *gin.Context) (*models.Admin, bool) {
	if v, exists := c.Get(ContextAdminKey); exists {
		if admin, ok := v.(*models.Admin); ok {
			return admin, true
		}
	}
	return nil, false
}

func IsAdmin(c *gin.Context) bool {
	if v, exists := c.Get(ContextRoleKey); exists {
		if role, ok := v.(string); ok {
			return role == string(models.UserRoleAdmin)
		}
	}
	return false
}
