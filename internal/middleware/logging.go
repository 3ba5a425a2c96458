// internal/middleware/logging.go
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Mustazir/stillore-server/internal/utils"
)

func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		duration := time.Since(start)

		fields := logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   duration.Milliseconds(),
			"ip":         c.ClientIP(),
			"user_agent": c.Request.UserAgent(),
		}
		if user, ok := utils.GetUserFromContext(c); ok {
			fields["user_id"] = user.ID.String()
		} else if admin, ok := utils.GetAdminFromContext(c); ok {
			fields["admin_id"] = admin.ID.String()
		}

		logrus.WithFields(fields).Info("Request processed")
	}
}
