// internal/middleware/error_handler.go
package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Mustazir/stillore-server/internal/utils"
)

// ErrorHandler serializes errors recorded on the context to the response
// envelope. Expected conditions carry their own status via *utils.APIError;
// anything else is a 500, with the stack included in development only.
func ErrorHandler(environment string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		if apiErr, ok := err.(*utils.APIError); ok {
			c.JSON(apiErr.StatusCode, gin.H{
				"success": false,
				"message": apiErr.Message,
			})
			return
		}

		logrus.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).WithError(err).Error("Unhandled error")

		body := gin.H{
			"success": false,
			"message": "Internal Server Error",
		}
		if environment == "development" {
			body["message"] = err.Error()
			body["stack"] = string(debug.Stack())
		}
		c.JSON(http.StatusInternalServerError, body)
	}
}
