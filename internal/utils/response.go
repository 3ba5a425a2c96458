// internal/utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response envelope: {success, <resource keys>, message?}. Errors are
// {success:false, message}.

func SuccessResponse(c *gin.Context, payload gin.H) {
	respond(c, http.StatusOK, payload)
}

func CreatedResponse(c *gin.Context, payload gin.H) {
	respond(c, http.StatusCreated, payload)
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"message": message,
	})
}

// AbortWithError records the error for the centralized handler and stops
// the chain. Services return *APIError for expected conditions; anything
// else becomes a 500.
func AbortWithError(c *gin.Context, err error) {
	c.Error(err)
	c.Abort()
}

func respond(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}
