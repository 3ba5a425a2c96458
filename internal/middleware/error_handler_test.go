// internal/middleware/error_handler_test.go
package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mustazir/stillore-server/internal/utils"
)

func newErrorTestRouter(environment string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorHandler(environment))

	r.GET("/api-error", func(c *gin.Context) {
		utils.AbortWithError(c, utils.NotFound("Product not found"))
	})
	r.GET("/unexpected", func(c *gin.Context) {
		utils.AbortWithError(c, errors.New("database exploded"))
	})
	return r
}

func doRequest(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestAPIErrorEnvelope(t *testing.T) {
	r := newErrorTestRouter("production")

	w, body := doRequest(t, r, "/api-error")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Product not found", body["message"])
}

func TestUnexpectedErrorHiddenInProduction(t *testing.T) {
	r := newErrorTestRouter("production")

	w, body := doRequest(t, r, "/unexpected")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, body["success"])
	assert.NotContains(t, body["message"], "database exploded")
}

func TestUnexpectedErrorDetailedInDevelopment(t *testing.T) {
	r := newErrorTestRouter("development")

	w, body := doRequest(t, r, "/unexpected")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, body["message"], "database exploded")
}
