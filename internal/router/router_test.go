// internal/router/router_test.go
package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Mustazir/stillore-server/internal/config"
	"github.com/Mustazir/stillore-server/internal/models"
	"github.com/Mustazir/stillore-server/internal/realtime"
	"github.com/Mustazir/stillore-server/internal/utils"
)

type RouterTestSuite struct {
	suite.Suite
	db     *gorm.DB
	engine *gin.Engine
}

func (s *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("router-test-secret")

	db, err := gorm.Open(sqlite.Open("file:routertest?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	s.Require().NoError(err)
	s.Require().NoError(db.AutoMigrate(
		&models.User{}, &models.Admin{}, &models.Category{}, &models.Product{},
		&models.Order{}, &models.OrderItem{}, &models.Review{},
		&models.HeroSlide{}, &models.OfferBanner{}, &models.CountdownTimer{},
		&models.DynamicLink{},
	))
	s.db = db

	cfg := &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:     "router-test-secret",
			UserTokenTTL:  1,
			AdminTokenTTL: 1,
		},
	}

	engine, err := Setup(cfg, db, realtime.NewHub(nil))
	s.Require().NoError(err)
	s.engine = engine
}

func (s *RouterTestSuite) TearDownTest() {
	// shared-cache memory DB persists while a connection is open; wipe
	// between tests
	for _, table := range []string{"admins", "users", "categories", "products", "orders", "order_items", "reviews"} {
		s.db.Exec("DELETE FROM " + table)
	}
}

func (s *RouterTestSuite) request(method, path string, body interface{}, token string) (*httptest.ResponseRecorder, map[string]interface{}) {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 {
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func (s *RouterTestSuite) adminToken() string {
	w, _ := s.request("POST", "/api/admin/create", map[string]string{
		"name":     "Store Admin",
		"email":    "admin@example.com",
		"password": "s3cret!pass",
	}, "")
	s.Require().Equal(http.StatusCreated, w.Code)

	w, body := s.request("POST", "/api/admin/login", map[string]string{
		"email":    "admin@example.com",
		"password": "s3cret!pass",
	}, "")
	s.Require().Equal(http.StatusOK, w.Code)
	return body["token"].(string)
}

func (s *RouterTestSuite) TestHealth() {
	w, body := s.request("GET", "/health", nil, "")

	s.Equal(http.StatusOK, w.Code)
	s.Equal(true, body["success"])
	s.Equal("ok", body["status"])
}

func (s *RouterTestSuite) TestUnknownRouteEnvelope() {
	w, body := s.request("GET", "/api/does-not-exist", nil, "")

	s.Equal(http.StatusNotFound, w.Code)
	s.Equal(false, body["success"])
	s.Equal("Route not found", body["message"])
}

func (s *RouterTestSuite) TestAdminLoginFlow() {
	token := s.adminToken()

	w, body := s.request("GET", "/api/admin/profile", nil, token)
	s.Equal(http.StatusOK, w.Code)
	s.Equal(true, body["success"])

	admin := body["admin"].(map[string]interface{})
	s.Equal("admin@example.com", admin["email"])
	// the bcrypt hash must never serialize
	s.NotContains(admin, "passwordHash")
	s.NotContains(admin, "password")
}

func (s *RouterTestSuite) TestProtectedRouteWithoutToken() {
	w, body := s.request("GET", "/api/admin/profile", nil, "")

	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal(false, body["success"])
}

func (s *RouterTestSuite) TestAdminOnlyRouteRejectsUserToken() {
	user := &models.User{Name: "Shopper", Email: "shopper@example.com", Role: models.UserRoleUser}
	s.Require().NoError(s.db.Create(user).Error)

	token, err := utils.GenerateUserToken(user.ID, 1)
	s.Require().NoError(err)

	w, body := s.request("GET", "/api/users", nil, token)
	s.Equal(http.StatusForbidden, w.Code)
	s.Equal(false, body["success"])
}

func (s *RouterTestSuite) TestCategoryCRUDOverHTTP() {
	token := s.adminToken()

	w, body := s.request("POST", "/api/categories", map[string]string{
		"name": "Winter Jackets",
		"code": "jac",
	}, token)
	s.Require().Equal(http.StatusCreated, w.Code)

	category := body["category"].(map[string]interface{})
	s.Equal("winter-jackets", category["slug"])
	s.Equal("JAC", category["code"])

	// public listing needs no token
	w, body = s.request("GET", "/api/categories", nil, "")
	s.Equal(http.StatusOK, w.Code)
	s.Len(body["categories"].([]interface{}), 1)

	// duplicate name rejected with the envelope
	w, body = s.request("POST", "/api/categories", map[string]string{
		"name": "Winter Jackets",
		"code": "jax",
	}, token)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal(false, body["success"])
}

func (s *RouterTestSuite) TestValidationErrorSurfacesAs400() {
	token := s.adminToken()

	w, body := s.request("POST", "/api/categories", map[string]string{
		"name": "X",
	}, token)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal(false, body["success"])
	s.NotEmpty(body["message"])
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
