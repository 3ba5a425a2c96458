// internal/services/service_test.go
package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Mustazir/stillore-server/internal/config"
	"github.com/Mustazir/stillore-server/internal/models"
)

var testDBCounter int64

// newTestDB opens a fresh in-memory database with the full schema. The
// named shared-cache DSN keeps the database alive across pooled
// connections while isolating each test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
		&models.HeroSlide{},
		&models.OfferBanner{},
		&models.CountdownTimer{},
		&models.DynamicLink{},
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:     "test-secret",
			UserTokenTTL:  1,
			AdminTokenTTL: 1,
		},
		WhatsApp: config.WhatsAppConfig{
			BusinessNumber: "+8801712345678",
		},
	}
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Name:  "Test User",
		Email: email,
		Role:  models.UserRoleUser,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestCategory(t *testing.T, db *gorm.DB, name, code string) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:     name,
		Code:     code,
		Slug:     name,
		Type:     models.CategoryTypeCategory,
		IsActive: true,
	}
	require.NoError(t, db.Create(category).Error)
	return category
}

func createTestProduct(t *testing.T, db *gorm.DB, serial, categoryName string, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		Title:    "Product " + serial,
		Serial:   serial,
		Category: categoryName,
		Price:    49.99,
		Sizes:    models.StringArray{"M", "L"},
		Status:   models.ProductStatusAvailable,
		Images:   models.StringArray{"https://cdn.example.com/p.jpg"},
		Gender:   models.GenderUnisex,
		Stock:    stock,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}
