// internal/services/whatsapp_test.go
package services

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/google/uuid"

	"github.com/Mustazir/stillore-server/internal/models"
)

func sampleOrder() *models.Order {
	return &models.Order{
		BaseModel: models.BaseModel{ID: uuid.New()},
		Items: []models.OrderItem{
			{Title: "Canvas Sneakers", Size: "M", Quantity: 2, Price: 59.99},
			{Title: "Wool Scarf", Size: "One Size", Quantity: 1, Price: 19.50},
		},
		TotalPrice: 139.48,
		Address:    "12 Harbor Street, Chittagong",
		Phone:      "+8801712345678",
	}
}

func TestBuildWhatsAppLink(t *testing.T) {
	link := BuildWhatsAppLink("+880 1812-345678", sampleOrder(), "Rahim")

	assert.True(t, strings.HasPrefix(link, "https://wa.me/8801812345678?text="), link)

	parsed, err := url.Parse(link)
	require.NoError(t, err)

	text := parsed.Query().Get("text")
	assert.Contains(t, text, "Rahim")
	assert.Contains(t, text, "Canvas Sneakers")
	assert.Contains(t, text, "x2")
	assert.Contains(t, text, "Total: $139.48")
	assert.Contains(t, text, "12 Harbor Street, Chittagong")
}

func TestBuildWhatsAppLinkStripsPlus(t *testing.T) {
	link := BuildWhatsAppLink("+8801812345678", sampleOrder(), "Rahim")
	assert.Contains(t, link, "wa.me/8801812345678?")
	assert.NotContains(t, link, "+880")
}

func TestBuildWhatsAppLinkWithoutNumber(t *testing.T) {
	assert.Empty(t, BuildWhatsAppLink("", sampleOrder(), "Rahim"))
	assert.Empty(t, BuildWhatsAppLink("   ", sampleOrder(), "Rahim"))
}
