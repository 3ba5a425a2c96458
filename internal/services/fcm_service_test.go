// internal/services/fcm_service_test.go
package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Mustazir/stillore-server/internal/config"
	"github.com/Mustazir/stillore-server/internal/models"
)

func createTestAdminWithTokens(t *testing.T, db *gorm.DB, tokens ...string) *models.Admin {
	t.Helper()

	admin := &models.Admin{
		Name:      "Push Admin",
		Email:     "push@stillore.test",
		FCMTokens: models.StringArray(tokens),
	}
	require.NoError(t, admin.SetPassword("supersecret"))
	require.NoError(t, db.Create(admin).Error)
	return admin
}

func TestNotifyAdminsPrunesDeadTokens(t *testing.T) {
	db := newTestDB(t)
	admin := createTestAdminWithTokens(t, db, "tok-live", "tok-dead")

	var gotAuth string
	var gotMsg fcmMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotMsg))
		json.NewEncoder(w).Encode(fcmResponse{
			Success: 1,
			Failure: 1,
			Results: []struct {
				Error string `json:"error"`
			}{{}, {Error: "NotRegistered"}},
		})
	}))
	defer srv.Close()

	service := NewFCMService(db, &config.FCMConfig{ServerKey: "test-key", Endpoint: srv.URL})
	service.NotifyAdmins(context.Background(), "New Order", "Order #1 placed", nil)

	assert.Equal(t, "key=test-key", gotAuth)
	assert.Equal(t, []string{"tok-live", "tok-dead"}, gotMsg.RegistrationIDs)

	var reloaded models.Admin
	require.NoError(t, db.First(&reloaded, "id = ?", admin.ID).Error)
	assert.Equal(t, models.StringArray{"tok-live"}, reloaded.FCMTokens)
}

func TestNotifyAdminsKeepsTokensOnSuccess(t *testing.T) {
	db := newTestDB(t)
	admin := createTestAdminWithTokens(t, db, "tok-a", "tok-b")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(fcmResponse{Success: 2})
	}))
	defer srv.Close()

	service := NewFCMService(db, &config.FCMConfig{ServerKey: "test-key", Endpoint: srv.URL})
	service.NotifyAdmins(context.Background(), "New Order", "Order #2 placed", nil)

	var reloaded models.Admin
	require.NoError(t, db.First(&reloaded, "id = ?", admin.ID).Error)
	assert.ElementsMatch(t, []string{"tok-a", "tok-b"}, []string(reloaded.FCMTokens))
}

func TestNotifyAdminsNoServerKeyIsNoOp(t *testing.T) {
	db := newTestDB(t)
	createTestAdminWithTokens(t, db, "tok-a")

	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	service := NewFCMService(db, &config.FCMConfig{Endpoint: srv.URL})
	service.NotifyAdmins(context.Background(), "New Order", "Order #3 placed", nil)

	assert.False(t, called)
}
