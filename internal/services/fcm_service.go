// internal/services/fcm_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Mustazir/stillore-server/internal/config"
	"github.com/Mustazir/stillore-server/internal/models"
)

// FCMService pushes order notifications to admin devices over the FCM
// legacy HTTP API. Delivery is best-effort: failures are logged and never
// surfaced to order callers.
type FCMService struct {
	db        *gorm.DB
	serverKey string
	endpoint  string
	client    *http.Client
}

func NewFCMService(db *gorm.DB, cfg *config.FCMConfig) *FCMService {
	return &FCMService{
		db:        db,
		serverKey: cfg.ServerKey,
		endpoint:  cfg.Endpoint,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type fcmMessage struct {
	RegistrationIDs []string          `json:"registration_ids"`
	Notification    fcmNotification   `json:"notification"`
	Data            map[string]string `json:"data,omitempty"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type fcmResponse struct {
	Success int `json:"success"`
	Failure int `json:"failure"`
	Results []struct {
		Error string `json:"error"`
	} `json:"results"`
}

// NotifyAdmins sends a multicast push to every registered admin device
// token and prunes tokens FCM reports as dead.
func (s *FCMService) NotifyAdmins(ctx context.Context, title, body string, data map[string]string) {
	if s.serverKey == "" {
		return
	}

	var admins []models.Admin
	if err := s.db.WithContext(ctx).Find(&admins).Error; err != nil {
		logrus.WithError(err).Warn("FCM: failed to load admin tokens")
		return
	}

	var tokens []string
	for _, admin := range admins {
		tokens = append(tokens, admin.FCMTokens...)
	}
	if len(tokens) == 0 {
		return
	}

	result, err := s.send(ctx, tokens, title, body, data)
	if err != nil {
		logrus.WithError(err).Warn("FCM: push failed")
		return
	}

	logrus.WithFields(logrus.Fields{
		"success": result.Success,
		"failure": result.Failure,
	}).Info("FCM: push delivered")

	if result.Failure > 0 {
		s.pruneDeadTokens(ctx, tokens, result)
	}
}

func (s *FCMService) send(ctx context.Context, tokens []string, title, body string, data map[string]string) (*fcmResponse, error) {
	payload, err := json.Marshal(fcmMessage{
		RegistrationIDs: tokens,
		Notification:    fcmNotification{Title: title, Body: body},
		Data:            data,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode FCM payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build FCM request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+s.serverKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("FCM request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("FCM responded with status %d", resp.StatusCode)
	}

	var result fcmResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode FCM response: %w", err)
	}
	return &result, nil
}

// pruneDeadTokens removes tokens FCM flagged as unregistered or invalid
// from every admin record that holds them.
func (s *FCMService) pruneDeadTokens(ctx context.Context, tokens []string, result *fcmResponse) {
	var dead []string
	for i, r := range result.Results {
		if i >= len(tokens) {
			break
		}
		if r.Error == "NotRegistered" || r.Error == "InvalidRegistration" {
			dead = append(dead, tokens[i])
		}
	}
	if len(dead) == 0 {
		return
	}

	deadSet := make(map[string]struct{}, len(dead))
	for _, t := range dead {
		deadSet[t] = struct{}{}
	}

	var admins []models.Admin
	if err := s.db.WithContext(ctx).Find(&admins).Error; err != nil {
		logrus.WithError(err).Warn("FCM: failed to load admins for token pruning")
		return
	}

	for i := range admins {
		kept := make(models.StringArray, 0, len(admins[i].FCMTokens))
		for _, t := range admins[i].FCMTokens {
			if _, gone := deadSet[t]; !gone {
				kept = append(kept, t)
			}
		}
		if len(kept) == len(admins[i].FCMTokens) {
			continue
		}
		if err := s.db.WithContext(ctx).Model(&admins[i]).Update("fcm_tokens", kept).Error; err != nil {
			logrus.WithError(err).Warn("FCM: failed to prune dead tokens")
		}
	}

	logrus.WithField("pruned", len(dead)).Info("FCM: removed dead device tokens")
}
