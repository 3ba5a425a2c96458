// internal/services/identity_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Mustazir/stillore-server/internal/config"
	"github.com/Mustazir/stillore-server/internal/utils"
)

// IdentityProfile is the subset of the identity provider's account record
// the auth flow needs.
type IdentityProfile struct {
	UID      string
	Email    string
	Name     string
	PhotoURL string
}

// TokenVerifier resolves a client-supplied identity token to an account
// profile. Fronted by an interface so auth tests can stub the provider.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, idToken string) (*IdentityProfile, error)
}

// FirebaseVerifier validates ID tokens against the Firebase Identity
// Toolkit accounts:lookup endpoint.
type FirebaseVerifier struct {
	webAPIKey string
	endpoint  string
	client    *http.Client
}

func NewFirebaseVerifier(cfg *config.FirebaseConfig) *FirebaseVerifier {
	return &FirebaseVerifier{
		webAPIKey: cfg.WebAPIKey,
		endpoint:  "https://identitytoolkit.googleapis.com/v1/accounts:lookup",
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

type lookupRequest struct {
	IDToken string `json:"idToken"`
}

type lookupResponse struct {
	Users []struct {
		LocalID     string `json:"localId"`
		Email       string `json:"email"`
		DisplayName string `json:"displayName"`
		PhotoURL    string `json:"photoUrl"`
	} `json:"users"`
}

func (v *FirebaseVerifier) VerifyToken(ctx context.Context, idToken string) (*IdentityProfile, error) {
	body, err := json.Marshal(lookupRequest{IDToken: idToken})
	if err != nil {
		return nil, fmt.Errorf("failed to encode token lookup: %w", err)
	}

	url := fmt.Sprintf("%s?key=%s", v.endpoint, v.webAPIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build token lookup request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, utils.Unauthorized("Invalid or expired Firebase token")
	}

	var result lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode token lookup response: %w", err)
	}
	if len(result.Users) == 0 {
		return nil, utils.Unauthorized("Invalid or expired Firebase token")
	}

	u := result.Users[0]
	if u.Email == "" {
		return nil, utils.Unauthorized("Firebase account has no email")
	}

	return &IdentityProfile{
		UID:      u.LocalID,
		Email:    u.Email,
		Name:     u.DisplayName,
		PhotoURL: u.PhotoURL,
	}, nil
}
