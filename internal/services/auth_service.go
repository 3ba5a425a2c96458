// internal/services/auth_service.go
package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Mustazir/stillore-server/internal/config"
	"github.com/Mustazir/stillore-server/internal/models"
	"github.com/Mustazir/stillore-server/internal/utils"
)

// AuthService handles shopper registration and login. Identity is proved
// by a Firebase ID token; the service exchanges it for a local JWT.
type AuthService struct {
	db       *gorm.DB
	verifier TokenVerifier
	config   *config.Config
}

func NewAuthService(db *gorm.DB, verifier TokenVerifier, cfg *config.Config) *AuthService {
	return &AuthService{db: db, verifier: verifier, config: cfg}
}

type RegisterRequest struct {
	Name          string `json:"name" validate:"required,min=2,max=50"`
	Email         string `json:"email" validate:"required,email"`
	FirebaseToken string `json:"firebaseToken" validate:"required"`
	PhotoURL      string `json:"photoURL" validate:"omitempty,url"`
}

type LoginRequest struct {
	FirebaseToken string `json:"firebaseToken" validate:"required"`
}

type UpdateProfileRequest struct {
	Name     string `json:"name" validate:"omitempty,min=2,max=50"`
	Phone    string `json:"phone" validate:"omitempty,phone"`
	Address  string `json:"address" validate:"omitempty,max=512"`
	PhotoURL string `json:"photoURL" validate:"omitempty,url"`
}

// Register creates a user account for a Firebase-verified identity and
// issues a session token.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*models.User, string, error) {
	profile, err := s.verifier.VerifyToken(ctx, req.FirebaseToken)
	if err != nil {
		return nil, "", err
	}
	if profile.Email != req.Email {
		return nil, "", utils.Unauthorized("Firebase token does not match the provided email")
	}

	var existing models.User
	err = s.db.WithContext(ctx).Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return nil, "", utils.BadRequest("An account with this email already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		PhotoURL: req.PhotoURL,
		Role:     models.UserRoleUser,
	}
	if user.PhotoURL == "" {
		user.PhotoURL = profile.PhotoURL
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateUserToken(user.ID, s.config.JWT.UserTokenTTL)
	if err != nil {
		return nil, "", err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("User registered")

	return &user, token, nil
}

// Login resolves a Firebase token to an existing account.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*models.User, string, error) {
	profile, err := s.verifier.VerifyToken(ctx, req.FirebaseToken)
	if err != nil {
		return nil, "", err
	}

	var user models.User
	err = s.db.WithContext(ctx).Where("email = ?", profile.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", utils.NotFound("No account found for this email. Please register first")
	}
	if err != nil {
		return nil, "", err
	}

	if user.IsBlocked {
		return nil, "", utils.Forbidden("Your account has been blocked. Contact support")
	}

	token, err := utils.GenerateUserToken(user.ID, s.config.JWT.UserTokenTTL)
	if err != nil {
		return nil, "", err
	}

	return &user, token, nil
}

// UpdateProfile applies the non-empty fields of the request to the caller.
func (s *AuthService) UpdateProfile(ctx context.Context, user *models.User, req *UpdateProfileRequest) (*models.User, error) {
	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Address != "" {
		updates["address"] = req.Address
	}
	if req.PhotoURL != "" {
		updates["photo_url"] = req.PhotoURL
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}
	return user, nil
}
