// internal/services/admin_service.go
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

// AdminService covers the email/password identity class used by staff.
type AdminService struct {
	db     *gorm.DB
	config *config.Config
}

func NewAdminService(db *gorm.DB, cfg *config.Config) *AdminService {
	return &AdminService{db: db, config: cfg}
}

type CreateAdminRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

type FCMTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

func (s *AdminService) Create(ctx context.Context, req *CreateAdminRequest) (*models.Admin, error) {
	var existing models.Admin
	err := s.db.WithContext(ctx).Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return nil, utils.BadRequest("An admin with this email already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	admin := models.Admin{
		Name:  req.Name,
		Email: req.Email,
	}
	if err := admin.SetPassword(req.Password); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(&admin).Error; err != nil {
		return nil, err
	}

	logrus.WithField("email", admin.Email).Info("Admin account created")
	return &admin, nil
}

func (s *AdminService) Login(ctx context.Context, req *AdminLoginRequest) (*models.Admin, string, error) {
	var admin models.Admin
	err := s.db.WithContext(ctx).Where("email = ?", req.Email).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", utils.Unauthorized("Invalid email or password")
	}
	if err != nil {
		return nil, "", err
	}

	if err := admin.CheckPassword(req.Password); err != nil {
		return nil, "", utils.Unauthorized("Invalid email or password")
	}

	token, err := utils.GenerateAdminToken(admin.ID, s.config.JWT.AdminTokenTTL)
	if err != nil {
		return nil, "", err
	}

	return &admin, token, nil
}

func (s *AdminService) ChangePassword(ctx context.Context, admin *models.Admin, req *ChangePasswordRequest) error {
	if err := admin.CheckPassword(req.CurrentPassword); err != nil {
		return utils.Unauthorized("Current password is incorrect")
	}

	if err := admin.SetPassword(req.NewPassword); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Model(admin).Update("password_hash", admin.PasswordHash).Error
}

// SaveFCMToken registers a device token for push delivery. Adding a token
// the admin already holds is a no-op.
func (s *AdminService) SaveFCMToken(ctx context.Context, admin *models.Admin, token string) error {
	if admin.HasFCMToken(token) {
		return nil
	}

	tokens := append(admin.FCMTokens, token)
	if err := s.db.WithContext(ctx).Model(admin).Update("fcm_tokens", tokens).Error; err != nil {
		return err
	}
	admin.FCMTokens = tokens
	return nil
}

func (s *AdminService) RemoveFCMToken(ctx context.Context, admin *models.Admin, token string) error {
	kept := make(models.StringArray, 0, len(admin.FCMTokens))
	for _, t := range admin.FCMTokens {
		if t != token {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(admin.FCMTokens) {
		return nil
	}

	if err := s.db.WithContext(ctx).Model(admin).Update("fcm_tokens", kept).Error; err != nil {
		return err
	}
	admin.FCMTokens = kept
	return nil
}
