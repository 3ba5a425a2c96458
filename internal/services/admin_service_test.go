// internal/services/admin_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/Mustazir/stillore-server/internal/models"
	"github.com/Mustazir/stillore-server/internal/utils"
)

type AdminServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *AdminService
}

func (s *AdminServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.service = NewAdminService(s.db, testConfig())
}

func (s *AdminServiceTestSuite) createAdmin() *models.Admin {
	admin, err := s.service.Create(context.Background(), &CreateAdminRequest{
		Name:     "Store Admin",
		Email:    "admin@example.com",
		Password: "s3cret!pass",
	})
	s.Require().NoError(err)
	return admin
}

func (s *AdminServiceTestSuite) TestCreateHashesPassword() {
	admin := s.createAdmin()

	s.NotEmpty(admin.PasswordHash)
	s.NotEqual("s3cret!pass", admin.PasswordHash)
	s.NoError(admin.CheckPassword("s3cret!pass"))
	s.Error(admin.CheckPassword("wrong"))
}

func (s *AdminServiceTestSuite) TestDuplicateEmailRejected() {
	s.createAdmin()

	_, err := s.service.Create(context.Background(), &CreateAdminRequest{
		Name:     "Second Admin",
		Email:    "admin@example.com",
		Password: "another!pass",
	})
	s.Require().Error(err)

	apiErr, ok := err.(*utils.APIError)
	s.Require().True(ok)
	s.Equal(400, apiErr.StatusCode)
}

func (s *AdminServiceTestSuite) TestLogin() {
	s.createAdmin()

	admin, token, err := s.service.Login(context.Background(), &AdminLoginRequest{
		Email:    "admin@example.com",
		Password: "s3cret!pass",
	})
	s.Require().NoError(err)
	s.NotEmpty(token)
	s.Equal("admin@example.com", admin.Email)
}

func (s *AdminServiceTestSuite) TestLoginWrongPassword() {
	s.createAdmin()

	_, _, err := s.service.Login(context.Background(), &AdminLoginRequest{
		Email:    "admin@example.com",
		Password: "wrong",
	})
	s.Require().Error(err)

	apiErr, ok := err.(*utils.APIError)
	s.Require().True(ok)
	s.Equal(401, apiErr.StatusCode)
}

func (s *AdminServiceTestSuite) TestChangePasswordRequiresCurrent() {
	admin := s.createAdmin()

	err := s.service.ChangePassword(context.Background(), admin, &ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "brand-new-pass",
	})
	s.Require().Error(err)

	err = s.service.ChangePassword(context.Background(), admin, &ChangePasswordRequest{
		CurrentPassword: "s3cret!pass",
		NewPassword:     "brand-new-pass",
	})
	s.Require().NoError(err)

	_, _, err = s.service.Login(context.Background(), &AdminLoginRequest{
		Email:    "admin@example.com",
		Password: "brand-new-pass",
	})
	s.NoError(err)
}

func (s *AdminServiceTestSuite) TestFCMTokenLifecycle() {
	admin := s.createAdmin()
	ctx := context.Background()

	s.Require().NoError(s.service.SaveFCMToken(ctx, admin, "device-a"))
	s.Require().NoError(s.service.SaveFCMToken(ctx, admin, "device-b"))
	// duplicate registration is a no-op
	s.Require().NoError(s.service.SaveFCMToken(ctx, admin, "device-a"))

	var fresh models.Admin
	s.Require().NoError(s.db.First(&fresh, "id = ?", admin.ID).Error)
	s.ElementsMatch([]string{"device-a", "device-b"}, []string(fresh.FCMTokens))

	s.Require().NoError(s.service.RemoveFCMToken(ctx, admin, "device-a"))

	s.Require().NoError(s.db.First(&fresh, "id = ?", admin.ID).Error)
	s.ElementsMatch([]string{"device-b"}, []string(fresh.FCMTokens))
}

func TestAdminServiceSuite(t *testing.T) {
	suite.Run(t, new(AdminServiceTestSuite))
}
