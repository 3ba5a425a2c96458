// internal/services/user_service.go
package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Mustazir/stillore-server/internal/models"
	"github.com/Mustazir/stillore-server/internal/utils"
)

// UserService is the admin-facing account directory.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type UserListFilters struct {
	Search    string
	Role      string
	IsBlocked *bool
}

func (s *UserService) List(ctx context.Context, filters UserListFilters, params utils.PaginationParams) ([]models.User, *utils.Pagination, error) {
	query := s.db.WithContext(ctx).Model(&models.User{})

	if filters.Search != "" {
		term := "%" + filters.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", term, term)
	}
	if filters.Role != "" {
		query = query.Where("role = ?", filters.Role)
	}
	if filters.IsBlocked != nil {
		query = query.Where("is_blocked = ?", *filters.IsBlocked)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var users []models.User
	err := utils.ApplyPagination(query.Order("created_at DESC"), params).Find(&users).Error
	if err != nil {
		return nil, nil, err
	}

	pagination := utils.NewPagination(total, params)
	return users, &pagination, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFound("User not found")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Block(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.Role == models.UserRoleAdmin {
		return nil, utils.BadRequest("Admin accounts cannot be blocked")
	}
	if user.IsBlocked {
		return nil, utils.BadRequest("User is already blocked")
	}

	if err := s.db.WithContext(ctx).Model(user).Update("is_blocked", true).Error; err != nil {
		return nil, err
	}
	user.IsBlocked = true
	return user, nil
}

func (s *UserService) Unblock(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !user.IsBlocked {
		return nil, utils.BadRequest("User is not blocked")
	}

	if err := s.db.WithContext(ctx).Model(user).Update("is_blocked", false).Error; err != nil {
		return nil, err
	}
	user.IsBlocked = false
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if user.Role == models.UserRoleAdmin {
		return utils.BadRequest("Admin accounts cannot be deleted")
	}

	return s.db.WithContext(ctx).Delete(user).Error
}
