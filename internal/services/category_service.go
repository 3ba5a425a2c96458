// internal/services/category_service.go
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Mustazir/stillore-server/internal/models"
	"github.com/Mustazir/stillore-server/internal/utils"
)

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=50"`
	Code        string `json:"code" validate:"required,alpha,min=2,max=5"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Image       string `json:"image" validate:"omitempty,url"`
	Type        string `json:"type" validate:"omitempty,oneof=category customization"`
}

type UpdateCategoryRequest struct {
	Name        string  `json:"name" validate:"omitempty,min=2,max=50"`
	Code        string  `json:"code" validate:"omitempty,alpha,min=2,max=5"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Image       string  `json:"image" validate:"omitempty,url"`
	Type        string  `json:"type" validate:"omitempty,oneof=category customization"`
	IsActive    *bool   `json:"isActive"`
}

func (s *CategoryService) List(ctx context.Context, isActive *bool) ([]models.Category, error) {
	query := s.db.WithContext(ctx).Model(&models.Category{})
	if isActive != nil {
		query = query.Where("is_active = ?", *isActive)
	}

	var categories []models.Category
	if err := query.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := s.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFound("Category not found")
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFound("Category not found")
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) Create(ctx context.Context, req *CreateCategoryRequest) (*models.Category, error) {
	code := strings.ToUpper(req.Code)
	slug := utils.Slugify(req.Name)

	if err := s.checkUniqueness(ctx, req.Name, code, slug, uuid.Nil); err != nil {
		return nil, err
	}

	category := models.Category{
		Name:        req.Name,
		Code:        code,
		Slug:        slug,
		Description: req.Description,
		Image:       req.Image,
		Type:        models.CategoryTypeCategory,
		IsActive:    true,
	}
	if req.Type != "" {
		category.Type = models.CategoryType(req.Type)
	}

	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req *UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := category.Name
	code := category.Code
	slug := category.Slug
	if req.Name != "" && req.Name != category.Name {
		name = req.Name
		slug = utils.Slugify(req.Name)
	}
	if req.Code != "" {
		code = strings.ToUpper(req.Code)
	}

	if err := s.checkUniqueness(ctx, name, code, slug, category.ID); err != nil {
		return nil, err
	}

	category.Name = name
	category.Code = code
	category.Slug = slug
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Image != "" {
		category.Image = req.Image
	}
	if req.Type != "" {
		category.Type = models.CategoryType(req.Type)
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.db.WithContext(ctx).Save(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// Delete refuses to remove a category that products still reference by
// name.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	category, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	var productCount int64
	err = s.db.WithContext(ctx).Model(&models.Product{}).
		Where("category = ?", category.Name).
		Count(&productCount).Error
	if err != nil {
		return err
	}
	if productCount > 0 {
		return utils.BadRequest("Cannot delete a category that has products")
	}

	return s.db.WithContext(ctx).Delete(category).Error
}

func (s *CategoryService) checkUniqueness(ctx context.Context, name, code, slug string, excludeID uuid.UUID) error {
	type check struct {
		column  string
		value   string
		message string
	}
	checks := []check{
		{"name", name, "A category with this name already exists"},
		{"code", code, "A category with this code already exists"},
		{"slug", slug, "A category with this slug already exists"},
	}

	for _, ck := range checks {
		query := s.db.WithContext(ctx).Model(&models.Category{}).Where(ck.column+" = ?", ck.value)
		if excludeID != uuid.Nil {
			query = query.Where("id <> ?", excludeID)
		}

		var count int64
		if err := query.Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return utils.BadRequest(ck.message)
		}
	}
	return nil
}
