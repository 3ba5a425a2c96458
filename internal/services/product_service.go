// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Mustazir/stillore-server/internal/models"
	"github.com/Mustazir/stillore-server/internal/utils"
)

// serialPrefix opens every generated product serial.
const serialPrefix = "STL"

type ProductService struct {
	db      *gorm.DB
	storage *StorageService
}

func NewProductService(db *gorm.DB, storage *StorageService) *ProductService {
	return &ProductService{db: db, storage: storage}
}

type CreateProductRequest struct {
	Title           string                    `json:"title" validate:"required,min=2,max=200"`
	CategoryID      string                    `json:"categoryId" validate:"required,uuid"`
	Price           float64                   `json:"price" validate:"required,gt=0"`
	DiscountPrice   float64                   `json:"discountPrice" validate:"omitempty,gte=0"`
	Sizes           []string                  `json:"sizes" validate:"required,min=1"`
	Status          string                    `json:"status" validate:"omitempty,oneof=Available 'Out of Stock' 'Coming Soon'"`
	Description     models.ProductDescription `json:"description"`
	Images          []string                  `json:"images" validate:"required,min=1"`
	Gender          string                    `json:"gender" validate:"required,oneof=Men Women Unisex"`
	Season          string                    `json:"season" validate:"omitempty,max=20"`
	Tags            []string                  `json:"tags"`
	IsOffer         bool                      `json:"isOffer"`
	DiscountPercent int                       `json:"discountPercent" validate:"omitempty,gte=0,lte=100"`
	BadgeText       string                    `json:"badgeText" validate:"omitempty,max=50"`
	Stock           int                       `json:"stock" validate:"omitempty,gte=0"`
}

type UpdateProductRequest struct {
	Title           string                     `json:"title" validate:"omitempty,min=2,max=200"`
	Category        string                     `json:"category"` // id, slug or name
	Price           *float64                   `json:"price" validate:"omitempty,gt=0"`
	DiscountPrice   *float64                   `json:"discountPrice" validate:"omitempty,gte=0"`
	Sizes           []string                   `json:"sizes"`
	Status          string                     `json:"status" validate:"omitempty,oneof=Available 'Out of Stock' 'Coming Soon'"`
	Description     *models.ProductDescription `json:"description"`
	Images          []string                   `json:"images"`
	Gender          string                     `json:"gender" validate:"omitempty,oneof=Men Women Unisex"`
	Season          *string                    `json:"season" validate:"omitempty,max=20"`
	Tags            []string                   `json:"tags"`
	IsOffer         *bool                      `json:"isOffer"`
	DiscountPercent *int                       `json:"discountPercent" validate:"omitempty,gte=0,lte=100"`
	BadgeText       *string                    `json:"badgeText" validate:"omitempty,max=50"`
	Stock           *int                       `json:"stock" validate:"omitempty,gte=0"`
}

type ProductFilters struct {
	Category string
	Gender   string
	Season   string
	Size     string
	MinPrice *float64
	MaxPrice *float64
	IsOffer  *bool
	InStock  bool
	Status   string
	Search   string
}

// GenerateSerial builds the next serial for a category: the STL prefix,
// the category code, then the highest existing sequence plus one, padded
// to five digits. Read-then-increment with no lock; the unique index on
// serial is the only guard against a concurrent duplicate.
func (s *ProductService) GenerateSerial(ctx context.Context, categoryName string) (string, error) {
	var category models.Category
	err := s.db.WithContext(ctx).Where("name = ?", categoryName).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", utils.NotFound("Category not found")
	}
	if err != nil {
		return "", err
	}

	prefix := serialPrefix + strings.ToUpper(category.Code)

	// Five single-character wildcards match the sequence digits exactly,
	// so a code that prefixes a longer code (BA vs BAG) never picks up
	// the longer code's serials.
	var last models.Product
	err = s.db.WithContext(ctx).
		Where("serial LIKE ?", prefix+"_____").
		Order("serial DESC").
		First(&last).Error

	next := 1
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// first product in this category
	case err != nil:
		return "", err
	default:
		seq, parseErr := strconv.Atoi(strings.TrimPrefix(last.Serial, prefix))
		if parseErr != nil {
			return "", fmt.Errorf("malformed serial %q: %w", last.Serial, parseErr)
		}
		next = seq + 1
	}

	return fmt.Sprintf("%s%05d", prefix, next), nil
}

func (s *ProductService) Create(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, utils.BadRequest("Invalid category id")
	}

	var category models.Category
	err = s.db.WithContext(ctx).First(&category, "id = ?", categoryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFound("Category not found")
	}
	if err != nil {
		return nil, err
	}

	serial, err := s.GenerateSerial(ctx, category.Name)
	if err != nil {
		return nil, err
	}

	product := models.Product{
		Title:           req.Title,
		Serial:          serial,
		Category:        category.Name,
		Price:           req.Price,
		DiscountPrice:   req.DiscountPrice,
		Sizes:           req.Sizes,
		Status:          models.ProductStatusAvailable,
		Description:     req.Description,
		Images:          req.Images,
		Gender:          models.ProductGender(req.Gender),
		Season:          req.Season,
		Tags:            req.Tags,
		IsOffer:         req.IsOffer,
		DiscountPercent: req.DiscountPercent,
		BadgeText:       req.BadgeText,
		Stock:           req.Stock,
	}
	if req.Status != "" {
		product.Status = models.ProductStatus(req.Status)
	}

	if err := s.db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductService) List(ctx context.Context, filters ProductFilters, params utils.PaginationParams) ([]models.Product, *utils.Pagination, error) {
	query := s.buildFilterQuery(ctx, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	allowedSorts := []string{"price", "title", "created_at", "average_rating", "stock"}
	query = utils.ApplySort(query, params, allowedSorts)

	var products []models.Product
	if err := utils.ApplyPagination(query, params).Find(&products).Error; err != nil {
		return nil, nil, err
	}

	pagination := utils.NewPagination(total, params)
	return products, &pagination, nil
}

func (s *ProductService) buildFilterQuery(ctx context.Context, filters ProductFilters) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Product{})

	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Gender != "" {
		query = query.Where("gender = ?", filters.Gender)
	}
	if filters.Season != "" {
		query = query.Where("season = ?", filters.Season)
	}
	if filters.Size != "" {
		// Sizes are stored as a JSON array; match the quoted element.
		query = query.Where("sizes LIKE ?", fmt.Sprintf("%%\"%s\"%%", filters.Size))
	}
	if filters.MinPrice != nil {
		query = query.Where("price >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		query = query.Where("price <= ?", *filters.MaxPrice)
	}
	if filters.IsOffer != nil {
		query = query.Where("is_offer = ?", *filters.IsOffer)
	}
	if filters.InStock {
		query = query.Where("status = ? AND stock > 0", models.ProductStatusAvailable)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Search != "" {
		term := "%" + filters.Search + "%"
		query = query.Where("title ILIKE ? OR serial ILIKE ? OR tags LIKE ?", term, term, term)
	}

	return query
}

// Search is the storefront fuzzy search: every character of the query may
// be separated by arbitrary text in the title, and plain substring match
// applies to category and description.
func (s *ProductService) Search(ctx context.Context, q string, limit int) ([]models.Product, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	var fuzzy strings.Builder
	fuzzy.WriteByte('%')
	for _, r := range q {
		fuzzy.WriteRune(r)
		fuzzy.WriteByte('%')
	}
	term := "%" + q + "%"

	var products []models.Product
	err := s.db.WithContext(ctx).
		Where("title ILIKE ? OR category ILIKE ? OR description ILIKE ?", fuzzy.String(), term, term).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// ListByCategorySlug returns the products of an active category.
func (s *ProductService) ListByCategorySlug(ctx context.Context, slug string, params utils.PaginationParams) (*models.Category, []models.Product, *utils.Pagination, error) {
	var category models.Category
	err := s.db.WithContext(ctx).Where("slug = ? AND is_active = ?", slug, true).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, nil, utils.NotFound("Category not found")
	}
	if err != nil {
		return nil, nil, nil, err
	}

	query := s.db.WithContext(ctx).Model(&models.Product{}).Where("category = ?", category.Name)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, nil, err
	}

	var products []models.Product
	err = utils.ApplyPagination(query.Order("created_at DESC"), params).Find(&products).Error
	if err != nil {
		return nil, nil, nil, err
	}

	pagination := utils.NewPagination(total, params)
	return &category, products, &pagination, nil
}

func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, *models.Category, error) {
	var product models.Product
	err := s.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, utils.NotFound("Product not found")
	}
	if err != nil {
		return nil, nil, err
	}

	var category models.Category
	err = s.db.WithContext(ctx).Where("name = ?", product.Category).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &product, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	return &product, &category, nil
}

// Update applies partial changes. The serial never changes, even when the
// product moves to another category.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	product, _, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Category != "" {
		category, err := s.resolveCategory(ctx, req.Category)
		if err != nil {
			return nil, err
		}
		product.Category = category.Name
	}

	if req.Title != "" {
		product.Title = req.Title
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.DiscountPrice != nil {
		product.DiscountPrice = *req.DiscountPrice
	}
	if req.Sizes != nil {
		product.Sizes = req.Sizes
	}
	if req.Status != "" {
		product.Status = models.ProductStatus(req.Status)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Images != nil {
		product.Images = req.Images
	}
	if req.Gender != "" {
		product.Gender = models.ProductGender(req.Gender)
	}
	if req.Season != nil {
		product.Season = *req.Season
	}
	if req.Tags != nil {
		product.Tags = req.Tags
	}
	if req.IsOffer != nil {
		product.IsOffer = *req.IsOffer
	}
	if req.DiscountPercent != nil {
		product.DiscountPercent = *req.DiscountPercent
	}
	if req.BadgeText != nil {
		product.BadgeText = *req.BadgeText
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}

	if err := s.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes the product and makes a best-effort attempt to clean up
// its stored images.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, _, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(product).Error; err != nil {
		return err
	}

	if s.storage != nil {
		for _, image := range product.Images {
			if err := s.storage.DeleteFileByURL(image); err != nil {
				logrus.WithError(err).WithField("image", image).Warn("Failed to delete product image")
			}
		}
	}

	return nil
}

// resolveCategory accepts an id, a slug or an exact name.
func (s *ProductService) resolveCategory(ctx context.Context, ref string) (*models.Category, error) {
	var category models.Category

	if id, err := uuid.Parse(ref); err == nil {
		err := s.db.WithContext(ctx).First(&category, "id = ?", id).Error
		if err == nil {
			return &category, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	err := s.db.WithContext(ctx).Where("slug = ? OR name = ?", ref, ref).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFound("Category not found")
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}
