// internal/services/review_service.go
package services

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Mustazir/stillore-server/internal/models"
	"github.com/Mustazir/stillore-server/internal/utils"
)

// ReviewService gates reviews on a delivered purchase and keeps the
// product rating aggregate in sync by full recomputation after every
// write. Concurrent writers can lose each other's recompute; accepted.
type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

type CreateReviewRequest struct {
	ProductID string   `json:"productId" validate:"required,uuid"`
	Rating    int      `json:"rating" validate:"required,min=1,max=5"`
	Comment   string   `json:"comment" validate:"required,min=10,max=2000"`
	Images    []string `json:"images" validate:"omitempty,max=5"`
}

type UpdateReviewRequest struct {
	Rating  int      `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment string   `json:"comment" validate:"omitempty,min=10,max=2000"`
	Images  []string `json:"images" validate:"omitempty,max=5"`
}

type ReviewStats struct {
	Total         int64           `json:"total"`
	AverageRating float64         `json:"averageRating"`
	RatingCounts  map[int]int64   `json:"ratingCounts"`
	Recent        []models.Review `json:"recent"`
}

func (s *ReviewService) Create(ctx context.Context, user *models.User, req *CreateReviewRequest) (*models.Review, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, utils.BadRequest("Invalid product id")
	}

	var product models.Product
	err = s.db.WithContext(ctx).First(&product, "id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFound("Product not found")
	}
	if err != nil {
		return nil, err
	}

	purchased, err := s.hasDeliveredPurchase(ctx, user.ID, productID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, utils.Forbidden("You can only review products you have purchased")
	}

	var existing models.Review
	err = s.db.WithContext(ctx).
		Where("product_id = ? AND user_id = ?", productID, user.ID).
		First(&existing).Error
	if err == nil {
		return nil, utils.BadRequest("You have already reviewed this product")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := models.Review{
		ProductID: productID,
		UserID:    user.ID,
		UserName:  user.Name,
		UserPhoto: user.PhotoURL,
		Rating:    req.Rating,
		Comment:   req.Comment,
		Images:    req.Images,
	}
	if err := s.db.WithContext(ctx).Create(&review).Error; err != nil {
		return nil, err
	}

	if err := s.recomputeAggregate(ctx, productID); err != nil {
		return nil, err
	}
	return &review, nil
}

// CanReview reports whether the user may review the product and, when
// not, which gate failed.
func (s *ReviewService) CanReview(ctx context.Context, userID, productID uuid.UUID) (bool, string, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Review{}).
		Where("product_id = ? AND user_id = ?", productID, userID).
		Count(&count).Error
	if err != nil {
		return false, "", err
	}
	if count > 0 {
		return false, "already_reviewed", nil
	}

	purchased, err := s.hasDeliveredPurchase(ctx, userID, productID)
	if err != nil {
		return false, "", err
	}
	if !purchased {
		return false, "not_purchased", nil
	}

	return true, "", nil
}

func (s *ReviewService) ListByProduct(ctx context.Context, productID uuid.UUID, params utils.PaginationParams) ([]models.Review, *utils.Pagination, error) {
	query := s.db.WithContext(ctx).Model(&models.Review{}).Where("product_id = ?", productID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var reviews []models.Review
	err := utils.ApplyPagination(query.Order("created_at DESC"), params).Find(&reviews).Error
	if err != nil {
		return nil, nil, err
	}

	pagination := utils.NewPagination(total, params)
	return reviews, &pagination, nil
}

func (s *ReviewService) ListMine(ctx context.Context, userID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *ReviewService) ListAll(ctx context.Context, params utils.PaginationParams) ([]models.Review, *utils.Pagination, error) {
	query := s.db.WithContext(ctx).Model(&models.Review{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var reviews []models.Review
	err := utils.ApplyPagination(query.Preload("Product").Order("created_at DESC"), params).
		Find(&reviews).Error
	if err != nil {
		return nil, nil, err
	}

	pagination := utils.NewPagination(total, params)
	return reviews, &pagination, nil
}

func (s *ReviewService) Update(ctx context.Context, id uuid.UUID, callerID uuid.UUID, req *UpdateReviewRequest) (*models.Review, error) {
	var review models.Review
	err := s.db.WithContext(ctx).First(&review, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFound("Review not found")
	}
	if err != nil {
		return nil, err
	}

	if review.UserID != callerID {
		return nil, utils.Forbidden("You can only edit your own reviews")
	}

	if req.Rating != 0 {
		review.Rating = req.Rating
	}
	if req.Comment != "" {
		review.Comment = req.Comment
	}
	if req.Images != nil {
		review.Images = req.Images
	}

	if err := s.db.WithContext(ctx).Save(&review).Error; err != nil {
		return nil, err
	}

	if err := s.recomputeAggregate(ctx, review.ProductID); err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *ReviewService) Delete(ctx context.Context, id uuid.UUID, callerID uuid.UUID, isAdmin bool) error {
	var review models.Review
	err := s.db.WithContext(ctx).First(&review, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound("Review not found")
	}
	if err != nil {
		return err
	}

	if !isAdmin && review.UserID != callerID {
		return utils.Forbidden("You can only delete your own reviews")
	}

	if err := s.db.WithContext(ctx).Delete(&review).Error; err != nil {
		return err
	}

	return s.recomputeAggregate(ctx, review.ProductID)
}

func (s *ReviewService) Stats(ctx context.Context) (*ReviewStats, error) {
	stats := &ReviewStats{RatingCounts: map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}

	if err := s.db.WithContext(ctx).Model(&models.Review{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	var avg float64
	err := s.db.WithContext(ctx).Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}
	stats.AverageRating = math.Round(avg*10) / 10

	rows := []struct {
		Rating int
		Count  int64
	}{}
	err = s.db.WithContext(ctx).Model(&models.Review{}).
		Select("rating, COUNT(*) as count").
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.RatingCounts[row.Rating] = row.Count
	}

	err = s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(5).
		Find(&stats.Recent).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// hasDeliveredPurchase checks for a delivered order of the caller that
// contains the product.
func (s *ReviewService) hasDeliveredPurchase(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND orders.status = ? AND order_items.product_id = ?",
			userID, models.OrderStatusDelivered, productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// recomputeAggregate re-reads every review of the product and writes the
// rounded average and count back. O(n) per write, and the last concurrent
// writer wins.
func (s *ReviewService) recomputeAggregate(ctx context.Context, productID uuid.UUID) error {
	var reviews []models.Review
	err := s.db.WithContext(ctx).Where("product_id = ?", productID).Find(&reviews).Error
	if err != nil {
		return err
	}

	var average float64
	if len(reviews) > 0 {
		sum := 0
		for _, r := range reviews {
			sum += r.Rating
		}
		average = math.Round(float64(sum)/float64(len(reviews))*10) / 10
	}

	return s.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"average_rating": average,
			"review_count":   int64(len(reviews)),
		}).Error
}
