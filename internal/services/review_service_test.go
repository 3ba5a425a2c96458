// internal/services/review_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/Mustazir/stillore-server/internal/models"
	"github.com/Mustazir/stillore-server/internal/utils"
)

type ReviewServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ReviewService
	user    *models.User
	product *models.Product
}

func (s *ReviewServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.service = NewReviewService(s.db)
	s.user = createTestUser(s.T(), s.db, "reviewer@example.com")
	s.product = createTestProduct(s.T(), s.db, "STLSHO00001", "Shoes", 10)
}

// deliverOrder records a delivered purchase of the product for the user.
func (s *ReviewServiceTestSuite) deliverOrder(user *models.User, product *models.Product) {
	order := models.Order{
		UserID:     user.ID,
		TotalPrice: product.Price,
		Address:    "12 Harbor Street, Chittagong",
		Phone:      "+8801712345678",
		Status:     models.OrderStatusDelivered,
		Items: []models.OrderItem{{
			ProductID: product.ID,
			Title:     product.Title,
			Size:      "M",
			Quantity:  1,
			Price:     product.Price,
		}},
	}
	s.Require().NoError(s.db.Create(&order).Error)
}

func (s *ReviewServiceTestSuite) reviewRequest(rating int) *CreateReviewRequest {
	return &CreateReviewRequest{
		ProductID: s.product.ID.String(),
		Rating:    rating,
		Comment:   "Really solid quality for the price point",
	}
}

func (s *ReviewServiceTestSuite) productAggregate() (float64, int64) {
	var fresh models.Product
	s.Require().NoError(s.db.First(&fresh, "id = ?", s.product.ID).Error)
	return fresh.AverageRating, fresh.ReviewCount
}

func (s *ReviewServiceTestSuite) TestCreateWithoutPurchaseForbidden() {
	_, err := s.service.Create(context.Background(), s.user, s.reviewRequest(5))
	s.Require().Error(err)

	apiErr, ok := err.(*utils.APIError)
	s.Require().True(ok)
	s.Equal(403, apiErr.StatusCode)
}

func (s *ReviewServiceTestSuite) TestPendingOrderDoesNotQualify() {
	order := models.Order{
		UserID:     s.user.ID,
		TotalPrice: s.product.Price,
		Address:    "12 Harbor Street, Chittagong",
		Phone:      "+8801712345678",
		Status:     models.OrderStatusPending,
		Items: []models.OrderItem{{
			ProductID: s.product.ID,
			Title:     s.product.Title,
			Size:      "M",
			Quantity:  1,
			Price:     s.product.Price,
		}},
	}
	s.Require().NoError(s.db.Create(&order).Error)

	_, err := s.service.Create(context.Background(), s.user, s.reviewRequest(5))
	s.Require().Error(err)

	apiErr, ok := err.(*utils.APIError)
	s.Require().True(ok)
	s.Equal(403, apiErr.StatusCode)
}

func (s *ReviewServiceTestSuite) TestCreateUpdatesAggregate() {
	s.deliverOrder(s.user, s.product)

	review, err := s.service.Create(context.Background(), s.user, s.reviewRequest(4))
	s.Require().NoError(err)
	s.Equal(s.user.Name, review.UserName)

	avg, count := s.productAggregate()
	s.Equal(4.0, avg)
	s.Equal(int64(1), count)
}

func (s *ReviewServiceTestSuite) TestAverageRoundsToOneDecimal() {
	s.deliverOrder(s.user, s.product)
	second := createTestUser(s.T(), s.db, "second@example.com")
	s.deliverOrder(second, s.product)
	third := createTestUser(s.T(), s.db, "third@example.com")
	s.deliverOrder(third, s.product)

	_, err := s.service.Create(context.Background(), s.user, s.reviewRequest(5))
	s.Require().NoError(err)
	_, err = s.service.Create(context.Background(), second, s.reviewRequest(4))
	s.Require().NoError(err)
	_, err = s.service.Create(context.Background(), third, s.reviewRequest(4))
	s.Require().NoError(err)

	// 13/3 = 4.333... -> 4.3
	avg, count := s.productAggregate()
	s.Equal(4.3, avg)
	s.Equal(int64(3), count)
}

func (s *ReviewServiceTestSuite) TestDuplicateReviewRejected() {
	s.deliverOrder(s.user, s.product)

	_, err := s.service.Create(context.Background(), s.user, s.reviewRequest(5))
	s.Require().NoError(err)

	_, err = s.service.Create(context.Background(), s.user, s.reviewRequest(3))
	s.Require().Error(err)

	apiErr, ok := err.(*utils.APIError)
	s.Require().True(ok)
	s.Equal(400, apiErr.StatusCode)
	s.Contains(apiErr.Message, "already reviewed")
}

func (s *ReviewServiceTestSuite) TestCanReviewReasons() {
	ctx := context.Background()

	ok, reason, err := s.service.CanReview(ctx, s.user.ID, s.product.ID)
	s.Require().NoError(err)
	s.False(ok)
	s.Equal("not_purchased", reason)

	s.deliverOrder(s.user, s.product)

	ok, reason, err = s.service.CanReview(ctx, s.user.ID, s.product.ID)
	s.Require().NoError(err)
	s.True(ok)
	s.Empty(reason)

	_, err = s.service.Create(ctx, s.user, s.reviewRequest(5))
	s.Require().NoError(err)

	ok, reason, err = s.service.CanReview(ctx, s.user.ID, s.product.ID)
	s.Require().NoError(err)
	s.False(ok)
	s.Equal("already_reviewed", reason)
}

func (s *ReviewServiceTestSuite) TestUpdateRecomputesAggregate() {
	s.deliverOrder(s.user, s.product)

	review, err := s.service.Create(context.Background(), s.user, s.reviewRequest(2))
	s.Require().NoError(err)

	_, err = s.service.Update(context.Background(), review.ID, s.user.ID, &UpdateReviewRequest{Rating: 5})
	s.Require().NoError(err)

	avg, _ := s.productAggregate()
	s.Equal(5.0, avg)
}

func (s *ReviewServiceTestSuite) TestUpdateByNonOwnerForbidden() {
	s.deliverOrder(s.user, s.product)
	other := createTestUser(s.T(), s.db, "other@example.com")

	review, err := s.service.Create(context.Background(), s.user, s.reviewRequest(4))
	s.Require().NoError(err)

	_, err = s.service.Update(context.Background(), review.ID, other.ID, &UpdateReviewRequest{Rating: 1})
	s.Require().Error(err)

	apiErr, ok := err.(*utils.APIError)
	s.Require().True(ok)
	s.Equal(403, apiErr.StatusCode)
}

func (s *ReviewServiceTestSuite) TestDeleteLastReviewResetsAggregate() {
	s.deliverOrder(s.user, s.product)

	review, err := s.service.Create(context.Background(), s.user, s.reviewRequest(5))
	s.Require().NoError(err)

	avg, count := s.productAggregate()
	s.Equal(5.0, avg)
	s.Equal(int64(1), count)

	err = s.service.Delete(context.Background(), review.ID, s.user.ID, false)
	s.Require().NoError(err)

	avg, count = s.productAggregate()
	s.Zero(avg)
	s.Zero(count)
}

func (s *ReviewServiceTestSuite) TestAdminCanDeleteAnyReview() {
	s.deliverOrder(s.user, s.product)

	review, err := s.service.Create(context.Background(), s.user, s.reviewRequest(5))
	s.Require().NoError(err)

	admin := createTestUser(s.T(), s.db, "admin@example.com")
	err = s.service.Delete(context.Background(), review.ID, admin.ID, true)
	s.NoError(err)
}

func TestReviewServiceSuite(t *testing.T) {
	suite.Run(t, new(ReviewServiceTestSuite))
}
