// internal/services/order_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/Mustazir/stillore-server/internal/models"
	"github.com/Mustazir/stillore-server/internal/utils"
)

type stubNotifier struct {
	events []string
}

func (n *stubNotifier) Broadcast(event string, data interface{}) {
	n.events = append(n.events, event)
}

type OrderServiceTestSuite struct {
	suite.Suite
	db       *gorm.DB
	service  *OrderService
	notifier *stubNotifier
	user     *models.User
}

func (s *OrderServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.notifier = &stubNotifier{}
	s.service = NewOrderService(s.db, testConfig(), s.notifier, nil)
	s.user = createTestUser(s.T(), s.db, "shopper@example.com")
}

func (s *OrderServiceTestSuite) orderRequest(product *models.Product, quantity int) *CreateOrderRequest {
	return &CreateOrderRequest{
		Products: []OrderItemRequest{{
			ProductID: product.ID.String(),
			Title:     product.Title,
			Serial:    product.Serial,
			Size:      "M",
			Quantity:  quantity,
			Price:     product.Price,
		}},
		TotalPrice: product.Price * float64(quantity),
		Address:    "12 Harbor Street, Chittagong",
		Phone:      "+8801712345678",
	}
}

func (s *OrderServiceTestSuite) productStock(product *models.Product) int {
	var fresh models.Product
	s.Require().NoError(s.db.First(&fresh, "id = ?", product.ID).Error)
	return fresh.Stock
}

func (s *OrderServiceTestSuite) TestCreateDecrementsStock() {
	product := createTestProduct(s.T(), s.db, "STLSHO00001", "Shoes", 10)

	order, err := s.service.Create(context.Background(), s.user, s.orderRequest(product, 3))
	s.Require().NoError(err)

	s.Equal(models.OrderStatusPending, order.Status)
	s.Len(order.Items, 1)
	s.Equal(7, s.productStock(product))
	s.Contains(order.WhatsappLink, "wa.me/8801712345678")
	s.Equal([]string{"new:order"}, s.notifier.events)
}

func (s *OrderServiceTestSuite) TestQuantityBeyondStockRejected() {
	product := createTestProduct(s.T(), s.db, "STLSHO00001", "Shoes", 2)

	_, err := s.service.Create(context.Background(), s.user, s.orderRequest(product, 5))
	s.Require().Error(err)

	apiErr, ok := err.(*utils.APIError)
	s.Require().True(ok)
	s.Equal(400, apiErr.StatusCode)
	s.Contains(apiErr.Message, "Insufficient stock")
	s.Contains(apiErr.Message, "Available: 2")

	// nothing mutated
	s.Equal(2, s.productStock(product))
	var count int64
	s.Require().NoError(s.db.Model(&models.Order{}).Count(&count).Error)
	s.Zero(count)
	s.Empty(s.notifier.events)
}

func (s *OrderServiceTestSuite) TestOutOfStockStatusRejected() {
	product := createTestProduct(s.T(), s.db, "STLSHO00001", "Shoes", 5)
	s.Require().NoError(s.db.Model(product).Update("status", models.ProductStatusOutOfStock).Error)

	_, err := s.service.Create(context.Background(), s.user, s.orderRequest(product, 1))
	s.Require().Error(err)

	apiErr, ok := err.(*utils.APIError)
	s.Require().True(ok)
	s.Equal(400, apiErr.StatusCode)
	s.Contains(apiErr.Message, "out of stock")
}

func (s *OrderServiceTestSuite) TestMissingProductLinePassesThrough() {
	product := createTestProduct(s.T(), s.db, "STLSHO00001", "Shoes", 10)
	deleted := createTestProduct(s.T(), s.db, "STLSHO00002", "Shoes", 10)
	s.Require().NoError(s.db.Delete(deleted).Error)

	req := s.orderRequest(product, 1)
	req.Products = append(req.Products, OrderItemRequest{
		ProductID: deleted.ID.String(),
		Title:     deleted.Title,
		Size:      "L",
		Quantity:  2,
		Price:     deleted.Price,
	})

	order, err := s.service.Create(context.Background(), s.user, req)
	s.Require().NoError(err)
	s.Len(order.Items, 2)
}

func (s *OrderServiceTestSuite) TestCancelRestoresStockOnce() {
	product := createTestProduct(s.T(), s.db, "STLSHO00001", "Shoes", 10)

	order, err := s.service.Create(context.Background(), s.user, s.orderRequest(product, 4))
	s.Require().NoError(err)
	s.Equal(6, s.productStock(product))

	cancelled, err := s.service.Cancel(context.Background(), order.ID, s.user.ID)
	s.Require().NoError(err)
	s.Equal(models.OrderStatusCancelled, cancelled.Status)
	s.Equal(10, s.productStock(product))

	_, err = s.service.Cancel(context.Background(), order.ID, s.user.ID)
	s.Require().Error(err)
	apiErr, ok := err.(*utils.APIError)
	s.Require().True(ok)
	s.Equal(400, apiErr.StatusCode)
	s.Contains(apiErr.Message, "already cancelled")
	s.Equal(10, s.productStock(product))
}

func (s *OrderServiceTestSuite) TestCancelDeliveredRejected() {
	product := createTestProduct(s.T(), s.db, "STLSHO00001", "Shoes", 10)

	order, err := s.service.Create(context.Background(), s.user, s.orderRequest(product, 1))
	s.Require().NoError(err)

	_, err = s.service.UpdateStatus(context.Background(), order.ID, "Delivered")
	s.Require().NoError(err)

	_, err = s.service.Cancel(context.Background(), order.ID, s.user.ID)
	s.Require().Error(err)
	apiErr, ok := err.(*utils.APIError)
	s.Require().True(ok)
	s.Equal(400, apiErr.StatusCode)
	s.Contains(apiErr.Message, "delivered")
}

func (s *OrderServiceTestSuite) TestCancelByNonOwnerForbidden() {
	product := createTestProduct(s.T(), s.db, "STLSHO00001", "Shoes", 10)
	other := createTestUser(s.T(), s.db, "other@example.com")

	order, err := s.service.Create(context.Background(), s.user, s.orderRequest(product, 1))
	s.Require().NoError(err)

	_, err = s.service.Cancel(context.Background(), order.ID, other.ID)
	s.Require().Error(err)
	apiErr, ok := err.(*utils.APIError)
	s.Require().True(ok)
	s.Equal(403, apiErr.StatusCode)
}

func (s *OrderServiceTestSuite) TestStatusTransitionStockRules() {
	product := createTestProduct(s.T(), s.db, "STLSHO00001", "Shoes", 10)

	order, err := s.service.Create(context.Background(), s.user, s.orderRequest(product, 4))
	s.Require().NoError(err)
	s.Equal(6, s.productStock(product))

	// into Cancelled restores
	_, err = s.service.UpdateStatus(context.Background(), order.ID, "Cancelled")
	s.Require().NoError(err)
	s.Equal(10, s.productStock(product))

	// Cancelled -> Cancelled does not restore again
	_, err = s.service.UpdateStatus(context.Background(), order.ID, "Cancelled")
	s.Require().NoError(err)
	s.Equal(10, s.productStock(product))

	// leaving Cancelled does not re-decrement
	_, err = s.service.UpdateStatus(context.Background(), order.ID, "Pending")
	s.Require().NoError(err)
	s.Equal(10, s.productStock(product))
}

func (s *OrderServiceTestSuite) TestUpdateStatusValidatesValue() {
	product := createTestProduct(s.T(), s.db, "STLSHO00001", "Shoes", 10)

	order, err := s.service.Create(context.Background(), s.user, s.orderRequest(product, 1))
	s.Require().NoError(err)

	_, err = s.service.UpdateStatus(context.Background(), order.ID, "Shipped")
	s.Require().Error(err)
	apiErr, ok := err.(*utils.APIError)
	s.Require().True(ok)
	s.Equal(400, apiErr.StatusCode)
}

func (s *OrderServiceTestSuite) TestGetOrderOwnerOrAdmin() {
	product := createTestProduct(s.T(), s.db, "STLSHO00001", "Shoes", 10)
	other := createTestUser(s.T(), s.db, "other@example.com")

	order, err := s.service.Create(context.Background(), s.user, s.orderRequest(product, 1))
	s.Require().NoError(err)

	_, err = s.service.GetOrder(context.Background(), order.ID, s.user.ID, false)
	s.NoError(err)

	_, err = s.service.GetOrder(context.Background(), order.ID, other.ID, true)
	s.NoError(err)

	_, err = s.service.GetOrder(context.Background(), order.ID, other.ID, false)
	s.Require().Error(err)
	apiErr, ok := err.(*utils.APIError)
	s.Require().True(ok)
	s.Equal(403, apiErr.StatusCode)
}

func TestOrderServiceSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}
