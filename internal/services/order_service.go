// internal/services/order_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Mustazir/stillore-server/internal/config"
	"github.com/Mustazir/stillore-server/internal/models"
	"github.com/Mustazir/stillore-server/internal/realtime"
	"github.com/Mustazir/stillore-server/internal/utils"
)

// OrderNotifier receives new-order events for the admin dashboard. The
// realtime hub implements it; tests pass nil or a stub.
type OrderNotifier interface {
	Broadcast(event string, data interface{})
}

// OrderService owns the order lifecycle: placement with advisory stock
// checks, listing, cancellation and admin status transitions. Stock
// bookkeeping is deliberately non-transactional; see the per-method
// comments for what can go wrong under races.
type OrderService struct {
	db       *gorm.DB
	config   *config.Config
	notifier OrderNotifier
	fcm      *FCMService
}

func NewOrderService(db *gorm.DB, cfg *config.Config, notifier OrderNotifier, fcm *FCMService) *OrderService {
	return &OrderService{db: db, config: cfg, notifier: notifier, fcm: fcm}
}

type OrderItemRequest struct {
	ProductID string  `json:"productId" validate:"required,uuid"`
	Title     string  `json:"title" validate:"required"`
	Serial    string  `json:"serial"`
	Size      string  `json:"size" validate:"required"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
	Price     float64 `json:"price" validate:"required,gte=0"`
	Image     string  `json:"image"`
}

type CreateOrderRequest struct {
	Products   []OrderItemRequest `json:"products" validate:"required,min=1,dive"`
	TotalPrice float64            `json:"totalPrice" validate:"required,gt=0"`
	Address    string             `json:"address" validate:"required,min=10,max=512"`
	Phone      string             `json:"phone" validate:"required,phone"`
}

// Create validates each line against current stock, persists the order
// and then runs the side effects: stock decrement, whatsapp link, admin
// broadcast and push. The stock check and the decrement are separate
// reads and writes; concurrent orders can drive stock negative. Lines
// whose product no longer exists skip validation entirely and are stored
// as submitted.
func (s *OrderService) Create(ctx context.Context, user *models.User, req *CreateOrderRequest) (*models.Order, error) {
	for _, line := range req.Products {
		productID, err := uuid.Parse(line.ProductID)
		if err != nil {
			return nil, utils.BadRequest("Invalid product id in order")
		}

		var product models.Product
		err = s.db.WithContext(ctx).First(&product, "id = ?", productID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithField("product_id", line.ProductID).Warn("Order line references a missing product")
			continue
		}
		if err != nil {
			return nil, err
		}

		if product.Status == models.ProductStatusOutOfStock {
			return nil, utils.BadRequest(fmt.Sprintf("Product %s is out of stock", product.Title))
		}
		if line.Quantity > product.Stock {
			return nil, utils.BadRequest(fmt.Sprintf("Insufficient stock for %s. Available: %d", product.Title, product.Stock))
		}
	}

	order := models.Order{
		UserID:     user.ID,
		TotalPrice: req.TotalPrice,
		Address:    req.Address,
		Phone:      req.Phone,
		Status:     models.OrderStatusPending,
	}
	for _, line := range req.Products {
		productID, _ := uuid.Parse(line.ProductID)
		order.Items = append(order.Items, models.OrderItem{
			ProductID: productID,
			Title:     line.Title,
			Serial:    line.Serial,
			Size:      line.Size,
			Quantity:  line.Quantity,
			Price:     line.Price,
			Image:     line.Image,
		})
	}

	if err := s.db.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, err
	}

	link := BuildWhatsAppLink(s.config.WhatsApp.BusinessNumber, &order, user.Name)
	if link != "" {
		if err := s.db.WithContext(ctx).Model(&order).Update("whatsapp_link", link).Error; err != nil {
			logrus.WithError(err).Warn("Failed to store whatsapp link")
		} else {
			order.WhatsappLink = link
		}
	}

	s.decrementStock(ctx, order.Items)
	s.notifyAdmins(ctx, &order, user)

	logrus.WithFields(logrus.Fields{
		"order_id": order.ID,
		"user_id":  user.ID,
		"total":    order.TotalPrice,
		"items":    len(order.Items),
	}).Info("Order placed")

	return &order, nil
}

// decrementStock reduces stock per line, best-effort. Failures are logged
// and the order stands.
func (s *OrderService) decrementStock(ctx context.Context, items []models.OrderItem) {
	for _, item := range items {
		err := s.db.WithContext(ctx).Model(&models.Product{}).
			Where("id = ?", item.ProductID).
			Update("stock", gorm.Expr("stock - ?", item.Quantity)).Error
		if err != nil {
			logrus.WithError(err).WithField("product_id", item.ProductID).Warn("Failed to decrement stock")
		}
	}
}

func (s *OrderService) notifyAdmins(ctx context.Context, order *models.Order, user *models.User) {
	itemCount := 0
	for _, item := range order.Items {
		itemCount += item.Quantity
	}

	if s.notifier != nil {
		s.notifier.Broadcast("new:order", realtime.OrderEvent{
			OrderID:      order.ID.String(),
			CustomerName: user.Name,
			TotalPrice:   order.TotalPrice,
			ItemCount:    itemCount,
			CreatedAt:    order.CreatedAt,
			Message:      fmt.Sprintf("New order from %s", user.Name),
		})
	}

	if s.fcm != nil {
		s.fcm.NotifyAdmins(ctx,
			"New Order Received",
			fmt.Sprintf("%s placed an order of $%.2f (%d items)", user.Name, order.TotalPrice, itemCount),
			map[string]string{"orderId": order.ID.String()},
		)
	}
}

func (s *OrderService) GetMyOrders(ctx context.Context, userID uuid.UUID, params utils.PaginationParams) ([]models.Order, *utils.Pagination, error) {
	query := s.db.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var orders []models.Order
	err := utils.ApplyPagination(query.Preload("Items").Order("created_at DESC"), params).
		Find(&orders).Error
	if err != nil {
		return nil, nil, err
	}

	pagination := utils.NewPagination(total, params)
	return orders, &pagination, nil
}

func (s *OrderService) GetAllOrders(ctx context.Context, status string, params utils.PaginationParams) ([]models.Order, *utils.Pagination, error) {
	query := s.db.WithContext(ctx).Model(&models.Order{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	var orders []models.Order
	err := utils.ApplyPagination(query.Preload("Items").Preload("User").Order("created_at DESC"), params).
		Find(&orders).Error
	if err != nil {
		return nil, nil, err
	}

	pagination := utils.NewPagination(total, params)
	return orders, &pagination, nil
}

// GetOrder returns the order when the caller owns it or is an admin.
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID, callerID uuid.UUID, isAdmin bool) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("Items").Preload("User").First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFound("Order not found")
	}
	if err != nil {
		return nil, err
	}

	if !isAdmin && order.UserID != callerID {
		return nil, utils.Forbidden("You do not have access to this order")
	}
	return &order, nil
}

// Cancel lets the owner cancel a pending order. Stock is restored for
// every line without checking whether the decrement ever happened;
// missing products fail the restore silently.
func (s *OrderService) Cancel(ctx context.Context, id uuid.UUID, callerID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFound("Order not found")
	}
	if err != nil {
		return nil, err
	}

	if order.UserID != callerID {
		return nil, utils.Forbidden("You do not have access to this order")
	}
	if order.Status == models.OrderStatusDelivered {
		return nil, utils.BadRequest("Cannot cancel a delivered order")
	}
	if order.Status == models.OrderStatusCancelled {
		return nil, utils.BadRequest("Order is already cancelled")
	}

	s.restoreStock(ctx, order.Items)

	if err := s.db.WithContext(ctx).Model(&order).Update("status", models.OrderStatusCancelled).Error; err != nil {
		return nil, err
	}
	order.Status = models.OrderStatusCancelled
	return &order, nil
}

// UpdateStatus is the admin transition. Moving into Cancelled restores
// stock; moving out of Cancelled does not re-decrement it.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	newStatus := models.OrderStatus(status)
	switch newStatus {
	case models.OrderStatusPending, models.OrderStatusDelivered, models.OrderStatusCancelled:
	default:
		return nil, utils.BadRequest("Invalid order status")
	}

	var order models.Order
	err := s.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFound("Order not found")
	}
	if err != nil {
		return nil, err
	}

	if newStatus == models.OrderStatusCancelled && order.Status != models.OrderStatusCancelled {
		s.restoreStock(ctx, order.Items)
	}

	if err := s.db.WithContext(ctx).Model(&order).Update("status", newStatus).Error; err != nil {
		return nil, err
	}
	order.Status = newStatus
	return &order, nil
}

func (s *OrderService) restoreStock(ctx context.Context, items []models.OrderItem) {
	for _, item := range items {
		err := s.db.WithContext(ctx).Model(&models.Product{}).
			Where("id = ?", item.ProductID).
			Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error
		if err != nil {
			logrus.WithError(err).WithField("product_id", item.ProductID).Warn("Failed to restore stock")
		}
	}
}
