// internal/services/dashboard_service.go
package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Mustazir/stillore-server/internal/models"
)

// DashboardService produces the admin overview numbers. Revenue counts
// Delivered orders only. The grouping SQL is Postgres-specific.
type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

type DashboardStats struct {
	TotalUsers      int64          `json:"totalUsers"`
	TotalProducts   int64          `json:"totalProducts"`
	TotalCategories int64          `json:"totalCategories"`
	TotalOrders     int64          `json:"totalOrders"`
	PendingOrders   int64          `json:"pendingOrders"`
	DeliveredOrders int64          `json:"deliveredOrders"`
	TotalRevenue    float64        `json:"totalRevenue"`
	PeriodRevenue   float64        `json:"periodRevenue"`
	PeriodOrders    int64          `json:"periodOrders"`
	RecentOrders    []models.Order `json:"recentOrders"`
}

type SalesPoint struct {
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
	Orders  int64   `json:"orders"`
}

type TopProduct struct {
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Serial    string  `json:"serial"`
	UnitsSold int64   `json:"unitsSold"`
	Revenue   float64 `json:"revenue"`
}

// Stats collects the overview counters. period is today, month or year;
// anything else falls back to month.
func (s *DashboardService) Stats(ctx context.Context, period string) (*DashboardStats, error) {
	stats := &DashboardStats{}
	db := s.db.WithContext(ctx)

	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.User{}, &stats.TotalUsers},
		{&models.Product{}, &stats.TotalProducts},
		{&models.Category{}, &stats.TotalCategories},
		{&models.Order{}, &stats.TotalOrders},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	err := db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPending).
		Count(&stats.PendingOrders).Error
	if err != nil {
		return nil, err
	}
	err = db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusDelivered).
		Count(&stats.DeliveredOrders).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusDelivered).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&stats.TotalRevenue).Error
	if err != nil {
		return nil, err
	}

	since := periodStart(period, time.Now())
	periodQuery := db.Model(&models.Order{}).
		Where("status = ? AND created_at >= ?", models.OrderStatusDelivered, since)
	if err := periodQuery.Count(&stats.PeriodOrders).Error; err != nil {
		return nil, err
	}
	err = db.Model(&models.Order{}).
		Where("status = ? AND created_at >= ?", models.OrderStatusDelivered, since).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&stats.PeriodRevenue).Error
	if err != nil {
		return nil, err
	}

	err = db.Preload("Items").Preload("User").
		Order("created_at DESC").
		Limit(10).
		Find(&stats.RecentOrders).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// SalesChart groups delivered revenue by day (week/month period) or by
// month (year period).
func (s *DashboardService) SalesChart(ctx context.Context, period string) ([]SalesPoint, error) {
	now := time.Now()
	var since time.Time
	var labelExpr string

	switch period {
	case "year":
		since = now.AddDate(-1, 0, 0)
		labelExpr = "TO_CHAR(created_at, 'YYYY-MM')"
	case "month":
		since = now.AddDate(0, -1, 0)
		labelExpr = "TO_CHAR(created_at, 'YYYY-MM-DD')"
	default: // week
		since = now.AddDate(0, 0, -7)
		labelExpr = "TO_CHAR(created_at, 'YYYY-MM-DD')"
	}

	var points []SalesPoint
	err := s.db.WithContext(ctx).Model(&models.Order{}).
		Select(labelExpr+" as label, COALESCE(SUM(total_price), 0) as revenue, COUNT(*) as orders").
		Where("status = ? AND created_at >= ?", models.OrderStatusDelivered, since).
		Group(labelExpr).
		Order("label ASC").
		Scan(&points).Error
	if err != nil {
		return nil, err
	}
	return points, nil
}

// TopProducts aggregates units and revenue per product over delivered
// orders.
func (s *DashboardService) TopProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	var top []TopProduct
	err := s.db.WithContext(ctx).Model(&models.OrderItem{}).
		Select("order_items.product_id as product_id, order_items.title as title, order_items.serial as serial, "+
			"SUM(order_items.quantity) as units_sold, SUM(order_items.quantity * order_items.price) as revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.status = ?", models.OrderStatusDelivered).
		Group("order_items.product_id, order_items.title, order_items.serial").
		Order("units_sold DESC").
		Limit(limit).
		Scan(&top).Error
	if err != nil {
		return nil, err
	}
	return top, nil
}

func periodStart(period string, now time.Time) time.Time {
	switch period {
	case "today":
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case "year":
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	default: // month
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
}
