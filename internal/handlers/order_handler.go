// internal/handlers/order_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Mustazir/stillore-server/internal/services"
	"github.com/Mustazir/stillore-server/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) Create(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.AbortWithError(c, utils.Unauthorized("Authentication required"))
		return
	}

	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest(utils.ValidationMessage(err)))
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), user, &req)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"order":   order,
		"message": "Order placed successfully",
	})
}

func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.AbortWithError(c, utils.Unauthorized("Authentication required"))
		return
	}

	params := utils.GetPaginationParams(c, 10)
	orders, pagination, err := h.orderService.GetMyOrders(c.Request.Context(), user.ID, params)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"orders":     orders,
		"pagination": pagination,
	})
}

func (h *OrderHandler) GetAll(c *gin.Context) {
	params := utils.GetPaginationParams(c, 20)
	orders, pagination, err := h.orderService.GetAllOrders(c.Request.Context(), c.Query("status"), params)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"orders":     orders,
		"pagination": pagination,
	})
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid order id"))
		return
	}

	callerID, isAdmin := callerIdentity(c)
	order, err := h.orderService.GetOrder(c.Request.Context(), id, callerID, isAdmin)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"order": order})
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.AbortWithError(c, utils.Unauthorized("Authentication required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid order id"))
		return
	}

	order, err := h.orderService.Cancel(c.Request.Context(), id, user.ID)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"order":   order,
		"message": "Order cancelled",
	})
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid order id"))
		return
	}

	var req struct {
		Status string `json:"status" validate:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest(utils.ValidationMessage(err)))
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"order":   order,
		"message": "Order status updated",
	})
}

// callerIdentity resolves the authenticated principal for owner-or-admin
// checks.
func callerIdentity(c *gin.Context) (uuid.UUID, bool) {
	if admin, ok := utils.GetAdminFromContext(c); ok {
		return admin.ID, true
	}
	if user, ok := utils.GetUserFromContext(c); ok {
		return user.ID, false
	}
	return uuid.Nil, false
}
