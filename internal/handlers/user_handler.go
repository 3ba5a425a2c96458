// internal/handlers/user_handler.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Mustazir/stillore-server/internal/services"
	"github.com/Mustazir/stillore-server/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c, 20)

	filters := services.UserListFilters{
		Search: c.Query("search"),
		Role:   c.Query("role"),
	}
	if raw := c.Query("isBlocked"); raw != "" {
		if blocked, err := strconv.ParseBool(raw); err == nil {
			filters.IsBlocked = &blocked
		}
	}

	users, pagination, err := h.userService.List(c.Request.Context(), filters, params)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"users":      users,
		"pagination": pagination,
	})
}

func (h *UserHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid user id"))
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"user": user})
}

func (h *UserHandler) Block(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid user id"))
		return
	}

	user, err := h.userService.Block(c.Request.Context(), id)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"user":    user,
		"message": "User blocked",
	})
}

func (h *UserHandler) Unblock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid user id"))
		return
	}

	user, err := h.userService.Unblock(c.Request.Context(), id)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"user":    user,
		"message": "User unblocked",
	})
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid user id"))
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "User deleted"})
}
