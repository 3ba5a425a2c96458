// internal/handlers/admin_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Mustazir/stillore-server/internal/services"
	"github.com/Mustazir/stillore-server/internal/utils"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) Create(c *gin.Context) {
	var req services.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest(utils.ValidationMessage(err)))
		return
	}

	admin, err := h.adminService.Create(c.Request.Context(), &req)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"admin":   admin,
		"message": "Admin account created",
	})
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req services.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest(utils.ValidationMessage(err)))
		return
	}

	admin, token, err := h.adminService.Login(c.Request.Context(), &req)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"token": token,
		"admin": admin,
	})
}

func (h *AdminHandler) Profile(c *gin.Context) {
	admin, ok := utils.GetAdminFromContext(c)
	if !ok {
		utils.AbortWithError(c, utils.Unauthorized("Admin authentication required"))
		return
	}

	utils.SuccessResponse(c, gin.H{"admin": admin})
}

func (h *AdminHandler) ChangePassword(c *gin.Context) {
	admin, ok := utils.GetAdminFromContext(c)
	if !ok {
		utils.AbortWithError(c, utils.Unauthorized("Admin authentication required"))
		return
	}

	var req services.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest(utils.ValidationMessage(err)))
		return
	}

	if err := h.adminService.ChangePassword(c.Request.Context(), admin, &req); err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Password changed"})
}

func (h *AdminHandler) SaveFCMToken(c *gin.Context) {
	admin, ok := utils.GetAdminFromContext(c)
	if !ok {
		utils.AbortWithError(c, utils.Unauthorized("Admin authentication required"))
		return
	}

	var req services.FCMTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest(utils.ValidationMessage(err)))
		return
	}

	if err := h.adminService.SaveFCMToken(c.Request.Context(), admin, req.Token); err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Device token saved"})
}

func (h *AdminHandler) RemoveFCMToken(c *gin.Context) {
	admin, ok := utils.GetAdminFromContext(c)
	if !ok {
		utils.AbortWithError(c, utils.Unauthorized("Admin authentication required"))
		return
	}

	var req services.FCMTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest(utils.ValidationMessage(err)))
		return
	}

	if err := h.adminService.RemoveFCMToken(c.Request.Context(), admin, req.Token); err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Device token removed"})
}
