// internal/handlers/auth_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Mustazir/stillore-server/internal/services"
	"github.com/Mustazir/stillore-server/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest(utils.ValidationMessage(err)))
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"token":   token,
		"user":    user,
		"message": "Account created successfully",
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest(utils.ValidationMessage(err)))
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) GetMe(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.AbortWithError(c, utils.Unauthorized("Authentication required"))
		return
	}

	utils.SuccessResponse(c, gin.H{"user": user})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.AbortWithError(c, utils.Unauthorized("Authentication required"))
		return
	}

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest(utils.ValidationMessage(err)))
		return
	}

	updated, err := h.authService.UpdateProfile(c.Request.Context(), user, &req)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"user":    updated,
		"message": "Profile updated",
	})
}
