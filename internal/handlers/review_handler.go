// internal/handlers/review_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Mustazir/stillore-server/internal/services"
	"github.com/Mustazir/stillore-server/internal/utils"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) Create(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.AbortWithError(c, utils.Unauthorized("Authentication required"))
		return
	}

	var req services.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest(utils.ValidationMessage(err)))
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), user, &req)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"review":  review,
		"message": "Review submitted",
	})
}

func (h *ReviewHandler) ListByProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid product id"))
		return
	}

	params := utils.GetPaginationParams(c, 10)
	reviews, pagination, err := h.reviewService.ListByProduct(c.Request.Context(), productID, params)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"reviews":    reviews,
		"pagination": pagination,
	})
}

func (h *ReviewHandler) ListMine(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.AbortWithError(c, utils.Unauthorized("Authentication required"))
		return
	}

	reviews, err := h.reviewService.ListMine(c.Request.Context(), user.ID)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"reviews": reviews})
}

func (h *ReviewHandler) CanReview(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.AbortWithError(c, utils.Unauthorized("Authentication required"))
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid product id"))
		return
	}

	canReview, reason, err := h.reviewService.CanReview(c.Request.Context(), user.ID, productID)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	payload := gin.H{"canReview": canReview}
	if reason != "" {
		payload["reason"] = reason
	}
	utils.SuccessResponse(c, payload)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	user, ok := utils.GetUserFromContext(c)
	if !ok {
		utils.AbortWithError(c, utils.Unauthorized("Authentication required"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid review id"))
		return
	}

	var req services.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest(utils.ValidationMessage(err)))
		return
	}

	review, err := h.reviewService.Update(c.Request.Context(), id, user.ID, &req)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"review":  review,
		"message": "Review updated",
	})
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid review id"))
		return
	}

	callerID, isAdmin := callerIdentity(c)
	if callerID == uuid.Nil {
		utils.AbortWithError(c, utils.Unauthorized("Authentication required"))
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), id, callerID, isAdmin); err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Review deleted"})
}

func (h *ReviewHandler) ListAll(c *gin.Context) {
	params := utils.GetPaginationParams(c, 20)
	reviews, pagination, err := h.reviewService.ListAll(c.Request.Context(), params)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"reviews":    reviews,
		"pagination": pagination,
	})
}

func (h *ReviewHandler) Stats(c *gin.Context) {
	stats, err := h.reviewService.Stats(c.Request.Context())
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"stats": stats})
}
