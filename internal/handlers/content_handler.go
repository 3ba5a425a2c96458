// internal/handlers/content_handler.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Mustazir/stillore-server/internal/services"
	"github.com/Mustazir/stillore-server/internal/utils"
)

// ContentHandler serves the four marketing resources. The shapes differ
// per resource but the handler plumbing is uniform: bind, validate, call
// through.
type ContentHandler struct {
	contentService *services.ContentService
}

func NewContentHandler(contentService *services.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

func parseIDParam(c *gin.Context, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.AbortWithError(c, utils.BadRequest(message))
		return uuid.Nil, false
	}
	return id, true
}

// --- hero slides ---

func (h *ContentHandler) ListActiveSlides(c *gin.Context) {
	slides, err := h.contentService.ListActiveSlides(c.Request.Context())
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"slides": slides})
}

func (h *ContentHandler) ListAllSlides(c *gin.Context) {
	slides, err := h.contentService.ListAllSlides(c.Request.Context())
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"slides": slides})
}

func (h *ContentHandler) GetSlide(c *gin.Context) {
	id, ok := parseIDParam(c, "Invalid slide id")
	if !ok {
		return
	}

	slide, err := h.contentService.GetSlide(c.Request.Context(), id)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"slide": slide})
}

func (h *ContentHandler) CreateSlide(c *gin.Context) {
	var req services.HeroSlideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest(utils.ValidationMessage(err)))
		return
	}

	slide, err := h.contentService.CreateSlide(c.Request.Context(), &req)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	utils.CreatedResponse(c, gin.H{"slide": slide, "message": "Hero slide created"})
}

func (h *ContentHandler) UpdateSlide(c *gin.Context) {
	id, ok := parseIDParam(c, "Invalid slide id")
	if !ok {
		return
	}

	var req services.HeroSlideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest(utils.ValidationMessage(err)))
		return
	}

	slide, err := h.contentService.UpdateSlide(c.Request.Context(), id, &req)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"slide": slide, "message": "Hero slide updated"})
}

func (h *ContentHandler) DeleteSlide(c *gin.Context) {
	id, ok := parseIDParam(c, "Invalid slide id")
	if !ok {
		return
	}

	if err := h.contentService.DeleteSlide(c.Request.Context(), id); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Hero slide deleted"})
}

func (h *ContentHandler) ToggleSlide(c *gin.Context) {
	id, ok := parseIDParam(c, "Invalid slide id")
	if !ok {
		return
	}

	slide, err := h.contentService.ToggleSlide(c.Request.Context(), id)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"slide": slide})
}

func (h *ContentHandler) ReorderSlides(c *gin.Context) {
	var req struct {
		Slides []services.SlideOrderUpdate `json:"slides" validate:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest(utils.ValidationMessage(err)))
		return
	}

	if err := h.contentService.ReorderSlides(c.Request.Context(), req.Slides); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Slides reordered"})
}

// --- offer banners ---

func (h *ContentHandler) ListActiveBanners(c *gin.Context) {
	banners, err := h.contentService.ListActiveBanners(c.Request.Context())
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"banners": banners})
}

func (h *ContentHandler) ListAllBanners(c *gin.Context) {
	banners, err := h.contentService.ListAllBanners(c.Request.Context())
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"banners": banners})
}

func (h *ContentHandler) CreateBanner(c *gin.Context) {
	var req services.OfferBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest(utils.ValidationMessage(err)))
		return
	}

	banner, err := h.contentService.CreateBanner(c.Request.Context(), &req)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	utils.CreatedResponse(c, gin.H{"banner": banner, "message": "Offer banner created"})
}

func (h *ContentHandler) UpdateBanner(c *gin.Context) {
	id, ok := parseIDParam(c, "Invalid banner id")
	if !ok {
		return
	}

	var req services.OfferBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest(utils.ValidationMessage(err)))
		return
	}

	banner, err := h.contentService.UpdateBanner(c.Request.Context(), id, &req)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"banner": banner, "message": "Offer banner updated"})
}

func (h *ContentHandler) DeleteBanner(c *gin.Context) {
	id, ok := parseIDParam(c, "Invalid banner id")
	if !ok {
		return
	}

	if err := h.contentService.DeleteBanner(c.Request.Context(), id); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Offer banner deleted"})
}

func (h *ContentHandler) ToggleBanner(c *gin.Context) {
	id, ok := parseIDParam(c, "Invalid banner id")
	if !ok {
		return
	}

	banner, err := h.contentService.ToggleBanner(c.Request.Context(), id)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"banner": banner})
}

// --- countdown timers ---

func (h *ContentHandler) ActiveTimer(c *gin.Context) {
	timer, err := h.contentService.ActiveTimer(c.Request.Context())
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"timer": timer})
}

func (h *ContentHandler) ListAllTimers(c *gin.Context) {
	timers, err := h.contentService.ListAllTimers(c.Request.Context())
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"timers": timers})
}

func (h *ContentHandler) CreateTimer(c *gin.Context) {
	var req services.CountdownTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest(utils.ValidationMessage(err)))
		return
	}

	timer, err := h.contentService.CreateTimer(c.Request.Context(), &req)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	utils.CreatedResponse(c, gin.H{"timer": timer, "message": "Countdown timer created"})
}

func (h *ContentHandler) UpdateTimer(c *gin.Context) {
	id, ok := parseIDParam(c, "Invalid timer id")
	if !ok {
		return
	}

	var req services.CountdownTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest(utils.ValidationMessage(err)))
		return
	}

	timer, err := h.contentService.UpdateTimer(c.Request.Context(), id, &req)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"timer": timer, "message": "Countdown timer updated"})
}

func (h *ContentHandler) DeleteTimer(c *gin.Context) {
	id, ok := parseIDParam(c, "Invalid timer id")
	if !ok {
		return
	}

	if err := h.contentService.DeleteTimer(c.Request.Context(), id); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Countdown timer deleted"})
}

func (h *ContentHandler) ToggleTimer(c *gin.Context) {
	id, ok := parseIDParam(c, "Invalid timer id")
	if !ok {
		return
	}

	timer, err := h.contentService.ToggleTimer(c.Request.Context(), id)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"timer": timer})
}

// --- dynamic links ---

func (h *ContentHandler) ListActiveLinks(c *gin.Context) {
	links, err := h.contentService.ListActiveLinks(c.Request.Context())
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"links": links})
}

func (h *ContentHandler) ListAllLinks(c *gin.Context) {
	links, err := h.contentService.ListAllLinks(c.Request.Context())
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"links": links})
}

func (h *ContentHandler) GetLink(c *gin.Context) {
	id, ok := parseIDParam(c, "Invalid link id")
	if !ok {
		return
	}

	link, err := h.contentService.GetLink(c.Request.Context(), id)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"link": link})
}

func (h *ContentHandler) CreateLink(c *gin.Context) {
	var req services.DynamicLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest(utils.ValidationMessage(err)))
		return
	}

	link, err := h.contentService.CreateLink(c.Request.Context(), &req)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	utils.CreatedResponse(c, gin.H{"link": link, "message": "Dynamic link created"})
}

func (h *ContentHandler) UpdateLink(c *gin.Context) {
	id, ok := parseIDParam(c, "Invalid link id")
	if !ok {
		return
	}

	var req services.DynamicLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest(utils.ValidationMessage(err)))
		return
	}

	link, err := h.contentService.UpdateLink(c.Request.Context(), id, &req)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"link": link, "message": "Dynamic link updated"})
}

func (h *ContentHandler) DeleteLink(c *gin.Context) {
	id, ok := parseIDParam(c, "Invalid link id")
	if !ok {
		return
	}

	if err := h.contentService.DeleteLink(c.Request.Context(), id); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"message": "Dynamic link deleted"})
}

func (h *ContentHandler) ToggleLink(c *gin.Context) {
	id, ok := parseIDParam(c, "Invalid link id")
	if !ok {
		return
	}

	link, err := h.contentService.ToggleLink(c.Request.Context(), id)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"link": link})
}
