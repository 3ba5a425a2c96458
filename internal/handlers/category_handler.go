// internal/handlers/category_handler.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Mustazir/stillore-server/internal/services"
	"github.com/Mustazir/stillore-server/internal/utils"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
	storageService  *services.StorageService
}

func NewCategoryHandler(categoryService *services.CategoryService, storageService *services.StorageService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, storageService: storageService}
}

func (h *CategoryHandler) List(c *gin.Context) {
	// Storefront default is active categories only.
	active := true
	isActive := &active
	if raw := c.Query("isActive"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err == nil {
			isActive = &parsed
		}
	} else if utils.IsAdmin(c) {
		isActive = nil
	}

	categories, err := h.categoryService.List(c.Request.Context(), isActive)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"categories": categories})
}

func (h *CategoryHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid category id"))
		return
	}

	category, err := h.categoryService.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"category": category})
}

func (h *CategoryHandler) GetBySlug(c *gin.Context) {
	category, err := h.categoryService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"category": category})
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req services.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest(utils.ValidationMessage(err)))
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), &req)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"category": category,
		"message":  "Category created",
	})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid category id"))
		return
	}

	var req services.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest(utils.ValidationMessage(err)))
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), id, &req)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"category": category,
		"message":  "Category updated",
	})
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid category id"))
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Category deleted"})
}

func (h *CategoryHandler) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		utils.AbortWithError(c, utils.BadRequest("Image file is required"))
		return
	}
	defer file.Close()

	if err := h.storageService.ValidateImage(file); err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid image file"))
		return
	}

	result, err := h.storageService.UploadFile(file, header, h.storageService.GetDefaultUploadOptions("content"))
	if err != nil {
		utils.AbortWithError(c, utils.BadRequest(err.Error()))
		return
	}

	utils.SuccessResponse(c, gin.H{
		"url":     result.URL,
		"message": "Image uploaded",
	})
}
