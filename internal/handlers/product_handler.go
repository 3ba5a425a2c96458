// internal/handlers/product_handler.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Mustazir/stillore-server/internal/services"
	"github.com/Mustazir/stillore-server/internal/utils"
)

const maxProductImages = 10

type ProductHandler struct {
	productService *services.ProductService
	storageService *services.StorageService
}

func NewProductHandler(productService *services.ProductService, storageService *services.StorageService) *ProductHandler {
	return &ProductHandler{productService: productService, storageService: storageService}
}

func (h *ProductHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c, 20)
	filters := services.ProductFilters{
		Category: c.Query("category"),
		Gender:   c.Query("gender"),
		Season:   c.Query("season"),
		Size:     c.Query("size"),
		Status:   c.Query("status"),
		Search:   c.Query("search"),
	}
	if raw := c.Query("minPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filters.MinPrice = &v
		}
	}
	if raw := c.Query("maxPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filters.MaxPrice = &v
		}
	}
	if raw := c.Query("isOffer"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			filters.IsOffer = &v
		}
	}
	if raw := c.Query("inStock"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			filters.InStock = v
		}
	}

	products, pagination, err := h.productService.List(c.Request.Context(), filters, params)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"products":   products,
		"pagination": pagination,
	})
}

func (h *ProductHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		utils.AbortWithError(c, utils.BadRequest("Search query is required"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	products, err := h.productService.Search(c.Request.Context(), q, limit)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"products": products})
}

func (h *ProductHandler) ListByCategory(c *gin.Context) {
	params := utils.GetPaginationParams(c, 20)

	category, products, pagination, err := h.productService.ListByCategorySlug(c.Request.Context(), c.Param("categorySlug"), params)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"category":   category,
		"products":   products,
		"pagination": pagination,
	})
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid product id"))
		return
	}

	product, category, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	payload := gin.H{"product": product}
	if category != nil {
		payload["categoryDetails"] = category
	}
	utils.SuccessResponse(c, payload)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest(utils.ValidationMessage(err)))
		return
	}

	product, err := h.productService.Create(c.Request.Context(), &req)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"product": product,
		"message": "Product created",
	})
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid product id"))
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid request body"))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.AbortWithError(c, utils.BadRequest(utils.ValidationMessage(err)))
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, &req)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": product,
		"message": "Product updated",
	})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.AbortWithError(c, utils.BadRequest("Invalid product id"))
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		utils.AbortWithError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Product deleted"})
}

func (h *ProductHandler) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		utils.AbortWithError(c, utils.BadRequest("Multipart form is required"))
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		utils.AbortWithError(c, utils.BadRequest("At least one image is required"))
		return
	}
	if len(files) > maxProductImages {
		utils.AbortWithError(c, utils.BadRequest("Too many images; maximum is 10"))
		return
	}

	options := h.storageService.GetDefaultUploadOptions("products")
	urls := make([]string, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			utils.AbortWithError(c, utils.BadRequest("Failed to read uploaded file"))
			return
		}

		if err := h.storageService.ValidateImage(file); err != nil {
			file.Close()
			utils.AbortWithError(c, utils.BadRequest("Invalid image file: "+header.Filename))
			return
		}

		result, err := h.storageService.UploadFile(file, header, options)
		file.Close()
		if err != nil {
			utils.AbortWithError(c, utils.BadRequest(err.Error()))
			return
		}
		urls = append(urls, result.URL)
	}

	utils.SuccessResponse(c, gin.H{
		"urls":    urls,
		"message": "Images uploaded",
	})
}
