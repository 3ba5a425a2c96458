// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Mustazir/stillore-server/internal/config"
	"github.com/Mustazir/stillore-server/internal/handlers"
	"github.com/Mustazir/stillore-server/internal/middleware"
	"github.com/Mustazir/stillore-server/internal/realtime"
	"github.com/Mustazir/stillore-server/internal/services"
)

// Setup builds the engine with every route, middleware chain and service
// wired.
func Setup(cfg *config.Config, db *gorm.DB, hub *realtime.Hub) (*gin.Engine, error) {
	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	verifier := services.NewFirebaseVerifier(&cfg.Firebase)
	fcmService := services.NewFCMService(db, &cfg.FCM)

	authService := services.NewAuthService(db, verifier, cfg)
	adminService := services.NewAdminService(db, cfg)
	userService := services.NewUserService(db)
	categoryService := services.NewCategoryService(db)
	productService := services.NewProductService(db, storageService)
	orderService := services.NewOrderService(db, cfg, hub, fcmService)
	reviewService := services.NewReviewService(db)
	dashboardService := services.NewDashboardService(db)
	contentService := services.NewContentService(db)

	authHandler := handlers.NewAuthHandler(authService)
	adminHandler := handlers.NewAdminHandler(adminService)
	userHandler := handlers.NewUserHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, storageService)
	productHandler := handlers.NewProductHandler(productService, storageService)
	orderHandler := handlers.NewOrderHandler(orderService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	contentHandler := handlers.NewContentHandler(contentService)
	realtimeHandler := handlers.NewRealtimeHandler(hub)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.ErrorHandler(cfg.Environment))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "status": "ok"})
	})

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Route not found"})
	})

	authRequired := middleware.AuthRequired(db)
	adminRequired := middleware.AdminRequired()
	notBlocked := middleware.CheckBlocked()

	// one limiter per tier per engine
	authRateLimit := middleware.AuthRateLimit()
	uploadRateLimit := middleware.UploadRateLimit()

	api := r.Group("/api")
	api.Use(middleware.GeneralRateLimit())

	auth := api.Group("/auth")
	auth.Use(authRateLimit)
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", authRequired, authHandler.GetMe)
		auth.PUT("/profile", authRequired, authHandler.UpdateProfile)
	}

	admin := api.Group("/admin")
	{
		admin.POST("/create", authRateLimit, adminHandler.Create)
		admin.POST("/login", authRateLimit, adminHandler.Login)

		protected := admin.Group("")
		protected.Use(authRequired, adminRequired)
		{
			protected.GET("/profile", adminHandler.Profile)
			protected.PUT("/change-password", adminHandler.ChangePassword)
			protected.POST("/fcm-token", adminHandler.SaveFCMToken)
			protected.DELETE("/fcm-token", adminHandler.RemoveFCMToken)
		}
	}

	users := api.Group("/users")
	users.Use(authRequired, adminRequired)
	{
		users.GET("", userHandler.List)
		users.GET("/:id", userHandler.Get)
		users.PUT("/:id/block", userHandler.Block)
		users.PUT("/:id/unblock", userHandler.Unblock)
		users.DELETE("/:id", userHandler.Delete)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", categoryHandler.List)
		categories.GET("/slug/:slug", categoryHandler.GetBySlug)
		categories.GET("/:id", categoryHandler.Get)

		categories.POST("", authRequired, adminRequired, categoryHandler.Create)
		categories.PUT("/:id", authRequired, adminRequired, categoryHandler.Update)
		categories.DELETE("/:id", authRequired, adminRequired, categoryHandler.Delete)
		categories.POST("/upload-image", authRequired, adminRequired, uploadRateLimit, categoryHandler.UploadImage)
	}

	products := api.Group("/products")
	{
		products.GET("", productHandler.List)
		products.GET("/search", productHandler.Search)
		products.GET("/category/:categorySlug", productHandler.ListByCategory)
		products.GET("/:id", productHandler.Get)

		products.POST("", authRequired, adminRequired, productHandler.Create)
		products.PUT("/:id", authRequired, adminRequired, productHandler.Update)
		products.DELETE("/:id", authRequired, adminRequired, productHandler.Delete)
		products.POST("/upload-images", authRequired, adminRequired, uploadRateLimit, productHandler.UploadImages)
	}

	orders := api.Group("/orders")
	orders.Use(authRequired)
	{
		orders.POST("", notBlocked, orderHandler.Create)
		orders.GET("/my", orderHandler.GetMyOrders)
		orders.GET("", adminRequired, orderHandler.GetAll)
		orders.GET("/:id", orderHandler.Get)
		orders.PUT("/:id/cancel", orderHandler.Cancel)
		orders.PUT("/:id/status", adminRequired, orderHandler.UpdateStatus)
	}

	reviews := api.Group("/reviews")
	{
		reviews.GET("/product/:productId", reviewHandler.ListByProduct)

		reviews.POST("", authRequired, notBlocked, reviewHandler.Create)
		reviews.GET("/my", authRequired, reviewHandler.ListMine)
		reviews.GET("/can-review/:productId", authRequired, reviewHandler.CanReview)
		reviews.PUT("/:id", authRequired, reviewHandler.Update)
		reviews.DELETE("/:id", authRequired, reviewHandler.Delete)

		reviews.GET("/admin/all", authRequired, adminRequired, reviewHandler.ListAll)
		reviews.GET("/admin/stats", authRequired, adminRequired, reviewHandler.Stats)
	}

	dashboard := api.Group("/dashboard")
	dashboard.Use(authRequired, adminRequired)
	{
		dashboard.GET("/stats", dashboardHandler.Stats)
		dashboard.GET("/sales-chart", dashboardHandler.SalesChart)
		dashboard.GET("/top-products", dashboardHandler.TopProducts)
	}

	heroSlides := api.Group("/hero-slides")
	{
		heroSlides.GET("", contentHandler.ListActiveSlides)

		protected := heroSlides.Group("")
		protected.Use(authRequired, adminRequired)
		{
			protected.GET("/all", contentHandler.ListAllSlides)
			protected.GET("/:id", contentHandler.GetSlide)
			protected.POST("", contentHandler.CreateSlide)
			protected.PUT("/reorder/bulk", contentHandler.ReorderSlides)
			protected.PUT("/:id", contentHandler.UpdateSlide)
			protected.PUT("/:id/toggle", contentHandler.ToggleSlide)
			protected.DELETE("/:id", contentHandler.DeleteSlide)
		}
	}

	offerBanners := api.Group("/offer-banners")
	{
		offerBanners.GET("", contentHandler.ListActiveBanners)

		protected := offerBanners.Group("")
		protected.Use(authRequired, adminRequired)
		{
			protected.GET("/all", contentHandler.ListAllBanners)
			protected.POST("", contentHandler.CreateBanner)
			protected.PUT("/:id", contentHandler.UpdateBanner)
			protected.PUT("/:id/toggle", contentHandler.ToggleBanner)
			protected.DELETE("/:id", contentHandler.DeleteBanner)
		}
	}

	countdownTimers := api.Group("/countdown-timers")
	{
		countdownTimers.GET("", contentHandler.ActiveTimer)

		protected := countdownTimers.Group("")
		protected.Use(authRequired, adminRequired)
		{
			protected.GET("/all", contentHandler.ListAllTimers)
			protected.POST("", contentHandler.CreateTimer)
			protected.PUT("/:id", contentHandler.UpdateTimer)
			protected.PUT("/:id/toggle", contentHandler.ToggleTimer)
			protected.DELETE("/:id", contentHandler.DeleteTimer)
		}
	}

	dynamicLinks := api.Group("/dynamic-links")
	{
		dynamicLinks.GET("", contentHandler.ListActiveLinks)

		protected := dynamicLinks.Group("")
		protected.Use(authRequired, adminRequired)
		{
			protected.GET("/all", contentHandler.ListAllLinks)
			protected.GET("/:id", contentHandler.GetLink)
			protected.POST("", contentHandler.CreateLink)
			protected.PUT("/:id", contentHandler.UpdateLink)
			protected.PUT("/:id/toggle", contentHandler.ToggleLink)
			protected.DELETE("/:id", contentHandler.DeleteLink)
		}
	}

	rt := api.Group("/realtime")
	rt.Use(authRequired, adminRequired)
	{
		rt.GET("/admin", realtimeHandler.AdminStream)
	}

	return r, nil
}
