package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/nejmigmc-soft/landmarkweb/config"
	"github.com/nejmigmc-soft/landmarkweb/controllers"
	adminctl "github.com/nejmigmc-soft/landmarkweb/controllers/admin"
	"github.com/nejmigmc-soft/landmarkweb/middleware"
	"github.com/nejmigmc-soft/landmarkweb/models"
	"github.com/nejmigmc-soft/landmarkweb/services"
)

// SetupRouter builds the gin engine and registers every route group.
// All dependencies come in from the composition root; nothing here
// reaches for globals.
func SetupRouter(cfg *config.Config, db *gorm.DB, rdb *redis.Client, uploads *services.UploadService) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RecoveryMiddleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	listingService := services.NewListingService(db)
	currencyService := services.NewCurrencyService(db, rdb)

	listingController := controllers.NewListingController(listingService)
	insuranceController := controllers.NewInsuranceController(db)
	currencyController := controllers.NewCurrencyController(currencyService)
	authController := controllers.NewAuthController(db, rdb, cfg)
	adminController := adminctl.NewAdminController(db, listingService, uploads)

	// Public catalog
	r.GET("/properties", listingController.List)
	r.GET("/properties/:slug", listingController.GetBySlug)

	// Insurance funnel
	insurance := r.Group("/insurance")
	{
		insurance.GET("/products", insuranceController.GetProducts)
		insurance.POST("/quote", insuranceController.CreateQuote)
	}

	// Exchange rates for multi-currency price display
	r.GET("/currency/latest", currencyController.Latest)

	// Auth
	auth := r.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/register", authController.Register)
	}
	authed := r.Group("/auth", middleware.JWTAuthMiddleware(rdb, cfg.JWTSecret))
	{
		authed.GET("/me", authController.Me)
		authed.POST("/logout", authController.Logout)
	}

	// Back office: JWT + ADMIN role
	adminGroup := r.Group("/admin",
		middleware.JWTAuthMiddleware(rdb, cfg.JWTSecret),
		middleware.RequireRole(models.RoleAdmin),
	)
	{
		adminGroup.GET("/properties", adminController.GetProperties)
		adminGroup.GET("/properties/:id", adminController.GetProperty)
		adminGroup.POST("/properties", adminController.CreateProperty)
		adminGroup.PATCH("/properties/:id", adminController.UpdateProperty)
		adminGroup.DELETE("/properties/:id", adminController.DeleteProperty)
		adminGroup.POST("/properties/:id/images", adminController.AddPropertyImage)
		adminGroup.POST("/uploads/sign", adminController.SignUpload)
	}

	return r
}
