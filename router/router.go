package router

import (
	"time"

	"budgetia/api"
	"budgetia/config"
	_ "budgetia/docs"
	"budgetia/middleware"
	"budgetia/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter builds the route table.
func SetupRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	r.Use(CORSMiddleware())

	authHandler := api.NewAuthHandler(cfg)
	categoryHandler := api.NewCategoryHandler()
	expenseHandler := api.NewExpenseHandler()
	dashboardHandler := api.NewDashboardHandler()
	exportHandler := api.NewExportHandler()
	scanHandler := api.NewScanHandler(service.NewOCRService(&cfg.OCR))

	// session lifecycle, throttled per IP
	loginLimit := middleware.LoginRateLimit(10, time.Minute)
	r.POST("/register", loginLimit, authHandler.Register)
	r.POST("/login", loginLimit, authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	// everything else requires an authenticated user
	authorized := r.Group("")
	authorized.Use(middleware.JWTAuth())
	{
		authorized.GET("/", dashboardHandler.Index)
		authorized.GET("/profile", authHandler.GetProfile)
		authorized.POST("/set_salary", authHandler.SetSalary)

		authorized.GET("/categories", categoryHandler.List)
		authorized.POST("/categories", categoryHandler.Create)
		authorized.GET("/edit_category/:id", categoryHandler.Get)
		authorized.POST("/edit_category/:id", categoryHandler.Update)
		authorized.POST("/delete_category/:id", categoryHandler.Delete)

		authorized.GET("/expenses", expenseHandler.List)
		authorized.POST("/add_expense", expenseHandler.Create)

		authorized.GET("/export", exportHandler.Export)

		authorized.GET("/scan_ticket", scanHandler.Info)
		authorized.POST("/scan_ticket", scanHandler.Scan)
	}

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware handles cross-origin requests.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
