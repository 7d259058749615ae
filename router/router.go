package router

import (
	"context"
	"net/http"
	"time"

	"expo/api"
	"expo/config"
	_ "expo/docs"
	"expo/middleware"
	"expo/web"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	loginAttempts = 10
	loginWindow   = time.Minute
)

// SetupRouter builds the engine with pages, the JSON API and docs. Background
// work started for the router stops when ctx is done.
func SetupRouter(ctx context.Context, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()
	r.Use(CORSMiddleware())
	r.SetHTMLTemplate(web.MustTemplates())
	r.StaticFS("/static", http.FS(web.Static()))

	loginLimit := middleware.LoginRateLimit(ctx, loginAttempts, loginWindow)

	authHandler := api.NewAuthHandler(cfg)
	expenseHandler := api.NewExpenseHandler(cfg)
	categoryHandler := api.NewCategoryHandler()
	calculatorHandler := api.NewCalculatorHandler()
	adminHandler := api.NewAdminHandler()

	// pages
	r.GET("/", middleware.OptionalSession(), expenseHandler.Home)

	guest := r.Group("")
	guest.Use(middleware.OptionalSession())
	{
		guest.GET("/signup/", authHandler.SignupForm)
		guest.POST("/signup/", authHandler.SignupSubmit)
		guest.GET("/login/", authHandler.LoginForm)
		guest.POST("/login/", loginLimit, authHandler.LoginSubmit)
	}

	pages := r.Group("")
	pages.Use(middleware.SessionAuth())
	{
		pages.GET("/list/", expenseHandler.ListPage)
		pages.GET("/add/", expenseHandler.AddForm)
		pages.POST("/add/", expenseHandler.AddSubmit)
		pages.GET("/delete/:id/", expenseHandler.DeleteSubmit)
		pages.POST("/delete/:id/", expenseHandler.DeleteSubmit)
		pages.GET("/generate-bill/", expenseHandler.GenerateBill)
		pages.POST("/email-bill/", expenseHandler.EmailBill)
		pages.GET("/export/excel/", expenseHandler.ExportExcel)
		pages.GET("/export/csv/", expenseHandler.ExportCSV)
		pages.GET("/calculators/", calculatorHandler.Page)
		pages.GET("/logout/", authHandler.Logout)
		pages.POST("/logout/", authHandler.Logout)
	}

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", loginLimit, authHandler.Login)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth())
		{
			authorized.GET("/auth/profile", authHandler.GetProfile)
			authorized.GET("/categories", categoryHandler.List)

			expenses := authorized.Group("/expenses")
			{
				expenses.GET("", expenseHandler.List)
				expenses.POST("", expenseHandler.Create)
				expenses.GET("/summary", expenseHandler.Summary)
				expenses.GET("/bill", expenseHandler.Bill)
				expenses.GET("/:id", expenseHandler.Get)
				expenses.DELETE("/:id", expenseHandler.Delete)
			}

			admin := authorized.Group("/admin")
			admin.Use(middleware.AdminOnly())
			{
				admin.GET("/categories", categoryHandler.List)
				admin.POST("/categories", categoryHandler.Create)
				admin.DELETE("/categories/:id", categoryHandler.Delete)
				admin.GET("/users", adminHandler.ListUsers)
				admin.PUT("/users/:id/admin", adminHandler.SetAdmin)
				admin.PUT("/users/:id/status", adminHandler.UpdateUserStatus)
			}
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware lets browser clients on other origins call the token API
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
