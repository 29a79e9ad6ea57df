package router

import (
	"time"

	"github.com/vahid343/food-save-city/internal/config"
	"github.com/vahid343/food-save-city/internal/handler"
	"github.com/vahid343/food-save-city/internal/middleware"
	"github.com/vahid343/food-save-city/internal/model"
	"github.com/vahid343/food-save-city/internal/repository"
	"github.com/vahid343/food-save-city/internal/service"
	"github.com/vahid343/food-save-city/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigin))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	productSvc := service.NewProductService(productRepo)
	categorySvc := service.NewCategoryService(categoryRepo)
	historySvc := service.NewHistoryService(historyRepo)
	dashboardSvc := service.NewDashboardService(productRepo, historyRepo, rdb)
	riskSvc := service.NewRiskService(productRepo, historyRepo, dispatcher, cfg.NotifyEmail)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	productsH := handler.NewProductsHandler(productSvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	riskH := handler.NewRiskHandler(riskSvc)
	historyH := handler.NewHistoryHandler(historySvc, cfg.PDFStoragePath)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	anyRole := middleware.RequireRole(model.RoleManager, model.RoleOperator)
	managerOnly := middleware.RequireRole(model.RoleManager)

	v1 := r.Group("/v1", jwtMW)
	{
		// Products — everyone reads, managers write
		v1.GET("/products", anyRole, productsH.List)
		v1.GET("/products/:id", anyRole, productsH.GetByID)
		products := v1.Group("/products", managerOnly)
		{
			products.POST("", productsH.Create)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
			products.POST("/import", productsH.ImportCSV)
		}

		// Risk zone — everyone sees suggestions, confirming is a manager call
		v1.GET("/risk/suggestions", anyRole, riskH.Suggestions)
		v1.POST("/risk/confirm", managerOnly, riskH.Confirm)

		// Decision history — PDF export is management reporting
		v1.GET("/history", anyRole, historyH.List)
		v1.GET("/history/report.pdf", managerOnly, historyH.Report)

		v1.GET("/dashboard/stats", anyRole, dashboardH.Stats)

		// Categories — everyone reads, managers write
		v1.GET("/categories", anyRole, categoriesH.List)
		categories := v1.Group("/categories", managerOnly)
		{
			categories.POST("", categoriesH.Create)
			categories.PUT("/:id", categoriesH.Update)
			categories.DELETE("/:id", categoriesH.Deactivate)
		}

		users := v1.Group("/users", managerOnly)
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
