// Package router sets up the HTTP routing for the application.
package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/controle-financeiro/api/internal/integration/entrypoint/controller"
	"github.com/controle-financeiro/api/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	logger                *slog.Logger
	homeController        *controller.HomeController
	healthController      *controller.HealthController
	categoryController    *controller.CategoryController
	transactionController *controller.TransactionController
	rateLimiter           *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	logger *slog.Logger,
	homeController *controller.HomeController,
	healthController *controller.HealthController,
	categoryController *controller.CategoryController,
	transactionController *controller.TransactionController,
	rateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		logger:                logger,
		homeController:        homeController,
		healthController:      healthController,
		categoryController:    categoryController,
		transactionController: transactionController,
		rateLimiter:           rateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.Use(
		middleware.RequestLogger(r.logger),
		middleware.Recovery(),
		middleware.ErrorHandler(),
	)

	r.setupHealthRoutes()
	r.setupAPIRoutes()
	r.engine.NoRoute(middleware.NoRoute())

	return r.engine
}

// setupHealthRoutes configures the root and health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/", r.homeController.Index)
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	api := r.engine.Group("/api")
	if r.rateLimiter != nil {
		api.Use(r.rateLimiter.Middleware())
	}

	categories := api.Group("/categorias")
	{
		categories.GET("", r.categoryController.List)
		categories.POST("", r.categoryController.Create)
		categories.GET("/tipo/:tipo", r.categoryController.ListByKind)
		categories.GET("/:id", r.categoryController.Get)
		categories.PUT("/:id", r.categoryController.Update)
		categories.DELETE("/:id", r.categoryController.Delete)
	}

	transactions := api.Group("/transacoes")
	{
		transactions.GET("", r.transactionController.List)
		transactions.POST("", r.transactionController.Create)
		transactions.GET("/tipo/:tipo", r.transactionController.ListByKind)
		transactions.GET("/periodo", r.transactionController.ListByPeriod)
		transactions.GET("/categoria/:categoriaId", r.transactionController.ListByCategory)
		transactions.GET("/resumo", r.transactionController.Summary)
		transactions.GET("/buscar", r.transactionController.Search)
		transactions.GET("/:id", r.transactionController.Get)
		transactions.PUT("/:id", r.transactionController.Update)
		transactions.DELETE("/:id", r.transactionController.Delete)
	}
}
