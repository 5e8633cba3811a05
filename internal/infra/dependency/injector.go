// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/controle-financeiro/api/config"
	"github.com/controle-financeiro/api/internal/application/usecase/category"
	"github.com/controle-financeiro/api/internal/application/usecase/transaction"
	database "github.com/controle-financeiro/api/internal/infra/db"
	"github.com/controle-financeiro/api/internal/infra/server/router"
	"github.com/controle-financeiro/api/internal/integration/entrypoint/controller"
	"github.com/controle-financeiro/api/internal/integration/entrypoint/middleware"
	"github.com/controle-financeiro/api/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  redis.UniversalClient
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, logger *slog.Logger) (*Injector, error) {
	if logger == nil {
		logger = slog.Default()
	}

	// Create repositories
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	transactor := persistence.NewTransactor(db)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo, transactor)
	getCategoryUseCase := category.NewGetCategoryUseCase(categoryRepo, transactor)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo, transactor)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo, transactor)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo, transactor)

	// Create transaction use cases
	transactionUseCases := controller.TransactionUseCases{
		List:           transaction.NewListTransactionsUseCase(transactionRepo, transactor),
		Get:            transaction.NewGetTransactionUseCase(transactionRepo, transactor),
		Create:         transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo, transactor),
		Update:         transaction.NewUpdateTransactionUseCase(transactionRepo, categoryRepo, transactor),
		Delete:         transaction.NewDeleteTransactionUseCase(transactionRepo, transactor),
		ListByPeriod:   transaction.NewListTransactionsByPeriodUseCase(transactionRepo, transactor),
		ListByCategory: transaction.NewListTransactionsByCategoryUseCase(transactionRepo, categoryRepo, transactor),
		Search:         transaction.NewSearchTransactionsUseCase(transactionRepo, transactor),
		Summary:        transaction.NewGetSummaryUseCase(transactionRepo, transactor),
	}

	// Create controllers
	homeController := controller.NewHomeController()
	healthController := controller.NewHealthController(func(ctx context.Context) error {
		return database.Ping(ctx, db)
	})
	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		getCategoryUseCase,
		createCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
	)
	transactionController := controller.NewTransactionController(transactionUseCases)

	// Create middleware
	redisClient, err := newRedisClient(cfg.Redis)
	if err != nil {
		return nil, err
	}
	rateLimiter, err := newRateLimiter(cfg, redisClient)
	if err != nil {
		if redisClient != nil {
			_ = redisClient.Close()
		}
		return nil, err
	}

	// Create router
	r := router.NewRouter(logger, homeController, healthController, categoryController, transactionController, rateLimiter)

	return &Injector{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Router: r,
	}, nil
}

// Close releases the resources owned by the injector.
func (i *Injector) Close() error {
	if i.Redis == nil {
		return nil
	}
	if err := i.Redis.Close(); err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}
	return nil
}

// newRedisClient returns nil when no Redis URL is configured.
func newRedisClient(cfg config.RedisConfig) (redis.UniversalClient, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}
	return redis.NewClient(opts), nil
}

// newRateLimiter keeps counters in Redis when available, in memory otherwise.
// Limiting is always off in the test environment.
func newRateLimiter(cfg *config.Config, redisClient redis.UniversalClient) (*middleware.RateLimiter, error) {
	limiterCfg := middleware.RateLimiterConfig{
		Enabled:     cfg.RateLimit.Enabled && !cfg.Server.IsTest(),
		MaxRequests: cfg.RateLimit.MaxRequests,
		Window:      cfg.RateLimit.Window,
	}

	if redisClient != nil {
		return middleware.NewRateLimiter(middleware.NewRedisRateLimitStore(redisClient), limiterCfg), nil
	}

	store, err := middleware.NewMemoryRateLimitStore(cfg.RateLimit.CacheSize)
	if err != nil {
		return nil, err
	}
	return middleware.NewRateLimiter(store, limiterCfg), nil
}
