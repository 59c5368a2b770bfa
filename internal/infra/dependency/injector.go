// Package dependency provides dependency injection for the application.
package dependency

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/finsight/backend/config"
	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/application/usecase/analytics"
	"github.com/finsight/backend/internal/application/usecase/auth"
	"github.com/finsight/backend/internal/application/usecase/category"
	"github.com/finsight/backend/internal/application/usecase/suggestion"
	"github.com/finsight/backend/internal/application/usecase/transaction"
	"github.com/finsight/backend/internal/infra/server/router"
	"github.com/finsight/backend/internal/integration/adapters"
	"github.com/finsight/backend/internal/integration/cache"
	"github.com/finsight/backend/internal/integration/charts"
	"github.com/finsight/backend/internal/integration/email"
	"github.com/finsight/backend/internal/integration/entrypoint/controller"
	"github.com/finsight/backend/internal/integration/entrypoint/middleware"
	"github.com/finsight/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.Client
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB) *Injector {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, tokenRepo)
	resetTokenService := adapters.NewResetTokenService(tokenRepo)
	suggestionService := adapters.NewGeminiService(cfg.Gemini.APIKey)

	// Summary cache is optional; without Redis the dashboard recomputes on
	// every request.
	var redisClient *redis.Client
	var summaryCache adapter.SummaryCache
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			slog.Warn("Invalid Redis URL, summary cache disabled", "error", err)
		} else {
			if cfg.Redis.Password != "" {
				opts.Password = cfg.Redis.Password
			}
			if cfg.Redis.DB != 0 {
				opts.DB = cfg.Redis.DB
			}
			redisClient = redis.NewClient(opts)
			summaryCache = cache.NewRedisSummaryCache(redisClient)
		}
	}

	// Email delivery is optional; without an API key the reset link is only
	// logged and never leaves the process.
	var emailSender adapter.EmailSender
	if cfg.Email.ResendAPIKey != "" {
		emailSender = email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	}

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, categoryRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	forgotPasswordUseCase := auth.NewForgotPasswordUseCase(userRepo, resetTokenService, emailSender, cfg.Email.AppBaseURL)
	resetPasswordUseCase := auth.NewResetPasswordUseCase(userRepo, passwordService, resetTokenService)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo, transactionRepo, summaryCache)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo, summaryCache)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, categoryRepo, summaryCache)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, summaryCache)

	// Create analytics use cases
	getSummaryUseCase := analytics.NewGetSummaryUseCase(transactionRepo, categoryRepo, summaryCache)
	getBreakdownUseCase := analytics.NewGetBreakdownUseCase(transactionRepo, categoryRepo)
	getInsightsUseCase := analytics.NewGetInsightsUseCase(transactionRepo, categoryRepo)
	getTrendsUseCase := analytics.NewGetTrendsUseCase(transactionRepo, categoryRepo)
	exportUseCase := analytics.NewExportTransactionsUseCase(transactionRepo, categoryRepo)

	// Create suggestion use case
	suggestCategoryUseCase := suggestion.NewSuggestCategoryUseCase(categoryRepo, suggestionService)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
		forgotPasswordUseCase,
		resetPasswordUseCase,
	)

	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		createCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
	)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		createTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
	)

	dashboardController := controller.NewDashboardController(
		getSummaryUseCase,
		getBreakdownUseCase,
		getInsightsUseCase,
		getTrendsUseCase,
		exportUseCase,
		charts.NewRenderer(),
	)

	suggestionController := controller.NewSuggestionController(suggestCategoryUseCase)

	// Create middleware
	// Use higher rate limits for test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		categoryController,
		transactionController,
		dashboardController,
		suggestionController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Router: r,
	}
}
