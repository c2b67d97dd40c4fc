package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fintrack/internal/cache"
	"fintrack/internal/config"
	"fintrack/internal/database"
	"fintrack/internal/handlers"
	"fintrack/internal/middleware"
	"fintrack/internal/repositories"
	"fintrack/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	db, err := database.Initialize(cfg)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)

	// Shared infrastructure
	statsCache := cache.NewMemoryCache(cfg.Cache.MaxEntries)
	cacheStop := make(chan struct{})
	statsCache.StartCleanup(time.Minute, cacheStop)

	metrics := services.NewPrometheusMetrics()
	breaker := services.NewCircuitBreaker(services.DefaultCircuitBreakerConfig())

	// Services
	passwordService := services.NewPasswordService(cfg.Security.BCryptCost)
	tokenService := services.NewTokenService(&cfg.JWT)
	authService := services.NewAuthService(userRepo, passwordService, tokenService, metrics, logger)
	transactionService := services.NewTransactionService(transactionRepo, metrics, logger)
	analyticsService := services.NewAnalyticsService(transactionRepo, statsCache, cfg.Cache.CategoryStatsTTL, metrics, logger)
	exchangeService := services.NewExchangeService(&cfg.Exchange, breaker, metrics, logger)
	reportService := services.NewReportService(exchangeService)
	tipsService := services.NewTipsService(transactionRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	exchangeHandler := handlers.NewExchangeHandler(exchangeService, reportService)
	infoHandler := handlers.NewInfoHandler(tipsService)
	healthHandler := handlers.NewHealthCheckHandler(db)

	var devHandler *handlers.DevHandler
	if cfg.IsDevelopment() {
		seedService := services.NewSeedService(userRepo, transactionRepo, passwordService, logger)
		devHandler = handlers.NewDevHandler(seedService)
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RateLimiterWithConfig(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst))

	registerRoutes(e, tokenService, authHandler, transactionHandler, analyticsHandler, exchangeHandler, infoHandler, healthHandler, devHandler)

	// Start server
	go func() {
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		logger.Info("starting server", "addr", addr, "env", cfg.Server.Environment)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	close(cacheStop)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
}

func registerRoutes(
	e *echo.Echo,
	tokenService services.TokenServiceInterface,
	authHandler *handlers.AuthHandler,
	transactionHandler *handlers.TransactionHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	exchangeHandler *handlers.ExchangeHandler,
	infoHandler *handlers.InfoHandler,
	healthHandler *handlers.HealthCheckHandler,
	devHandler *handlers.DevHandler,
) {
	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")

	users := api.Group("/users")
	users.POST("/register", authHandler.Register)
	users.POST("/login", authHandler.Login)

	requireAuth := middleware.RequireAuth(tokenService)

	transactions := api.Group("/transactions", requireAuth)
	transactions.GET("", transactionHandler.List)
	transactions.POST("", transactionHandler.Create)
	transactions.GET("/report", exchangeHandler.DownloadReport)
	transactions.PUT("/:id", transactionHandler.Update)
	transactions.DELETE("/:id", transactionHandler.Delete)

	analytics := api.Group("/analytics", requireAuth)
	analytics.GET("/balance", analyticsHandler.GetBalance)
	analytics.GET("/stats", analyticsHandler.GetCategoryStats)
	analytics.GET("/monthly", analyticsHandler.GetMonthlySummary)

	api.GET("/exchange-rates", exchangeHandler.GetRates, requireAuth)

	info := api.Group("/info")
	info.GET("/finance-tip", infoHandler.GetFinanceTip)
	info.GET("/average-expenses", infoHandler.GetAverageExpenses)

	// Development-only endpoints
	if devHandler != nil {
		api.POST("/dev/seed", devHandler.SeedDemoData)
	}
}
