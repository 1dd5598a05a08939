package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/spendwise/expense-api/docs"
	"github.com/spendwise/expense-api/internal/api/handler"
	"github.com/spendwise/expense-api/internal/api/middleware"
	"github.com/spendwise/expense-api/internal/core/service"
	"github.com/spendwise/expense-api/internal/infrastructure/config"
	"github.com/spendwise/expense-api/internal/infrastructure/db/postgres"
	"github.com/spendwise/expense-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil, in which case login throttling is disabled.
func NewRouter(pool *pgxpool.Pool, rdb *goredis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("expense_api"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)

	var throttle service.LoginThrottle
	if rdb != nil {
		throttle = redis.NewLoginThrottle(rdb, cfg.Auth.MaxLoginAttempts, cfg.Auth.LockoutWindow)
	}

	credentials := service.NewCredentialStore(cfg.Auth.BcryptCost)
	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := service.NewAuthService(userRepo, credentials, tokens, throttle, log)
	expenseService := service.NewExpenseService(expenseRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	expenseHandler := handler.NewExpenseHandler(expenseService)

	requireAuth := middleware.Auth(tokens)
	publicLimit := middleware.NewRateLimiter(rate.Limit(cfg.Auth.PublicRPS), cfg.Auth.PublicBurst).Middleware()

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register, publicLimit)
	e.POST("/auth/login", authHandler.Login, publicLimit)
	e.GET("/auth/check", authHandler.Check, requireAuth)
	e.PUT("/auth/profile", authHandler.UpdateProfile, requireAuth)
	e.DELETE("/auth/account", authHandler.DeleteAccount, requireAuth)

	// --- Expense routes ---
	expenses := e.Group("/expenses", requireAuth)
	expenses.POST("", expenseHandler.Create)
	expenses.GET("", expenseHandler.List)
	expenses.DELETE("/reset", expenseHandler.Reset)
	expenses.GET("/report/categories", expenseHandler.Report)
	expenses.GET("/:id", expenseHandler.Get)
	expenses.PUT("/:id", expenseHandler.Update)
	expenses.DELETE("/:id", expenseHandler.Delete)

	e.GET("/categories", expenseHandler.Categories, requireAuth)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(pool, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
