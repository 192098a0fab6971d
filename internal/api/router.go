package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/useraccounts/user-service/internal/api/handler"
	"github.com/useraccounts/user-service/internal/api/middleware"
	"github.com/useraccounts/user-service/internal/core/ports"
	"github.com/useraccounts/user-service/internal/core/service"
	mongodb "github.com/useraccounts/user-service/internal/infrastructure/db/mongo"
	redisdb "github.com/useraccounts/user-service/internal/infrastructure/db/redis"
	"github.com/useraccounts/user-service/internal/pkg/password"
	"github.com/useraccounts/user-service/internal/pkg/token"
)

// RouterConfig carries the wired dependencies for the HTTP surface.
// Redis is optional: nil disables the user cache.
type RouterConfig struct {
	Mongo  *mongo.Database
	Redis  *redis.Client
	Tokens *token.Manager
	Hasher *password.Hasher
	Logger zerolog.Logger
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("users"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(cfg.Mongo)

	var cache ports.UserCache
	if cfg.Redis != nil {
		cache = redisdb.NewUserCache(cfg.Redis, cfg.Logger)
	}

	authService := service.NewAuthService(userRepo, cfg.Hasher, cfg.Tokens, cfg.Logger)
	userService := service.NewUserService(userRepo, cache, cfg.Logger)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	healthHandler := handler.NewHealthHandler(cfg.Mongo, cfg.Redis)

	// --- Auth routes (public) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- User routes (authenticated + active principal) ---
	users := e.Group("/users", middleware.Auth(cfg.Tokens), middleware.ActiveUser(userRepo))
	users.GET("", userHandler.List, middleware.AdminOnly())
	users.GET("/:id", userHandler.GetByID, middleware.ValidateID("id"), middleware.AdminOrSelf("id"))
	users.PATCH("/:id", userHandler.Update, middleware.ValidateID("id"), middleware.AdminOrSelf("id"))
	users.PATCH("/:id/block", userHandler.Block, middleware.ValidateID("id"), middleware.AdminOrSelf("id"))
	users.PATCH("/:id/unblock", userHandler.Unblock, middleware.ValidateID("id"), middleware.AdminOrSelf("id"))
	users.DELETE("/:id", userHandler.Delete, middleware.ValidateID("id"), middleware.AdminOrSelf("id"))

	// --- Operational endpoints ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
