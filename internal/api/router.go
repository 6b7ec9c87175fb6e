package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/house-hunt/rental-api/docs"
	"github.com/house-hunt/rental-api/internal/api/handler"
	"github.com/house-hunt/rental-api/internal/api/middleware"
	"github.com/house-hunt/rental-api/internal/core/domain"
	"github.com/house-hunt/rental-api/internal/core/service"
	mongodb "github.com/house-hunt/rental-api/internal/infrastructure/db/mongo"
	redisdb "github.com/house-hunt/rental-api/internal/infrastructure/db/redis"
)

// RouterConfig carries the settings the router needs beyond its dependencies.
type RouterConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg RouterConfig, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("rental"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	propRepo := mongodb.NewPropertyRepository(db)
	statsCache := redisdb.NewStatsCache(rdb)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	propService := service.NewPropertyService(propRepo, userRepo, log)
	adminService := service.NewAdminService(userRepo, propRepo, statsCache, log)

	authHandler := handler.NewAuthHandler(authService)
	propHandler := handler.NewPropertyHandler(propService)
	adminHandler := handler.NewAdminHandler(adminService)

	requireAuth := middleware.Auth(cfg.JWTSecret)
	ownerOnly := middleware.RequireRole(domain.RoleOwner)
	ownerOrAdmin := middleware.RequireRole(domain.RoleOwner, domain.RoleAdmin)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Profile, requireAuth)
	e.PUT("/auth/me", authHandler.UpdateProfile, requireAuth)

	// --- Public catalogue ---
	e.GET("/properties", propHandler.Search)
	e.GET("/properties/mine", propHandler.ListMine, requireAuth, ownerOnly)
	e.GET("/properties/:id", propHandler.Get)
	e.GET("/owners/:ownerId/properties", propHandler.ListByOwner)

	// --- Owner listing management ---
	e.POST("/properties", propHandler.Create, requireAuth, ownerOnly)
	e.PUT("/properties/:id", propHandler.Update, requireAuth, ownerOnly)
	e.DELETE("/properties/:id", propHandler.Delete, requireAuth, ownerOrAdmin)
	e.POST("/properties/:id/publish", propHandler.TogglePublish, requireAuth, ownerOnly)
	e.PUT("/properties/:id/occupancy", propHandler.SetOccupancy, requireAuth, ownerOnly)

	// --- Admin surface ---
	admin := e.Group("/admin", requireAuth, adminOnly)
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/users/:id", adminHandler.GetUser)
	admin.PUT("/users/:id/block", adminHandler.ToggleBlock)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/properties", adminHandler.ListProperties)
	admin.DELETE("/properties/:id", adminHandler.DeleteProperty)

	// --- Ops ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
