package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/makerhub/workshop-admin/internal/api/handler"
	"github.com/makerhub/workshop-admin/internal/api/middleware"
	"github.com/makerhub/workshop-admin/internal/core/domain"
	"github.com/makerhub/workshop-admin/internal/core/service"
	"github.com/makerhub/workshop-admin/internal/infrastructure/config"
	mongodb "github.com/makerhub/workshop-admin/internal/infrastructure/db/mongo"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Protected route groups apply the guard chain in a fixed order:
// authentication, role check, CSRF origin check, rate limit.
func NewRouter(cfg *config.Config, log zerolog.Logger, db *mongo.Database, rdb *redis.Client) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.BodyLimit(cfg.BodyLimit))
	if len(cfg.CORSOrigins) > 0 {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins:     cfg.CORSOrigins,
			AllowCredentials: true,
		}))
	}
	e.Use(echoprometheus.NewMiddleware("workshop"))

	// --- Repositories ---
	users := mongodb.NewUserRepository(db)
	roles := mongodb.NewRoleRepository(db)
	sessions := mongodb.NewSessionRepository(db)
	apiKeys := mongodb.NewAPIKeyRepository(db)
	logs := mongodb.NewLogRepository(db)
	announcements := mongodb.NewAnnouncementRepository(db)
	orders := mongodb.NewOrderRepository(db)
	settings := mongodb.NewSettingsRepository(db)
	catalog := mongodb.NewCatalogRepository(db)
	backups := mongodb.NewBackupRepository(db)

	// --- Services ---
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authSvc := service.NewAuthService(users, sessions, tokens)
	adminSvc := service.NewAdminService(users, roles, logs, announcements, backups)
	registrySvc := service.NewRegistryService(sessions, apiKeys)
	auditSvc := service.NewAuditService(logs)
	orderSvc := service.NewOrderService(orders)
	catalogSvc := service.NewCatalogService(catalog)
	settingsSvc := service.NewSettingsService(settings)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authSvc, adminSvc)
	adminHandler := handler.NewAdminHandler(adminSvc, registrySvc)
	orderHandler := handler.NewOrderHandler(orderSvc)
	catalogHandler := handler.NewCatalogHandler(catalogSvc)
	settingsHandler := handler.NewSettingsHandler(settingsSvc)

	// --- Guards ---
	authGuard := middleware.Auth(tokens)
	adminGuard := middleware.RBAC(domain.RoleAdmin)
	csrfGuard := middleware.CSRF(cfg.Development())
	limiter := middleware.NewRateLimiter(rdb, log)
	loginLimit := limiter.Limit("login", cfg.RateLimit.LoginMax, cfg.RateLimit.Window)
	generalLimit := limiter.Limit("general", cfg.RateLimit.Max, cfg.RateLimit.Window)
	audit := func(action string) echo.MiddlewareFunc {
		return middleware.Audit(auditSvc, log, action)
	}

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login, loginLimit)
	e.GET("/auth/me", authHandler.Me, authGuard, generalLimit)
	e.POST("/auth/logout", authHandler.Logout, authGuard, csrfGuard, generalLimit)
	e.POST("/auth/change-password", authHandler.ChangePassword,
		authGuard, csrfGuard, generalLimit, audit("Password change"))
	e.POST("/auth/register", authHandler.Register,
		authGuard, adminGuard, csrfGuard, generalLimit, audit("User registration"))

	// --- Catalog, orders, settings ---
	e.GET("/consumables", catalogHandler.List, authGuard, generalLimit)
	e.POST("/orders/bulk", orderHandler.BulkCreate,
		authGuard, csrfGuard, generalLimit, audit("Bulk order intake"))

	st := e.Group("/settings", authGuard, csrfGuard, generalLimit)
	st.GET("", settingsHandler.Get)
	st.PUT("", settingsHandler.Update, audit("Settings update"))
	st.DELETE("", settingsHandler.Reset, audit("Settings reset"))

	// --- Admin subtree ---
	admin := e.Group("/admin", authGuard, adminGuard, csrfGuard, generalLimit)
	admin.GET("/users/export", adminHandler.ExportUsers)
	admin.POST("/users/import", adminHandler.ImportUsers, audit("User import"))
	admin.PUT("/users/:username/role", adminHandler.UpdateUserRole, audit("User role update"))
	admin.PUT("/users/:username/status", adminHandler.UpdateUserStatus, audit("User status update"))
	admin.PUT("/users/:username/password", adminHandler.ResetUserPassword, audit("User password reset"))
	admin.DELETE("/users/:username", adminHandler.DeleteUser, audit("User delete"))
	admin.GET("/roles", adminHandler.GetRoles)
	admin.PUT("/roles", adminHandler.PutRoles, audit("Roles update"))
	admin.GET("/logs", adminHandler.GetLogs)
	admin.GET("/announcements", adminHandler.GetAnnouncements)
	admin.POST("/announcements", adminHandler.PostAnnouncement, audit("Announcement posted"))
	admin.DELETE("/announcements/:ts", adminHandler.DeleteAnnouncement, audit("Announcement removed"))
	admin.GET("/sessions", adminHandler.GetSessions)
	admin.DELETE("/sessions/:id", adminHandler.RevokeSession, audit("Session revoked"))
	admin.GET("/apikeys", adminHandler.GetAPIKeys)
	admin.POST("/apikeys", adminHandler.CreateAPIKey, audit("API key generated"))
	admin.DELETE("/apikeys/:key", adminHandler.RevokeAPIKey, audit("API key revoked"))
	admin.GET("/backup", adminHandler.Backup)
	admin.POST("/restore", adminHandler.Restore, audit("Data restore"))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
