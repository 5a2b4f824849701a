package api

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/veriscope/veriscope-api/internal/auth"
	"github.com/veriscope/veriscope-api/internal/metrics"
	"github.com/veriscope/veriscope-api/internal/middleware"
	"github.com/veriscope/veriscope-api/internal/models"
	"github.com/veriscope/veriscope-api/internal/repository"
	"github.com/veriscope/veriscope-api/internal/services"
	"github.com/veriscope/veriscope-api/internal/verify"
	"github.com/veriscope/veriscope-api/pkg/config"
)

// SetupRoutes configures all API routes
func SetupRoutes(r *gin.Engine, db *sql.DB, cfg *config.Config, client *verify.Client, m *metrics.Metrics, log *zap.Logger) error {
	svcs := services.NewServices(db, cfg, client, m, log)
	usageRepo := repository.NewRepositories(db).Usage

	authHandler := NewAuthHandler(svcs.Auth)
	verificationHandler := NewVerificationHandler(svcs.Verification)
	caseHandler := NewCaseHandler(svcs.Case)
	exportHandler := NewExportHandler(svcs.Verification, svcs.Export)
	adminHandler := NewAdminHandler(svcs.Admin)

	// Operational endpoints
	r.GET("/health", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "database unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Upstream registry connection health, admin only
	healthAdmin := r.Group("/api/v1/health")
	healthAdmin.Use(auth.JWTMiddleware(cfg.JWTSecret))
	healthAdmin.Use(RequireAdmin())
	{
		healthAdmin.GET("/upstream", func(c *gin.Context) {
			c.JSON(http.StatusOK, client.Health().GetHealthStatus())
		})
		healthAdmin.POST("/upstream/reset", func(c *gin.Context) {
			client.Health().Reset()
			c.JSON(http.StatusOK, gin.H{"message": "Upstream health monitoring reset"})
		})
	}

	// Public routes
	public := r.Group("/api/v1")
	{
		public.POST("/auth/login", authHandler.Login)
		public.POST("/auth/register", authHandler.Register)
		public.POST("/auth/refresh", authHandler.RefreshToken)
		public.POST("/auth/logout", authHandler.Logout)
	}

	// Protected routes
	protected := r.Group("/api/v1")
	protected.Use(auth.JWTMiddleware(cfg.JWTSecret))
	protected.Use(auth.CSRFMiddleware())
	protected.Use(middleware.UsageTrackingMiddleware(usageRepo, log))
	{
		protected.GET("/auth/me", authHandler.Me)
		protected.GET("/history", verificationHandler.History)
		protected.GET("/dashboard/stats", adminHandler.DashboardStats)

		// Verification lookups, each gated on its resource permission
		protected.GET("/verify/business/:gstin",
			RequirePermission(svcs.Admin, models.ResourceBusiness, models.ActionRead),
			verificationHandler.VerifyBusiness)
		protected.GET("/verify/identity/:pan",
			RequirePermission(svcs.Admin, models.ResourceIdentity, models.ActionRead),
			verificationHandler.VerifyIdentity)
		protected.GET("/verify/fssai/:license",
			RequirePermission(svcs.Admin, models.ResourceFSSAI, models.ActionRead),
			verificationHandler.VerifyFSSAI)
		protected.GET("/verify/news",
			RequirePermission(svcs.Admin, models.ResourceNews, models.ActionRead),
			verificationHandler.SearchNews)

		// Court-case search and result views
		protected.POST("/cases/search",
			RequirePermission(svcs.Admin, models.ResourceCourtCases, models.ActionRead),
			caseHandler.Search)

		// Report exports
		protected.GET("/export/business/:gstin",
			RequirePermission(svcs.Admin, models.ResourceExport, models.ActionExport),
			exportHandler.DownloadBusinessReport)
		protected.GET("/export/fssai/:license",
			RequirePermission(svcs.Admin, models.ResourceExport, models.ActionExport),
			exportHandler.DownloadFSSAIReport)
		protected.POST("/export/email",
			RequirePermission(svcs.Admin, models.ResourceExport, models.ActionEmail),
			exportHandler.EmailBusinessReport)
	}

	// Admin routes
	admin := r.Group("/api/v1/admin")
	admin.Use(auth.JWTMiddleware(cfg.JWTSecret))
	admin.Use(auth.CSRFMiddleware())
	admin.Use(middleware.UsageTrackingMiddleware(usageRepo, log))
	admin.Use(RequireAdmin())
	{
		admin.POST("/users", adminHandler.CreateUser)
		admin.GET("/users", adminHandler.ListUsers)
		admin.GET("/users/:id", adminHandler.GetUser)
		admin.PUT("/users/:id", adminHandler.UpdateUser)
		admin.DELETE("/users/:id", adminHandler.DeleteUser)

		admin.GET("/users/:id/permissions", adminHandler.GetPermissions)
		admin.PUT("/users/:id/permissions", adminHandler.SetPermission)
		admin.DELETE("/users/:id/permissions/:resource", adminHandler.RemovePermission)

		admin.GET("/analytics", adminHandler.Analytics)
	}

	return nil
}
