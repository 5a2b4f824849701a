package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/veriscope/veriscope-api/internal/api"
	"github.com/veriscope/veriscope-api/internal/database"
	"github.com/veriscope/veriscope-api/internal/logger"
	"github.com/veriscope/veriscope-api/internal/metrics"
	"github.com/veriscope/veriscope-api/internal/middleware"
	"github.com/veriscope/veriscope-api/internal/verify"
	"github.com/veriscope/veriscope-api/pkg/config"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.New()

	zlog, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer zlog.Sync()

	// Initialize database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	// Lookup cache is optional; without Redis every lookup hits upstream
	var cache *verify.Cache
	if cfg.HasRedis() {
		cache = verify.NewCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL)
		zlog.Info("lookup cache enabled", zap.String("addr", cfg.RedisAddr))
	}

	client := verify.NewClient(cfg.VerifyAPIBaseURL, cfg.VerifyAPIKey, cache, zlog)
	m := metrics.New()

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	if len(cfg.GetTrustedProxies()) > 0 {
		if err := r.SetTrustedProxies(cfg.GetTrustedProxies()); err != nil {
			zlog.Fatal("invalid trusted proxies", zap.Error(err))
		}
	}

	r.Use(middleware.RequestLoggingMiddleware(zlog))
	r.Use(middleware.MetricsMiddleware(m))
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.CORSMiddleware(cfg))
	r.Use(middleware.InputValidationMiddleware(cfg.MaxRequestSize))

	if cfg.EnableRateLimit {
		r.Use(middleware.RateLimitingMiddleware(cfg.RateLimitPerMin))
	}

	r.Use(gin.Recovery())

	if err := api.SetupRoutes(r, db.DB, cfg, client, m, zlog); err != nil {
		zlog.Fatal("failed to setup API routes", zap.Error(err))
	}

	zlog.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}
