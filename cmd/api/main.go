package main

// @title LeadCRM API
// @version 1.0
// @description Admin panel backend for campaign-driven lead generation and review.

// @contact.name API Support
// @contact.email support@leadcrm.local

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/jordanlanch/leadcrm/config"
	_ "github.com/jordanlanch/leadcrm/docs" // Swagger docs
	"github.com/jordanlanch/leadcrm/pkg/analytics"
	"github.com/jordanlanch/leadcrm/pkg/api"
	"github.com/jordanlanch/leadcrm/pkg/api/handlers"
	custommw "github.com/jordanlanch/leadcrm/pkg/api/middleware"
	"github.com/jordanlanch/leadcrm/pkg/audit"
	"github.com/jordanlanch/leadcrm/pkg/auth"
	"github.com/jordanlanch/leadcrm/pkg/cache"
	"github.com/jordanlanch/leadcrm/pkg/campaigns"
	"github.com/jordanlanch/leadcrm/pkg/database"
	"github.com/jordanlanch/leadcrm/pkg/email"
	"github.com/jordanlanch/leadcrm/pkg/export"
	"github.com/jordanlanch/leadcrm/pkg/finalleads"
	"github.com/jordanlanch/leadcrm/pkg/jobs"
	"github.com/jordanlanch/leadcrm/pkg/leadgen"
	"github.com/jordanlanch/leadcrm/pkg/leadnote"
	"github.com/jordanlanch/leadcrm/pkg/leads"
	"github.com/jordanlanch/leadcrm/pkg/logger"
	"github.com/jordanlanch/leadcrm/pkg/metrics"
	custommiddleware "github.com/jordanlanch/leadcrm/pkg/middleware"
	"github.com/jordanlanch/leadcrm/pkg/products"
	"github.com/jordanlanch/leadcrm/pkg/regions"
	"github.com/jordanlanch/leadcrm/pkg/session"
	"github.com/jordanlanch/leadcrm/pkg/storage"
	"github.com/jordanlanch/leadcrm/pkg/tags"
	"github.com/jordanlanch/leadcrm/pkg/users"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {
	// Load configuration
	cfg := config.Load()
	appLog := logger.New(cfg.LogLevel)
	log.Printf("🔧 Configuration loaded (environment: %s)", cfg.APIEnvironment)

	// Initialize Sentry for error tracking
	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.SentryEnvironment,
			TracesSampleRate: 1.0,
			AttachStacktrace: true,
		})
		if err != nil {
			log.Printf("⚠️  Failed to initialize Sentry: %v", err)
		} else {
			log.Printf("✅ Sentry initialized (environment: %s)", cfg.SentryEnvironment)
			defer sentry.Flush(2 * time.Second)
		}
	} else {
		log.Printf("ℹ️  Sentry disabled (no DSN configured)")
	}

	// Initialize database
	db, err := database.NewClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}
	log.Printf("✅ Database connected and migrated")

	// Initialize Redis cache
	redisClient, err := cache.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Initialize Prometheus metrics
	prometheusMetrics := metrics.New()
	log.Printf("✅ Prometheus metrics initialized")

	// Export file storage
	var store storage.Store
	if cfg.StorageType == "s3" {
		store, err = storage.NewS3Store(context.Background(), cfg.AWSRegion, cfg.S3Bucket)
		if err != nil {
			log.Fatalf("❌ Failed to initialize S3 storage: %v", err)
		}
		log.Printf("✅ S3 export storage initialized (bucket: %s)", cfg.S3Bucket)
	} else {
		store, err = storage.NewLocalStore(cfg.StorageLocalPath)
		if err != nil {
			log.Fatalf("❌ Failed to initialize local storage: %v", err)
		}
		log.Printf("✅ Local export storage initialized (%s)", cfg.StorageLocalPath)
	}

	// Lead scoring: embeddings when an OpenAI key is configured, keyword
	// overlap otherwise.
	var scorer leadgen.Scorer
	if cfg.OpenAIAPIKey != "" {
		scorer = leadgen.NewEmbeddingScorer(cfg.OpenAIAPIKey)
		log.Printf("✅ Embedding scorer enabled")
	} else {
		scorer = leadgen.NewKeywordScorer()
		log.Printf("ℹ️  Keyword scorer in use (no OpenAI key configured)")
	}
	generator := leadgen.New(scorer, time.Now().UnixNano())

	// Initialize JWT blacklist
	tokenBlacklist := auth.NewTokenBlacklist(redisClient)

	// Initialize audit logger
	auditLogger := audit.New(db, appLog)
	log.Printf("✅ Audit logging initialized")

	// Initialize email service
	emailService := email.New(cfg.SendGridAPIKey, cfg.EmailFrom, cfg.EmailFromName, cfg.FrontendURL, appLog)

	// Initialize services
	productService := products.New(db)
	regionService := regions.New(db)
	campaignService := campaigns.New(db, generator, auditLogger, prometheusMetrics, appLog, cfg.LeadGenBatchSize)
	leadService := leads.New(db, auditLogger, prometheusMetrics, appLog)
	finalLeadService := finalleads.New(db, emailService, appLog)
	leadNoteService := leadnote.New(db)
	tagService := tags.New(db)
	analyticsService := analytics.New(db, redisClient, prometheusMetrics, appLog, time.Duration(cfg.DashboardCacheTTLSeconds)*time.Second)
	exportService := export.New(finalLeadService, store, auditLogger, prometheusMetrics, appLog)
	userService := users.New(db, tokenBlacklist, auditLogger, emailService, prometheusMetrics, appLog, cfg.JWTSecret, cfg.JWTExpirationHours)

	// Initialize cron manager for recurring campaigns
	cronManager := jobs.NewCronManager(campaignService, appLog)
	if err := cronManager.SetupJobs(); err != nil {
		log.Fatalf("❌ Failed to setup cron jobs: %v", err)
	}
	cronManager.Start()
	log.Printf("✅ Cron jobs started successfully")

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, cfg.JWTSecret)
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService)
	regionHandler := handlers.NewRegionHandler(regionService)
	campaignHandler := handlers.NewCampaignHandler(campaignService)
	autoLeadHandler := handlers.NewAutoLeadHandler(leadService)
	finalLeadHandler := handlers.NewFinalLeadHandler(finalLeadService)
	leadNoteHandler := handlers.NewLeadNoteHandler(leadNoteService)
	tagHandler := handlers.NewTagHandler(tagService)
	dashboardHandler := handlers.NewDashboardHandler(analyticsService)
	activityHandler := handlers.NewActivityHandler(auditLogger)
	exportHandler := handlers.NewExportHandler(exportService)

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()

	// Initialize rate limiters
	globalRateLimiter := custommiddleware.NewRateLimiter(cfg.RateLimitRequestsPerMinute, cfg.RateLimitBurst)
	authRateLimiter := custommiddleware.NewRateLimiter(5, 2) // 5 req/min for login

	// Global middleware
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			appLog.Info("request",
				"method", c.Request().Method,
				"uri", v.URI,
				"status", v.Status)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	// Sentry error tracking middleware (if configured)
	if cfg.SentryDSN != "" {
		e.Use(sentryecho.New(sentryecho.Options{
			Repanic: true,
		}))
	}

	// Prometheus metrics middleware
	e.Use(prometheusMetrics.Middleware())

	// CORS with restricted origins
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSAllowedOrigins,
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowCredentials: true,
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
		},
	}))

	e.Use(middleware.Gzip())
	e.Use(middleware.Secure())

	// Global rate limiting
	e.Use(globalRateLimiter.Middleware())

	// Health check endpoints (public)
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"name":        "LeadCRM API",
			"version":     "1.0.0",
			"status":      "running",
			"environment": cfg.APIEnvironment,
			"timestamp":   time.Now().Unix(),
		})
	})

	e.GET("/health", func(c echo.Context) error {
		if err := db.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]any{
				"status":   "unhealthy",
				"database": "down",
			})
		}

		if err := redisClient.Redis.Ping(c.Request().Context()).Err(); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]any{
				"status": "unhealthy",
				"cache":  "down",
			})
		}

		resp := map[string]any{
			"status":   "healthy",
			"database": "up",
			"cache":    "up",
		}
		if pool, err := db.Stats(); err == nil {
			resp["database_pool"] = pool
		}
		return c.JSON(http.StatusOK, resp)
	})

	// Prometheus metrics endpoint (public)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Swagger documentation (public)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Exported files (local storage only; S3 serves its own URLs)
	if cfg.StorageType != "s3" {
		e.Static("/exports", cfg.StorageLocalPath)
	}

	v1 := e.Group("/api/v1")

	// Authentication routes
	authRoutes := v1.Group("/auth")
	{
		// Login with rate limit: 5 per minute (prevent brute force)
		authRoutes.POST("/login", authHandler.Login, authRateLimiter.Middleware())
		authRoutes.POST("/logout", authHandler.Logout, custommw.JWTMiddlewareWithBlacklist(cfg.JWTSecret, tokenBlacklist))
		authRoutes.GET("/me", authHandler.Me, custommw.JWTMiddlewareWithBlacklist(cfg.JWTSecret, tokenBlacklist))
	}

	// Protected routes (require JWT with blacklist validation)
	protected := v1.Group("")
	protected.Use(custommw.JWTMiddlewareWithBlacklist(cfg.JWTSecret, tokenBlacklist))
	{
		// Dashboard
		dashboardGroup := protected.Group("/dashboard")
		dashboardGroup.Use(custommw.RequireSection(session.SectionDashboard))
		{
			dashboardGroup.GET("/stats", dashboardHandler.Stats)
		}

		// Campaigns
		campaignGroup := protected.Group("/campaigns")
		campaignGroup.Use(custommw.RequireSection(session.SectionCampaigns))
		{
			campaignGroup.GET("", campaignHandler.List)
			campaignGroup.POST("", campaignHandler.Create)
			campaignGroup.GET("/:id", campaignHandler.Get)
			campaignGroup.PATCH("/:id", campaignHandler.Update)
			campaignGroup.DELETE("/:id", campaignHandler.Delete)
			campaignGroup.POST("/:id/generate", campaignHandler.GenerateLeads)
		}

		// Auto leads
		autoLeadGroup := protected.Group("/auto-leads")
		autoLeadGroup.Use(custommw.RequireSection(session.SectionAutoLeads))
		{
			autoLeadGroup.GET("", autoLeadHandler.List)
			autoLeadGroup.POST("/promote", autoLeadHandler.Promote)
			autoLeadGroup.GET("/:id", autoLeadHandler.Get)
			autoLeadGroup.PATCH("/:id", autoLeadHandler.Update)
		}

		// Final leads, tags and exports
		finalLeadGroup := protected.Group("/final-leads")
		finalLeadGroup.Use(custommw.RequireSection(session.SectionFinalLeads))
		{
			finalLeadGroup.GET("", finalLeadHandler.List)
			finalLeadGroup.POST("", finalLeadHandler.Create)
			finalLeadGroup.GET("/:id", finalLeadHandler.Get)
			finalLeadGroup.PATCH("/:id", finalLeadHandler.Update)
			finalLeadGroup.DELETE("/:id", finalLeadHandler.Delete)
		}

		tagGroup := protected.Group("/tags")
		tagGroup.Use(custommw.RequireSection(session.SectionFinalLeads))
		{
			tagGroup.GET("", tagHandler.List)
			tagGroup.POST("", tagHandler.Create)
			tagGroup.DELETE("/:id", tagHandler.Delete)
		}

		exportGroup := protected.Group("/exports")
		exportGroup.Use(custommw.RequireSection(session.SectionFinalLeads))
		{
			exportGroup.POST("", exportHandler.Create)
		}

		// Lead notes follow the broader auto-lead permission
		protected.GET("/leads/:lead_id/notes", leadNoteHandler.ListForLead, custommw.RequireSection(session.SectionAutoLeads))
		leadNoteGroup := protected.Group("/lead-notes")
		leadNoteGroup.Use(custommw.RequireSection(session.SectionAutoLeads))
		{
			leadNoteGroup.POST("", leadNoteHandler.Create)
			leadNoteGroup.DELETE("/:id", leadNoteHandler.Delete)
		}

		// Products and regions (admin only)
		productGroup := protected.Group("/products")
		productGroup.Use(custommw.RequireSection(session.SectionProducts))
		{
			productGroup.GET("", productHandler.List)
			productGroup.POST("", productHandler.Create)
			productGroup.GET("/:id", productHandler.Get)
			productGroup.PATCH("/:id", productHandler.Update)
			productGroup.DELETE("/:id", productHandler.Delete)
		}

		regionGroup := protected.Group("/regions")
		regionGroup.Use(custommw.RequireSection(session.SectionProducts))
		{
			regionGroup.GET("", regionHandler.List)
			regionGroup.POST("", regionHandler.Create)
			regionGroup.PATCH("/:id", regionHandler.Update)
			regionGroup.DELETE("/:id", regionHandler.Delete)
		}

		// User management (admin only)
		userGroup := protected.Group("/users")
		userGroup.Use(custommw.RequireSection(session.SectionUsers))
		{
			userGroup.GET("", userHandler.List)
			userGroup.POST("", userHandler.Create)
			userGroup.PATCH("/:id", userHandler.Update)
			userGroup.DELETE("/:id", userHandler.Deactivate)
		}

		// Activity log (admin only)
		activityGroup := protected.Group("/activity")
		activityGroup.Use(custommw.RequireSection(session.SectionActivity))
		{
			activityGroup.GET("", activityHandler.List)
		}
	}

	// Start server
	address := fmt.Sprintf("%s:%s", cfg.APIHost, cfg.APIPort)
	log.Printf("🚀 LeadCRM API starting on %s", address)
	log.Printf("🔐 JWT expiration: %d hours", cfg.JWTExpirationHours)
	log.Printf("🛡️  Rate limiting: %d req/min (burst: %d), login 5/min", cfg.RateLimitRequestsPerMinute, cfg.RateLimitBurst)
	log.Printf("⏰ Cron: recurring campaign sweep every 5 minutes")

	// Graceful shutdown
	go func() {
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	cronManager.Stop()
	log.Println("✅ Cron jobs stopped")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server gracefully stopped")
}
