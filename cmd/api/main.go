package main

//go:generate swag init -d ../../ -g cmd/api/main.go -o ../../docs --outputTypes go

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/sjperalta/obrafin-api/docs" // Swagger docs
	"github.com/sjperalta/obrafin-api/internal/config"
	"github.com/sjperalta/obrafin-api/internal/database"
	"github.com/sjperalta/obrafin-api/internal/handlers"
	"github.com/sjperalta/obrafin-api/internal/jobs"
	"github.com/sjperalta/obrafin-api/internal/middleware"
	"github.com/sjperalta/obrafin-api/internal/models"
	"github.com/sjperalta/obrafin-api/internal/repository"
	"github.com/sjperalta/obrafin-api/internal/services"
	"github.com/sjperalta/obrafin-api/internal/storage"
	"github.com/sjperalta/obrafin-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title Obrafin API
// @version 1.0
// @description REST API for construction project finance: ledger, cost control, documents and reports
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment, cfg.LogLevel)

	// Money travels as JSON numbers
	models.UseNumericMoneyJSON()

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL, cfg.IsProduction())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	// Initialize storage
	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	logger.Info("Initialized local storage", "path", cfg.StoragePath)

	// Initialize repositories
	repos := repository.NewRepositories(db)

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize services. Project status changes are unrestricted.
	svcs := services.NewServices(repos, worker, store, cfg, db, nil)

	// Schedule recurring jobs
	scheduleJobs(worker, svcs, cfg)

	// Initialize handlers
	h := handlers.NewHandlers(svcs, store)

	// Setup router
	router := setupRouter(h, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Pending audit writes finish before exit
	worker.Shutdown()
	logger.Info("Background worker stopped")

	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// Redirect root to swagger
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		// Health check (public)
		v1.GET("/health", h.Health.Index)

		// Protected routes (requires authentication)
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		{
			// Read access for every role
			protected.GET("/projects", h.Project.Index)
			protected.GET("/projects/:project_id", h.Project.Show)
			protected.GET("/projects/:project_id/financials", h.Report.Financials)
			protected.GET("/projects/:project_id/cost_control", h.Report.CostControl)
			protected.GET("/projects/:project_id/documents", h.Report.Documents)
			protected.GET("/projects/:project_id/overview", h.Report.Overview)
			protected.GET("/projects/:project_id/export", h.Report.Export)
			protected.GET("/projects/:project_id/dossier", h.Report.DossierPreview)
			protected.GET("/projects/:project_id/transactions", h.Transaction.Index)
			protected.GET("/projects/:project_id/contracts", h.Contract.Index)
			protected.GET("/projects/:project_id/boqs", h.Procurement.Index)
			protected.GET("/files/*path", h.File.Download)

			// Project management
			managers := protected.Group("")
			managers.Use(middleware.RequireRole(middleware.RoleManager))
			{
				managers.POST("/projects", h.Project.Create)
				managers.PUT("/projects/:project_id", h.Project.Update)
				managers.POST("/projects/:project_id/status", h.Project.ChangeStatus)
				managers.POST("/projects/:project_id/documents", h.Project.AttachDocument)
				managers.POST("/projects/:project_id/dossier", h.Report.Dossier)
				managers.POST("/projects/:project_id/contracts", h.Contract.Create)
				managers.POST("/contracts/:contract_id/status", h.Contract.ChangeStatus)
				managers.POST("/projects/:project_id/boqs", h.Procurement.Create)
			}

			// Bookkeeping
			bookkeepers := protected.Group("")
			bookkeepers.Use(middleware.RequireRole(middleware.RoleManager, middleware.RoleAccountant))
			{
				bookkeepers.POST("/projects/:project_id/notes", h.Project.AddNote)
				bookkeepers.POST("/projects/:project_id/transactions", h.Transaction.Create)
				bookkeepers.POST("/transactions/:transaction_id/submit", h.Transaction.Submit)
				bookkeepers.POST("/transactions/:transaction_id/attachments", h.Transaction.UploadReceipt)
			}

			// Approval of money movements
			approvers := protected.Group("")
			approvers.Use(middleware.RequireRole(middleware.RoleAccountant))
			{
				approvers.POST("/transactions/:transaction_id/approve", h.Transaction.Approve)
				approvers.POST("/transactions/:transaction_id/reject", h.Transaction.Reject)
				approvers.POST("/transactions/:transaction_id/undo", h.Transaction.Undo)
			}

			// Admin only (RequireRole always admits admin)
			admin := protected.Group("")
			admin.Use(middleware.RequireRole())
			{
				admin.GET("/jobs/status", h.Job.Status)
				admin.GET("/audit_logs", h.Audit.Index)
			}
		}
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services, cfg *config.Config) {
	worker.ScheduleEvery("cost_sweep", cfg.CostSweepInterval, func(ctx context.Context) error {
		logger.Info("[Job] Sweeping project cost control...")
		_, err := svcs.Finance.SweepCostControl(ctx)
		return err
	})

	logger.Info("Scheduled recurring jobs", "cost_sweep_interval", cfg.CostSweepInterval.String())
}
