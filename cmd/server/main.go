package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/pimify/backend/internal/infrastructure/auth"
	"github.com/pimify/backend/internal/infrastructure/bootstrap"
	"github.com/pimify/backend/internal/infrastructure/config"
	"github.com/pimify/backend/internal/infrastructure/logger"
	"github.com/pimify/backend/internal/infrastructure/telemetry"
	"github.com/pimify/backend/internal/interfaces/http/handler"
	"github.com/pimify/backend/internal/interfaces/http/middleware"
	"github.com/pimify/backend/internal/interfaces/http/router"
	"go.uber.org/zap"

	_ "github.com/pimify/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Pimify API
//	@version		1.0
//	@description	Product information management: catalog, partners, stock and exchange rates.

//	@BasePath	/api/v1

//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						X-API-Key

//	@securityDefinitions.apikey	SessionAuth
//	@in							cookie
//	@name						pimify_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	baseLog, err := bootstrap.NewLogger(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	// Telemetry first so the global tracer and meter are in place for
	// the database plugin and the HTTP middleware
	providers, err := telemetry.Setup(context.Background(), cfg.Telemetry, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	log := providers.Logger(baseLog)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Pimify",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.HTTP.Port),
	)

	db, err := bootstrap.OpenDatabase(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := bootstrap.Migrate(db, log); err != nil {
			log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	services, err := bootstrap.NewContainer(context.Background(), cfg, db, log)
	if err != nil {
		log.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer func() {
		if err := services.Close(); err != nil {
			log.Error("Error closing services", zap.Error(err))
		}
	}()

	sessions, err := auth.NewSessionManager(cfg.Session)
	if err != nil {
		log.Fatal("Failed to initialize sessions", zap.Error(err))
	}

	// Initialize handlers
	handlers := router.Handlers{
		Health:          handler.NewHealthHandler(db),
		Auth:            handler.NewAuthHandler(services.Auth, sessions),
		Product:         handler.NewProductHandler(services.Products),
		Category:        handler.NewCategoryHandler(services.Categories),
		Image:           handler.NewImageHandler(services.Images, services.Metrics),
		ProductCSV:      handler.NewProductCSVHandler(services.ProductCSV, services.Metrics),
		Supplier:        handler.NewSupplierHandler(services.Suppliers),
		Warehouse:       handler.NewWarehouseHandler(services.Warehouses),
		ProductSupplier: handler.NewProductSupplierHandler(services.ProductSuppliers),
		Stock:           handler.NewStockHandler(services.Stock, services.Metrics),
		Exchange:        handler.NewExchangeHandler(services.Rates),
		Organization:    handler.NewOrganizationHandler(services.Organization),
		APIKey:          handler.NewAPIKeyHandler(services.APIKeys),
		Dashboard:       handler.NewDashboardHandler(services.Dashboard),
		Docs:            ginSwagger.WrapHandler(swaggerFiles.Handler),
	}

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else if !cfg.App.Debug {
		gin.SetMode(gin.TestMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowedOrigins

	// Request ID must run before the logger so every line carries it
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Profiling(cfg.Telemetry.ProfilingEnabled))
	engine.Use(middleware.SecureWithConfig(middleware.DefaultSecurityConfig()))
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(gzip.Gzip(gzip.DefaultCompression,
		gzip.WithExcludedPaths([]string{"/api/v1/admin/products/export"})))

	guards := router.Guards{
		APIKey:  middleware.APIKeyAuth(services.APIKeys, services.Metrics),
		Session: middleware.SessionAuth(sessions, services.Auth),
		Staff:   middleware.StaffOnly(),
		Docs: middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:    cfg.Docs.Enabled,
			AllowedIPs: cfg.Docs.AllowedIPs,
		}),
	}

	if cfg.HTTP.RateLimit.Enabled {
		anon := middleware.NewRateLimiter(cfg.HTTP.RateLimit.AnonRPS, time.Second)
		authed := middleware.NewRateLimiter(cfg.HTTP.RateLimit.AuthRPS, time.Second)
		defer anon.Stop()
		defer authed.Stop()
		guards.Throttle = middleware.Throttle(anon, authed)
		log.Info("Rate limiting enabled",
			zap.Int("anon_rps", cfg.HTTP.RateLimit.AnonRPS),
			zap.Int("auth_rps", cfg.HTTP.RateLimit.AuthRPS),
		)
	}

	if cfg.Session.CSRFEnabled {
		protect := auth.NewCSRFProtector(cfg.Session, cfg.HTTP.CORSAllowedOrigins, middleware.CSRFFailureHandler())
		guards.CSRF = middleware.CSRF(protect)
	}

	// Setup routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.SpanEnricher())
	router.RegisterAPI(r, handlers, guards)
	r.Setup()

	if cfg.Storage.Driver == config.StorageLocal && cfg.App.Debug {
		engine.Static(cfg.Storage.MediaURL, cfg.Storage.MediaRoot)
	}

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.HTTP.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := providers.Shutdown(ctx); err != nil {
		log.Error("Telemetry shutdown failed", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
