package main

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/bryansgue/scanela-sub001/internal/handler"
	"github.com/bryansgue/scanela-sub001/internal/menu"
	mid "github.com/bryansgue/scanela-sub001/internal/middleware"
	"github.com/bryansgue/scanela-sub001/internal/plan"
	"github.com/bryansgue/scanela-sub001/internal/slug"
	"github.com/bryansgue/scanela-sub001/internal/store"
	"github.com/bryansgue/scanela-sub001/pkg/config"
	"github.com/bryansgue/scanela-sub001/pkg/database"
	"github.com/bryansgue/scanela-sub001/pkg/jwtutil"
	"github.com/bryansgue/scanela-sub001/pkg/logger"
	"github.com/bryansgue/scanela-sub001/prometheus"
)

func main() {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting menu-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	err = database.InitDB(appConfig)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Wire the reconciliation engine
	st := store.New(database.GetDB())
	svc := menu.NewService(
		st,
		plan.NewProfileResolver(st),
		slug.NewAllocator(st),
		appConfig.Site.BaseURL,
		log,
	)
	handler.Init(svc)

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Routes
	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public slug resolution for published menus
	e.GET("/api/public/menus/:slug", handler.ResolveMenu)

	// Dashboard API routes - Apply auth middleware to identify the caller
	dashboardAPI := e.Group("/api/dashboard", mid.AuthMiddleware)
	dashboardAPI.POST("/save-menu", handler.SaveMenu)
	dashboardAPI.GET("/load-menu", handler.LoadMenu)
	dashboardAPI.GET("/load-all-menus", handler.LoadAllMenus)

	// Personalization route
	menuAPI := e.Group("/api/menus", mid.AuthMiddleware)
	menuAPI.PATCH("/:id/custom-slug", handler.CustomSlug)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
