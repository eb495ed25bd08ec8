package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/interview-flow-api/api/swagger"
	"github.com/noah-isme/interview-flow-api/internal/handler"
	"github.com/noah-isme/interview-flow-api/internal/middleware"
	"github.com/noah-isme/interview-flow-api/internal/repository"
	"github.com/noah-isme/interview-flow-api/internal/service"
	"github.com/noah-isme/interview-flow-api/pkg/cache"
	"github.com/noah-isme/interview-flow-api/pkg/config"
	"github.com/noah-isme/interview-flow-api/pkg/database"
	"github.com/noah-isme/interview-flow-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/interview-flow-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/interview-flow-api/pkg/middleware/requestid"
)

// @title Interview Flow API
// @version 0.1.0
// @description Performance-review interview lifecycle service
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, dashboard cache disabled", "error", err)
		redisClient = nil
	}

	sessionRepo := repository.NewSessionRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	notificationSvc := service.NewNotificationService(notificationRepo, cfg.Reminders, logr)
	if cfg.Reminders.Enabled {
		notificationSvc.Start(context.Background())
		defer notificationSvc.Stop()
	}

	sessionSvc := service.NewSessionService(sessionRepo, templateRepo, notificationSvc, auditRepo, logr)
	templateSvc := service.NewTemplateService(templateRepo, nil, logr)
	dashboardSvc := service.NewDashboardService(sessionRepo, cacheRepo, cfg.Dashboard.CacheTTL, logr,
		service.WithDashboardMetrics(metricsSvc))
	exportSvc := service.NewExportService(sessionRepo, logr)

	sessionHandler := handler.NewSessionHandler(sessionSvc, dashboardSvc)
	templateHandler := handler.NewTemplateHandler(templateSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	notificationHandler := handler.NewNotificationHandler(notificationSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.Actor())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		interviews := api.Group("/interviews")
		{
			interviews.POST("", sessionHandler.Create)
			interviews.POST("/batch", sessionHandler.CreateBatch)
			interviews.GET("", sessionHandler.List)
			interviews.GET("/:id", sessionHandler.Get)
			interviews.POST("/:id/schedule", sessionHandler.Schedule)
			interviews.POST("/:id/direct-feedback", sessionHandler.DirectFeedback)
			interviews.POST("/:id/enter-meeting", sessionHandler.EnterMeeting)
			interviews.POST("/:id/feedback", sessionHandler.SubmitFeedback)
			interviews.POST("/:id/confirm", sessionHandler.Confirm)
			interviews.POST("/:id/remind", sessionHandler.Remind)
			interviews.DELETE("/:id", sessionHandler.Cancel)
			if cfg.Exports.Enabled {
				interviews.GET("/:id/export", exportHandler.Download)
			}
		}

		templates := api.Group("/templates")
		{
			templates.GET("", templateHandler.List)
			templates.POST("", templateHandler.Create)
			templates.GET("/:id", templateHandler.Get)
			templates.PUT("/:id", templateHandler.Update)
			templates.DELETE("/:id", templateHandler.Delete)
		}

		if cfg.Dashboard.Enabled {
			api.GET("/dashboard/summary", dashboardHandler.Summary)
		}
		api.GET("/notifications", notificationHandler.List)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
