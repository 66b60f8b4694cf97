package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/rta-dms/pta-archive-api/api/swagger"
	"github.com/rta-dms/pta-archive-api/internal/dms"
	"github.com/rta-dms/pta-archive-api/internal/dto"
	"github.com/rta-dms/pta-archive-api/internal/handler"
	"github.com/rta-dms/pta-archive-api/internal/middleware"
	"github.com/rta-dms/pta-archive-api/internal/repository"
	"github.com/rta-dms/pta-archive-api/internal/service"
	"github.com/rta-dms/pta-archive-api/pkg/cache"
	"github.com/rta-dms/pta-archive-api/pkg/config"
	"github.com/rta-dms/pta-archive-api/pkg/database"
	"github.com/rta-dms/pta-archive-api/pkg/logger"
	corsmiddleware "github.com/rta-dms/pta-archive-api/pkg/middleware/cors"
	reqidmiddleware "github.com/rta-dms/pta-archive-api/pkg/middleware/requestid"
)

// @title PTA Archive API
// @version 1.0.0
// @description Employee document archive over the legacy DMS
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
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	dmsClient := dms.NewClient(cfg.DMS, logr)

	archiveRepo := repository.NewArchiveRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	lookupRepo := repository.NewLookupRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	userRepo := repository.NewUserRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	sessionRepo := repository.NewSessionRepository(redisClient)

	metricsSvc := service.NewMetricsService(prometheus.DefaultRegisterer)
	cacheSvc := service.NewCacheService(redisClient, logr)
	auditSvc := service.NewAuditService(auditRepo, logr)

	authSvc := service.NewAuthService(dmsClient, userRepo, sessionRepo, cfg.JWT, cfg.Session.TTL, logr)
	archiveSvc := service.NewArchiveService(archiveRepo, documentRepo, lookupRepo, employeeRepo, dmsClient, metricsSvc, logr)
	documentSvc := service.NewDocumentService(documentRepo, dmsClient, logr)
	employeeSvc := service.NewEmployeeService(employeeRepo, logr)
	lookupSvc := service.NewLookupService(lookupRepo)
	importSvc := service.NewImportService(archiveRepo, employeeRepo, lookupRepo, metricsSvc, cfg.Import.MaxRows, logr)
	exportSvc := service.NewExportService(archiveRepo)
	dashboardSvc := service.NewDashboardService(dashboardRepo, cacheSvc, cfg.Dashboard.CacheTTL, logr)

	authHandler := handler.NewAuthHandler(authSvc, auditSvc, logr)
	archiveHandler := handler.NewArchiveHandler(archiveSvc, authSvc, auditSvc, dashboardSvc, logr)
	exportHandler := handler.NewExportHandler(exportSvc)
	importHandler := handler.NewImportHandler(importSvc, auditSvc, dashboardSvc, logr)
	documentHandler := handler.NewDocumentHandler(documentSvc, authSvc, auditSvc, logr)
	employeeHandler := handler.NewEmployeeHandler(employeeSvc)
	lookupHandler := handler.NewLookupHandler(lookupSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	auditHandler := handler.NewAuditHandler(auditSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	dto.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.Middleware(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	authorized := api.Group("")
	authorized.Use(middleware.JWT(cfg.JWT))
	{
		authorized.POST("/auth/logout", authHandler.Logout)
		authorized.GET("/auth/me", authHandler.Me)

		authorized.GET("/dashboard/counts", dashboardHandler.Counts)
		authorized.GET("/hr/employees", employeeHandler.List)
		authorized.GET("/hr/employees/:empno", employeeHandler.Get)

		authorized.GET("/lookups/statuses", lookupHandler.Statuses)
		authorized.GET("/lookups/document-types", lookupHandler.DocumentTypes)
		authorized.GET("/lookups/legislations", lookupHandler.Legislations)

		authorized.GET("/archives", archiveHandler.List)
		authorized.GET("/archives/export", exportHandler.Export)
		authorized.GET("/archives/:id", archiveHandler.Get)

		authorized.GET("/documents/:docNumber/download", documentHandler.Download)
	}

	editors := api.Group("")
	editors.Use(middleware.JWT(cfg.JWT), middleware.RequireEditor())
	{
		editors.POST("/archives", archiveHandler.Create)
		editors.PUT("/archives/:id", archiveHandler.Update)
		editors.DELETE("/archives/:id", archiveHandler.Delete)
		editors.POST("/archives/import", importHandler.BulkImport)
		editors.GET("/audit", auditHandler.Recent)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
