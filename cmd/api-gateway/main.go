package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/covalenzuela/schedule-sub000/api/swagger"
	"github.com/covalenzuela/schedule-sub000/internal/handler"
	internalmiddleware "github.com/covalenzuela/schedule-sub000/internal/middleware"
	"github.com/covalenzuela/schedule-sub000/internal/repository"
	"github.com/covalenzuela/schedule-sub000/internal/service"
	"github.com/covalenzuela/schedule-sub000/pkg/cache"
	"github.com/covalenzuela/schedule-sub000/pkg/config"
	"github.com/covalenzuela/schedule-sub000/pkg/database"
	"github.com/covalenzuela/schedule-sub000/pkg/export"
	"github.com/covalenzuela/schedule-sub000/pkg/logger"
	corsmiddleware "github.com/covalenzuela/schedule-sub000/pkg/middleware/cors"
	reqidmiddleware "github.com/covalenzuela/schedule-sub000/pkg/middleware/requestid"
)

// @title Schedule Sub API
// @version 0.1.0
// @description School administration backend: automatic timetable generation
// @BasePath /
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
		logr.Sugar().Warnw("redis unavailable, timetable cache disabled", "error", err)
		redisClient = nil
	}

	courseRepo := repository.NewCourseRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	configRepo := repository.NewSchoolConfigRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	tokenSvc := service.NewTokenService(cfg.JWT.Secret)
	timetableSvc := service.NewTimetableService(courseRepo, scheduleRepo, cacheRepo, cfg.Timetable.CacheTTL, logr)
	generatorSvc := service.NewTimetableGeneratorService(
		courseRepo,
		teacherRepo,
		configRepo,
		scheduleRepo,
		db,
		timetableSvc,
		metricsSvc,
		nil,
		logr,
		cfg.Generator,
	)

	var exportSvc *service.ExportService
	if cfg.Export.Enabled {
		exportSvc = service.NewExportService(courseRepo, scheduleRepo, export.NewPDFExporter(), cfg.Export.Title)
	}

	generatorHandler := handler.NewTimetableGeneratorHandler(generatorSvc)
	timetableHandler := handler.NewTimetableHandler(timetableSvc, exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(internalmiddleware.JWT(tokenSvc))
	{
		api.POST("/timetable/generate", generatorHandler.Generate)
		api.POST("/timetable/save", generatorHandler.Save)
		api.GET("/courses/:id/timetable", timetableHandler.Timetable)
		api.GET("/courses/:id/timetable/export", timetableHandler.Export)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
