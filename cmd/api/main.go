package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/campus-labs/uni-enroll-api/api/swagger"
	"github.com/campus-labs/uni-enroll-api/internal/handler"
	"github.com/campus-labs/uni-enroll-api/internal/middleware"
	"github.com/campus-labs/uni-enroll-api/internal/service"
	"github.com/campus-labs/uni-enroll-api/internal/store"
	"github.com/campus-labs/uni-enroll-api/pkg/cache"
	"github.com/campus-labs/uni-enroll-api/pkg/config"
	"github.com/campus-labs/uni-enroll-api/pkg/database"
	"github.com/campus-labs/uni-enroll-api/pkg/logger"
	corsmiddleware "github.com/campus-labs/uni-enroll-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campus-labs/uni-enroll-api/pkg/middleware/requestid"
	"github.com/campus-labs/uni-enroll-api/pkg/storage"
)

// @title University Enrollment API
// @version 1.0.0
// @description Student registration, subject enrollment and admin reporting
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

	ctx := context.Background()

	var st store.Store
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
		}
		defer db.Close() //nolint:errcheck
		pg := store.NewPostgresStore(db)
		if err := pg.Migrate(ctx); err != nil {
			logr.Sugar().Fatalw("failed to migrate schema", "error", err)
		}
		st = pg
	default:
		st = store.NewJSONFileStore(cfg.Storage.FilePath, logr)
	}

	validate := service.NewValidator()
	roster := service.NewRoster(ctx, st, logr)
	metrics := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Reports.CacheEnabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, report cache disabled", "error", err)
		} else {
			defer client.Close() //nolint:errcheck
			cacheRepo = store.NewRedisCache(client, logr)
		}
	}
	reportCache := service.NewCacheService(cacheRepo, metrics, cfg.Reports.CacheTTL, logr, cfg.Reports.CacheEnabled)

	files, err := storage.NewLocalStorage(cfg.Exports.Dir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init export storage", "error", err)
	}

	subjects := service.NewSubjectService(nil, validate, logr)
	students := service.NewStudentService(roster, nil, validate, logr)
	enrollments := service.NewEnrollmentService(roster, subjects, nil, validate, logr)
	admin := service.NewAdminService(roster, logr)
	reports := service.NewReportService(admin, files, reportCache, cfg.Reports.CacheTTL, logr)
	auth := service.NewAuthService(roster, cfg.Admins, service.NewSessionManager(), validate, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      "uni-enroll-api",
	})

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	handler.RegisterRoutes(r, cfg.APIPrefix, handler.Handlers{
		Auth:        handler.NewAuthHandler(auth),
		Students:    handler.NewStudentHandler(students),
		Enrollments: handler.NewEnrollmentHandler(enrollments),
		Subjects:    handler.NewSubjectHandler(subjects),
		Admin:       handler.NewAdminHandler(admin),
		Reports:     handler.NewReportHandler(reports),
		Metrics:     handler.NewMetricsHandler(metrics),
	}, auth)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Info("server starting",
		zap.String("addr", addr),
		zap.String("env", cfg.Env),
		zap.String("storage", cfg.Storage.Driver))
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
