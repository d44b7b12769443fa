package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "schedview/api/swagger"
	"schedview/internal/colors"
	"schedview/internal/directory"
	"schedview/internal/filter"
	"schedview/internal/handler"
	"schedview/internal/remote"
	"schedview/internal/service"
	"schedview/internal/store"
	"schedview/internal/view"
	"schedview/pkg/cache"
	"schedview/pkg/config"
	"schedview/pkg/logger"
	corsmiddleware "schedview/pkg/middleware/cors"
	reqidmiddleware "schedview/pkg/middleware/requestid"
	"schedview/pkg/storage"
)

// @title Schedview API
// @version 0.1.0
// @description Calendar view and filter engine over a remote schedule service
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := service.NewMetricsService()

	files, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("storage init failed", "error", err)
	}
	stateFiles, err := storage.NewLocalStorage(cfg.State.Dir)
	if err != nil {
		logr.Sugar().Fatalw("state storage init failed", "error", err)
	}

	// The store is wired after the client but the 401 callback fires through
	// this pointer, so forced logouts drop every mirrored collection.
	var eventStore *store.EventStore
	client := remote.NewClient(cfg.Remote, logr, func() {
		logr.Warn("remote session expired, dropping local state")
		if eventStore != nil {
			eventStore.Reset()
		}
	})

	validate := validator.New()
	eventStore = store.NewEventStore(client, files, validate, metrics, logr)

	engine := filter.NewEngine()
	controller := view.NewController(engine, logr)
	assigner := colors.NewAssigner()

	var cacheService *service.CacheService
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, continuing without shared cache", "error", err)
		} else {
			defer redisClient.Close() //nolint:errcheck
			cacheService = service.NewCacheService(cache.NewRepository(redisClient), metrics, cfg.Directory.CacheTTL, logr, true)
		}
	}

	var sharedCache directory.SharedCache
	if cacheService.Enabled() {
		sharedCache = cacheService
	}
	dir := directory.NewService(client, sharedCache, cfg.Directory.CacheTTL, logr)

	session := service.NewSessionService(client, eventStore, stateFiles, logr)
	exports := service.NewExportService(client, eventStore, files, engine, logr)

	startJobs(cfg, dir, files, metrics, logr)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Remote.Timeout*2)
		defer cancel()
		if err := dir.Refresh(ctx, true); err != nil {
			logr.Sugar().Warnw("initial directory refresh failed", "error", err)
		}
		metrics.RecordDirectoryRefresh(dir.Err() == "")
		if err := session.LoadSchedules(ctx); err != nil {
			logr.Sugar().Warnw("initial schedule load failed", "error", err)
		}
	}()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(httpMetrics(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	registerRoutes(r.Group(cfg.APIPrefix),
		handler.NewCalendarHandler(controller, engine, eventStore, assigner, session, metrics),
		handler.NewEventHandler(eventStore, session),
		handler.NewOwnerHandler(dir, assigner),
		handler.NewScopeHandler(session),
		handler.NewExportHandler(exports, session),
	)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func registerRoutes(api *gin.RouterGroup, calendar *handler.CalendarHandler, events *handler.EventHandler, owners *handler.OwnerHandler, scopes *handler.ScopeHandler, exports *handler.ExportHandler) {
	api.GET("/calendar", calendar.View)
	api.PUT("/calendar/view", calendar.SetViewMode)
	api.GET("/calendar/filter", calendar.GetFilter)
	api.PUT("/calendar/filter", calendar.SetFilter)
	api.DELETE("/calendar/filter", calendar.ClearFilter)

	api.GET("/events", events.List)
	api.POST("/events", events.Create)
	api.POST("/events/reload", events.Reload)
	api.PUT("/events/:id", events.Update)
	api.DELETE("/events/:id", events.Delete)

	api.GET("/owners", owners.List)
	api.GET("/owners/classes", owners.Classes)
	api.GET("/owners/grades", owners.Grades)
	api.POST("/owners/refresh", owners.Refresh)

	api.GET("/schedules", scopes.List)
	api.POST("/schedules", scopes.Create)
	api.POST("/schedules/reload", scopes.Reload)
	api.GET("/schedules/active", scopes.Active)
	api.PUT("/schedules/active", scopes.SetActive)
	api.PUT("/schedules/:id", scopes.Update)
	api.DELETE("/schedules/:id", scopes.Delete)

	api.GET("/exports/:format", exports.Download)
}

func startJobs(cfg *config.Config, dir *directory.Service, files *storage.LocalStorage, metrics *service.MetricsService, logr *zap.Logger) {
	scheduler := cron.New()

	if spec := cfg.Directory.RefreshCron; spec != "" {
		if _, err := scheduler.AddFunc(spec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Remote.Timeout*2)
			defer cancel()
			err := dir.Refresh(ctx, true)
			metrics.RecordDirectoryRefresh(err == nil)
			if err != nil {
				logr.Sugar().Warnw("scheduled directory refresh failed", "error", err)
			}
		}); err != nil {
			logr.Sugar().Warnw("invalid directory refresh cron", "spec", spec, "error", err)
		}
	}

	if _, err := scheduler.AddFunc("@hourly", func() {
		deleted, err := files.CleanupOlderThan(cfg.Exports.CleanupTTL)
		if err != nil {
			logr.Sugar().Warnw("export cleanup failed", "error", err)
			return
		}
		if len(deleted) > 0 {
			logr.Sugar().Infow("export cleanup done", "deleted", len(deleted))
		}
	}); err != nil {
		logr.Sugar().Warnw("export cleanup job failed to register", "error", err)
	}

	scheduler.Start()
}

func httpMetrics(metrics *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		metrics.RecordHTTPRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
