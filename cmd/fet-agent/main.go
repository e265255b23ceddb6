package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/sgh-fet-agent/api/swagger"
	"github.com/noah-isme/sgh-fet-agent/internal/fet"
	"github.com/noah-isme/sgh-fet-agent/internal/handler"
	internalmiddleware "github.com/noah-isme/sgh-fet-agent/internal/middleware"
	"github.com/noah-isme/sgh-fet-agent/internal/service"
	"github.com/noah-isme/sgh-fet-agent/pkg/config"
	"github.com/noah-isme/sgh-fet-agent/pkg/logger"
	corsmiddleware "github.com/noah-isme/sgh-fet-agent/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sgh-fet-agent/pkg/middleware/requestid"
)

// @title SGH FET Agent
// @version 1.0.0
// @description Coordinates FET solver executions: input generation, subprocess execution and result decoding.
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := service.NewMetricsService()
	runner := fet.NewRunner(cfg.Fet.BinaryPath, cfg.Fet.WorkDir, cfg.Fet.Timeout, logr)
	timetables := service.NewTimetableService(
		fet.NewDocumentBuilder(),
		runner,
		fet.NewResultDecoder(),
		cfg.Fet.WorkDir,
		nil,
		logr,
		metrics,
	)
	timetableHandler := handler.NewTimetableHandler(timetables)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

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

	api := r.Group(cfg.APIPrefix)
	api.Use(internalmiddleware.ServiceAuth(cfg.Auth.ServiceToken))
	api.POST("/fet/run", timetableHandler.Run)
	if cfg.Export.Enabled {
		api.POST("/fet/export", timetableHandler.Export)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "fet_binary", cfg.Fet.BinaryPath)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
