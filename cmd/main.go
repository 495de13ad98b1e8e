package main

import (
	"context"

	"github.com/gin-gonic/gin"

	"munidesk/munidesk_go_module_builder_service/api"
	"munidesk/munidesk_go_module_builder_service/config"
	"munidesk/munidesk_go_module_builder_service/pkg/jaeger"
	"munidesk/munidesk_go_module_builder_service/pkg/logger"
	"munidesk/munidesk_go_module_builder_service/service"
	"munidesk/munidesk_go_module_builder_service/storage/postgres"
)

func main() {
	cfg := config.Load()

	loggerLevel := logger.LevelDebug

	switch cfg.Environment {
	case config.DebugMode:
		loggerLevel = logger.LevelDebug
		gin.SetMode(gin.DebugMode)
	case config.TestMode:
		loggerLevel = logger.LevelDebug
		gin.SetMode(gin.TestMode)
	default:
		loggerLevel = logger.LevelInfo
		gin.SetMode(gin.ReleaseMode)
	}

	log := logger.NewLogger(cfg.ServiceName, loggerLevel)
	defer func() {
		_ = logger.Cleanup(log)
	}()
	log.Info("Service env", logger.Any("cfg", cfg))

	closer, err := jaeger.InitGlobalTracer(cfg.ServiceName, cfg.JaegerHostPort)
	if err != nil {
		log.Panic("jaeger.InitGlobalTracer", logger.Error(err))
	}
	defer closer.Close()

	pgStore, err := postgres.NewPostgres(context.Background(), cfg, log)
	if err != nil {
		log.Panic("postgres.NewPostgres", logger.Error(err))
	}
	defer pgStore.CloseDB()

	svcs := service.NewServiceManager(cfg, log, pgStore)

	router := api.SetUpRouter(api.NewHandler(cfg, log, svcs))

	log.Info("HTTP: Server being started...", logger.String("port", cfg.HTTPPort))

	if err := router.Run(cfg.HTTPPort); err != nil {
		log.Panic("router.Run", logger.Error(err))
	}
}
