package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"group-sync-service/api"
	"group-sync-service/internal/config"
	"group-sync-service/internal/database"
	"group-sync-service/internal/domain"
	"group-sync-service/internal/handler"
	"group-sync-service/internal/outline"
	"group-sync-service/internal/pocketid"
	"group-sync-service/internal/repository"
	"group-sync-service/internal/usecase"
	"group-sync-service/internal/version"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

func main() {
	// Логгер
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Конфиг
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Warnf(".env not found: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	info := version.Info()
	logger.WithFields(logrus.Fields{
		"version": info.GitVersion,
		"commit":  info.GitCommit,
	}).Info("Starting group sync service")

	// История синхронизаций
	var runRepo domain.RunRepository
	if cfg.DBEnabled {
		db, err := database.NewPostgresDB(cfg)
		if err != nil {
			logger.Fatalf("Database connection failed: %v", err)
		}
		defer db.Close()
		logger.Info("Database connected")

		runRepo = repository.NewRunRepository(database.New(db))
	} else {
		logger.Info("Database disabled, keeping sync history in memory")
		runRepo = repository.NewMemoryRunRepository(100)
	}

	// Клиенты внешних систем
	pocketClient := pocketid.NewClient(cfg.PocketIDURL, cfg.PocketIDAPIKey, cfg.PocketIDPageSize, cfg.PocketIDTimeout, cfg.HTTPRetryMax, logger)
	outlineClient := outline.NewClient(cfg.OutlineURL, cfg.OutlineAPIKey, cfg.OutlinePageSize, cfg.OutlineTimeout, cfg.HTTPRetryMax, logger)

	// Use Cases
	syncUC := usecase.NewSyncUseCase(pocketClient, outlineClient, runRepo, cfg.MembershipFetchConcurrency, logger)
	keyUC := usecase.NewAuthorizedKeyUseCase(pocketClient, cfg.SSHAllowedGroup, cfg.SSHPubkeyClaim, logger)

	// Echo + Handlers
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET},
	}))
	e.Use(handler.LoggingMiddleware(logger))
	e.Use(handler.APIKeyMiddleware(cfg.APIKey, logger, "/health", "/version", "/metrics"))

	// Handlers
	apiHandler := handler.NewAPIHandler(syncUC, keyUC, logger)
	api.RegisterHandlers(e, apiHandler)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
	e.GET("/version", func(c echo.Context) error {
		return c.JSON(200, info)
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Запуск сервера
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil {
			logger.Infof("Server stopped: %v", err)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatalf("Shutdown failed: %v", err)
	}

	logger.Info("Server exited")
}
