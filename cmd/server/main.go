package main

import (
	"context"
	"log"

	"commfeed/internal/config"
	"commfeed/internal/db"
	"commfeed/internal/logging"
	"commfeed/internal/router"
	"commfeed/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	store, closeDB, err := db.Open(context.Background(), db.Options{
		Driver:        cfg.DBDriver,
		DSN:           cfg.DatabaseURL,
		MongoDatabase: cfg.MongoDatabase,
		Key:           cfg.StorageKey,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to open store", zap.Error(err))
	}
	defer func() { _ = closeDB() }()

	feed := services.NewFeedService(store, services.WithLogger(logger))

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r, err := router.New(router.Deps{
		Config:       cfg,
		Feed:         feed,
		Logger:       logger,
		TemplatesDir: "./web/templates",
	})
	if err != nil {
		logger.Fatal("Failed to build router", zap.Error(err))
	}

	logger.Info("Server starting", zap.String("port", cfg.Port), zap.String("driver", cfg.DBDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
