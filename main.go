package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/fabiorvs/controleConta/api"
	"github.com/fabiorvs/controleConta/backup"
	"github.com/fabiorvs/controleConta/config"
	"github.com/fabiorvs/controleConta/db"
	_ "github.com/fabiorvs/controleConta/docs"
)

// @title controleConta API
// @version 1.0
// @description Personal finance tracker backend.
// @BasePath /
// @SecurityDefinitions.apikey ApiKeyAuth
// @In header
// @Name Authorization
func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger := logrus.StandardLogger()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	logrus.Infof("starting with %s", cfg)

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		logrus.Fatalf("failed to create data directory: %v", err)
	}

	storage, err := db.NewStorage(cfg.DatabasePath())
	if err != nil {
		logrus.Fatalf("failed to open database: %v", err)
	}
	defer storage.Close()

	backups := backup.NewManager(cfg.DatabasePath(), cfg.BackupDir(), storage, logger)
	if err := backups.Start(); err != nil {
		logrus.Fatalf("failed to start backup manager: %v", err)
	}
	defer backups.Stop()

	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	handler := api.NewHandler(storage, cfg, backups)
	handler.RegisterRoutes(r)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if cfg.StaticDir != "" {
		r.Static("/app", cfg.StaticDir)
	}

	logrus.Infof("server running on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
