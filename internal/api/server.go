package api

import (
	"log"

	"backend/internal/app/config"
	"backend/internal/app/dsn"
	"backend/internal/app/handler"
	"backend/internal/app/hooks"
	"backend/internal/app/repository"
	"backend/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func StartServer() {
	log.Println("Starting server")

	logger := logrus.New()

	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("failed to read config: %v", err)
	}
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}

	repo, err := repository.New(dsn.FromEnv(), logger)
	if err != nil {
		logger.Fatalf("failed to init repository: %v", err)
	}

	adapter := hooks.New(repo, repo, logger)
	h := handler.NewHandler(adapter)

	r := gin.Default()

	application := pkg.NewApp(cfg, r, h)
	application.RunApp()

	log.Println("Server down")
}
