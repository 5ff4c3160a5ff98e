package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"crisiscorner/internal/api"
	"crisiscorner/internal/app/config"

	log "github.com/sirupsen/logrus"
)

// @title Crisis Corner API
// @version 1.0
// @description API админки заявок на предметы помощи
// @host localhost:8080
// @BasePath /
func main() {
	log.Info("App start")

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := config.SetupLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := api.StartServer(ctx, cfg, logger); err != nil {
		logger.WithError(err).Error("server stopped with error")
		stop()
		os.Exit(1)
	}

	logger.Info("App terminated")
}
