package main

import (
	"context"

	"crisiscorner/internal/app/config"
	"crisiscorner/internal/app/repository"

	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	config.SetupLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Store.Timeout)
	defer cancel()

	// Подключение к базе данных
	store, err := repository.New(ctx, cfg.Store)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close(context.Background())

	log.WithField("database", store.Name()).Info("Connected to database successfully")

	// Схема, валидатор и индекс (status, createdDate desc)
	if err := store.Migrate(ctx); err != nil {
		log.Fatalf("%v", err)
	}

	log.Info("Database migration completed successfully")
}
