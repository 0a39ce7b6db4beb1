package main

import (
	"context"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"otcpharm/m/internal/config"
	"otcpharm/m/internal/database"
	"otcpharm/m/internal/migrations"
	"otcpharm/m/internal/seed"
	"otcpharm/m/internal/store"
)

func main() {
	_ = godotenv.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	if err := seed.Run(context.Background(), store.New(db), log); err != nil {
		log.Fatal("seeding failed", zap.Error(err))
	}
}
