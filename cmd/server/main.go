package main

import (
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"otcpharm/m/internal/api"
	"otcpharm/m/internal/auth"
	"otcpharm/m/internal/config"
	"otcpharm/m/internal/database"
	"otcpharm/m/internal/migrations"
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

	var authn auth.Authenticator
	if cfg.AuthMode == config.AuthModeHeader {
		authn = auth.HeaderAuthenticator{}
	} else {
		authn = auth.NewTokenAuthenticator(cfg.AuthSecret)
	}

	handler := api.New(store.New(db), authn, cfg, log)

	log.Info("marketplace server starting",
		zap.String("port", cfg.HTTPPort), zap.String("auth_mode", cfg.AuthMode))
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
