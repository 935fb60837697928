package main

import (
	"context"

	"sentinel-dca-go/internal/api"
	"sentinel-dca-go/internal/auth"
	"sentinel-dca-go/internal/config"
	"sentinel-dca-go/internal/dashboard"
	"sentinel-dca-go/internal/dataset"
	"sentinel-dca-go/internal/logger"
	"sentinel-dca-go/internal/scheduler"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logger.New().WithError(err).Fatal("failed to load configuration")
	}
	logger.Configure(cfg.App.Environment, cfg.App.LogLevel)

	log := logger.New()
	log.WithField("service", "sentinel-dca-go").Info("starting service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source := dataset.NewSource(cfg.Dataset.Path, cfg.Dataset.FetchTimeout)
	service := dashboard.NewService(dataset.NewLoader(source))

	log.WithField("dataset_path", cfg.Dataset.Path).Info("loading dataset")
	if n, err := service.Reload(ctx); err != nil {
		// serve anyway; /v1/dataset reports the error and reload can be retried
		log.WithError(err).Error("initial dataset load failed")
	} else {
		log.WithField("records", n).Info("dataset loaded")
	}

	authenticator := auth.NewService(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	if err := authenticator.Seed(cfg.Auth.SeedEmail, cfg.Auth.SeedPassword); err != nil {
		log.WithError(err).Fatal("failed to seed user")
	}

	reloads := scheduler.NewDatasetReloadService(service, cfg)
	if err := reloads.Start(ctx); err != nil {
		log.WithError(err).Fatal("failed to start dataset reload scheduler")
	}

	srv := api.New(cfg, service, authenticator)
	if err := srv.Run(ctx); err != nil {
		log.WithError(err).Fatal("server terminated")
	}
}
