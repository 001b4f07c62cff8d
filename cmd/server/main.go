package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-smart-deals/internal/adapter"
	"github.com/MKhiriev/go-smart-deals/internal/config"
	"github.com/MKhiriev/go-smart-deals/internal/handler"
	"github.com/MKhiriev/go-smart-deals/internal/logger"
	"github.com/MKhiriev/go-smart-deals/internal/server"
	"github.com/MKhiriev/go-smart-deals/internal/service"
	"github.com/MKhiriev/go-smart-deals/internal/store"
	"github.com/MKhiriev/go-smart-deals/internal/workers"
	"github.com/MKhiriev/go-smart-deals/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	info := buildInfo()
	printBuildInfo(info)

	log := logger.NewLogger("smart-deals-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if info.BuildVersion() != "N/A" && cfg.App.Version == "N/A" {
		cfg.App.Version = info.BuildVersion()
	}

	log.Debug().
		Str("http_address", cfg.Server.HTTPAddress).
		Str("grpc_address", cfg.Server.GRPCAddress).
		Bool("strict_auth", cfg.App.StrictAuth).
		Msg("received configs")

	ctx := context.Background()

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	identityProvider, err := adapter.NewFirebaseIdentityProvider(cfg.Identity, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating identity provider")
	}

	services, err := service.NewServices(store.NewStorages(db, log), identityProvider, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	var healthReporter workers.HealthReporter
	if handlers.GRPC != nil {
		healthReporter = handlers.GRPC
	}
	backgroundWorkers := workers.NewWorkers(identityProvider, db, healthReporter, cfg.Workers, log)
	backgroundWorkers.Start(ctx)
	defer backgroundWorkers.Stop()

	srv.RunServer()
}

func buildInfo() models.AppBuildInfo {
	orNA := func(s string) string {
		if s == "" {
			return "N/A"
		}
		return s
	}

	return models.NewAppBuildInfo(orNA(buildVersion), orNA(buildDate), orNA(buildCommit))
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
