package main

import (
	"context"
	"os"

	"github.com/MKhiriev/go-pass-vault/internal/config"
	handler "github.com/MKhiriev/go-pass-vault/internal/handler/http"
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/internal/server"
	"github.com/MKhiriev/go-pass-vault/models"
)

var (
	buildVersion = "N/A"
	buildDate    = "N/A"
	buildCommit  = "N/A"
)

func main() {
	log := logger.NewLogger("go-pass-rangemock")
	cfg, err := config.GetRangeMockConfig("rangemock", os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ranges, err := handler.LoadRangesFile(cfg.FixturePath)
	if err != nil {
		log.Fatal().Err(err).Msg("error loading fixture")
	}

	h := handler.NewHandler(ranges, models.NewAppBuildInfo(buildVersion, buildDate, buildCommit), log)

	srv, err := server.NewServer(h.Init(), cfg.Address, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err := srv.RunServer(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
