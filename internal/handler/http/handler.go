package http

import (
	"github.com/MKhiriev/go-pass-vault/internal/logger"
	"github.com/MKhiriev/go-pass-vault/models"
)

type Handler struct {
	ranges    Ranges
	buildInfo models.AppBuildInfo

	logger *logger.Logger
}

func NewHandler(ranges Ranges, buildInfo models.AppBuildInfo, logger *logger.Logger) *Handler {
	logger.Info().Int("prefixes", len(ranges)).Msg("http handler created")
	return &Handler{
		ranges:    ranges,
		buildInfo: buildInfo,
		logger:    logger,
	}
}
