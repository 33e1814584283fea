package service

import (
	"context"

	"github.com/MKhiriev/traveltrek/internal/config"
	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/models"
)

type appInfoService struct {
	build models.BuildInfo

	logger *logger.Logger
}

// NewAppInfoService reports the linker-injected build metadata. The
// configured version is used when the binary carries none.
func NewAppInfoService(build models.AppBuildInfo, cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	info := build.View()
	if info.Version == "" || info.Version == "N/A" {
		info.Version = cfg.Version
	}
	if info.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		build:  info,
		logger: logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.build.Version
}

func (s *appInfoService) GetBuildInfo(ctx context.Context) models.BuildInfo {
	return s.build
}
