package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/traveltrek/internal/config"
	"github.com/MKhiriev/traveltrek/internal/logger"
	"github.com/MKhiriev/traveltrek/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// NewAppInfoService
// ─────────────────────────────────────────────

func TestNewAppInfoService_UsesBuildVersion(t *testing.T) {
	build := models.NewAppBuildInfo("1.4.0", "2026-01-02", "abc123")

	svc, err := NewAppInfoService(build, config.App{Version: "0.0.1"}, logger.Nop())

	require.NoError(t, err)
	assert.Equal(t, "1.4.0", svc.GetAppVersion(context.Background()))
}

func TestNewAppInfoService_FallsBackToConfig(t *testing.T) {
	for _, version := range []string{"", "N/A"} {
		t.Run(version, func(t *testing.T) {
			build := models.NewAppBuildInfo(version, "N/A", "N/A")

			svc, err := NewAppInfoService(build, config.App{Version: "2.5.1"}, logger.Nop())

			require.NoError(t, err)
			assert.Equal(t, "2.5.1", svc.GetAppVersion(context.Background()))
		})
	}
}

func TestNewAppInfoService_EmptyVersion_ReturnsError(t *testing.T) {
	svc, err := NewAppInfoService(models.NewAppBuildInfo("", "", ""), config.App{}, logger.Nop())

	assert.Nil(t, svc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVersionIsNotSpecified))
}

// ─────────────────────────────────────────────
// GetBuildInfo
// ─────────────────────────────────────────────

func TestGetBuildInfo_ReturnsAllFields(t *testing.T) {
	build := models.NewAppBuildInfo("v1.2.3-beta+build.42", "2026-03-01", "deadbeef")
	svc, err := NewAppInfoService(build, config.App{}, logger.Nop())
	require.NoError(t, err)

	info := svc.GetBuildInfo(context.Background())

	assert.Equal(t, models.BuildInfo{Version: "v1.2.3-beta+build.42", Date: "2026-03-01", Commit: "deadbeef"}, info)
}

func TestGetAppVersion_CancelledContext_StillReturnsVersion(t *testing.T) {
	svc, err := NewAppInfoService(models.NewAppBuildInfo("1.0.0", "", ""), config.App{}, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, "1.0.0", svc.GetAppVersion(ctx))
}
