package http

import (
	"net/http"
	"testing"

	"github.com/MKhiriev/traveltrek/internal/service"
	"github.com/MKhiriev/traveltrek/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetServerVersion(t *testing.T) {
	info := models.NewAppBuildInfo("v1.4.0", "2026-03-01", "a1b2c3d").View()
	h := newTestHandler(t, &service.Services{AppInfoService: &mockAppInfoService{info: info}})

	rec := serve(t, h, http.MethodGet, "/api/version", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, info, decodeBody[models.BuildInfo](t, rec))
}
