// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
)

// ─────────────────────────────────────────────
// NewAppInfoService
// ─────────────────────────────────────────────

func TestNewAppInfoService_Success(t *testing.T) {
	cfg := config.App{Version: "1.0.0"}

	svc, err := NewAppInfoService(cfg, models.AppBuildInfo{}, logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, svc)
}

func TestNewAppInfoService_EmptyVersion_ReturnsError(t *testing.T) {
	cfg := config.App{Version: ""}

	svc, err := NewAppInfoService(cfg, models.NewAppBuildInfo("1.0.0", "", ""), logger.Nop())

	assert.Nil(t, svc)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrVersionIsNotSpecified)
}

// ─────────────────────────────────────────────
// GetAppInfo
// ─────────────────────────────────────────────

func TestGetAppInfo_ReturnsConfiguredVersionAndBuild(t *testing.T) {
	cfg := config.App{Version: "3.1.4"}
	svc, err := NewAppInfoService(cfg, models.NewAppBuildInfo("ignored", "2026-03-01", "deadbeef"), logger.Nop())
	require.NoError(t, err)
	svc.(*appInfoService).now = testClock

	got := svc.GetAppInfo(context.Background())

	assert.Equal(t, models.AppInfo{
		AppVersion:    "3.1.4",
		BuildDate:     "2026-03-01",
		BuildRevision: "deadbeef",
		UTCDateTime:   models.UTCDateTime(testClock()),
	}, got)
}
