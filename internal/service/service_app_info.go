// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
)

type appInfoService struct {
	appVersion string
	build      models.AppBuildInfo

	now func() time.Time

	logger *logger.Logger
}

// NewAppInfoService reports cfg.Version as the app version. The build date
// and revision come from build.
func NewAppInfoService(cfg config.App, build models.AppBuildInfo, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion: cfg.Version,
		build:      build,
		now:        time.Now,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppInfo(ctx context.Context) models.AppInfo {
	return models.AppInfo{
		AppVersion:    s.appVersion,
		BuildDate:     s.build.BuildDate(),
		BuildRevision: s.build.BuildCommit(),
		UTCDateTime:   models.UTCDateTime(s.now()),
	}
}
