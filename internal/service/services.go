// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-note-keeper/internal/becca"
	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
)

type Services struct {
	NoteService             NoteService
	TokenService            TokenService
	OptionService           OptionService
	ProtectedSessionService ProtectedSessionService
	AppInfoService          AppInfoService
}

func NewServices(graph *becca.Becca, st store.Store, session SessionKeeper, cfg config.StructuredConfig, build models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	tokenService, err := NewTokenService(graph, cfg.App, logger)
	if err != nil {
		return nil, err
	}
	appInfoService, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		NoteService:             NewNoteService(graph, st, cfg.App, logger),
		TokenService:            tokenService,
		OptionService:           NewOptionService(graph, logger),
		ProtectedSessionService: NewProtectedSessionService(graph, session, cfg.Security, logger),
		AppInfoService:          appInfoService,
	}, nil
}
