// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-note-keeper/internal/becca"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/service"
)

type Handler struct {
	services *service.Services

	// graph answers read requests.
	graph *becca.Becca

	// push serves the websocket endpoint.
	push http.Handler

	logger *logger.Logger
}

func NewHandler(services *service.Services, graph *becca.Becca, push http.Handler, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		graph:    graph,
		push:     push,
		logger:   logger,
	}
}
