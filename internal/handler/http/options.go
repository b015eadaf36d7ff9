// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

func (h *Handler) getOption(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	value, err := h.services.OptionService.OptionValue(r.Context(), name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.OptionResponse{Name: name, Value: value}, http.StatusOK)
}

func (h *Handler) setOption(w http.ResponseWriter, r *http.Request) {
	var req models.OptionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	name := chi.URLParam(r, "name")
	if err := h.services.OptionService.SetOption(r.Context(), name, req.Value); err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.OptionResponse{Name: name, Value: req.Value}, http.StatusOK)
}
