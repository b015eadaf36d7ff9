// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-note-keeper/internal/utils"
)

func (h *Handler) getAttribute(w http.ResponseWriter, r *http.Request) {
	attribute, err := h.graph.GetAttributeOrThrow(chi.URLParam(r, "attributeId"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, attribute.Row(), http.StatusOK)
}
