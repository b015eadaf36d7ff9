// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-note-keeper/models"
)

// setPassword creates the protected session data key. It can be called once.
func (h *Handler) setPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ProtectedSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.ProtectedSessionService.SetPassword(r.Context(), req.Password); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) enterProtectedSession(w http.ResponseWriter, r *http.Request) {
	var req models.ProtectedSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.ProtectedSessionService.Enter(r.Context(), req.Password); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) leaveProtectedSession(w http.ResponseWriter, r *http.Request) {
	if err := h.services.ProtectedSessionService.Leave(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
