// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

// createToken returns the new auth token. It is shown only in this response.
func (h *Handler) createToken(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTokenRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	authToken, err := h.services.TokenService.CreateToken(r.Context(), req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.CreateTokenResponse{AuthToken: authToken}, http.StatusCreated)
}

func (h *Handler) renameToken(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTokenRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.TokenService.RenameToken(r.Context(), chi.URLParam(r, "tokenId"), req.Name); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteToken(w http.ResponseWriter, r *http.Request) {
	if err := h.services.TokenService.DeleteToken(r.Context(), chi.URLParam(r, "tokenId")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
