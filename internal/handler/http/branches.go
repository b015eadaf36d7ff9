// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

func (h *Handler) getBranch(w http.ResponseWriter, r *http.Request) {
	branch, err := h.graph.GetBranchOrThrow(chi.URLParam(r, "branchId"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, branch.Row(), http.StatusOK)
}

// deleteBranch removes one placement. The note goes with it when this was
// its last strong branch.
func (h *Handler) deleteBranch(w http.ResponseWriter, r *http.Request) {
	noteDeleted, err := h.services.NoteService.DeleteBranch(r.Context(), chi.URLParam(r, "branchId"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.DeleteBranchResponse{NoteDeleted: noteDeleted}, http.StatusOK)
}

func (h *Handler) moveBranch(w http.ResponseWriter, r *http.Request) {
	var req models.PlaceNoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	branch, err := h.services.NoteService.MoveBranch(r.Context(), chi.URLParam(r, "branchId"), req.ParentNoteID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, branch.Row(), http.StatusOK)
}
