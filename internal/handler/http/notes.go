// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	note, err := h.materializedNote(chi.URLParam(r, "noteId"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, noteResponse(note), http.StatusOK)
}

// getNoteContent writes the raw content with the note's mime type.
func (h *Handler) getNoteContent(w http.ResponseWriter, r *http.Request) {
	note, err := h.materializedNote(chi.URLParam(r, "noteId"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	content, err := note.Content(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteContent(w, note.Mime(), content)
}

func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	var req models.CreateNoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	note, branch, err := h.services.NoteService.CreateNote(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.NoteWithBranch{Note: note.Row(), Branch: branch.Row()}, http.StatusCreated)
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	if err := h.services.NoteService.DeleteNote(r.Context(), chi.URLParam(r, "noteId")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) undeleteNote(w http.ResponseWriter, r *http.Request) {
	noteID := chi.URLParam(r, "noteId")
	if err := h.services.NoteService.UndeleteNote(r.Context(), noteID); err != nil {
		writeError(w, r, err)
		return
	}

	note, err := h.materializedNote(noteID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, noteResponse(note), http.StatusOK)
}

// cloneNote places the note under one more parent.
func (h *Handler) cloneNote(w http.ResponseWriter, r *http.Request) {
	var req models.PlaceNoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	branch, err := h.services.NoteService.CloneNoteToParent(r.Context(), chi.URLParam(r, "noteId"), req.ParentNoteID, req.Prefix)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, branch.Row(), http.StatusCreated)
}

// duplicateNote copies the whole subtree of the note under a parent.
func (h *Handler) duplicateNote(w http.ResponseWriter, r *http.Request) {
	var req models.PlaceNoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	note, branch, err := h.services.NoteService.DuplicateSubtree(r.Context(), chi.URLParam(r, "noteId"), req.ParentNoteID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.NoteWithBranch{Note: note.Row(), Branch: branch.Row()}, http.StatusCreated)
}
