// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-note-keeper/internal/becca"
	"github.com/MKhiriev/go-note-keeper/models"
)

// decodeJSON reads the request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequestBody, err)
	}
	return nil
}

// materializedNote returns the note or a NotFoundError for ids only known as
// placeholders.
func (h *Handler) materializedNote(noteID string) (*becca.Note, error) {
	note, err := h.graph.GetNoteOrThrow(noteID)
	if err != nil {
		return nil, err
	}
	if note.IsSkeleton() {
		return nil, &becca.NotFoundError{Entity: models.EntityNotes, ID: noteID}
	}
	return note, nil
}

func noteResponse(note *becca.Note) models.NoteResponse {
	row := note.Row()
	resp := models.NoteResponse{
		NoteID:          row.NoteID,
		Title:           note.Title(),
		Type:            row.Type,
		Mime:            row.Mime,
		IsProtected:     row.IsProtected,
		BlobID:          row.BlobID,
		DateCreated:     row.DateCreated,
		DateModified:    row.DateModified,
		UTCDateCreated:  row.UTCDateCreated,
		UTCDateModified: row.UTCDateModified,
		ParentNoteIDs:   []string{},
		ChildNoteIDs:    []string{},
		ParentBranchIDs: []string{},
		ChildBranchIDs:  []string{},
		Attributes:      []models.Attribute{},
	}

	for _, branch := range note.ParentBranches() {
		resp.ParentBranchIDs = append(resp.ParentBranchIDs, branch.ID())
		resp.ParentNoteIDs = append(resp.ParentNoteIDs, branch.ParentNoteID())
	}
	for _, branch := range note.ChildBranches() {
		resp.ChildBranchIDs = append(resp.ChildBranchIDs, branch.ID())
		resp.ChildNoteIDs = append(resp.ChildNoteIDs, branch.NoteID())
	}
	for _, attribute := range note.OwnedAttributes("", "") {
		resp.Attributes = append(resp.Attributes, attribute.Row())
	}

	return resp
}
