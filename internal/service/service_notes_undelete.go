// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/becca"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
)

// UndeleteNote restores the rows deleted under the delete id of the note:
// its branches whose parent is alive, the note, its attributes and incoming
// relations, its attachments and, recursively, its child branches.
//
// Returns:
//   - a NotFoundError if no note row with noteID exists.
//   - a ValidationError if the note is not deleted or all its parents are.
func (s *noteService) UndeleteNote(ctx context.Context, noteID string) error {
	log := logger.FromContext(ctx).With().Str("func", "noteService.UndeleteNote").Str("noteId", noteID).Logger()

	row, err := s.undelete.GetNote(ctx, noteID)
	if errors.Is(err, store.ErrNotFound) {
		return &becca.NotFoundError{Entity: models.EntityNotes, ID: noteID}
	}
	if err != nil {
		return err
	}
	if !row.IsDeleted {
		return &becca.ValidationError{Msg: fmt.Sprintf("note '%s' is not deleted", noteID)}
	}

	parentBranchIDs, err := s.undelete.GetDeletedParentBranchIDs(ctx, noteID, row.DeleteID)
	if err != nil {
		return err
	}
	if len(parentBranchIDs) == 0 {
		return &becca.ValidationError{Msg: fmt.Sprintf("cannot undelete note '%s' because all its parents are deleted", noteID)}
	}

	err = inTransaction(ctx, s.graph, func(ctx context.Context) error {
		for _, branchID := range parentBranchIDs {
			if err := s.undeleteBranch(ctx, branchID, row.DeleteID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Err(err).Msg("undelete failed")
		return err
	}

	log.Info().Str("deleteId", row.DeleteID).Msg("note undeleted")
	return nil
}

func (s *noteService) undeleteBranch(ctx context.Context, branchID, deleteID string) error {
	branchRow, err := s.undelete.GetBranch(ctx, branchID)
	if err != nil {
		return err
	}
	if !branchRow.IsDeleted {
		return nil
	}

	noteRow, err := s.undelete.GetNote(ctx, branchRow.NoteID)
	if err != nil {
		return err
	}
	// the note went away in another deletion and stays deleted
	if noteRow.IsDeleted && noteRow.DeleteID != deleteID {
		return nil
	}

	if err = s.graph.NewBranch(branchRow).Save(ctx); err != nil {
		return err
	}
	if !noteRow.IsDeleted {
		return nil
	}

	if err = s.graph.NoteFromRow(ctx, noteRow).Save(ctx); err != nil {
		return err
	}

	attributes, err := s.undelete.GetDeletedAttributes(ctx, noteRow.NoteID, deleteID)
	if err != nil {
		return err
	}
	for _, attr := range attributes {
		// incoming relations of notes further down come back with their owner
		if owner := s.graph.GetNote(attr.NoteID); owner == nil || owner.IsSkeleton() {
			continue
		}
		if err = s.graph.NewAttribute(attr).SaveWithoutValidation(ctx); err != nil {
			return err
		}
	}

	attachments, err := s.undelete.GetDeletedAttachments(ctx, noteRow.NoteID, deleteID)
	if err != nil {
		return err
	}
	for _, att := range attachments {
		if err = s.graph.AttachmentFromRow(ctx, att).Save(ctx); err != nil {
			return err
		}
	}

	childBranchIDs, err := s.undelete.GetDeletedChildBranchIDs(ctx, noteRow.NoteID, deleteID)
	if err != nil {
		return err
	}
	for _, childBranchID := range childBranchIDs {
		if err = s.undeleteBranch(ctx, childBranchID, deleteID); err != nil {
			return err
		}
	}
	return nil
}
