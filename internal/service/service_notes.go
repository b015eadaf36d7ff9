// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/MKhiriev/go-note-keeper/internal/becca"
	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/crypto"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

const (
	defaultNoteTitle     = "new note"
	childAttributePrefix = "child:"
)

// noteService is the concrete implementation of NoteService.
type noteService struct {
	// graph is the in-memory note graph every change goes through.
	graph *becca.Becca

	// undelete reads soft-deleted rows back by their delete id.
	undelete store.UndeleteStore

	// forbiddenParents lists notes that cannot receive new children.
	forbiddenParents []string

	logger *logger.Logger
}

func NewNoteService(graph *becca.Becca, undelete store.UndeleteStore, cfg config.App, logger *logger.Logger) NoteService {
	return &noteService{
		graph:            graph,
		undelete:         undelete,
		forbiddenParents: slices.Clone(cfg.ForbiddenParents),
		logger:           logger,
	}
}

// CreateNote saves a new note with its content and branch and copies the
// "child:" attributes of the parent onto it.
//
// Returns:
//   - a NotFoundError if the parent does not exist.
//   - a ValidationError if the parent is a search note or a forbidden parent,
//     or if the type is unknown.
//   - crypto.ErrProtectedSessionUnavailable for a protected note without a
//     protected session.
func (s *noteService) CreateNote(ctx context.Context, req models.CreateNoteRequest) (*becca.Note, *becca.Branch, error) {
	log := logger.FromContext(ctx).With().Str("func", "noteService.CreateNote").Logger()

	parent, err := s.graph.GetNoteOrThrow(req.ParentNoteID)
	if err != nil {
		log.Err(err).Str("parentNoteId", req.ParentNoteID).Msg("parent note lookup failed")
		return nil, nil, err
	}
	if err = s.validateParent(parent); err != nil {
		log.Err(err).Str("parentNoteId", req.ParentNoteID).Msg("parent cannot receive notes")
		return nil, nil, err
	}

	if req.Type == "" {
		req.Type = models.NoteTypeText
	}
	if !req.Type.Valid() {
		return nil, nil, &becca.ValidationError{Msg: fmt.Sprintf("note type '%s' is not valid", req.Type)}
	}
	if strings.TrimSpace(req.Title) == "" {
		req.Title = defaultNoteTitle
	}
	if req.IsProtected && !s.graph.Session().IsProtectedSessionAvailable() {
		return nil, nil, crypto.ErrProtectedSessionUnavailable
	}

	note := s.graph.NewNote(models.Note{
		NoteID:      req.NoteID,
		Title:       req.Title,
		IsProtected: req.IsProtected,
		Type:        req.Type,
		Mime:        req.Mime,
	})
	var branch *becca.Branch

	err = inTransaction(ctx, s.graph, func(ctx context.Context) error {
		if err := note.Save(ctx); err != nil {
			return err
		}
		if err := note.SetContentString(ctx, req.Content, becca.ForceSave()); err != nil {
			return err
		}

		branch = s.graph.NewBranch(models.Branch{
			NoteID:       note.ID(),
			ParentNoteID: parent.ID(),
			Prefix:       req.Prefix,
			NotePosition: req.NotePosition,
			IsExpanded:   req.IsExpanded,
		})
		if err := branch.Save(ctx); err != nil {
			return err
		}

		return s.copyChildAttributes(ctx, parent, note)
	})
	if err != nil {
		log.Err(err).Msg("note creation failed")
		return nil, nil, err
	}

	log.Debug().Str("noteId", note.ID()).Str("parentNoteId", parent.ID()).Msg("note created")
	return note, branch, nil
}

// copyChildAttributes gives child every attribute of parent named
// "child:<name>" as <name>. A template relation is skipped when child
// already has one.
func (s *noteService) copyChildAttributes(ctx context.Context, parent, child *becca.Note) error {
	hasTemplate := child.HasRelation("template")

	for _, attr := range parent.Attributes("", "") {
		name, ok := strings.CutPrefix(attr.Name(), childAttributePrefix)
		if !ok || name == "" {
			continue
		}
		if attr.IsRelation() && name == "template" && hasTemplate {
			continue
		}

		copied := s.graph.NewAttribute(models.Attribute{
			NoteID:        child.ID(),
			Type:          attr.Type(),
			Name:          name,
			Value:         attr.Value(),
			Position:      attr.Position(),
			IsInheritable: attr.IsInheritable(),
		})
		if err := copied.Save(ctx); err != nil {
			return err
		}
	}
	return nil
}

// validateParent rejects parents that cannot hold child notes.
func (s *noteService) validateParent(parent *becca.Note) error {
	if parent.Type() == models.NoteTypeSearch {
		return &becca.ValidationError{Msg: fmt.Sprintf("cannot place notes under search note '%s'", parent.ID())}
	}
	if slices.Contains(s.forbiddenParents, parent.ID()) {
		return &becca.ValidationError{Msg: fmt.Sprintf("creating notes under '%s' is not allowed", parent.ID())}
	}
	return nil
}

// validateTarget rejects placing noteID under parent when that would make
// the note its own ancestor, or when it is already there.
func (s *noteService) validateTarget(noteID string, parent *becca.Note) error {
	if err := s.validateParent(parent); err != nil {
		return err
	}
	if parent.ID() == noteID || parent.HasAncestor(noteID) {
		return &becca.ValidationError{Msg: fmt.Sprintf("placing note '%s' under '%s' would create a cycle", noteID, parent.ID())}
	}
	if s.graph.GetBranchFromChildAndParent(noteID, parent.ID()) != nil {
		return &becca.ValidationError{Msg: fmt.Sprintf("note '%s' is already in '%s'", noteID, parent.ID())}
	}
	return nil
}

func (s *noteService) DeleteBranch(ctx context.Context, branchID string) (bool, error) {
	log := logger.FromContext(ctx).With().Str("func", "noteService.DeleteBranch").Str("branchId", branchID).Logger()

	branch, err := s.graph.GetBranchOrThrow(branchID)
	if err != nil {
		return false, err
	}

	var noteDeleted bool
	err = inTransaction(ctx, s.graph, func(ctx context.Context) error {
		var deleteErr error
		noteDeleted, deleteErr = branch.DeleteBranch(ctx, "")
		return deleteErr
	})
	if err != nil {
		log.Err(err).Msg("branch deletion failed")
		return false, err
	}
	return noteDeleted, nil
}

func (s *noteService) DeleteNote(ctx context.Context, noteID string) error {
	log := logger.FromContext(ctx).With().Str("func", "noteService.DeleteNote").Str("noteId", noteID).Logger()

	note, err := s.graph.GetNoteOrThrow(noteID)
	if err != nil {
		return err
	}

	deleteID := utils.NewUUIDGenerator().Generate()
	err = inTransaction(ctx, s.graph, func(ctx context.Context) error {
		for _, branch := range note.ParentBranches() {
			// the cascade of an earlier branch may have removed this one
			if s.graph.GetBranch(branch.ID()) != branch {
				continue
			}
			if _, err := branch.DeleteBranch(ctx, deleteID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Err(err).Msg("note deletion failed")
		return err
	}
	return nil
}

func (s *noteService) DuplicateSubtree(ctx context.Context, noteID, parentNoteID string) (*becca.Note, *becca.Branch, error) {
	var (
		note   *becca.Note
		branch *becca.Branch
	)
	err := inTransaction(ctx, s.graph, func(ctx context.Context) error {
		var err error
		note, branch, err = s.graph.DuplicateSubtree(ctx, noteID, parentNoteID)
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "noteService.DuplicateSubtree").
			Str("noteId", noteID).
			Msg("subtree duplication failed")
		return nil, nil, err
	}
	return note, branch, nil
}

// CloneNoteToParent adds another branch placing noteID under parentNoteID.
func (s *noteService) CloneNoteToParent(ctx context.Context, noteID, parentNoteID, prefix string) (*becca.Branch, error) {
	if _, err := s.graph.GetNoteOrThrow(noteID); err != nil {
		return nil, err
	}
	parent, err := s.graph.GetNoteOrThrow(parentNoteID)
	if err != nil {
		return nil, err
	}
	if err = s.validateTarget(noteID, parent); err != nil {
		return nil, err
	}

	branch := s.graph.NewBranch(models.Branch{NoteID: noteID, ParentNoteID: parentNoteID, Prefix: prefix})
	if err = inTransaction(ctx, s.graph, branch.Save); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "noteService.CloneNoteToParent").Msg("clone failed")
		return nil, err
	}
	return branch, nil
}

// MoveBranch re-parents the note of branchID. The old edge is deleted and a
// new one with the same prefix is appended under parentNoteID.
func (s *noteService) MoveBranch(ctx context.Context, branchID, parentNoteID string) (*becca.Branch, error) {
	branch, err := s.graph.GetBranchOrThrow(branchID)
	if err != nil {
		return nil, err
	}
	if branch.ParentNoteID() == parentNoteID {
		return branch, nil
	}
	parent, err := s.graph.GetNoteOrThrow(parentNoteID)
	if err != nil {
		return nil, err
	}
	if err = s.validateTarget(branch.NoteID(), parent); err != nil {
		return nil, err
	}

	moved := s.graph.NewBranch(models.Branch{
		NoteID:       branch.NoteID(),
		ParentNoteID: parentNoteID,
		Prefix:       branch.Prefix(),
		IsExpanded:   branch.IsExpanded(),
	})
	err = inTransaction(ctx, s.graph, func(ctx context.Context) error {
		if err := branch.MarkAsDeleted(ctx, utils.NewUUIDGenerator().Generate()); err != nil {
			return err
		}
		return moved.Save(ctx)
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "noteService.MoveBranch").Msg("move failed")
		return nil, err
	}
	return moved, nil
}

// inTransaction runs fn in one store transaction. The store rolls a failed
// transaction back; a loaded graph is then reloaded to match it again.
func inTransaction(ctx context.Context, graph *becca.Becca, fn func(ctx context.Context) error) error {
	err := graph.Transactional(ctx, fn)
	if err == nil || !graph.Loaded() {
		return err
	}

	if reloadErr := graph.Reload(ctx); reloadErr != nil {
		logger.FromContext(ctx).Err(reloadErr).Str("func", "inTransaction").Msg("graph reload after rollback failed")
		return fmt.Errorf("%w: %w", ErrGraphReloadFailed, err)
	}
	return err
}
