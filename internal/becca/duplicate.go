// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package becca

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-note-keeper/internal/crypto"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

const duplicateTitleSuffix = " (dup)"

// DuplicateSubtree copies the note and everything below it under
// newParentNoteID. Relations and links between copied notes point at the
// copies. A note cloned several times inside the subtree is copied once and
// gets one branch per placement.
func (b *Becca) DuplicateSubtree(ctx context.Context, noteID, newParentNoteID string) (*Note, *Branch, error) {
	if noteID == models.RootNoteID {
		return nil, nil, validationf("duplicating the root note is forbidden")
	}

	orig, err := b.GetNoteOrThrow(noteID)
	if err != nil {
		return nil, nil, err
	}
	if _, err := b.GetNoteOrThrow(newParentNoteID); err != nil {
		return nil, nil, err
	}

	var origBranch *Branch
	if branches := orig.ParentBranches(); len(branches) > 0 {
		origBranch = branches[0]
	}

	mapping := make(map[string]string)
	for _, id := range orig.DescendantNoteIDs() {
		mapping[id] = utils.NewEntityID()
	}
	if _, inside := mapping[newParentNoteID]; inside {
		return nil, nil, validationf("cannot duplicate note '%s' into its own subtree '%s'", noteID, newParentNoteID)
	}

	var (
		note   *Note
		branch *Branch
	)
	err = b.Transactional(ctx, func(ctx context.Context) error {
		d := duplicator{b: b, mapping: mapping, replacer: newIDReplacer(mapping)}
		var err error
		note, branch, err = d.duplicate(ctx, orig, origBranch, newParentNoteID)
		if err != nil {
			return err
		}

		if title := note.Title(); !strings.HasSuffix(title, duplicateTitleSuffix) {
			note.Update(func(row *models.Note) { row.Title = title + duplicateTitleSuffix })
			return note.Save(ctx)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return note, branch, nil
}

func newIDReplacer(mapping map[string]string) *strings.Replacer {
	pairs := make([]string, 0, 2*len(mapping))
	for _, id := range sortedKeys(mapping) {
		pairs = append(pairs, id, mapping[id])
	}
	return strings.NewReplacer(pairs...)
}

type duplicator struct {
	b        *Becca
	mapping  map[string]string
	replacer *strings.Replacer
}

func (d duplicator) duplicate(ctx context.Context, orig *Note, origBranch *Branch, parentNoteID string) (*Note, *Branch, error) {
	if orig.IsProtected() && !d.b.session.IsProtectedSessionAvailable() {
		return nil, nil, crypto.ErrProtectedSessionUnavailable
	}

	newNoteID := d.mapping[orig.ID()]

	row := models.Branch{NoteID: newNoteID, ParentNoteID: parentNoteID}
	if origBranch != nil {
		ob := origBranch.Row()
		row.Prefix = ob.Prefix
		row.IsExpanded = ob.IsExpanded
		row.NotePosition = ob.NotePosition + 1
	}
	branch := d.b.NewBranch(row)

	if existing := d.b.GetNote(newNoteID); existing != nil && !existing.IsSkeleton() {
		if err := branch.Save(ctx); err != nil {
			return nil, nil, err
		}
		return existing, branch, nil
	}

	if err := branch.Save(ctx); err != nil {
		return nil, nil, err
	}
	note, err := d.copyNote(ctx, orig, newNoteID)
	if err != nil {
		return nil, nil, err
	}
	return note, branch, nil
}

func (d duplicator) copyNote(ctx context.Context, orig *Note, newNoteID string) (*Note, error) {
	src := orig.Row()
	note := d.b.NewNote(models.Note{
		NoteID:      newNoteID,
		Title:       orig.Title(),
		IsProtected: src.IsProtected,
		Type:        src.Type,
		Mime:        src.Mime,
	})
	if err := note.Save(ctx); err != nil {
		return nil, err
	}

	content, err := orig.Content(ctx)
	if err != nil {
		return nil, err
	}
	switch src.Type {
	case models.NoteTypeText, models.NoteTypeRelationMap, models.NoteTypeSearch:
		content = []byte(d.replacer.Replace(string(content)))
	}
	if err := note.SetContent(ctx, content, ForceSave()); err != nil {
		return nil, err
	}

	for _, attr := range orig.OwnedAttributes("", "") {
		row := attr.Row()
		row.AttributeID = ""
		row.NoteID = newNoteID
		row.IsDeleted = false
		row.DeleteID = ""
		if mapped, ok := d.mapping[row.Value]; ok && row.Type == models.AttributeRelation {
			row.Value = mapped
		}
		if err := d.b.NewAttribute(row).SaveWithoutValidation(ctx); err != nil {
			return nil, err
		}
	}

	for _, child := range orig.ChildBranches() {
		childNote := child.Note()
		if childNote == nil {
			continue
		}
		if _, _, err := d.duplicate(ctx, childNote, child, newNoteID); err != nil {
			return nil, err
		}
	}
	return note, nil
}
