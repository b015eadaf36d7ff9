// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package becca

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

// Branch places a note under a parent note. Its id is always
// parentNoteId_noteId.
type Branch struct {
	b   *Becca
	row models.Branch
}

// NewBranch returns an unsaved branch. A zero NotePosition is replaced on
// save by the next free slot under the parent.
func (b *Becca) NewBranch(row models.Branch) *Branch {
	row.BranchID = models.BranchID(row.ParentNoteID, row.NoteID)
	return &Branch{b: b, row: row}
}

// branchFromRow wraps a stored row.
func (b *Becca) branchFromRow(row models.Branch) *Branch {
	return &Branch{b: b, row: row}
}

func sortBranches(branches []*Branch) {
	slices.SortStableFunc(branches, func(x, y *Branch) int {
		return cmp.Compare(x.row.NotePosition, y.row.NotePosition)
	})
}

func (br *Branch) EntityName() models.EntityName { return models.EntityBranches }

func (br *Branch) EntityID() string {
	br.b.mu.RLock()
	defer br.b.mu.RUnlock()

	return br.row.BranchID
}

func (br *Branch) ID() string { return br.EntityID() }

func (br *Branch) Row() models.Branch {
	br.b.mu.RLock()
	defer br.b.mu.RUnlock()

	return br.row
}

func (br *Branch) Record() models.Record { return br.Row().Record() }

func (br *Branch) NoteID() string       { return br.Row().NoteID }
func (br *Branch) ParentNoteID() string { return br.Row().ParentNoteID }
func (br *Branch) Prefix() string       { return br.Row().Prefix }
func (br *Branch) NotePosition() int64  { return br.Row().NotePosition }
func (br *Branch) IsExpanded() bool     { return br.Row().IsExpanded }

// IsWeak reports whether the parent is one of the weak containers.
func (br *Branch) IsWeak() bool {
	return br.b.IsWeakParent(br.ParentNoteID())
}

// Note returns the child note.
func (br *Branch) Note() *Note {
	return br.b.GetNote(br.NoteID())
}

// ParentNote returns the parent note, nil for the root branch.
func (br *Branch) ParentNote() *Note {
	return br.b.GetNote(br.ParentNoteID())
}

// Update applies fn to the branch row. The endpoints and id cannot change;
// moving a note means deleting the branch and creating another one.
func (br *Branch) Update(fn func(row *models.Branch)) {
	br.b.mu.Lock()
	defer br.b.mu.Unlock()

	keep := br.row
	fn(&br.row)
	br.row.BranchID, br.row.NoteID, br.row.ParentNoteID = keep.BranchID, keep.NoteID, keep.ParentNoteID
}

func (br *Branch) Hash() string {
	br.b.mu.RLock()
	defer br.b.mu.RUnlock()

	return br.hash(false)
}

func (br *Branch) hash(isDeleted bool) string {
	return entityHash(isDeleted, br.row.BranchID, br.row.NoteID, br.row.ParentNoteID, br.row.Prefix)
}

// Save registers the branch in the graph and persists it.
func (br *Branch) Save(ctx context.Context) error {
	b := br.b
	b.mu.Lock()

	if br.row.NoteID == "" || br.row.ParentNoteID == "" {
		b.mu.Unlock()
		return validationf("branch needs both noteId and parentNoteId")
	}
	br.row.BranchID = models.BranchID(br.row.ParentNoteID, br.row.NoteID)

	if br.row.NotePosition == 0 {
		var maxPosition int64
		for _, sibling := range b.childBranches[br.row.ParentNoteID] {
			if sibling != br && sibling.row.NoteID != b.hiddenRootID && sibling.row.NotePosition > maxPosition {
				maxPosition = sibling.row.NotePosition
			}
		}
		br.row.NotePosition = maxPosition + positionStep
	}
	br.row.Prefix = strings.TrimSpace(br.row.Prefix)

	utc, _ := b.timestamps()
	br.row.UTCDateModified = utc
	br.row.IsDeleted = false

	isNew := b.branches[br.row.BranchID] != br
	id, hash, record := br.row.BranchID, br.hash(false), br.row.Record()
	b.addBranch(br)
	b.mu.Unlock()

	return b.persist(ctx, write{
		entity:   br,
		table:    models.EntityBranches,
		id:       id,
		record:   record,
		hash:     hash,
		isNew:    isNew,
		isSynced: true,
		utcDate:  utc,
	})
}

// MarkAsDeleted soft-deletes only this edge.
func (br *Branch) MarkAsDeleted(ctx context.Context, deleteID string) error {
	b := br.b
	b.mu.Lock()

	utc, local := b.timestamps()
	br.row.IsDeleted = true
	br.row.DeleteID = deleteID
	br.row.UTCDateModified = utc

	id, hash := br.row.BranchID, br.hash(true)
	b.unlinkBranch(br)
	b.mu.Unlock()

	return b.markDeleted(ctx, deletion{
		entity:    br,
		table:     models.EntityBranches,
		id:        id,
		deleteID:  deleteID,
		hash:      hash,
		isSynced:  true,
		utcDate:   utc,
		localDate: local,
	})
}

// DeleteBranch removes this edge. When it was the last strong branch of the
// note, the note goes too: its weak branches, then recursively its child
// branches, then its owned attributes, incoming relations and attachments,
// and finally the note itself. Everything shares deleteID; an empty
// deleteID starts a new cascade. It reports whether the note was deleted.
func (br *Branch) DeleteBranch(ctx context.Context, deleteID string) (bool, error) {
	if deleteID == "" {
		deleteID = utils.NewUUIDGenerator().Generate()
	}

	row := br.Row()
	if row.NoteID == models.RootNoteID || row.NoteID == HoistedNoteID(ctx) {
		return false, validationf("cannot delete root or hoisted note '%s'", row.NoteID)
	}

	note := br.b.GetNote(row.NoteID)
	if note == nil {
		return false, notFound(models.EntityNotes, row.NoteID)
	}

	if err := br.MarkAsDeleted(ctx, deleteID); err != nil {
		return false, err
	}

	if len(note.StrongParentBranches()) > 0 {
		return false, nil
	}

	for _, weak := range note.ParentBranches() {
		if err := weak.MarkAsDeleted(ctx, deleteID); err != nil {
			return false, err
		}
	}

	for _, child := range note.ChildBranches() {
		if _, err := child.DeleteBranch(ctx, deleteID); err != nil {
			return false, err
		}
	}

	for _, attr := range note.OwnedAttributes("", "") {
		if err := attr.MarkAsDeleted(ctx, deleteID); err != nil {
			return false, err
		}
	}
	for _, rel := range note.TargetRelations() {
		if err := rel.MarkAsDeleted(ctx, deleteID); err != nil {
			return false, err
		}
	}

	attachments, err := note.Attachments(ctx)
	if err != nil {
		return false, err
	}
	for _, att := range attachments {
		if err := att.MarkAsDeleted(ctx, deleteID); err != nil {
			return false, err
		}
	}

	if err := note.MarkAsDeleted(ctx, deleteID); err != nil {
		return false, err
	}
	return true, nil
}
