// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-note-keeper/internal/becca"
	"github.com/MKhiriev/go-note-keeper/internal/crypto"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
)

// ─────────────────────────────────────────────
// CreateNote
// ─────────────────────────────────────────────

func TestCreateNote_SavesNoteContentAndBranch(t *testing.T) {
	svc, graph, st := newTestNoteService(t)
	ctx := testContext()

	note, branch, err := svc.CreateNote(ctx, models.CreateNoteRequest{
		ParentNoteID: models.RootNoteID,
		Title:        "Groceries",
		Content:      "<p>milk</p>",
		Prefix:       "  list ",
	})
	require.NoError(t, err)

	assert.Same(t, note, graph.GetNote(note.ID()))
	assert.Equal(t, models.NoteTypeText, note.Type())
	assert.Equal(t, "text/html", note.Mime())

	content, err := note.ContentString(ctx)
	require.NoError(t, err)
	assert.Equal(t, "<p>milk</p>", content)

	assert.Equal(t, models.BranchID(models.RootNoteID, note.ID()), branch.ID())
	assert.Equal(t, "list", branch.Prefix())
	assert.Equal(t, int64(10), branch.NotePosition())

	row, err := st.GetNote(ctx, note.ID())
	require.NoError(t, err)
	assert.Equal(t, "Groceries", row.Title)
	assert.NotEmpty(t, row.BlobID)
}

func TestCreateNote_Defaults(t *testing.T) {
	svc, _, _ := newTestNoteService(t)

	first, firstBranch, err := svc.CreateNote(testContext(), models.CreateNoteRequest{ParentNoteID: models.RootNoteID})
	require.NoError(t, err)
	_, secondBranch, err := svc.CreateNote(testContext(), models.CreateNoteRequest{
		ParentNoteID: models.RootNoteID,
		Type:         models.NoteTypeCode,
	})
	require.NoError(t, err)

	assert.Equal(t, "new note", first.Title())
	assert.Equal(t, int64(10), firstBranch.NotePosition())
	assert.Equal(t, int64(20), secondBranch.NotePosition())
	assert.Equal(t, "text/plain", secondBranch.Note().Mime())
}

func TestCreateNote_CopiesChildAttributes(t *testing.T) {
	svc, _, _ := newTestNoteService(t)
	ctx := testContext()

	tpl := mustCreate(t, svc, models.RootNoteID, "tpl", "Template")
	parent := mustCreate(t, svc, models.RootNoteID, "parent", "Parent")
	_, err := parent.AddLabel(ctx, "child:color", "red", false)
	require.NoError(t, err)
	_, err = parent.AddLabel(ctx, "sorted", "", false)
	require.NoError(t, err)
	_, err = parent.AddRelation(ctx, "child:template", tpl.ID(), false)
	require.NoError(t, err)

	child := mustCreate(t, svc, parent.ID(), "child", "Child")

	assert.Equal(t, "red", child.OwnedLabelValue("color"))
	assert.False(t, child.HasOwnedLabel("sorted"))
	assert.False(t, child.HasOwnedLabel("child:color"))
	assert.Same(t, tpl, child.OwnedRelationTarget("template"))
}

func TestCreateNote_Rejections(t *testing.T) {
	svc, graph, _ := newTestNoteService(t)
	ctx := testContext()

	_, _, err := svc.CreateNote(ctx, models.CreateNoteRequest{
		ParentNoteID: models.RootNoteID,
		NoteID:       "search",
		Type:         models.NoteTypeSearch,
	})
	require.NoError(t, err)
	mustCreate(t, svc, models.RootNoteID, "_options", "Options")

	tests := []struct {
		name    string
		req     models.CreateNoteRequest
		wantErr error
	}{
		{
			name:    "missing parent",
			req:     models.CreateNoteRequest{ParentNoteID: "nope"},
			wantErr: becca.ErrNotFound,
		},
		{
			name:    "search parent",
			req:     models.CreateNoteRequest{ParentNoteID: "search"},
			wantErr: becca.ErrValidation,
		},
		{
			name:    "forbidden parent",
			req:     models.CreateNoteRequest{ParentNoteID: "_options"},
			wantErr: becca.ErrValidation,
		},
		{
			name:    "unknown type",
			req:     models.CreateNoteRequest{ParentNoteID: models.RootNoteID, Type: "spreadsheet"},
			wantErr: becca.ErrValidation,
		},
		{
			name:    "protected without session",
			req:     models.CreateNoteRequest{ParentNoteID: models.RootNoteID, IsProtected: true},
			wantErr: crypto.ErrProtectedSessionUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(graph.AllNoteSet().NoteIDs())

			_, _, err := svc.CreateNote(ctx, tt.req)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Len(t, graph.AllNoteSet().NoteIDs(), before)
		})
	}
}

func TestCreateNote_FailedWriteRollsBackAndReloads(t *testing.T) {
	svc, graph, st := newTestNoteService(t)
	ctx := testContext()
	st.failTable = models.EntityBranches

	_, _, err := svc.CreateNote(ctx, models.CreateNoteRequest{ParentNoteID: models.RootNoteID, NoteID: "lost"})

	require.ErrorIs(t, err, errInjected)
	assert.Nil(t, graph.GetNote("lost"))
	assert.True(t, graph.Loaded())
	_, err = st.GetNote(ctx, "lost")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.NotNil(t, graph.RootNote())
}

// ─────────────────────────────────────────────
// DeleteBranch / DeleteNote
// ─────────────────────────────────────────────

func TestDeleteBranch_KeepsClonedNote(t *testing.T) {
	svc, graph, _ := newTestNoteService(t)
	ctx := testContext()

	folder := mustCreate(t, svc, models.RootNoteID, "folder", "Folder")
	note := mustCreate(t, svc, models.RootNoteID, "note", "Note")
	_, err := svc.CloneNoteToParent(ctx, note.ID(), folder.ID(), "")
	require.NoError(t, err)

	deleted, err := svc.DeleteBranch(ctx, models.BranchID(models.RootNoteID, note.ID()))
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NotNil(t, graph.GetNote(note.ID()))

	deleted, err = svc.DeleteBranch(ctx, models.BranchID(folder.ID(), note.ID()))
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Nil(t, graph.GetNote(note.ID()))
}

func TestDeleteBranch_UnknownBranch(t *testing.T) {
	svc, _, _ := newTestNoteService(t)

	_, err := svc.DeleteBranch(testContext(), "root_nope")

	assert.ErrorIs(t, err, becca.ErrNotFound)
}

func TestDeleteNote_RemovesEveryPlacementWithOneDeleteID(t *testing.T) {
	svc, graph, st := newTestNoteService(t)
	ctx := testContext()

	folder := mustCreate(t, svc, models.RootNoteID, "folder", "Folder")
	note := mustCreate(t, svc, models.RootNoteID, "note", "Note")
	_, err := svc.CloneNoteToParent(ctx, note.ID(), folder.ID(), "")
	require.NoError(t, err)
	mustCreate(t, svc, graph.HiddenRootID(), "_share", "Shared Notes")
	_, err = svc.CloneNoteToParent(ctx, note.ID(), "_share", "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteNote(ctx, note.ID()))

	assert.Nil(t, graph.GetNote(note.ID()))
	assert.Empty(t, folder.Children())

	row, err := st.GetNote(ctx, note.ID())
	require.NoError(t, err)
	require.True(t, row.IsDeleted)
	for _, parentID := range []string{models.RootNoteID, folder.ID(), "_share"} {
		branch, err := st.GetBranch(ctx, models.BranchID(parentID, note.ID()))
		require.NoError(t, err)
		assert.True(t, branch.IsDeleted, parentID)
		assert.Equal(t, row.DeleteID, branch.DeleteID, parentID)
	}
}

func TestDeleteNote_Root(t *testing.T) {
	svc, graph, _ := newTestNoteService(t)

	err := svc.DeleteNote(testContext(), models.RootNoteID)

	assert.ErrorIs(t, err, becca.ErrValidation)
	assert.NotNil(t, graph.RootNote())
}

// ─────────────────────────────────────────────
// DuplicateSubtree
// ─────────────────────────────────────────────

func TestDuplicateSubtree_CopiesUnderParent(t *testing.T) {
	svc, _, _ := newTestNoteService(t)
	ctx := testContext()

	orig := mustCreate(t, svc, models.RootNoteID, "orig", "Project")
	mustCreate(t, svc, orig.ID(), "task", "Task")

	dup, branch, err := svc.DuplicateSubtree(ctx, orig.ID(), models.RootNoteID)
	require.NoError(t, err)

	assert.NotEqual(t, orig.ID(), dup.ID())
	assert.Equal(t, "Project (dup)", dup.Title())
	assert.Equal(t, models.RootNoteID, branch.ParentNoteID())
	require.Len(t, dup.Children(), 1)
	assert.Equal(t, "Task", dup.Children()[0].Title())
}

func TestDuplicateSubtree_Root(t *testing.T) {
	svc, _, _ := newTestNoteService(t)

	_, _, err := svc.DuplicateSubtree(testContext(), models.RootNoteID, models.RootNoteID)

	assert.ErrorIs(t, err, becca.ErrValidation)
}

// ─────────────────────────────────────────────
// CloneNoteToParent / MoveBranch
// ─────────────────────────────────────────────

func TestCloneNoteToParent(t *testing.T) {
	svc, graph, _ := newTestNoteService(t)
	ctx := testContext()

	a := mustCreate(t, svc, models.RootNoteID, "a", "A")
	b := mustCreate(t, svc, models.RootNoteID, "b", "B")
	c := mustCreate(t, svc, a.ID(), "c", "C")
	_, _, err := svc.CreateNote(ctx, models.CreateNoteRequest{
		ParentNoteID: models.RootNoteID,
		NoteID:       "search",
		Type:         models.NoteTypeSearch,
	})
	require.NoError(t, err)

	branch, err := svc.CloneNoteToParent(ctx, a.ID(), b.ID(), "alias")
	require.NoError(t, err)
	assert.Equal(t, "b_a", branch.ID())
	assert.Equal(t, "alias", branch.Prefix())
	assert.ElementsMatch(t, []string{"root", "b"}, []string{a.Parents()[0].ID(), a.Parents()[1].ID()})

	tests := []struct {
		name     string
		noteID   string
		parentID string
		wantErr  error
	}{
		{name: "into itself", noteID: a.ID(), parentID: a.ID(), wantErr: becca.ErrValidation},
		{name: "into own child", noteID: a.ID(), parentID: c.ID(), wantErr: becca.ErrValidation},
		{name: "under a clone of itself", noteID: b.ID(), parentID: c.ID(), wantErr: becca.ErrValidation},
		{name: "already there", noteID: a.ID(), parentID: b.ID(), wantErr: becca.ErrValidation},
		{name: "search parent", noteID: c.ID(), parentID: "search", wantErr: becca.ErrValidation},
		{name: "missing note", noteID: "nope", parentID: b.ID(), wantErr: becca.ErrNotFound},
		{name: "missing parent", noteID: c.ID(), parentID: "nope", wantErr: becca.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CloneNoteToParent(ctx, tt.noteID, tt.parentID, "")

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Nil(t, graph.GetBranchFromChildAndParent(b.ID(), c.ID()))
}

func TestMoveBranch(t *testing.T) {
	svc, graph, st := newTestNoteService(t)
	ctx := testContext()

	a := mustCreate(t, svc, models.RootNoteID, "a", "A")
	b := mustCreate(t, svc, models.RootNoteID, "b", "B")
	old, err := svc.CloneNoteToParent(ctx, a.ID(), b.ID(), "pinned")
	require.NoError(t, err)
	target := mustCreate(t, svc, models.RootNoteID, "target", "Target")

	moved, err := svc.MoveBranch(ctx, old.ID(), target.ID())
	require.NoError(t, err)

	assert.Equal(t, "target_a", moved.ID())
	assert.Equal(t, "pinned", moved.Prefix())
	assert.Nil(t, graph.GetBranch(old.ID()))
	assert.Empty(t, b.Children())
	assert.Same(t, a, target.Children()[0])

	row, err := st.GetBranch(ctx, old.ID())
	require.NoError(t, err)
	assert.True(t, row.IsDeleted)
	assert.NotNil(t, graph.GetNote(a.ID()), "moving must not delete the note")
}

func TestMoveBranch_SameParentIsNoop(t *testing.T) {
	svc, _, _ := newTestNoteService(t)
	a := mustCreate(t, svc, models.RootNoteID, "a", "A")
	branch := a.ParentBranches()[0]

	moved, err := svc.MoveBranch(testContext(), branch.ID(), models.RootNoteID)

	require.NoError(t, err)
	assert.Same(t, branch, moved)
}

func TestMoveBranch_Rejections(t *testing.T) {
	svc, graph, _ := newTestNoteService(t)
	ctx := testContext()

	a := mustCreate(t, svc, models.RootNoteID, "a", "A")
	c := mustCreate(t, svc, a.ID(), "c", "C")

	_, err := svc.MoveBranch(ctx, "root_a", c.ID())
	assert.ErrorIs(t, err, becca.ErrValidation)

	_, err = svc.MoveBranch(ctx, "root_nope", c.ID())
	assert.ErrorIs(t, err, becca.ErrNotFound)

	_, err = svc.MoveBranch(ctx, "root_a", "nope")
	assert.ErrorIs(t, err, becca.ErrNotFound)

	assert.NotNil(t, graph.GetBranch("root_a"))
}
