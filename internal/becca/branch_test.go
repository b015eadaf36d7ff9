// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package becca

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-note-keeper/models"
)

func TestDeleteBranch_Cascade(t *testing.T) {
	b, st := newTestBecca(t)
	ctx := testContext()

	createNote(t, b, models.RootNoteID, "P", "Parent")
	createNote(t, b, models.RootNoteID, "Other", "Other parent")
	n := createNote(t, b, "P", "N", "Doomed")
	createNote(t, b, models.RootNoteID, "_share", "Shared")
	cloneNote(t, b, "_share", "N")

	onlyChild := createNote(t, b, "N", "C1", "Only child")
	survivor := createNote(t, b, "N", "C2", "Survivor")
	cloneNote(t, b, "Other", "C2")

	owned := addLabel(t, n, "owned", "", false)
	incoming := addRelation(t, b.GetNote("Other"), "link", "N", false)
	att, err := n.SaveAttachment(ctx, models.Attachment{Role: models.AttachmentRoleFile, Mime: "text/plain", Title: "a.txt"}, []byte("attached"))
	require.NoError(t, err)

	deleted, err := b.GetBranch("P_N").DeleteBranch(ctx, "")
	require.NoError(t, err)
	assert.True(t, deleted)

	assert.Nil(t, b.GetNote("N"))
	assert.True(t, n.IsBeingDeleted())
	assert.Nil(t, b.GetBranch("P_N"))
	assert.Nil(t, b.GetBranch("_share_N"))
	assert.Nil(t, b.GetNote("C1"))
	assert.True(t, onlyChild.IsBeingDeleted())
	assert.Nil(t, b.GetAttribute(owned.ID()))
	assert.Nil(t, b.GetAttribute(incoming.ID()))

	assert.Same(t, survivor, b.GetNote("C2"))
	assert.Equal(t, []string{"Other"}, noteIDs(survivor.Parents()))
	assert.Nil(t, b.GetBranch("N_C2"))

	noteRow, err := st.GetNote(ctx, "N")
	require.NoError(t, err)
	assert.True(t, noteRow.IsDeleted)
	deleteID := noteRow.DeleteID
	require.NotEmpty(t, deleteID)

	for _, id := range []string{"P_N", "_share_N", "N_C1", "N_C2"} {
		row, err := st.GetBranch(ctx, id)
		require.NoError(t, err, id)
		assert.True(t, row.IsDeleted, id)
		assert.Equal(t, deleteID, row.DeleteID, id)
	}
	child, err := st.GetNote(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, deleteID, child.DeleteID)

	attrs, err := st.GetDeletedAttributes(ctx, "N", deleteID)
	require.NoError(t, err)
	assert.Len(t, attrs, 2)

	deletedAtts, err := st.GetDeletedAttachments(ctx, "N", deleteID)
	require.NoError(t, err)
	require.Len(t, deletedAtts, 1)
	assert.Equal(t, att.AttachmentID, deletedAtts[0].AttachmentID)

	change, err := st.GetEntityChange(ctx, models.EntityNotes, "N")
	require.NoError(t, err)
	assert.Equal(t, n.hash(true), change.Hash)
}

func TestDeleteBranch_CloneKeepsNote(t *testing.T) {
	b, _ := newTestBecca(t)
	ctx := testContext()
	createNote(t, b, models.RootNoteID, "A", "A")
	createNote(t, b, models.RootNoteID, "B", "B")
	n := createNote(t, b, "A", "N", "N")
	cloneNote(t, b, "B", "N")

	deleted, err := b.GetBranch("A_N").DeleteBranch(ctx, "")
	require.NoError(t, err)

	assert.False(t, deleted)
	assert.Same(t, n, b.GetNote("N"))
	assert.Equal(t, []string{"B"}, noteIDs(n.Parents()))
	assert.Equal(t, [][]string{{"root", "B", "N"}}, n.AllNotePaths())
}

func TestDeleteBranch_RootAndHoistedAreProtected(t *testing.T) {
	b, _ := newTestBecca(t)
	createNote(t, b, models.RootNoteID, "H", "Hoisted")

	_, err := b.GetBranch("none_root").DeleteBranch(testContext(), "")
	assert.ErrorIs(t, err, ErrValidation)

	ctx := WithHoistedNoteID(testContext(), "H")
	_, err = b.GetBranch("root_H").DeleteBranch(ctx, "")
	assert.ErrorIs(t, err, ErrValidation)
	assert.NotNil(t, b.GetNote("H"))
	assert.NotNil(t, b.GetBranch("root_H"))
}

func TestDeleteBranch_WeakBranchOfHoistedIsProtected(t *testing.T) {
	b, _ := newTestBecca(t)
	createNote(t, b, models.RootNoteID, "_share", "Shared")
	createNote(t, b, models.RootNoteID, "H", "Hoisted")
	cloneNote(t, b, "_share", "H")

	ctx := WithHoistedNoteID(testContext(), "H")
	require.True(t, b.GetBranch("_share_H").IsWeak())
	_, err := b.GetBranch("_share_H").DeleteBranch(ctx, "")
	assert.ErrorIs(t, err, ErrValidation)
	assert.NotNil(t, b.GetBranch("_share_H"))
}

func TestDeleteBranch_WeakBranchOnlyDeletesEdge(t *testing.T) {
	b, _ := newTestBecca(t)
	createNote(t, b, models.RootNoteID, "_lbBookmarks", "Bookmarks")
	n := createNote(t, b, models.RootNoteID, "N", "N")
	cloneNote(t, b, "_lbBookmarks", "N")

	deleted, err := b.GetBranch("_lbBookmarks_N").DeleteBranch(testContext(), "")
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Same(t, n, b.GetNote("N"))
	assert.Nil(t, b.GetBranch("_lbBookmarks_N"))
	assert.False(t, b.GetBranch("root_N").IsWeak())
}
