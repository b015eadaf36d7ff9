// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package becca

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-note-keeper/internal/crypto"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testContext() context.Context {
	return zerolog.Nop().WithContext(context.Background())
}

func testClock() time.Time {
	return testNow
}

// newTestBecca returns a graph over an empty in-memory store with the root
// and hidden notes created.
func newTestBecca(t *testing.T, opts ...GraphOption) (*Becca, *store.MemoryStore) {
	t.Helper()

	st := store.NewMemoryStore()
	b := New(st, append([]GraphOption{WithClock(testClock)}, opts...)...)
	require.NoError(t, b.InitRoot(testContext()))
	return b, st
}

// openSession returns a protected session holding a fixed data key.
func openSession() *crypto.Session {
	s := crypto.NewSession()
	s.SetDataKey(make([]byte, 32))
	return s
}

// createNote saves a text note with content and places it under parentID.
func createNote(t *testing.T, b *Becca, parentID, noteID, title string) *Note {
	t.Helper()
	ctx := testContext()

	n := b.NewNote(models.Note{NoteID: noteID, Title: title, Type: models.NoteTypeText})
	require.NoError(t, n.Save(ctx))
	require.NoError(t, n.SetContentString(ctx, "<p>"+title+"</p>"))
	cloneNote(t, b, parentID, noteID)
	return n
}

// cloneNote adds a branch placing noteID under parentID.
func cloneNote(t *testing.T, b *Becca, parentID, noteID string) *Branch {
	t.Helper()

	br := b.NewBranch(models.Branch{NoteID: noteID, ParentNoteID: parentID})
	require.NoError(t, br.Save(testContext()))
	return br
}

func addLabel(t *testing.T, n *Note, name, value string, inheritable bool) *Attribute {
	t.Helper()

	attr, err := n.AddLabel(testContext(), name, value, inheritable)
	require.NoError(t, err)
	return attr
}

func addRelation(t *testing.T, n *Note, name, target string, inheritable bool) *Attribute {
	t.Helper()

	attr, err := n.AddRelation(testContext(), name, target, inheritable)
	require.NoError(t, err)
	return attr
}

func attributeNames(attrs []*Attribute) []string {
	names := make([]string, 0, len(attrs))
	for _, a := range attrs {
		names = append(names, a.Name())
	}
	return names
}

func noteIDs(notes []*Note) []string {
	ids := make([]string, 0, len(notes))
	for _, n := range notes {
		ids = append(ids, n.ID())
	}
	return ids
}
