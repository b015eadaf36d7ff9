// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-note-keeper/internal/becca"
	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
)

var errInjected = errors.New("injected failure")

func testContext() context.Context {
	return zerolog.Nop().WithContext(context.Background())
}

func testClock() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

// ─────────────────────────────────────────────
// failingStore: MemoryStore whose upserts into one table fail
// ─────────────────────────────────────────────

type failingStore struct {
	*store.MemoryStore
	failTable models.EntityName
}

func (f *failingStore) Upsert(ctx context.Context, table models.EntityName, record models.Record) error {
	if table == f.failTable {
		return errInjected
	}
	return f.MemoryStore.Upsert(ctx, table, record)
}

// newTestGraph returns a loaded graph holding the root and hidden notes.
func newTestGraph(t *testing.T, opts ...becca.GraphOption) (*becca.Becca, *failingStore) {
	t.Helper()

	st := &failingStore{MemoryStore: store.NewMemoryStore()}
	graph := becca.New(st, append([]becca.GraphOption{becca.WithClock(testClock)}, opts...)...)
	require.NoError(t, graph.InitRoot(testContext()))
	require.NoError(t, graph.Reload(testContext()))
	return graph, st
}

func newTestNoteService(t *testing.T, opts ...becca.GraphOption) (*noteService, *becca.Becca, *failingStore) {
	t.Helper()

	graph, st := newTestGraph(t, opts...)
	svc := NewNoteService(graph, st, config.Defaults.App, logger.Nop()).(*noteService)
	return svc, graph, st
}

// mustCreate creates a text note under parentID.
func mustCreate(t *testing.T, svc NoteService, parentID, noteID, title string) *becca.Note {
	t.Helper()

	note, _, err := svc.CreateNote(testContext(), models.CreateNoteRequest{
		ParentNoteID: parentID,
		NoteID:       noteID,
		Title:        title,
		Content:      "<p>" + title + "</p>",
	})
	require.NoError(t, err)
	return note
}
