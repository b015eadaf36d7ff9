// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package becca_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-note-keeper/internal/becca"
	"github.com/MKhiriev/go-note-keeper/internal/mock"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
)

func eventOf(kind becca.EventKind, entity models.EntityName, id string) gomock.Matcher {
	return gomock.Cond(func(e becca.EntityEvent) bool {
		return e.Kind == kind && e.EntityName == entity && e.EntityID == id
	})
}

func TestChangeListener_ReceivesEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	listener := mock.NewMockChangeListener(ctrl)
	ctx := zerolog.Nop().WithContext(context.Background())

	b := becca.New(store.NewMemoryStore())
	b.AddChangeListener(listener)

	note := b.NewNote(models.Note{NoteID: "N", Title: "Note", Type: models.NoteTypeText})

	gomock.InOrder(
		listener.EXPECT().EntityChanged(gomock.Any(), eventOf(becca.EntityCreated, models.EntityNotes, "N")),
		listener.EXPECT().EntityChanged(gomock.Any(), eventOf(becca.EntityChanged, models.EntityNotes, "N")),
	)
	require.NoError(t, note.Save(ctx))

	listener.EXPECT().EntityChanged(gomock.Any(), eventOf(becca.EntityChanged, models.EntityNotes, "N"))
	note.Update(func(row *models.Note) { row.Title = "Renamed" })
	require.NoError(t, note.Save(ctx))

	listener.EXPECT().EntityChanged(gomock.Any(), gomock.Cond(func(e becca.EntityEvent) bool {
		return e.Kind == becca.EntityDeleted && e.IsDeleted && e.EntityID == "N" && e.Entity == note
	}))
	require.NoError(t, note.MarkAsDeleted(ctx, "del-1"))
}

func TestChangeListener_EventsDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	listener := mock.NewMockChangeListener(ctrl)
	ctx := becca.WithEntityEventsDisabled(zerolog.Nop().WithContext(context.Background()))

	b := becca.New(store.NewMemoryStore(), becca.WithChangeListener(listener))
	listener.EXPECT().EntityChanged(gomock.Any(), gomock.Any()).Times(0)

	require.NoError(t, b.InitRoot(ctx))
	assert.True(t, becca.EntityEventsDisabled(ctx))
	assert.NotNil(t, b.RootNote())
}

func TestChangeListener_FailedWriteEmitsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	listener := mock.NewMockChangeListener(ctrl)
	ctx := zerolog.Nop().WithContext(context.Background())

	b := becca.New(store.NewMemoryStore(), becca.WithChangeListener(listener))
	listener.EXPECT().EntityChanged(gomock.Any(), gomock.Any()).Times(0)

	attr := b.NewAttribute(models.Attribute{NoteID: "N", Type: models.AttributeRelation, Name: "x", Value: "missing"})
	assert.ErrorIs(t, attr.Save(ctx), becca.ErrValidation)
}

func TestChangeListener_RolledBackTransactionEmitsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	listener := mock.NewMockChangeListener(ctrl)
	ctx := zerolog.Nop().WithContext(context.Background())

	st := store.NewMemoryStore()
	b := becca.New(st, becca.WithChangeListener(listener))
	listener.EXPECT().EntityChanged(gomock.Any(), gomock.Any()).Times(0)

	errAbort := errors.New("abort")
	err := b.Transactional(ctx, func(ctx context.Context) error {
		note := b.NewNote(models.Note{NoteID: "GHOST", Title: "Ghost", Type: models.NoteTypeText})
		if err := note.Save(ctx); err != nil {
			return err
		}
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	_, err = st.GetNote(ctx, "GHOST")
	assert.Error(t, err)
}

func TestChangeListener_EventsDeliveredAfterCommit(t *testing.T) {
	ctrl := gomock.NewController(t)
	listener := mock.NewMockChangeListener(ctrl)
	ctx := zerolog.Nop().WithContext(context.Background())

	b := becca.New(store.NewMemoryStore(), becca.WithChangeListener(listener))

	inside := false
	notInside := func(context.Context, becca.EntityEvent) { assert.False(t, inside) }
	gomock.InOrder(
		listener.EXPECT().EntityChanged(gomock.Any(), eventOf(becca.EntityCreated, models.EntityNotes, "N")).Do(notInside),
		listener.EXPECT().EntityChanged(gomock.Any(), eventOf(becca.EntityChanged, models.EntityNotes, "N")).Do(notInside),
		listener.EXPECT().EntityChanged(gomock.Any(), eventOf(becca.EntityChanged, models.EntityNotes, "N")).Do(notInside),
	)

	err := b.Transactional(ctx, func(ctx context.Context) error {
		inside = true
		defer func() { inside = false }()

		note := b.NewNote(models.Note{NoteID: "N", Title: "Note", Type: models.NoteTypeText})
		if err := note.Save(ctx); err != nil {
			return err
		}
		note.Update(func(row *models.Note) { row.Title = "Renamed" })
		return note.Save(ctx)
	})
	require.NoError(t, err)
}
