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

func TestDecryptProtectedNotes(t *testing.T) {
	tests := []struct {
		name          string
		decrypted     string
		decryptErr    error
		wantCount     int
		wantTitle     string
		wantDecrypted bool
	}{
		{name: "decrypts title", decrypted: "Secret", wantCount: 1, wantTitle: "Secret", wantDecrypted: true},
		{name: "broken ciphertext", decryptErr: errors.New("message authentication failed"), wantCount: 0, wantTitle: "[protected]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := zerolog.Nop().WithContext(context.Background())
			ctrl := gomock.NewController(t)
			session := mock.NewMockProtectedSession(ctrl)

			st := store.NewMemoryStore()
			row := models.Note{NoteID: "S", Title: "c2VhbGVk", Type: models.NoteTypeText, IsProtected: true}
			require.NoError(t, st.Upsert(ctx, models.EntityNotes, row.Record()))

			session.EXPECT().IsProtectedSessionAvailable().Return(false).Times(1)
			b := becca.New(st, becca.WithProtectedSession(session))
			require.NoError(t, b.Load(ctx))

			session.EXPECT().IsProtectedSessionAvailable().Return(true).AnyTimes()
			session.EXPECT().DecryptString("c2VhbGVk").Return(tt.decrypted, tt.decryptErr)

			assert.Equal(t, tt.wantCount, b.DecryptProtectedNotes(ctx))

			n := b.GetNote("S")
			assert.Equal(t, tt.wantDecrypted, n.IsDecrypted())
			assert.Equal(t, tt.wantTitle, n.Title())
		})
	}
}

func TestDecryptProtectedNotes_NoSession(t *testing.T) {
	ctx := zerolog.Nop().WithContext(context.Background())
	ctrl := gomock.NewController(t)
	session := mock.NewMockProtectedSession(ctrl)
	session.EXPECT().IsProtectedSessionAvailable().Return(false).AnyTimes()
	session.EXPECT().DecryptString(gomock.Any()).Times(0)

	b := becca.New(store.NewMemoryStore(), becca.WithProtectedSession(session))
	require.NoError(t, b.InitRoot(ctx))

	assert.Zero(t, b.DecryptProtectedNotes(ctx))
}
