// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/internal/becca"
	"github.com/MKhiriev/go-note-keeper/models"
)

// NoteService changes the note tree. Every method runs in one store
// transaction; on failure the graph is reloaded from the store.
type NoteService interface {
	CreateNote(ctx context.Context, req models.CreateNoteRequest) (*becca.Note, *becca.Branch, error)

	// DeleteBranch removes one placement of a note and cascades into the
	// note when it was its last strong branch. It reports whether the note
	// was deleted.
	DeleteBranch(ctx context.Context, branchID string) (bool, error)

	// DeleteNote removes every branch of the note and so the note itself.
	DeleteNote(ctx context.Context, noteID string) error

	// UndeleteNote restores the rows deleted together with the note.
	UndeleteNote(ctx context.Context, noteID string) error

	DuplicateSubtree(ctx context.Context, noteID, parentNoteID string) (*becca.Note, *becca.Branch, error)

	CloneNoteToParent(ctx context.Context, noteID, parentNoteID, prefix string) (*becca.Branch, error)
	MoveBranch(ctx context.Context, branchID, parentNoteID string) (*becca.Branch, error)
}

// TokenService manages ETAPI tokens. Only an HMAC of the secret is stored.
type TokenService interface {
	// CreateToken returns the auth token "<etapiTokenId>_<secret>".
	CreateToken(ctx context.Context, name string) (string, error)
	// IsValidAuthHeader checks an Authorization header value and returns the
	// id of the matching token.
	IsValidAuthHeader(ctx context.Context, header string) (string, bool)
	RenameToken(ctx context.Context, tokenID, name string) error
	DeleteToken(ctx context.Context, tokenID string) error
}

// OptionService reads and writes options.
type OptionService interface {
	OptionValue(ctx context.Context, name string) (string, error)
	// SetOption updates the option, creating it when missing.
	SetOption(ctx context.Context, name, value string) error
}

// ProtectedSessionService opens and closes the protected session.
type ProtectedSessionService interface {
	// SetPassword creates the data key on first use.
	SetPassword(ctx context.Context, password string) error
	Enter(ctx context.Context, password string) error
	Leave(ctx context.Context) error
	// Expire closes the session when it has been idle longer than the
	// configured timeout. It reports whether the session was closed.
	Expire(ctx context.Context) (bool, error)
}

type AppInfoService interface {
	GetAppInfo(ctx context.Context) models.AppInfo
}
