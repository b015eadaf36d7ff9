// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package becca

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
)

// ErrAlreadyLoaded is returned by [Becca.Load] on a graph that was loaded
// and not reset since.
var ErrAlreadyLoaded = errors.New("note graph is already loaded")

// Load fills the graph from the store snapshot. Notes come first, then
// branches, attributes, options and etapi tokens, so skeletons are only
// created for rows that reference missing notes.
func (b *Becca) Load(ctx context.Context) error {
	log := logger.FromContext(ctx)
	start := time.Now()

	snapshot, err := b.store.LoadSnapshot(ctx)
	if err != nil {
		log.Err(err).Str("func", "Becca.Load").Msg("failed to load snapshot")
		return err
	}

	b.mu.Lock()
	if b.loaded {
		b.mu.Unlock()
		return ErrAlreadyLoaded
	}

	b.loading = true
	for _, row := range snapshot.Notes {
		b.addNote(&Note{b: b, state: NoteMaterialized, row: row, isDecrypted: !row.IsProtected})
	}
	for _, row := range snapshot.Branches {
		b.addBranch(b.branchFromRow(row))
	}
	for _, row := range snapshot.Attributes {
		b.addAttribute(b.attributeFromRow(row))
	}
	b.loading = false
	for _, n := range b.notes {
		n.invalidateThisCache()
	}
	b.dirtyNoteSetCache()

	for _, row := range snapshot.Options {
		b.options[row.Name] = b.NewOption(row)
	}
	for _, row := range snapshot.EtapiTokens {
		b.etapiTokens[row.EtapiTokenID] = b.NewEtapiToken(row)
	}
	b.loaded = true
	b.mu.Unlock()

	decrypted := b.DecryptProtectedNotes(ctx)

	log.Info().
		Int("notes", len(snapshot.Notes)).
		Int("branches", len(snapshot.Branches)).
		Int("attributes", len(snapshot.Attributes)).
		Int("decrypted", decrypted).
		Dur("took", time.Since(start)).
		Msg("note graph loaded")
	return nil
}

// Reload resets the graph and loads it again.
func (b *Becca) Reload(ctx context.Context) error {
	b.Reset()
	return b.Load(ctx)
}

// DecryptProtectedNotes decrypts the titles of protected notes that are still
// ciphertext. It is called after a protected session was entered and reports
// how many notes were decrypted.
func (b *Becca) DecryptProtectedNotes(ctx context.Context) int {
	if !b.session.IsProtectedSessionAvailable() {
		return 0
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var decrypted int
	for _, n := range b.notes {
		if n.state != NoteMaterialized || !n.row.IsProtected || n.isDecrypted {
			continue
		}
		n.decrypt(ctx)
		if n.isDecrypted {
			decrypted++
		}
	}
	return decrypted
}

// InitRoot creates the root note with its branch and the hidden subtree root
// when they do not exist yet.
func (b *Becca) InitRoot(ctx context.Context) error {
	return b.Transactional(ctx, func(ctx context.Context) error {
		root := b.GetNote(models.RootNoteID)
		if root == nil || root.IsSkeleton() {
			root = b.NewNote(models.Note{NoteID: models.RootNoteID, Title: "root", Type: models.NoteTypeText})
			if err := root.Save(ctx); err != nil {
				return err
			}
			if err := root.SetContentString(ctx, ""); err != nil {
				return err
			}
			if err := b.NewBranch(models.Branch{
				NoteID:       models.RootNoteID,
				ParentNoteID: "none",
				NotePosition: positionStep,
				IsExpanded:   true,
			}).Save(ctx); err != nil {
				return err
			}
		}

		hidden := b.GetNote(b.hiddenRootID)
		if hidden == nil || hidden.IsSkeleton() {
			hidden = b.NewNote(models.Note{NoteID: b.hiddenRootID, Title: "Hidden Notes", Type: models.NoteTypeDoc})
			if err := hidden.Save(ctx); err != nil {
				return err
			}
			if err := hidden.SetContentString(ctx, ""); err != nil {
				return err
			}
			if err := b.NewBranch(models.Branch{
				NoteID:       b.hiddenRootID,
				ParentNoteID: models.RootNoteID,
			}).Save(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}
