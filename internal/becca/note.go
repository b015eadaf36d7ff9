// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package becca

import (
	"context"
	"sync/atomic"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

// NoteState tells placeholder notes from fully loaded ones.
type NoteState int

const (
	// NoteSkeleton is a placeholder created because a branch or attribute
	// referenced the note before its row arrived. Only the id is known.
	NoteSkeleton NoteState = iota
	// NoteMaterialized is a note whose row has been loaded or saved.
	NoteMaterialized
)

// protectedTitlePlaceholder replaces the title of a protected note while no
// protected session is open.
const protectedTitlePlaceholder = "[protected]"

// Note is a note in the graph. Its parents, children and attributes are
// resolved through the graph's edge tables.
type Note struct {
	b *Becca

	state          NoteState
	row            models.Note
	isDecrypted    bool
	isBeingDeleted bool

	attributeCache   atomic.Pointer[[]*Attribute]
	inheritableCache atomic.Pointer[[]*Attribute]
	ancestorCache    atomic.Pointer[[]*Note]
	flatTextCache    atomic.Pointer[string]
}

// NewNote returns an unsaved note built by the application. The title is
// plaintext even when the note is protected.
func (b *Becca) NewNote(row models.Note) *Note {
	if row.Mime == "" {
		row.Mime = row.Type.DefaultMime()
	}
	return &Note{b: b, state: NoteMaterialized, row: row, isDecrypted: true}
}

// NoteFromRow returns a note for a row as stored. Protected titles are
// decrypted when a protected session is open.
func (b *Becca) NoteFromRow(ctx context.Context, row models.Note) *Note {
	n := &Note{b: b, state: NoteMaterialized, row: row, isDecrypted: !row.IsProtected}
	n.decrypt(ctx)
	return n
}

func (n *Note) EntityName() models.EntityName { return models.EntityNotes }

func (n *Note) EntityID() string {
	n.b.mu.RLock()
	defer n.b.mu.RUnlock()

	return n.row.NoteID
}

// ID is EntityID.
func (n *Note) ID() string {
	return n.EntityID()
}

// Row returns a copy of the note row.
func (n *Note) Row() models.Note {
	n.b.mu.RLock()
	defer n.b.mu.RUnlock()

	return n.row
}

func (n *Note) Record() models.Record {
	return n.Row().Record()
}

// Title returns the plaintext title, or a placeholder for a protected note
// that could not be decrypted.
func (n *Note) Title() string {
	n.b.mu.RLock()
	defer n.b.mu.RUnlock()

	return n.title()
}

func (n *Note) title() string {
	if n.row.IsProtected && !n.isDecrypted {
		return protectedTitlePlaceholder
	}
	return n.row.Title
}

func (n *Note) Type() models.NoteType {
	n.b.mu.RLock()
	defer n.b.mu.RUnlock()

	return n.row.Type
}

func (n *Note) Mime() string {
	n.b.mu.RLock()
	defer n.b.mu.RUnlock()

	return n.row.Mime
}

func (n *Note) BlobID() string {
	n.b.mu.RLock()
	defer n.b.mu.RUnlock()

	return n.row.BlobID
}

func (n *Note) IsProtected() bool {
	n.b.mu.RLock()
	defer n.b.mu.RUnlock()

	return n.row.IsProtected
}

// IsDecrypted reports whether the in-memory title is plaintext.
func (n *Note) IsDecrypted() bool {
	n.b.mu.RLock()
	defer n.b.mu.RUnlock()

	return n.isDecrypted
}

func (n *Note) State() NoteState {
	n.b.mu.RLock()
	defer n.b.mu.RUnlock()

	return n.state
}

// IsSkeleton reports whether only the id of the note is known.
func (n *Note) IsSkeleton() bool {
	return n.State() == NoteSkeleton
}

// IsBeingDeleted reports whether the note was removed by a delete cascade.
func (n *Note) IsBeingDeleted() bool {
	n.b.mu.RLock()
	defer n.b.mu.RUnlock()

	return n.isBeingDeleted
}

// Update applies fn to the note row. The id cannot be changed. Call Save to
// persist the result.
func (n *Note) Update(fn func(row *models.Note)) {
	n.b.mu.Lock()
	defer n.b.mu.Unlock()

	id := n.row.NoteID
	fn(&n.row)
	n.row.NoteID = id
	n.invalidateThisCache()
}

// Hash implements [Entity].
func (n *Note) Hash() string {
	n.b.mu.RLock()
	defer n.b.mu.RUnlock()

	return n.hash(false)
}

func (n *Note) hash(isDeleted bool) string {
	return entityHash(isDeleted,
		n.row.NoteID,
		n.row.Title,
		formatBool(n.row.IsProtected),
		string(n.row.Type),
		n.row.Mime,
		n.row.BlobID,
	)
}

// Save validates the note, registers it in the graph and persists it.
func (n *Note) Save(ctx context.Context) error {
	b := n.b
	b.mu.Lock()

	if n.state == NoteSkeleton {
		b.mu.Unlock()
		return validationf("cannot save skeleton note '%s'", n.row.NoteID)
	}
	if !n.row.Type.Valid() {
		b.mu.Unlock()
		return validationf("note type '%s' is not valid", n.row.Type)
	}

	if n.row.NoteID == "" {
		n.row.NoteID = utils.NewEntityID()
	}
	utc, local := b.timestamps()
	if n.row.DateCreated == "" {
		n.row.DateCreated = local
	}
	if n.row.UTCDateCreated == "" {
		n.row.UTCDateCreated = utc
	}
	n.row.DateModified = local
	n.row.UTCDateModified = utc
	n.row.IsDeleted = false
	n.isBeingDeleted = false

	record, err := n.recordToSave()
	if err != nil {
		b.mu.Unlock()
		return err
	}

	isNew := b.notes[n.row.NoteID] != n
	id, hash := n.row.NoteID, n.hash(false)
	b.addNote(n)
	b.mu.Unlock()

	return b.persist(ctx, write{
		entity:   n,
		table:    models.EntityNotes,
		id:       id,
		record:   record,
		hash:     hash,
		isNew:    isNew,
		isSynced: true,
		utcDate:  utc,
	})
}

// recordToSave re-encrypts a decrypted protected title. A protected title
// that is still ciphertext is left out so the stored value survives.
func (n *Note) recordToSave() (models.Record, error) {
	record := n.row.Record()
	if !n.row.IsProtected {
		return record, nil
	}
	if !n.isDecrypted {
		delete(record, "title")
		return record, nil
	}

	ciphertext, err := n.b.session.Encrypt([]byte(n.row.Title))
	if err != nil {
		return nil, err
	}
	record["title"] = ciphertext
	return record, nil
}

// MarkAsDeleted soft-deletes the note under deleteID and removes it from the
// graph. Branches, attributes and attachments are handled by
// [Branch.DeleteBranch].
func (n *Note) MarkAsDeleted(ctx context.Context, deleteID string) error {
	b := n.b
	b.mu.Lock()

	utc, local := b.timestamps()
	n.row.IsDeleted = true
	n.row.DeleteID = deleteID
	n.row.UTCDateModified = utc
	n.row.DateModified = local
	n.isBeingDeleted = true

	id, hash := n.row.NoteID, n.hash(true)
	b.removeNote(n)
	b.mu.Unlock()

	logger.FromContext(ctx).Info().Str("noteId", id).Str("deleteId", deleteID).Msg("deleting note")

	return b.markDeleted(ctx, deletion{
		entity:    n,
		table:     models.EntityNotes,
		id:        id,
		deleteID:  deleteID,
		hash:      hash,
		isSynced:  true,
		utcDate:   utc,
		localDate: local,
	})
}

// decrypt replaces a protected ciphertext title with plaintext when a
// protected session is open. Failures are logged and leave the note as it
// was.
func (n *Note) decrypt(ctx context.Context) {
	if !n.row.IsProtected || n.isDecrypted || !n.b.session.IsProtectedSessionAvailable() {
		return
	}

	title, err := n.b.session.DecryptString(n.row.Title)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "Note.decrypt").Str("noteId", n.row.NoteID).Msg("could not decrypt protected note")
		return
	}
	n.row.Title = title
	n.isDecrypted = true
	n.invalidateThisCache()
}

// invalidateThisCache drops every derived cache of the note.
func (n *Note) invalidateThisCache() {
	n.attributeCache.Store(nil)
	n.inheritableCache.Store(nil)
	n.ancestorCache.Store(nil)
	n.flatTextCache.Store(nil)
}

// invalidateSubTree drops the caches of the note, its descendants and every
// note that uses one of them as a template. Callers hold the write lock.
func (n *Note) invalidateSubTree() {
	walkOnce(n, n.b.invalidationSuccessors, (*Note).invalidateThisCache)
}

func (b *Becca) invalidationSuccessors(n *Note) []*Note {
	var next []*Note
	for _, br := range b.childBranches[n.row.NoteID] {
		if child, ok := b.notes[br.row.NoteID]; ok {
			next = append(next, child)
		}
	}
	for _, rel := range b.targetRelations[n.row.NoteID] {
		if !isTemplateRelation(rel) {
			continue
		}
		if owner, ok := b.notes[rel.row.NoteID]; ok {
			next = append(next, owner)
		}
	}
	return next
}

// InvalidateSubTree is the exported form of the cache invalidation walk.
func (n *Note) InvalidateSubTree() {
	n.b.mu.Lock()
	defer n.b.mu.Unlock()

	n.invalidateSubTree()
}
