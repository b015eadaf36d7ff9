// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package becca

import (
	"cmp"
	"context"
	"regexp"
	"slices"
	"strings"

	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

var invalidAttributeNameChars = regexp.MustCompile(`[^\p{L}\p{N}_:]`)

// SanitizeAttributeName replaces characters not allowed in attribute names
// with underscores.
func SanitizeAttributeName(name string) string {
	if name == "" {
		return "unnamed"
	}
	return invalidAttributeNameChars.ReplaceAllString(name, "_")
}

// Attribute is a label or a relation owned by a note.
type Attribute struct {
	b   *Becca
	row models.Attribute

	// pending holds changes made by Update until the next Save accepts them
	pending *models.Attribute

	// index entries the attribute is registered under, so it can be
	// unlinked after its row changed
	indexKey     string
	linkedTarget string
}

// NewAttribute returns an unsaved attribute.
func (b *Becca) NewAttribute(row models.Attribute) *Attribute {
	return &Attribute{b: b, row: row}
}

func (b *Becca) attributeFromRow(row models.Attribute) *Attribute {
	return &Attribute{b: b, row: row}
}

func sortAttributes(attrs []*Attribute) {
	slices.SortStableFunc(attrs, func(x, y *Attribute) int {
		return cmp.Compare(x.row.Position, y.row.Position)
	})
}

func (a *Attribute) EntityName() models.EntityName { return models.EntityAttributes }

func (a *Attribute) EntityID() string {
	a.b.mu.RLock()
	defer a.b.mu.RUnlock()

	return a.row.AttributeID
}

func (a *Attribute) ID() string { return a.EntityID() }

func (a *Attribute) Row() models.Attribute {
	a.b.mu.RLock()
	defer a.b.mu.RUnlock()

	return a.row
}

func (a *Attribute) Record() models.Record { return a.Row().Record() }

func (a *Attribute) NoteID() string             { return a.Row().NoteID }
func (a *Attribute) Type() models.AttributeType { return a.Row().Type }
func (a *Attribute) Name() string               { return a.Row().Name }
func (a *Attribute) Value() string              { return a.Row().Value }
func (a *Attribute) Position() int64            { return a.Row().Position }
func (a *Attribute) IsInheritable() bool        { return a.Row().IsInheritable }
func (a *Attribute) IsLabel() bool              { return a.Type() == models.AttributeLabel }
func (a *Attribute) IsRelation() bool           { return a.Type() == models.AttributeRelation }
func (a *Attribute) IsAutoLink() bool           { return a.IsRelation() && isAutoLinkRelation(a.Name()) }
func (a *Attribute) IsDefinition() bool {
	return strings.HasPrefix(a.Name(), "label:") || strings.HasPrefix(a.Name(), "relation:")
}

func isAutoLinkRelation(name string) bool {
	switch name {
	case "internalLink", "imageLink", "relationMapLink", "includeNoteLink":
		return true
	}
	return false
}

// Note returns the owning note.
func (a *Attribute) Note() *Note {
	return a.b.GetNote(a.NoteID())
}

// TargetNote returns the target of a relation. It is nil for labels and for
// relations whose target is unknown.
func (a *Attribute) TargetNote() *Note {
	row := a.Row()
	if row.Type != models.AttributeRelation {
		return nil
	}
	return a.b.GetNote(row.Value)
}

// Update stages fn's changes to the attribute row. They become visible only
// when the next Save succeeds; a rejected Save discards them. The id and the
// owning note cannot change.
func (a *Attribute) Update(fn func(row *models.Attribute)) {
	a.b.mu.Lock()
	defer a.b.mu.Unlock()

	next := a.row
	if a.pending != nil {
		next = *a.pending
	}
	fn(&next)
	next.AttributeID, next.NoteID = a.row.AttributeID, a.row.NoteID
	a.pending = &next
}

func (a *Attribute) Hash() string {
	a.b.mu.RLock()
	defer a.b.mu.RUnlock()

	return a.hash(false)
}

func (a *Attribute) hash(isDeleted bool) string {
	return entityHash(isDeleted,
		a.row.AttributeID,
		a.row.NoteID,
		string(a.row.Type),
		a.row.Name,
		a.row.Value,
		formatBool(a.row.IsInheritable),
	)
}

// validate checks a proposed row. Callers hold the lock.
func (a *Attribute) validate(row models.Attribute) error {
	if !row.Type.Valid() {
		return validationf("attribute '%s' has invalid type '%s'", row.AttributeID, row.Type)
	}
	if strings.TrimSpace(row.Name) == "" {
		return validationf("attribute '%s' has empty name", row.AttributeID)
	}
	if row.Type == models.AttributeRelation {
		if _, ok := a.b.notes[row.Value]; !ok {
			return validationf("cannot save relation '%s' since the target note '%s' does not exist", row.Name, row.Value)
		}
	}
	return nil
}

// Save validates the attribute, registers it in the graph and persists it.
func (a *Attribute) Save(ctx context.Context) error {
	return a.save(ctx, false)
}

// SaveWithoutValidation is Save for copies whose relation targets may not
// be created yet.
func (a *Attribute) SaveWithoutValidation(ctx context.Context) error {
	return a.save(ctx, true)
}

func (a *Attribute) save(ctx context.Context, skipValidation bool) error {
	b := a.b
	b.mu.Lock()

	row := a.row
	if a.pending != nil {
		row = *a.pending
		a.pending = nil
	}

	if row.NoteID == "" {
		b.mu.Unlock()
		return validationf("attribute has no owning note")
	}
	if !skipValidation {
		if err := a.validate(row); err != nil {
			b.mu.Unlock()
			return err
		}
	}

	if row.AttributeID == "" {
		row.AttributeID = utils.NewEntityID()
	}
	row.Name = SanitizeAttributeName(row.Name)
	if row.Position == 0 {
		var maxPosition int64
		for _, owned := range b.ownedAttributes[row.NoteID] {
			if owned != a && owned.row.Position > maxPosition {
				maxPosition = owned.row.Position
			}
		}
		row.Position = maxPosition + positionStep
	}

	utc, _ := b.timestamps()
	row.UTCDateModified = utc
	row.IsDeleted = false
	a.row = row

	isNew := b.attributes[a.row.AttributeID] != a
	id, hash, record := a.row.AttributeID, a.hash(false), a.row.Record()
	b.addAttribute(a)
	b.mu.Unlock()

	return b.persist(ctx, write{
		entity:   a,
		table:    models.EntityAttributes,
		id:       id,
		record:   record,
		hash:     hash,
		isNew:    isNew,
		isSynced: true,
		utcDate:  utc,
	})
}

// MarkAsDeleted soft-deletes the attribute and removes it from the graph.
// An empty deleteID starts a new correlator.
func (a *Attribute) MarkAsDeleted(ctx context.Context, deleteID string) error {
	if deleteID == "" {
		deleteID = utils.NewUUIDGenerator().Generate()
	}

	b := a.b
	b.mu.Lock()

	utc, local := b.timestamps()
	a.pending = nil
	a.row.IsDeleted = true
	a.row.DeleteID = deleteID
	a.row.UTCDateModified = utc

	id, hash := a.row.AttributeID, a.hash(true)
	b.unlinkAttribute(a)
	b.mu.Unlock()

	return b.markDeleted(ctx, deletion{
		entity:    a,
		table:     models.EntityAttributes,
		id:        id,
		deleteID:  deleteID,
		hash:      hash,
		isSynced:  true,
		utcDate:   utc,
		localDate: local,
	})
}
