// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package becca

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

// EtapiToken is an API token. Only the hash of its secret is held.
type EtapiToken struct {
	b   *Becca
	row models.EtapiToken
}

// NewEtapiToken returns an unsaved token.
func (b *Becca) NewEtapiToken(row models.EtapiToken) *EtapiToken {
	return &EtapiToken{b: b, row: row}
}

func (t *EtapiToken) EntityName() models.EntityName { return models.EntityEtapiTokens }

func (t *EtapiToken) EntityID() string {
	t.b.mu.RLock()
	defer t.b.mu.RUnlock()

	return t.row.EtapiTokenID
}

func (t *EtapiToken) ID() string { return t.EntityID() }

func (t *EtapiToken) Row() models.EtapiToken {
	t.b.mu.RLock()
	defer t.b.mu.RUnlock()

	return t.row
}

func (t *EtapiToken) Record() models.Record { return t.Row().Record() }

func (t *EtapiToken) Name() string      { return t.Row().Name }
func (t *EtapiToken) TokenHash() string { return t.Row().TokenHash }

// Rename changes the display name. Call Save to persist it.
func (t *EtapiToken) Rename(name string) {
	t.b.mu.Lock()
	defer t.b.mu.Unlock()

	t.row.Name = name
}

func (t *EtapiToken) Hash() string {
	t.b.mu.RLock()
	defer t.b.mu.RUnlock()

	return t.hash(false)
}

func (t *EtapiToken) hash(isDeleted bool) string {
	return entityHash(isDeleted,
		t.row.EtapiTokenID,
		t.row.Name,
		t.row.TokenHash,
		t.row.UTCDateCreated,
		t.row.UTCDateModified,
		formatBool(t.row.IsDeleted),
	)
}

// Save registers the token and persists it.
func (t *EtapiToken) Save(ctx context.Context) error {
	b := t.b
	b.mu.Lock()

	if t.row.TokenHash == "" {
		b.mu.Unlock()
		return validationf("etapi token needs a token hash")
	}
	if t.row.EtapiTokenID == "" {
		t.row.EtapiTokenID = utils.NewEntityID()
	}
	utc, _ := b.timestamps()
	if t.row.UTCDateCreated == "" {
		t.row.UTCDateCreated = utc
	}
	t.row.UTCDateModified = utc
	t.row.IsDeleted = false

	isNew := b.etapiTokens[t.row.EtapiTokenID] != t
	b.etapiTokens[t.row.EtapiTokenID] = t
	w := write{
		entity:   t,
		table:    models.EntityEtapiTokens,
		id:       t.row.EtapiTokenID,
		record:   t.row.Record(),
		hash:     t.hash(false),
		isNew:    isNew,
		isSynced: true,
		utcDate:  utc,
	}
	b.mu.Unlock()

	return b.persist(ctx, w)
}

// MarkAsDeleted soft-deletes the token and removes it from the graph.
func (t *EtapiToken) MarkAsDeleted(ctx context.Context) error {
	b := t.b
	b.mu.Lock()

	utc, local := b.timestamps()
	t.row.IsDeleted = true
	t.row.UTCDateModified = utc
	if b.etapiTokens[t.row.EtapiTokenID] == t {
		delete(b.etapiTokens, t.row.EtapiTokenID)
	}
	d := deletion{
		entity:    t,
		table:     models.EntityEtapiTokens,
		id:        t.row.EtapiTokenID,
		hash:      t.hash(true),
		isSynced:  true,
		utcDate:   utc,
		localDate: local,
	}
	b.mu.Unlock()

	return b.markDeleted(ctx, d)
}
