// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package becca

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/models"
)

// Option is a named configuration value. Options are never deleted.
type Option struct {
	b   *Becca
	row models.Option
}

// NewOption returns an unsaved option.
func (b *Becca) NewOption(row models.Option) *Option {
	return &Option{b: b, row: row}
}

func (o *Option) EntityName() models.EntityName { return models.EntityOptions }

func (o *Option) EntityID() string { return o.Name() }

func (o *Option) Row() models.Option {
	o.b.mu.RLock()
	defer o.b.mu.RUnlock()

	return o.row
}

func (o *Option) Record() models.Record { return o.Row().Record() }

func (o *Option) Name() string   { return o.Row().Name }
func (o *Option) Value() string  { return o.Row().Value }
func (o *Option) IsSynced() bool { return o.Row().IsSynced }

// SetValue changes the value. Call Save to persist it.
func (o *Option) SetValue(value string) {
	o.b.mu.Lock()
	defer o.b.mu.Unlock()

	o.row.Value = value
}

func (o *Option) Hash() string {
	o.b.mu.RLock()
	defer o.b.mu.RUnlock()

	return o.hash()
}

func (o *Option) hash() string {
	return entityHash(false, o.row.Name, o.row.Value)
}

// Save registers the option and persists it. The change record is synced
// only when the option is.
func (o *Option) Save(ctx context.Context) error {
	b := o.b
	b.mu.Lock()

	if o.row.Name == "" {
		b.mu.Unlock()
		return validationf("option needs a name")
	}

	utc, _ := b.timestamps()
	o.row.UTCDateModified = utc

	isNew := b.options[o.row.Name] != o
	b.options[o.row.Name] = o
	w := write{
		entity:   o,
		table:    models.EntityOptions,
		id:       o.row.Name,
		record:   o.row.Record(),
		hash:     o.hash(),
		isNew:    isNew,
		isSynced: o.row.IsSynced,
		utcDate:  utc,
	}
	b.mu.Unlock()

	return b.persist(ctx, w)
}
