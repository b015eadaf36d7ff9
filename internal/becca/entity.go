// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package becca

import (
	"context"
	"strconv"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

// Entity is the contract shared by every entity kind.
type Entity interface {
	EntityName() models.EntityName
	EntityID() string
	// Hash is the change-detection hash of the entity as it is now.
	Hash() string
	// Record is a plain column snapshot of the entity.
	Record() models.Record
}

var (
	_ Entity = (*Note)(nil)
	_ Entity = (*Branch)(nil)
	_ Entity = (*Attribute)(nil)
	_ Entity = (*Revision)(nil)
	_ Entity = (*Attachment)(nil)
	_ Entity = (*Option)(nil)
	_ Entity = (*EtapiToken)(nil)
)

// positionStep is the gap left between sibling positions so items can be
// inserted without renumbering.
const positionStep = 10

// entityHash hashes the hashed properties of an entity in their fixed
// order. A tombstone hash has "deleted" appended.
func entityHash(isDeleted bool, values ...string) string {
	if isDeleted {
		values = append(values, "deleted")
	}
	return utils.EntityHash(values...)
}

func formatBool(b bool) string {
	return strconv.FormatBool(b)
}

// timestamps returns the UTC and local forms of the current time.
func (b *Becca) timestamps() (utc, local string) {
	now := b.now()
	return models.UTCDateTime(now), models.LocalDateTime(now)
}

// write describes one persisted save.
type write struct {
	entity   Entity
	table    models.EntityName
	id       string
	record   models.Record
	hash     string
	isNew    bool
	isSynced bool
	utcDate  string
}

// persist upserts the row and its change record in one transaction and
// notifies listeners.
func (b *Becca) persist(ctx context.Context, w write) error {
	log := logger.FromContext(ctx)

	err := b.Transactional(ctx, func(ctx context.Context) error {
		if err := b.store.Upsert(ctx, w.table, w.record); err != nil {
			return err
		}
		err := b.store.PutEntityChange(ctx, models.EntityChange{
			EntityName:     w.table,
			EntityID:       w.id,
			Hash:           w.hash,
			IsSynced:       w.isSynced,
			UTCDateChanged: w.utcDate,
		})
		if err != nil {
			return err
		}

		event := EntityEvent{
			EntityName:     w.table,
			EntityID:       w.id,
			Entity:         w.entity,
			Hash:           w.hash,
			UTCDateChanged: w.utcDate,
		}
		if w.isNew {
			event.Kind = EntityCreated
			b.emit(ctx, event)
		}
		event.Kind = EntityChanged
		b.emit(ctx, event)
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "Becca.persist").Str("entity", string(w.table)).Str("id", w.id).Msg("failed to save entity")
		return err
	}

	log.Debug().Str("entity", string(w.table)).Str("id", w.id).Bool("new", w.isNew).Msg("entity saved")
	return nil
}

// deletion describes one soft delete.
type deletion struct {
	entity    Entity
	table     models.EntityName
	id        string
	deleteID  string
	hash      string
	isSynced  bool
	utcDate   string
	localDate string
}

// markDeleted flags the row as deleted, records the tombstone hash and
// notifies listeners.
func (b *Becca) markDeleted(ctx context.Context, d deletion) error {
	log := logger.FromContext(ctx)

	err := b.Transactional(ctx, func(ctx context.Context) error {
		if err := b.store.MarkDeleted(ctx, d.table, d.id, d.deleteID, d.utcDate, d.localDate); err != nil {
			return err
		}
		err := b.store.PutEntityChange(ctx, models.EntityChange{
			EntityName:     d.table,
			EntityID:       d.id,
			Hash:           d.hash,
			IsSynced:       d.isSynced,
			UTCDateChanged: d.utcDate,
		})
		if err != nil {
			return err
		}

		b.emit(ctx, EntityEvent{
			Kind:           EntityDeleted,
			EntityName:     d.table,
			EntityID:       d.id,
			Entity:         d.entity,
			Hash:           d.hash,
			IsDeleted:      true,
			UTCDateChanged: d.utcDate,
		})
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "Becca.markDeleted").Str("entity", string(d.table)).Str("id", d.id).Msg("failed to delete entity")
		return err
	}

	log.Debug().Str("entity", string(d.table)).Str("id", d.id).Str("deleteId", d.deleteID).Msg("entity marked as deleted")
	return nil
}

// markErased flags the change record of a hard-erased row.
func (b *Becca) markErased(ctx context.Context, table models.EntityName, id string) error {
	utc, _ := b.timestamps()

	change, err := b.store.GetEntityChange(ctx, table, id)
	if err != nil {
		change = models.EntityChange{EntityName: table, EntityID: id, IsSynced: true}
	}
	change.IsErased = true
	change.UTCDateChanged = utc
	return b.store.PutEntityChange(ctx, change)
}

// emit queues event on the transaction in ctx, or delivers it right away
// outside of one.
func (b *Becca) emit(ctx context.Context, event EntityEvent) {
	if EntityEventsDisabled(ctx) {
		return
	}
	if buf := eventBufferFrom(ctx); buf != nil {
		buf.events = append(buf.events, event)
		return
	}
	b.deliver(ctx, event)
}

func (b *Becca) deliver(ctx context.Context, event EntityEvent) {
	b.mu.RLock()
	listeners := b.listeners
	b.mu.RUnlock()

	for _, l := range listeners {
		l.EntityChanged(ctx, event)
	}
}
