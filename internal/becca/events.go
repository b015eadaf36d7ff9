// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package becca

//go:generate mockgen -source=events.go -destination=../mock/change_listener_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/models"
)

// EventKind tells created, changed and deleted notifications apart.
type EventKind int

const (
	EntityCreated EventKind = iota + 1
	EntityChanged
	EntityDeleted
)

func (k EventKind) String() string {
	switch k {
	case EntityCreated:
		return "created"
	case EntityChanged:
		return "changed"
	case EntityDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// EntityEvent is delivered to every [ChangeListener] after an entity was
// written. A newly created entity produces a created and a changed event.
type EntityEvent struct {
	Kind           EventKind
	EntityName     models.EntityName
	EntityID       string
	Entity         Entity
	Hash           string
	IsDeleted      bool
	UTCDateChanged string
}

// ChangeListener receives entity events. Listeners are called synchronously
// and without any graph lock held, so they may read the graph.
type ChangeListener interface {
	EntityChanged(ctx context.Context, event EntityEvent)
}
