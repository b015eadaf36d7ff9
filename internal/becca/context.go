// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package becca

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/models"
)

type ctxKey int

const (
	eventsDisabledKey ctxKey = iota
	hoistedNoteKey
	eventBufferKey
)

// eventBuffer queues the events of one outermost transaction.
type eventBuffer struct {
	events []EntityEvent
}

func eventBufferFrom(ctx context.Context) *eventBuffer {
	buf, _ := ctx.Value(eventBufferKey).(*eventBuffer)
	return buf
}

// WithEntityEventsDisabled returns a context under which saves and deletes
// do not notify change listeners. Bulk imports use it and rebuild the graph
// with [Becca.Reload] afterwards.
func WithEntityEventsDisabled(ctx context.Context) context.Context {
	return context.WithValue(ctx, eventsDisabledKey, true)
}

// EntityEventsDisabled reports whether ctx was derived from
// [WithEntityEventsDisabled].
func EntityEventsDisabled(ctx context.Context) bool {
	disabled, _ := ctx.Value(eventsDisabledKey).(bool)
	return disabled
}

// WithHoistedNoteID records the note the caller has hoisted.
func WithHoistedNoteID(ctx context.Context, noteID string) context.Context {
	return context.WithValue(ctx, hoistedNoteKey, noteID)
}

// HoistedNoteID returns the hoisted note of ctx, root when none was set.
func HoistedNoteID(ctx context.Context) string {
	if id, ok := ctx.Value(hoistedNoteKey).(string); ok && id != "" {
		return id
	}
	return models.RootNoteID
}
