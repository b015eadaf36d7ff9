// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package becca

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/models"
)

var (
	// ErrNotFound is matched by every [NotFoundError].
	ErrNotFound = errors.New("entity not found")

	// ErrValidation is matched by every [ValidationError].
	ErrValidation = errors.New("validation failed")

	// ErrUnknownEntity is returned by [Becca.GetEntity] for entity names
	// without a collection.
	ErrUnknownEntity = errors.New("unknown entity name")
)

// NotFoundError reports an id that is absent from the graph or the store.
type NotFoundError struct {
	Entity models.EntityName
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' was not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

func notFound(entity models.EntityName, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ValidationError reports structurally invalid entity state. It is always
// returned before anything is written.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
