// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "github.com/MKhiriev/go-note-keeper/models"

// recordRow is a scanned row.
type recordRow = models.Record

func mapRecords[T any](rows []recordRow, decode func(models.Record) T) []T {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		out = append(out, decode(row))
	}
	return out
}
