// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/models"
)

// blobOwnerTables are the tables whose rows may reference a blob.
var blobOwnerTables = []string{
	string(models.EntityNotes),
	string(models.EntityAttachments),
	string(models.EntityRevisions),
}

// BlobExists implements [BlobStore].
func (db *DB) BlobExists(ctx context.Context, blobID string) (bool, error) {
	query, args, err := db.queries.blobExists(blobID)
	rows, err := db.queryRecords(ctx, "DB.BlobExists", query, args, err)
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// GetBlob implements [BlobStore].
func (db *DB) GetBlob(ctx context.Context, blobID string) (models.Blob, error) {
	query, args, err := db.queries.getBlob(blobID)
	row, err := db.queryRecord(ctx, "DB.GetBlob", query, args, err)
	if err != nil {
		return models.Blob{}, err
	}
	return models.BlobFromRecord(row), nil
}

// InsertBlob implements [BlobStore].
func (db *DB) InsertBlob(ctx context.Context, blob models.Blob) error {
	query, args, err := db.queries.insertBlob(blob)
	_, err = db.exec(ctx, "DB.InsertBlob", query, args, err)
	return err
}

// CountBlobReferences implements [BlobStore].
func (db *DB) CountBlobReferences(ctx context.Context, blobID string) (int, error) {
	total := 0
	for _, table := range blobOwnerTables {
		query, args, err := db.queries.countBlobReferences(table, blobID)
		row, err := db.queryRecord(ctx, "DB.CountBlobReferences", query, args, err)
		if err != nil {
			return 0, err
		}
		for _, v := range row {
			total += int(recordRow{"n": v}.Int("n"))
		}
	}
	return total, nil
}

// DeleteBlob implements [BlobStore].
func (db *DB) DeleteBlob(ctx context.Context, blobID string) error {
	query, args, err := db.queries.deleteBlob(blobID)
	_, err = db.exec(ctx, "DB.DeleteBlob", query, args, err)
	return err
}

// PutEntityChange implements [EntityChangeStore].
func (db *DB) PutEntityChange(ctx context.Context, change models.EntityChange) error {
	query, args, err := db.queries.putEntityChange(change)
	_, err = db.exec(ctx, "DB.PutEntityChange", query, args, err)
	return err
}

// GetEntityChange implements [EntityChangeStore].
func (db *DB) GetEntityChange(ctx context.Context, entityName models.EntityName, entityID string) (models.EntityChange, error) {
	query, args, err := db.queries.getEntityChange(entityName, entityID)
	row, err := db.queryRecord(ctx, "DB.GetEntityChange", query, args, err)
	if err != nil {
		return models.EntityChange{}, err
	}
	return models.EntityChangeFromRecord(row), nil
}

// DeleteEntityChanges implements [EntityChangeStore].
func (db *DB) DeleteEntityChanges(ctx context.Context, entityName models.EntityName, entityID string) error {
	query, args, err := db.queries.deleteEntityChanges(entityName, entityID)
	_, err = db.exec(ctx, "DB.DeleteEntityChanges", query, args, err)
	return err
}
