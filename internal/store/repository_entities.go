// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
)

// LoadSnapshot implements [Store].
func (db *DB) LoadSnapshot(ctx context.Context) (models.Snapshot, error) {
	var snap models.Snapshot

	load := func(name models.EntityName) ([]recordRow, error) {
		info := tables[name]
		query, args, err := db.queries.selectAlive(string(name), info)
		return db.queryRecords(ctx, "DB.LoadSnapshot", query, args, err)
	}

	notes, err := load(models.EntityNotes)
	if err != nil {
		return snap, err
	}
	branches, err := load(models.EntityBranches)
	if err != nil {
		return snap, err
	}
	attributes, err := load(models.EntityAttributes)
	if err != nil {
		return snap, err
	}
	options, err := load(models.EntityOptions)
	if err != nil {
		return snap, err
	}
	tokens, err := load(models.EntityEtapiTokens)
	if err != nil {
		return snap, err
	}

	snap.Notes = mapRecords(notes, models.NoteFromRecord)
	snap.Branches = mapRecords(branches, models.BranchFromRecord)
	snap.Attributes = mapRecords(attributes, models.AttributeFromRecord)
	snap.Options = mapRecords(options, models.OptionFromRecord)
	snap.EtapiTokens = mapRecords(tokens, models.EtapiTokenFromRecord)

	logger.FromContext(ctx).Debug().
		Str("func", "DB.LoadSnapshot").
		Int("notes", len(snap.Notes)).
		Int("branches", len(snap.Branches)).
		Int("attributes", len(snap.Attributes)).
		Msg("snapshot loaded")

	return snap, nil
}

// Upsert implements [Store].
func (db *DB) Upsert(ctx context.Context, table models.EntityName, record models.Record) error {
	info, err := lookupTable(table)
	if err != nil {
		return fmt.Errorf("%w: %s", err, table)
	}
	if record.String(info.key) == "" {
		return ErrEmptyRecord
	}

	query, args, err := db.queries.upsert(string(table), info.key, record)
	_, err = db.exec(ctx, "DB.Upsert", query, args, err)
	return err
}

// MarkDeleted implements [Store].
func (db *DB) MarkDeleted(ctx context.Context, table models.EntityName, id, deleteID, utcDateModified, dateModified string) error {
	info, err := lookupTable(table)
	if err != nil {
		return fmt.Errorf("%w: %s", err, table)
	}

	query, args, err := db.queries.markDeleted(string(table), info, id, deleteID, utcDateModified, dateModified)
	_, err = db.exec(ctx, "DB.MarkDeleted", query, args, err)
	return err
}

// GetNote implements [UndeleteStore].
func (db *DB) GetNote(ctx context.Context, noteID string) (models.Note, error) {
	query, args, err := db.queries.selectByKey(string(models.EntityNotes), tables[models.EntityNotes], noteID)
	row, err := db.queryRecord(ctx, "DB.GetNote", query, args, err)
	if err != nil {
		return models.Note{}, err
	}
	return models.NoteFromRecord(row), nil
}

// GetBranch implements [UndeleteStore].
func (db *DB) GetBranch(ctx context.Context, branchID string) (models.Branch, error) {
	query, args, err := db.queries.selectByKey(string(models.EntityBranches), tables[models.EntityBranches], branchID)
	row, err := db.queryRecord(ctx, "DB.GetBranch", query, args, err)
	if err != nil {
		return models.Branch{}, err
	}
	return models.BranchFromRecord(row), nil
}

// GetDeletedParentBranchIDs implements [UndeleteStore].
func (db *DB) GetDeletedParentBranchIDs(ctx context.Context, noteID, deleteID string) ([]string, error) {
	query, args, err := db.queries.getDeletedParentBranchIDs(noteID, deleteID)
	return db.queryStrings(ctx, "DB.GetDeletedParentBranchIDs", query, args, err)
}

// GetDeletedChildBranchIDs implements [UndeleteStore].
func (db *DB) GetDeletedChildBranchIDs(ctx context.Context, parentNoteID, deleteID string) ([]string, error) {
	query, args, err := db.queries.getDeletedChildBranchIDs(parentNoteID, deleteID)
	return db.queryStrings(ctx, "DB.GetDeletedChildBranchIDs", query, args, err)
}

// GetDeletedAttributes implements [UndeleteStore].
func (db *DB) GetDeletedAttributes(ctx context.Context, noteID, deleteID string) ([]models.Attribute, error) {
	query, args, err := db.queries.getDeletedAttributes(noteID, deleteID)
	rows, err := db.queryRecords(ctx, "DB.GetDeletedAttributes", query, args, err)
	if err != nil {
		return nil, err
	}
	return mapRecords(rows, models.AttributeFromRecord), nil
}

// GetDeletedAttachments implements [UndeleteStore].
func (db *DB) GetDeletedAttachments(ctx context.Context, ownerID, deleteID string) ([]models.Attachment, error) {
	query, args, err := db.queries.getDeletedAttachments(ownerID, deleteID)
	rows, err := db.queryRecords(ctx, "DB.GetDeletedAttachments", query, args, err)
	if err != nil {
		return nil, err
	}
	return mapRecords(rows, models.AttachmentFromRecord), nil
}
