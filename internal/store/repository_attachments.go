// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/models"
)

// GetRevision implements [RevisionStore].
func (db *DB) GetRevision(ctx context.Context, revisionID string) (models.Revision, error) {
	query, args, err := db.queries.getRevision(revisionID)
	row, err := db.queryRecord(ctx, "DB.GetRevision", query, args, err)
	if err != nil {
		return models.Revision{}, err
	}
	return models.RevisionFromRecord(row), nil
}

// GetNoteRevisions implements [RevisionStore].
func (db *DB) GetNoteRevisions(ctx context.Context, noteID string) ([]models.Revision, error) {
	query, args, err := db.queries.getNoteRevisions(noteID)
	rows, err := db.queryRecords(ctx, "DB.GetNoteRevisions", query, args, err)
	if err != nil {
		return nil, err
	}
	return mapRecords(rows, models.RevisionFromRecord), nil
}

// EraseRevision implements [RevisionStore].
func (db *DB) EraseRevision(ctx context.Context, revisionID string) error {
	query, args, err := db.queries.deleteByKey(string(models.EntityRevisions), "revision_id", revisionID)
	_, err = db.exec(ctx, "DB.EraseRevision", query, args, err)
	return err
}

// GetAttachment implements [AttachmentStore].
func (db *DB) GetAttachment(ctx context.Context, attachmentID string) (models.Attachment, error) {
	query, args, err := db.queries.getAttachment(attachmentID)
	row, err := db.queryRecord(ctx, "DB.GetAttachment", query, args, err)
	if err != nil {
		return models.Attachment{}, err
	}
	return models.AttachmentFromRecord(row), nil
}

// GetOwnerAttachments implements [AttachmentStore].
func (db *DB) GetOwnerAttachments(ctx context.Context, ownerID string) ([]models.Attachment, error) {
	query, args, err := db.queries.getOwnerAttachments(ownerID)
	rows, err := db.queryRecords(ctx, "DB.GetOwnerAttachments", query, args, err)
	if err != nil {
		return nil, err
	}
	return mapRecords(rows, models.AttachmentFromRecord), nil
}

// GetAttachmentsScheduledForErasure implements [AttachmentStore].
func (db *DB) GetAttachmentsScheduledForErasure(ctx context.Context, before string) ([]models.Attachment, error) {
	query, args, err := db.queries.getAttachmentsScheduledForErasure(before)
	rows, err := db.queryRecords(ctx, "DB.GetAttachmentsScheduledForErasure", query, args, err)
	if err != nil {
		return nil, err
	}
	return mapRecords(rows, models.AttachmentFromRecord), nil
}

// EraseAttachment implements [AttachmentStore].
func (db *DB) EraseAttachment(ctx context.Context, attachmentID string) error {
	query, args, err := db.queries.deleteByKey(string(models.EntityAttachments), "attachment_id", attachmentID)
	_, err = db.exec(ctx, "DB.EraseAttachment", query, args, err)
	return err
}
