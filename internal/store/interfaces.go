// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/models"
)

// Store is the persistence collaborator of the note graph. Every method
// joins the transaction carried by ctx when there is one.
type Store interface {
	// Transactional runs fn atomically. Nested calls reuse the outer
	// transaction; fn receives a context carrying it.
	Transactional(ctx context.Context, fn func(ctx context.Context) error) error

	// LoadSnapshot returns every non-deleted note, branch, attribute and
	// etapi token, and all options.
	LoadSnapshot(ctx context.Context) (models.Snapshot, error)

	// Upsert inserts record into table or updates the columns present in
	// record when a row with the same primary key exists.
	Upsert(ctx context.Context, table models.EntityName, record models.Record) error

	// MarkDeleted soft-deletes a row. deleteID and dateModified are ignored
	// for tables that lack the column.
	MarkDeleted(ctx context.Context, table models.EntityName, id, deleteID, utcDateModified, dateModified string) error

	BlobStore
	EntityChangeStore
	RevisionStore
	AttachmentStore
	UndeleteStore
}

// BlobStore keeps content-addressed blobs.
type BlobStore interface {
	BlobExists(ctx context.Context, blobID string) (bool, error)
	GetBlob(ctx context.Context, blobID string) (models.Blob, error)
	InsertBlob(ctx context.Context, blob models.Blob) error
	// CountBlobReferences counts notes, attachments and revisions, deleted
	// or not, that point at blobID.
	CountBlobReferences(ctx context.Context, blobID string) (int, error)
	DeleteBlob(ctx context.Context, blobID string) error
}

// EntityChangeStore keeps the change-tracking records.
type EntityChangeStore interface {
	PutEntityChange(ctx context.Context, change models.EntityChange) error
	GetEntityChange(ctx context.Context, entityName models.EntityName, entityID string) (models.EntityChange, error)
	DeleteEntityChanges(ctx context.Context, entityName models.EntityName, entityID string) error
}

// RevisionStore loads and erases revisions. Revisions are not kept in memory.
type RevisionStore interface {
	GetRevision(ctx context.Context, revisionID string) (models.Revision, error)
	GetNoteRevisions(ctx context.Context, noteID string) ([]models.Revision, error)
	EraseRevision(ctx context.Context, revisionID string) error
}

// AttachmentStore loads and erases attachments. Attachments are not kept in
// memory.
type AttachmentStore interface {
	// GetAttachment returns a non-deleted attachment.
	GetAttachment(ctx context.Context, attachmentID string) (models.Attachment, error)
	// GetOwnerAttachments returns the non-deleted attachments of a note or
	// revision ordered by position.
	GetOwnerAttachments(ctx context.Context, ownerID string) ([]models.Attachment, error)
	// GetAttachmentsScheduledForErasure returns attachments scheduled for
	// erasure at or before the given UTC timestamp.
	GetAttachmentsScheduledForErasure(ctx context.Context, before string) ([]models.Attachment, error)
	EraseAttachment(ctx context.Context, attachmentID string) error
}

// UndeleteStore reads soft-deleted rows back by their delete id.
type UndeleteStore interface {
	// GetNote returns a note row whether deleted or not.
	GetNote(ctx context.Context, noteID string) (models.Note, error)
	// GetBranch returns a branch row whether deleted or not.
	GetBranch(ctx context.Context, branchID string) (models.Branch, error)
	// GetDeletedParentBranchIDs returns branches of noteID deleted under
	// deleteID whose parent note is still alive.
	GetDeletedParentBranchIDs(ctx context.Context, noteID, deleteID string) ([]string, error)
	// GetDeletedChildBranchIDs returns branches under parentNoteID deleted
	// under deleteID.
	GetDeletedChildBranchIDs(ctx context.Context, parentNoteID, deleteID string) ([]string, error)
	// GetDeletedAttributes returns attributes deleted under deleteID that are
	// owned by noteID or are relations targeting it.
	GetDeletedAttributes(ctx context.Context, noteID, deleteID string) ([]models.Attribute, error)
	// GetDeletedAttachments returns attachments of ownerID deleted under deleteID.
	GetDeletedAttachments(ctx context.Context, ownerID, deleteID string) ([]models.Attachment, error)
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
