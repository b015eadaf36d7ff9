// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package becca

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

// Revision is a snapshot of a note. Revisions are loaded from the store per
// request and are not shared between goroutines.
type Revision struct {
	models.Revision

	b           *Becca
	isDecrypted bool
}

func (b *Becca) revisionFromRow(ctx context.Context, row models.Revision) *Revision {
	r := &Revision{Revision: row, b: b, isDecrypted: !row.IsProtected}
	if row.IsProtected && b.session.IsProtectedSessionAvailable() {
		title, err := b.session.DecryptString(row.Title)
		if err != nil {
			logger.FromContext(ctx).Err(err).Str("func", "Becca.revisionFromRow").Str("revisionId", row.RevisionID).Msg("could not decrypt revision title")
			return r
		}
		r.Title = title
		r.isDecrypted = true
	}
	return r
}

func (r *Revision) EntityName() models.EntityName { return models.EntityRevisions }
func (r *Revision) EntityID() string              { return r.RevisionID }

// DisplayTitle is the title or a placeholder while it is still encrypted.
func (r *Revision) DisplayTitle() string {
	if r.IsProtected && !r.isDecrypted {
		return protectedTitlePlaceholder
	}
	return r.Title
}

func (r *Revision) Hash() string {
	return r.hash()
}

func (r *Revision) hash() string {
	return entityHash(false,
		r.RevisionID,
		r.NoteID,
		r.Title,
		formatBool(r.IsProtected),
		r.DateLastEdited,
		r.DateCreated,
		r.UTCDateLastEdited,
		r.UTCDateCreated,
		r.UTCDateModified,
		r.BlobID,
	)
}

// Note returns the note the revision belongs to.
func (r *Revision) Note() *Note {
	return r.b.GetNote(r.NoteID)
}

// Content returns the plaintext content of the revision.
func (r *Revision) Content(ctx context.Context) ([]byte, error) {
	return r.b.readContent(ctx, r.BlobID, r.IsProtected)
}

// SetContent stores content and saves the revision when its blob changed.
func (r *Revision) SetContent(ctx context.Context, content []byte, opts ...ContentOption) error {
	o := newContentOptions(opts)

	return r.b.Transactional(ctx, func(ctx context.Context) error {
		oldBlobID := r.BlobID
		blobID, err := r.b.writeContent(ctx, content, r.IsProtected)
		if err != nil {
			return err
		}
		if blobID == oldBlobID && !o.forceSave {
			return nil
		}

		r.BlobID = blobID
		if err := r.Save(ctx); err != nil {
			return err
		}
		if oldBlobID != blobID {
			return r.b.collectBlob(ctx, oldBlobID)
		}
		return nil
	})
}

// Save persists the revision.
func (r *Revision) Save(ctx context.Context) error {
	isNew := r.RevisionID == ""
	if isNew {
		r.RevisionID = utils.NewEntityID()
	}
	utc, _ := r.b.timestamps()
	r.UTCDateModified = utc

	record := r.Record()
	if r.IsProtected {
		if !r.isDecrypted {
			delete(record, "title")
		} else {
			ciphertext, err := r.b.session.Encrypt([]byte(r.Title))
			if err != nil {
				return err
			}
			record["title"] = ciphertext
		}
	}

	return r.b.persist(ctx, write{
		entity:   r,
		table:    models.EntityRevisions,
		id:       r.RevisionID,
		record:   record,
		hash:     r.hash(),
		isNew:    isNew,
		isSynced: true,
		utcDate:  utc,
	})
}

// Attachments returns the attachments copied onto the revision.
func (r *Revision) Attachments(ctx context.Context) ([]*Attachment, error) {
	return r.b.ownerAttachments(ctx, r.RevisionID)
}
