// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package becca

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

// Attachment is content owned by a note or a revision. Attachments are loaded
// from the store per request and are not shared between goroutines.
type Attachment struct {
	models.Attachment

	b *Becca
	// isDecrypted is false while Title holds ciphertext.
	isDecrypted bool
}

// NewAttachment returns an unsaved attachment with a plaintext title.
func (b *Becca) NewAttachment(row models.Attachment) *Attachment {
	return &Attachment{Attachment: row, b: b, isDecrypted: true}
}

// AttachmentFromRow wraps a row as stored. The title of a protected
// attachment is decrypted when a protected session is available.
func (b *Becca) AttachmentFromRow(ctx context.Context, row models.Attachment) *Attachment {
	a := &Attachment{Attachment: row, b: b, isDecrypted: !row.IsProtected}
	a.decrypt(ctx)
	return a
}

func (a *Attachment) decrypt(ctx context.Context) {
	if a.isDecrypted || !a.b.session.IsProtectedSessionAvailable() {
		return
	}

	title, err := a.b.session.DecryptString(a.Title)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "Attachment.decrypt").Str("attachmentId", a.AttachmentID).Msg("could not decrypt protected attachment")
		return
	}
	a.Title = title
	a.isDecrypted = true
}

// IsDecrypted reports whether Title holds plaintext.
func (a *Attachment) IsDecrypted() bool {
	return a.isDecrypted
}

func (b *Becca) ownerAttachments(ctx context.Context, ownerID string) ([]*Attachment, error) {
	rows, err := b.store.GetOwnerAttachments(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]*Attachment, 0, len(rows))
	for _, row := range rows {
		out = append(out, b.AttachmentFromRow(ctx, row))
	}
	return out, nil
}

func (a *Attachment) EntityName() models.EntityName { return models.EntityAttachments }
func (a *Attachment) EntityID() string              { return a.AttachmentID }

func (a *Attachment) Hash() string {
	return a.hash(false)
}

func (a *Attachment) hash(isDeleted bool) string {
	return entityHash(isDeleted,
		a.AttachmentID,
		a.OwnerID,
		a.Role,
		a.Mime,
		a.Title,
		a.BlobID,
		a.UTCDateScheduledForErasureSince,
	)
}

// Note returns the owning note, nil when the owner is a revision.
func (a *Attachment) Note() *Note {
	return a.b.GetNote(a.OwnerID)
}

// Content returns the plaintext content.
func (a *Attachment) Content(ctx context.Context) ([]byte, error) {
	return a.b.readContent(ctx, a.BlobID, a.IsProtected)
}

// SetContent stores content and saves the attachment when its blob changed.
func (a *Attachment) SetContent(ctx context.Context, content []byte, opts ...ContentOption) error {
	o := newContentOptions(opts)

	return a.b.Transactional(ctx, func(ctx context.Context) error {
		oldBlobID := a.BlobID
		blobID, err := a.b.writeContent(ctx, content, a.IsProtected)
		if err != nil {
			return err
		}
		if blobID == oldBlobID && !o.forceSave {
			return nil
		}

		a.BlobID = blobID
		if err := a.Save(ctx); err != nil {
			return err
		}
		if oldBlobID != blobID {
			return a.b.collectBlob(ctx, oldBlobID)
		}
		return nil
	})
}

// Save persists the attachment. A zero position places it after the other
// attachments of its owner.
func (a *Attachment) Save(ctx context.Context) error {
	if a.OwnerID == "" {
		return validationf("attachment has no owner")
	}

	isNew := a.AttachmentID == ""
	if isNew {
		a.AttachmentID = utils.NewEntityID()
	}
	if a.Position == 0 {
		siblings, err := a.b.store.GetOwnerAttachments(ctx, a.OwnerID)
		if err != nil {
			return err
		}
		var maxPosition int64
		for _, s := range siblings {
			if s.AttachmentID != a.AttachmentID && s.Position > maxPosition {
				maxPosition = s.Position
			}
		}
		a.Position = maxPosition + positionStep
	}

	utc, local := a.b.timestamps()
	a.DateModified = local
	a.UTCDateModified = utc
	a.IsDeleted = false

	record, err := a.recordToSave()
	if err != nil {
		return err
	}

	return a.b.persist(ctx, write{
		entity:   a,
		table:    models.EntityAttachments,
		id:       a.AttachmentID,
		record:   record,
		hash:     a.hash(false),
		isNew:    isNew,
		isSynced: true,
		utcDate:  utc,
	})
}

// recordToSave encrypts the title of a protected attachment. A title that is
// still ciphertext is written back unchanged.
func (a *Attachment) recordToSave() (models.Record, error) {
	record := a.Record()
	if !a.IsProtected || !a.isDecrypted {
		return record, nil
	}

	ciphertext, err := a.b.session.Encrypt([]byte(a.Title))
	if err != nil {
		return nil, err
	}
	record["title"] = ciphertext
	return record, nil
}

// MarkAsDeleted soft-deletes the attachment under deleteID.
func (a *Attachment) MarkAsDeleted(ctx context.Context, deleteID string) error {
	utc, local := a.b.timestamps()
	a.IsDeleted = true
	a.DeleteID = deleteID
	a.DateModified = local
	a.UTCDateModified = utc

	return a.b.markDeleted(ctx, deletion{
		entity:    a,
		table:     models.EntityAttachments,
		id:        a.AttachmentID,
		deleteID:  deleteID,
		hash:      a.hash(true),
		isSynced:  true,
		utcDate:   utc,
		localDate: local,
	})
}

// MarkAsDeletedSimple soft-deletes the attachment outside any cascade.
func (a *Attachment) MarkAsDeletedSimple(ctx context.Context) error {
	return a.MarkAsDeleted(ctx, "")
}

// ScheduleForErasure starts the grace period after which the attachment is
// erased by [Becca.EraseScheduledAttachments].
func (a *Attachment) ScheduleForErasure(ctx context.Context) error {
	utc, _ := a.b.timestamps()
	a.UTCDateScheduledForErasureSince = utc
	return a.Save(ctx)
}

// Copy returns an unsaved attachment sharing the content of a.
func (a *Attachment) Copy() *Attachment {
	cp := a.b.NewAttachment(models.Attachment{
		OwnerID:     a.OwnerID,
		Role:        a.Role,
		Mime:        a.Mime,
		Title:       a.Title,
		IsProtected: a.IsProtected,
		BlobID:      a.BlobID,
	})
	cp.isDecrypted = a.isDecrypted
	return cp
}
