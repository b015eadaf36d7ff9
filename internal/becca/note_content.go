// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package becca

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/internal/crypto"
	"github.com/MKhiriev/go-note-keeper/models"
)

// Content returns the plaintext content of the note. Protected content
// requires an open protected session.
func (n *Note) Content(ctx context.Context) ([]byte, error) {
	row := n.Row()
	return n.b.readContent(ctx, row.BlobID, row.IsProtected)
}

func (n *Note) ContentString(ctx context.Context) (string, error) {
	content, err := n.Content(ctx)
	return string(content), err
}

// SetContent stores content and saves the note when its blob changed. The
// previous blob is deleted once nothing references it.
func (n *Note) SetContent(ctx context.Context, content []byte, opts ...ContentOption) error {
	o := newContentOptions(opts)
	b := n.b

	return b.Transactional(ctx, func(ctx context.Context) error {
		row := n.Row()
		blobID, err := b.writeContent(ctx, content, row.IsProtected)
		if err != nil {
			return err
		}
		if blobID == row.BlobID && !o.forceSave {
			return nil
		}

		n.Update(func(r *models.Note) { r.BlobID = blobID })
		if err := n.Save(ctx); err != nil {
			return err
		}
		if row.BlobID != blobID {
			return b.collectBlob(ctx, row.BlobID)
		}
		return nil
	})
}

func (n *Note) SetContentString(ctx context.Context, content string, opts ...ContentOption) error {
	return n.SetContent(ctx, []byte(content), opts...)
}

// Revisions returns the stored revisions of the note, oldest first.
func (n *Note) Revisions(ctx context.Context) ([]*Revision, error) {
	rows, err := n.b.store.GetNoteRevisions(ctx, n.ID())
	if err != nil {
		return nil, err
	}
	out := make([]*Revision, 0, len(rows))
	for _, row := range rows {
		out = append(out, n.b.revisionFromRow(ctx, row))
	}
	return out, nil
}

// SaveRevision snapshots the title, type, mime and content of the note
// together with copies of its live attachments.
func (n *Note) SaveRevision(ctx context.Context) (*Revision, error) {
	b := n.b
	b.mu.RLock()
	row, isDecrypted := n.row, n.isDecrypted
	b.mu.RUnlock()

	if row.IsProtected && !isDecrypted {
		return nil, crypto.ErrProtectedSessionUnavailable
	}

	var rev *Revision
	err := b.Transactional(ctx, func(ctx context.Context) error {
		content, err := n.Content(ctx)
		if err != nil {
			return err
		}

		utc, local := b.timestamps()
		rev = &Revision{
			Revision: models.Revision{
				NoteID:            row.NoteID,
				Type:              row.Type,
				Mime:              row.Mime,
				IsProtected:       row.IsProtected,
				Title:             row.Title,
				DateLastEdited:    row.DateModified,
				DateCreated:       local,
				UTCDateLastEdited: row.UTCDateModified,
				UTCDateCreated:    utc,
			},
			b:           b,
			isDecrypted: true,
		}
		if err := rev.SetContent(ctx, content, ForceSave()); err != nil {
			return err
		}

		attachments, err := n.Attachments(ctx)
		if err != nil {
			return err
		}
		for _, att := range attachments {
			if att.UTCDateScheduledForErasureSince != "" {
				continue
			}
			cp := att.Copy()
			cp.OwnerID = rev.RevisionID
			cp.Position = att.Position
			if err := cp.Save(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rev, nil
}

// Attachments returns the live attachments of the note ordered by position.
func (n *Note) Attachments(ctx context.Context) ([]*Attachment, error) {
	return n.b.ownerAttachments(ctx, n.ID())
}

// SaveAttachment creates an attachment, or updates the one with the given
// AttachmentID, and stores its content.
func (n *Note) SaveAttachment(ctx context.Context, row models.Attachment, content []byte) (*Attachment, error) {
	b := n.b

	var att *Attachment
	err := b.Transactional(ctx, func(ctx context.Context) error {
		if row.AttachmentID != "" {
			existing, err := b.GetAttachment(ctx, row.AttachmentID)
			if err != nil {
				return err
			}
			if existing != nil && existing.OwnerID != n.ID() {
				return validationf("attachment '%s' is not owned by note '%s'", row.AttachmentID, n.ID())
			}
			if existing != nil {
				att = existing
				att.Role, att.Mime, att.Title = row.Role, row.Mime, row.Title
				att.isDecrypted = true
				if row.Position != 0 {
					att.Position = row.Position
				}
			}
		}
		if att == nil {
			row.OwnerID = n.ID()
			row.IsProtected = n.IsProtected()
			att = b.NewAttachment(row)
		}
		return att.SetContent(ctx, content, ForceSave())
	})
	if err != nil {
		return nil, err
	}
	return att, nil
}
