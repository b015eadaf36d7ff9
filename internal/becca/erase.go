// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package becca

import (
	"context"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
)

// EraseRevision hard-deletes a revision with its attachments and any blob
// left unreferenced. The change records stay behind flagged as erased.
func (b *Becca) EraseRevision(ctx context.Context, revisionID string) error {
	return b.Transactional(ctx, func(ctx context.Context) error {
		rev, err := b.GetRevisionOrThrow(ctx, revisionID)
		if err != nil {
			return err
		}

		attachments, err := rev.Attachments(ctx)
		if err != nil {
			return err
		}
		for _, att := range attachments {
			if err := b.eraseAttachment(ctx, att.Attachment); err != nil {
				return err
			}
		}

		if err := b.store.EraseRevision(ctx, revisionID); err != nil {
			return err
		}
		if err := b.markErased(ctx, models.EntityRevisions, revisionID); err != nil {
			return err
		}

		logger.FromContext(ctx).Info().Str("revisionId", revisionID).Msg("revision erased")
		return b.collectBlob(ctx, rev.BlobID)
	})
}

// EraseScheduledAttachments erases attachments scheduled for erasure at or
// before the given time and reports how many were erased.
func (b *Becca) EraseScheduledAttachments(ctx context.Context, before time.Time) (int, error) {
	var erased int
	err := b.Transactional(ctx, func(ctx context.Context) error {
		rows, err := b.store.GetAttachmentsScheduledForErasure(ctx, models.UTCDateTime(before))
		if err != nil {
			return err
		}
		for _, row := range rows {
			if err := b.eraseAttachment(ctx, row); err != nil {
				return err
			}
			erased++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return erased, nil
}

func (b *Becca) eraseAttachment(ctx context.Context, row models.Attachment) error {
	if err := b.store.EraseAttachment(ctx, row.AttachmentID); err != nil {
		return err
	}
	if err := b.markErased(ctx, models.EntityAttachments, row.AttachmentID); err != nil {
		return err
	}
	return b.collectBlob(ctx, row.BlobID)
}
