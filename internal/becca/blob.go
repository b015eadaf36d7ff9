// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package becca

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/crypto"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

// protectedBlobSalt is prepended to protected plaintext before hashing so
// protected and unprotected copies of the same content get different blobs.
const protectedBlobSalt = "t$[nvQg7q)&_ENCRYPTED_?M:Bf&j3jr_"

// ContentOption tunes SetContent.
type ContentOption func(*contentOptions)

type contentOptions struct {
	forceSave bool
}

// ForceSave saves the owning entity even when its blob did not change.
func ForceSave() ContentOption {
	return func(o *contentOptions) {
		o.forceSave = true
	}
}

func newContentOptions(opts []ContentOption) contentOptions {
	var o contentOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// readContent loads the content behind blobID, decrypting it for protected
// owners. An empty blobID is empty content.
func (b *Becca) readContent(ctx context.Context, blobID string, isProtected bool) ([]byte, error) {
	if blobID == "" {
		return nil, nil
	}
	if isProtected && !b.session.IsProtectedSessionAvailable() {
		return nil, crypto.ErrProtectedSessionUnavailable
	}

	blob, err := b.GetBlob(ctx, blobID)
	if err != nil {
		return nil, err
	}
	if !isProtected {
		return blob.Content, nil
	}

	content, err := b.session.Decrypt(string(blob.Content))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "Becca.readContent").Str("blobId", blobID).Msg("could not decrypt blob")
		return nil, err
	}
	return content, nil
}

// writeContent stores content as a blob and returns its id. Identical
// content resolves to the existing blob.
func (b *Becca) writeContent(ctx context.Context, content []byte, isProtected bool) (string, error) {
	if isProtected && !b.session.IsProtectedSessionAvailable() {
		return "", fmt.Errorf("%w: cannot set content of a protected entity", crypto.ErrProtectedSessionUnavailable)
	}

	salt := ""
	if isProtected {
		salt = protectedBlobSalt
	}
	blobID := utils.BlobID(salt, content)

	exists, err := b.store.BlobExists(ctx, blobID)
	if err != nil {
		return "", err
	}
	if exists {
		return blobID, nil
	}

	stored := content
	if isProtected {
		ciphertext, err := b.session.Encrypt(content)
		if err != nil {
			return "", err
		}
		stored = []byte(ciphertext)
	}

	utc, local := b.timestamps()
	if err := b.store.InsertBlob(ctx, models.Blob{
		BlobID:          blobID,
		Content:         stored,
		DateModified:    local,
		UTCDateModified: utc,
	}); err != nil {
		return "", err
	}

	return blobID, b.store.PutEntityChange(ctx, models.EntityChange{
		EntityName:     models.EntityBlobs,
		EntityID:       blobID,
		Hash:           entityHash(false, blobID, string(stored)),
		IsSynced:       true,
		UTCDateChanged: utc,
	})
}

// collectBlob hard-deletes blobID once nothing references it. Blobs leave
// no tombstone, so their change record goes too.
func (b *Becca) collectBlob(ctx context.Context, blobID string) error {
	if blobID == "" {
		return nil
	}

	refs, err := b.store.CountBlobReferences(ctx, blobID)
	if err != nil {
		return err
	}
	if refs > 0 {
		return nil
	}

	if err := b.store.DeleteBlob(ctx, blobID); err != nil {
		return err
	}
	logger.FromContext(ctx).Debug().Str("blobId", blobID).Msg("unused blob deleted")
	return b.store.DeleteEntityChanges(ctx, models.EntityBlobs, blobID)
}
