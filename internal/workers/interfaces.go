// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs the periodic background jobs of the note server:
// erasing attachments whose grace period is over and closing an idle
// protected session.
package workers

import (
	"context"
	"time"
)

// Worker is a background job. Start returns immediately; the job runs until
// ctx is cancelled or Stop is called.
type Worker interface {
	Start(ctx context.Context)
	// Stop cancels the job and waits for it to exit. It is a no-op when the
	// job is not running.
	Stop()
}

// AttachmentEraser hard-deletes attachments scheduled for erasure at or
// before a point in time.
type AttachmentEraser interface {
	EraseScheduledAttachments(ctx context.Context, before time.Time) (int, error)
}

// SessionExpirer closes the protected session after the idle timeout.
type SessionExpirer interface {
	Expire(ctx context.Context) (bool, error)
}
