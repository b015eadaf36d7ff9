// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
)

type Workers struct {
	workers []Worker
}

// NewWorkers returns the attachment eraser and the protected session expiry
// check configured by cfg.
func NewWorkers(eraser AttachmentEraser, expirer SessionExpirer, cfg config.Workers, logger *logger.Logger) *Workers {
	return &Workers{workers: []Worker{
		NewAttachmentErasureWorker(eraser, cfg.EraseInterval, cfg.AttachmentErasureGrace, time.Now, logger),
		NewSessionExpiryWorker(expirer, cfg.SessionExpiryInterval, logger),
	}}
}

// Start starts every worker.
func (w *Workers) Start(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Start(ctx)
	}
}

// Stop stops every worker and waits for them to exit.
func (w *Workers) Stop() {
	for _, worker := range w.workers {
		worker.Stop()
	}
}

// NewAttachmentErasureWorker erases, every interval, the attachments that
// were scheduled for erasure more than grace ago.
func NewAttachmentErasureWorker(eraser AttachmentEraser, interval, grace time.Duration, now func() time.Time, logger *logger.Logger) Worker {
	return newTickerJob("attachment-erasure", interval, func(ctx context.Context) error {
		erased, err := eraser.EraseScheduledAttachments(ctx, now().Add(-grace))
		if err != nil {
			return err
		}
		if erased > 0 {
			logger.Info().Int("erased", erased).Msg("scheduled attachments erased")
		}
		return nil
	}, logger)
}

// NewSessionExpiryWorker closes the protected session once it has been idle
// for longer than its timeout.
func NewSessionExpiryWorker(expirer SessionExpirer, interval time.Duration, logger *logger.Logger) Worker {
	return newTickerJob("protected-session-expiry", interval, func(ctx context.Context) error {
		_, err := expirer.Expire(ctx)
		return err
	}, logger)
}
