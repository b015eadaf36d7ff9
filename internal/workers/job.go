// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
)

// tickerJob calls run on every tick of interval.
type tickerJob struct {
	name     string
	interval time.Duration
	run      func(ctx context.Context) error

	logger *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newTickerJob(name string, interval time.Duration, run func(ctx context.Context) error, logger *logger.Logger) *tickerJob {
	return &tickerJob{name: name, interval: interval, run: run, logger: logger}
}

// Start stops a running job first, so at most one goroutine runs per job.
// Failed runs are logged and retried on the next tick.
func (j *tickerJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(j.logger.WithContext(ctx))
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	j.logger.Info().Str("worker", j.name).Dur("interval", j.interval).Msg("worker started")

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if err := j.run(jobCtx); err != nil && jobCtx.Err() == nil {
					j.logger.Err(err).Str("worker", j.name).Msg("worker run failed")
				}
			}
		}
	}()
}

func (j *tickerJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
