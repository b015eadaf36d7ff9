// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog.Logger for the note server.
//
// Request and operation scoped loggers travel in the context. FromContext
// falls back to the process logger built by NewLogger, so background
// workers and the graph log even without a request.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger embeds zerolog.Logger and adds context helpers.
type Logger struct {
	zerolog.Logger
}

// NewLogger builds the process logger writing JSON to stdout and registers
// it as the fallback for contexts without a logger.
func NewLogger(role string) *Logger {
	l := New(os.Stdout, role)
	zerolog.DefaultContextLogger = &l.Logger
	return l
}

// New builds a logger writing to w. Every entry carries role, a timestamp
// and the calling function name in the "func" field.
func New(w io.Writer, role string) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerFieldName = "func"
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}

	return &Logger{zerolog.New(w).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()}
}

// SetLevel parses level (e.g. "debug", "info", "warn") and applies it as the
// global zerolog level. An empty level keeps the current setting.
func SetLevel(level string) error {
	if level == "" {
		return nil
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a copy that can be enriched without touching l.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger stored in ctx, the process logger when
// there is none, or a disabled logger before NewLogger was called.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
