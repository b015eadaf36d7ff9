// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

//go:generate mockgen -source=service_protected_session.go -destination=../mock/session_keeper_mock.go -package=mock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/becca"
	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/crypto"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
)

// SessionKeeper is the part of crypto.Session the service drives.
type SessionKeeper interface {
	Enter(password, encryptedDataKey, salt string) error
	Reset()
	CheckExpiry(timeout time.Duration) bool
	IsProtectedSessionAvailable() bool
}

type protectedSessionService struct {
	graph   *becca.Becca
	session SessionKeeper

	// timeout is the idle time after which Expire closes the session.
	timeout time.Duration

	logger *logger.Logger
}

func NewProtectedSessionService(graph *becca.Becca, session SessionKeeper, cfg config.Security, logger *logger.Logger) ProtectedSessionService {
	return &protectedSessionService{
		graph:   graph,
		session: session,
		timeout: cfg.ProtectedSessionTimeout,
		logger:  logger,
	}
}

// SetPassword wraps a fresh data key with password and stores it with its
// salt as options. It fails when a password was set before.
func (p *protectedSessionService) SetPassword(ctx context.Context, password string) error {
	if password == "" {
		return ErrEmptyPassword
	}
	if p.graph.GetOption(models.OptionEncryptedDataKey) != nil {
		return ErrPasswordAlreadySet
	}

	encryptedDataKey, salt, err := crypto.NewEncryptedDataKey(password)
	if err != nil {
		return fmt.Errorf("data key creation failed: %w", err)
	}

	return inTransaction(ctx, p.graph, func(ctx context.Context) error {
		if err := p.graph.NewOption(models.Option{
			Name:     models.OptionEncryptedDataKey,
			Value:    encryptedDataKey,
			IsSynced: true,
		}).Save(ctx); err != nil {
			return err
		}
		return p.graph.NewOption(models.Option{
			Name:     models.OptionPasswordDerivedKeySalt,
			Value:    salt,
			IsSynced: true,
		}).Save(ctx)
	})
}

// Enter opens the protected session and decrypts the protected titles held
// by the graph.
func (p *protectedSessionService) Enter(ctx context.Context, password string) error {
	log := logger.FromContext(ctx).With().Str("func", "protectedSessionService.Enter").Logger()

	dataKey := p.graph.GetOption(models.OptionEncryptedDataKey)
	salt := p.graph.GetOption(models.OptionPasswordDerivedKeySalt)
	if dataKey == nil || salt == nil {
		return ErrPasswordNotSet
	}

	if err := p.session.Enter(password, dataKey.Value(), salt.Value()); err != nil {
		log.Err(err).Msg("protected session was not opened")
		if errors.Is(err, crypto.ErrWrongPassword) {
			return ErrWrongPassword
		}
		return err
	}

	decrypted := p.graph.DecryptProtectedNotes(ctx)
	log.Info().Int("decrypted", decrypted).Msg("protected session opened")
	return nil
}

// Leave closes the session and reloads the graph so no plaintext titles
// stay in memory.
func (p *protectedSessionService) Leave(ctx context.Context) error {
	p.session.Reset()
	return p.reload(ctx)
}

func (p *protectedSessionService) Expire(ctx context.Context) (bool, error) {
	if !p.session.CheckExpiry(p.timeout) {
		return false, nil
	}

	logger.FromContext(ctx).Info().Dur("timeout", p.timeout).Msg("protected session expired")
	return true, p.reload(ctx)
}

func (p *protectedSessionService) reload(ctx context.Context) error {
	if err := p.graph.Reload(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrGraphReloadFailed, err)
	}
	return nil
}
