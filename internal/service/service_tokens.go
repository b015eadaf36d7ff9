// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-note-keeper/internal/becca"
	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

const basicAuthPrefix = "Basic "

// tokenService is the concrete implementation of TokenService.
type tokenService struct {
	graph *becca.Becca

	// hashKey is the HMAC secret applied to token secrets before they are
	// stored or compared. Changing it invalidates every issued token.
	hashKey string

	logger *logger.Logger
}

func NewTokenService(graph *becca.Becca, cfg config.App, logger *logger.Logger) (TokenService, error) {
	if cfg.HashKey == "" {
		return nil, ErrHashKeyNotSpecified
	}

	return &tokenService{
		graph:   graph,
		hashKey: cfg.HashKey,
		logger:  logger,
	}, nil
}

// CreateToken stores a new token called name and returns its auth token.
// The secret part is not kept anywhere.
func (t *tokenService) CreateToken(ctx context.Context, name string) (string, error) {
	log := logger.FromContext(ctx).With().Str("func", "tokenService.CreateToken").Logger()

	secret := strings.ReplaceAll(uuid.NewString(), "-", "")
	token := t.graph.NewEtapiToken(models.EtapiToken{
		Name:      name,
		TokenHash: utils.HashString(secret, t.hashKey),
	})
	if err := inTransaction(ctx, t.graph, token.Save); err != nil {
		log.Err(err).Str("name", name).Msg("token creation failed")
		return "", err
	}

	log.Info().Str("etapiTokenId", token.ID()).Msg("etapi token created")
	return token.ID() + "_" + secret, nil
}

// IsValidAuthHeader accepts "<etapiTokenId>_<secret>", a bare secret of an
// older token, or either of them as the password of a basic auth header.
func (t *tokenService) IsValidAuthHeader(ctx context.Context, header string) (string, bool) {
	authToken := parseAuthHeader(header)
	if authToken == "" {
		return "", false
	}

	tokenID, secret, hasID := strings.Cut(authToken, "_")
	if !hasID {
		secret = authToken
	} else if strings.Contains(secret, "_") {
		return "", false
	}
	hash := utils.HashString(secret, t.hashKey)

	if hasID {
		token := t.graph.GetEtapiToken(tokenID)
		if token == nil || !sameHash(token.TokenHash(), hash) {
			logger.FromContext(ctx).Debug().Str("etapiTokenId", tokenID).Msg("etapi token rejected")
			return "", false
		}
		return tokenID, true
	}

	for _, token := range t.graph.EtapiTokens() {
		if sameHash(token.TokenHash(), hash) {
			return token.ID(), true
		}
	}
	return "", false
}

func parseAuthHeader(header string) string {
	header = strings.TrimSpace(header)
	encoded, ok := strings.CutPrefix(header, basicAuthPrefix)
	if !ok {
		return header
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return ""
	}
	_, password, _ := strings.Cut(string(decoded), ":")
	return password
}

func sameHash(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func (t *tokenService) RenameToken(ctx context.Context, tokenID, name string) error {
	token, err := t.graph.GetEtapiTokenOrThrow(tokenID)
	if err != nil {
		return err
	}

	token.Rename(name)
	return inTransaction(ctx, t.graph, token.Save)
}

func (t *tokenService) DeleteToken(ctx context.Context, tokenID string) error {
	token, err := t.graph.GetEtapiTokenOrThrow(tokenID)
	if err != nil {
		return err
	}

	if err = inTransaction(ctx, t.graph, token.MarkAsDeleted); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "tokenService.DeleteToken").Msg("token deletion failed")
		return err
	}
	return nil
}
