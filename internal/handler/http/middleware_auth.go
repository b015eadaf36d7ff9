// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
)

// auth is an HTTP middleware that enforces ETAPI token authentication.
//
// The "Authorization" header may carry "<etapiTokenId>_<secret>", a bare
// secret, or HTTP Basic credentials with the token as password. On success
// the token id is stored in the request context under [utils.TokenIDCtxKey].
//
// Requests without the header or with an unknown token are rejected with
// HTTP 401 Unauthorized.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		ctx := r.Context()
		tokenID, ok := h.services.TokenService.IsValidAuthHeader(ctx, authHeader)
		if !ok {
			log.Err(ErrInvalidAuthToken).Send()
			writeError(w, r, ErrInvalidAuthToken)
			return
		}

		ctx = context.WithValue(ctx, utils.TokenIDCtxKey, tokenID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
