// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

func newHandlerWithTokenService(tokens service.TokenService) *Handler {
	return &Handler{
		logger:   logger.Nop(),
		services: &service.Services{TokenService: tokens},
	}
}

func TestAuth_Middleware_TableTest(t *testing.T) {
	tests := []struct {
		name        string
		header      string
		validHeader string
		wantStatus  int
		wantTokenID string
		wantCalls   int
	}{
		{
			name:        "valid token",
			header:      "tok_secret",
			validHeader: "tok_secret",
			wantStatus:  http.StatusOK,
			wantTokenID: "tok",
			wantCalls:   1,
		},
		{
			name:        "unknown token",
			header:      "tok_other",
			validHeader: "tok_secret",
			wantStatus:  http.StatusUnauthorized,
			wantCalls:   1,
		},
		{
			name:        "missing header is rejected before lookup",
			validHeader: "tok_secret",
			wantStatus:  http.StatusUnauthorized,
			wantCalls:   0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			h := newHandlerWithTokenService(&mockTokenService{
				isValidAuthHeaderFn: func(_ context.Context, header string) (string, bool) {
					calls++
					if header == tt.validHeader {
						return "tok", true
					}
					return "", false
				},
			})

			var gotTokenID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotTokenID, _ = utils.GetTokenIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/etapi/notes/root", nil).WithContext(testContext())
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.auth(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantTokenID, gotTokenID)
			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, "NOT_AUTHENTICATED", decodeBody[models.ErrorResponse](t, rec).Code)
			}
		})
	}
}
