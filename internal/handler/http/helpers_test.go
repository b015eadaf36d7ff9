// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-note-keeper/internal/becca"
	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/crypto"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/push"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
)

// ─────────────────────────────────────────────
// Mock: TokenService
// ─────────────────────────────────────────────

type mockTokenService struct {
	isValidAuthHeaderFn func(ctx context.Context, header string) (string, bool)
}

func (m *mockTokenService) CreateToken(_ context.Context, _ string) (string, error) {
	return "", nil
}

func (m *mockTokenService) IsValidAuthHeader(ctx context.Context, header string) (string, bool) {
	return m.isValidAuthHeaderFn(ctx, header)
}

func (m *mockTokenService) RenameToken(_ context.Context, _, _ string) error { return nil }
func (m *mockTokenService) DeleteToken(_ context.Context, _ string) error    { return nil }

func testContext() context.Context {
	return zerolog.Nop().WithContext(context.Background())
}

// ─────────────────────────────────────────────
// etapiServer: the full router over an in-memory graph
// ─────────────────────────────────────────────

type etapiServer struct {
	router    http.Handler
	graph     *becca.Becca
	services  *service.Services
	hub       *push.Hub
	authToken string
}

func newETAPIServer(t *testing.T) *etapiServer {
	t.Helper()

	cfg := config.Defaults
	cfg.App.HashKey = "test-hash-key"
	cfg.App.Version = "1.0.0-test"

	hub := push.NewHub(logger.Nop())
	t.Cleanup(hub.Close)

	st := store.NewMemoryStore()
	session := crypto.NewSession()
	graph := becca.New(st,
		becca.WithProtectedSession(session),
		becca.WithChangeListener(hub),
		becca.WithHiddenRootID(cfg.App.HiddenRootID),
		becca.WithWeakBranchParents(cfg.App.WeakBranchParents...),
	)
	require.NoError(t, graph.InitRoot(testContext()))
	require.NoError(t, graph.Reload(testContext()))

	services, err := service.NewServices(graph, st, session, cfg, models.NewAppBuildInfo(cfg.App.Version, "2026-03-01", "abc123"), logger.Nop())
	require.NoError(t, err)

	authToken, err := services.TokenService.CreateToken(testContext(), "tests")
	require.NoError(t, err)

	return &etapiServer{
		router:    NewHandler(services, graph, hub, logger.Nop()).Init(),
		graph:     graph,
		services:  services,
		hub:       hub,
		authToken: authToken,
	}
}

// do sends an authenticated request. body is encoded as JSON unless nil.
func (s *etapiServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", s.authToken)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}
