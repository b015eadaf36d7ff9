// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-note-keeper/models"
)

func TestCheckHTTPMethod_TableTest(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/etapi/create-note", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	router.Get("/etapi/notes/{noteId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{name: "registered method", method: http.MethodPost, path: "/etapi/create-note", wantStatus: http.StatusCreated},
		{name: "wrong method on exact path", method: http.MethodGet, path: "/etapi/create-note", wantStatus: http.StatusNotFound},
		{name: "wrong method on parameterised path", method: http.MethodDelete, path: "/etapi/notes/root", wantStatus: http.StatusNotFound},
		{name: "unknown path", method: http.MethodGet, path: "/etapi/nothing", wantStatus: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil).WithContext(testContext()))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestCheckHTTPMethod_ErrorBody(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/etapi/create-note", func(http.ResponseWriter, *http.Request) {})
	router.MethodNotAllowed(CheckHTTPMethod(router))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/etapi/create-note", nil).WithContext(testContext()))

	body := decodeBody[models.ErrorResponse](t, rec)
	assert.Equal(t, http.StatusNotFound, body.Status)
	assert.Equal(t, "NOT_FOUND", body.Code)
}
