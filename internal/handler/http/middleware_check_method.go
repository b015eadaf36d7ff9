// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-note-keeper/internal/becca"
)

// CheckHTTPMethod returns the router's MethodNotAllowed handler. A request
// whose method is not registered for its path is answered with the ETAPI
// 404 error body instead of chi's bare 405.
//
// Only exact patterns are compared, so a parameterised path such as
// /etapi/notes/{noteId} never counts as registered here.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, route := range router.Routes() {
			if route.Pattern != r.URL.Path {
				continue
			}
			if _, ok := route.Handlers[r.Method]; ok {
				router.ServeHTTP(w, r)
				return
			}
			break
		}

		writeError(w, r, fmt.Errorf("%w: no route %s %s", becca.ErrNotFound, r.Method, r.URL.Path))
	}
}
