// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Use(withGZip)
		r.Get("/etapi/app-info", h.getAppInfo)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		// the websocket handshake hijacks the connection, so no compression
		r.Get("/ws", h.push.ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(withGZip)

			r.Get("/etapi/notes/{noteId}", h.getNote)
			r.Get("/etapi/notes/{noteId}/content", h.getNoteContent)
			r.Post("/etapi/create-note", h.createNote)
			r.Delete("/etapi/notes/{noteId}", h.deleteNote)
			r.Post("/etapi/notes/{noteId}/undelete", h.undeleteNote)
			r.Post("/etapi/notes/{noteId}/clone", h.cloneNote)
			r.Post("/etapi/notes/{noteId}/duplicate", h.duplicateNote)

			r.Get("/etapi/branches/{branchId}", h.getBranch)
			r.Delete("/etapi/branches/{branchId}", h.deleteBranch)
			r.Post("/etapi/branches/{branchId}/move", h.moveBranch)

			r.Get("/etapi/attributes/{attributeId}", h.getAttribute)

			r.Get("/etapi/options/{name}", h.getOption)
			r.Put("/etapi/options/{name}", h.setOption)

			r.Post("/etapi/tokens", h.createToken)
			r.Patch("/etapi/tokens/{tokenId}", h.renameToken)
			r.Delete("/etapi/tokens/{tokenId}", h.deleteToken)

			r.Post("/etapi/protected-session/password", h.setPassword)
			r.Post("/etapi/protected-session", h.enterProtectedSession)
			r.Delete("/etapi/protected-session", h.leaveProtectedSession)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
