// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-note-keeper/internal/becca"
	"github.com/MKhiriev/go-note-keeper/internal/crypto"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

type errorStatus struct {
	status int
	code   string
}

var errorStatusMap = map[error]errorStatus{
	becca.ErrNotFound:   {http.StatusNotFound, "NOT_FOUND"},
	becca.ErrValidation: {http.StatusBadRequest, "VALIDATION_ERROR"},

	crypto.ErrProtectedSessionUnavailable: {http.StatusConflict, "PROTECTED_SESSION_UNAVAILABLE"},

	service.ErrWrongPassword:      {http.StatusUnauthorized, "WRONG_PASSWORD"},
	service.ErrPasswordNotSet:     {http.StatusConflict, "PASSWORD_NOT_SET"},
	service.ErrPasswordAlreadySet: {http.StatusConflict, "PASSWORD_ALREADY_SET"},
	service.ErrEmptyPassword:      {http.StatusBadRequest, "VALIDATION_ERROR"},
	service.ErrEmptyOptionName:    {http.StatusBadRequest, "VALIDATION_ERROR"},

	ErrEmptyAuthorizationHeader: {http.StatusUnauthorized, "NOT_AUTHENTICATED"},
	ErrInvalidAuthToken:         {http.StatusUnauthorized, "NOT_AUTHENTICATED"},
	ErrInvalidRequestBody:       {http.StatusBadRequest, "BAD_REQUEST"},
}

var internalError = errorStatus{http.StatusInternalServerError, "INTERNAL_ERROR"}

func statusFromError(err error) errorStatus {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return internalError
}

// writeError logs err and answers with the matching ErrorResponse. Internal
// errors are not echoed to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	s := statusFromError(err)

	message := err.Error()
	if s == internalError {
		logger.FromRequest(r).Err(err).Msg("request failed")
		message = http.StatusText(s.status)
	} else {
		logger.FromRequest(r).Debug().Err(err).Int("status", s.status).Msg("request rejected")
	}

	utils.WriteJSON(w, models.ErrorResponse{Status: s.status, Code: s.code, Message: message}, s.status)
}
