// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of the request layer. Callers can match against them
// with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthToken is returned when the "Authorization" header does
	// not match any ETAPI token.
	ErrInvalidAuthToken = errors.New("invalid ETAPI token")

	// ErrInvalidRequestBody is returned when a request body is not valid JSON.
	ErrInvalidRequestBody = errors.New("invalid request body")
)
