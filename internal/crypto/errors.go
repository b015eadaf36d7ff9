// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

var (
	// ErrProtectedSessionUnavailable is returned when encrypted data is
	// accessed without an active protected session.
	ErrProtectedSessionUnavailable = errors.New("protected session is not available")
	// ErrWrongPassword is returned when the password cannot unwrap the data key.
	ErrWrongPassword = errors.New("wrong password")
	// ErrCiphertextTooShort is returned for blobs shorter than the GCM nonce.
	ErrCiphertextTooShort = errors.New("ciphertext too short")
)
