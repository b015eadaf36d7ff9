// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/protected_session_mock.go -package=mock

// ProtectedSession encrypts and decrypts protected note titles and content
// with the data key of the currently open protected session.
//
// Every method returns [ErrProtectedSessionUnavailable] while no data key is
// held, so callers can decide whether to degrade or fail.
type ProtectedSession interface {
	// IsProtectedSessionAvailable reports whether a data key is held.
	IsProtectedSessionAvailable() bool

	// Encrypt seals plaintext and returns base64(nonce ‖ ciphertext).
	Encrypt(plaintext []byte) (string, error)

	// Decrypt opens a value produced by Encrypt.
	Decrypt(ciphertext string) ([]byte, error)

	// DecryptString is Decrypt returning a string.
	DecryptString(ciphertext string) (string, error)
}
