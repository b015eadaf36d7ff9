// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

const (
	saltLength    = 16
	dataKeyLength = 32
)

// kdfParams holds the Argon2id tuning parameters used to derive the
// key-encryption key from the user password.
type kdfParams struct {
	time    uint32
	memory  uint32
	threads uint8
	keyLen  uint32
}

// defaultKDF follows the OWASP (2024) recommendation:
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
var defaultKDF = kdfParams{
	time:    1,
	memory:  64 * 1024,
	threads: 4,
	keyLen:  32,
}

func (p kdfParams) deriveKEK(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, p.time, p.memory, p.threads, p.keyLen)
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}

// seal encrypts plaintext with key using AES-256-GCM. A random nonce is
// prepended to the ciphertext: blob = nonce ‖ ciphertext.
func seal(key, plaintext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	return append(nonce, gcm.Seal(nil, nonce, plaintext, nil)...), nil
}

// open reverses seal. An authentication failure almost always means the key
// is wrong.
func open(key, blob []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(blob) < nonceSize {
		return nil, ErrCiphertextTooShort
	}

	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}

// NewEncryptedDataKey prepares first-time protected session setup. It creates
// a random data key, wraps it with a key derived from password and returns
// the wrapped key and the salt, both base64 encoded, ready to be stored as
// options.
func NewEncryptedDataKey(password string) (encryptedDataKey, salt string, err error) {
	return defaultKDF.newEncryptedDataKey(password)
}

func (p kdfParams) newEncryptedDataKey(password string) (string, string, error) {
	saltBytes, err := randomBytes(saltLength)
	if err != nil {
		return "", "", fmt.Errorf("generate salt: %w", err)
	}
	dataKey, err := randomBytes(dataKeyLength)
	if err != nil {
		return "", "", fmt.Errorf("generate data key: %w", err)
	}

	wrapped, err := seal(p.deriveKEK(password, saltBytes), dataKey)
	if err != nil {
		return "", "", err
	}

	return base64.StdEncoding.EncodeToString(wrapped), base64.StdEncoding.EncodeToString(saltBytes), nil
}
