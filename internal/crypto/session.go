// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"encoding/base64"
	"fmt"
	"sync"
	"time"
)

// Session is the process-wide protected session. It holds the data key while
// the user is logged into the protected area and drops it on Reset or after
// an idle timeout.
type Session struct {
	mu        sync.RWMutex
	dataKey   []byte
	touchedAt time.Time

	kdf kdfParams
	now func() time.Time
}

// SessionOption customises a Session.
type SessionOption func(*Session)

// WithClock replaces time.Now, used to drive expiry in tests.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		s.now = now
	}
}

// NewSession returns a closed session.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		kdf: defaultKDF,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enter derives the key-encryption key from password and salt, unwraps
// encryptedDataKey and opens the session. Both inputs are base64 encoded, as
// stored in the encryptedDataKey and passwordDerivedKeySalt options.
func (s *Session) Enter(password, encryptedDataKey, salt string) error {
	saltBytes, err := base64.StdEncoding.DecodeString(salt)
	if err != nil {
		return fmt.Errorf("decode salt: %w", err)
	}
	wrapped, err := base64.StdEncoding.DecodeString(encryptedDataKey)
	if err != nil {
		return fmt.Errorf("decode data key: %w", err)
	}

	dataKey, err := open(s.kdf.deriveKEK(password, saltBytes), wrapped)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrongPassword, err)
	}

	s.SetDataKey(dataKey)
	return nil
}

// SetDataKey opens the session with an already unwrapped data key.
func (s *Session) SetDataKey(dataKey []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dataKey = append([]byte(nil), dataKey...)
	s.touchedAt = s.now()
}

// Reset closes the session.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dataKey = nil
	s.touchedAt = time.Time{}
}

// Touch marks the session as used, postponing expiry.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dataKey != nil {
		s.touchedAt = s.now()
	}
}

// TouchedAt returns the last time the session was opened or touched.
func (s *Session) TouchedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.touchedAt
}

// CheckExpiry closes the session when it has been idle for longer than
// timeout and reports whether it did so.
func (s *Session) CheckExpiry(timeout time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dataKey == nil || timeout <= 0 {
		return false
	}
	if s.now().Sub(s.touchedAt) < timeout {
		return false
	}

	s.dataKey = nil
	s.touchedAt = time.Time{}
	return true
}

func (s *Session) IsProtectedSessionAvailable() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataKey != nil
}

func (s *Session) key() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dataKey == nil {
		return nil, ErrProtectedSessionUnavailable
	}
	return s.dataKey, nil
}

func (s *Session) Encrypt(plaintext []byte) (string, error) {
	key, err := s.key()
	if err != nil {
		return "", err
	}

	blob, err := seal(key, plaintext)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(blob), nil
}

func (s *Session) Decrypt(ciphertext string) ([]byte, error) {
	key, err := s.key()
	if err != nil {
		return nil, err
	}

	blob, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	return open(key, blob)
}

func (s *Session) DecryptString(ciphertext string) (string, error) {
	plaintext, err := s.Decrypt(ciphertext)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
