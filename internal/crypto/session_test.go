// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(now func() time.Time) *Session {
	s := NewSession(WithClock(now))
	s.kdf = testKDF
	return s
}

func TestSession_EnterWithPassword(t *testing.T) {
	wrapped, salt, err := testKDF.newEncryptedDataKey("pw")
	require.NoError(t, err)

	s := newTestSession(time.Now)
	assert.False(t, s.IsProtectedSessionAvailable())

	err = s.Enter("wrong", wrapped, salt)
	assert.ErrorIs(t, err, ErrWrongPassword)
	assert.False(t, s.IsProtectedSessionAvailable())

	require.NoError(t, s.Enter("pw", wrapped, salt))
	assert.True(t, s.IsProtectedSessionAvailable())
}

func TestSession_EncryptDecrypt(t *testing.T) {
	s := newTestSession(time.Now)
	s.SetDataKey(make([]byte, 32))

	ct, err := s.Encrypt([]byte("private title"))
	require.NoError(t, err)
	assert.NotEqual(t, "private title", ct)

	pt, err := s.DecryptString(ct)
	require.NoError(t, err)
	assert.Equal(t, "private title", pt)

	_, err = s.Decrypt("not base64 !!")
	assert.Error(t, err)
}

func TestSession_UnavailableWithoutKey(t *testing.T) {
	s := newTestSession(time.Now)

	_, err := s.Encrypt([]byte("x"))
	assert.ErrorIs(t, err, ErrProtectedSessionUnavailable)
	_, err = s.Decrypt("eA==")
	assert.ErrorIs(t, err, ErrProtectedSessionUnavailable)
	_, err = s.DecryptString("eA==")
	assert.ErrorIs(t, err, ErrProtectedSessionUnavailable)
}

func TestSession_Expiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := newTestSession(func() time.Time { return now })
	s.SetDataKey(make([]byte, 32))
	assert.Equal(t, now, s.TouchedAt())

	now = now.Add(5 * time.Minute)
	assert.False(t, s.CheckExpiry(10*time.Minute))

	s.Touch()
	now = now.Add(9 * time.Minute)
	assert.False(t, s.CheckExpiry(10*time.Minute))

	now = now.Add(2 * time.Minute)
	assert.True(t, s.CheckExpiry(10*time.Minute))
	assert.False(t, s.IsProtectedSessionAvailable())
	assert.False(t, s.CheckExpiry(10*time.Minute))
}

func TestSession_Reset(t *testing.T) {
	s := newTestSession(time.Now)
	s.SetDataKey(make([]byte, 32))
	s.Reset()

	assert.False(t, s.IsProtectedSessionAvailable())
	assert.True(t, s.TouchedAt().IsZero())
}
