// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

// UUIDGenerator produces time-ordered ids. Delete-cascade correlators use it
// so that rows deleted together share a sortable id.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

const (
	entityIDAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	entityIDLength   = 12
)

// NewEntityID returns a random 12-character alphanumeric id used as the
// primary key of notes, attributes, revisions, attachments and tokens.
func NewEntityID() string {
	return RandomString(entityIDLength)
}

// RandomString returns n characters drawn uniformly from the alphanumeric
// alphabet using crypto/rand.
func RandomString(n int) string {
	buf := make([]byte, n)
	limit := big.NewInt(int64(len(entityIDAlphabet)))
	for i := range buf {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			// crypto/rand does not fail on supported platforms
			panic(err)
		}
		buf[i] = entityIDAlphabet[idx.Int64()]
	}
	return string(buf)
}
