// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// HashString computes an HMAC-SHA256 signature over the given string
// using the provided hash key and returns the result as a hex-encoded string.
// ETAPI token secrets are stored only in this form.
func HashString(data string, hashKey string) string {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write([]byte(data))
	return hex.EncodeToString(hasher.Sum(nil))
}

// entityHashLength is the length of a change-detection hash.
const entityHashLength = 10

// EntityHash returns the short change-detection hash of the given property
// values. Values are joined with "|" in the order given.
func EntityHash(values ...string) string {
	sum := sha1.Sum([]byte(strings.Join(values, "|")))
	return base64.StdEncoding.EncodeToString(sum[:])[:entityHashLength]
}

// blobIDLength is the length of a content-addressed blob id.
const blobIDLength = 20

var blobIDReplacer = strings.NewReplacer("+", "X", "/", "Y")

// BlobID returns the content-addressed id for content. The id is computed
// over salt followed by the content, so callers can keep encrypted-state and
// plaintext-state ids apart.
func BlobID(salt string, content []byte) string {
	h := sha512.New()
	h.Write([]byte(salt))
	h.Write(content)
	encoded := blobIDReplacer.Replace(base64.StdEncoding.EncodeToString(h.Sum(nil)))
	return encoded[:blobIDLength]
}
