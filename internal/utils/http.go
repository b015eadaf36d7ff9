// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// WriteJSON encodes data and writes it with the given status code. HTML in
// note titles and values is written as is, not escaped to <.
//
// If encoding fails, a plain 500 response is written and the error returned.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	// Encode appends a newline
	body := bytes.TrimSuffix(buf.Bytes(), []byte{'\n'})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return w.Write(body)
}

// WriteContent writes raw note or attachment content with its mime type.
// An empty mime falls back to application/octet-stream.
func WriteContent(w http.ResponseWriter, mime string, content []byte) (int, error) {
	if mime == "" {
		mime = "application/octet-stream"
	}
	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.WriteHeader(http.StatusOK)
	return w.Write(content)
}
