// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Blob is a content-addressed row holding note, attachment or revision
// content. Content is ciphertext when the owning entity is protected.
type Blob struct {
	BlobID          string `json:"blobId"`
	Content         []byte `json:"content"`
	DateModified    string `json:"dateModified"`
	UTCDateModified string `json:"utcDateModified"`
}

func (b Blob) Record() Record {
	return Record{
		"blob_id":           b.BlobID,
		"content":           b.Content,
		"date_modified":     b.DateModified,
		"utc_date_modified": b.UTCDateModified,
	}
}

func BlobFromRecord(r Record) Blob {
	return Blob{
		BlobID:          r.String("blob_id"),
		Content:         r.Bytes("content"),
		DateModified:    r.String("date_modified"),
		UTCDateModified: r.String("utc_date_modified"),
	}
}
