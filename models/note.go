// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Note is the persisted form of a note. Title holds ciphertext while the note
// is protected and not decrypted.
type Note struct {
	NoteID          string   `json:"noteId"`
	Title           string   `json:"title"`
	IsProtected     bool     `json:"isProtected"`
	Type            NoteType `json:"type"`
	Mime            string   `json:"mime"`
	BlobID          string   `json:"blobId"`
	IsDeleted       bool     `json:"isDeleted"`
	DeleteID        string   `json:"deleteId,omitempty"`
	DateCreated     string   `json:"dateCreated"`
	DateModified    string   `json:"dateModified"`
	UTCDateCreated  string   `json:"utcDateCreated"`
	UTCDateModified string   `json:"utcDateModified"`
}

// Record returns the columns written by an upsert. delete_id is never written
// here, it is only set by soft deletion.
func (n Note) Record() Record {
	return Record{
		"note_id":           n.NoteID,
		"title":             n.Title,
		"is_protected":      BoolToInt(n.IsProtected),
		"type":              string(n.Type),
		"mime":              n.Mime,
		"blob_id":           n.BlobID,
		"is_deleted":        BoolToInt(n.IsDeleted),
		"date_created":      n.DateCreated,
		"date_modified":     n.DateModified,
		"utc_date_created":  n.UTCDateCreated,
		"utc_date_modified": n.UTCDateModified,
	}
}

// NoteFromRecord decodes a notes row.
func NoteFromRecord(r Record) Note {
	return Note{
		NoteID:          r.String("note_id"),
		Title:           r.String("title"),
		IsProtected:     r.Bool("is_protected"),
		Type:            NoteType(r.String("type")),
		Mime:            r.String("mime"),
		BlobID:          r.String("blob_id"),
		IsDeleted:       r.Bool("is_deleted"),
		DeleteID:        r.String("delete_id"),
		DateCreated:     r.String("date_created"),
		DateModified:    r.String("date_modified"),
		UTCDateCreated:  r.String("utc_date_created"),
		UTCDateModified: r.String("utc_date_modified"),
	}
}

// NoteColumns lists the notes table columns in select order.
var NoteColumns = []string{
	"note_id", "title", "is_protected", "type", "mime", "blob_id", "is_deleted", "delete_id",
	"date_created", "date_modified", "utc_date_created", "utc_date_modified",
}
