// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Revision is a point-in-time snapshot of a note. Revisions are never soft
// deleted, they are erased.
type Revision struct {
	RevisionID        string   `json:"revisionId"`
	NoteID            string   `json:"noteId"`
	Type              NoteType `json:"type"`
	Mime              string   `json:"mime"`
	IsProtected       bool     `json:"isProtected"`
	Title             string   `json:"title"`
	BlobID            string   `json:"blobId"`
	DateLastEdited    string   `json:"dateLastEdited"`
	DateCreated       string   `json:"dateCreated"`
	UTCDateLastEdited string   `json:"utcDateLastEdited"`
	UTCDateCreated    string   `json:"utcDateCreated"`
	UTCDateModified   string   `json:"utcDateModified"`
	ContentLength     int64    `json:"contentLength,omitempty"`
}

func (r Revision) Record() Record {
	return Record{
		"revision_id":          r.RevisionID,
		"note_id":              r.NoteID,
		"type":                 string(r.Type),
		"mime":                 r.Mime,
		"is_protected":         BoolToInt(r.IsProtected),
		"title":                r.Title,
		"blob_id":              r.BlobID,
		"date_last_edited":     r.DateLastEdited,
		"date_created":         r.DateCreated,
		"utc_date_last_edited": r.UTCDateLastEdited,
		"utc_date_created":     r.UTCDateCreated,
		"utc_date_modified":    r.UTCDateModified,
	}
}

func RevisionFromRecord(r Record) Revision {
	return Revision{
		RevisionID:        r.String("revision_id"),
		NoteID:            r.String("note_id"),
		Type:              NoteType(r.String("type")),
		Mime:              r.String("mime"),
		IsProtected:       r.Bool("is_protected"),
		Title:             r.String("title"),
		BlobID:            r.String("blob_id"),
		DateLastEdited:    r.String("date_last_edited"),
		DateCreated:       r.String("date_created"),
		UTCDateLastEdited: r.String("utc_date_last_edited"),
		UTCDateCreated:    r.String("utc_date_created"),
		UTCDateModified:   r.String("utc_date_modified"),
		ContentLength:     r.Int("content_length"),
	}
}

var RevisionColumns = []string{
	"revision_id", "note_id", "type", "mime", "is_protected", "title", "blob_id",
	"date_last_edited", "date_created", "utc_date_last_edited", "utc_date_created", "utc_date_modified",
}
