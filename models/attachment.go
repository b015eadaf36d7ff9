// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Attachment is content owned by a note or a revision. OwnerID references
// either kind.
type Attachment struct {
	AttachmentID                    string `json:"attachmentId"`
	OwnerID                         string `json:"ownerId"`
	Role                            string `json:"role"`
	Mime                            string `json:"mime"`
	Title                           string `json:"title"`
	IsProtected                     bool   `json:"isProtected"`
	Position                        int64  `json:"position"`
	BlobID                          string `json:"blobId"`
	IsDeleted                       bool   `json:"isDeleted"`
	DeleteID                        string `json:"deleteId,omitempty"`
	DateModified                    string `json:"dateModified"`
	UTCDateModified                 string `json:"utcDateModified"`
	UTCDateScheduledForErasureSince string `json:"utcDateScheduledForErasureSince,omitempty"`
	ContentLength                   int64  `json:"contentLength,omitempty"`
}

// Attachment roles.
const (
	AttachmentRoleImage = "image"
	AttachmentRoleFile  = "file"
)

func (a Attachment) Record() Record {
	return Record{
		"attachment_id":                        a.AttachmentID,
		"owner_id":                             a.OwnerID,
		"role":                                 a.Role,
		"mime":                                 a.Mime,
		"title":                                a.Title,
		"is_protected":                         BoolToInt(a.IsProtected),
		"position":                             a.Position,
		"blob_id":                              a.BlobID,
		"is_deleted":                           BoolToInt(a.IsDeleted),
		"date_modified":                        a.DateModified,
		"utc_date_modified":                    a.UTCDateModified,
		"utc_date_scheduled_for_erasure_since": Nullable(a.UTCDateScheduledForErasureSince),
	}
}

func AttachmentFromRecord(r Record) Attachment {
	return Attachment{
		AttachmentID:                    r.String("attachment_id"),
		OwnerID:                         r.String("owner_id"),
		Role:                            r.String("role"),
		Mime:                            r.String("mime"),
		Title:                           r.String("title"),
		IsProtected:                     r.Bool("is_protected"),
		Position:                        r.Int("position"),
		BlobID:                          r.String("blob_id"),
		IsDeleted:                       r.Bool("is_deleted"),
		DeleteID:                        r.String("delete_id"),
		DateModified:                    r.String("date_modified"),
		UTCDateModified:                 r.String("utc_date_modified"),
		UTCDateScheduledForErasureSince: r.String("utc_date_scheduled_for_erasure_since"),
		ContentLength:                   r.Int("content_length"),
	}
}

var AttachmentColumns = []string{
	"attachment_id", "owner_id", "role", "mime", "title", "is_protected", "position", "blob_id",
	"is_deleted", "delete_id", "date_modified", "utc_date_modified", "utc_date_scheduled_for_erasure_since",
}
