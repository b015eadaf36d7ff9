// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Branch is the persisted form of a parent/child edge.
type Branch struct {
	BranchID        string `json:"branchId"`
	NoteID          string `json:"noteId"`
	ParentNoteID    string `json:"parentNoteId"`
	Prefix          string `json:"prefix,omitempty"`
	NotePosition    int64  `json:"notePosition"`
	IsExpanded      bool   `json:"isExpanded"`
	IsDeleted       bool   `json:"isDeleted"`
	DeleteID        string `json:"deleteId,omitempty"`
	UTCDateModified string `json:"utcDateModified"`
}

// BranchID derives the branch id from its endpoints.
func BranchID(parentNoteID, noteID string) string {
	return parentNoteID + "_" + noteID
}

func (b Branch) Record() Record {
	return Record{
		"branch_id":         b.BranchID,
		"note_id":           b.NoteID,
		"parent_note_id":    b.ParentNoteID,
		"prefix":            Nullable(b.Prefix),
		"note_position":     b.NotePosition,
		"is_expanded":       BoolToInt(b.IsExpanded),
		"is_deleted":        BoolToInt(b.IsDeleted),
		"utc_date_modified": b.UTCDateModified,
	}
}

func BranchFromRecord(r Record) Branch {
	return Branch{
		BranchID:        r.String("branch_id"),
		NoteID:          r.String("note_id"),
		ParentNoteID:    r.String("parent_note_id"),
		Prefix:          r.String("prefix"),
		NotePosition:    r.Int("note_position"),
		IsExpanded:      r.Bool("is_expanded"),
		IsDeleted:       r.Bool("is_deleted"),
		DeleteID:        r.String("delete_id"),
		UTCDateModified: r.String("utc_date_modified"),
	}
}

var BranchColumns = []string{
	"branch_id", "note_id", "parent_note_id", "prefix", "note_position", "is_expanded",
	"is_deleted", "delete_id", "utc_date_modified",
}
