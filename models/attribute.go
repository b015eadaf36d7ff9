// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Attribute is the persisted form of a label or relation. For relations Value
// holds the target note id.
type Attribute struct {
	AttributeID     string        `json:"attributeId"`
	NoteID          string        `json:"noteId"`
	Type            AttributeType `json:"type"`
	Name            string        `json:"name"`
	Value           string        `json:"value"`
	Position        int64         `json:"position"`
	IsInheritable   bool          `json:"isInheritable"`
	IsDeleted       bool          `json:"isDeleted"`
	DeleteID        string        `json:"deleteId,omitempty"`
	UTCDateModified string        `json:"utcDateModified"`
}

func (a Attribute) Record() Record {
	return Record{
		"attribute_id":      a.AttributeID,
		"note_id":           a.NoteID,
		"type":              string(a.Type),
		"name":              a.Name,
		"value":             a.Value,
		"position":          a.Position,
		"is_inheritable":    BoolToInt(a.IsInheritable),
		"is_deleted":        BoolToInt(a.IsDeleted),
		"utc_date_modified": a.UTCDateModified,
	}
}

func AttributeFromRecord(r Record) Attribute {
	return Attribute{
		AttributeID:     r.String("attribute_id"),
		NoteID:          r.String("note_id"),
		Type:            AttributeType(r.String("type")),
		Name:            r.String("name"),
		Value:           r.String("value"),
		Position:        r.Int("position"),
		IsInheritable:   r.Bool("is_inheritable"),
		IsDeleted:       r.Bool("is_deleted"),
		DeleteID:        r.String("delete_id"),
		UTCDateModified: r.String("utc_date_modified"),
	}
}

var AttributeColumns = []string{
	"attribute_id", "note_id", "type", "name", "value", "position", "is_inheritable",
	"is_deleted", "delete_id", "utc_date_modified",
}
