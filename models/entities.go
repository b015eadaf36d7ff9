// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// EntityName identifies an entity kind. It doubles as the name of the table
// the kind is persisted in and as the entity name recorded in entity changes.
type EntityName string

const (
	EntityNotes       EntityName = "notes"
	EntityBranches    EntityName = "branches"
	EntityAttributes  EntityName = "attributes"
	EntityRevisions   EntityName = "revisions"
	EntityAttachments EntityName = "attachments"
	EntityOptions     EntityName = "options"
	EntityEtapiTokens EntityName = "etapi_tokens"
	EntityBlobs       EntityName = "blobs"
)

// PrimaryKey returns the primary key column of the entity table.
func (e EntityName) PrimaryKey() string {
	switch e {
	case EntityNotes:
		return "note_id"
	case EntityBranches:
		return "branch_id"
	case EntityAttributes:
		return "attribute_id"
	case EntityRevisions:
		return "revision_id"
	case EntityAttachments:
		return "attachment_id"
	case EntityOptions:
		return "name"
	case EntityEtapiTokens:
		return "etapi_token_id"
	case EntityBlobs:
		return "blob_id"
	default:
		return ""
	}
}

// Valid reports whether e is one of the known entity kinds.
func (e EntityName) Valid() bool {
	return e.PrimaryKey() != ""
}

// NoteType is the closed set of note kinds.
type NoteType string

const (
	NoteTypeText          NoteType = "text"
	NoteTypeCode          NoteType = "code"
	NoteTypeFile          NoteType = "file"
	NoteTypeImage         NoteType = "image"
	NoteTypeSearch        NoteType = "search"
	NoteTypeRender        NoteType = "render"
	NoteTypeRelationMap   NoteType = "relationMap"
	NoteTypeBook          NoteType = "book"
	NoteTypeNoteMap       NoteType = "noteMap"
	NoteTypeMermaid       NoteType = "mermaid"
	NoteTypeCanvas        NoteType = "canvas"
	NoteTypeWebView       NoteType = "webView"
	NoteTypeLauncher      NoteType = "launcher"
	NoteTypeDoc           NoteType = "doc"
	NoteTypeContentWidget NoteType = "contentWidget"
	NoteTypeMindMap       NoteType = "mindMap"
)

var noteTypes = map[NoteType]struct{}{
	NoteTypeText: {}, NoteTypeCode: {}, NoteTypeFile: {}, NoteTypeImage: {},
	NoteTypeSearch: {}, NoteTypeRender: {}, NoteTypeRelationMap: {}, NoteTypeBook: {},
	NoteTypeNoteMap: {}, NoteTypeMermaid: {}, NoteTypeCanvas: {}, NoteTypeWebView: {},
	NoteTypeLauncher: {}, NoteTypeDoc: {}, NoteTypeContentWidget: {}, NoteTypeMindMap: {},
}

// Valid reports whether t belongs to the closed set of note types.
func (t NoteType) Valid() bool {
	_, ok := noteTypes[t]
	return ok
}

// DefaultMime returns the mime type a note of this type gets when none is given.
func (t NoteType) DefaultMime() string {
	switch t {
	case NoteTypeText:
		return "text/html"
	case NoteTypeCode, NoteTypeMermaid:
		return "text/plain"
	case NoteTypeRelationMap, NoteTypeSearch, NoteTypeCanvas:
		return "application/json"
	case NoteTypeRender, NoteTypeBook, NoteTypeWebView:
		return ""
	default:
		return "application/octet-stream"
	}
}

// AttributeType distinguishes labels (name/value) from relations (name/target note).
type AttributeType string

const (
	AttributeLabel    AttributeType = "label"
	AttributeRelation AttributeType = "relation"
)

// Valid reports whether t is label or relation.
func (t AttributeType) Valid() bool {
	return t == AttributeLabel || t == AttributeRelation
}

// Well-known note ids.
const (
	RootNoteID   = "root"
	HiddenNoteID = "_hidden"
)
