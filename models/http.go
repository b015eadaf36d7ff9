// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// CreateNoteRequest describes a note to create under an existing parent.
type CreateNoteRequest struct {
	// ParentNoteID is the note the new branch is placed under. Required.
	ParentNoteID string `json:"parentNoteId"`

	// NoteID forces the id of the new note. A random id is used when empty.
	NoteID string `json:"noteId,omitempty"`

	// Title defaults to "new note".
	Title string `json:"title"`

	// Type defaults to text.
	Type NoteType `json:"type"`

	// Mime is derived from Type when empty.
	Mime string `json:"mime,omitempty"`

	Content     string `json:"content"`
	IsProtected bool   `json:"isProtected"`

	// NotePosition places the branch among its siblings. Zero appends it.
	NotePosition int64  `json:"notePosition,omitempty"`
	Prefix       string `json:"prefix,omitempty"`
	IsExpanded   bool   `json:"isExpanded"`
}

// NoteWithBranch is returned after a note was created or duplicated.
type NoteWithBranch struct {
	Note   Note   `json:"note"`
	Branch Branch `json:"branch"`
}

// CreateTokenRequest names a new ETAPI token.
type CreateTokenRequest struct {
	Name string `json:"name"`
}

// CreateTokenResponse carries the plaintext auth token. It is shown once
// and never stored.
type CreateTokenResponse struct {
	AuthToken string `json:"authToken"`
}

// ProtectedSessionRequest carries the password that opens a protected
// session.
type ProtectedSessionRequest struct {
	Password string `json:"password"`
}

// ErrorResponse is the body of every failed ETAPI call.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AppInfo describes the running server.
type AppInfo struct {
	AppVersion    string `json:"appVersion"`
	BuildDate     string `json:"buildDate"`
	BuildRevision string `json:"buildRevision"`
	UTCDateTime   string `json:"utcDateTime"`
}

// NoteResponse is a note as returned by ETAPI, with its placements and
// owned attributes.
type NoteResponse struct {
	NoteID          string      `json:"noteId"`
	Title           string      `json:"title"`
	Type            NoteType    `json:"type"`
	Mime            string      `json:"mime"`
	IsProtected     bool        `json:"isProtected"`
	BlobID          string      `json:"blobId"`
	DateCreated     string      `json:"dateCreated"`
	DateModified    string      `json:"dateModified"`
	UTCDateCreated  string      `json:"utcDateCreated"`
	UTCDateModified string      `json:"utcDateModified"`
	ParentNoteIDs   []string    `json:"parentNoteIds"`
	ChildNoteIDs    []string    `json:"childNoteIds"`
	ParentBranchIDs []string    `json:"parentBranchIds"`
	ChildBranchIDs  []string    `json:"childBranchIds"`
	Attributes      []Attribute `json:"attributes"`
}

// PlaceNoteRequest names the parent a note is cloned, duplicated or moved to.
type PlaceNoteRequest struct {
	ParentNoteID string `json:"parentNoteId"`
	Prefix       string `json:"prefix,omitempty"`
}

// DeleteBranchResponse tells whether deleting the branch deleted the note.
type DeleteBranchResponse struct {
	NoteDeleted bool `json:"noteDeleted"`
}

// OptionRequest carries the new value of an option.
type OptionRequest struct {
	Value string `json:"value"`
}

// OptionResponse is an option as returned by ETAPI.
type OptionResponse struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
