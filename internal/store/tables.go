// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "github.com/MKhiriev/go-note-keeper/models"

const tableEntityChanges = "entity_changes"

// tableInfo describes the optional columns of an entity table.
type tableInfo struct {
	key             string
	columns         []string
	hasDeleteID     bool
	hasDateModified bool
}

var tables = map[models.EntityName]tableInfo{
	models.EntityNotes:       {key: "note_id", columns: models.NoteColumns, hasDeleteID: true, hasDateModified: true},
	models.EntityBranches:    {key: "branch_id", columns: models.BranchColumns, hasDeleteID: true},
	models.EntityAttributes:  {key: "attribute_id", columns: models.AttributeColumns, hasDeleteID: true},
	models.EntityAttachments: {key: "attachment_id", columns: models.AttachmentColumns, hasDeleteID: true, hasDateModified: true},
	models.EntityRevisions:   {key: "revision_id", columns: models.RevisionColumns},
	models.EntityOptions:     {key: "name", columns: models.OptionColumns},
	models.EntityEtapiTokens: {key: "etapi_token_id", columns: models.EtapiTokenColumns},
	models.EntityBlobs:       {key: "blob_id", columns: []string{"blob_id", "content", "date_modified", "utc_date_modified"}},
}

func lookupTable(name models.EntityName) (tableInfo, error) {
	info, ok := tables[name]
	if !ok {
		return tableInfo{}, ErrUnknownTable
	}
	return info, nil
}
