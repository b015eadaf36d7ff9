// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// EntityChange is the change-tracking record written for every save and
// delete. Hash is the entity hash at the time of the change.
type EntityChange struct {
	EntityName     EntityName `json:"entityName"`
	EntityID       string     `json:"entityId"`
	Hash           string     `json:"hash"`
	IsErased       bool       `json:"isErased"`
	IsSynced       bool       `json:"isSynced"`
	UTCDateChanged string     `json:"utcDateChanged"`
}

func (c EntityChange) Record() Record {
	return Record{
		"entity_name":      string(c.EntityName),
		"entity_id":        c.EntityID,
		"hash":             c.Hash,
		"is_erased":        BoolToInt(c.IsErased),
		"is_synced":        BoolToInt(c.IsSynced),
		"utc_date_changed": c.UTCDateChanged,
	}
}

func EntityChangeFromRecord(r Record) EntityChange {
	return EntityChange{
		EntityName:     EntityName(r.String("entity_name")),
		EntityID:       r.String("entity_id"),
		Hash:           r.String("hash"),
		IsErased:       r.Bool("is_erased"),
		IsSynced:       r.Bool("is_synced"),
		UTCDateChanged: r.String("utc_date_changed"),
	}
}

// Snapshot is everything the graph keeps in memory, as loaded at startup.
type Snapshot struct {
	Notes       []Note
	Branches    []Branch
	Attributes  []Attribute
	Options     []Option
	EtapiTokens []EtapiToken
}
