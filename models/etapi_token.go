// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// EtapiToken is an API token. Only the hash of the secret part is persisted.
type EtapiToken struct {
	EtapiTokenID    string `json:"etapiTokenId"`
	Name            string `json:"name"`
	TokenHash       string `json:"tokenHash"`
	IsDeleted       bool   `json:"isDeleted"`
	UTCDateCreated  string `json:"utcDateCreated"`
	UTCDateModified string `json:"utcDateModified"`
}

func (t EtapiToken) Record() Record {
	return Record{
		"etapi_token_id":    t.EtapiTokenID,
		"name":              t.Name,
		"token_hash":        t.TokenHash,
		"is_deleted":        BoolToInt(t.IsDeleted),
		"utc_date_created":  t.UTCDateCreated,
		"utc_date_modified": t.UTCDateModified,
	}
}

func EtapiTokenFromRecord(r Record) EtapiToken {
	return EtapiToken{
		EtapiTokenID:    r.String("etapi_token_id"),
		Name:            r.String("name"),
		TokenHash:       r.String("token_hash"),
		IsDeleted:       r.Bool("is_deleted"),
		UTCDateCreated:  r.String("utc_date_created"),
		UTCDateModified: r.String("utc_date_modified"),
	}
}

var EtapiTokenColumns = []string{
	"etapi_token_id", "name", "token_hash", "is_deleted", "utc_date_created", "utc_date_modified",
}
