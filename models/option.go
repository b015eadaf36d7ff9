// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Option is a process-wide name/value configuration row.
type Option struct {
	Name            string `json:"name"`
	Value           string `json:"value"`
	IsSynced        bool   `json:"isSynced"`
	UTCDateModified string `json:"utcDateModified"`
}

func (o Option) Record() Record {
	return Record{
		"name":              o.Name,
		"value":             o.Value,
		"is_synced":         BoolToInt(o.IsSynced),
		"utc_date_modified": o.UTCDateModified,
	}
}

func OptionFromRecord(r Record) Option {
	return Option{
		Name:            r.String("name"),
		Value:           r.String("value"),
		IsSynced:        r.Bool("is_synced"),
		UTCDateModified: r.String("utc_date_modified"),
	}
}

var OptionColumns = []string{"name", "value", "is_synced", "utc_date_modified"}

// Option names used by the protected session.
const (
	OptionEncryptedDataKey       = "encryptedDataKey"
	OptionPasswordDerivedKeySalt = "passwordDerivedKeySalt"
)
