// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// Driver names accepted in Storage.DB.Driver.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// Defaults holds the values used for every field left unset by all sources.
var Defaults = StructuredConfig{
	App: App{
		LogLevel:          "debug",
		HiddenRootID:      "_hidden",
		WeakBranchParents: []string{"_share", "_lbBookmarks"},
		ForbiddenParents:  []string{"_options", "_lbTplRoot"},
	},
	Storage: Storage{
		DB: DB{Driver: DriverSQLite},
	},
	Server: Server{
		RequestTimeout: 30 * time.Second,
	},
	Security: Security{
		ProtectedSessionTimeout: 10 * time.Minute,
	},
	Workers: Workers{
		EraseInterval:          time.Hour,
		AttachmentErasureGrace: 6 * time.Hour,
		SessionExpiryInterval:  time.Minute,
	},
}
