// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Storage.DB.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs)
	}

	if cfg.App.HashKey == "" {
		return fmt.Errorf("%w: empty hash key", ErrInvalidAppConfigs)
	}

	if cfg.App.HiddenRootID == "" {
		return fmt.Errorf("%w: empty hidden root id", ErrInvalidAppConfigs)
	}

	if cfg.Workers.EraseInterval <= 0 || cfg.Workers.SessionExpiryInterval <= 0 || cfg.Workers.AttachmentErasureGrace < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
