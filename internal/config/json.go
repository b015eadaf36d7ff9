// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the JSON file layout.
type StructuredJSONConfig struct {
	App struct {
		HashKey           string   `json:"hash_key"`
		Version           string   `json:"version"`
		LogLevel          string   `json:"log_level"`
		HiddenRootID      string   `json:"hidden_root_id"`
		WeakBranchParents []string `json:"weak_branch_parents"`
		ForbiddenParents  []string `json:"forbidden_parents"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Security struct {
		ProtectedSessionTimeout Duration `json:"protected_session_timeout"`
	} `json:"security,omitempty"`

	Workers struct {
		EraseInterval          Duration `json:"erase_interval"`
		AttachmentErasureGrace Duration `json:"attachment_erasure_grace"`
		SessionExpiryInterval  Duration `json:"session_expiry_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			HashKey:           jsonCfg.App.HashKey,
			Version:           jsonCfg.App.Version,
			LogLevel:          jsonCfg.App.LogLevel,
			HiddenRootID:      jsonCfg.App.HiddenRootID,
			WeakBranchParents: jsonCfg.App.WeakBranchParents,
			ForbiddenParents:  jsonCfg.App.ForbiddenParents,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Security: Security{
			ProtectedSessionTimeout: time.Duration(jsonCfg.Security.ProtectedSessionTimeout),
		},
		Workers: Workers{
			EraseInterval:          time.Duration(jsonCfg.Workers.EraseInterval),
			AttachmentErasureGrace: time.Duration(jsonCfg.Workers.AttachmentErasureGrace),
			SessionExpiryInterval:  time.Duration(jsonCfg.Workers.SessionExpiryInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
