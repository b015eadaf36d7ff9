// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"sort"
	"strconv"
)

// Record is a column-name to value map describing one table row as it is
// written to (or read back from) the storage layer. Only the columns present
// in a Record are written by an upsert, which lets entities omit fields they
// must not overwrite (for example ciphertext held outside a protected session).
type Record map[string]any

// Columns returns the record's column names in lexical order so that generated
// statements are deterministic.
func (r Record) Columns() []string {
	cols := make([]string, 0, len(r))
	for col := range r {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge copies every column of other into r, overwriting existing values.
func (r Record) Merge(other Record) {
	for k, v := range other {
		r[k] = v
	}
}

// String returns the column value as a string. NULL and missing columns yield "".
func (r Record) String(col string) string {
	switch v := r[col].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case *string:
		if v == nil {
			return ""
		}
		return *v
	default:
		return fmt.Sprint(v)
	}
}

// Bool returns the column value as a bool. Integer columns are treated as 0/1 flags.
func (r Record) Bool(col string) bool {
	switch v := r[col].(type) {
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	default:
		return false
	}
}

// Int returns the column value as an int64.
func (r Record) Int(col string) int64 {
	switch v := r[col].(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case int32:
		return int64(v)
	case float64:
		return int64(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	default:
		return 0
	}
}

// Bytes returns the column value as a byte slice.
func (r Record) Bytes(col string) []byte {
	switch v := r[col].(type) {
	case []byte:
		return v
	case string:
		return []byte(v)
	default:
		return nil
	}
}

// BoolToInt maps flags onto the 0/1 integers stored by both SQL dialects.
func BoolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// Nullable maps an empty string onto SQL NULL.
func Nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
