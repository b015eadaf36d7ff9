// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

const (
	utcDateTimeLayout   = "2006-01-02 15:04:05.000Z"
	localDateTimeLayout = "2006-01-02 15:04:05.000-0700"
)

// UTCDateTime formats t as the UTC timestamp stored in utc_* columns.
func UTCDateTime(t time.Time) string {
	return t.UTC().Format(utcDateTimeLayout)
}

// LocalDateTime formats t with its zone offset, as stored in date_* columns.
func LocalDateTime(t time.Time) string {
	return t.Format(localDateTimeLayout)
}

// ParseUTCDateTime parses a value written by UTCDateTime.
func ParseUTCDateTime(s string) (time.Time, error) {
	return time.Parse(utcDateTimeLayout, s)
}
