// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the ETAPI HTTP server until a stop signal arrives and
// then shuts it down gracefully.
package server
