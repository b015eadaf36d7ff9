// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the ETAPI transport of the note server.
//
// It exposes route wiring, request handlers and middleware. Token
// authentication, request tracing, access logging and response compression
// are handled here before requests reach the note graph or the service layer.
// Reads are answered from the graph directly; every change goes through a
// service.
package http
