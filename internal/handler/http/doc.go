// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the relay's HTTP transport.
//
// It exposes the websocket endpoint participants replicate through, the
// read-only REST API over the hub (rooms, documents, version) and the
// middleware shared by both: request tracing and access logging.
package http
