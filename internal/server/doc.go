// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the relay's transports: the HTTP server carrying the
// websocket and REST routes and the gRPC health server. It owns startup,
// signal handling and graceful shutdown of both, together with the
// background workers.
package server
