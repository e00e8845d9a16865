// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server is a transport managed by this package. RunServer blocks until
// the server stops; Shutdown stops it gracefully.
type Server interface {
	RunServer()
	Shutdown()
}

// Background is started with the servers and stopped after them.
type Background interface {
	Start(ctx context.Context)
	Stop()
}
