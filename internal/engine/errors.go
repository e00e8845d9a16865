// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package engine

import "errors"

var (
	// ErrInitialization is returned by Start when the session could not be
	// brought to the active state. Every partially built resource has been
	// released by the time it is returned.
	ErrInitialization = errors.New("sync session initialization failed")

	// ErrPublish wraps a failed write to the replication channel. It is
	// reported to error listeners and otherwise dropped.
	ErrPublish = errors.New("publish failed")

	ErrInvalidRoom     = errors.New("invalid room identifier")
	ErrInvalidEndpoint = errors.New("invalid replication endpoint")
	ErrNoScene         = errors.New("no scene adapter")
)
