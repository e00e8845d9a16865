// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package replication

import "errors"

var (
	ErrDisconnected    = errors.New("channel disconnected")
	ErrInvalidEndpoint = errors.New("invalid endpoint")
	ErrInvalidRoom     = errors.New("invalid room")
)
