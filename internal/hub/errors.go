// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package hub

import "errors"

var (
	ErrEmptyRoom    = errors.New("room name is empty")
	ErrEmptyKey     = errors.New("slot key is empty")
	ErrInvalidValue = errors.New("slot value is not valid JSON")
	ErrNotJoined    = errors.New("participant has not joined the room")
	ErrRoomNotFound = errors.New("room not found")
	ErrLoadRoom     = errors.New("error loading room document")
)
