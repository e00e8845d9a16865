// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// Names of the shared document and of the slot holding the scene snapshot.
// They must match across all clients of one deployment.
const (
	DocumentName  = "canvas"
	CanvasDataKey = "canvasData"
)

// MessageType discriminates websocket protocol messages.
type MessageType string

const (
	// MessageUpdate is sent by a participant to overwrite a slot.
	MessageUpdate MessageType = "update"
	// MessageState is sent by the relay with the current value of a slot,
	// both on join and after every accepted update.
	MessageState MessageType = "state"
	// MessageError is sent by the relay when a message was rejected.
	MessageError MessageType = "error"
)

// Message is the JSON envelope exchanged over the replication websocket.
type Message struct {
	Type    MessageType     `json:"type"`
	Room    string          `json:"room,omitempty"`
	Key     string          `json:"key,omitempty"`
	Value   json.RawMessage `json:"value,omitempty"`
	Version int64           `json:"version,omitempty"`
	Origin  string          `json:"origin,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// DocumentEntry is a single named slot of a room's replicated document.
// Writes are last-writer-wins; Version increases with every accepted write.
type DocumentEntry struct {
	Room      string          `json:"room"`
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	Version   int64           `json:"version"`
	Origin    string          `json:"origin,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// RoomInfo describes an active room on the relay.
type RoomInfo struct {
	Room         string `json:"room"`
	Participants int    `json:"participants"`
	Slots        int    `json:"slots"`
}

// RoomsResponse lists the rooms currently held by the relay.
type RoomsResponse struct {
	Rooms  []RoomInfo `json:"rooms"`
	Length int        `json:"length"`
}

// DocumentResponse is the REST view of a room's replicated document.
type DocumentResponse struct {
	Room    string          `json:"room"`
	Entries []DocumentEntry `json:"entries"`
}
