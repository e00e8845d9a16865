// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ConnectionStatus is the connectivity state reported by a replication
// channel.
type ConnectionStatus string

const (
	StatusConnecting   ConnectionStatus = "connecting"
	StatusConnected    ConnectionStatus = "connected"
	StatusDisconnected ConnectionStatus = "disconnected"
)

// SessionState is the lifecycle state of a sync session.
type SessionState int

const (
	SessionUninitialized SessionState = iota
	SessionInitializing
	SessionActive
	SessionDisposed
)

func (s SessionState) String() string {
	switch s {
	case SessionUninitialized:
		return "uninitialized"
	case SessionInitializing:
		return "initializing"
	case SessionActive:
		return "active"
	case SessionDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}
