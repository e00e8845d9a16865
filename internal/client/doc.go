// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive canvas client runtime.
//
// It binds the local canvas to a room through the sync engine and hands
// the canvas, the session and the client services to the terminal UI for
// the lifetime of the process.
package client
