// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package replication

import (
	"time"
)

// reconnect paces connection attempts: After fires timeout after the
// attempt started, so a slow failing dial does not add to the pause.
type reconnect struct {
	start   time.Time
	timeout time.Duration
}

func newReconnect(timeout time.Duration) *reconnect {
	return &reconnect{start: time.Now(), timeout: timeout}
}

func (r *reconnect) After() <-chan time.Time {
	remaining := r.timeout - time.Since(r.start)
	if remaining <= 0 {
		ch := make(chan time.Time, 1)
		ch <- time.Now()
		return ch
	}
	return time.After(remaining)
}
