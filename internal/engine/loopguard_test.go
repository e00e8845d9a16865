// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopGuard_RaisedDuringApply(t *testing.T) {
	g := NewLoopGuard(20 * time.Millisecond)
	assert.False(t, g.IsApplyingRemote())

	var inside bool
	err := g.WithRemoteApply(func() error {
		inside = g.IsApplyingRemote()
		return nil
	})

	require.NoError(t, err)
	assert.True(t, inside)
}

func TestLoopGuard_HeldForSettleDelay(t *testing.T) {
	g := NewLoopGuard(40 * time.Millisecond)

	require.NoError(t, g.WithRemoteApply(func() error { return nil }))

	assert.True(t, g.IsApplyingRemote(), "flag must survive the apply itself")
	assert.Eventually(t, func() bool { return !g.IsApplyingRemote() }, time.Second, 5*time.Millisecond)
}

func TestLoopGuard_ClearedOnError(t *testing.T) {
	g := NewLoopGuard(10 * time.Millisecond)

	err := g.WithRemoteApply(func() error { return assert.AnError })

	assert.ErrorIs(t, err, assert.AnError)
	assert.Eventually(t, func() bool { return !g.IsApplyingRemote() }, time.Second, 5*time.Millisecond)
}

func TestLoopGuard_ClearedOnPanic(t *testing.T) {
	g := NewLoopGuard(10 * time.Millisecond)

	assert.Panics(t, func() {
		_ = g.WithRemoteApply(func() error { panic("boom") })
	})
	assert.Eventually(t, func() bool { return !g.IsApplyingRemote() }, time.Second, 5*time.Millisecond)
}

func TestLoopGuard_NewApplyExtendsWindow(t *testing.T) {
	g := NewLoopGuard(50 * time.Millisecond)

	require.NoError(t, g.WithRemoteApply(func() error { return nil }))
	time.Sleep(30 * time.Millisecond)
	require.NoError(t, g.WithRemoteApply(func() error { return nil }))
	time.Sleep(30 * time.Millisecond)

	assert.True(t, g.IsApplyingRemote(), "the first release must not lower the flag owned by the second apply")
	assert.Eventually(t, func() bool { return !g.IsApplyingRemote() }, time.Second, 5*time.Millisecond)
}

func TestLoopGuard_ZeroSettle(t *testing.T) {
	g := NewLoopGuard(0)

	require.NoError(t, g.WithRemoteApply(func() error { return nil }))

	assert.False(t, g.IsApplyingRemote())
}

func TestLoopGuard_StopLowersFlag(t *testing.T) {
	g := NewLoopGuard(time.Hour)

	require.NoError(t, g.WithRemoteApply(func() error { return nil }))
	require.True(t, g.IsApplyingRemote())

	g.Stop()

	assert.False(t, g.IsApplyingRemote())
}
