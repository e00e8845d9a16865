// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package event provides a small typed fan-out used for scene mutations,
// remote state notifications and connection status changes.
package event

import (
	"sync"
)

// Subscription is a handle returned by every registration. Unsubscribe is
// idempotent and safe to call from inside the handler itself.
type Subscription interface {
	Unsubscribe()
}

// Emitter delivers values of type T to every registered handler, in
// registration order, on the emitting goroutine.
type Emitter[T any] struct {
	mu       sync.RWMutex
	nextID   uint64
	handlers map[uint64]func(T)
	order    []uint64
}

// NewEmitter returns an empty Emitter.
func NewEmitter[T any]() *Emitter[T] {
	return &Emitter[T]{handlers: make(map[uint64]func(T))}
}

// Subscribe registers fn. A nil fn yields a no-op subscription.
func (e *Emitter[T]) Subscribe(fn func(T)) Subscription {
	if fn == nil {
		return noopSubscription{}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	id := e.nextID
	e.handlers[id] = fn
	e.order = append(e.order, id)

	return &subscription{cancel: func() { e.remove(id) }}
}

// Emit calls every handler registered at the moment of the call. Handlers
// removed during delivery are skipped.
func (e *Emitter[T]) Emit(v T) {
	e.mu.RLock()
	ids := make([]uint64, len(e.order))
	copy(ids, e.order)
	e.mu.RUnlock()

	for _, id := range ids {
		e.mu.RLock()
		fn, ok := e.handlers[id]
		e.mu.RUnlock()
		if ok {
			fn(v)
		}
	}
}

// Len reports the number of live subscriptions.
func (e *Emitter[T]) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.handlers)
}

// Clear drops every subscription.
func (e *Emitter[T]) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers = make(map[uint64]func(T))
	e.order = nil
}

func (e *Emitter[T]) remove(id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.handlers[id]; !ok {
		return
	}
	delete(e.handlers, id)
	for i, v := range e.order {
		if v == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}

type subscription struct {
	once   sync.Once
	cancel func()
}

func (s *subscription) Unsubscribe() {
	s.once.Do(s.cancel)
}

type noopSubscription struct{}

func (noopSubscription) Unsubscribe() {}

// SubscriptionFunc adapts a plain function to [Subscription]. The function
// runs at most once.
func SubscriptionFunc(fn func()) Subscription {
	return &subscription{cancel: fn}
}
