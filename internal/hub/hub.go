// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package hub holds the relay's replicated documents. Each room owns a
// key/value document whose slots are written last-writer-wins; every
// accepted write is broadcast to all participants of the room, the writer
// included, and late joiners receive every slot on join.
package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/MKhiriev/go-canvas-sync/internal/logger"
	"github.com/MKhiriev/go-canvas-sync/models"
)

type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]*room
	loader DocumentLoader
	now    func() time.Time
	logger *logger.Logger
}

type Option func(*Hub)

// WithLoader restores persisted documents the first time a room is joined.
func WithLoader(loader DocumentLoader) Option {
	return func(h *Hub) { h.loader = loader }
}

func WithClock(now func() time.Time) Option {
	return func(h *Hub) { h.now = now }
}

func New(logger *logger.Logger, opts ...Option) *Hub {
	h := &Hub{
		rooms:  make(map[string]*room),
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type room struct {
	mu           sync.Mutex
	name         string
	loaded       bool
	participants map[string]Participant
	slots        map[string]models.DocumentEntry
	dirty        map[string]struct{}
	lastActive   time.Time
}

func newRoom(name string, now time.Time) *room {
	return &room{
		name:         name,
		participants: make(map[string]Participant),
		slots:        make(map[string]models.DocumentEntry),
		dirty:        make(map[string]struct{}),
		lastActive:   now,
	}
}

// Join attaches p to the room, creating it if needed, and sends p the
// current value of every slot.
func (h *Hub) Join(ctx context.Context, name string, p Participant) error {
	if name == "" {
		return ErrEmptyRoom
	}

	h.mu.Lock()
	r, ok := h.rooms[name]
	if !ok {
		r = newRoom(name, h.now())
		h.rooms[name] = r
	}
	r.mu.Lock()
	h.mu.Unlock()
	defer r.mu.Unlock()

	if !r.loaded {
		if err := h.load(ctx, r); err != nil {
			return err
		}
	}

	r.participants[p.ID()] = p
	r.lastActive = h.now()

	for _, entry := range r.sortedSlots() {
		if !p.Send(stateMessage(entry)) {
			h.logger.Warn().Str("room", name).Str("participant", p.ID()).Msg("snapshot not delivered")
		}
	}

	h.logger.Info().
		Str("room", name).
		Str("participant", p.ID()).
		Int("participants", len(r.participants)).
		Msg("participant joined")
	return nil
}

func (h *Hub) load(ctx context.Context, r *room) error {
	if h.loader == nil {
		r.loaded = true
		return nil
	}

	entries, err := h.loader.LoadRoom(ctx, r.name)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrLoadRoom, r.name, err)
	}
	for _, entry := range entries {
		r.slots[entry.Key] = entry
	}
	r.loaded = true
	return nil
}

// Leave detaches p. The room itself is kept until the reaper evicts it.
func (h *Hub) Leave(name string, p Participant) {
	h.mu.RLock()
	r, ok := h.rooms[name]
	h.mu.RUnlock()
	if !ok {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.participants[p.ID()]; !ok || current != p {
		return
	}
	delete(r.participants, p.ID())
	r.lastActive = h.now()

	h.logger.Info().
		Str("room", name).
		Str("participant", p.ID()).
		Int("participants", len(r.participants)).
		Msg("participant left")
}

// Update overwrites one slot and broadcasts the accepted value.
func (h *Hub) Update(name string, p Participant, key string, value json.RawMessage) (models.DocumentEntry, error) {
	if key == "" {
		return models.DocumentEntry{}, ErrEmptyKey
	}
	if !json.Valid(value) {
		return models.DocumentEntry{}, ErrInvalidValue
	}

	h.mu.RLock()
	r, ok := h.rooms[name]
	h.mu.RUnlock()
	if !ok {
		return models.DocumentEntry{}, ErrNotJoined
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.participants[p.ID()]; !ok {
		return models.DocumentEntry{}, ErrNotJoined
	}

	now := h.now()
	entry := models.DocumentEntry{
		Room:      name,
		Key:       key,
		Value:     append(json.RawMessage(nil), value...),
		Version:   r.slots[key].Version + 1,
		Origin:    p.ID(),
		UpdatedAt: now,
	}
	r.slots[key] = entry
	r.dirty[key] = struct{}{}
	r.lastActive = now

	msg := stateMessage(entry)
	for id, participant := range r.participants {
		if !participant.Send(msg) {
			h.logger.Warn().Str("room", name).Str("participant", id).Msg("update not delivered")
		}
	}

	return entry, nil
}

// Rooms lists the rooms currently held in memory, sorted by name.
func (h *Hub) Rooms() []models.RoomInfo {
	h.mu.RLock()
	rooms := make([]*room, 0, len(h.rooms))
	for _, r := range h.rooms {
		rooms = append(rooms, r)
	}
	h.mu.RUnlock()

	infos := make([]models.RoomInfo, 0, len(rooms))
	for _, r := range rooms {
		r.mu.Lock()
		infos = append(infos, models.RoomInfo{
			Room:         r.name,
			Participants: len(r.participants),
			Slots:        len(r.slots),
		})
		r.mu.Unlock()
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Room < infos[j].Room })
	return infos
}

// Document returns every slot of the room sorted by key.
func (h *Hub) Document(name string) (models.DocumentResponse, error) {
	h.mu.RLock()
	r, ok := h.rooms[name]
	h.mu.RUnlock()
	if !ok {
		return models.DocumentResponse{}, ErrRoomNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return models.DocumentResponse{Room: name, Entries: r.sortedSlots()}, nil
}

// Dirty returns the slots written since they were last marked clean.
func (h *Hub) Dirty() []models.DocumentEntry {
	h.mu.RLock()
	rooms := make([]*room, 0, len(h.rooms))
	for _, r := range h.rooms {
		rooms = append(rooms, r)
	}
	h.mu.RUnlock()

	var entries []models.DocumentEntry
	for _, r := range rooms {
		r.mu.Lock()
		for key := range r.dirty {
			entries = append(entries, r.slots[key])
		}
		r.mu.Unlock()
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Room != entries[j].Room {
			return entries[i].Room < entries[j].Room
		}
		return entries[i].Key < entries[j].Key
	})
	return entries
}

// MarkClean clears the dirty flag of entry's slot unless it was written
// again after entry was taken.
func (h *Hub) MarkClean(entry models.DocumentEntry) {
	h.mu.RLock()
	r, ok := h.rooms[entry.Room]
	h.mu.RUnlock()
	if !ok {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.slots[entry.Key].Version == entry.Version {
		delete(r.dirty, entry.Key)
	}
}

// EvictIdle drops rooms without participants or unsaved slots that have
// been idle for at least ttl, and returns their names.
func (h *Hub) EvictIdle(ttl time.Duration) []string {
	now := h.now()

	h.mu.Lock()
	defer h.mu.Unlock()

	var evicted []string
	for name, r := range h.rooms {
		r.mu.Lock()
		idle := len(r.participants) == 0 && len(r.dirty) == 0 && now.Sub(r.lastActive) >= ttl
		r.mu.Unlock()

		if idle {
			delete(h.rooms, name)
			evicted = append(evicted, name)
		}
	}

	sort.Strings(evicted)
	return evicted
}

func (r *room) sortedSlots() []models.DocumentEntry {
	entries := make([]models.DocumentEntry, 0, len(r.slots))
	for _, entry := range r.slots {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}

func stateMessage(entry models.DocumentEntry) models.Message {
	return models.Message{
		Type:    models.MessageState,
		Room:    entry.Room,
		Key:     entry.Key,
		Value:   entry.Value,
		Version: entry.Version,
		Origin:  entry.Origin,
	}
}
