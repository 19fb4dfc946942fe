// internal/store/memory.go
//
// In-memory implementation of the Store interface used by the HTTP surface.
//
// Characteristics:
//   - Stores *game.Game rounds keyed by ID in a map.
//   - Concurrency-safe via RWMutex; Update runs its callback under the write
//     lock so guesses against one round are serialized.
//   - Get hands out copies, never the live round.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/hangman/internal/game"
)

// ErrNotFound is returned for unknown round IDs.
var ErrNotFound = errors.New("not found")

// Store defines the persistence interface for live rounds.
type Store interface {
	// Save persists or replaces a round.
	Save(ctx context.Context, g *game.Game) error

	// Get returns a copy of the round with the given ID.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Update runs fn against the stored round while holding it exclusively.
	// The error from fn is returned as is.
	Update(ctx context.Context, id string, fn func(g *game.Game) error) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex          // guards games map and the rounds in it
	games map[string]*game.Game // keyed by Game.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*game.Game)}
}

func (m *memory) Save(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *g
	cp.Guessed = append([]rune(nil), g.Guessed...)
	return &cp, nil
}

func (m *memory) Update(ctx context.Context, id string, fn func(g *game.Game) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[id]
	if !ok {
		return ErrNotFound
	}
	return fn(g)
}
