// Package store keeps the live visitor hubs and the log of won sessions.
package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrUnknownArcadeID   = errors.New("unknown arcade ID")
	ErrDuplicateArcadeID = errors.New("arcade ID already in use")
)

// Hub is what the store needs from a visitor's arcade
type Hub interface {
	ID() string
	Close()
}

type HubStore[H Hub] interface {
	Add(hub H) error
	Find(arcadeID string) (H, error)
	Remove(arcadeID string) error
	IDs() []string
}

// InMemoryHubStore maps arcade id to hub
type InMemoryHubStore[H Hub] struct {
	mu   sync.RWMutex
	hubs map[string]H
}

func NewInMemoryHubStore[H Hub]() *InMemoryHubStore[H] {
	return &InMemoryHubStore[H]{hubs: map[string]H{}}
}

func (s *InMemoryHubStore[H]) Add(hub H) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.hubs[hub.ID()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateArcadeID, hub.ID())
	}
	s.hubs[hub.ID()] = hub
	return nil
}

func (s *InMemoryHubStore[H]) Find(arcadeID string) (H, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hub, ok := s.hubs[arcadeID]
	if !ok {
		return hub, fmt.Errorf("%w: %q", ErrUnknownArcadeID, arcadeID)
	}
	return hub, nil
}

// Remove closes the hub and forgets it
func (s *InMemoryHubStore[H]) Remove(arcadeID string) error {
	s.mu.Lock()
	hub, ok := s.hubs[arcadeID]
	delete(s.hubs, arcadeID)
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownArcadeID, arcadeID)
	}
	hub.Close()
	return nil
}

func (s *InMemoryHubStore[H]) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.hubs))
	for id := range s.hubs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CloseAll closes and forgets every hub
func (s *InMemoryHubStore[H]) CloseAll() {
	s.mu.Lock()
	hubs := s.hubs
	s.hubs = map[string]H{}
	s.mu.Unlock()

	for _, hub := range hubs {
		hub.Close()
	}
}
