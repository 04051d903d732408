package server

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"mystery-server/internal/mystery"
)

// RoomStore is the keyed persistence contract the room manager consumes:
// one GameState blob per room code, no scans, no cross-key transactions.
// Absent keys surface as mystery.ErrRoomNotFound.
type RoomStore interface {
	Get(ctx context.Context, roomCode string) (*mystery.GameState, error)
	Set(ctx context.Context, roomCode string, state *mystery.GameState) error
	Delete(ctx context.Context, roomCode string) error
	Health(ctx context.Context) error
	Close() error
}

// CleanupStore is implemented by stores that can drop finished rooms
// older than a cutoff. Lifecycle management stays outside the rules
// engine; the server's cleanup task uses this when available.
type CleanupStore interface {
	Cleanup(ctx context.Context, olderThan time.Duration) (int, error)
}

const roomKeyPrefix = "room:"

func roomKey(roomCode string) string {
	return roomKeyPrefix + roomCode
}

func encodeState(state *mystery.GameState) ([]byte, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize room %s: %w", state.RoomCode, err)
	}
	return data, nil
}

func decodeState(data []byte) (*mystery.GameState, error) {
	var state mystery.GameState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to deserialize room state: %w", err)
	}
	return &state, nil
}

// MemoryStore keeps serialized room blobs in a mutex-guarded map. It is
// the default driver and what the unit tests run against. Blobs are
// stored encoded so readers never share memory with writers.
type MemoryStore struct {
	rooms map[string][]byte
	mu    sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms: make(map[string][]byte),
	}
}

func (s *MemoryStore) Get(ctx context.Context, roomCode string) (*mystery.GameState, error) {
	s.mu.RLock()
	data, exists := s.rooms[roomKey(roomCode)]
	s.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("room %s: %w", roomCode, mystery.ErrRoomNotFound)
	}

	return decodeState(data)
}

func (s *MemoryStore) Set(ctx context.Context, roomCode string, state *mystery.GameState) error {
	data, err := encodeState(state)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.rooms[roomKey(roomCode)] = data
	s.mu.Unlock()

	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, roomCode string) error {
	s.mu.Lock()
	delete(s.rooms, roomKey(roomCode))
	s.mu.Unlock()

	return nil
}

func (s *MemoryStore) Health(ctx context.Context) error {
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// Cleanup removes finished rooms whose last update is older than the
// cutoff, and returns how many were dropped.
func (s *MemoryStore) Cleanup(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := time.Now().Add(-olderThan).UnixMilli()

	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	for key, data := range s.rooms {
		state, err := decodeState(data)
		if err != nil {
			continue
		}
		if state.Phase == mystery.PhaseGameOver && state.UpdatedAt < cutoff {
			delete(s.rooms, key)
			deleted++
		}
	}

	return deleted, nil
}
