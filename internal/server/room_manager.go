package server

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"mystery-server/internal/cards"
	"mystery-server/internal/mystery"
)

// RoomManager owns the read-modify-write cycle against the store. A
// per-room mutex serializes operations on the same room code so two
// concurrent requests cannot both read the same state and race their
// writes; different rooms proceed fully in parallel. The rules engine
// itself stays pure and store-free.
type RoomManager struct {
	store RoomStore
	locks map[string]*roomLock
	mu    sync.Mutex
}

// roomLock is refcounted so the map only holds entries for rooms with an
// operation in flight; the last releaser drops the entry.
type roomLock struct {
	mu   sync.Mutex
	refs int
}

func NewRoomManager(store RoomStore) *RoomManager {
	return &RoomManager{
		store: store,
		locks: make(map[string]*roomLock),
	}
}

// acquire blocks until the caller holds the room's exclusive section.
func (rm *RoomManager) acquire(roomCode string) *roomLock {
	rm.mu.Lock()
	lock, exists := rm.locks[roomCode]
	if !exists {
		lock = &roomLock{}
		rm.locks[roomCode] = lock
	}
	lock.refs++
	rm.mu.Unlock()

	lock.mu.Lock()
	return lock
}

func (rm *RoomManager) release(roomCode string, lock *roomLock) {
	lock.mu.Unlock()

	rm.mu.Lock()
	lock.refs--
	if lock.refs == 0 {
		delete(rm.locks, roomCode)
	}
	rm.mu.Unlock()
}

// update runs one all-or-nothing transition: load, apply, persist. The
// state is only written back when the transition succeeded.
func (rm *RoomManager) update(ctx context.Context, roomCode string, apply func(*mystery.GameState) error) error {
	roomCode = NormalizeRoomCode(roomCode)
	if err := ValidateRoomCode(roomCode); err != nil {
		return fmt.Errorf("%s: %w", err.Error(), mystery.ErrValidation)
	}

	lock := rm.acquire(roomCode)
	defer rm.release(roomCode, lock)

	state, err := rm.store.Get(ctx, roomCode)
	if err != nil {
		return err
	}

	if err := apply(state); err != nil {
		return err
	}

	return rm.store.Set(ctx, roomCode, state)
}

// CreateRoom allocates an unused room code and persists a fresh lobby.
// The occupancy check and the write happen under the drawn code's lock,
// so two creates racing onto the same code cannot both claim it.
func (rm *RoomManager) CreateRoom(ctx context.Context, hostName string) (string, string, error) {
	for {
		roomCode := GenerateRoomCode()

		lock := rm.acquire(roomCode)

		_, err := rm.store.Get(ctx, roomCode)
		if err == nil {
			// Occupied code, draw again.
			rm.release(roomCode, lock)
			continue
		}
		if !errors.Is(err, mystery.ErrRoomNotFound) {
			rm.release(roomCode, lock)
			return "", "", err
		}

		state, playerID, err := mystery.NewGameState(roomCode, hostName)
		if err != nil {
			rm.release(roomCode, lock)
			return "", "", err
		}

		if err := rm.store.Set(ctx, roomCode, state); err != nil {
			rm.release(roomCode, lock)
			return "", "", err
		}

		rm.release(roomCode, lock)
		return roomCode, playerID, nil
	}
}

func (rm *RoomManager) JoinRoom(ctx context.Context, roomCode, playerName string) (string, error) {
	var playerID string
	err := rm.update(ctx, roomCode, func(state *mystery.GameState) error {
		var joinErr error
		playerID, joinErr = state.Join(playerName)
		return joinErr
	})
	return playerID, err
}

// GetState returns the full room state for the polling clients.
func (rm *RoomManager) GetState(ctx context.Context, roomCode string) (*mystery.GameState, error) {
	roomCode = NormalizeRoomCode(roomCode)
	if err := ValidateRoomCode(roomCode); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), mystery.ErrRoomNotFound)
	}
	return rm.store.Get(ctx, roomCode)
}

func (rm *RoomManager) StartGame(ctx context.Context, roomCode string) error {
	return rm.update(ctx, roomCode, func(state *mystery.GameState) error {
		return state.Start()
	})
}

func (rm *RoomManager) ChooseMurdererCards(ctx context.Context, roomCode, playerID, methodID, evidenceID string) error {
	return rm.update(ctx, roomCode, func(state *mystery.GameState) error {
		return state.ChooseMurdererCards(playerID, methodID, evidenceID)
	})
}

func (rm *RoomManager) AddClue(ctx context.Context, roomCode, playerID string, category cards.ClueCategory, cardName string) error {
	return rm.update(ctx, roomCode, func(state *mystery.GameState) error {
		return state.AddClue(playerID, category, cardName)
	})
}

func (rm *RoomManager) FinishTurn(ctx context.Context, roomCode, playerID string) error {
	return rm.update(ctx, roomCode, func(state *mystery.GameState) error {
		return state.FinishTurn(playerID)
	})
}

func (rm *RoomManager) MakeGuess(ctx context.Context, roomCode, playerID, suspectID, methodID, evidenceID string) (mystery.GuessResult, error) {
	var result mystery.GuessResult
	err := rm.update(ctx, roomCode, func(state *mystery.GameState) error {
		var guessErr error
		result, guessErr = state.Accuse(playerID, suspectID, methodID, evidenceID)
		return guessErr
	})
	return result, err
}

func (rm *RoomManager) RestartGame(ctx context.Context, roomCode, hostID string) error {
	return rm.update(ctx, roomCode, func(state *mystery.GameState) error {
		return state.Restart(hostID)
	})
}

// CloseRoom deletes the room after checking the caller is the host.
func (rm *RoomManager) CloseRoom(ctx context.Context, roomCode, hostID string) error {
	roomCode = NormalizeRoomCode(roomCode)
	if err := ValidateRoomCode(roomCode); err != nil {
		return fmt.Errorf("%s: %w", err.Error(), mystery.ErrValidation)
	}

	lock := rm.acquire(roomCode)
	defer rm.release(roomCode, lock)

	state, err := rm.store.Get(ctx, roomCode)
	if err != nil {
		return err
	}

	if err := state.AuthorizeClose(hostID); err != nil {
		return err
	}

	return rm.store.Delete(ctx, roomCode)
}
