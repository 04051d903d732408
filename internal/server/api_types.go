package server

import "mystery-server/internal/cards"

// ============================================================================
// ERROR RESPONSES
// ============================================================================
type ErrorMessage struct {
	Error string `json:"error"`
}

// ============================================================================
// CREATE ROOM (POST /room/create)
// ============================================================================
type CreateRoomRequest struct {
	HostName string `json:"hostName"`
}

type CreateRoomResponse struct {
	RoomCode string `json:"roomCode"`
	PlayerID string `json:"playerId"`
}

// ============================================================================
// JOIN ROOM (POST /room/join)
// ============================================================================
type JoinRoomRequest struct {
	RoomCode   string `json:"roomCode"`
	PlayerName string `json:"playerName"`
}

type JoinRoomResponse struct {
	PlayerID string `json:"playerId"`
	Success  bool   `json:"success"`
}

// ============================================================================
// START GAME (POST /game/start)
// ============================================================================
type StartGameRequest struct {
	RoomCode string `json:"roomCode"`
}

// ============================================================================
// MURDERER CHOICE (POST /game/murderer-choice)
// ============================================================================
type MurdererChoiceRequest struct {
	RoomCode   string `json:"roomCode"`
	PlayerID   string `json:"playerId"`
	MethodID   string `json:"methodId"`
	EvidenceID string `json:"evidenceId"`
}

// ============================================================================
// ADD CLUE (POST /game/forensic-clue/add)
// ============================================================================
type AddClueRequest struct {
	RoomCode string             `json:"roomCode"`
	PlayerID string             `json:"playerId"`
	Category cards.ClueCategory `json:"category"`
	CardName string             `json:"cardName"`
}

// ============================================================================
// FINISH TURN (POST /game/turn/finish)
// ============================================================================
type FinishTurnRequest struct {
	RoomCode string `json:"roomCode"`
	PlayerID string `json:"playerId"`
}

// ============================================================================
// GUESS (POST /game/guess)
// ============================================================================
type GuessRequest struct {
	RoomCode   string `json:"roomCode"`
	PlayerID   string `json:"playerId"`
	SuspectID  string `json:"suspectId"`
	MethodID   string `json:"methodId"`
	EvidenceID string `json:"evidenceId"`
}

type GuessResponse struct {
	Success  bool   `json:"success"`
	Correct  bool   `json:"correct"`
	GameOver bool   `json:"gameOver"`
	Winner   string `json:"winner,omitempty"`
}

// ============================================================================
// RESTART / CLOSE (POST /game/restart, POST /game/close)
// ============================================================================
type HostActionRequest struct {
	RoomCode string `json:"roomCode"`
	HostID   string `json:"hostId"`
}

// ============================================================================
// GENERIC SUCCESS
// ============================================================================
type SuccessResponse struct {
	Success bool `json:"success"`
}
