package mystery

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"mystery-server/internal/cards"
)

type Phase string

const (
	PhaseLobby             Phase = "lobby"
	PhaseMurdererSelection Phase = "murderer_selection"
	PhasePlaying           Phase = "playing"
	PhaseGameOver          Phase = "game_over"
)

type Role string

const (
	RoleForensic     Role = "forensic"
	RoleMurderer     Role = "murderer"
	RoleAccomplice   Role = "accomplice"
	RoleInvestigator Role = "investigator"
)

type Winner string

const (
	WinnerInvestigators Winner = "investigators"
	WinnerMurderer      Winner = "murderer"
)

// MaxPlayers caps a room at the intended table size.
const MaxPlayers = 12

type Player struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Role          Role   `json:"role"` // empty until roles are assigned
	IsHost        bool   `json:"isHost"`
	HasCredential bool   `json:"hasCredential"`
}

// MurdererChoice is the committed method+evidence solution. Both fields
// stay empty until the murderer commits.
type MurdererChoice struct {
	MethodID   string `json:"methodId"`
	EvidenceID string `json:"evidenceId"`
}

// ClueMarker is one entry in the append-only forensic clue log.
type ClueMarker struct {
	Category   cards.ClueCategory `json:"category"`
	CardName   string             `json:"cardName"`
	TurnNumber int                `json:"turnNumber"`
}

// Guess records one accusation with display names snapshotted at guess time.
type Guess struct {
	PlayerID     string `json:"playerId"`
	PlayerName   string `json:"playerName"`
	SuspectID    string `json:"suspectId"`
	SuspectName  string `json:"suspectName"`
	MethodCard   string `json:"methodCard"`
	EvidenceCard string `json:"evidenceCard"`
	Timestamp    int64  `json:"timestamp"`
	Correct      bool   `json:"correct"`
}

// GameState is the aggregate root for one room and the unit of persistence.
type GameState struct {
	RoomCode string   `json:"roomCode"`
	Phase    Phase    `json:"phase"`
	Players  []Player `json:"players"` // insertion order = join order, index 0 is the host

	TableMethods   []cards.Card `json:"tableMethods"`
	TableEvidences []cards.Card `json:"tableEvidences"`

	MurdererChoice MurdererChoice `json:"murdererChoice"`

	CurrentTurn   int `json:"currentTurn"`
	CluesThisTurn int `json:"cluesThisTurn"`
	CluesRequired int `json:"cluesRequired"`

	ForensicClues []ClueMarker `json:"forensicClues"`
	Guesses       []Guess      `json:"guesses"`

	Winner    Winner `json:"winner,omitempty"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

// NewGameState creates a lobby with the host as its only player and
// returns the host's player ID.
func NewGameState(roomCode, hostName string) (*GameState, string, error) {
	if err := validatePlayerName(hostName); err != nil {
		return nil, "", err
	}

	hostID := uuid.New().String()
	now := time.Now().UnixMilli()

	state := &GameState{
		RoomCode: roomCode,
		Phase:    PhaseLobby,
		Players: []Player{{
			ID:            hostID,
			Name:          hostName,
			IsHost:        true,
			HasCredential: true,
		}},
		TableMethods:   []cards.Card{},
		TableEvidences: []cards.Card{},
		ForensicClues:  []ClueMarker{},
		Guesses:        []Guess{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	return state, hostID, nil
}

// Join appends a non-host player and returns the new player's ID.
func (g *GameState) Join(name string) (string, error) {
	if g.Phase != PhaseLobby {
		return "", invalidPhasef("cannot join in phase %q", g.Phase)
	}
	if err := validatePlayerName(name); err != nil {
		return "", err
	}
	if len(g.Players) >= MaxPlayers {
		return "", validationf("room is full (%d/%d players)", len(g.Players), MaxPlayers)
	}

	playerID := uuid.New().String()
	g.Players = append(g.Players, Player{
		ID:            playerID,
		Name:          name,
		HasCredential: true,
	})
	g.touch()

	return playerID, nil
}

func (g *GameState) findPlayer(id string) *Player {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return &g.Players[i]
		}
	}
	return nil
}

func (g *GameState) touch() {
	g.UpdatedAt = time.Now().UnixMilli()
}

func validatePlayerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return validationf("player name cannot be empty")
	}
	if len(name) > 20 {
		return validationf("player name too long (max 20 characters)")
	}
	return nil
}
