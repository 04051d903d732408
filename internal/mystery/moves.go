package mystery

import (
	"time"

	"mystery-server/internal/cards"
)

// GuessResult is the outcome of one accusation.
type GuessResult struct {
	Correct  bool
	GameOver bool
	Winner   Winner
}

// Start assigns roles and deals the public tables. A single player is
// allowed (debug mode); otherwise the intended range is 4-12 seats,
// enforced loosely as at-least-one here and at-most-twelve on join.
func (g *GameState) Start() error {
	if g.Phase != PhaseLobby {
		return invalidPhasef("cannot start in phase %q", g.Phase)
	}
	if len(g.Players) < 1 {
		return validationf("cannot start with no players")
	}

	assignRoles(g.Players)
	g.TableMethods, g.TableEvidences = dealTable()
	g.Phase = PhaseMurdererSelection
	g.touch()

	return nil
}

// ChooseMurdererCards commits the murderer's method+evidence solution and
// opens play: turn 1 with a two-clue budget.
func (g *GameState) ChooseMurdererCards(playerID, methodID, evidenceID string) error {
	if g.Phase != PhaseMurdererSelection {
		return invalidPhasef("cannot choose cards in phase %q", g.Phase)
	}

	player := g.findPlayer(playerID)
	if player == nil || player.Role != RoleMurderer {
		return unauthorizedf("only the murderer can choose the solution")
	}

	if !g.onTable(g.TableMethods, methodID) {
		return validationf("method %q is not on the table", methodID)
	}
	if !g.onTable(g.TableEvidences, evidenceID) {
		return validationf("evidence %q is not on the table", evidenceID)
	}

	g.MurdererChoice = MurdererChoice{MethodID: methodID, EvidenceID: evidenceID}
	g.Phase = PhasePlaying
	g.CurrentTurn = 1
	g.CluesThisTurn = 0
	g.CluesRequired = 2
	g.touch()

	return nil
}

// AddClue appends one clue to the forensic log. On turn 1 the second clue
// must come from a different category than the first.
func (g *GameState) AddClue(playerID string, category cards.ClueCategory, cardName string) error {
	if g.Phase != PhasePlaying {
		return invalidPhasef("cannot add clues in phase %q", g.Phase)
	}

	player := g.findPlayer(playerID)
	if player == nil || player.Role != RoleForensic {
		return unauthorizedf("only the forensic can add clues")
	}

	if g.CluesThisTurn >= g.CluesRequired {
		return validationf("clue budget for turn %d already spent", g.CurrentTurn)
	}
	if !cards.ClueExists(category, cardName) {
		return validationf("no clue card %q in category %q", cardName, category)
	}

	if g.CurrentTurn == 1 && g.CluesThisTurn == 1 {
		first := g.ForensicClues[len(g.ForensicClues)-1]
		if first.Category == category {
			return validationf("turn 1 clues must come from different categories")
		}
	}

	g.ForensicClues = append(g.ForensicClues, ClueMarker{
		Category:   category,
		CardName:   cardName,
		TurnNumber: g.CurrentTurn,
	})
	g.CluesThisTurn++
	g.touch()

	return nil
}

// FinishTurn advances to the next turn once the clue budget is spent.
// Every turn after the first requires a single clue.
func (g *GameState) FinishTurn(playerID string) error {
	if g.Phase != PhasePlaying {
		return invalidPhasef("cannot finish turn in phase %q", g.Phase)
	}

	player := g.findPlayer(playerID)
	if player == nil || player.Role != RoleForensic {
		return unauthorizedf("only the forensic can finish the turn")
	}

	if g.CluesThisTurn < g.CluesRequired {
		return validationf("turn %d still needs %d clue(s)", g.CurrentTurn, g.CluesRequired-g.CluesThisTurn)
	}

	g.CurrentTurn++
	g.CluesThisTurn = 0
	g.CluesRequired = 1
	g.touch()

	return nil
}

// Accuse resolves one accusation. Correct means suspect, method and
// evidence all match the committed solution; anything else is a plain
// miss with no partial signal. A wrong accusation burns the accuser's
// credential, and the murderer wins once no investigator or accomplice
// holds one.
func (g *GameState) Accuse(playerID, suspectID, methodID, evidenceID string) (GuessResult, error) {
	if g.Phase != PhasePlaying {
		return GuessResult{}, invalidPhasef("cannot accuse in phase %q", g.Phase)
	}

	accuser := g.findPlayer(playerID)
	if accuser == nil {
		return GuessResult{}, validationf("unknown player %q", playerID)
	}
	suspect := g.findPlayer(suspectID)
	if suspect == nil {
		return GuessResult{}, validationf("unknown suspect %q", suspectID)
	}

	if accuser.Role == RoleForensic {
		return GuessResult{}, unauthorizedf("the forensic cannot accuse")
	}
	if !accuser.HasCredential {
		return GuessResult{}, unauthorizedf("accuser has no credential left")
	}

	methodCard, ok := g.tableCard(g.TableMethods, methodID)
	if !ok {
		return GuessResult{}, validationf("method %q is not on the table", methodID)
	}
	evidenceCard, ok := g.tableCard(g.TableEvidences, evidenceID)
	if !ok {
		return GuessResult{}, validationf("evidence %q is not on the table", evidenceID)
	}

	correct := suspect.Role == RoleMurderer &&
		g.MurdererChoice.MethodID == methodID &&
		g.MurdererChoice.EvidenceID == evidenceID

	g.Guesses = append(g.Guesses, Guess{
		PlayerID:     accuser.ID,
		PlayerName:   accuser.Name,
		SuspectID:    suspect.ID,
		SuspectName:  suspect.Name,
		MethodCard:   methodCard.Name,
		EvidenceCard: evidenceCard.Name,
		Timestamp:    time.Now().UnixMilli(),
		Correct:      correct,
	})

	if correct {
		g.Phase = PhaseGameOver
		g.Winner = WinnerInvestigators
		g.touch()
		return GuessResult{Correct: true, GameOver: true, Winner: WinnerInvestigators}, nil
	}

	accuser.HasCredential = false

	// Only investigator/accomplice credentials count toward the
	// murderer's win; the murderer accusing is legal but irrelevant here.
	remaining := 0
	for _, p := range g.Players {
		if (p.Role == RoleInvestigator || p.Role == RoleAccomplice) && p.HasCredential {
			remaining++
		}
	}

	if remaining == 0 {
		g.Phase = PhaseGameOver
		g.Winner = WinnerMurderer
		g.touch()
		return GuessResult{GameOver: true, Winner: WinnerMurderer}, nil
	}

	g.touch()
	return GuessResult{}, nil
}

// Restart returns the room to the lobby, keeping players, names and the
// host flag while clearing everything the last round produced.
func (g *GameState) Restart(hostID string) error {
	if g.Phase != PhaseGameOver {
		return invalidPhasef("cannot restart in phase %q", g.Phase)
	}

	host := g.findPlayer(hostID)
	if host == nil || !host.IsHost {
		return unauthorizedf("only the host can restart the room")
	}

	g.Phase = PhaseLobby
	for i := range g.Players {
		g.Players[i].Role = ""
		g.Players[i].HasCredential = true
	}
	g.TableMethods = []cards.Card{}
	g.TableEvidences = []cards.Card{}
	g.MurdererChoice = MurdererChoice{}
	g.CurrentTurn = 0
	g.CluesThisTurn = 0
	g.CluesRequired = 0
	g.ForensicClues = []ClueMarker{}
	g.Guesses = []Guess{}
	g.Winner = ""
	g.touch()

	return nil
}

// AuthorizeClose checks the host flag before the room is deleted from the
// store. Deletion itself is the store's job.
func (g *GameState) AuthorizeClose(hostID string) error {
	host := g.findPlayer(hostID)
	if host == nil || !host.IsHost {
		return unauthorizedf("only the host can close the room")
	}
	return nil
}

func (g *GameState) onTable(table []cards.Card, id string) bool {
	_, ok := g.tableCard(table, id)
	return ok
}

func (g *GameState) tableCard(table []cards.Card, id string) (cards.Card, bool) {
	for _, c := range table {
		if c.ID == id {
			return c, true
		}
	}
	return cards.Card{}, false
}
