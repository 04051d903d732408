package mystery

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mystery-server/internal/cards"
)

func TestStart(t *testing.T) {
	assert := assert.New(t)

	state, _, _ := NewGameState("ABC234", "Alice")
	state.Join("Bob")
	state.Join("Carol")
	state.Join("Dave")

	err := state.Start()

	assert.NoError(err)
	assert.Equal(PhaseMurdererSelection, state.Phase)
	assert.Len(state.TableMethods, 4)
	assert.Len(state.TableEvidences, 4)
	for _, p := range state.Players {
		assert.NotEmpty(p.Role)
	}
}

func TestStart_OnlyFromLobby(t *testing.T) {
	assert := assert.New(t)

	state := startedGame(t, 4)

	err := state.Start()
	assert.ErrorIs(err, ErrInvalidPhase)
}

func TestChooseMurdererCards(t *testing.T) {
	assert := assert.New(t)

	state := startedGame(t, 4)
	murderer := playerWithRole(t, state, RoleMurderer)
	methodID := state.TableMethods[2].ID
	evidenceID := state.TableEvidences[1].ID

	err := state.ChooseMurdererCards(murderer.ID, methodID, evidenceID)

	assert.NoError(err)
	assert.Equal(PhasePlaying, state.Phase)
	assert.Equal(methodID, state.MurdererChoice.MethodID)
	assert.Equal(evidenceID, state.MurdererChoice.EvidenceID)

	// Turn 1 opens with a two-clue budget
	assert.Equal(1, state.CurrentTurn)
	assert.Equal(0, state.CluesThisTurn)
	assert.Equal(2, state.CluesRequired)
}

func TestChooseMurdererCards_OnlyMurderer(t *testing.T) {
	assert := assert.New(t)

	state := startedGame(t, 4)
	forensic := playerWithRole(t, state, RoleForensic)

	err := state.ChooseMurdererCards(forensic.ID, state.TableMethods[0].ID, state.TableEvidences[0].ID)

	assert.ErrorIs(err, ErrUnauthorized)
	assert.Equal(PhaseMurdererSelection, state.Phase)
	assert.Empty(state.MurdererChoice.MethodID)
}

func TestChooseMurdererCards_CardsMustBeOnTable(t *testing.T) {
	assert := assert.New(t)

	state := startedGame(t, 4)
	murderer := playerWithRole(t, state, RoleMurderer)

	// Find a catalog method that wasn't dealt
	var offTable string
	for _, c := range cards.MethodCards {
		if !state.onTable(state.TableMethods, c.ID) {
			offTable = c.ID
			break
		}
	}

	err := state.ChooseMurdererCards(murderer.ID, offTable, state.TableEvidences[0].ID)
	assert.ErrorIs(err, ErrValidation)

	err = state.ChooseMurdererCards(murderer.ID, state.TableMethods[0].ID, "evidence_99")
	assert.ErrorIs(err, ErrValidation)

	assert.Equal(PhaseMurdererSelection, state.Phase)
}

func TestAddClue(t *testing.T) {
	assert := assert.New(t)

	state := playingGame(t, 4)
	forensic := playerWithRole(t, state, RoleForensic)

	err := state.AddClue(forensic.ID, cards.CategoryLocation, "Parque")

	assert.NoError(err)
	assert.Equal(1, state.CluesThisTurn)
	assert.Len(state.ForensicClues, 1)
	assert.Equal(cards.CategoryLocation, state.ForensicClues[0].Category)
	assert.Equal("Parque", state.ForensicClues[0].CardName)
	assert.Equal(1, state.ForensicClues[0].TurnNumber)
}

func TestAddClue_OnlyForensic(t *testing.T) {
	assert := assert.New(t)

	state := playingGame(t, 4)
	murderer := playerWithRole(t, state, RoleMurderer)

	err := state.AddClue(murderer.ID, cards.CategoryLocation, "Parque")

	assert.ErrorIs(err, ErrUnauthorized)
	assert.Empty(state.ForensicClues)
}

func TestAddClue_UnknownCard(t *testing.T) {
	assert := assert.New(t)

	state := playingGame(t, 4)
	forensic := playerWithRole(t, state, RoleForensic)

	// Name exists but in a different category
	err := state.AddClue(forensic.ID, cards.CategoryTime, "Parque")
	assert.ErrorIs(err, ErrValidation)

	err = state.AddClue(forensic.ID, cards.CategoryLocation, "Praia")
	assert.ErrorIs(err, ErrValidation)

	assert.Empty(state.ForensicClues)
	assert.Equal(0, state.CluesThisTurn)
}

func TestAddClue_TurnOneCategoryDiversity(t *testing.T) {
	assert := assert.New(t)

	state := playingGame(t, 4)
	forensic := playerWithRole(t, state, RoleForensic)

	assert.NoError(state.AddClue(forensic.ID, cards.CategoryLocation, "Parque"))

	// Same category again on turn 1 is rejected
	err := state.AddClue(forensic.ID, cards.CategoryLocation, "Rua")
	assert.ErrorIs(err, ErrValidation)
	assert.Equal(1, state.CluesThisTurn)

	// A different category is accepted
	assert.NoError(state.AddClue(forensic.ID, cards.CategoryTime, "Noite"))
	assert.Equal(2, state.CluesThisTurn)
}

func TestAddClue_NoCategoryConstraintAfterTurnOne(t *testing.T) {
	assert := assert.New(t)

	state := playingGame(t, 4)
	forensic := playerWithRole(t, state, RoleForensic)

	assert.NoError(state.AddClue(forensic.ID, cards.CategoryLocation, "Parque"))
	assert.NoError(state.AddClue(forensic.ID, cards.CategoryTime, "Noite"))
	assert.NoError(state.FinishTurn(forensic.ID))

	// Turn 2: location again is fine
	assert.NoError(state.AddClue(forensic.ID, cards.CategoryLocation, "Rua"))
	assert.Equal(2, state.ForensicClues[2].TurnNumber)
}

func TestAddClue_BudgetExhausted(t *testing.T) {
	assert := assert.New(t)

	state := playingGame(t, 4)
	forensic := playerWithRole(t, state, RoleForensic)

	assert.NoError(state.AddClue(forensic.ID, cards.CategoryLocation, "Parque"))
	assert.NoError(state.AddClue(forensic.ID, cards.CategoryTime, "Noite"))

	// Third clue on turn 1 exceeds the budget
	err := state.AddClue(forensic.ID, cards.CategoryWeather, "Chuva")
	assert.ErrorIs(err, ErrValidation)
	assert.Len(state.ForensicClues, 2)
}

func TestFinishTurn(t *testing.T) {
	assert := assert.New(t)

	state := playingGame(t, 4)
	forensic := playerWithRole(t, state, RoleForensic)

	// Cannot finish before the budget is spent
	err := state.FinishTurn(forensic.ID)
	assert.ErrorIs(err, ErrValidation)
	assert.Equal(1, state.CurrentTurn)

	state.AddClue(forensic.ID, cards.CategoryLocation, "Parque")
	err = state.FinishTurn(forensic.ID)
	assert.ErrorIs(err, ErrValidation)

	state.AddClue(forensic.ID, cards.CategoryTime, "Noite")
	assert.NoError(state.FinishTurn(forensic.ID))

	assert.Equal(2, state.CurrentTurn)
	assert.Equal(0, state.CluesThisTurn)
	assert.Equal(1, state.CluesRequired)
}

func TestFinishTurn_OnlyForensic(t *testing.T) {
	assert := assert.New(t)

	state := playingGame(t, 4)
	forensic := playerWithRole(t, state, RoleForensic)
	investigator := playerWithRole(t, state, RoleInvestigator)

	state.AddClue(forensic.ID, cards.CategoryLocation, "Parque")
	state.AddClue(forensic.ID, cards.CategoryTime, "Noite")

	err := state.FinishTurn(investigator.ID)
	assert.ErrorIs(err, ErrUnauthorized)
	assert.Equal(1, state.CurrentTurn)
}

func TestAccuse_Correct(t *testing.T) {
	assert := assert.New(t)

	state := playingGame(t, 4)
	murderer := playerWithRole(t, state, RoleMurderer)
	investigator := playerWithRole(t, state, RoleInvestigator)

	result, err := state.Accuse(investigator.ID, murderer.ID,
		state.MurdererChoice.MethodID, state.MurdererChoice.EvidenceID)

	assert.NoError(err)
	assert.True(result.Correct)
	assert.True(result.GameOver)
	assert.Equal(WinnerInvestigators, result.Winner)

	assert.Equal(PhaseGameOver, state.Phase)
	assert.Equal(WinnerInvestigators, state.Winner)

	// Correct accusation costs nothing
	assert.True(state.findPlayer(investigator.ID).HasCredential)
}

func TestAccuse_PartialMatchIsWrong(t *testing.T) {
	assert := assert.New(t)

	state := playingGame(t, 6)
	murderer := playerWithRole(t, state, RoleMurderer)
	investigator := playerWithRole(t, state, RoleInvestigator)

	// Right suspect, right method, wrong evidence
	var wrongEvidence string
	for _, c := range state.TableEvidences {
		if c.ID != state.MurdererChoice.EvidenceID {
			wrongEvidence = c.ID
			break
		}
	}

	result, err := state.Accuse(investigator.ID, murderer.ID,
		state.MurdererChoice.MethodID, wrongEvidence)

	assert.NoError(err)
	assert.False(result.Correct)
	assert.False(result.GameOver)
	assert.Equal(PhasePlaying, state.Phase)

	// Wrong accusation burns the credential
	assert.False(state.findPlayer(investigator.ID).HasCredential)
}

func TestAccuse_WrongSuspect(t *testing.T) {
	assert := assert.New(t)

	state := playingGame(t, 6)
	forensic := playerWithRole(t, state, RoleForensic)
	investigator := playerWithRole(t, state, RoleInvestigator)

	// Right cards, wrong suspect
	result, err := state.Accuse(investigator.ID, forensic.ID,
		state.MurdererChoice.MethodID, state.MurdererChoice.EvidenceID)

	assert.NoError(err)
	assert.False(result.Correct)
}

func TestAccuse_RecordsGuessWithSnapshotNames(t *testing.T) {
	assert := assert.New(t)

	state := playingGame(t, 4)
	murderer := playerWithRole(t, state, RoleMurderer)
	investigator := playerWithRole(t, state, RoleInvestigator)

	methodID := state.MurdererChoice.MethodID
	evidenceID := state.MurdererChoice.EvidenceID
	methodCard, _ := cards.MethodByID(methodID)
	evidenceCard, _ := cards.EvidenceByID(evidenceID)

	state.Accuse(investigator.ID, murderer.ID, methodID, evidenceID)

	assert.Len(state.Guesses, 1)
	guess := state.Guesses[0]
	assert.Equal(investigator.ID, guess.PlayerID)
	assert.Equal(investigator.Name, guess.PlayerName)
	assert.Equal(murderer.ID, guess.SuspectID)
	assert.Equal(murderer.Name, guess.SuspectName)
	assert.Equal(methodCard.Name, guess.MethodCard)
	assert.Equal(evidenceCard.Name, guess.EvidenceCard)
	assert.True(guess.Correct)
	assert.NotZero(guess.Timestamp)
}

func TestAccuse_ForensicCannotAccuse(t *testing.T) {
	assert := assert.New(t)

	state := playingGame(t, 4)
	murderer := playerWithRole(t, state, RoleMurderer)
	forensic := playerWithRole(t, state, RoleForensic)

	_, err := state.Accuse(forensic.ID, murderer.ID,
		state.MurdererChoice.MethodID, state.MurdererChoice.EvidenceID)

	assert.ErrorIs(err, ErrUnauthorized)
	assert.Empty(state.Guesses)
}

func TestAccuse_RequiresCredential(t *testing.T) {
	assert := assert.New(t)

	state := playingGame(t, 6)
	murderer := playerWithRole(t, state, RoleMurderer)
	investigator := playerWithRole(t, state, RoleInvestigator)

	var wrongMethod string
	for _, c := range state.TableMethods {
		if c.ID != state.MurdererChoice.MethodID {
			wrongMethod = c.ID
			break
		}
	}

	// Burn the credential with a miss
	_, err := state.Accuse(investigator.ID, murderer.ID, wrongMethod, state.MurdererChoice.EvidenceID)
	assert.NoError(err)

	// Second attempt is rejected, even a correct one
	_, err = state.Accuse(investigator.ID, murderer.ID,
		state.MurdererChoice.MethodID, state.MurdererChoice.EvidenceID)
	assert.ErrorIs(err, ErrUnauthorized)
	assert.Len(state.Guesses, 1)
}

func TestAccuse_UnknownSuspect(t *testing.T) {
	assert := assert.New(t)

	state := playingGame(t, 4)
	investigator := playerWithRole(t, state, RoleInvestigator)

	_, err := state.Accuse(investigator.ID, "nobody",
		state.MurdererChoice.MethodID, state.MurdererChoice.EvidenceID)

	assert.ErrorIs(err, ErrValidation)
	assert.Empty(state.Guesses)
}

func TestAccuse_CredentialExhaustionEndsGame(t *testing.T) {
	assert := assert.New(t)

	state := playingGame(t, 3) // forensic, murderer, one investigator
	murderer := playerWithRole(t, state, RoleMurderer)
	investigator := playerWithRole(t, state, RoleInvestigator)

	var wrongMethod string
	for _, c := range state.TableMethods {
		if c.ID != state.MurdererChoice.MethodID {
			wrongMethod = c.ID
			break
		}
	}

	result, err := state.Accuse(investigator.ID, murderer.ID, wrongMethod, state.MurdererChoice.EvidenceID)

	assert.NoError(err)
	assert.False(result.Correct)
	assert.True(result.GameOver)
	assert.Equal(WinnerMurderer, result.Winner)
	assert.Equal(PhaseGameOver, state.Phase)
	assert.Equal(WinnerMurderer, state.Winner)
}

func TestAccuse_GameContinuesWhileCredentialsRemain(t *testing.T) {
	assert := assert.New(t)

	state := playingGame(t, 5) // includes an accomplice holding a credential
	murderer := playerWithRole(t, state, RoleMurderer)
	investigator := playerWithRole(t, state, RoleInvestigator)

	var wrongMethod string
	for _, c := range state.TableMethods {
		if c.ID != state.MurdererChoice.MethodID {
			wrongMethod = c.ID
			break
		}
	}

	result, err := state.Accuse(investigator.ID, murderer.ID, wrongMethod, state.MurdererChoice.EvidenceID)

	assert.NoError(err)
	assert.False(result.GameOver)
	assert.Equal(PhasePlaying, state.Phase)
}

func TestAccuse_OnlyWhilePlaying(t *testing.T) {
	assert := assert.New(t)

	state := startedGame(t, 4) // still in murderer_selection
	murderer := playerWithRole(t, state, RoleMurderer)
	investigator := playerWithRole(t, state, RoleInvestigator)

	_, err := state.Accuse(investigator.ID, murderer.ID,
		state.TableMethods[0].ID, state.TableEvidences[0].ID)

	assert.ErrorIs(err, ErrInvalidPhase)
}

func TestRestart(t *testing.T) {
	assert := assert.New(t)

	state := playingGame(t, 4)
	murderer := playerWithRole(t, state, RoleMurderer)
	investigator := playerWithRole(t, state, RoleInvestigator)

	var hostID string
	for _, p := range state.Players {
		if p.IsHost {
			hostID = p.ID
		}
	}

	// Drive the game to game_over
	state.Accuse(investigator.ID, murderer.ID,
		state.MurdererChoice.MethodID, state.MurdererChoice.EvidenceID)
	assert.Equal(PhaseGameOver, state.Phase)

	namesBefore := make([]string, len(state.Players))
	for i, p := range state.Players {
		namesBefore[i] = p.Name
	}

	assert.NoError(state.Restart(hostID))

	assert.Equal(PhaseLobby, state.Phase)
	assert.Len(state.Players, 4)
	for i, p := range state.Players {
		assert.Equal(namesBefore[i], p.Name)
		assert.Empty(p.Role)
		assert.True(p.HasCredential)
	}
	assert.True(state.Players[0].IsHost)

	assert.Empty(state.TableMethods)
	assert.Empty(state.TableEvidences)
	assert.Equal(MurdererChoice{}, state.MurdererChoice)
	assert.Equal(0, state.CurrentTurn)
	assert.Equal(0, state.CluesThisTurn)
	assert.Equal(0, state.CluesRequired)
	assert.Empty(state.ForensicClues)
	assert.Empty(state.Guesses)
	assert.Empty(state.Winner)
}

func TestRestart_OnlyHost(t *testing.T) {
	assert := assert.New(t)

	state := playingGame(t, 4)
	murderer := playerWithRole(t, state, RoleMurderer)
	investigator := playerWithRole(t, state, RoleInvestigator)

	state.Accuse(investigator.ID, murderer.ID,
		state.MurdererChoice.MethodID, state.MurdererChoice.EvidenceID)

	var nonHost string
	for _, p := range state.Players {
		if !p.IsHost {
			nonHost = p.ID
			break
		}
	}

	err := state.Restart(nonHost)
	assert.ErrorIs(err, ErrUnauthorized)
	assert.Equal(PhaseGameOver, state.Phase)
}

func TestRestart_OnlyFromGameOver(t *testing.T) {
	assert := assert.New(t)

	state := playingGame(t, 4)
	hostID := state.Players[0].ID

	err := state.Restart(hostID)
	assert.ErrorIs(err, ErrInvalidPhase)
	assert.Equal(PhasePlaying, state.Phase)
}

func TestAuthorizeClose(t *testing.T) {
	assert := assert.New(t)

	state, hostID, _ := NewGameState("ABC234", "Alice")
	bobID, _ := state.Join("Bob")

	assert.NoError(state.AuthorizeClose(hostID))
	assert.ErrorIs(state.AuthorizeClose(bobID), ErrUnauthorized)
	assert.ErrorIs(state.AuthorizeClose("nobody"), ErrUnauthorized)
}

// game_over admits no mutating operation except restart.
func TestGameOver_RejectsFurtherMoves(t *testing.T) {
	assert := assert.New(t)

	state := playingGame(t, 4)
	murderer := playerWithRole(t, state, RoleMurderer)
	forensic := playerWithRole(t, state, RoleForensic)
	investigator := playerWithRole(t, state, RoleInvestigator)

	state.Accuse(investigator.ID, murderer.ID,
		state.MurdererChoice.MethodID, state.MurdererChoice.EvidenceID)
	assert.Equal(PhaseGameOver, state.Phase)
	assert.NotEmpty(state.Winner)

	assert.ErrorIs(state.AddClue(forensic.ID, cards.CategoryLocation, "Parque"), ErrInvalidPhase)
	assert.ErrorIs(state.FinishTurn(forensic.ID), ErrInvalidPhase)
	_, err := state.Accuse(investigator.ID, murderer.ID,
		state.MurdererChoice.MethodID, state.MurdererChoice.EvidenceID)
	assert.ErrorIs(err, ErrInvalidPhase)
	assert.ErrorIs(state.Start(), ErrInvalidPhase)
	_, err = state.Join("Latecomer")
	assert.ErrorIs(err, ErrInvalidPhase)
}
