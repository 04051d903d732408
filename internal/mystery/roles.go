package mystery

import (
	"math/rand"

	"mystery-server/internal/cards"
)

// tableSize is how many method and evidence cards are dealt face up.
const tableSize = 4

// assignRoles builds the role deck for the table size (forensic,
// murderer, accomplice when the table is large enough, investigators for
// every remaining seat), shuffles it with a uniform permutation and deals
// it positionally. The player list itself keeps its join order, with the
// host at index 0.
//
// A single-player room is a debug configuration: the sole player becomes
// the murderer and no win condition is reachable.
func assignRoles(players []Player) {
	if len(players) == 1 {
		players[0].Role = RoleMurderer
		players[0].HasCredential = true
		return
	}

	roles := []Role{RoleForensic, RoleMurderer}
	if len(players) >= 5 {
		roles = append(roles, RoleAccomplice)
	}
	for len(roles) < len(players) {
		roles = append(roles, RoleInvestigator)
	}

	rand.Shuffle(len(roles), func(i, j int) {
		roles[i], roles[j] = roles[j], roles[i]
	})

	for i := range players {
		players[i].Role = roles[i]
		players[i].HasCredential = true
	}
}

// dealTable draws the two public 4-card tables, each from an independent
// shuffle of the full catalog.
func dealTable() (methods, evidences []cards.Card) {
	methods = shuffled(cards.MethodCards)[:tableSize]
	evidences = shuffled(cards.EvidenceCards)[:tableSize]
	return
}

func shuffled(catalog []cards.Card) []cards.Card {
	deck := make([]cards.Card, len(catalog))
	copy(deck, catalog)
	rand.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}
