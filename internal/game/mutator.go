package game

import (
	"github.com/hexclash/engine/internal/playerstate"
	"github.com/hexclash/engine/internal/resource"
)

// playerMutator adapts a Game's player slice to content.Mutator, so a
// catalog entry's Effect can apply itself without the content package
// importing playerstate: game state stores ids, and lookups go through
// the registry.
type playerMutator struct {
	players []*playerstate.Player
}

func (m playerMutator) GainResources(playerIndex int, pile resource.Pile) {
	if playerIndex < 0 || playerIndex >= len(m.players) {
		return
	}
	m.players[playerIndex].Gain(pile)
}

func (m playerMutator) LoseResources(playerIndex int, pile resource.Pile) {
	if playerIndex < 0 || playerIndex >= len(m.players) {
		return
	}
	m.players[playerIndex].Pay(pile)
}
