package game

import (
	"github.com/hexclash/engine/internal/content"
	"github.com/hexclash/engine/internal/events"
	"github.com/hexclash/engine/internal/gametypes"
	"github.com/hexclash/engine/internal/hexmap"
	"github.com/hexclash/engine/internal/incident"
	"github.com/hexclash/engine/internal/playerstate"
	"github.com/hexclash/engine/internal/turnphase"
)

// Setup carries the inputs NewGame needs beyond a bare player count.
// Board layout, starting civilizations and the content registry are all
// collaborator-supplied.
type Setup struct {
	Map           *hexmap.Map
	Registry      *content.Registry
	Civilizations []string                          // one per player, len == player count
	StartingUnits []map[string]int                    // per player, raw unit type strings resolved by the caller
	IncidentDeck  []string                             // pre-shuffled incident ids

	// WonderDeck/ActionCardDeck/ObjectiveCardDeck seed the shared draw
	// piles, in pre-shuffled order. Each player is dealt one wonder card
	// off the top at setup; the rest are drawn during play.
	WonderDeck        []string
	ActionCardDeck    []string
	ObjectiveCardDeck []string
}

// NewGame builds a fresh Game in the ChooseCivilization state.
func NewGame(id string, playerCount int, seed int64, setup Setup) *Game {
	players := make([]*playerstate.Player, playerCount)
	for i := 0; i < playerCount; i++ {
		civ := ""
		if i < len(setup.Civilizations) {
			civ = setup.Civilizations[i]
		}
		players[i] = playerstate.NewPlayer(i, civ, nil, nil)
	}

	g := &Game{
		ID:              id,
		Status:          StatusChooseCivilization,
		Seed:            seed,
		Players:         players,
		Map:             setup.Map,
		Registry:        setup.Registry,
		Turn:            turnphase.NewController(playerCount, 0),
		ActionsLeft:     turnphase.ActionsPerTurn,
		IncidentCounter: incident.NewCounter(),
		IncidentDeck:    incident.NewDeck(setup.IncidentDeck),
		NeutralUnits:    map[uint32]*NeutralUnit{},
		Events:          &events.Stack{},

		WondersLeft:        append([]string{}, setup.WonderDeck...),
		ActionCardsLeft:    append([]string{}, setup.ActionCardDeck...),
		ObjectiveCardsLeft: append([]string{}, setup.ObjectiveCardDeck...),
	}
	g.rng = newRand(seed)
	for _, p := range players {
		if len(g.WondersLeft) == 0 {
			break
		}
		p.WonderCards = append(p.WonderCards, gametypes.NewWonderCard(g.WondersLeft[0]))
		g.WondersLeft = g.WondersLeft[1:]
	}
	g.registerPersistentEvents()
	return g
}

// BeginPlay transitions out of ChooseCivilization once every player has a
// civilization assigned; the first turn begins once setup completes.
func (g *Game) BeginPlay() {
	g.Status = StatusPlaying
}
