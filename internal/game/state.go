// Package game implements the top-level Game struct and its action
// dispatcher. Grounded on the teacher's ApplicationState/GameState pairing
// (internal/store/state.go, internal/store/game_reducer.go): a single
// owned mutable struct, advanced by a reducer-shaped Execute function
// that either returns a new state or an error with no mutation.
package game

import (
	"math/rand"

	"github.com/hexclash/engine/internal/action"
	"github.com/hexclash/engine/internal/content"
	"github.com/hexclash/engine/internal/events"
	"github.com/hexclash/engine/internal/gametypes"
	"github.com/hexclash/engine/internal/hexmap"
	"github.com/hexclash/engine/internal/incident"
	"github.com/hexclash/engine/internal/movement"
	"github.com/hexclash/engine/internal/playerstate"
	"github.com/hexclash/engine/internal/turnphase"
)

// Status is the GameState tagged variant.
type Status string

const (
	StatusChooseCivilization Status = "choose_civilization"
	StatusPlaying            Status = "playing"
	StatusMovement           Status = "movement"
	StatusStatusPhase        Status = "status_phase"
	StatusFinished           Status = "finished"
)

// Game is the engine's single mutable instance: the only mutable
// resource, with ownership exclusive to the dispatcher for the duration
// of a call.
type Game struct {
	ID       string
	Status   Status
	Seed     int64
	Players  []*playerstate.Player
	Map      *hexmap.Map
	Registry *content.Registry

	Turn          *turnphase.Controller
	ActionsLeft   int
	MovementState *movement.State

	IncidentCounter *incident.Counter
	IncidentDeck    *incident.Deck

	// ActiveIncidentProtection names the protection advance of the
	// incident whose per-player effects are still resolving; holders are
	// skipped by those listeners. Cleared once the event frame drains.
	ActiveIncidentProtection string

	// WondersLeft/ActionCardsLeft/ObjectiveCardsLeft are the shared
	// face-down draw piles, by id, in pre-shuffled order; drawing from
	// one reveals hidden information and pins the undo floor.
	WondersLeft        []string
	ActionCardsLeft    []string
	ObjectiveCardsLeft []string

	// TacticsDiscard holds tactics cards played face-down during combat
	// round starts.
	TacticsDiscard []gametypes.HandCard

	// PermanentEffects accumulates the origins of effects that stand for
	// the rest of the game; applyWonderCard appends the built wonder's
	// origin here.
	PermanentEffects []events.Origin

	Battle             *combatBattle // nil unless Status == StatusMovement and combat is in progress
	combatCityPosition hexmap.Position

	// NeutralUnits are barbarian warbands and pirate ships: map pieces
	// raised by an incident's base effect rather than recruited by a
	// civilization.
	NeutralUnits      map[uint32]*NeutralUnit
	nextNeutralUnitID uint32

	Events *events.Stack

	// pirateEvent is the live listener set the pirates_raid frame on
	// Events drives; rebuilt by registerPersistentEvents on every
	// construction path since it closes over *Game.
	pirateEvent *events.PersistentEvent[Game]

	// availability is the is_playing_action_available transient slot the
	// dispatcher queries before applying a playing action. Like
	// pirateEvent it holds callbacks, so every construction path rebuilds
	// it empty; active content re-registers its listeners afterwards.
	availability *events.TransientEvent[AvailabilityCheck]

	// Pending is the engine's single outstanding built-in suspension
	// (combat or cultural-influence escalation); see its doc comment in
	// dispatcher.go.
	Pending        *Pending
	pendingCulture *pendingCultureAttempt

	// influencedStartingCities/successfulInfluenceThisTurn enforce the
	// once-per-turn cultural-influence limits (a starting city already
	// influenced this turn, or another successful influence already
	// having occurred this turn), cleared on EndTurn.
	influencedStartingCities    map[hexmap.Position]bool
	successfulInfluenceThisTurn bool

	ActionLog      []action.LogItem
	ActionLogIndex int
	UndoLimit      int // actions before this index in the log can never be undone past

	Messages []string

	rng           *rand.Rand
	diceLog       []int
	diceDrawCount int
	cardDrawCount int

	snapshots       []*Snapshot
	redoSnapshots   []*Snapshot
}

// CurrentPlayer returns the player whose turn it is.
func (g *Game) CurrentPlayer() *playerstate.Player {
	return g.Players[g.Turn.CurrentPlayerIndex]
}

// CurrentEvent returns the top of the persistent event stack, or nil if
// quiescent.
func (g *Game) CurrentEvent() *events.PersistentEventState {
	return g.Events.Top()
}

// validPlayer reports whether idx is a valid player index.
func (g *Game) validPlayer(idx int) bool {
	return idx >= 0 && idx < len(g.Players)
}
