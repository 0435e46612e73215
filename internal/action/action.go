// Package action defines the engine's top-level Action sum type. It
// holds data only; routing and legality live in the game package's
// dispatcher, mirroring how the teacher keeps its Action/ActionType
// payloads (internal/store/actions.go) separate from the reducer that
// interprets them (internal/store/game_reducer.go).
package action

import (
	"encoding/json"

	"github.com/hexclash/engine/internal/events"
	"github.com/hexclash/engine/internal/gametypes"
	"github.com/hexclash/engine/internal/hexmap"
	"github.com/hexclash/engine/internal/resource"
)

// Kind tags the top-level Action variant.
type Kind string

const (
	KindPlaying     Kind = "playing"
	KindMovement    Kind = "movement"
	KindResponse    Kind = "response"
	KindStatusPhase Kind = "status_phase"
	KindUndo        Kind = "undo"
	KindRedo        Kind = "redo"
)

// PlayingKind tags the PlayingAction variant.
type PlayingKind string

const (
	PlayingAdvance                PlayingKind = "advance"
	PlayingFoundCity              PlayingKind = "found_city"
	PlayingConstruct              PlayingKind = "construct"
	PlayingCollect                PlayingKind = "collect"
	PlayingIncreaseHappiness      PlayingKind = "increase_happiness"
	PlayingInfluenceCultureAttempt PlayingKind = "influence_culture_attempt"
	PlayingActionCard             PlayingKind = "action_card"
	PlayingWonderCard             PlayingKind = "wonder_card"
	PlayingRecruit                PlayingKind = "recruit"
	PlayingMoveUnits              PlayingKind = "move_units"
	PlayingCustom                 PlayingKind = "custom"
	PlayingEndTurn                PlayingKind = "end_turn"
)

// PlayingAction is one PlayingAction variant's payload. Only the fields
// relevant to Kind are populated; callers build it with the With*
// constructors below rather than a bare literal, so an unused field
// can't be mistaken for part of the action's meaning.
type PlayingAction struct {
	Kind PlayingKind

	AdvanceName string
	Payment     resource.Pile

	CityPosition hexmap.Position
	Building     gametypes.BuildingKind

	// TargetPosition/IsCityCenter/SelfInfluence are used by
	// InfluenceCultureAttempt: CityPosition is the starting city,
	// TargetPosition the target city.
	TargetPosition hexmap.Position
	IsCityCenter   bool
	SelfInfluence  bool

	CardID string // action/wonder card id

	RecruitUnitType gametypes.UnitType

	CustomType string

	// IsFree marks an action that does not consume the actions_left
	// budget.
	IsFree bool
}

// MovementAction carries one leg of a movement sequence. Stop closes
// the movement phase early, forfeiting the remaining movement budget.
type MovementAction struct {
	UnitIDs       []uint32
	Destination   hexmap.Position
	EmbarkCarrier *uint32
	Stop          bool
}

// StatusPhaseAction carries one status-phase player's step through the
// sub-phase currently running. Only the field relevant to the active
// sub-phase is populated; a zero value declines whatever that sub-phase
// optionally offers.
type StatusPhaseAction struct {
	AdvanceName   string          // free_advance
	Raze          bool            // raze_size1_city: whether to act at all
	CityPosition  hexmap.Position // raze_size1_city
	NewGovernment string          // change_government_type; "" declines
	FirstPlayer   *int            // determine_first_player (last round only)
}

// Action is the top-level submitted command.
type Action struct {
	Kind        Kind
	Playing     *PlayingAction
	Movement    *MovementAction
	StatusPhase *StatusPhaseAction
	Response    events.Response
}

// actionJSON is Action's wire shape: Response is tagged by its Kind so
// the interface's dynamic type survives a round trip through JSON.
type actionJSON struct {
	Kind        Kind                   `json:"kind"`
	Playing     *PlayingAction         `json:"playing,omitempty"`
	Movement    *MovementAction        `json:"movement,omitempty"`
	StatusPhase *StatusPhaseAction     `json:"status_phase,omitempty"`
	Response    *events.TaggedResponse `json:"response,omitempty"`
}

func (a Action) MarshalJSON() ([]byte, error) {
	aux := actionJSON{Kind: a.Kind, Playing: a.Playing, Movement: a.Movement, StatusPhase: a.StatusPhase}
	if a.Response != nil {
		tagged, err := events.EncodeResponse(a.Response)
		if err != nil {
			return nil, err
		}
		aux.Response = &tagged
	}
	return json.Marshal(aux)
}

func (a *Action) UnmarshalJSON(data []byte) error {
	var aux actionJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	a.Kind = aux.Kind
	a.Playing = aux.Playing
	a.Movement = aux.Movement
	a.StatusPhase = aux.StatusPhase
	a.Response = nil
	if aux.Response != nil {
		resp, err := events.DecodeResponse(*aux.Response)
		if err != nil {
			return err
		}
		a.Response = resp
	}
	return nil
}

// NewPlayingAction wraps p as a top-level Action.
func NewPlayingAction(p PlayingAction) Action {
	return Action{Kind: KindPlaying, Playing: &p}
}

// NewMovementAction wraps m as a top-level Action.
func NewMovementAction(m MovementAction) Action {
	return Action{Kind: KindMovement, Movement: &m}
}

// NewStatusPhaseAction wraps sp as a top-level Action.
func NewStatusPhaseAction(sp StatusPhaseAction) Action {
	return Action{Kind: KindStatusPhase, StatusPhase: &sp}
}

// NewResponseAction wraps resp as a top-level Action.
func NewResponseAction(resp events.Response) Action {
	return Action{Kind: KindResponse, Response: resp}
}

// Undo is the singleton Undo action.
var Undo = Action{Kind: KindUndo}

// Redo is the singleton Redo action.
var Redo = Action{Kind: KindRedo}

// LogItem is one entry in the game's action log.
type LogItem struct {
	PlayerIndex int    `json:"player_index"`
	Action      Action `json:"action"`
}
