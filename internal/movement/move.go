package movement

import (
	"github.com/hexclash/engine/internal/gametypes"
	"github.com/hexclash/engine/internal/hexmap"
	"github.com/hexclash/engine/internal/playerstate"
)

// Descriptor identifies one "move" in flight — a group of units headed
// to one destination, possibly embarking or disembarking. A movement
// action is consumed per distinct move.
type Descriptor struct {
	UnitIDs []uint32
	From    hexmap.Position
	To      hexmap.Position
	Embark  *uint32 // carrier id, if this leg embarks the group
}

// SameMove reports whether next continues current: embark/disembark
// share one move action iff the descriptor matches — an embark leg
// A1->A2 followed by a disembark leg for the same units landing at B2
// consumes a single move.
func SameMove(current *Descriptor, unitIDs []uint32, from hexmap.Position) bool {
	if current == nil || current.Embark == nil {
		return false
	}
	if current.To != from {
		return false
	}
	return sameUnitSet(current.UnitIDs, unitIDs)
}

func sameUnitSet(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[uint32]bool, len(a))
	for _, id := range a {
		seen[id] = true
	}
	for _, id := range b {
		if !seen[id] {
			return false
		}
	}
	return true
}

// State tracks the in-progress movement phase for the active player.
type State struct {
	MovementActionsLeft int
	CurrentMove         *Descriptor
}

// NewState starts a movement phase with the given action budget.
func NewState(actionsLeft int) *State {
	return &State{MovementActionsLeft: actionsLeft}
}

// ApplyMove advances units to destination, consuming a movement action
// unless this leg shares the current descriptor (embark immediately
// followed by disembark of the same group). It appends terrain
// restrictions and updates embark/disembark bookkeeping on the units.
func (s *State) ApplyMove(m *hexmap.Map, units []*playerstate.Unit, destination hexmap.Position, embarkCarrier *uint32) {
	if len(units) == 0 {
		return
	}
	ids := make([]uint32, len(units))
	for i, u := range units {
		ids[i] = u.ID
	}
	from := units[0].Position

	shared := SameMove(s.CurrentMove, ids, from)
	if !shared {
		s.MovementActionsLeft--
	}

	for _, u := range units {
		if embarkCarrier != nil {
			u.Embark(*embarkCarrier, destination)
			continue
		}
		if u.IsCarried() {
			u.Disembark(destination)
		} else {
			u.Position = destination
		}
		if t, ok := m.Get(destination); ok {
			if r, restrict := AppendRestrictionForTerrain(t); restrict {
				u.AddRestriction(r)
			}
		}
	}

	s.CurrentMove = &Descriptor{UnitIDs: ids, From: from, To: destination, Embark: embarkCarrier}
}

// Clone deep-copies s, used by the game package's undo/redo snapshotting.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	cp := *s
	if s.CurrentMove != nil {
		d := *s.CurrentMove
		d.UnitIDs = append([]uint32{}, s.CurrentMove.UnitIDs...)
		if s.CurrentMove.Embark != nil {
			id := *s.CurrentMove.Embark
			d.Embark = &id
		}
		cp.CurrentMove = &d
	}
	return &cp
}

// MarkBattle appends the Battle restriction to every participant, used
// by the combat engine once a movement resolves into an attack: a
// battle participant may not move again this turn.
func MarkBattle(units []*playerstate.Unit) {
	for _, u := range units {
		u.AddRestriction(gametypes.RestrictBattle)
	}
}
