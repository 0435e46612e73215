package combat

import "github.com/hexclash/engine/internal/gametypes"

// Fighter is one unit participating in a combat round.
type Fighter struct {
	UnitID   uint32
	UnitType gametypes.UnitType
}

// Side is one participant (attacker or defender) in a combat round.
// TacticsCard, once selected at round start, persists for the round and
// may add ExtraHits via its effect.
type Side struct {
	PlayerIndex int
	Fighters    []Fighter
	TacticsCard *gametypes.HandCard
	ExtraHits   int
	Retreated   bool
	DeniedTactics bool // Trojan Horse: this side may not play a tactics card in round 1
}

// AllIdentical reports whether every remaining fighter is the same
// unit type — the auto-casualty-selection condition (if all remaining
// units are identical, the engine auto-selects rather than asking).
func (s *Side) AllIdentical() bool {
	if len(s.Fighters) == 0 {
		return true
	}
	first := s.Fighters[0].UnitType
	for _, f := range s.Fighters[1:] {
		if f.UnitType != first {
			return false
		}
	}
	return true
}

// RemoveFighters deletes the fighters whose unit ids are in ids.
func (s *Side) RemoveFighters(ids []uint32) {
	remove := make(map[uint32]bool, len(ids))
	for _, id := range ids {
		remove[id] = true
	}
	out := s.Fighters[:0]
	for _, f := range s.Fighters {
		if !remove[f.UnitID] {
			out = append(out, f)
		}
	}
	s.Fighters = out
}
