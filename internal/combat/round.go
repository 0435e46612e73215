package combat

import "github.com/hexclash/engine/internal/gametypes"

// RollResult is the aggregate of one side's dice for a round.
type RollResult struct {
	CombatValue int
	HitCancels  int // Elephant: cancels 1 hit the opponent would otherwise score
}

// RollSide rolls one die per fighter, applying unit-type bonuses:
// Infantry +1 value, Cavalry +2 value, Elephant cancels 1 hit and zeroes
// that die's value, Leader permits unlimited reroll of 1s. Each unit on
// the side can claim its type's bonus at most once: a side with one
// Infantry among four Cavalry gets the Infantry bonus on one
// Infantry-icon die, not every one.
func RollSide(s *Side, roll Roller) RollResult {
	remaining := make(map[gametypes.UnitType]int, len(s.Fighters))
	for _, f := range s.Fighters {
		remaining[f.UnitType]++
	}
	hasLeader := remaining[gametypes.UnitLeader] > 0

	var result RollResult
	for range s.Fighters {
		d := rollWithLeaderReroll(roll, hasLeader)
		if d.Affinity != "" && remaining[d.Affinity] > 0 {
			switch d.Affinity {
			case gametypes.UnitInfantry:
				d.Value++
				remaining[gametypes.UnitInfantry]--
			case gametypes.UnitCavalry:
				d.Value += 2
				remaining[gametypes.UnitCavalry]--
			case gametypes.UnitElephant:
				result.HitCancels++
				d.Value = 0
				remaining[gametypes.UnitElephant]--
			}
		}
		result.CombatValue += d.Value
	}
	return result
}

func rollWithLeaderReroll(roll Roller, hasLeader bool) Die {
	d := RollDie(roll)
	for hasLeader && d.Value == 1 {
		d = RollDie(roll)
	}
	return d
}

// Hits computes how many casualties a side's roll inflicts on its
// opponent: floor(combat_value / 5) minus the opponent's hit cancels
// plus extra hits, clamped to the opponent's fighter count.
func Hits(attacker RollResult, attackerExtra int, opponentHitCancels int, opponentFighterCount int) int {
	hits := attacker.CombatValue/5 - opponentHitCancels + attackerExtra
	if hits < 0 {
		hits = 0
	}
	if hits > opponentFighterCount {
		hits = opponentFighterCount
	}
	return hits
}

// ResolveRoll rolls both sides and returns the hits each inflicts on the
// other.
func ResolveRoll(attacker, defender *Side, roll Roller) (attackerHits, defenderHits int) {
	aRoll := RollSide(attacker, roll)
	dRoll := RollSide(defender, roll)
	attackerHits = Hits(aRoll, attacker.ExtraHits, dRoll.HitCancels, len(defender.Fighters))
	defenderHits = Hits(dRoll, defender.ExtraHits, aRoll.HitCancels, len(attacker.Fighters))
	return
}

// AssignCasualties removes hits fighters from s. If every remaining
// fighter is the same unit type it auto-selects; callers should check
// needsSelection and, when true, raise a SelectUnits request instead of
// calling AssignCasualties before the player has chosen.
func AssignCasualties(s *Side, hits int) (removedIDs []uint32, needsSelection bool) {
	if hits <= 0 {
		return nil, false
	}
	if !s.AllIdentical() && hits < len(s.Fighters) {
		return nil, true
	}
	n := hits
	if n > len(s.Fighters) {
		n = len(s.Fighters)
	}
	for i := 0; i < n; i++ {
		removedIDs = append(removedIDs, s.Fighters[i].UnitID)
	}
	s.RemoveFighters(removedIDs)
	return removedIDs, false
}

// Outcome is the result of a combat round.
type Outcome string

const (
	OutcomeNone         Outcome = "none"
	OutcomeAttackerWins Outcome = "attacker_wins"
	OutcomeDefenderWins Outcome = "defender_wins"
	OutcomeDraw         Outcome = "draw"
)

// DetermineOutcome reports the round's outcome once casualties have been
// assigned: if one side has zero fighters left, that side loses; if
// both do, the round is a draw; otherwise the round continues.
func DetermineOutcome(attacker, defender *Side) Outcome {
	aEmpty := len(attacker.Fighters) == 0
	dEmpty := len(defender.Fighters) == 0
	switch {
	case aEmpty && dEmpty:
		return OutcomeDraw
	case aEmpty:
		return OutcomeDefenderWins
	case dEmpty:
		return OutcomeAttackerWins
	default:
		return OutcomeNone
	}
}
