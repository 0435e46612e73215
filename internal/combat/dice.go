// Package combat implements the multi-round land/sea combat engine.
// Grounded on the teacher's production phase resolution in
// internal/domain/production.go (round-based resolution driven by an
// explicit phase enum) and on
// original_source/server/src/combat.rs for the exact die/bonus/outcome
// rules this was distilled from.
package combat

import "github.com/hexclash/engine/internal/gametypes"

// Die is one rolled combat die: a numeric value plus the unit-type icon
// it carries, if any.
type Die struct {
	Value    int
	Affinity gametypes.UnitType // "" if the face carries no icon
}

// faces is the fixed 12-face combat die, grounded on
// original_source/server/src/combat.rs's die table.
var faces = [12]Die{
	{Value: 1}, {Value: 2}, {Value: 3}, {Value: 4},
	{Value: 2, Affinity: gametypes.UnitInfantry}, {Value: 3, Affinity: gametypes.UnitInfantry},
	{Value: 2, Affinity: gametypes.UnitCavalry}, {Value: 4, Affinity: gametypes.UnitCavalry},
	{Value: 1, Affinity: gametypes.UnitElephant}, {Value: 3, Affinity: gametypes.UnitElephant},
	{Value: 1, Affinity: gametypes.UnitLeader}, {Value: 4, Affinity: gametypes.UnitLeader},
}

// Roller draws a uniform integer in [0, n). Callers pass the game's
// deterministic RNG so combat resolution stays replayable from the seed.
type Roller func(n int) int

// RollDie draws one face.
func RollDie(roll Roller) Die {
	return faces[roll(len(faces))]
}
