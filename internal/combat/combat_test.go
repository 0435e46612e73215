package combat

import (
	"testing"

	"github.com/hexclash/engine/internal/gametypes"
	"github.com/hexclash/engine/internal/hexmap"
	"github.com/hexclash/engine/internal/playerstate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constantRoller(face int) Roller {
	return func(n int) int { return face % n }
}

// TestCombatCasualtiesAutoSelect covers an attacker with 2 Infantry
// only, where the defender rolls enough hits to kill both. Expect both
// Infantry removed without a SelectUnits request, combat ends with
// DefenderWins.
func TestCombatCasualtiesAutoSelect(t *testing.T) {
	attacker := &Side{PlayerIndex: 0, Fighters: []Fighter{
		{UnitID: 1, UnitType: gametypes.UnitInfantry},
		{UnitID: 2, UnitType: gametypes.UnitInfantry},
	}}
	defender := &Side{PlayerIndex: 1, Fighters: []Fighter{
		{UnitID: 3, UnitType: gametypes.UnitInfantry},
	}}

	removed, needsSelection := AssignCasualties(attacker, 5)
	assert.False(t, needsSelection)
	assert.ElementsMatch(t, []uint32{1, 2}, removed)
	assert.Empty(t, attacker.Fighters)

	assert.Equal(t, OutcomeDefenderWins, DetermineOutcome(attacker, defender))
}

func TestAssignCasualtiesRequiresSelectionWhenMixed(t *testing.T) {
	side := &Side{Fighters: []Fighter{
		{UnitID: 1, UnitType: gametypes.UnitInfantry},
		{UnitID: 2, UnitType: gametypes.UnitCavalry},
	}}
	_, needsSelection := AssignCasualties(side, 1)
	assert.True(t, needsSelection, "mixed unit types and a partial hit count require a player choice")
	assert.Len(t, side.Fighters, 2, "no fighters removed until the player chooses")
}

func TestRollSideAppliesInfantryBonus(t *testing.T) {
	side := &Side{Fighters: []Fighter{{UnitID: 1, UnitType: gametypes.UnitInfantry}}}
	// face index 4 is {Value: 2, Affinity: Infantry}
	result := RollSide(side, constantRoller(4))
	assert.Equal(t, 3, result.CombatValue, "infantry bonus adds 1 to a 2-value infantry-icon die")
}

func TestRollSideBonusCappedByUnitCount(t *testing.T) {
	side := &Side{Fighters: []Fighter{
		{UnitID: 1, UnitType: gametypes.UnitInfantry},
		{UnitID: 2, UnitType: gametypes.UnitCavalry},
		{UnitID: 3, UnitType: gametypes.UnitCavalry},
	}}
	// every die lands on face 4, {Value: 2, Affinity: Infantry}
	result := RollSide(side, constantRoller(4))
	assert.Equal(t, 7, result.CombatValue, "only one infantry-icon die earns the +1 (3+2+2): the side fields a single infantry")
}

func TestLeaderRerollsOnesUntilNotOne(t *testing.T) {
	side := &Side{Fighters: []Fighter{{UnitID: 1, UnitType: gametypes.UnitLeader}}}
	// face 0 is {Value: 1}, face 3 is {Value: 4}: two 1s in a row both
	// reroll before the 4 stands.
	faces := []int{0, 0, 3}
	i := 0
	roll := func(n int) int {
		v := faces[i%len(faces)] % n
		i++
		return v
	}
	result := RollSide(side, roll)
	assert.Equal(t, 4, result.CombatValue)
}

func TestRollSideElephantCancelsHitAndZeroesDie(t *testing.T) {
	side := &Side{Fighters: []Fighter{{UnitID: 1, UnitType: gametypes.UnitElephant}}}
	// face index 8 is {Value: 1, Affinity: Elephant}
	result := RollSide(side, constantRoller(8))
	assert.Equal(t, 0, result.CombatValue)
	assert.Equal(t, 1, result.HitCancels)
}

func TestCaptureCityTransfersOwnershipAndRazesUnplaceableBuilding(t *testing.T) {
	attacker := playerstate.NewPlayer(0, "romans", nil, map[gametypes.BuildingKind]int{})
	defender := playerstate.NewPlayer(1, "gauls", nil, nil)

	city := playerstate.NewCity(1, hexmap.Position{})
	city.Pieces = city.Pieces.WithBuilding(gametypes.BuildingMarket, 1)

	CaptureCity(city, attacker, defender)

	assert.Equal(t, 0, city.Owner)
	assert.Equal(t, playerstate.MoodAngry, city.Mood)
	_, stillThere := city.Pieces.BuildingOwner(gametypes.BuildingMarket)
	assert.False(t, stillThere, "attacker has no market slots available, so it is razed")
	require.Greater(t, attacker.Resources.Gold, 0, "razed building and captured city both grant gold")
}
