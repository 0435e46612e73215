package movement

import (
	"testing"

	"github.com/hexclash/engine/internal/gametypes"
	"github.com/hexclash/engine/internal/hexmap"
	"github.com/hexclash/engine/internal/playerstate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEmbarkThenDisembarkSharesOneMove covers a land unit at A1 adjacent
// to a friendly ship at A2 that embarks, then in a second submitted move
// disembarks at B2; the two legs must consume a single movement action
// and the unit must land with no carrier set.
func TestEmbarkThenDisembarkSharesOneMove(t *testing.T) {
	a1 := hexmap.Position{Q: 0, R: 0}
	a2 := hexmap.Position{Q: 1, R: 0}
	b2 := hexmap.Position{Q: 2, R: -1}

	m := hexmap.NewMap()
	m.Set(a1, hexmap.NewTerrain(hexmap.TerrainFertile))
	m.Set(a2, hexmap.NewTerrain(hexmap.TerrainWater))
	m.Set(b2, hexmap.NewTerrain(hexmap.TerrainFertile))

	unit := playerstate.NewUnit(1, gametypes.UnitInfantry, a1)
	ship := playerstate.NewUnit(2, gametypes.UnitShip, a2)

	s := NewState(3)
	carrierID := ship.ID
	s.ApplyMove(m, []*playerstate.Unit{unit}, a2, &carrierID)
	require.Equal(t, 2, s.MovementActionsLeft)
	assert.Equal(t, a2, unit.Position)
	require.NotNil(t, unit.CarrierID)
	assert.Equal(t, ship.ID, *unit.CarrierID)

	s.ApplyMove(m, []*playerstate.Unit{unit}, b2, nil)
	assert.Equal(t, 2, s.MovementActionsLeft, "disembark continuing the same group shares the move")
	assert.Equal(t, b2, unit.Position)
	assert.Nil(t, unit.CarrierID)
}

func TestApplyMoveConsumesActionForUnrelatedGroup(t *testing.T) {
	m := hexmap.NewMap()
	start := hexmap.Position{Q: 0, R: 0}
	dest := hexmap.Position{Q: 1, R: 0}
	m.Set(start, hexmap.NewTerrain(hexmap.TerrainFertile))
	m.Set(dest, hexmap.NewTerrain(hexmap.TerrainFertile))

	u1 := playerstate.NewUnit(1, gametypes.UnitInfantry, start)
	u2 := playerstate.NewUnit(2, gametypes.UnitInfantry, dest)

	s := NewState(3)
	s.ApplyMove(m, []*playerstate.Unit{u1}, dest, nil)
	assert.Equal(t, 2, s.MovementActionsLeft)

	s.ApplyMove(m, []*playerstate.Unit{u2}, start, nil)
	assert.Equal(t, 1, s.MovementActionsLeft, "a different unit group is a new move")
}

func TestApplyMoveAppendsMountainRestriction(t *testing.T) {
	m := hexmap.NewMap()
	start := hexmap.Position{Q: 0, R: 0}
	dest := hexmap.Position{Q: 1, R: 0}
	m.Set(start, hexmap.NewTerrain(hexmap.TerrainFertile))
	m.Set(dest, hexmap.NewTerrain(hexmap.TerrainMountain))

	u := playerstate.NewUnit(1, gametypes.UnitInfantry, start)
	s := NewState(3)
	s.ApplyMove(m, []*playerstate.Unit{u}, dest, nil)

	assert.True(t, u.HasRestriction(gametypes.RestrictMountain))
}
