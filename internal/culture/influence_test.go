package culture

import (
	"testing"

	"github.com/hexclash/engine/internal/gametypes"
	"github.com/hexclash/engine/internal/hexmap"
	"github.com/hexclash/engine/internal/playerstate"
	"github.com/hexclash/engine/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCulturalInfluenceRollBoostScenario covers an attacker with 3
// culture tokens attempting to influence a distance-1 target Fortress;
// RNG pre-rolled to yield 3. Expect the core pays range cost 0, then
// raises a BoolRequest offering to pay 2 culture tokens. On Bool(true),
// tokens decrement by 2 and ownership transfers.
func TestCulturalInfluenceRollBoostScenario(t *testing.T) {
	starting := playerstate.NewCity(0, hexmap.Position{Q: 0, R: 0})
	target := playerstate.NewCity(1, hexmap.Position{Q: 1, R: 0})
	target.Pieces = target.Pieces.WithBuilding(gametypes.BuildingFortress, 1)

	attacker := playerstate.NewPlayer(0, "romans", nil, map[gametypes.BuildingKind]int{gametypes.BuildingFortress: 1})
	attacker.Resources = resource.Pile{CultureToken: 3}

	attempt := Attempt{AttackerIndex: 0, StartingCity: starting, TargetCity: target, Building: gametypes.BuildingFortress}
	require.Equal(t, 0, RangeBoostCost(attempt), "distance 1 minus starting city size 1 floors at zero")
	require.Equal(t, "", Ineligible(attempt, attacker, false, false))

	success, escalation, shortfall := Resolve(attempt, attacker, func() int { return 3 })
	assert.False(t, success)
	require.NotNil(t, escalation)
	assert.Equal(t, 2, shortfall)
	assert.Equal(t, 3, attacker.Resources.CultureToken, "range boost cost was zero, so tokens are untouched before escalation")

	accepted := ResolveEscalation(attacker, shortfall, true)
	assert.True(t, accepted)
	assert.Equal(t, 1, attacker.Resources.CultureToken)

	Transfer(attempt, attacker.Index)
	owner, ok := target.Pieces.BuildingOwner(gametypes.BuildingFortress)
	require.True(t, ok)
	assert.Equal(t, 0, owner)
}

func TestInfluenceIneligibleWhenObelisk(t *testing.T) {
	starting := playerstate.NewCity(0, hexmap.Position{Q: 0, R: 0})
	target := playerstate.NewCity(1, hexmap.Position{Q: 1, R: 0})
	target.Pieces = target.Pieces.WithBuilding(gametypes.BuildingObelisk, 1)
	attacker := playerstate.NewPlayer(0, "romans", nil, nil)

	attempt := Attempt{AttackerIndex: 0, StartingCity: starting, TargetCity: target, Building: gametypes.BuildingObelisk}
	assert.NotEmpty(t, Ineligible(attempt, attacker, false, false))
}

func TestRollAtOrAboveThresholdSucceedsOutright(t *testing.T) {
	starting := playerstate.NewCity(0, hexmap.Position{Q: 0, R: 0})
	target := playerstate.NewCity(1, hexmap.Position{Q: 0, R: 1})
	target.Pieces = target.Pieces.WithBuilding(gametypes.BuildingMarket, 1)
	attacker := playerstate.NewPlayer(0, "romans", nil, map[gametypes.BuildingKind]int{gametypes.BuildingMarket: 1})
	attacker.Resources = resource.Pile{CultureToken: 5}

	attempt := Attempt{AttackerIndex: 0, StartingCity: starting, TargetCity: target, Building: gametypes.BuildingMarket}
	success, escalation, _ := Resolve(attempt, attacker, func() int { return 5 })
	assert.True(t, success)
	assert.Nil(t, escalation)
}
