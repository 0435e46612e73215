package playerstate

import (
	"testing"

	"github.com/hexclash/engine/internal/gametypes"
	"github.com/hexclash/engine/internal/hexmap"
	"github.com/hexclash/engine/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlayer() *Player {
	return NewPlayer(0, "romans",
		map[gametypes.UnitType]int{gametypes.UnitInfantry: 2, gametypes.UnitSettler: 1},
		map[gametypes.BuildingKind]int{gametypes.BuildingTemple: 1},
	)
}

func TestPlayerAdvanceResearch(t *testing.T) {
	p := newTestPlayer()
	assert.False(t, p.HasAdvance("storage"))
	p.ResearchAdvance("storage")
	assert.True(t, p.HasAdvance("storage"))
	p.UnresearchAdvance("storage")
	assert.False(t, p.HasAdvance("storage"))
}

func TestPlayerPayAndGainRespectsLimit(t *testing.T) {
	p := newTestPlayer()
	p.Resources = resource.Pile{Food: 2}
	p.ResourceLimit = resource.Pile{Food: 2}

	require.True(t, p.CanAfford(resource.Pile{Food: 2}))
	p.Pay(resource.Pile{Food: 2})
	assert.Equal(t, 0, p.Resources.Food)

	p.Gain(resource.Pile{Food: 5})
	assert.Equal(t, 2, p.Resources.Food, "gain clamps at the resource limit")
}

func TestPlayerUnitPoolConservation(t *testing.T) {
	p := newTestPlayer()
	total := p.AvailableUnits[gametypes.UnitInfantry] + len(p.Units)

	u, ok := p.RecruitUnit(gametypes.UnitInfantry, hexmap.Position{Q: 1, R: 0})
	require.True(t, ok)
	assert.Equal(t, uint32(1), u.ID)
	assert.Equal(t, total, p.AvailableUnits[gametypes.UnitInfantry]+len(p.Units))

	ok = p.KillUnit(u.ID)
	assert.True(t, ok)
	assert.Equal(t, total, p.AvailableUnits[gametypes.UnitInfantry]+len(p.Units))
}

func TestPlayerRecruitUnitPoolExhausted(t *testing.T) {
	p := newTestPlayer()
	_, ok := p.RecruitUnit(gametypes.UnitSettler, hexmap.Position{})
	require.True(t, ok)
	_, ok = p.RecruitUnit(gametypes.UnitSettler, hexmap.Position{})
	assert.False(t, ok, "pool of 1 settler is exhausted after the first recruit")
}

func TestPlayerBuildBuildingFromPool(t *testing.T) {
	p := newTestPlayer()
	city := NewCity(p.Index, hexmap.Position{Q: 0, R: 0})

	ok := p.BuildBuilding(gametypes.BuildingTemple, city)
	require.True(t, ok)
	owner, present := city.Pieces.BuildingOwner(gametypes.BuildingTemple)
	assert.True(t, present)
	assert.Equal(t, p.Index, owner)

	ok = p.BuildBuilding(gametypes.BuildingTemple, city)
	assert.False(t, ok, "only one temple was in the pool")
}

func TestCityActivationDecreasesMoodOnReuse(t *testing.T) {
	city := NewCity(0, hexmap.Position{Q: 0, R: 0})
	assert.Equal(t, MoodHappy, city.Mood)
	assert.False(t, city.IsActivated())

	city.Activate()
	assert.True(t, city.IsActivated())
	assert.Equal(t, MoodHappy, city.Mood, "first activation this turn does not cost mood")

	city.Activate()
	assert.Equal(t, MoodNeutral, city.Mood, "second activation in the same turn costs one mood step")

	city.Activate()
	assert.Equal(t, MoodAngry, city.Mood)
	city.Activate()
	assert.Equal(t, MoodAngry, city.Mood, "mood floors at angry")
}

func TestCityPiecesSize(t *testing.T) {
	city := NewCity(0, hexmap.Position{Q: 0, R: 0})
	assert.Equal(t, 1, city.Size(), "center only")

	city.Pieces = city.Pieces.WithBuilding(gametypes.BuildingMarket, 0)
	city.Pieces.Wonders = append(city.Pieces.Wonders, "pyramids")
	assert.Equal(t, 3, city.Size())
}
