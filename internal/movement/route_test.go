package movement

import (
	"testing"

	"github.com/hexclash/engine/internal/hexmap"
	"github.com/stretchr/testify/assert"
)

func smallMap() *hexmap.Map {
	m := hexmap.NewMap()
	m.Set(hexmap.Position{Q: 0, R: 0}, hexmap.NewTerrain(hexmap.TerrainFertile))
	for _, n := range (hexmap.Position{Q: 0, R: 0}).Neighbors() {
		m.Set(n, hexmap.NewTerrain(hexmap.TerrainBarren))
	}
	return m
}

func TestAdjacentRoutesSkipWater(t *testing.T) {
	m := smallMap()
	water := hexmap.Position{Q: 1, R: 0}
	m.Set(water, hexmap.NewTerrain(hexmap.TerrainWater))

	routes := EnumerateRoutes(m, Fleet{Position: hexmap.Position{Q: 0, R: 0}}, Options{})
	for _, r := range routes {
		assert.NotEqual(t, water, r.Destination, "land fleet must not be offered a water destination")
	}
	assert.Len(t, routes, 5, "five of the six neighbors are land")
}

func TestShipOnlyRoutesOntoWater(t *testing.T) {
	m := smallMap()
	center := hexmap.Position{Q: 0, R: 0}
	water := center.Neighbor(0)
	m.Set(water, hexmap.NewTerrain(hexmap.TerrainWater))

	routes := EnumerateRoutes(m, Fleet{Position: center, IsShip: true}, Options{})
	assert.Len(t, routes, 1)
	assert.Equal(t, water, routes[0].Destination)
}

func TestRoadsRouteBetweenOwnCitiesTwoStepsApart(t *testing.T) {
	m := smallMap()
	origin := hexmap.Position{Q: 0, R: 0}
	dest := hexmap.Position{Q: 2, R: -1}
	m.Set(dest, hexmap.NewTerrain(hexmap.TerrainBarren))

	opts := Options{HasRoads: true, OwnCities: map[hexmap.Position]bool{origin: true, dest: true}}
	routes := EnumerateRoutes(m, Fleet{Position: origin}, opts)

	var found bool
	for _, r := range routes {
		if r.Source == SourceRoads && r.Destination == dest {
			found = true
			assert.True(t, r.IgnoreTerrainRestrictions)
		}
	}
	assert.True(t, found, "roads route between two owned cities two steps apart")
}

func TestWithinStackLimitAndCanCarry(t *testing.T) {
	assert.True(t, WithinStackLimit(2, 2))
	assert.False(t, WithinStackLimit(3, 2))
	assert.True(t, CanCarry(1))
	assert.False(t, CanCarry(ShipCapacity))
}
