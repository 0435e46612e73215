package hexmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionDistance(t *testing.T) {
	origin := Position{Q: 0, R: 0}

	assert.Equal(t, 0, origin.Distance(origin))
	assert.Equal(t, 1, origin.Distance(Position{Q: 1, R: 0}))
	assert.Equal(t, 2, origin.Distance(Position{Q: 2, R: -1}))
	assert.Equal(t, 3, origin.Distance(Position{Q: -1, R: -2}))
}

func TestPositionNeighbors(t *testing.T) {
	origin := Position{Q: 0, R: 0}
	neighbors := origin.Neighbors()

	assert.Len(t, neighbors, 6)
	for _, n := range neighbors {
		assert.Equal(t, 1, origin.Distance(n))
	}
}

func TestTerrainExhaustRestore(t *testing.T) {
	fertile := NewTerrain(TerrainFertile)
	exhausted := fertile.Exhaust()

	assert.True(t, exhausted.IsExhausted())
	assert.Equal(t, TerrainFertile, *exhausted.Exhausted)

	restored := exhausted.Restore()
	assert.Equal(t, fertile, restored)
}

func TestMapSetGet(t *testing.T) {
	m := NewMap()
	p := Position{Q: 1, R: 1}

	_, ok := m.Get(p)
	assert.False(t, ok)
	assert.False(t, m.InBounds(p))

	m.Set(p, NewTerrain(TerrainMountain))

	terrain, ok := m.Get(p)
	assert.True(t, ok)
	assert.True(t, terrain.IsMountain())
	assert.True(t, m.InBounds(p))
}

func TestMapUnexploredBlockResolution(t *testing.T) {
	m := NewMap()
	block := []Position{{Q: 0, R: 0}, {Q: 1, R: 0}, {Q: 0, R: 1}}
	m.AddUnexploredBlock(block)

	top, ok := m.TopUnexploredBlock()
	assert.True(t, ok)
	assert.Equal(t, block, top)

	terrains := []Terrain{NewTerrain(TerrainFertile), NewTerrain(TerrainWater), NewTerrain(TerrainBarren)}
	err := m.ResolveTopUnexploredBlock(0, terrains)
	assert.NoError(t, err)

	_, ok = m.TopUnexploredBlock()
	assert.False(t, ok)

	terrain, _ := m.Get(Position{Q: 0, R: 0})
	assert.Equal(t, TerrainFertile, terrain.Kind)
}

func TestMapResolveBadRotation(t *testing.T) {
	m := NewMap()
	m.AddUnexploredBlock([]Position{{Q: 0, R: 0}})

	err := m.ResolveTopUnexploredBlock(1, []Terrain{NewTerrain(TerrainBarren)})
	assert.Error(t, err)
}
