package main

import (
	"github.com/hexclash/engine/internal/content"
	"github.com/hexclash/engine/internal/game"
	"github.com/hexclash/engine/internal/gametypes"
	"github.com/hexclash/engine/internal/hexmap"
	"github.com/hexclash/engine/internal/resource"
)

// demoSetup builds a small illustrative map and content registry. The
// engine itself carries no concrete catalog of advances, wonders or
// incidents; this exists only so the wrapper has something to execute
// against, the way the teacher's test fixtures (test/fixtures) seed a
// playable board rather than shipping real Terraforming Mars card text.
func demoSetup(civilizations []string) game.Setup {
	m := hexmap.NewMap()
	for q := -2; q <= 2; q++ {
		for r := -2; r <= 2; r++ {
			if abs(q)+abs(r)+abs(-q-r) > 4 {
				continue
			}
			kind := hexmap.TerrainFertile
			switch {
			case q == 0 && r == 0:
				kind = hexmap.TerrainMountain
			case q > 0 && r < 0:
				kind = hexmap.TerrainForest
			case q < -1:
				kind = hexmap.TerrainWater
			}
			m.Set(hexmap.Position{Q: q, R: r}, hexmap.NewTerrain(kind))
		}
	}

	reg := content.NewRegistryBuilder().
		AddAdvance(content.Advance{
			ID:   "storage",
			Name: "Storage",
			Cost: resource.PaymentOptions{Default: resource.Pile{Food: 2}},
		}).
		AddAdvance(content.Advance{
			ID:   "bronze_working",
			Name: "Bronze Working",
			Cost: resource.PaymentOptions{Default: resource.Pile{Ore: 2}},
		}).
		AddWonder(content.Wonder{
			ID:   "great_lighthouse",
			Name: "Great Lighthouse",
			Cost: resource.PaymentOptions{Default: resource.Pile{Wood: 4, Gold: 2}},
		}).
		AddIncident(content.Incident{
			ID:         "barbarian_raid",
			Name:       "Barbarian Raid",
			BaseEffect: content.IncidentEffectBarbariansSpawn,
		}).
		Build()

	return game.Setup{
		Map:           m,
		Registry:      reg,
		Civilizations: civilizations,
		IncidentDeck:  []string{"barbarian_raid"},
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// startingUnits seeds the fixed demo pool a new player's available_units
// begins with, used by a setup endpoint that pre-places one settler per
// player (see api.createGame).
var startingUnits = map[gametypes.UnitType]int{
	gametypes.UnitSettler:  1,
	gametypes.UnitInfantry: 2,
}

var startingBuildings = map[gametypes.BuildingKind]int{
	gametypes.BuildingAcademy:  1,
	gametypes.BuildingMarket:   1,
	gametypes.BuildingFortress: 1,
	gametypes.BuildingTemple:   1,
}

func cloneUnitPool(pool map[gametypes.UnitType]int) map[gametypes.UnitType]int {
	out := make(map[gametypes.UnitType]int, len(pool))
	for k, v := range pool {
		out[k] = v
	}
	return out
}

func cloneBuildingPool(pool map[gametypes.BuildingKind]int) map[gametypes.BuildingKind]int {
	out := make(map[gametypes.BuildingKind]int, len(pool))
	for k, v := range pool {
		out[k] = v
	}
	return out
}
