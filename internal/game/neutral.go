package game

import (
	"fmt"

	"github.com/hexclash/engine/internal/events"
	"github.com/hexclash/engine/internal/gametypes"
	"github.com/hexclash/engine/internal/hexmap"
	"github.com/hexclash/engine/internal/playerstate"
	"github.com/hexclash/engine/internal/resource"
)

// NeutralUnit is a map piece belonging to no player: a barbarian warband
// or pirate ship raised by an incident's base effect rather than
// recruited by a civilization.
type NeutralUnit struct {
	ID       uint32             `json:"id"`
	Position hexmap.Position    `json:"position"`
	UnitType gametypes.UnitType `json:"unit_type"`
}

const pirateCapacity = 2

// barbarianSearchRadius/pirateSearchRadius bound how far a spawn search
// prefers a tile near an existing city before falling back to any free
// tile of the right terrain.
const (
	barbarianSearchRadius = 3
	pirateSearchRadius    = 1
)

// piratePaymentOptions models "pay 1 resource of any kind to bribe the
// pirates", grounded on original_source/server/src/pirates.rs's
// per-player payment-or-mood-penalty choice: a flat 1 Gold price with
// same-rate conversions to each of the four other base resources (food,
// wood, ore, ideas).
var piratePaymentOptions = resource.PaymentOptions{Default: resource.Pile{Gold: 1}}.
	WithConversion(resource.Conversion{From: resource.Gold, To: resource.Food, Rate: 1, Limit: 1}).
	WithConversion(resource.Conversion{From: resource.Gold, To: resource.Wood, Rate: 1, Limit: 1}).
	WithConversion(resource.Conversion{From: resource.Gold, To: resource.Ore, Rate: 1, Limit: 1}).
	WithConversion(resource.Conversion{From: resource.Gold, To: resource.Ideas, Rate: 1, Limit: 1})

// registerPersistentEvents builds the engine's persistent-event listeners
// fresh. A PersistentListener closes over *Game, so it cannot survive a
// Snapshot round trip; every construction path (NewGame, FromData) must
// call this rather than the listeners being part of the serialized form.
func (g *Game) registerPersistentEvents() {
	ev := events.NewPersistentEvent[Game]("pirates_raid")
	ev.AddListener(events.PersistentListener[Game]{
		Origin:   events.NewOrigin(events.OriginIncident, "pirates_raid"),
		Priority: 0,
		Invoke: func(gm *Game, player int) events.Request {
			// The raid is a per-player non-base effect: a player holding
			// the triggering incident's protection advance is exempt,
			// though the spawn itself already happened.
			if gm.ActiveIncidentProtection != "" && gm.Players[player].HasAdvance(gm.ActiveIncidentProtection) {
				return nil
			}
			if !gm.pirateThreatensPlayer(player) {
				return nil
			}
			return events.PaymentRequest{
				Options:  []resource.PaymentOptions{piratePaymentOptions},
				Optional: []bool{true},
			}
		},
		Resume: func(gm *Game, player int, resp events.Response) {
			pile := resp.(events.PaymentResponse).Piles[0]
			if pile.IsEmpty() {
				gm.applyPirateMoodPenalty(player)
				return
			}
			gm.Players[player].Pay(pile)
		},
	})
	g.pirateEvent = ev
	g.availability = events.NewTransientEvent[AvailabilityCheck]("is_playing_action_available")
}

// persistentEventByType resolves the live event.Stack frame's EventType
// tag back to the registered listener set that drives it.
func (g *Game) persistentEventByType(eventType string) (*events.PersistentEvent[Game], bool) {
	if eventType == "pirates_raid" && g.pirateEvent != nil {
		return g.pirateEvent, true
	}
	return nil, false
}

func (g *Game) spawnNeutralUnit(unitType gametypes.UnitType, pos hexmap.Position) *NeutralUnit {
	g.nextNeutralUnitID++
	u := &NeutralUnit{ID: g.nextNeutralUnitID, UnitType: unitType, Position: pos}
	g.NeutralUnits[u.ID] = u
	return u
}

func (g *Game) removeNeutralUnit(id uint32) {
	delete(g.NeutralUnits, id)
}

func (g *Game) neutralUnitsOfType(unitType gametypes.UnitType) []*NeutralUnit {
	var out []*NeutralUnit
	for _, u := range g.NeutralUnits {
		if u.UnitType == unitType {
			out = append(out, u)
		}
	}
	return out
}

// positionOccupied reports whether p already holds a city, a player
// unit or a neutral unit.
func (g *Game) positionOccupied(p hexmap.Position) bool {
	if _, _, ok := g.cityAt(p); ok {
		return true
	}
	for _, pl := range g.Players {
		for _, u := range pl.Units {
			if u.Position == p {
				return true
			}
		}
	}
	for _, u := range g.NeutralUnits {
		if u.Position == p {
			return true
		}
	}
	return false
}

// nearAnyCity reports whether some player's city lies within radius
// hexes of p.
func (g *Game) nearAnyCity(p hexmap.Position, radius int) bool {
	for _, pl := range g.Players {
		for _, c := range pl.Cities {
			if p.Distance(c.Position) <= radius {
				return true
			}
		}
	}
	return false
}

// nearestCity returns the city (any owner) closest to p.
func (g *Game) nearestCity(p hexmap.Position) (*playerstate.City, int, bool) {
	var best *playerstate.City
	bestOwner := -1
	bestDist := -1
	for _, pl := range g.Players {
		for _, c := range pl.Cities {
			d := p.Distance(c.Position)
			if bestDist == -1 || d < bestDist {
				best, bestOwner, bestDist = c, pl.Index, d
			}
		}
	}
	return best, bestOwner, best != nil
}

// pickSpawnPosition searches every unoccupied map tile whose terrain
// accept admits, preferring one within radius hexes of an existing city
// so the incident's effect is felt, and falls back to any accepted tile
// if none is that close. The final pick among tied candidates is
// randomized off the game's deterministic draw stream, the same source
// combat and cultural-influence rolls use.
func (g *Game) pickSpawnPosition(radius int, accept func(hexmap.Terrain) bool) (hexmap.Position, bool) {
	var near, any []hexmap.Position
	for _, p := range g.Map.Positions() {
		t, ok := g.Map.Get(p)
		if !ok || !accept(t) || g.positionOccupied(p) {
			continue
		}
		any = append(any, p)
		if g.nearAnyCity(p, radius) {
			near = append(near, p)
		}
	}
	candidates := near
	if len(candidates) == 0 {
		candidates = any
	}
	if len(candidates) == 0 {
		return hexmap.Position{}, false
	}
	return candidates[g.rollDie(len(candidates))], true
}

func landSpawnTerrain(t hexmap.Terrain) bool {
	return !t.IsWater() && !t.IsUnexplored() && !t.IsMountain()
}

func waterSpawnTerrain(t hexmap.Terrain) bool {
	return t.IsWater()
}

// spawnBarbarian places one barbarian warband on a free land tile.
func (g *Game) spawnBarbarian() {
	pos, ok := g.pickSpawnPosition(barbarianSearchRadius, landSpawnTerrain)
	if !ok {
		return
	}
	g.spawnNeutralUnit(gametypes.UnitBarbarian, pos)
	g.Messages = append(g.Messages, fmt.Sprintf("a barbarian warband appears at %v", pos))
}

// stepToward returns the neighbor of from that most reduces the hex
// distance to target, refusing to step onto water or unexplored tiles;
// it returns from unchanged if no neighbor improves on it.
func (g *Game) stepToward(from, target hexmap.Position) hexmap.Position {
	best := from
	bestDist := from.Distance(target)
	for i := 0; i < 6; i++ {
		n := from.Neighbor(i)
		t, ok := g.Map.Get(n)
		if !ok || t.IsWater() || t.IsUnexplored() {
			continue
		}
		if d := n.Distance(target); d < bestDist {
			best, bestDist = n, d
		}
	}
	return best
}

// raidCity applies a barbarian raid's consequence: one mood step down.
func (g *Game) raidCity(city *playerstate.City) {
	city.Mood = city.Mood.Decrease()
	g.Messages = append(g.Messages, fmt.Sprintf("barbarians raid the city at %v", city.Position))
}

// moveBarbarians steps every barbarian warband one hex toward its
// nearest city, raiding and dispersing once it closes to melee range.
func (g *Game) moveBarbarians() {
	for _, b := range g.neutralUnitsOfType(gametypes.UnitBarbarian) {
		city, _, ok := g.nearestCity(b.Position)
		if !ok {
			continue
		}
		if b.Position.Distance(city.Position) > 1 {
			b.Position = g.stepToward(b.Position, city.Position)
		}
		if b.Position.Distance(city.Position) <= 1 {
			g.raidCity(city)
			g.removeNeutralUnit(b.ID)
		}
	}
}

// placePirateShips enforces the pirate fleet's capacity, scuttling the
// oldest ships over it, then adds new ones on free water tiles up to
// that capacity.
func (g *Game) placePirateShips() {
	ships := g.neutralUnitsOfType(gametypes.UnitShip)
	for len(ships) > pirateCapacity {
		g.removeNeutralUnit(ships[0].ID)
		ships = ships[1:]
	}
	for len(ships) < pirateCapacity {
		pos, ok := g.pickSpawnPosition(pirateSearchRadius, waterSpawnTerrain)
		if !ok {
			break
		}
		ships = append(ships, g.spawnNeutralUnit(gametypes.UnitShip, pos))
	}
}

// pirateThreatensPlayer reports whether any of playerIndex's cities sits
// adjacent to a pirate ship.
func (g *Game) pirateThreatensPlayer(playerIndex int) bool {
	if !g.validPlayer(playerIndex) {
		return false
	}
	for _, c := range g.Players[playerIndex].Cities {
		for _, n := range c.Position.Neighbors() {
			for _, u := range g.NeutralUnits {
				if u.UnitType == gametypes.UnitShip && u.Position == n {
					return true
				}
			}
		}
	}
	return false
}

// applyPirateMoodPenalty lowers by one step the mood of the first city
// of playerIndex's (in city-list order) that a pirate ship threatens,
// used when that player declines (or cannot afford) the bribe. Other
// threatened cities of the same player keep their mood.
func (g *Game) applyPirateMoodPenalty(playerIndex int) {
	for _, c := range g.Players[playerIndex].Cities {
		for _, n := range c.Position.Neighbors() {
			for _, u := range g.NeutralUnits {
				if u.UnitType == gametypes.UnitShip && u.Position == n {
					c.Mood = c.Mood.Decrease()
					return
				}
			}
		}
	}
}

// spawnPiratesAndRaid places the pirate fleet and, for every player it
// threatens, starts the pirates_raid persistent event: a PaymentRequest
// to bribe the pirates, resolved to a mood penalty if declined.
// protectionAdvance, if non-empty, exempts its holders from the raid
// (not from the spawn, which is the incident's base effect).
func (g *Game) spawnPiratesAndRaid(protectionAdvance string) {
	g.placePirateShips()
	g.Messages = append(g.Messages, "pirate ships blockade the coast")
	if g.pirateEvent == nil || !g.pirateEvent.HasListeners() {
		return
	}
	g.ActiveIncidentProtection = protectionAdvance
	state := events.NewPersistentEventState("pirates_raid", g.Turn.CurrentPlayerIndex, len(g.Players))
	if g.pirateEvent.Start(state, g) {
		g.Events.Push(state)
		return
	}
	g.ActiveIncidentProtection = ""
}
