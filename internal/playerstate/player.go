package playerstate

import (
	"github.com/hexclash/engine/internal/gametypes"
	"github.com/hexclash/engine/internal/hexmap"
	"github.com/hexclash/engine/internal/resource"
)

// Player is one civilization's full persistent state.
// AvailableUnits/AvailableBuildings are the undeployed pool; a
// pool-conservation invariant requires deployed + available == the
// civilization's starting totals at all times, which callers must
// maintain when moving pieces into play.
type Player struct {
	Index        int    `json:"index"`
	Civilization string `json:"civilization"`

	Resources      resource.Pile `json:"resources"`
	ResourceLimit  resource.Pile `json:"resource_limit"`

	Units  map[uint32]*Unit `json:"units"`
	Cities []*City          `json:"cities"`

	Advances     map[string]bool `json:"advances,omitempty"`
	WondersBuilt []string        `json:"wonders_built,omitempty"`

	WonderCards    []gametypes.HandCard `json:"wonder_cards,omitempty"`
	ActionCards    []gametypes.HandCard `json:"action_cards,omitempty"`
	ObjectiveCards []gametypes.HandCard `json:"objective_cards,omitempty"`

	AvailableUnits     map[gametypes.UnitType]int        `json:"available_units,omitempty"`
	AvailableBuildings map[gametypes.BuildingKind]int     `json:"available_buildings,omitempty"`

	EventVictoryPoints float32 `json:"event_victory_points"`
	IncidentTokens     int     `json:"incident_tokens"`
	GameEventTokens    int     `json:"game_event_tokens"`

	Dropped bool `json:"dropped,omitempty"`

	// Government names the player's current government-type advance, set
	// by the status phase's change_government_type sub-phase.
	Government string `json:"government,omitempty"`

	nextUnitID uint32
}

// NewPlayer builds an empty player for civilization, with the given
// starting unit/building pools.
func NewPlayer(index int, civilization string, units map[gametypes.UnitType]int, buildings map[gametypes.BuildingKind]int) *Player {
	if units == nil {
		units = map[gametypes.UnitType]int{}
	}
	if buildings == nil {
		buildings = map[gametypes.BuildingKind]int{}
	}
	return &Player{
		Index:              index,
		Civilization:       civilization,
		Units:              map[uint32]*Unit{},
		Advances:           map[string]bool{},
		AvailableUnits:     units,
		AvailableBuildings: buildings,
	}
}

// HasAdvance reports whether the player has researched name.
func (p *Player) HasAdvance(name string) bool {
	return p.Advances[name]
}

// ResearchAdvance marks name researched (idempotent).
func (p *Player) ResearchAdvance(name string) {
	if p.Advances == nil {
		p.Advances = map[string]bool{}
	}
	p.Advances[name] = true
}

// UnresearchAdvance clears name, used by Undo.
func (p *Player) UnresearchAdvance(name string) {
	delete(p.Advances, name)
}

// CanAfford reports whether the player's resources satisfy cost.
func (p *Player) CanAfford(cost resource.Pile) bool {
	return p.Resources.CanAfford(cost)
}

// Pay deducts cost from the player's resources. Callers must have
// already confirmed CanAfford; Pay itself clamps at zero per Pile's
// total-operation guarantee rather than erroring.
func (p *Player) Pay(cost resource.Pile) {
	shortfall := 0
	for _, k := range []resource.Kind{resource.Food, resource.Wood, resource.Ore, resource.Ideas} {
		if d := cost.Get(k) - p.Resources.Get(k); d > 0 {
			shortfall += d
		}
	}
	p.Resources = p.Resources.Subtract(cost.WithSet(resource.Gold, cost.Gold+shortfall))
}

// Gain adds reward to the player's resources, clamped to ResourceLimit
// when the limit for a currency is positive.
func (p *Player) Gain(reward resource.Pile) {
	sum := p.Resources.Add(reward)
	for _, k := range resource.All {
		limit := p.ResourceLimit.Get(k)
		if limit > 0 && sum.Get(k) > limit {
			sum = sum.WithSet(k, limit)
		}
	}
	p.Resources = sum
}

// RecruitUnit moves one unit of unitType from the available pool into
// play at position, allocating the next dense unit id. It returns nil,
// false if the pool has none available.
func (p *Player) RecruitUnit(unitType gametypes.UnitType, position hexmap.Position) (*Unit, bool) {
	if p.AvailableUnits[unitType] <= 0 {
		return nil, false
	}
	p.AvailableUnits[unitType]--
	p.nextUnitID++
	u := &Unit{ID: p.nextUnitID, UnitType: unitType, Position: position}
	p.Units[u.ID] = u
	return u, true
}

// KillUnit removes id from play and returns it to the available pool.
// Returns false if id does not belong to this player — an
// InvariantViolation at the caller's discretion.
func (p *Player) KillUnit(id uint32) bool {
	u, ok := p.Units[id]
	if !ok {
		return false
	}
	delete(p.Units, id)
	p.AvailableUnits[u.UnitType]++
	return true
}

// BuildBuilding moves one instance of kind from the available pool into
// city's pieces, owned by this player. Returns false if the pool is
// empty — a captured building that cannot be accepted should be razed
// for gold instead, and callers use this return to decide that path.
func (p *Player) BuildBuilding(kind gametypes.BuildingKind, city *City) bool {
	if p.AvailableBuildings[kind] <= 0 {
		return false
	}
	p.AvailableBuildings[kind]--
	city.Pieces = city.Pieces.WithBuilding(kind, p.Index)
	return true
}

// RazeBuilding returns kind to the pool without placing it anywhere,
// used when a captured city cannot accept a transferred building.
func (p *Player) RazeBuilding(kind gametypes.BuildingKind) {
	p.AvailableBuildings[kind]++
}

// Clone deep-copies p, used by the game package's undo/redo snapshotting.
func (p *Player) Clone() *Player {
	cp := *p
	cp.Units = make(map[uint32]*Unit, len(p.Units))
	for id, u := range p.Units {
		cp.Units[id] = u.Clone()
	}
	cp.Cities = make([]*City, len(p.Cities))
	for i, c := range p.Cities {
		cp.Cities[i] = c.Clone()
	}
	cp.Advances = make(map[string]bool, len(p.Advances))
	for k, v := range p.Advances {
		cp.Advances[k] = v
	}
	cp.WondersBuilt = append([]string{}, p.WondersBuilt...)
	cp.WonderCards = append([]gametypes.HandCard{}, p.WonderCards...)
	cp.ActionCards = append([]gametypes.HandCard{}, p.ActionCards...)
	cp.ObjectiveCards = append([]gametypes.HandCard{}, p.ObjectiveCards...)
	cp.AvailableUnits = make(map[gametypes.UnitType]int, len(p.AvailableUnits))
	for k, v := range p.AvailableUnits {
		cp.AvailableUnits[k] = v
	}
	cp.AvailableBuildings = make(map[gametypes.BuildingKind]int, len(p.AvailableBuildings))
	for k, v := range p.AvailableBuildings {
		cp.AvailableBuildings[k] = v
	}
	return &cp
}

// FindCity returns the player's city at position, if any.
func (p *Player) FindCity(position hexmap.Position) (*City, bool) {
	for _, c := range p.Cities {
		if c.Position == position {
			return c, true
		}
	}
	return nil, false
}

// RemoveCity deletes the city at position from the player's city list,
// used by the status phase's raze_size1_city sub-phase. Reports whether
// a city was found and removed.
func (p *Player) RemoveCity(position hexmap.Position) bool {
	for i, c := range p.Cities {
		if c.Position == position {
			p.Cities = append(p.Cities[:i], p.Cities[i+1:]...)
			return true
		}
	}
	return false
}
