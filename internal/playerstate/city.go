// Package playerstate implements the engine's persistent actor state:
// Unit, City, CityPieces and Player. Grounded on the teacher's Player/City shapes
// in internal/domain/player.go and internal/domain/city.go, generalized
// from Terraforming Mars' tile-ownership model to hex cities with
// building slots and activations.
package playerstate

import (
	"github.com/hexclash/engine/internal/gametypes"
	"github.com/hexclash/engine/internal/hexmap"
)

// Mood is a city's tri-state happiness.
type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodNeutral Mood = "neutral"
	MoodAngry   Mood = "angry"
)

// Decrease steps mood down one notch (Happy -> Neutral -> Angry), floors
// at Angry.
func (m Mood) Decrease() Mood {
	switch m {
	case MoodHappy:
		return MoodNeutral
	case MoodNeutral:
		return MoodAngry
	default:
		return MoodAngry
	}
}

// Increase steps mood up one notch (Angry -> Neutral -> Happy), ceils at
// Happy. Used by IncreaseHappiness.
func (m Mood) Increase() Mood {
	switch m {
	case MoodAngry:
		return MoodNeutral
	case MoodNeutral:
		return MoodHappy
	default:
		return MoodHappy
	}
}

// CityPieces is the seven-slot building layout of a city, plus any
// wonders built there. Each slot records the
// owning player, which can differ from the city's owner once cultural
// influence has transferred a building.
type CityPieces struct {
	Buildings map[gametypes.BuildingKind]int `json:"buildings,omitempty"` // building -> owning player index
	Wonders   []string                       `json:"wonders,omitempty"`   // wonder ids built here
}

// Size returns the number of occupied slots plus one for the city
// center.
func (p CityPieces) Size() int {
	return len(p.Buildings) + len(p.Wonders) + 1
}

// BuildingOwner returns the player index owning the given building slot,
// and whether that slot is occupied at all.
func (p CityPieces) BuildingOwner(kind gametypes.BuildingKind) (int, bool) {
	owner, ok := p.Buildings[kind]
	return owner, ok
}

// WithBuilding returns a copy of p with kind now owned by owner.
func (p CityPieces) WithBuilding(kind gametypes.BuildingKind, owner int) CityPieces {
	out := p.clone()
	out.Buildings[kind] = owner
	return out
}

// WithoutBuilding returns a copy of p with kind razed (removed).
func (p CityPieces) WithoutBuilding(kind gametypes.BuildingKind) CityPieces {
	out := p.clone()
	delete(out.Buildings, kind)
	return out
}

func (p CityPieces) clone() CityPieces {
	buildings := make(map[gametypes.BuildingKind]int, len(p.Buildings))
	for k, v := range p.Buildings {
		buildings[k] = v
	}
	return CityPieces{Buildings: buildings, Wonders: append([]string{}, p.Wonders...)}
}

// City is a founded settlement.
type City struct {
	Owner        int             `json:"owner"`
	Position     hexmap.Position `json:"position"`
	Mood         Mood            `json:"mood"`
	Activations  uint32          `json:"activations"`
	Pieces       CityPieces      `json:"pieces"`
	PortPosition *hexmap.Position `json:"port_position,omitempty"`
}

// NewCity founds a city owned by owner at position, Happy, unactivated.
func NewCity(owner int, position hexmap.Position) *City {
	return &City{
		Owner:    owner,
		Position: position,
		Mood:     MoodHappy,
		Pieces:   CityPieces{Buildings: map[gametypes.BuildingKind]int{}},
	}
}

// IsActivated reports whether the city has been used this turn.
func (c *City) IsActivated() bool {
	return c.Activations > 0
}

// Activate marks another use of the city, decreasing mood by one step if
// it was already activated this turn.
func (c *City) Activate() {
	if c.IsActivated() {
		c.Mood = c.Mood.Decrease()
	}
	c.Activations++
}

// ResetActivations clears the per-turn activation counter, called by the
// turn/phase controller at end of turn.
func (c *City) ResetActivations() {
	c.Activations = 0
}

// Size reports the city's current building/wonder footprint.
func (c *City) Size() int {
	return c.Pieces.Size()
}

// Clone deep-copies c, used by snapshotting for undo/redo.
func (c *City) Clone() *City {
	cp := *c
	cp.Pieces = c.Pieces.clone()
	if c.PortPosition != nil {
		p := *c.PortPosition
		cp.PortPosition = &p
	}
	return &cp
}
