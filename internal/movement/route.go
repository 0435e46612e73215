package movement

import (
	"github.com/hexclash/engine/internal/gametypes"
	"github.com/hexclash/engine/internal/hexmap"
	"github.com/hexclash/engine/internal/resource"
)

// Source names which rule produced a Route, purely informational for
// clients rendering why a destination is reachable.
type Source string

const (
	SourceAdjacent   Source = "adjacent"
	SourceNavigation Source = "navigation"
	SourceRoads      Source = "roads"
	SourceRomanRoads Source = "roman_roads"
)

// Route is one reachable destination for a unit group.
type Route struct {
	Destination               hexmap.Position
	Cost                      resource.PaymentOptions
	IgnoreTerrainRestrictions bool
	Source                    Source
}

// Fleet describes the army a caller wants routes for: its current
// position and whether it is wholly composed of ships (mixed land/ship
// groups are routed as land, since a ship's own movement is requested
// separately from the land units it carries).
type Fleet struct {
	Position  hexmap.Position
	IsShip    bool
	OwnerCity bool // true if Position is one of the mover's own cities
}

// Options carries the advances and map state that gate non-adjacent
// route sources.
type Options struct {
	HasNavigation bool
	HasRoads      bool
	HasRomanRoads bool
	// OwnCities lists positions of the mover's own cities, for Roads and
	// Roman Roads eligibility.
	OwnCities map[hexmap.Position]bool
}

// EnumerateRoutes returns every route reachable by fleet given m and
// opts.
func EnumerateRoutes(m *hexmap.Map, fleet Fleet, opts Options) []Route {
	var routes []Route
	routes = append(routes, adjacentRoutes(m, fleet)...)
	if opts.HasNavigation && fleet.IsShip {
		routes = append(routes, navigationRoutes(m, fleet)...)
	}
	if opts.HasRoads && opts.OwnCities[fleet.Position] {
		routes = append(routes, roadsRoutes(m, fleet, opts)...)
	}
	if opts.HasRomanRoads && opts.OwnCities[fleet.Position] {
		routes = append(routes, romanRoadsRoutes(m, fleet, opts)...)
	}
	return routes
}

// adjacentRoutes offers every in-bounds neighbor at zero cost. Land
// units may not step onto water except by embarking, which is not
// offered as a Route here: an embark leg is submitted with an explicit
// carrier.
func adjacentRoutes(m *hexmap.Map, fleet Fleet) []Route {
	var out []Route
	for _, n := range fleet.Position.Neighbors() {
		t, ok := m.Get(n)
		if !ok {
			continue
		}
		if !fleet.IsShip && t.IsWater() {
			continue
		}
		if fleet.IsShip && !t.IsWater() {
			continue
		}
		out = append(out, Route{Destination: n, Source: SourceAdjacent})
	}
	return out
}

// navigationRoutes lets a ship at the map perimeter skip along it,
// offering only the first and last unblocked perimeter tiles.
func navigationRoutes(m *hexmap.Map, fleet Fleet) []Route {
	perimeter := m.RingPerimeter(hexmap.Position{}, fleet.Position.Distance(hexmap.Position{}))
	idx := -1
	for i, p := range perimeter {
		if p == fleet.Position {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}
	var out []Route
	if dest, ok := firstUnblocked(m, perimeter, idx, 1); ok {
		out = append(out, Route{Destination: dest, Source: SourceNavigation})
	}
	if dest, ok := firstUnblocked(m, perimeter, idx, -1); ok {
		out = append(out, Route{Destination: dest, Source: SourceNavigation})
	}
	return out
}

func firstUnblocked(m *hexmap.Map, ring []hexmap.Position, start, step int) (hexmap.Position, bool) {
	n := len(ring)
	if n == 0 {
		return hexmap.Position{}, false
	}
	for k := 1; k < n; k++ {
		i := ((start+k*step)%n + n) % n
		if t, ok := m.Get(ring[i]); ok && t.IsWater() {
			return ring[i], true
		}
	}
	return hexmap.Position{}, false
}

// roadsRoutes connects the mover's own cities two steps apart through a
// land (non-water) middle tile. Who occupies that middle tile is not
// checked.
func roadsRoutes(m *hexmap.Map, fleet Fleet, opts Options) []Route {
	var out []Route
	for dest := range opts.OwnCities {
		if dest == fleet.Position {
			continue
		}
		if fleet.Position.Distance(dest) != 2 {
			continue
		}
		if !twoStepLandPath(m, fleet.Position, dest) {
			continue
		}
		out = append(out, Route{
			Destination:               dest,
			Cost:                      resource.NewPaymentOptions(resource.Pile{Ore: 1, Food: 1}),
			IgnoreTerrainRestrictions: true,
			Source:                    SourceRoads,
		})
	}
	return out
}

func twoStepLandPath(m *hexmap.Map, from, to hexmap.Position) bool {
	for _, mid := range from.Neighbors() {
		t, ok := m.Get(mid)
		if !ok || t.IsWater() {
			continue
		}
		for _, n := range mid.Neighbors() {
			if n == to {
				return true
			}
		}
	}
	return false
}

// romanRoadsRoutes offers any destination within RomanRoadsMaxSteps of
// an owned city that is not itself one of the mover's own cities; other
// players' cities are not excluded.
func romanRoadsRoutes(m *hexmap.Map, fleet Fleet, opts Options) []Route {
	var out []Route
	for _, p := range m.Positions() {
		if opts.OwnCities[p] {
			continue
		}
		if fleet.Position.Distance(p) == 0 || fleet.Position.Distance(p) > RomanRoadsMaxSteps {
			continue
		}
		out = append(out, Route{
			Destination:               p,
			Cost:                      resource.NewPaymentOptions(resource.Pile{Ore: 1, Food: 1}),
			IgnoreTerrainRestrictions: true,
			Source:                    SourceRomanRoads,
		})
	}
	return out
}

// WithinStackLimit reports whether adding count more of a player's army
// units to a tile that already holds existing would stay within
// StackLimit.
func WithinStackLimit(existing, count int) bool {
	return existing+count <= StackLimit
}

// CanCarry reports whether a carrier already holding loaded land units
// can accept one more.
func CanCarry(loaded int) bool {
	return loaded < ShipCapacity
}

// AppendRestrictionForTerrain returns the movement restriction entering
// terrain imposes on the mover, if any: a Mountain appends Mountain, a
// Forest appends Forest. The Forest restriction is returned for every
// entry into a Forest, whether or not the mover then attacks.
func AppendRestrictionForTerrain(t hexmap.Terrain) (gametypes.MovementRestriction, bool) {
	switch {
	case t.IsMountain():
		return gametypes.RestrictMountain, true
	case t.IsForest():
		return gametypes.RestrictForest, true
	default:
		return "", false
	}
}
