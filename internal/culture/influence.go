// Package culture implements the cultural-influence roll-boost
// mechanism. Grounded on the teacher's tile-bidding resolution in
// internal/domain/auction.go (a cost, a roll, an optional escalation
// offered to the loser), generalized to a building-ownership transfer
// gated by a die roll.
package culture

import (
	"github.com/hexclash/engine/internal/events"
	"github.com/hexclash/engine/internal/gametypes"
	"github.com/hexclash/engine/internal/playerstate"
)

// SuccessThreshold is the minimum die roll (1..6) that succeeds outright.
const SuccessThreshold = 5

// Attempt names the parties and target of one influence attempt.
type Attempt struct {
	AttackerIndex  int
	StartingCity   *playerstate.City
	TargetCity     *playerstate.City
	Building       gametypes.BuildingKind
	IsCityCenter   bool
	SelfInfluence  bool
}

// RangeBoostCost computes the culture tokens the attacker must pay
// before rolling: max(0, hex_distance - starting_city.size).
func RangeBoostCost(a Attempt) int {
	dist := a.StartingCity.Position.Distance(a.TargetCity.Position)
	boost := dist - a.StartingCity.Size()
	if boost < 0 {
		boost = 0
	}
	return boost
}

// Ineligible reports the reason an attempt cannot even be made, or ""
// if it is eligible.
func Ineligible(a Attempt, attacker *playerstate.Player, alreadyInfluencedThisTurn, anotherSuccessThisTurn bool) string {
	if !a.IsCityCenter {
		owner, ok := a.TargetCity.Pieces.BuildingOwner(a.Building)
		if ok && owner == a.AttackerIndex {
			return "target building owner is already the attacker"
		}
		if a.Building == gametypes.BuildingObelisk {
			return "city piece is an obelisk"
		}
	}
	if alreadyInfluencedThisTurn && !a.SelfInfluence {
		return "starting city was already influenced this turn"
	}
	if anotherSuccessThisTurn {
		return "another successful influence already occurred this turn"
	}
	boostCost := RangeBoostCost(a)
	if attacker.Resources.CultureToken < boostCost {
		return "attacker cannot afford the range boost"
	}
	if attacker.AvailableBuildings[a.Building] <= 0 && !a.IsCityCenter {
		return "attacker cannot accept the building into its pool"
	}
	return ""
}

// Resolve pays the range boost and rolls the die. On an outright success
// (roll >= SuccessThreshold) it returns (true, nil): the caller
// transfers ownership immediately. On a near-miss it returns a
// BoolRequest offering to pay (5 - roll) additional culture tokens; the
// caller must answer it via ResolveEscalation.
func Resolve(a Attempt, attacker *playerstate.Player, roll func() int) (success bool, escalation events.Request, shortfall int) {
	boostCost := RangeBoostCost(a)
	attacker.Resources.CultureToken -= boostCost

	r := roll()
	if r >= SuccessThreshold {
		return true, nil, 0
	}

	shortfall = SuccessThreshold - r
	if a.SelfInfluence || attacker.Resources.CultureToken < shortfall {
		return false, nil, 0
	}
	return false, events.BoolRequest{Prompt: "pay additional culture tokens to succeed?"}, shortfall
}

// ResolveEscalation applies the player's answer to the BoolRequest
// Resolve returned, paying shortfall tokens on acceptance.
func ResolveEscalation(attacker *playerstate.Player, shortfall int, accept bool) (success bool) {
	if !accept {
		return false
	}
	attacker.Resources.CultureToken -= shortfall
	return true
}

// Transfer moves ownership of the target building (or city center) to
// the attacker.
func Transfer(a Attempt, attackerIndex int) {
	if a.IsCityCenter {
		a.TargetCity.Owner = attackerIndex
		return
	}
	a.TargetCity.Pieces = a.TargetCity.Pieces.WithBuilding(a.Building, attackerIndex)
}
