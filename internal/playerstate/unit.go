package playerstate

import "github.com/hexclash/engine/internal/hexmap"
import "github.com/hexclash/engine/internal/gametypes"

// Unit is a single military or civilian piece. IDs are unique and dense
// per player, not globally.
type Unit struct {
	ID                   uint32                             `json:"id"`
	Position             hexmap.Position                    `json:"position"`
	UnitType             gametypes.UnitType                 `json:"unit_type"`
	CarrierID            *uint32                            `json:"carrier_id,omitempty"`
	MovementRestrictions map[gametypes.MovementRestriction]bool `json:"movement_restrictions,omitempty"`
}

// NewUnit builds an uncarried unit at position.
func NewUnit(id uint32, unitType gametypes.UnitType, position hexmap.Position) *Unit {
	return &Unit{ID: id, UnitType: unitType, Position: position}
}

// IsCarried reports whether the unit currently rides a carrier.
func (u *Unit) IsCarried() bool {
	return u.CarrierID != nil
}

// Embark boards u onto carrier, moving it to the carrier's position: a
// carried unit's position always equals its carrier's.
func (u *Unit) Embark(carrierID uint32, carrierPosition hexmap.Position) {
	id := carrierID
	u.CarrierID = &id
	u.Position = carrierPosition
}

// Disembark removes u from its carrier, placing it at destination.
func (u *Unit) Disembark(destination hexmap.Position) {
	u.CarrierID = nil
	u.Position = destination
}

// HasRestriction reports whether r has been appended to u this turn.
func (u *Unit) HasRestriction(r gametypes.MovementRestriction) bool {
	return u.MovementRestrictions[r]
}

// AddRestriction appends r to the unit's per-turn restriction set, e.g.
// entering a Mountain appends a Mountain restriction.
func (u *Unit) AddRestriction(r gametypes.MovementRestriction) {
	if u.MovementRestrictions == nil {
		u.MovementRestrictions = map[gametypes.MovementRestriction]bool{}
	}
	u.MovementRestrictions[r] = true
}

// ClearRestrictions resets the per-turn restriction set, called at end
// of turn by the turn/phase controller.
func (u *Unit) ClearRestrictions() {
	u.MovementRestrictions = nil
}

// Clone deep-copies u, used by snapshotting for undo/redo.
func (u *Unit) Clone() *Unit {
	cp := *u
	if u.CarrierID != nil {
		id := *u.CarrierID
		cp.CarrierID = &id
	}
	if u.MovementRestrictions != nil {
		cp.MovementRestrictions = make(map[gametypes.MovementRestriction]bool, len(u.MovementRestrictions))
		for k, v := range u.MovementRestrictions {
			cp.MovementRestrictions[k] = v
		}
	}
	return &cp
}
