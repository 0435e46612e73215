package game

import (
	"github.com/hexclash/engine/internal/action"
	"github.com/hexclash/engine/internal/combat"
	"github.com/hexclash/engine/internal/enginerr"
	"github.com/hexclash/engine/internal/gametypes"
	"github.com/hexclash/engine/internal/hexmap"
	"github.com/hexclash/engine/internal/movement"
	"github.com/hexclash/engine/internal/playerstate"
)

// executeMovement is the movement leg of the dispatcher. Grounded on
// original_source/server/src/movement.rs's execute_movement_action: the
// first movement action of a turn spends one of the ordinary
// actions_left and opens a movement sub-phase with its own
// movement-action budget; subsequent legs spend from that budget instead,
// sharing one movement action across an embark/disembark pair whenever
// the current-move descriptor matches.
func (g *Game) executeMovement(playerIndex int, act action.Action) error {
	if g.Status != StatusPlaying && g.Status != StatusMovement {
		return enginerr.NewIllegalAction("movement is not available in the current game state")
	}
	if !g.validPlayer(playerIndex) || playerIndex != g.Turn.CurrentPlayerIndex {
		return enginerr.NewIllegalAction("it is not player %d's turn", playerIndex)
	}
	m := act.Movement
	if m == nil {
		return enginerr.NewProtocolMisuse("movement action submitted with a nil payload")
	}
	if m.Stop {
		if g.Status != StatusMovement {
			return enginerr.NewIllegalAction("no movement phase to stop")
		}
		g.Status = StatusPlaying
		g.MovementState = nil
		return nil
	}
	if len(m.UnitIDs) == 0 {
		return enginerr.NewIllegalAction("movement action names no units")
	}

	player := g.Players[playerIndex]
	units := make([]*playerstate.Unit, 0, len(m.UnitIDs))
	for _, id := range m.UnitIDs {
		u, ok := player.Units[id]
		if !ok {
			return enginerr.NewIllegalAction("unit %d does not belong to player %d", id, playerIndex)
		}
		units = append(units, u)
	}
	from := units[0].Position
	for _, u := range units {
		if u.Position != from {
			return enginerr.NewIllegalAction("all units in one move must share a starting position")
		}
		if u.HasRestriction(gametypes.RestrictBattle) {
			return enginerr.NewIllegalAction("unit %d has already fought this turn", u.ID)
		}
	}

	opening := g.Status == StatusPlaying
	if opening {
		if g.ActionsLeft <= 0 {
			return enginerr.NewIllegalAction("no actions left this turn")
		}
	} else if g.MovementState.MovementActionsLeft <= 0 && !movement.SameMove(g.MovementState.CurrentMove, m.UnitIDs, from) {
		return enginerr.NewIllegalAction("no movement actions left this turn")
	}

	enemyUnits, enemyOwner, friendlyCount := g.unitsAt(playerIndex, m.Destination)
	if len(enemyUnits) == 0 && !movement.WithinStackLimit(friendlyCount, len(units)) {
		return enginerr.NewIllegalAction("stack limit reached at the destination")
	}

	if opening {
		g.ActionsLeft--
		g.Status = StatusMovement
		g.MovementState = movement.NewState(movement.ActionsPerActivation)
	}

	if len(enemyUnits) > 0 {
		return g.beginCombat(playerIndex, enemyOwner, units, enemyUnits, m.Destination)
	}

	g.MovementState.ApplyMove(g.Map, units, m.Destination, m.EmbarkCarrier)
	g.settleMovementPhase()
	return nil
}

// unitsAt reports the other players' units standing (not carried) at
// position, plus how many of the querying player's own army units and
// ships are already there.
func (g *Game) unitsAt(playerIndex int, position hexmap.Position) (enemyUnits []*playerstate.Unit, enemyOwner int, friendlyCount int) {
	for _, other := range g.Players {
		for _, u := range other.Units {
			if u.Position != position || u.IsCarried() {
				continue
			}
			if other.Index == playerIndex {
				if u.UnitType.IsLandCombatant() || u.UnitType == gametypes.UnitShip {
					friendlyCount++
				}
				continue
			}
			enemyUnits = append(enemyUnits, u)
			enemyOwner = other.Index
		}
	}
	return
}

// settleMovementPhase returns the game to Playing once the movement
// budget is exhausted, mirroring original_source's back_to_move. An
// embark leg holds the phase open with its budget spent: the matching
// disembark may still share the move.
func (g *Game) settleMovementPhase() {
	st := g.MovementState
	if st == nil {
		return
	}
	if st.MovementActionsLeft > 0 {
		return
	}
	if st.CurrentMove != nil && st.CurrentMove.Embark != nil {
		return
	}
	g.Status = StatusPlaying
	g.MovementState = nil
}

// beginCombat starts a Battle when a moving army reaches a tile held by
// another player's units: combat is multi-round and nests inside a
// movement action. Movers gain the Battle restriction
// immediately; they only occupy the destination once they win it
// (settleCombat moves survivors in on AttackerWins).
func (g *Game) beginCombat(attackerIdx, defenderIdx int, attackers, defenders []*playerstate.Unit, destination hexmap.Position) error {
	movement.MarkBattle(attackers)
	movement.MarkBattle(defenders)

	attackerSide := &combat.Side{PlayerIndex: attackerIdx}
	for _, u := range attackers {
		attackerSide.Fighters = append(attackerSide.Fighters, combat.Fighter{UnitID: u.ID, UnitType: u.UnitType})
	}
	defenderSide := &combat.Side{PlayerIndex: defenderIdx}
	for _, u := range defenders {
		defenderSide.Fighters = append(defenderSide.Fighters, combat.Fighter{UnitID: u.ID, UnitType: u.UnitType})
	}

	_, _, cityTile := g.cityAt(destination)
	g.Battle = combat.NewBattle(attackerSide, defenderSide, cityTile)
	g.combatCityPosition = destination

	req := g.Battle.Advance(g.roller())
	if err := g.settleCombat(req); err != nil {
		return err
	}
	if g.Pending == nil {
		g.settleMovementPhase()
	}
	return nil
}
