package game

import "github.com/hexclash/engine/internal/combat"

// combatBattle aliases combat.Battle so state.go doesn't need to import
// combat just to spell the field type.
type combatBattle = combat.Battle

// roller adapts Game's deterministic draw stream to combat.Roller.
func (g *Game) roller() combat.Roller {
	return g.rollDie
}
