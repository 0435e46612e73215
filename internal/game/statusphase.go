package game

import (
	"github.com/hexclash/engine/internal/action"
	"github.com/hexclash/engine/internal/enginerr"
	"github.com/hexclash/engine/internal/gametypes"
	"github.com/hexclash/engine/internal/playerstate"
	"github.com/hexclash/engine/internal/turnphase"
)

// executeStatusPhase advances one player's step through the status
// phase's current sub-phase. The concrete objective catalog is left to
// collaborators, so CompleteObjectives is a mechanical pass-through;
// the other sub-phases only need engine-level state and get real
// handling.
func (g *Game) executeStatusPhase(playerIndex int, act action.Action) error {
	if g.Status != StatusStatusPhase {
		return enginerr.NewIllegalAction("game is not in the status phase")
	}
	if !g.validPlayer(playerIndex) || playerIndex != g.Turn.StatusPlayerIndex {
		return enginerr.NewIllegalAction("it is not player %d's status phase turn", playerIndex)
	}

	sp := act.StatusPhase
	if sp == nil {
		sp = &action.StatusPhaseAction{}
	}
	player := g.Players[playerIndex]

	switch g.Turn.CurrentSubPhase() {
	case turnphase.SubPhaseCompleteObjectives:
		// no engine-level rule: the concrete objective catalog is
		// collaborator content.
	case turnphase.SubPhaseDrawCards:
		g.drawStatusPhaseCards(player)
	case turnphase.SubPhaseDetermineFirstPlayer:
		if sp.FirstPlayer != nil {
			if !g.validPlayer(*sp.FirstPlayer) {
				return enginerr.NewIllegalAction("first player index %d is out of range", *sp.FirstPlayer)
			}
			g.Turn.StartingPlayerIndex = *sp.FirstPlayer
		}
	case turnphase.SubPhaseFreeAdvance:
		if sp.AdvanceName != "" {
			if err := g.applyAdvance(player, &action.PlayingAction{
				Kind:        action.PlayingAdvance,
				AdvanceName: sp.AdvanceName,
				IsFree:      true,
			}); err != nil {
				return err
			}
		}
	case turnphase.SubPhaseRazeSize1City:
		if sp.Raze {
			city, ok := player.FindCity(sp.CityPosition)
			if !ok {
				return enginerr.NewIllegalAction("player %d does not own a city at this position", playerIndex)
			}
			if city.Size() != 1 {
				return enginerr.NewIllegalAction("only a size-1 city may be razed in the status phase")
			}
			player.RemoveCity(sp.CityPosition)
		}
	case turnphase.SubPhaseChangeGovernmentType:
		if sp.NewGovernment != "" {
			player.Government = sp.NewGovernment
		}
	}

	g.Turn.AdvanceStatusPhase()
	if !g.Turn.InStatusPhase {
		g.Status = StatusPlaying
		g.ActionsLeft = turnphase.ActionsPerTurn
	}
	if g.Turn.IsGameOver() {
		g.Status = StatusFinished
	}
	return nil
}

// drawStatusPhaseCards deals the player one action card and one
// objective card off the shared piles. Draws reveal hidden information:
// Execute watches cardDrawCount and pins the undo floor past them.
func (g *Game) drawStatusPhaseCards(player *playerstate.Player) {
	if len(g.ActionCardsLeft) > 0 {
		id := g.ActionCardsLeft[0]
		g.ActionCardsLeft = g.ActionCardsLeft[1:]
		player.ActionCards = append(player.ActionCards, gametypes.NewActionCard(id))
		g.cardDrawCount++
	}
	if len(g.ObjectiveCardsLeft) > 0 {
		id := g.ObjectiveCardsLeft[0]
		g.ObjectiveCardsLeft = g.ObjectiveCardsLeft[1:]
		player.ObjectiveCards = append(player.ObjectiveCards, gametypes.NewObjectiveCard(id))
		g.cardDrawCount++
	}
}
