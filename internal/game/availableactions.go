package game

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hexclash/engine/internal/action"
	"github.com/hexclash/engine/internal/gametypes"
	"github.com/hexclash/engine/internal/movement"
	"github.com/hexclash/engine/internal/playerstate"
)

// ActionGroup bundles one PlayingKind with every concrete Action it is
// currently legal for a player to submit.
type ActionGroup struct {
	Kind    action.PlayingKind
	Actions []action.Action
}

// AvailableActions enumerates playerIndex's legal moves in the current
// Playing state, grouped by PlayingKind. It is read-only: the Game is
// never mutated, so callers may run it concurrently with one another
// (see AvailableActionsAllPlayers) and with Execute itself reading
// alongside it, so long as no Execute call is in flight at the same
// time. Recruit payment and the exact price of a building slot are not
// priced by this engine (applyRecruit/applyConstruct accept whatever
// payment the caller offers), so the Recruit/Construct groups name the
// target without prescribing a Payment; callers fill one in themselves.
func (g *Game) AvailableActions(playerIndex int) []ActionGroup {
	if g.Status != StatusPlaying || !g.validPlayer(playerIndex) || playerIndex != g.Turn.CurrentPlayerIndex {
		return nil
	}
	if g.ActionsLeft <= 0 {
		return nil
	}
	player := g.Players[playerIndex]

	var groups []ActionGroup
	if acts := g.availableAdvanceActions(player); len(acts) > 0 {
		groups = append(groups, ActionGroup{Kind: action.PlayingAdvance, Actions: acts})
	}
	if acts := g.availableFoundCityActions(player); len(acts) > 0 {
		groups = append(groups, ActionGroup{Kind: action.PlayingFoundCity, Actions: acts})
	}
	if acts := g.availableConstructActions(player); len(acts) > 0 {
		groups = append(groups, ActionGroup{Kind: action.PlayingConstruct, Actions: acts})
	}
	if acts := g.availableCollectActions(player); len(acts) > 0 {
		groups = append(groups, ActionGroup{Kind: action.PlayingCollect, Actions: acts})
	}
	if acts := g.availableHappinessActions(player); len(acts) > 0 {
		groups = append(groups, ActionGroup{Kind: action.PlayingIncreaseHappiness, Actions: acts})
	}
	if acts := g.availableRecruitActions(player); len(acts) > 0 {
		groups = append(groups, ActionGroup{Kind: action.PlayingRecruit, Actions: acts})
	}
	if len(player.Units) > 0 {
		groups = append(groups, ActionGroup{
			Kind:    action.PlayingMoveUnits,
			Actions: []action.Action{action.NewPlayingAction(action.PlayingAction{Kind: action.PlayingMoveUnits})},
		})
	}
	groups = append(groups, ActionGroup{
		Kind:    action.PlayingEndTurn,
		Actions: []action.Action{action.NewPlayingAction(action.PlayingAction{Kind: action.PlayingEndTurn, IsFree: true})},
	})

	// Drop any group an availability listener vetoes, so this
	// enumeration and Execute's own legality pass never disagree.
	filtered := groups[:0]
	for _, gr := range groups {
		if g.checkPlayingActionAvailable(gr.Kind, playerIndex) == "" {
			filtered = append(filtered, gr)
		}
	}
	return filtered
}

func (g *Game) availableAdvanceActions(player *playerstate.Player) []action.Action {
	var out []action.Action
	for _, adv := range g.Registry.Advances() {
		if adv.Disabled || player.HasAdvance(adv.ID) {
			continue
		}
		payment, ok := adv.Cost.FirstValidPayment(player.Resources)
		if !ok {
			continue
		}
		out = append(out, action.NewPlayingAction(action.PlayingAction{
			Kind:        action.PlayingAdvance,
			AdvanceName: adv.ID,
			Payment:     payment,
		}))
	}
	return out
}

func (g *Game) availableFoundCityActions(player *playerstate.Player) []action.Action {
	var out []action.Action
	for _, u := range player.Units {
		if u.UnitType != gametypes.UnitSettler {
			continue
		}
		if _, _, exists := g.cityAt(u.Position); exists {
			continue
		}
		out = append(out, action.NewPlayingAction(action.PlayingAction{
			Kind:         action.PlayingFoundCity,
			CityPosition: u.Position,
		}))
	}
	return out
}

func (g *Game) availableConstructActions(player *playerstate.Player) []action.Action {
	var out []action.Action
	for _, city := range player.Cities {
		for _, kind := range gametypes.AllBuildingKinds {
			if _, occupied := city.Pieces.BuildingOwner(kind); occupied {
				continue
			}
			if player.AvailableBuildings[kind] <= 0 {
				continue
			}
			out = append(out, action.NewPlayingAction(action.PlayingAction{
				Kind:         action.PlayingConstruct,
				CityPosition: city.Position,
				Building:     kind,
			}))
		}
	}
	return out
}

func (g *Game) availableCollectActions(player *playerstate.Player) []action.Action {
	var out []action.Action
	for _, city := range player.Cities {
		if city.IsActivated() {
			continue
		}
		out = append(out, action.NewPlayingAction(action.PlayingAction{
			Kind:         action.PlayingCollect,
			CityPosition: city.Position,
		}))
	}
	return out
}

func (g *Game) availableHappinessActions(player *playerstate.Player) []action.Action {
	var out []action.Action
	if !player.Resources.CanAfford(increaseHappinessCost) {
		return out
	}
	for _, city := range player.Cities {
		if city.IsActivated() {
			continue
		}
		out = append(out, action.NewPlayingAction(action.PlayingAction{
			Kind:         action.PlayingIncreaseHappiness,
			CityPosition: city.Position,
		}))
	}
	return out
}

func (g *Game) availableRecruitActions(player *playerstate.Player) []action.Action {
	var out []action.Action
	for _, city := range player.Cities {
		existing := 0
		for _, u := range player.Units {
			if u.Position == city.Position {
				existing++
			}
		}
		if !movement.WithinStackLimit(existing, 1) {
			continue
		}
		for unitType, count := range player.AvailableUnits {
			if count <= 0 {
				continue
			}
			out = append(out, action.NewPlayingAction(action.PlayingAction{
				Kind:            action.PlayingRecruit,
				CityPosition:    city.Position,
				RecruitUnitType: unitType,
			}))
		}
	}
	return out
}

// AvailableActionsAllPlayers computes AvailableActions for every player
// concurrently: a status-phase description builder that needs to show
// every player's options at once would otherwise pay for len(Players)
// sequential scans of the full content registry and every city/unit. The
// fan-out is read-only and each goroutine writes only to its own output
// slot, so no locking is needed around Game itself. Since
// AvailableActions answers only for the current player while Status is
// Playing, every other slot (and every slot outside Playing) is nil.
func (g *Game) AvailableActionsAllPlayers(ctx context.Context) ([][]ActionGroup, error) {
	out := make([][]ActionGroup, len(g.Players))
	group, _ := errgroup.WithContext(ctx)
	for i := range g.Players {
		i := i
		group.Go(func() error {
			out[i] = g.AvailableActions(i)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
