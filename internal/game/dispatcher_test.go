package game

import (
	"encoding/json"
	"testing"

	"github.com/hexclash/engine/internal/action"
	"github.com/hexclash/engine/internal/content"
	"github.com/hexclash/engine/internal/enginerr"
	"github.com/hexclash/engine/internal/events"
	"github.com/hexclash/engine/internal/gametypes"
	"github.com/hexclash/engine/internal/hexmap"
	"github.com/hexclash/engine/internal/playerstate"
	"github.com/hexclash/engine/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry() *content.Registry {
	return content.NewRegistryBuilder().
		AddAdvance(content.Advance{
			ID:   "storage",
			Name: "Storage",
			Cost: resource.NewPaymentOptions(resource.Pile{Food: 2}),
		}).
		Build()
}

func testMap() *hexmap.Map {
	m := hexmap.NewMap()
	for q := -2; q <= 2; q++ {
		for r := -2; r <= 2; r++ {
			m.Set(hexmap.Position{Q: q, R: r}, hexmap.NewTerrain(hexmap.TerrainFertile))
		}
	}
	return m
}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := NewGame("g1", 2, 42, Setup{
		Map:           testMap(),
		Registry:      testRegistry(),
		Civilizations: []string{"rome", "greece"},
	})
	g.BeginPlay()
	return g
}

// snapshotJSON freezes g into its serialized wire form, the shape the
// determinism and undo-symmetry properties are stated against.
func snapshotJSON(t *testing.T, g *Game) string {
	t.Helper()
	data, err := json.Marshal(ToData(g))
	require.NoError(t, err)
	return string(data)
}

func TestAdvanceHappyPath(t *testing.T) {
	g := newTestGame(t)
	g.Players[0].Resources = resource.Pile{Food: 2}

	_, err := Execute(g, action.NewPlayingAction(action.PlayingAction{
		Kind:        action.PlayingAdvance,
		AdvanceName: "storage",
		Payment:     resource.Pile{Food: 2},
	}), 0)
	require.NoError(t, err)

	assert.Equal(t, 0, g.Players[0].Resources.Food)
	assert.True(t, g.Players[0].HasAdvance("storage"))
	assert.Equal(t, 2, g.Players[0].GameEventTokens, "one game event token consumed by the research")
	assert.Equal(t, 2, g.ActionsLeft)
	assert.Equal(t, 1, g.ActionLogIndex)
}

func TestAdvanceInsufficientPaymentRejected(t *testing.T) {
	g := newTestGame(t)
	g.Players[0].Resources = resource.Pile{Food: 2}
	before := snapshotJSON(t, g)

	_, err := Execute(g, action.NewPlayingAction(action.PlayingAction{
		Kind:        action.PlayingAdvance,
		AdvanceName: "storage",
		Payment:     resource.Pile{Food: 1},
	}), 0)

	var illegal *enginerr.IllegalActionError
	require.ErrorAs(t, err, &illegal)
	assert.Equal(t, before, snapshotJSON(t, g), "a rejected action leaves no trace")
}

func TestUndoRedoSymmetry(t *testing.T) {
	g := newTestGame(t)
	g.Players[0].Resources = resource.Pile{Food: 2}
	before := snapshotJSON(t, g)

	adv := action.NewPlayingAction(action.PlayingAction{
		Kind:        action.PlayingAdvance,
		AdvanceName: "storage",
		Payment:     resource.Pile{Food: 2},
	})
	_, err := Execute(g, adv, 0)
	require.NoError(t, err)
	after := snapshotJSON(t, g)

	_, err = Execute(g, action.Undo, 0)
	require.NoError(t, err)
	assert.Equal(t, before, snapshotJSON(t, g))

	_, err = Execute(g, action.Redo, 0)
	require.NoError(t, err)
	assert.Equal(t, after, snapshotJSON(t, g))
}

func TestRedoWithoutFutureIsProtocolMisuse(t *testing.T) {
	g := newTestGame(t)
	_, err := Execute(g, action.Redo, 0)
	var misuse *enginerr.ProtocolMisuseError
	require.ErrorAs(t, err, &misuse)
}

// seedInfluenceFixture arranges a legal cultural-influence attempt from
// player 0's city at (0,0) against player 1's Market at (1,0).
func seedInfluenceFixture(g *Game) {
	att := g.Players[0]
	def := g.Players[1]
	att.Cities = append(att.Cities, playerstate.NewCity(0, hexmap.Position{Q: 0, R: 0}))
	c := playerstate.NewCity(1, hexmap.Position{Q: 1, R: 0})
	c.Pieces = c.Pieces.WithBuilding(gametypes.BuildingMarket, 1)
	def.Cities = append(def.Cities, c)
	att.Resources = resource.Pile{CultureToken: 5}
	att.AvailableBuildings[gametypes.BuildingMarket] = 1
}

func TestUndoForbiddenPastDiceRoll(t *testing.T) {
	g := newTestGame(t)
	seedInfluenceFixture(g)

	_, err := Execute(g, action.NewPlayingAction(action.PlayingAction{
		Kind:           action.PlayingInfluenceCultureAttempt,
		CityPosition:   hexmap.Position{Q: 0, R: 0},
		TargetPosition: hexmap.Position{Q: 1, R: 0},
		Building:       gametypes.BuildingMarket,
	}), 0)
	require.NoError(t, err)

	_, err = Execute(g, action.Undo, 0)
	var misuse *enginerr.ProtocolMisuseError
	require.ErrorAs(t, err, &misuse, "the die roll pinned the undo floor")
}

func TestDeterministicReplay(t *testing.T) {
	run := func() string {
		g := NewGame("g1", 2, 7, Setup{
			Map:           testMap(),
			Registry:      testRegistry(),
			Civilizations: []string{"rome", "greece"},
		})
		g.BeginPlay()
		seedInfluenceFixture(g)
		_, err := Execute(g, action.NewPlayingAction(action.PlayingAction{
			Kind:           action.PlayingInfluenceCultureAttempt,
			CityPosition:   hexmap.Position{Q: 0, R: 0},
			TargetPosition: hexmap.Position{Q: 1, R: 0},
			Building:       gametypes.BuildingMarket,
		}), 0)
		require.NoError(t, err)
		return snapshotJSON(t, g)
	}
	assert.Equal(t, run(), run(), "same seed and action sequence yield bit-identical snapshots")
}

func TestSnapshotRoundTrip(t *testing.T) {
	g := newTestGame(t)
	g.Players[0].Resources = resource.Pile{Food: 2}
	_, err := Execute(g, action.NewPlayingAction(action.PlayingAction{
		Kind:        action.PlayingAdvance,
		AdvanceName: "storage",
		Payment:     resource.Pile{Food: 2},
	}), 0)
	require.NoError(t, err)

	restored := FromData(ToData(g), g.Registry)
	assert.Equal(t, snapshotJSON(t, g), snapshotJSON(t, restored))
}

func TestMoveUnitsOpensPhaseAndStopCloses(t *testing.T) {
	g := newTestGame(t)

	_, err := Execute(g, action.NewPlayingAction(action.PlayingAction{Kind: action.PlayingMoveUnits}), 0)
	require.NoError(t, err)
	assert.Equal(t, StatusMovement, g.Status)
	assert.Equal(t, 2, g.ActionsLeft, "opening the movement phase spends one ordinary action")

	_, err = Execute(g, action.NewMovementAction(action.MovementAction{Stop: true}), 0)
	require.NoError(t, err)
	assert.Equal(t, StatusPlaying, g.Status)
	assert.Equal(t, 2, g.ActionsLeft, "stopping costs nothing further")
	assert.Nil(t, g.MovementState)
}

func TestNewGameDealsWonderCards(t *testing.T) {
	g := NewGame("g1", 2, 1, Setup{
		Map:        testMap(),
		Registry:   testRegistry(),
		WonderDeck: []string{"w1", "w2", "w3"},
	})
	assert.Equal(t, []gametypes.HandCard{gametypes.NewWonderCard("w1")}, g.Players[0].WonderCards)
	assert.Equal(t, []gametypes.HandCard{gametypes.NewWonderCard("w2")}, g.Players[1].WonderCards)
	assert.Equal(t, []string{"w3"}, g.WondersLeft)
}

func TestAvailabilityListenerVetoesPlayingAction(t *testing.T) {
	g := newTestGame(t)
	g.Players[0].Resources = resource.Pile{Food: 2}

	origin := events.NewOrigin(events.OriginWonder, "great_wall")
	g.OnPlayingActionAvailable(origin, 10, func(check *AvailabilityCheck, ctx any) {
		if check.Kind == action.PlayingAdvance && check.Reason == "" {
			check.Reason = "research is blocked this age"
		}
	})

	_, err := Execute(g, action.NewPlayingAction(action.PlayingAction{
		Kind:        action.PlayingAdvance,
		AdvanceName: "storage",
		Payment:     resource.Pile{Food: 2},
	}), 0)
	var illegal *enginerr.IllegalActionError
	require.ErrorAs(t, err, &illegal)

	for _, gr := range g.AvailableActions(0) {
		assert.NotEqual(t, action.PlayingAdvance, gr.Kind, "vetoed group is not enumerated either")
	}

	g.RemovePlayingActionAvailable(origin)
	_, err = Execute(g, action.NewPlayingAction(action.PlayingAction{
		Kind:        action.PlayingAdvance,
		AdvanceName: "storage",
		Payment:     resource.Pile{Food: 2},
	}), 0)
	require.NoError(t, err)
}

func TestResponseWithNothingPendingIsProtocolMisuse(t *testing.T) {
	g := newTestGame(t)
	_, err := Execute(g, action.NewResponseAction(nil), 0)
	var misuse *enginerr.ProtocolMisuseError
	require.ErrorAs(t, err, &misuse)
}
