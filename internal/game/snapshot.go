package game

import (
	"github.com/hexclash/engine/internal/action"
	"github.com/hexclash/engine/internal/combat"
	"github.com/hexclash/engine/internal/content"
	"github.com/hexclash/engine/internal/culture"
	"github.com/hexclash/engine/internal/events"
	"github.com/hexclash/engine/internal/gametypes"
	"github.com/hexclash/engine/internal/hexmap"
	"github.com/hexclash/engine/internal/incident"
	"github.com/hexclash/engine/internal/movement"
	"github.com/hexclash/engine/internal/playerstate"
	"github.com/hexclash/engine/internal/turnphase"
)

// TileSnapshot is one occupied Map position, for serialization.
type TileSnapshot struct {
	Position hexmap.Position `json:"position"`
	Terrain  hexmap.Terrain  `json:"terrain"`
}

// MapSnapshot is the wire form of a hexmap.Map.
type MapSnapshot struct {
	Tiles            []TileSnapshot      `json:"tiles"`
	UnexploredBlocks [][]hexmap.Position `json:"unexplored_blocks,omitempty"`
}

// Snapshot is the full wire form of a Game: seed, players, map,
// turn/phase state, event stack, action log, undo bookkeeping, dice log,
// messages.
type Snapshot struct {
	ID     string `json:"id"`
	Status Status `json:"status"`
	Seed   int64  `json:"seed"`

	Players []*playerstate.Player `json:"players"`
	Map     MapSnapshot           `json:"map"`

	Turn          *turnphase.Controller `json:"turn"`
	ActionsLeft   int                   `json:"actions_left"`
	MovementState *movement.State       `json:"movement_state,omitempty"`

	IncidentCounter *incident.Counter `json:"incident_counter"`
	IncidentDeck    *incident.Deck    `json:"incident_deck"`

	ActiveIncidentProtection string `json:"active_incident_protection,omitempty"`

	WondersLeft        []string             `json:"wonders_left,omitempty"`
	ActionCardsLeft    []string             `json:"action_cards_left,omitempty"`
	ObjectiveCardsLeft []string             `json:"objective_cards_left,omitempty"`
	TacticsDiscard     []gametypes.HandCard `json:"tactics_discard,omitempty"`

	NeutralUnits      []*NeutralUnit `json:"neutral_units,omitempty"`
	NextNeutralUnitID uint32         `json:"next_neutral_unit_id,omitempty"`

	PermanentEffects []events.Origin `json:"permanent_effects,omitempty"`

	EventFrames []*eventFrameSnapshot `json:"event_frames,omitempty"`

	// Pending/Battle/PendingCulture carry the engine's own built-in
	// suspensions across ToData/FromData, unlike EventFrames' dropped
	// Handler: combat and cultural-influence escalation can each span
	// several actions, so losing the suspension on every undo/redo
	// through that window would corrupt units already marked as
	// fighting.
	Pending            *pendingSnapshot        `json:"pending,omitempty"`
	Battle             *combat.Data            `json:"battle,omitempty"`
	BattleCityPosition hexmap.Position         `json:"battle_city_position,omitempty"`
	PendingCulture     *pendingCultureSnapshot `json:"pending_culture,omitempty"`

	// InfluencedStartingCities/SuccessfulInfluenceThisTurn are the
	// once-per-turn cultural-influence limits; they must survive an undo
	// within the same turn or a later influence attempt in that turn
	// would wrongly be allowed again.
	InfluencedStartingCities    []hexmap.Position `json:"influenced_starting_cities,omitempty"`
	SuccessfulInfluenceThisTurn bool              `json:"successful_influence_this_turn,omitempty"`

	ActionLog      []action.LogItem `json:"action_log"`
	ActionLogIndex int              `json:"action_log_index"`
	UndoLimit      int              `json:"undo_limit"`

	Messages []string `json:"messages,omitempty"`

	DiceLog       []int `json:"dice_log,omitempty"`
	DiceDrawCount int    `json:"dice_draw_count"`
	CardDrawCount int    `json:"card_draw_count,omitempty"`
}

// pendingSnapshot is the serializable form of Pending.
type pendingSnapshot struct {
	Kind        PendingKind          `json:"kind"`
	PlayerIndex int                  `json:"player_index"`
	Request     events.TaggedRequest `json:"request"`
}

// pendingCultureSnapshot is the serializable form of
// pendingCultureAttempt. StartingCity/TargetCity are recorded by
// position rather than pointer, since the cities they name live inside
// the cloned Players slice and must be re-resolved against it after
// FromData rebuilds that slice.
type pendingCultureSnapshot struct {
	AttackerIndex        int                    `json:"attacker_index"`
	StartingCityPosition hexmap.Position        `json:"starting_city_position"`
	TargetCityPosition   hexmap.Position        `json:"target_city_position"`
	Building             gametypes.BuildingKind `json:"building"`
	IsCityCenter         bool                   `json:"is_city_center"`
	SelfInfluence        bool                   `json:"self_influence"`
	Shortfall            int                    `json:"shortfall"`
}

// eventFrameSnapshot is the serializable form of events.PersistentEventState.
// A frame's Handler (the live, unserializable Request awaiting a
// Response) is intentionally not carried across ToData/FromData: a
// snapshot taken mid-suspension restores the frame's player queue and
// priority ceiling but drops the pending request, matching the content
// registry's own restriction against storing callbacks in game state.
// FromData itself calls each registered event's Resync on its restored
// frame, which re-invokes the listeners from the frame's priority
// ceiling and reproduces an identical Request for a deterministic
// listener.
type eventFrameSnapshot struct {
	EventType         string `json:"event_type"`
	PlayersUsed       []int  `json:"players_used"`
	CurrentPlayer     int    `json:"current_player"`
	LastPriorityUsed  *int   `json:"last_priority_used,omitempty"`
	SkipFirstPriority bool   `json:"skip_first_priority,omitempty"`
}

func mapToSnapshot(m *hexmap.Map) MapSnapshot {
	var out MapSnapshot
	for _, p := range m.Positions() {
		t, _ := m.Get(p)
		out.Tiles = append(out.Tiles, TileSnapshot{Position: p, Terrain: t})
	}
	out.UnexploredBlocks = m.UnexploredBlocks()
	return out
}

func pendingToSnapshot(p *Pending) *pendingSnapshot {
	if p == nil {
		return nil
	}
	tagged, _ := events.EncodeRequest(p.Request)
	return &pendingSnapshot{Kind: p.Kind, PlayerIndex: p.PlayerIndex, Request: tagged}
}

func pendingFromSnapshot(s *pendingSnapshot) *Pending {
	if s == nil {
		return nil
	}
	req, _ := events.DecodeRequest(s.Request)
	return &Pending{Kind: s.Kind, PlayerIndex: s.PlayerIndex, Request: req}
}

func pendingCultureToSnapshot(pc *pendingCultureAttempt) *pendingCultureSnapshot {
	if pc == nil {
		return nil
	}
	return &pendingCultureSnapshot{
		AttackerIndex:        pc.Attempt.AttackerIndex,
		StartingCityPosition: pc.Attempt.StartingCity.Position,
		TargetCityPosition:   pc.Attempt.TargetCity.Position,
		Building:             pc.Attempt.Building,
		IsCityCenter:         pc.Attempt.IsCityCenter,
		SelfInfluence:        pc.Attempt.SelfInfluence,
		Shortfall:            pc.Shortfall,
	}
}

// pendingCultureFromSnapshot re-resolves the attempt's two city pointers
// against g, which must already have Players populated.
func pendingCultureFromSnapshot(g *Game, s *pendingCultureSnapshot) *pendingCultureAttempt {
	if s == nil {
		return nil
	}
	startingCity, _, _ := g.cityAt(s.StartingCityPosition)
	targetCity, _, _ := g.cityAt(s.TargetCityPosition)
	return &pendingCultureAttempt{
		Attempt: culture.Attempt{
			AttackerIndex: s.AttackerIndex,
			StartingCity:  startingCity,
			TargetCity:    targetCity,
			Building:      s.Building,
			IsCityCenter:  s.IsCityCenter,
			SelfInfluence: s.SelfInfluence,
		},
		Shortfall: s.Shortfall,
	}
}

func neutralUnitsToSnapshot(m map[uint32]*NeutralUnit) []*NeutralUnit {
	out := make([]*NeutralUnit, 0, len(m))
	for _, u := range m {
		cp := *u
		out = append(out, &cp)
	}
	return out
}

func neutralUnitsFromSnapshot(units []*NeutralUnit) map[uint32]*NeutralUnit {
	out := make(map[uint32]*NeutralUnit, len(units))
	for _, u := range units {
		cp := *u
		out[cp.ID] = &cp
	}
	return out
}

func battleToSnapshot(b *combatBattle) *combat.Data {
	if b == nil {
		return nil
	}
	d := b.ToData()
	for _, s := range []**combat.Side{&d.Attacker, &d.Defender} {
		if *s == nil {
			continue
		}
		cp := **s
		cp.Fighters = append([]combat.Fighter(nil), cp.Fighters...)
		if cp.TacticsCard != nil {
			tc := *cp.TacticsCard
			cp.TacticsCard = &tc
		}
		*s = &cp
	}
	return &d
}

func battleFromSnapshot(d *combat.Data) *combatBattle {
	if d == nil {
		return nil
	}
	return combat.FromData(*d)
}

func influencedCitiesToSnapshot(m map[hexmap.Position]bool) []hexmap.Position {
	out := make([]hexmap.Position, 0, len(m))
	for pos, on := range m {
		if on {
			out = append(out, pos)
		}
	}
	return out
}

func influencedCitiesFromSnapshot(positions []hexmap.Position) map[hexmap.Position]bool {
	if len(positions) == 0 {
		return nil
	}
	m := make(map[hexmap.Position]bool, len(positions))
	for _, p := range positions {
		m[p] = true
	}
	return m
}

func mapFromSnapshot(s MapSnapshot) *hexmap.Map {
	m := hexmap.NewMap()
	for _, t := range s.Tiles {
		m.Set(t.Position, t.Terrain)
	}
	for _, b := range s.UnexploredBlocks {
		m.AddUnexploredBlock(b)
	}
	return m
}

// ToData freezes g into a Snapshot. Every field reachable through a
// pointer or map is deep copied: Execute takes a Snapshot of the
// pre-action state for the undo stack, so aliasing a live
// player/unit/city here would let a later in-place mutation silently
// corrupt an already-recorded snapshot.
func ToData(g *Game) Snapshot {
	var frames []*eventFrameSnapshot
	for _, f := range g.Events.Frames() {
		frames = append(frames, &eventFrameSnapshot{
			EventType:         f.EventType,
			PlayersUsed:       append([]int{}, f.PlayersUsed...),
			CurrentPlayer:     f.CurrentPlayer,
			LastPriorityUsed:  f.LastPriorityUsed,
			SkipFirstPriority: f.SkipFirstPriority,
		})
	}
	players := make([]*playerstate.Player, len(g.Players))
	for i, p := range g.Players {
		players[i] = p.Clone()
	}
	return Snapshot{
		ID:              g.ID,
		Status:          g.Status,
		Seed:            g.Seed,
		Players:         players,
		Map:             mapToSnapshot(g.Map),
		Turn:            g.Turn.Clone(),
		ActionsLeft:     g.ActionsLeft,
		MovementState:   g.MovementState.Clone(),
		IncidentCounter: g.IncidentCounter.Clone(),
		IncidentDeck:    g.IncidentDeck.Clone(),

		ActiveIncidentProtection: g.ActiveIncidentProtection,

		WondersLeft:        append([]string{}, g.WondersLeft...),
		ActionCardsLeft:    append([]string{}, g.ActionCardsLeft...),
		ObjectiveCardsLeft: append([]string{}, g.ObjectiveCardsLeft...),
		TacticsDiscard:     append([]gametypes.HandCard{}, g.TacticsDiscard...),

		NeutralUnits:      neutralUnitsToSnapshot(g.NeutralUnits),
		NextNeutralUnitID: g.nextNeutralUnitID,

		PermanentEffects: append([]events.Origin{}, g.PermanentEffects...),

		EventFrames: frames,

		Pending:            pendingToSnapshot(g.Pending),
		Battle:             battleToSnapshot(g.Battle),
		BattleCityPosition: g.combatCityPosition,
		PendingCulture:     pendingCultureToSnapshot(g.pendingCulture),

		InfluencedStartingCities:    influencedCitiesToSnapshot(g.influencedStartingCities),
		SuccessfulInfluenceThisTurn: g.successfulInfluenceThisTurn,

		ActionLog:      append([]action.LogItem{}, g.ActionLog...),
		ActionLogIndex: g.ActionLogIndex,
		UndoLimit:      g.UndoLimit,
		Messages:       append([]string{}, g.Messages...),
		DiceLog:        append([]int{}, g.diceLog...),
		DiceDrawCount:  g.diceDrawCount,
		CardDrawCount:  g.cardDrawCount,
	}
}

// FromData rebuilds a Game from a Snapshot, replaying the RNG draw stream
// from the seed so that subsequent rolls continue exactly where the
// snapshotted game left off. registry is supplied fresh by the caller:
// it is never part of the serialized form.
func FromData(s Snapshot, registry *content.Registry) *Game {
	g := &Game{
		ID:              s.ID,
		Status:          s.Status,
		Seed:            s.Seed,
		Players:         s.Players,
		Map:             mapFromSnapshot(s.Map),
		Registry:        registry,
		Turn:            s.Turn,
		ActionsLeft:     s.ActionsLeft,
		MovementState:   s.MovementState,
		IncidentCounter: s.IncidentCounter,
		IncidentDeck:    s.IncidentDeck,

		ActiveIncidentProtection: s.ActiveIncidentProtection,

		WondersLeft:        s.WondersLeft,
		ActionCardsLeft:    s.ActionCardsLeft,
		ObjectiveCardsLeft: s.ObjectiveCardsLeft,
		TacticsDiscard:     s.TacticsDiscard,

		NeutralUnits:      neutralUnitsFromSnapshot(s.NeutralUnits),
		nextNeutralUnitID: s.NextNeutralUnitID,

		PermanentEffects: s.PermanentEffects,

		Battle:             battleFromSnapshot(s.Battle),
		combatCityPosition: s.BattleCityPosition,

		influencedStartingCities:    influencedCitiesFromSnapshot(s.InfluencedStartingCities),
		successfulInfluenceThisTurn: s.SuccessfulInfluenceThisTurn,

		ActionLog:      s.ActionLog,
		ActionLogIndex: s.ActionLogIndex,
		UndoLimit:      s.UndoLimit,
		Messages:       s.Messages,
		diceLog:        s.DiceLog,
		diceDrawCount:  s.DiceDrawCount,
		cardDrawCount:  s.CardDrawCount,
	}
	g.Pending = pendingFromSnapshot(s.Pending)
	g.pendingCulture = pendingCultureFromSnapshot(g, s.PendingCulture)
	g.rng = replayRand(s.Seed, s.DiceDrawCount)
	g.Events = &events.Stack{}
	for _, f := range s.EventFrames {
		g.Events.Push(&events.PersistentEventState{
			EventType:         f.EventType,
			PlayersUsed:       f.PlayersUsed,
			CurrentPlayer:     f.CurrentPlayer,
			LastPriorityUsed:  f.LastPriorityUsed,
			SkipFirstPriority: f.SkipFirstPriority,
		})
	}
	g.registerPersistentEvents()
	for _, f := range g.Events.Frames() {
		if ev, ok := g.persistentEventByType(f.EventType); ok {
			ev.Resync(f, g)
		}
	}
	return g
}
