package game

import (
	"fmt"

	"github.com/hexclash/engine/internal/action"
	"github.com/hexclash/engine/internal/combat"
	"github.com/hexclash/engine/internal/content"
	"github.com/hexclash/engine/internal/culture"
	"github.com/hexclash/engine/internal/enginerr"
	"github.com/hexclash/engine/internal/events"
	"github.com/hexclash/engine/internal/gametypes"
	"github.com/hexclash/engine/internal/hexmap"
	"github.com/hexclash/engine/internal/logger"
	"github.com/hexclash/engine/internal/movement"
	"github.com/hexclash/engine/internal/playerstate"
	"github.com/hexclash/engine/internal/resource"
	"github.com/hexclash/engine/internal/turnphase"
	"go.uber.org/zap"
)

// Execute is the engine's action dispatcher. Grounded on the teacher's
// GameReducer (internal/store/game_reducer.go): preconditions are fully
// checked before any mutation runs, so a rejected action never partially
// applies.
func Execute(g *Game, act action.Action, playerIndex int) (*Game, error) {
	if act.Kind == action.KindUndo {
		return g, g.executeUndo()
	}
	if act.Kind == action.KindRedo {
		return g, g.executeRedo()
	}

	preSnapshot := ToData(g)
	drawsBefore := g.diceDrawCount
	cardsBefore := g.cardDrawCount

	var err error
	switch act.Kind {
	case action.KindPlaying:
		err = g.executePlaying(playerIndex, act)
	case action.KindMovement:
		err = g.executeMovement(playerIndex, act)
	case action.KindResponse:
		err = g.executeResponse(playerIndex, act.Response)
	case action.KindStatusPhase:
		err = g.executeStatusPhase(playerIndex, act)
	default:
		err = enginerr.NewProtocolMisuse("unknown action kind %q", act.Kind)
	}
	if err != nil {
		return g, err
	}

	g.snapshots = append(g.snapshots, &preSnapshot)
	g.redoSnapshots = nil
	g.ActionLog = append(g.ActionLog[:g.ActionLogIndex], action.LogItem{PlayerIndex: playerIndex, Action: act})
	g.ActionLogIndex = len(g.ActionLog)
	if g.diceDrawCount != drawsBefore || g.cardDrawCount != cardsBefore {
		// hidden information was revealed this action; the undo floor
		// rises to this point.
		g.UndoLimit = g.ActionLogIndex
	}
	return g, nil
}

func (g *Game) executeUndo() error {
	if g.ActionLogIndex <= g.UndoLimit {
		return enginerr.NewProtocolMisuse("undo is pinned at or before the current action log index")
	}
	if len(g.snapshots) == 0 {
		return enginerr.NewProtocolMisuse("nothing to undo")
	}
	pre := g.snapshots[len(g.snapshots)-1]
	remainingUndo := g.snapshots[:len(g.snapshots)-1]
	redoEntry := ToData(g)
	restored := FromData(*pre, g.Registry)
	redoStack := append(g.redoSnapshots, &redoEntry)
	*g = *restored
	g.snapshots = remainingUndo
	g.redoSnapshots = redoStack
	return nil
}

func (g *Game) executeRedo() error {
	if len(g.redoSnapshots) == 0 {
		return enginerr.NewProtocolMisuse("nothing to redo")
	}
	next := g.redoSnapshots[len(g.redoSnapshots)-1]
	remainingRedo := g.redoSnapshots[:len(g.redoSnapshots)-1]
	undoEntry := ToData(g)
	restored := FromData(*next, g.Registry)
	undoStack := append(g.snapshots, &undoEntry)
	*g = *restored
	g.snapshots = undoStack
	g.redoSnapshots = remainingRedo
	return nil
}

func (g *Game) executePlaying(playerIndex int, act action.Action) error {
	if g.Status != StatusPlaying {
		return enginerr.NewIllegalAction("game is not in the Playing state")
	}
	if !g.validPlayer(playerIndex) || playerIndex != g.Turn.CurrentPlayerIndex {
		return enginerr.NewIllegalAction("it is not player %d's turn", playerIndex)
	}
	p := act.Playing
	if p == nil {
		return enginerr.NewProtocolMisuse("playing action submitted with a nil payload")
	}
	if !p.IsFree && g.ActionsLeft <= 0 {
		return enginerr.NewIllegalAction("no actions left this turn")
	}
	if reason := g.checkPlayingActionAvailable(p.Kind, playerIndex); reason != "" {
		return enginerr.NewIllegalAction("%s", reason)
	}
	player := g.Players[playerIndex]

	var err error
	switch p.Kind {
	case action.PlayingAdvance:
		err = g.applyAdvance(player, p)
	case action.PlayingFoundCity:
		err = g.applyFoundCity(player, p)
	case action.PlayingConstruct:
		err = g.applyConstruct(player, p)
	case action.PlayingCollect:
		err = g.applyCollect(player, p)
	case action.PlayingIncreaseHappiness:
		err = g.applyIncreaseHappiness(player, p)
	case action.PlayingInfluenceCultureAttempt:
		err = g.applyInfluenceAttempt(playerIndex, p)
	case action.PlayingActionCard:
		err = g.applyActionCard(player, p)
	case action.PlayingWonderCard:
		err = g.applyWonderCard(player, p)
	case action.PlayingRecruit:
		err = g.applyRecruit(player, p)
	case action.PlayingMoveUnits:
		err = g.applyMoveUnits()
	case action.PlayingCustom:
		err = g.applyCustomAction(player, p)
	case action.PlayingEndTurn:
		err = g.applyEndTurn()
	default:
		err = enginerr.NewIllegalAction("playing action %q is not supported", p.Kind)
	}
	if err != nil {
		return err
	}
	free := p.IsFree || p.Kind == action.PlayingEndTurn
	if p.Kind == action.PlayingCustom {
		if ca, ok := g.Registry.CustomAction(p.CustomType); ok && ca.Free {
			free = true
		}
	}
	if !free {
		g.ActionsLeft--
	}
	return nil
}

// applyMoveUnits opens a movement sub-phase: the MoveUnits playing
// action spends one ordinary action, then each leg is submitted as a
// Movement action against the phase's own budget.
func (g *Game) applyMoveUnits() error {
	if g.MovementState != nil {
		return enginerr.NewIllegalAction("a movement phase is already open")
	}
	g.Status = StatusMovement
	g.MovementState = movement.NewState(movement.ActionsPerActivation)
	return nil
}

// applyCustomAction plays a content-defined custom action from the
// registry; its cost and one-shot effect follow the same shape as an
// advance's.
func (g *Game) applyCustomAction(player *playerstate.Player, p *action.PlayingAction) error {
	ca, ok := g.Registry.CustomAction(p.CustomType)
	if !ok || ca.Disabled {
		return enginerr.NewIllegalAction("custom action %q is not available", p.CustomType)
	}
	if !ca.Cost.IsFree() {
		if !ca.Cost.Satisfies(p.Payment) {
			return enginerr.NewIllegalAction("payment does not satisfy the cost of %q", p.CustomType)
		}
		if !player.Resources.CanAfford(p.Payment) {
			return enginerr.NewIllegalAction("insufficient resources for %q", p.CustomType)
		}
		player.Pay(p.Payment)
	}
	if ca.OnPlay != nil {
		ca.OnPlay.Apply(playerMutator{g.Players}, player.Index)
	}
	return nil
}

func (g *Game) applyAdvance(player *playerstate.Player, p *action.PlayingAction) error {
	adv, ok := g.Registry.Advance(p.AdvanceName)
	if !ok || adv.Disabled {
		return enginerr.NewIllegalAction("advance %q is not available", p.AdvanceName)
	}
	if player.HasAdvance(adv.ID) {
		return enginerr.NewIllegalAction("advance %q is already researched", p.AdvanceName)
	}
	if !p.IsFree {
		if !adv.Cost.Satisfies(p.Payment) {
			return enginerr.NewIllegalAction("payment does not satisfy the cost of %q", p.AdvanceName)
		}
		if !player.Resources.CanAfford(p.Payment) {
			return enginerr.NewIllegalAction("insufficient resources for %q", p.AdvanceName)
		}
		player.Pay(p.Payment)
	}
	player.ResearchAdvance(adv.ID)
	if adv.OnResearch != nil {
		adv.OnResearch.Apply(playerMutator{g.Players}, player.Index)
	}
	g.triggerIncidentCheck()
	return nil
}

// triggerIncidentCheck advances the shared incident counter and draws
// from the deck on trigger. Every player's GameEventTokens field mirrors
// the shared counter for display.
func (g *Game) triggerIncidentCheck() {
	triggered := g.IncidentCounter.AdvanceResearched()
	for _, pl := range g.Players {
		pl.GameEventTokens = g.IncidentCounter.Remaining
	}
	if !triggered {
		return
	}
	id, ok := g.IncidentDeck.Draw()
	if !ok {
		return
	}
	inc, ok := g.Registry.Incident(id)
	if !ok || inc.Disabled {
		return
	}
	// The base effect fires unconditionally: a protection advance does
	// not protect against base effects, it only exempts its holder from
	// the incident's per-player effects (the pirate raid's
	// payment-or-mood-penalty choice).
	switch inc.BaseEffect {
	case content.IncidentEffectBarbariansSpawn:
		g.spawnBarbarian()
	case content.IncidentEffectBarbariansMove:
		g.moveBarbarians()
	case content.IncidentEffectPiratesRaid:
		g.spawnPiratesAndRaid(inc.ProtectionAdvance)
	}
	g.Messages = append(g.Messages, fmt.Sprintf("incident %s triggered: %s", inc.Name, inc.BaseEffect))
	logger.Get().Info("incident triggered", zap.String("incident", inc.ID), zap.String("base_effect", string(inc.BaseEffect)))
}

func (g *Game) cityAt(position hexmap.Position) (*playerstate.City, int, bool) {
	for _, pl := range g.Players {
		if c, ok := pl.FindCity(position); ok {
			return c, pl.Index, true
		}
	}
	return nil, 0, false
}

func (g *Game) applyFoundCity(player *playerstate.Player, p *action.PlayingAction) error {
	if _, _, exists := g.cityAt(p.CityPosition); exists {
		return enginerr.NewIllegalAction("a city already occupies this position")
	}
	var settler *playerstate.Unit
	for _, u := range player.Units {
		if u.Position == p.CityPosition && u.UnitType == gametypes.UnitSettler {
			settler = u
			break
		}
	}
	if settler == nil {
		return enginerr.NewIllegalAction("no settler of this player's stands at this position")
	}
	delete(player.Units, settler.ID)
	player.Cities = append(player.Cities, playerstate.NewCity(player.Index, p.CityPosition))
	return nil
}

func (g *Game) applyConstruct(player *playerstate.Player, p *action.PlayingAction) error {
	city, ok := player.FindCity(p.CityPosition)
	if !ok {
		return enginerr.NewIllegalAction("player does not own a city at this position")
	}
	if _, occupied := city.Pieces.BuildingOwner(p.Building); occupied {
		return enginerr.NewIllegalAction("building slot %q is already occupied", p.Building)
	}
	if !player.Resources.CanAfford(p.Payment) {
		return enginerr.NewIllegalAction("insufficient resources to construct %q", p.Building)
	}
	if !player.BuildBuilding(p.Building, city) {
		return enginerr.NewIllegalAction("no %q available in the building pool", p.Building)
	}
	player.Pay(p.Payment)
	city.Activate()
	return nil
}

// collectYield computes what one activation of a city yields from its
// own tile's terrain (invented approximation: the spec's data model
// does not specify Collect's exact formula, only that it is one of the
// PlayingAction variants; scaled by city size the way CityPieces.Size
// already scales gold in CaptureCity).
func collectYield(kind hexmap.TerrainKind, size int) resource.Pile {
	switch kind {
	case hexmap.TerrainFertile:
		return resource.Pile{Food: size}
	case hexmap.TerrainForest:
		return resource.Pile{Wood: size}
	case hexmap.TerrainMountain:
		return resource.Pile{Ore: size}
	default:
		return resource.Pile{Ideas: size}
	}
}

func (g *Game) applyCollect(player *playerstate.Player, p *action.PlayingAction) error {
	city, ok := player.FindCity(p.CityPosition)
	if !ok {
		return enginerr.NewIllegalAction("player does not own a city at this position")
	}
	t, ok := g.Map.Get(p.CityPosition)
	if !ok {
		return enginerr.NewInvariantViolation("city exists at an unmapped position")
	}
	player.Gain(collectYield(t.Kind, city.Size()))
	city.Activate()
	return nil
}

// increaseHappinessCost is the flat price of one happiness step; the
// spec's data model does not name a concrete cost, so this uses the same
// single-food price as the teacher's cheapest standard project.
var increaseHappinessCost = resource.Pile{Food: 1}

func (g *Game) applyIncreaseHappiness(player *playerstate.Player, p *action.PlayingAction) error {
	city, ok := player.FindCity(p.CityPosition)
	if !ok {
		return enginerr.NewIllegalAction("player does not own a city at this position")
	}
	if !player.Resources.CanAfford(increaseHappinessCost) {
		return enginerr.NewIllegalAction("insufficient resources to increase happiness")
	}
	player.Pay(increaseHappinessCost)
	city.Mood = city.Mood.Increase()
	city.Activate()
	return nil
}

func (g *Game) applyRecruit(player *playerstate.Player, p *action.PlayingAction) error {
	city, ok := player.FindCity(p.CityPosition)
	if !ok {
		return enginerr.NewIllegalAction("player does not own a city at this position")
	}
	existing := 0
	for _, u := range player.Units {
		if u.Position == p.CityPosition {
			existing++
		}
	}
	if !movement.WithinStackLimit(existing, 1) {
		return enginerr.NewIllegalAction("stack limit reached at this position")
	}
	if !player.Resources.CanAfford(p.Payment) {
		return enginerr.NewIllegalAction("insufficient resources to recruit %q", p.RecruitUnitType)
	}
	if _, ok := player.RecruitUnit(p.RecruitUnitType, p.CityPosition); !ok {
		return enginerr.NewIllegalAction("no %q available in the unit pool", p.RecruitUnitType)
	}
	player.Pay(p.Payment)
	city.Activate()
	return nil
}

// removeHandCard deletes the first card matching id from hand, reporting
// whether one was found.
func removeHandCard(hand []gametypes.HandCard, id string) ([]gametypes.HandCard, bool) {
	for i, c := range hand {
		if c.ID == id {
			return append(hand[:i], hand[i+1:]...), true
		}
	}
	return hand, false
}

// applyActionCard plays an action card from the player's hand. The
// card's OnPlay effect is a one-shot activation, mirroring applyAdvance's
// OnResearch.
func (g *Game) applyActionCard(player *playerstate.Player, p *action.PlayingAction) error {
	card, ok := g.Registry.Card(p.CardID)
	if !ok || card.Disabled {
		return enginerr.NewIllegalAction("action card %q is not available", p.CardID)
	}
	hand, found := removeHandCard(player.ActionCards, p.CardID)
	if !found {
		return enginerr.NewIllegalAction("player does not hold action card %q", p.CardID)
	}
	player.ActionCards = hand
	if card.OnPlay != nil {
		card.OnPlay.Apply(playerMutator{g.Players}, player.Index)
	}
	return nil
}

// applyWonderCard builds a wonder from the player's hand onto city.
// Unlike an advance, a wonder's OnBuilt effect is recorded in
// PermanentEffects: it names a
// standing structure rather than a one-shot resource change, so later
// game-state queries (and display) need to find it again after a
// snapshot round trip.
func (g *Game) applyWonderCard(player *playerstate.Player, p *action.PlayingAction) error {
	wonder, ok := g.Registry.Wonder(p.CardID)
	if !ok || wonder.Disabled {
		return enginerr.NewIllegalAction("wonder %q is not available", p.CardID)
	}
	city, ok := player.FindCity(p.CityPosition)
	if !ok {
		return enginerr.NewIllegalAction("player does not own a city at this position")
	}
	for _, built := range player.WondersBuilt {
		if built == wonder.ID {
			return enginerr.NewIllegalAction("wonder %q is already built", wonder.ID)
		}
	}
	if !wonder.Cost.Satisfies(p.Payment) {
		return enginerr.NewIllegalAction("payment does not satisfy the cost of %q", wonder.ID)
	}
	if !player.Resources.CanAfford(p.Payment) {
		return enginerr.NewIllegalAction("insufficient resources for %q", wonder.ID)
	}
	hand, found := removeHandCard(player.WonderCards, p.CardID)
	if !found {
		return enginerr.NewIllegalAction("player does not hold wonder card %q", p.CardID)
	}
	player.Pay(p.Payment)
	player.WonderCards = hand
	player.WondersBuilt = append(player.WondersBuilt, wonder.ID)
	city.Pieces.Wonders = append(city.Pieces.Wonders, wonder.ID)
	city.Activate()
	origin := events.NewOrigin(events.OriginWonder, wonder.ID)
	g.PermanentEffects = append(g.PermanentEffects, origin)
	if wonder.OnBuilt != nil {
		wonder.OnBuilt.Apply(playerMutator{g.Players}, player.Index)
	}
	return nil
}

func (g *Game) applyEndTurn() error {
	current := g.Players[g.Turn.CurrentPlayerIndex]
	for _, u := range current.Units {
		u.ClearRestrictions()
	}
	for _, c := range current.Cities {
		c.ResetActivations()
	}
	g.influencedStartingCities = nil
	g.successfulInfluenceThisTurn = false

	g.Turn.EndTurn()
	g.ActionsLeft = turnphase.ActionsPerTurn
	if g.Turn.InStatusPhase {
		g.Status = StatusStatusPhase
	}
	return nil
}

func (g *Game) findCityAnyOwner(position hexmap.Position) (*playerstate.City, int, bool) {
	return g.cityAt(position)
}

func (g *Game) applyInfluenceAttempt(playerIndex int, p *action.PlayingAction) error {
	attacker := g.Players[playerIndex]
	startCity, ok := attacker.FindCity(p.CityPosition)
	if !ok {
		return enginerr.NewIllegalAction("attacker does not own a city at the starting position")
	}
	targetCity, _, ok := g.findCityAnyOwner(p.TargetPosition)
	if !ok {
		return enginerr.NewIllegalAction("no city at the target position")
	}

	attempt := culture.Attempt{
		AttackerIndex: playerIndex,
		StartingCity:  startCity,
		TargetCity:    targetCity,
		Building:      p.Building,
		IsCityCenter:  p.IsCityCenter,
		SelfInfluence: p.SelfInfluence,
	}
	alreadyInfluenced := g.influencedStartingCities[p.CityPosition]
	if reason := culture.Ineligible(attempt, attacker, alreadyInfluenced, g.successfulInfluenceThisTurn); reason != "" {
		return enginerr.NewIllegalAction("%s", reason)
	}

	success, escalation, shortfall := culture.Resolve(attempt, attacker, func() int { return g.NextDiceRoll() })
	if g.influencedStartingCities == nil {
		g.influencedStartingCities = map[hexmap.Position]bool{}
	}
	g.influencedStartingCities[p.CityPosition] = true

	if success {
		culture.Transfer(attempt, playerIndex)
		g.successfulInfluenceThisTurn = true
		return nil
	}
	if escalation == nil {
		return nil
	}
	g.pendingCulture = &pendingCultureAttempt{Attempt: attempt, Shortfall: shortfall}
	g.Pending = &Pending{Kind: PendingCulture, PlayerIndex: playerIndex, Request: escalation}
	return nil
}

// Pending is the engine's outstanding suspension for the two multi-step
// mechanisms it owns outright end to end (combat and cultural-influence
// escalation): both need a concrete-typed Request/Resume pair threaded
// through state that the generic events.PersistentEvent[T] machinery
// doesn't otherwise touch. Events.Stack carries the other kind of
// suspension this engine raises on its own behalf — an incident base
// effect's persistent event, e.g. the pirates_raid payment-or-mood-penalty
// choice in neutral.go — registered fresh per Game via
// registerPersistentEvents since its listeners are closures. executeResponse
// checks Events.Top() before Pending, so CurrentEvent() and a submitted
// Response agree on which suspension is live.
type Pending struct {
	Kind        PendingKind
	PlayerIndex int
	Request     events.Request
}

// PendingKind tags which built-in mechanism g.Pending belongs to.
type PendingKind string

const (
	PendingCombat  PendingKind = "combat"
	PendingCulture PendingKind = "culture"
)

type pendingCultureAttempt struct {
	Attempt   culture.Attempt
	Shortfall int
}

func (g *Game) executeResponse(playerIndex int, resp events.Response) error {
	if frame := g.Events.Top(); frame != nil {
		return g.resumePersistentEvent(playerIndex, frame, resp)
	}
	if g.Pending == nil {
		return enginerr.NewProtocolMisuse("no pending request to respond to")
	}
	if g.Pending.PlayerIndex != playerIndex {
		return enginerr.NewIllegalAction("response submitted by a player other than the one holding the request")
	}
	if err := g.Pending.Request.Validate(resp); err != nil {
		return enginerr.NewShapeMismatch(string(g.Pending.Request.Kind()), string(resp.Kind()))
	}
	switch g.Pending.Kind {
	case PendingCombat:
		return g.resumeCombat(resp)
	case PendingCulture:
		return g.resumeCulture(resp)
	default:
		return enginerr.NewInvariantViolation("unknown pending request kind %q", g.Pending.Kind)
	}
}

// resumePersistentEvent validates and applies resp against frame, the
// top of Events, then pops frame once its queue is drained.
func (g *Game) resumePersistentEvent(playerIndex int, frame *events.PersistentEventState, resp events.Response) error {
	if frame.Handler == nil {
		return enginerr.NewInvariantViolation("event frame %q has no pending handler", frame.EventType)
	}
	if frame.CurrentPlayer != playerIndex {
		return enginerr.NewIllegalAction("response submitted by a player other than the one holding the request")
	}
	ev, ok := g.persistentEventByType(frame.EventType)
	if !ok {
		return enginerr.NewInvariantViolation("unknown persistent event type %q", frame.EventType)
	}
	expected := frame.Handler.Request.Kind()
	if _, err := ev.Resume(frame, g, resp); err != nil {
		return enginerr.NewShapeMismatch(string(expected), string(resp.Kind()))
	}
	if frame.IsComplete() {
		g.Events.Pop()
		if g.Events.Top() == nil {
			g.ActiveIncidentProtection = ""
		}
	}
	return nil
}

func (g *Game) resumeCulture(resp events.Response) error {
	br := resp.(events.BoolResponse)
	pc := g.pendingCulture
	attacker := g.Players[pc.Attempt.AttackerIndex]
	if culture.ResolveEscalation(attacker, pc.Shortfall, br.Value) {
		culture.Transfer(pc.Attempt, pc.Attempt.AttackerIndex)
		g.successfulInfluenceThisTurn = true
	}
	g.pendingCulture = nil
	g.Pending = nil
	return nil
}

func (g *Game) resumeCombat(resp events.Response) error {
	// A played tactics card leaves the player's hand face-down before
	// the battle consumes it.
	if hc, ok := resp.(events.SelectHandCardsResponse); ok && len(hc.Cards) > 0 {
		player := g.Players[g.Pending.PlayerIndex]
		hand, found := removeHandCard(player.ActionCards, hc.Cards[0].ID)
		if !found {
			return enginerr.NewIllegalAction("player does not hold tactics card %q", hc.Cards[0].ID)
		}
		player.ActionCards = hand
		g.TacticsDiscard = append(g.TacticsDiscard, hc.Cards[0])
	}
	req := g.Battle.Resume(resp, g.roller())
	if err := g.settleCombat(req); err != nil {
		return err
	}
	if g.Pending == nil {
		g.settleMovementPhase()
	}
	return nil
}

// settleCombat stores req as the next Pending suspension, or finishes the
// battle and resolves its consequences once req is nil.
func (g *Game) settleCombat(req events.Request) error {
	if req != nil {
		player := g.battlePlayerForRequest()
		// The battle asks for a tactics card without knowing anyone's
		// hand; the request's choices are that player's hand cards.
		if hc, ok := req.(events.HandCardsRequest); ok && g.Battle.Phase == combat.PhaseRoundStart {
			hc.Multi.Choices = append([]gametypes.HandCard{}, g.Players[player].ActionCards...)
			req = hc
		}
		g.Pending = &Pending{Kind: PendingCombat, PlayerIndex: player, Request: req}
		return nil
	}
	g.Pending = nil
	outcome := g.Battle.Outcome
	battle := g.Battle
	g.Battle = nil

	attacker := g.Players[battle.Attacker.PlayerIndex]
	defender := g.Players[battle.Defender.PlayerIndex]
	for _, id := range battle.AttackerCasualties {
		attacker.KillUnit(id)
	}
	for _, id := range battle.DefenderCasualties {
		defender.KillUnit(id)
	}

	if outcome == combat.OutcomeAttackerWins {
		for _, f := range battle.Attacker.Fighters {
			if u, ok := attacker.Units[f.UnitID]; ok {
				u.Position = g.combatCityPosition
			}
		}
		if battle.CityTile {
			if city, _, ok := g.cityAt(g.combatCityPosition); ok {
				combat.CaptureCity(city, attacker, defender)
			}
		}
	}
	g.Messages = append(g.Messages, fmt.Sprintf("combat resolved: %s", outcome))
	return nil
}

// battlePlayerForRequest reports which player the in-progress battle's
// next request is directed at. Tactics-card requests go to whichever
// side the battle is currently asking (attacker first, then defender);
// casualty-selection requests go to whichever side is presently
// assigning losses; any other request goes to the attacker.
func (g *Game) battlePlayerForRequest() int {
	switch g.Battle.Phase {
	case combat.PhaseCasualties:
		if g.Battle.AttackerIsPendingSelector() {
			return g.Battle.Attacker.PlayerIndex
		}
		return g.Battle.Defender.PlayerIndex
	case combat.PhaseRoundStart:
		if g.Battle.TacticsPendingAttacker() {
			return g.Battle.Attacker.PlayerIndex
		}
		return g.Battle.Defender.PlayerIndex
	default:
		return g.Battle.Attacker.PlayerIndex
	}
}
